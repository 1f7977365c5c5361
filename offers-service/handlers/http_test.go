package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/draftea/offer-system/offers-service/application"
	"github.com/draftea/offer-system/offers-service/domain"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestStatusCode(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{"offer not found", &domain.OfferNotFoundError{OfferID: 1}, http.StatusNotFound},
		{"seller not found", errors.Wrap(&domain.SellerNotFoundError{SellerID: 2}, "create"), http.StatusNotFound},
		{"invalid transition", &domain.InvalidStateTransitionError{From: domain.StatusCanceled, To: domain.StatusAssigned}, http.StatusConflict},
		{"cannot be updated", &domain.OfferCannotBeUpdatedError{Status: domain.StatusAssigned}, http.StatusConflict},
		{"concurrent modification", errors.Wrap(domain.ErrConcurrentModification, "offer 1"), http.StatusConflict},
		{"downstream failure", domain.NewDownstreamCallFailed(domain.ServicePurchase, errors.New("timeout")), http.StatusBadGateway},
		{"invalid command", domain.InvalidCommand("buyer id must be positive"), http.StatusBadRequest},
		{"unexpected", errors.New("connection reset"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, StatusCode(tt.err))
		})
	}
}

func TestOfferHandlers_Routes(t *testing.T) {
	tests := []struct {
		name           string
		method         string
		path           string
		body           string
		setupMocks     func(f *fixture)
		expectedStatus int
		check          func(t *testing.T, body []byte)
	}{
		{
			name:   "get offer",
			method: http.MethodGet,
			path:   "/api/offers/1",
			setupMocks: func(f *fixture) {
				f.store.EXPECT().FindByID(mock.Anything, int64(1)).Return(newTestOffer(1, domain.StatusOffered), nil).Once()
			},
			expectedStatus: http.StatusOK,
			check: func(t *testing.T, body []byte) {
				var resp application.OfferResponse
				require.NoError(t, json.Unmarshal(body, &resp))
				assert.Equal(t, int64(1), resp.ID)
				assert.Equal(t, "offered", resp.Status)
				assert.Nil(t, resp.PurchaseID)
			},
		},
		{
			name:           "get offer with bad id",
			method:         http.MethodGet,
			path:           "/api/offers/abc",
			setupMocks:     func(*fixture) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:   "get missing offer",
			method: http.MethodGet,
			path:   "/api/offers/2",
			setupMocks: func(f *fixture) {
				f.store.EXPECT().FindByID(mock.Anything, int64(2)).Return(nil, nil).Once()
			},
			expectedStatus: http.StatusNotFound,
		},
		{
			name:   "repository failure is hidden",
			method: http.MethodGet,
			path:   "/api/offers/3",
			setupMocks: func(f *fixture) {
				f.store.EXPECT().FindByID(mock.Anything, int64(3)).Return(nil, errors.New("pq: connection refused")).Once()
			},
			expectedStatus: http.StatusInternalServerError,
			check: func(t *testing.T, body []byte) {
				assert.NotContains(t, string(body), "pq:")
			},
		},
		{
			name:   "create offer",
			method: http.MethodPost,
			path:   "/api/offers",
			body:   `{"seller_id":7,"vehicle":{"year":"2019","make":"Honda","model":"Accord"},"location":{"zip_code":"12345"}}`,
			setupMocks: func(f *fixture) {
				f.sellers.EXPECT().FindByID(mock.Anything, int64(7)).Return(&domain.Seller{ID: 7, Name: "Acme Motors"}, nil).Once()
				f.store.EXPECT().Add(mock.Anything, mock.Anything).RunAndReturn(func(_ context.Context, o *domain.Offer) error {
					o.ID = 42
					return nil
				}).Once()
				f.publisher.EXPECT().Publish(mock.Anything, mock.Anything).Return(nil).Once()
			},
			expectedStatus: http.StatusCreated,
			check: func(t *testing.T, body []byte) {
				var resp application.OfferResponse
				require.NoError(t, json.Unmarshal(body, &resp))
				assert.Equal(t, int64(42), resp.ID)
				assert.Equal(t, "Acme Motors", resp.SellerName)
				assert.Equal(t, "Honda", resp.Vehicle.Make)
			},
		},
		{
			name:           "create offer with malformed body",
			method:         http.MethodPost,
			path:           "/api/offers",
			body:           `{"seller_id":`,
			setupMocks:     func(*fixture) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:   "create offer with missing make",
			method: http.MethodPost,
			path:   "/api/offers",
			body:   `{"seller_id":7,"vehicle":{"year":"2019","model":"Accord"},"location":{"zip_code":"12345"}}`,
			setupMocks: func(f *fixture) {
				f.sellers.EXPECT().FindByID(mock.Anything, int64(7)).Return(&domain.Seller{ID: 7}, nil).Once()
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:   "create offer for unknown seller",
			method: http.MethodPost,
			path:   "/api/offers",
			body:   `{"seller_id":8,"vehicle":{"year":"2019","make":"Honda","model":"Accord"},"location":{"zip_code":"12345"}}`,
			setupMocks: func(f *fixture) {
				f.sellers.EXPECT().FindByID(mock.Anything, int64(8)).Return(nil, nil).Once()
			},
			expectedStatus: http.StatusNotFound,
		},
		{
			name:   "update assigned offer",
			method: http.MethodPut,
			path:   "/api/offers/1",
			body:   `{"model":"Civic"}`,
			setupMocks: func(f *fixture) {
				f.store.EXPECT().FindByID(mock.Anything, int64(1)).Return(newTestOffer(1, domain.StatusAssigned), nil).Once()
			},
			expectedStatus: http.StatusConflict,
		},
		{
			name:   "cancel offer",
			method: http.MethodPost,
			path:   "/api/offers/1/cancel",
			setupMocks: func(f *fixture) {
				f.store.EXPECT().FindByID(mock.Anything, int64(1)).Return(newTestOffer(1, domain.StatusOffered), nil).Once()
				f.store.EXPECT().Update(mock.Anything, mock.Anything).Return(nil).Once()
				f.publisher.EXPECT().Publish(mock.Anything, mock.Anything).Return(nil).Once()
			},
			expectedStatus: http.StatusOK,
			check: func(t *testing.T, body []byte) {
				assert.Contains(t, string(body), `"status":"canceled"`)
			},
		},
		{
			name:   "cancel canceled offer",
			method: http.MethodPost,
			path:   "/api/offers/1/cancel",
			setupMocks: func(f *fixture) {
				f.store.EXPECT().FindByID(mock.Anything, int64(1)).Return(newTestOffer(1, domain.StatusCanceled), nil).Once()
			},
			expectedStatus: http.StatusConflict,
		},
		{
			name:   "assign canceled offer",
			method: http.MethodPost,
			path:   "/api/offers/1/assign",
			body:   `{"buyer_id":123,"carrier_id":456,"buyer_zip_code":"67890"}`,
			setupMocks: func(f *fixture) {
				f.store.EXPECT().FindByID(mock.Anything, int64(1)).Return(newTestOffer(1, domain.StatusCanceled), nil).Once()
			},
			expectedStatus: http.StatusConflict,
		},
		{
			name:           "assign with invalid buyer",
			method:         http.MethodPost,
			path:           "/api/offers/1/assign",
			body:           `{"buyer_id":0,"carrier_id":456,"buyer_zip_code":"67890"}`,
			setupMocks:     func(*fixture) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:   "list offers passes filters",
			method: http.MethodGet,
			path:   "/api/offers?status=Offered&sortBy=vehicleMake&sortDescending=true&page=2&pageSize=5&createdAfter=2024-01-01",
			setupMocks: func(f *fixture) {
				f.store.EXPECT().List(mock.Anything, mock.MatchedBy(func(q domain.OfferQuery) bool {
					return q.Status != nil && *q.Status == domain.StatusOffered &&
						q.SortBy == domain.SortByVehicleMake && q.SortDescending &&
						q.Page == 2 && q.PageSize == 5 &&
						q.CreatedAfter != nil && q.CreatedAfter.Year() == 2024
				})).Return(&domain.OfferPage{
					Offers:     []*domain.Offer{newTestOffer(6, domain.StatusOffered)},
					TotalCount: 6,
					Page:       2,
					PageSize:   5,
				}, nil).Once()
			},
			expectedStatus: http.StatusOK,
			check: func(t *testing.T, body []byte) {
				var resp application.ListOffersResponse
				require.NoError(t, json.Unmarshal(body, &resp))
				assert.Equal(t, 6, resp.TotalCount)
				assert.Equal(t, 2, resp.TotalPages)
				require.Len(t, resp.Offers, 1)
			},
		},
		{
			name:   "list offers reads pageNumber",
			method: http.MethodGet,
			path:   "/api/offers?pageNumber=3&page=1&pageSize=5",
			setupMocks: func(f *fixture) {
				f.store.EXPECT().List(mock.Anything, mock.MatchedBy(func(q domain.OfferQuery) bool {
					return q.Page == 3 && q.PageSize == 5 && q.Offset() == 10
				})).Return(&domain.OfferPage{TotalCount: 0, Page: 3, PageSize: 5}, nil).Once()
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "list offers with page beyond any offset",
			method:         http.MethodGet,
			path:           "/api/offers?pageNumber=922337203685477580&pageSize=10",
			setupMocks:     func(*fixture) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "list offers with bad page",
			method:         http.MethodGet,
			path:           "/api/offers?page=two",
			setupMocks:     func(*fixture) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "list offers with unknown status",
			method:         http.MethodGet,
			path:           "/api/offers?status=sold",
			setupMocks:     func(*fixture) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "list offers with oversized page",
			method:         http.MethodGet,
			path:           "/api/offers?pageSize=101",
			setupMocks:     func(*fixture) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:   "list sellers reads pageNumber",
			method: http.MethodGet,
			path:   "/api/sellers?pageNumber=2&pageSize=1",
			setupMocks: func(f *fixture) {
				f.sellers.EXPECT().List(mock.Anything, 2, 1).Return([]*domain.Seller{{ID: 8, Name: "Zed Autos"}}, 3, nil).Once()
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:   "list sellers",
			method: http.MethodGet,
			path:   "/api/sellers?pageSize=1",
			setupMocks: func(f *fixture) {
				f.sellers.EXPECT().List(mock.Anything, 1, 1).Return([]*domain.Seller{{ID: 7, Name: "Acme Motors"}}, 3, nil).Once()
			},
			expectedStatus: http.StatusOK,
			check: func(t *testing.T, body []byte) {
				var resp application.ListSellersResponse
				require.NoError(t, json.Unmarshal(body, &resp))
				assert.Equal(t, 3, resp.TotalPages)
				require.Len(t, resp.Sellers, 1)
				assert.Equal(t, "Acme Motors", resp.Sellers[0].Name)
			},
		},
		{
			name:           "health",
			method:         http.MethodGet,
			path:           "/health",
			setupMocks:     func(*fixture) {},
			expectedStatus: http.StatusOK,
			check: func(t *testing.T, body []byte) {
				assert.JSONEq(t, `{"status":"ok"}`, string(body))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setupMocks(f)

			req := httptest.NewRequest(tt.method, tt.path, strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")
			rec := httptest.NewRecorder()

			f.router.ServeHTTP(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code, rec.Body.String())
			if tt.check != nil {
				tt.check(t, rec.Body.Bytes())
			}
		})
	}
}
