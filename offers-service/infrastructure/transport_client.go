package infrastructure

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/draftea/offer-system/offers-service/domain"
	"github.com/draftea/offer-system/shared/logging"
	"github.com/pkg/errors"
)

const createTransportPath = "/api/transports"

// TransportHTTPClient implements domain.TransportClient against the transport API
type TransportHTTPClient struct {
	api    *jsonAPIClient
	logger *slog.Logger
}

// NewTransportHTTPClient creates a new TransportHTTPClient
func NewTransportHTTPClient(cfg DownstreamConfig, logger *slog.Logger) *TransportHTTPClient {
	return &TransportHTTPClient{
		api:    newJSONAPIClient(domain.ServiceTransport, cfg, logger),
		logger: logger,
	}
}

type scheduleWindow struct {
	StartDate     time.Time `json:"startDate"`
	EndDate       time.Time `json:"endDate"`
	ScheduledDate time.Time `json:"scheduledDate"`
}

type createTransportRequest struct {
	OfferID         int64          `json:"offerId"`
	PurchaseID      string         `json:"purchaseId"`
	SellerID        int64          `json:"sellerId"`
	BuyerID         int64          `json:"buyerId"`
	CarrierID       int64          `json:"carrierId"`
	SellerZipCode   string         `json:"sellerZipCode"`
	BuyerZipCode    string         `json:"buyerZipCode"`
	ScheduleWindow  scheduleWindow `json:"scheduleWindow"`
	ElasticSearchID string         `json:"elasticSearchId"`
}

type createTransportResponse struct {
	TransportID json.RawMessage `json:"transportId"`
	OfferID     int64           `json:"offerId"`
	Status      string          `json:"status"`
	CreatedAt   *time.Time      `json:"createdAt"`
}

// CreateTransport schedules the pickup and returns the transport id
func (c *TransportHTTPClient) CreateTransport(ctx context.Context, req domain.TransportRequest) (string, error) {
	var resp createTransportResponse
	err := c.api.postJSON(ctx, createTransportPath, createTransportRequest{
		OfferID:       req.OfferID,
		PurchaseID:    req.PurchaseID,
		SellerID:      req.SellerID,
		BuyerID:       req.BuyerID,
		CarrierID:     req.CarrierID,
		SellerZipCode: req.SellerZipCode,
		BuyerZipCode:  req.BuyerZipCode,
		ScheduleWindow: scheduleWindow{
			StartDate:     req.Window.Start.UTC(),
			EndDate:       req.Window.End.UTC(),
			ScheduledDate: req.Window.Target.UTC(),
		},
		ElasticSearchID: req.CorrelationID.String(),
	}, &resp)
	if err != nil {
		return "", err
	}

	transportID := opaqueID(resp.TransportID)
	if transportID == "" {
		return "", errors.New("transport response without transport id")
	}

	logging.FromContext(ctx, c.logger).Info("transport scheduled",
		slog.Int64("offer_id", req.OfferID),
		slog.String("transport_id", transportID),
		slog.String("status", resp.Status),
	)

	return transportID, nil
}
