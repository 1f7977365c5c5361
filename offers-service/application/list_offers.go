package application

import (
	"context"
	"time"

	"github.com/draftea/offer-system/offers-service/domain"
	"github.com/pkg/errors"
	"go.opentelemetry.io/otel/attribute"
)

// ListOffersQuery represents the filters of the offer listing
type ListOffersQuery struct {
	Status         string     `json:"status,omitempty"`
	CreatedAfter   *time.Time `json:"created_after,omitempty"`
	CreatedBefore  *time.Time `json:"created_before,omitempty"`
	SortBy         string     `json:"sort_by,omitempty"`
	SortDescending bool       `json:"sort_descending,omitempty"`
	Page           int        `json:"page"`
	PageSize       int        `json:"page_size"`
}

// ListOffersResponse is one page of offers
type ListOffersResponse struct {
	Offers     []*OfferResponse `json:"offers"`
	TotalCount int              `json:"total_count"`
	Page       int              `json:"page"`
	PageSize   int              `json:"page_size"`
	TotalPages int              `json:"total_pages"`
}

// ListOffers use case handles filtered, sorted and paged offer listing
type ListOffers struct {
	offerRepository domain.OfferRepository
}

// NewListOffers creates a new ListOffers use case
func NewListOffers(offerRepository domain.OfferRepository) *ListOffers {
	return &ListOffers{
		offerRepository: offerRepository,
	}
}

// Execute lists offers
func (uc *ListOffers) Execute(ctx context.Context, query *ListOffersQuery) (*ListOffersResponse, error) {
	ctx, op := startOperation(ctx, "list_offers",
		attribute.String("status", query.Status),
		attribute.Int("page", query.Page),
	)
	defer op.end(ctx)

	q := domain.OfferQuery{
		CreatedAfter:   query.CreatedAfter,
		CreatedBefore:  query.CreatedBefore,
		SortBy:         query.SortBy,
		SortDescending: query.SortDescending,
		Page:           query.Page,
		PageSize:       query.PageSize,
	}

	if query.Status != "" {
		status, err := domain.ParseStatus(query.Status)
		if err != nil {
			return nil, op.fail(domain.InvalidCommand(err.Error()))
		}
		q.Status = &status
	}

	q, err := q.Normalize()
	if err != nil {
		return nil, op.fail(err)
	}

	page, err := uc.offerRepository.List(ctx, q)
	if err != nil {
		return nil, op.fail(errors.Wrap(err, "failed to list offers"))
	}

	resp := &ListOffersResponse{
		Offers:     make([]*OfferResponse, 0, len(page.Offers)),
		TotalCount: page.TotalCount,
		Page:       q.Page,
		PageSize:   q.PageSize,
		TotalPages: domain.TotalPages(page.TotalCount, q.PageSize),
	}
	for _, offer := range page.Offers {
		resp.Offers = append(resp.Offers, newOfferResponse(offer))
	}

	op.succeed()
	return resp, nil
}
