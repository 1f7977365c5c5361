package application

import (
	"context"

	"github.com/draftea/offer-system/offers-service/domain"
	"github.com/pkg/errors"
)

// ListSellersQuery represents the paging of the seller listing
type ListSellersQuery struct {
	Page     int `json:"page"`
	PageSize int `json:"page_size"`
}

// ListSellersResponse is one page of sellers ordered by name
type ListSellersResponse struct {
	Sellers    []*SellerResponse `json:"sellers"`
	TotalCount int               `json:"total_count"`
	Page       int               `json:"page"`
	PageSize   int               `json:"page_size"`
	TotalPages int               `json:"total_pages"`
}

// ListSellers use case
type ListSellers struct {
	sellerRepository domain.SellerRepository
}

// NewListSellers creates a new ListSellers use case
func NewListSellers(sellerRepository domain.SellerRepository) *ListSellers {
	return &ListSellers{
		sellerRepository: sellerRepository,
	}
}

// Execute lists sellers
func (uc *ListSellers) Execute(ctx context.Context, query *ListSellersQuery) (*ListSellersResponse, error) {
	ctx, op := startOperation(ctx, "list_sellers")
	defer op.end(ctx)

	page, pageSize, err := domain.NormalizePage(query.Page, query.PageSize)
	if err != nil {
		return nil, op.fail(err)
	}

	sellers, total, err := uc.sellerRepository.List(ctx, page, pageSize)
	if err != nil {
		return nil, op.fail(errors.Wrap(err, "failed to list sellers"))
	}

	resp := &ListSellersResponse{
		Sellers:    make([]*SellerResponse, 0, len(sellers)),
		TotalCount: total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: domain.TotalPages(total, pageSize),
	}
	for _, seller := range sellers {
		resp.Sellers = append(resp.Sellers, newSellerResponse(seller))
	}

	op.succeed()
	return resp, nil
}
