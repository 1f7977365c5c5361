package domain

import (
	"math"
	"strings"
	"time"
)

// Sort keys accepted by OfferQuery
const (
	SortByCreatedAt    = "createdat"
	SortByStatus       = "status"
	SortByVehicleMake  = "vehiclemake"
	SortByVehicleModel = "vehiclemodel"
)

const (
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// OfferQuery filters and pages offers
type OfferQuery struct {
	Status         *Status
	CreatedAfter   *time.Time
	CreatedBefore  *time.Time
	SortBy         string
	SortDescending bool
	Page           int
	PageSize       int
}

// Normalize validates the query and fills defaults. With no sort key the
// newest offers come first.
func (q OfferQuery) Normalize() (OfferQuery, error) {
	var err error
	if q.Page, q.PageSize, err = NormalizePage(q.Page, q.PageSize); err != nil {
		return q, err
	}
	if q.CreatedAfter != nil && q.CreatedBefore != nil && q.CreatedAfter.After(*q.CreatedBefore) {
		return q, InvalidCommand("createdAfter must not be later than createdBefore")
	}

	q.SortBy = strings.ToLower(strings.TrimSpace(q.SortBy))
	switch q.SortBy {
	case "":
		q.SortBy = SortByCreatedAt
		q.SortDescending = true
	case SortByCreatedAt, SortByStatus, SortByVehicleMake, SortByVehicleModel:
	default:
		return q, InvalidCommand("sortBy must be one of createdat, status, vehiclemake, vehiclemodel")
	}
	return q, nil
}

// NormalizePage fills paging defaults and rejects pages whose row offset
// would not fit a Postgres integer
func NormalizePage(page, pageSize int) (int, int, error) {
	if page == 0 {
		page = 1
	}
	if pageSize == 0 {
		pageSize = DefaultPageSize
	}
	if page < 1 {
		return page, pageSize, InvalidCommand("page must be greater than 0")
	}
	if pageSize < 1 || pageSize > MaxPageSize {
		return page, pageSize, InvalidCommand("page size must be between 1 and 100")
	}
	if page > math.MaxInt32/pageSize {
		return page, pageSize, InvalidCommand("page is too large")
	}
	return page, pageSize, nil
}

// Offset is the number of rows skipped for the current page
func (q OfferQuery) Offset() int {
	return (q.Page - 1) * q.PageSize
}

// OfferPage is one page of offers
type OfferPage struct {
	Offers     []*Offer
	TotalCount int
	Page       int
	PageSize   int
}

// TotalPages rounds up TotalCount / PageSize
func (p *OfferPage) TotalPages() int {
	return TotalPages(p.TotalCount, p.PageSize)
}

func TotalPages(total, pageSize int) int {
	if pageSize <= 0 {
		return 0
	}
	return (total + pageSize - 1) / pageSize
}
