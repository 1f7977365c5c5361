package domain

import (
	"context"
	"time"
)

// OfferRepository persists offers. FindByID returns nil, nil when absent.
type OfferRepository interface {
	FindByID(ctx context.Context, id int64) (*Offer, error)
	Add(ctx context.Context, offer *Offer) error
	Update(ctx context.Context, offer *Offer) error
	List(ctx context.Context, query OfferQuery) (*OfferPage, error)
}

// OfferStore is an OfferRepository that can also open a transaction
type OfferStore interface {
	OfferRepository
	BeginTx(ctx context.Context) (OfferTx, error)
}

// OfferTx is a unit of work over a single offer row. Rollback after Commit is a no-op.
type OfferTx interface {
	FindByIDForUpdate(ctx context.Context, id int64) (*Offer, error)
	Update(ctx context.Context, offer *Offer) error
	Commit() error
	Rollback() error
}

// SellerRepository reads sellers. FindByID returns nil, nil when absent.
type SellerRepository interface {
	FindByID(ctx context.Context, id int64) (*Seller, error)
	List(ctx context.Context, page, pageSize int) ([]*Seller, int, error)
}

// PurchaseClient creates a purchase and returns its id
type PurchaseClient interface {
	CreatePurchase(ctx context.Context, req PurchaseRequest) (string, error)
}

// TransportClient schedules a transport and returns its id
type TransportClient interface {
	CreateTransport(ctx context.Context, req TransportRequest) (string, error)
}

// AssignmentJournal records assignment attempts outside the offer transaction
type AssignmentJournal interface {
	Start(ctx context.Context, attempt *AssignmentAttempt) error
	Save(ctx context.Context, attempt *AssignmentAttempt) error
	ListUnresolved(ctx context.Context, updatedBefore time.Time, limit int) ([]*AssignmentAttempt, error)
}
