package domain

import (
	"fmt"

	"github.com/pkg/errors"
)

// Sentinel errors. Typed errors below match them through errors.Is so callers
// can classify without string comparison.
var (
	ErrOfferNotFound          = errors.New("offer not found")
	ErrSellerNotFound         = errors.New("seller not found")
	ErrInvalidStateTransition = errors.New("invalid offer state transition")
	ErrOfferCannotBeUpdated   = errors.New("offer cannot be updated")
	ErrDownstreamCallFailed   = errors.New("downstream call failed")
	ErrConcurrentModification = errors.New("offer was modified concurrently")
	ErrInvalidCommand         = errors.New("invalid command")
)

// OfferNotFoundError is returned when no offer has the requested id
type OfferNotFoundError struct {
	OfferID int64
}

func (e *OfferNotFoundError) Error() string {
	return fmt.Sprintf("offer with ID %d was not found", e.OfferID)
}

func (e *OfferNotFoundError) Is(target error) bool {
	return target == ErrOfferNotFound
}

// SellerNotFoundError is returned when creating an offer for an unknown seller
type SellerNotFoundError struct {
	SellerID int64
}

func (e *SellerNotFoundError) Error() string {
	return fmt.Sprintf("seller with ID %d was not found", e.SellerID)
}

func (e *SellerNotFoundError) Is(target error) bool {
	return target == ErrSellerNotFound
}

// InvalidStateTransitionError is returned when the status machine denies a move
type InvalidStateTransitionError struct {
	From Status
	To   Status
}

func (e *InvalidStateTransitionError) Error() string {
	return fmt.Sprintf("cannot transition offer from status '%s' to '%s'", e.From, e.To)
}

func (e *InvalidStateTransitionError) Is(target error) bool {
	return target == ErrInvalidStateTransition
}

// OfferCannotBeUpdatedError is returned when vehicle fields are edited outside offered
type OfferCannotBeUpdatedError struct {
	Status Status
}

func (e *OfferCannotBeUpdatedError) Error() string {
	return fmt.Sprintf("offers with status '%s' cannot be updated", e.Status)
}

func (e *OfferCannotBeUpdatedError) Is(target error) bool {
	return target == ErrOfferCannotBeUpdated
}

// Downstream services called by the assignment saga
const (
	ServicePurchase  = "purchase"
	ServiceTransport = "transport"
)

// DownstreamCallFailedError wraps a failed purchase or transport call
type DownstreamCallFailedError struct {
	Service string
	Err     error
}

func (e *DownstreamCallFailedError) Error() string {
	return fmt.Sprintf("%s call failed: %v", e.Service, e.Err)
}

func (e *DownstreamCallFailedError) Unwrap() error {
	return e.Err
}

func (e *DownstreamCallFailedError) Is(target error) bool {
	return target == ErrDownstreamCallFailed
}

// NewDownstreamCallFailed builds a DownstreamCallFailedError for service
func NewDownstreamCallFailed(service string, err error) error {
	return &DownstreamCallFailedError{Service: service, Err: err}
}

// InvalidCommand wraps a validation message so it matches ErrInvalidCommand
func InvalidCommand(msg string) error {
	return errors.Wrap(ErrInvalidCommand, msg)
}
