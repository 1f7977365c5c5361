package domain

import (
	"time"

	"github.com/draftea/offer-system/shared/models"
)

// AttemptState tracks how far an assignment attempt progressed
type AttemptState string

const (
	AttemptStarted               AttemptState = "started"
	AttemptPurchaseCreated       AttemptState = "purchase_created"
	AttemptTransportCreated      AttemptState = "transport_created"
	AttemptCompleted             AttemptState = "completed"
	AttemptFailed                AttemptState = "failed"
	AttemptCompensationRequired  AttemptState = "compensation_required"
	AttemptCompensationRequested AttemptState = "compensation_requested"
)

// UnresolvedAttemptStates are the states the reconciler picks up
var UnresolvedAttemptStates = []AttemptState{
	AttemptStarted,
	AttemptPurchaseCreated,
	AttemptTransportCreated,
	AttemptCompensationRequired,
}

// IsFinal reports whether the attempt needs no further attention
func (s AttemptState) IsFinal() bool {
	switch s {
	case AttemptCompleted, AttemptFailed, AttemptCompensationRequested:
		return true
	}
	return false
}

// AssignmentAttempt is one journal entry of the assignment saga. It is written
// outside the offer transaction so it survives a rollback.
type AssignmentAttempt struct {
	ID           models.ID
	OfferID      int64
	BuyerID      int64
	CarrierID    int64
	BuyerZipCode string
	State        AttemptState
	PurchaseID   string
	TransportID  string
	LastError    string
	Timestamps   models.Timestamps
}

// NewAssignmentAttempt starts a journal entry
func NewAssignmentAttempt(offerID, buyerID, carrierID int64, buyerZipCode string, now time.Time) *AssignmentAttempt {
	return &AssignmentAttempt{
		ID:           models.GenerateUUID(),
		OfferID:      offerID,
		BuyerID:      buyerID,
		CarrierID:    carrierID,
		BuyerZipCode: buyerZipCode,
		State:        AttemptStarted,
		Timestamps:   models.NewTimestamps(now),
	}
}

func (a *AssignmentAttempt) PurchaseCreated(purchaseID string, now time.Time) {
	a.PurchaseID = purchaseID
	a.moveTo(AttemptPurchaseCreated, now)
}

func (a *AssignmentAttempt) TransportCreated(transportID string, now time.Time) {
	a.TransportID = transportID
	a.moveTo(AttemptTransportCreated, now)
}

func (a *AssignmentAttempt) Complete(now time.Time) {
	a.LastError = ""
	a.moveTo(AttemptCompleted, now)
}

// Fail records cause. Once a purchase exists the attempt needs compensation
// instead of a plain failure.
func (a *AssignmentAttempt) Fail(cause error, now time.Time) {
	if cause != nil {
		a.LastError = cause.Error()
	}
	if a.PurchaseID != "" {
		a.moveTo(AttemptCompensationRequired, now)
		return
	}
	a.moveTo(AttemptFailed, now)
}

func (a *AssignmentAttempt) CompensationRequested(now time.Time) {
	a.moveTo(AttemptCompensationRequested, now)
}

// Orphaned builds the compensation request payload
func (a *AssignmentAttempt) Orphaned(reason string) OfferAssignmentOrphaned {
	payload := OfferAssignmentOrphaned{
		AttemptID:  a.ID.String(),
		OfferID:    a.OfferID,
		BuyerID:    a.BuyerID,
		CarrierID:  a.CarrierID,
		PurchaseID: a.PurchaseID,
		Reason:     reason,
	}
	if a.TransportID != "" {
		transportID := a.TransportID
		payload.TransportID = &transportID
	}
	return payload
}

func (a *AssignmentAttempt) moveTo(state AttemptState, now time.Time) {
	a.State = state
	a.Timestamps = a.Timestamps.Update(now)
}

// ScheduleWindow is the pickup window requested from the transport service
type ScheduleWindow struct {
	Start  time.Time
	End    time.Time
	Target time.Time
}

// NextDayWindow returns 10:00 to 18:00 with a 14:00 target on the UTC calendar day after now
func NextDayWindow(now time.Time) ScheduleWindow {
	next := now.UTC().AddDate(0, 0, 1)
	day := time.Date(next.Year(), next.Month(), next.Day(), 0, 0, 0, 0, time.UTC)
	return ScheduleWindow{
		Start:  day.Add(10 * time.Hour),
		End:    day.Add(18 * time.Hour),
		Target: day.Add(14 * time.Hour),
	}
}

// PurchaseRequest is sent to the purchase service
type PurchaseRequest struct {
	OfferID       int64
	BuyerID       int64
	CorrelationID models.ID
}

// TransportRequest is sent to the transport service
type TransportRequest struct {
	OfferID       int64
	PurchaseID    string
	SellerID      int64
	BuyerID       int64
	CarrierID     int64
	SellerZipCode string
	BuyerZipCode  string
	Window        ScheduleWindow
	CorrelationID models.ID
}
