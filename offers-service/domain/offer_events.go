package domain

import (
	"time"

	"github.com/draftea/offer-system/shared/events"
)

// OfferEvent is the closed set of payloads published for an offer
type OfferEvent interface {
	EventType() string
	Base() OfferEventBase
	isOfferEvent()
}

// VehicleSummary is the vehicle identification carried by every offer event
type VehicleSummary struct {
	VIN   string `json:"vin"`
	Year  string `json:"year"`
	Make  string `json:"make"`
	Model string `json:"model"`
	Trim  string `json:"trim"`
}

// OfferEventBase holds the fields shared by all offer events
type OfferEventBase struct {
	OfferID     int64          `json:"offer_id"`
	SellerID    int64          `json:"seller_id"`
	Status      Status         `json:"status"`
	CreatedAt   time.Time      `json:"created_at"`
	PurchaseID  *string        `json:"purchase_id,omitempty"`
	TransportID *string        `json:"transport_id,omitempty"`
	Vehicle     VehicleSummary `json:"vehicle"`
}

func (b OfferEventBase) Base() OfferEventBase { return b }
func (OfferEventBase) isOfferEvent()          {}

// OfferCreated adds the full creation snapshot
type OfferCreated struct {
	OfferEventBase
	Seller  SellerSnapshot `json:"seller"`
	Details Details        `json:"details"`
}

func (OfferCreated) EventType() string { return events.OfferCreatedEvent }

type OfferAssigned struct {
	OfferEventBase
	BuyerID      int64  `json:"buyer_id"`
	CarrierID    int64  `json:"carrier_id"`
	BuyerZipCode string `json:"buyer_zip_code"`
}

func (OfferAssigned) EventType() string { return events.OfferAssignedEvent }

type OfferUpdated struct {
	OfferEventBase
}

func (OfferUpdated) EventType() string { return events.OfferUpdatedEvent }

type OfferCanceled struct {
	OfferEventBase
}

func (OfferCanceled) EventType() string { return events.OfferCanceledEvent }

// OfferAssignmentOrphaned requests compensation for a purchase left behind by
// an assignment that never committed
type OfferAssignmentOrphaned struct {
	AttemptID   string  `json:"attempt_id"`
	OfferID     int64   `json:"offer_id"`
	BuyerID     int64   `json:"buyer_id"`
	CarrierID   int64   `json:"carrier_id"`
	PurchaseID  string  `json:"purchase_id"`
	TransportID *string `json:"transport_id,omitempty"`
	Reason      string  `json:"reason"`
}

func (o *Offer) eventBase() OfferEventBase {
	base := OfferEventBase{
		OfferID:   o.ID,
		SellerID:  o.SellerID,
		Status:    o.Status,
		CreatedAt: o.Timestamps.CreatedAt,
		Vehicle: VehicleSummary{
			VIN:   o.Details.Vehicle.VIN,
			Year:  o.Details.Vehicle.Year,
			Make:  o.Details.Vehicle.Make,
			Model: o.Details.Vehicle.Model,
			Trim:  o.Details.Vehicle.Trim,
		},
	}
	if o.Assignment != nil {
		purchaseID, transportID := o.Assignment.PurchaseID, o.Assignment.TransportID
		base.PurchaseID = &purchaseID
		base.TransportID = &transportID
	}
	return base
}
