package domain

import (
	"strconv"
	"strings"
	"time"

	"github.com/draftea/offer-system/shared/events"
	"github.com/draftea/offer-system/shared/models"
)

const maxBuyerZipCodeLength = 20

// Vehicle identifies the vehicle being offered
type Vehicle struct {
	VIN       string `json:"vin"`
	Year      string `json:"year"`
	Make      string `json:"make"`
	Model     string `json:"model"`
	Trim      string `json:"trim"`
	BodyType  string `json:"body_type"`
	CabType   string `json:"cab_type"`
	DoorCount int    `json:"door_count"`
	FuelType  string `json:"fuel_type"`
	BodyStyle string `json:"body_style"`
	Usage     string `json:"usage"`
}

// Location is where the vehicle is picked up from
type Location struct {
	ZipCode string `json:"zip_code"`
}

// Ownership describes the title held by the seller
type Ownership struct {
	Type      string `json:"type"`
	TitleType string `json:"title_type"`
}

// Condition is the self reported vehicle condition
type Condition struct {
	Mileage                     int    `json:"mileage"`
	IsMileageUnverifiable       bool   `json:"is_mileage_unverifiable"`
	DrivetrainCondition         string `json:"drivetrain_condition"`
	KeyOrFobAvailable           string `json:"key_or_fob_available"`
	WorkingBatteryInstalled     string `json:"working_battery_installed"`
	AllTiresInflated            string `json:"all_tires_inflated"`
	WheelsRemoved               string `json:"wheels_removed"`
	WheelsRemovedDriverFront    bool   `json:"wheels_removed_driver_front"`
	WheelsRemovedDriverRear     bool   `json:"wheels_removed_driver_rear"`
	WheelsRemovedPassengerFront bool   `json:"wheels_removed_passenger_front"`
	WheelsRemovedPassengerRear  bool   `json:"wheels_removed_passenger_rear"`
	BodyPanelsIntact            string `json:"body_panels_intact"`
	BodyDamageFree              string `json:"body_damage_free"`
	MirrorsLightsGlassIntact    string `json:"mirrors_lights_glass_intact"`
	InteriorIntact              string `json:"interior_intact"`
	FloodFireDamageFree         string `json:"flood_fire_damage_free"`
	EngineTransmissionCondition string `json:"engine_transmission_condition"`
	AirbagsDeployed             string `json:"airbags_deployed"`
}

// Details groups every seller editable attribute of an offer
type Details struct {
	Vehicle   Vehicle   `json:"vehicle"`
	Location  Location  `json:"location"`
	Ownership Ownership `json:"ownership"`
	Condition Condition `json:"condition"`
}

// Validate checks the attributes required to create an offer
func (d Details) Validate() error {
	switch {
	case strings.TrimSpace(d.Vehicle.Year) == "":
		return InvalidCommand("vehicle year is required")
	case strings.TrimSpace(d.Vehicle.Make) == "":
		return InvalidCommand("vehicle make is required")
	case strings.TrimSpace(d.Vehicle.Model) == "":
		return InvalidCommand("vehicle model is required")
	case strings.TrimSpace(d.Location.ZipCode) == "":
		return InvalidCommand("vehicle zip code is required")
	case len(d.Vehicle.VIN) > 17:
		return InvalidCommand("vin must be at most 17 characters")
	case d.Vehicle.DoorCount < 0 || d.Vehicle.DoorCount > 10:
		return InvalidCommand("door count must be between 0 and 10")
	case d.Condition.Mileage < 0:
		return InvalidCommand("mileage cannot be negative")
	}
	return nil
}

// SellerSnapshot is copied from the seller at creation and never refreshed
type SellerSnapshot struct {
	NetworkID string `json:"seller_network_id"`
	Name      string `json:"seller_name"`
}

// Assignment holds the cross references produced by a successful assignment.
// An offer either has all of them or none.
type Assignment struct {
	PurchaseID   string
	TransportID  string
	BuyerID      int64
	CarrierID    int64
	BuyerZipCode string
}

// Validate checks that every cross reference is present
func (a Assignment) Validate() error {
	switch {
	case a.PurchaseID == "":
		return InvalidCommand("purchase id is required")
	case a.TransportID == "":
		return InvalidCommand("transport id is required")
	}
	return ValidateAssignee(a.BuyerID, a.CarrierID, a.BuyerZipCode)
}

// ValidateAssignee checks the caller supplied part of an assignment
func ValidateAssignee(buyerID, carrierID int64, buyerZipCode string) error {
	switch {
	case buyerID <= 0:
		return InvalidCommand("buyer id must be positive")
	case carrierID <= 0:
		return InvalidCommand("carrier id must be positive")
	case strings.TrimSpace(buyerZipCode) == "":
		return InvalidCommand("buyer zip code is required")
	case len(buyerZipCode) > maxBuyerZipCodeLength:
		return InvalidCommand("buyer zip code must be at most 20 characters")
	}
	return nil
}

// Offer aggregate root
type Offer struct {
	ID            int64
	SellerID      int64
	Seller        SellerSnapshot
	Details       Details
	Status        Status
	Assignment    *Assignment
	SearchIndexID models.ID
	Timestamps    models.Timestamps
	Version       models.Version

	events []*events.Event
}

// CreateOffer factory method. The id is assigned by the store on insert, so the
// created event is recorded by MarkCreated once it is known.
func CreateOffer(seller *Seller, details Details, now time.Time) (*Offer, error) {
	if seller == nil {
		return nil, InvalidCommand("seller is required")
	}
	if err := details.Validate(); err != nil {
		return nil, err
	}

	return &Offer{
		SellerID: seller.ID,
		Seller: SellerSnapshot{
			NetworkID: seller.NetworkID,
			Name:      seller.Name,
		},
		Details:       details,
		Status:        StatusOffered,
		SearchIndexID: models.GenerateUUID(),
		Timestamps:    models.NewTimestamps(now),
		Version:       models.NewVersion(),
	}, nil
}

// MarkCreated records the created event after the store assigned an id
func (o *Offer) MarkCreated() {
	o.recordEvent(OfferCreated{
		OfferEventBase: o.eventBase(),
		Seller:         o.Seller,
		Details:        o.Details,
	})
}

// Assign moves the offer to assigned and sets every cross reference at once
func (o *Offer) Assign(assignment Assignment, now time.Time) error {
	if !o.Status.CanTransitionTo(StatusAssigned) {
		return &InvalidStateTransitionError{From: o.Status, To: StatusAssigned}
	}
	if err := assignment.Validate(); err != nil {
		return err
	}

	o.Status = StatusAssigned
	o.Assignment = &assignment
	o.touch(now)

	o.recordEvent(OfferAssigned{
		OfferEventBase: o.eventBase(),
		BuyerID:        assignment.BuyerID,
		CarrierID:      assignment.CarrierID,
		BuyerZipCode:   assignment.BuyerZipCode,
	})
	return nil
}

// Cancel moves the offer to canceled. Cross references of an assigned offer are kept.
func (o *Offer) Cancel(now time.Time) error {
	if !o.Status.CanTransitionTo(StatusCanceled) {
		return &InvalidStateTransitionError{From: o.Status, To: StatusCanceled}
	}

	o.Status = StatusCanceled
	o.touch(now)

	o.recordEvent(OfferCanceled{OfferEventBase: o.eventBase()})
	return nil
}

// Update applies the supplied fields of patch. Only offered offers are editable.
func (o *Offer) Update(patch DetailsPatch, now time.Time) error {
	if o.Status != StatusOffered {
		return &OfferCannotBeUpdatedError{Status: o.Status}
	}

	updated := patch.ApplyTo(o.Details)
	if err := updated.Validate(); err != nil {
		return err
	}

	o.Details = updated
	o.touch(now)

	o.recordEvent(OfferUpdated{OfferEventBase: o.eventBase()})
	return nil
}

// AggregateID returns the offer id in the form used by events
func (o *Offer) AggregateID() models.ID {
	return models.ID(strconv.FormatInt(o.ID, 10))
}

// PurchaseID returns the purchase reference or empty when unassigned
func (o *Offer) PurchaseID() string {
	if o.Assignment == nil {
		return ""
	}
	return o.Assignment.PurchaseID
}

// Events returns domain events
func (o *Offer) Events() []*events.Event {
	return o.events
}

// ClearEvents clears domain events
func (o *Offer) ClearEvents() {
	o.events = make([]*events.Event, 0)
}

func (o *Offer) touch(now time.Time) {
	o.Timestamps = o.Timestamps.Update(now)
	o.Version = o.Version.Update()
}

func (o *Offer) recordEvent(payload OfferEvent) {
	event := events.NewEvent(o.AggregateID(), payload.EventType(), payload).
		WithCorrelationID(o.SearchIndexID).
		WithMetadata("offer_id", strconv.FormatInt(o.ID, 10)).
		WithMetadata("status", o.Status.String())
	o.events = append(o.events, event)
}

// DetailsPatch carries the fields of an update. Nil means leave unchanged.
type DetailsPatch struct {
	VIN                         *string `json:"vin,omitempty"`
	Year                        *string `json:"year,omitempty"`
	Make                        *string `json:"make,omitempty"`
	Model                       *string `json:"model,omitempty"`
	Trim                        *string `json:"trim,omitempty"`
	BodyType                    *string `json:"body_type,omitempty"`
	CabType                     *string `json:"cab_type,omitempty"`
	DoorCount                   *int    `json:"door_count,omitempty"`
	FuelType                    *string `json:"fuel_type,omitempty"`
	BodyStyle                   *string `json:"body_style,omitempty"`
	Usage                       *string `json:"usage,omitempty"`
	ZipCode                     *string `json:"zip_code,omitempty"`
	OwnershipType               *string `json:"ownership_type,omitempty"`
	OwnershipTitleType          *string `json:"ownership_title_type,omitempty"`
	Mileage                     *int    `json:"mileage,omitempty"`
	IsMileageUnverifiable       *bool   `json:"is_mileage_unverifiable,omitempty"`
	DrivetrainCondition         *string `json:"drivetrain_condition,omitempty"`
	KeyOrFobAvailable           *string `json:"key_or_fob_available,omitempty"`
	WorkingBatteryInstalled     *string `json:"working_battery_installed,omitempty"`
	AllTiresInflated            *string `json:"all_tires_inflated,omitempty"`
	WheelsRemoved               *string `json:"wheels_removed,omitempty"`
	WheelsRemovedDriverFront    *bool   `json:"wheels_removed_driver_front,omitempty"`
	WheelsRemovedDriverRear     *bool   `json:"wheels_removed_driver_rear,omitempty"`
	WheelsRemovedPassengerFront *bool   `json:"wheels_removed_passenger_front,omitempty"`
	WheelsRemovedPassengerRear  *bool   `json:"wheels_removed_passenger_rear,omitempty"`
	BodyPanelsIntact            *string `json:"body_panels_intact,omitempty"`
	BodyDamageFree              *string `json:"body_damage_free,omitempty"`
	MirrorsLightsGlassIntact    *string `json:"mirrors_lights_glass_intact,omitempty"`
	InteriorIntact              *string `json:"interior_intact,omitempty"`
	FloodFireDamageFree         *string `json:"flood_fire_damage_free,omitempty"`
	EngineTransmissionCondition *string `json:"engine_transmission_condition,omitempty"`
	AirbagsDeployed             *string `json:"airbags_deployed,omitempty"`
}

// ApplyTo returns a copy of d with the supplied fields replaced
func (p DetailsPatch) ApplyTo(d Details) Details {
	set(&d.Vehicle.VIN, p.VIN)
	set(&d.Vehicle.Year, p.Year)
	set(&d.Vehicle.Make, p.Make)
	set(&d.Vehicle.Model, p.Model)
	set(&d.Vehicle.Trim, p.Trim)
	set(&d.Vehicle.BodyType, p.BodyType)
	set(&d.Vehicle.CabType, p.CabType)
	set(&d.Vehicle.DoorCount, p.DoorCount)
	set(&d.Vehicle.FuelType, p.FuelType)
	set(&d.Vehicle.BodyStyle, p.BodyStyle)
	set(&d.Vehicle.Usage, p.Usage)
	set(&d.Location.ZipCode, p.ZipCode)
	set(&d.Ownership.Type, p.OwnershipType)
	set(&d.Ownership.TitleType, p.OwnershipTitleType)
	set(&d.Condition.Mileage, p.Mileage)
	set(&d.Condition.IsMileageUnverifiable, p.IsMileageUnverifiable)
	set(&d.Condition.DrivetrainCondition, p.DrivetrainCondition)
	set(&d.Condition.KeyOrFobAvailable, p.KeyOrFobAvailable)
	set(&d.Condition.WorkingBatteryInstalled, p.WorkingBatteryInstalled)
	set(&d.Condition.AllTiresInflated, p.AllTiresInflated)
	set(&d.Condition.WheelsRemoved, p.WheelsRemoved)
	set(&d.Condition.WheelsRemovedDriverFront, p.WheelsRemovedDriverFront)
	set(&d.Condition.WheelsRemovedDriverRear, p.WheelsRemovedDriverRear)
	set(&d.Condition.WheelsRemovedPassengerFront, p.WheelsRemovedPassengerFront)
	set(&d.Condition.WheelsRemovedPassengerRear, p.WheelsRemovedPassengerRear)
	set(&d.Condition.BodyPanelsIntact, p.BodyPanelsIntact)
	set(&d.Condition.BodyDamageFree, p.BodyDamageFree)
	set(&d.Condition.MirrorsLightsGlassIntact, p.MirrorsLightsGlassIntact)
	set(&d.Condition.InteriorIntact, p.InteriorIntact)
	set(&d.Condition.FloodFireDamageFree, p.FloodFireDamageFree)
	set(&d.Condition.EngineTransmissionCondition, p.EngineTransmissionCondition)
	set(&d.Condition.AirbagsDeployed, p.AirbagsDeployed)
	return d
}

func set[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}
