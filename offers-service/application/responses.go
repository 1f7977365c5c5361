package application

import (
	"time"

	"github.com/draftea/offer-system/offers-service/domain"
)

// OfferResponse is the read model returned by every offer use case
type OfferResponse struct {
	ID              int64            `json:"id"`
	SellerID        int64            `json:"seller_id"`
	SellerNetworkID string           `json:"seller_network_id"`
	SellerName      string           `json:"seller_name"`
	Status          string           `json:"status"`
	PurchaseID      *string          `json:"purchase_id"`
	TransportID     *string          `json:"transport_id"`
	BuyerID         *int64           `json:"buyer_id"`
	CarrierID       *int64           `json:"carrier_id"`
	BuyerZipCode    *string          `json:"buyer_zip_code"`
	SearchIndexID   string           `json:"search_index_id"`
	Vehicle         domain.Vehicle   `json:"vehicle"`
	Location        domain.Location  `json:"location"`
	Ownership       domain.Ownership `json:"ownership"`
	Condition       domain.Condition `json:"condition"`
	CreatedAt       time.Time        `json:"created_at"`
	LastModifiedAt  time.Time        `json:"last_modified_at"`
	Version         int              `json:"version"`
}

func newOfferResponse(offer *domain.Offer) *OfferResponse {
	resp := &OfferResponse{
		ID:              offer.ID,
		SellerID:        offer.SellerID,
		SellerNetworkID: offer.Seller.NetworkID,
		SellerName:      offer.Seller.Name,
		Status:          offer.Status.String(),
		SearchIndexID:   offer.SearchIndexID.String(),
		Vehicle:         offer.Details.Vehicle,
		Location:        offer.Details.Location,
		Ownership:       offer.Details.Ownership,
		Condition:       offer.Details.Condition,
		CreatedAt:       offer.Timestamps.CreatedAt,
		LastModifiedAt:  offer.Timestamps.UpdatedAt,
		Version:         offer.Version.Value,
	}

	if a := offer.Assignment; a != nil {
		resp.PurchaseID = &a.PurchaseID
		resp.TransportID = &a.TransportID
		resp.BuyerID = &a.BuyerID
		resp.CarrierID = &a.CarrierID
		resp.BuyerZipCode = &a.BuyerZipCode
	}
	return resp
}

// SellerResponse is the read model of a seller
type SellerResponse struct {
	ID             int64     `json:"id"`
	NetworkID      string    `json:"network_id"`
	Name           string    `json:"name"`
	Email          string    `json:"email"`
	CreatedAt      time.Time `json:"created_at"`
	LastModifiedAt time.Time `json:"last_modified_at"`
}

func newSellerResponse(seller *domain.Seller) *SellerResponse {
	return &SellerResponse{
		ID:             seller.ID,
		NetworkID:      seller.NetworkID,
		Name:           seller.Name,
		Email:          seller.Email,
		CreatedAt:      seller.Timestamps.CreatedAt,
		LastModifiedAt: seller.Timestamps.UpdatedAt,
	}
}
