package domain

import (
	"github.com/draftea/offer-system/shared/models"
)

// Seller is read only in this service
type Seller struct {
	ID         int64
	NetworkID  string
	Name       string
	Email      string
	Timestamps models.Timestamps
}
