package infrastructure

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"

	"github.com/draftea/offer-system/offers-service/domain"
	"github.com/draftea/offer-system/shared/logging"
	"github.com/pkg/errors"
)

const createPurchasePath = "/api/purchases"

// PurchaseHTTPClient implements domain.PurchaseClient against the purchase API
type PurchaseHTTPClient struct {
	api    *jsonAPIClient
	logger *slog.Logger
}

// NewPurchaseHTTPClient creates a new PurchaseHTTPClient
func NewPurchaseHTTPClient(cfg DownstreamConfig, logger *slog.Logger) *PurchaseHTTPClient {
	return &PurchaseHTTPClient{
		api:    newJSONAPIClient(domain.ServicePurchase, cfg, logger),
		logger: logger,
	}
}

type createPurchaseRequest struct {
	OfferID         int64  `json:"offerId"`
	BuyerID         int64  `json:"buyerId"`
	ElasticSearchID string `json:"elasticSearchId"`
}

type createPurchaseResponse struct {
	Success bool `json:"success"`
	Data    struct {
		PurchaseID json.RawMessage `json:"purchaseId"`
	} `json:"data"`
	Message string   `json:"message"`
	Errors  []string `json:"errors"`
}

// CreatePurchase creates a purchase for the offer and returns its id
func (c *PurchaseHTTPClient) CreatePurchase(ctx context.Context, req domain.PurchaseRequest) (string, error) {
	var resp createPurchaseResponse
	err := c.api.postJSON(ctx, createPurchasePath, createPurchaseRequest{
		OfferID:         req.OfferID,
		BuyerID:         req.BuyerID,
		ElasticSearchID: req.CorrelationID.String(),
	}, &resp)
	if err != nil {
		return "", err
	}

	if !resp.Success {
		msg := resp.Message
		if len(resp.Errors) > 0 {
			msg = strings.TrimSpace(msg + " " + strings.Join(resp.Errors, "; "))
		}
		return "", errors.Errorf("purchase rejected: %s", msg)
	}

	purchaseID := opaqueID(resp.Data.PurchaseID)
	if purchaseID == "" {
		return "", errors.New("purchase response without purchase id")
	}

	logging.FromContext(ctx, c.logger).Info("purchase created",
		slog.Int64("offer_id", req.OfferID),
		slog.String("purchase_id", purchaseID),
	)

	return purchaseID, nil
}
