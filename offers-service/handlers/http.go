package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/draftea/offer-system/offers-service/application"
	"github.com/draftea/offer-system/offers-service/domain"
	"github.com/draftea/offer-system/shared/logging"
	"github.com/go-chi/chi/v5"
	"github.com/pkg/errors"
)

// OfferHandlers contains offer HTTP handlers
type OfferHandlers struct {
	createOffer *application.CreateOffer
	getOffer    *application.GetOffer
	listOffers  *application.ListOffers
	updateOffer *application.UpdateOffer
	assignOffer *application.AssignOffer
	cancelOffer *application.CancelOffer
	listSellers *application.ListSellers
	logger      *slog.Logger
}

// NewOfferHandlers creates new offer handlers
func NewOfferHandlers(
	createOffer *application.CreateOffer,
	getOffer *application.GetOffer,
	listOffers *application.ListOffers,
	updateOffer *application.UpdateOffer,
	assignOffer *application.AssignOffer,
	cancelOffer *application.CancelOffer,
	listSellers *application.ListSellers,
	logger *slog.Logger,
) *OfferHandlers {
	return &OfferHandlers{
		createOffer: createOffer,
		getOffer:    getOffer,
		listOffers:  listOffers,
		updateOffer: updateOffer,
		assignOffer: assignOffer,
		cancelOffer: cancelOffer,
		listSellers: listSellers,
		logger:      logger,
	}
}

// CreateOffer handles offer creation requests
func (h *OfferHandlers) CreateOffer(w http.ResponseWriter, r *http.Request) {
	var cmd application.CreateOfferCommand
	if err := json.NewDecoder(r.Body).Decode(&cmd); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	response, err := h.createOffer.Execute(r.Context(), &cmd)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, response)
}

// GetOffer handles offer retrieval requests
func (h *OfferHandlers) GetOffer(w http.ResponseWriter, r *http.Request) {
	offerID, ok := offerIDParam(w, r)
	if !ok {
		return
	}

	response, err := h.getOffer.Execute(r.Context(), &application.GetOfferQuery{OfferID: offerID})
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, response)
}

// ListOffers handles filtered, sorted and paged offer listings
func (h *OfferHandlers) ListOffers(w http.ResponseWriter, r *http.Request) {
	query, err := parseListOffersQuery(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	response, err := h.listOffers.Execute(r.Context(), query)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, response)
}

// UpdateOffer handles partial updates of an offered offer
func (h *OfferHandlers) UpdateOffer(w http.ResponseWriter, r *http.Request) {
	offerID, ok := offerIDParam(w, r)
	if !ok {
		return
	}

	var cmd application.UpdateOfferCommand
	if err := json.NewDecoder(r.Body).Decode(&cmd); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	cmd.OfferID = offerID

	response, err := h.updateOffer.Execute(r.Context(), &cmd)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, response)
}

// AssignOffer handles assignment of an offer to a buyer and carrier
func (h *OfferHandlers) AssignOffer(w http.ResponseWriter, r *http.Request) {
	offerID, ok := offerIDParam(w, r)
	if !ok {
		return
	}

	var cmd application.AssignOfferCommand
	if err := json.NewDecoder(r.Body).Decode(&cmd); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	cmd.OfferID = offerID

	response, err := h.assignOffer.Execute(r.Context(), &cmd)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, response)
}

// CancelOffer handles offer cancellation requests
func (h *OfferHandlers) CancelOffer(w http.ResponseWriter, r *http.Request) {
	offerID, ok := offerIDParam(w, r)
	if !ok {
		return
	}

	response, err := h.cancelOffer.Execute(r.Context(), &application.CancelOfferCommand{OfferID: offerID})
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, response)
}

// ListSellers handles paged seller listings
func (h *OfferHandlers) ListSellers(w http.ResponseWriter, r *http.Request) {
	values := r.URL.Query()
	page, err := pageParam(values)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	pageSize, err := intParam(values.Get("pageSize"), "pageSize")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	response, err := h.listSellers.Execute(r.Context(), &application.ListSellersQuery{
		Page:     page,
		PageSize: pageSize,
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, response)
}

// Health reports liveness
func Health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// RegisterRoutes registers offer and seller routes
func (h *OfferHandlers) RegisterRoutes(r chi.Router) {
	r.Get("/health", Health)
	r.Route("/api", func(r chi.Router) {
		r.Route("/offers", func(r chi.Router) {
			r.Post("/", h.CreateOffer)
			r.Get("/", h.ListOffers)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", h.GetOffer)
				r.Put("/", h.UpdateOffer)
				r.Post("/assign", h.AssignOffer)
				r.Post("/cancel", h.CancelOffer)
			})
		})
		r.Get("/sellers", h.ListSellers)
	})
}

// StatusCode maps an error returned by a use case to its HTTP status
func StatusCode(err error) int {
	switch {
	case errors.Is(err, domain.ErrOfferNotFound), errors.Is(err, domain.ErrSellerNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrInvalidStateTransition),
		errors.Is(err, domain.ErrOfferCannotBeUpdated),
		errors.Is(err, domain.ErrConcurrentModification):
		return http.StatusConflict
	case errors.Is(err, domain.ErrDownstreamCallFailed):
		return http.StatusBadGateway
	case errors.Is(err, domain.ErrInvalidCommand):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func (h *OfferHandlers) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := StatusCode(err)
	if status == http.StatusInternalServerError {
		logging.FromContext(r.Context(), h.logger).Error("request failed",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.String("error", err.Error()),
		)
		http.Error(w, "internal server error", status)
		return
	}
	http.Error(w, err.Error(), status)
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func offerIDParam(w http.ResponseWriter, r *http.Request) (int64, bool) {
	offerID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || offerID <= 0 {
		http.Error(w, "Offer ID must be a positive integer", http.StatusBadRequest)
		return 0, false
	}
	return offerID, true
}

func parseListOffersQuery(r *http.Request) (*application.ListOffersQuery, error) {
	values := r.URL.Query()
	query := &application.ListOffersQuery{
		Status: values.Get("status"),
		SortBy: values.Get("sortBy"),
	}

	var err error
	if query.CreatedAfter, err = timeParam(values.Get("createdAfter"), "createdAfter"); err != nil {
		return nil, err
	}
	if query.CreatedBefore, err = timeParam(values.Get("createdBefore"), "createdBefore"); err != nil {
		return nil, err
	}
	if raw := values.Get("sortDescending"); raw != "" {
		if query.SortDescending, err = strconv.ParseBool(raw); err != nil {
			return nil, errors.New("sortDescending must be a boolean")
		}
	}
	if query.Page, err = pageParam(values); err != nil {
		return nil, err
	}
	if query.PageSize, err = intParam(values.Get("pageSize"), "pageSize"); err != nil {
		return nil, err
	}

	return query, nil
}

// pageParam reads pageNumber, falling back to page
func pageParam(values url.Values) (int, error) {
	if raw := values.Get("pageNumber"); raw != "" {
		return intParam(raw, "pageNumber")
	}
	return intParam(values.Get("page"), "page")
}

func intParam(raw, name string) (int, error) {
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, errors.Errorf("%s must be an integer", name)
	}
	return v, nil
}

// timeParam accepts RFC 3339 timestamps or plain dates
func timeParam(raw, name string) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return &t, nil
	}
	if t, err := time.Parse(time.DateOnly, raw); err == nil {
		return &t, nil
	}
	return nil, errors.Errorf("%s must be an RFC 3339 timestamp or a YYYY-MM-DD date", name)
}
