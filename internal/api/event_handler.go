package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"splitledger/internal/middleware"
	"splitledger/internal/models"
	"splitledger/internal/service"
)

// EventHandler serves the event lifecycle operations.
type EventHandler struct {
	events *service.EventService
}

// NewEventHandler creates an EventHandler.
func NewEventHandler(events *service.EventService) *EventHandler {
	return &EventHandler{events: events}
}

type splitRequest struct {
	UserID     string          `json:"user_id" validate:"required"`
	DebAmount  decimal.Decimal `json:"deb_amount"`
	AmountPaid decimal.Decimal `json:"amount_paid"`
	Included   *bool           `json:"included"`
}

func (r splitRequest) toModel() *models.Debitor {
	d := models.NewDebitor(r.UserID)
	d.DebAmount = r.DebAmount
	d.AmountPaid = r.AmountPaid
	if r.Included != nil {
		d.Included = *r.Included
	}
	return d
}

type createEventRequest struct {
	Title string          `json:"title" validate:"required"`
	Total decimal.Decimal `json:"total"`
	// ParticipantIDs requests an equal split over these users.
	// Mutually exclusive with Splits.
	ParticipantIDs []string `json:"participant_ids"`
	// Splits assigns explicit per-participant shares.
	Splits []splitRequest `json:"splits"`
}

// Create records a new event, either with explicit splits or divided
// equally among the given participants.
func (h *EventHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	var req createEventRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if len(req.ParticipantIDs) > 0 && len(req.Splits) > 0 {
		respondError(w, http.StatusBadRequest, "participant_ids and splits are mutually exclusive")
		return
	}

	event := models.NewEvent(req.Title, req.Total, userID)

	var err error
	if len(req.Splits) > 0 {
		splits := make([]*models.Debitor, len(req.Splits))
		for i, sr := range req.Splits {
			splits[i] = sr.toModel()
		}
		_, err = h.events.CreateEvent(r.Context(), event, splits)
	} else {
		_, err = h.events.CreateEqualSplitEvent(r.Context(), event, req.ParticipantIDs)
	}
	if err != nil {
		handleError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, toEventResponse(event))
}

// List returns every event the authenticated user participates in.
func (h *EventHandler) List(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	events, err := h.events.GetEventsForUser(r.Context(), userID)
	if err != nil {
		handleError(w, err)
		return
	}

	resp := make([]eventResponse, len(events))
	for i, e := range events {
		resp[i] = toEventResponse(e)
	}
	respondJSON(w, http.StatusOK, resp)
}

// Get returns a single event with its splits.
func (h *EventHandler) Get(w http.ResponseWriter, r *http.Request) {
	event, err := h.events.GetEvent(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, toEventResponse(event))
}

type updateEventRequest struct {
	Title  string          `json:"title" validate:"required"`
	Total  decimal.Decimal `json:"total"`
	Splits []splitRequest  `json:"splits"`
}

// Update is the bulk update path: replaces the event's title, total and
// split set.
func (h *EventHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req updateEventRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	event, err := h.events.GetEvent(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleError(w, err)
		return
	}

	event.Title = req.Title
	event.Total = req.Total
	splits := make([]*models.Debitor, len(req.Splits))
	for i, sr := range req.Splits {
		splits[i] = sr.toModel()
	}
	event.ReplaceSplits(splits)

	if _, err := h.events.Save(r.Context(), event); err != nil {
		handleError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, toEventResponse(event))
}

// Cancel marks an event cancelled. One-way.
func (h *EventHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	event, err := h.events.CancelEvent(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, toEventResponse(event))
}

// Delete removes an event and its splits.
func (h *EventHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.events.DeleteEvent(r.Context(), chi.URLParam(r, "id")); err != nil {
		handleError(w, err)
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}

// AddDebitor appends a split to an existing event.
func (h *EventHandler) AddDebitor(w http.ResponseWriter, r *http.Request) {
	var req splitRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	d, err := h.events.AddDebitor(r.Context(), chi.URLParam(r, "id"), req.toModel())
	if err != nil {
		handleError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, toDebitorResponse(d))
}

// DeleteDebitor removes a single split.
func (h *EventHandler) DeleteDebitor(w http.ResponseWriter, r *http.Request) {
	if err := h.events.DeleteDebitor(r.Context(), chi.URLParam(r, "id")); err != nil {
		handleError(w, err)
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}

type paymentRequest struct {
	Amount decimal.Decimal `json:"amount" validate:"required"`
	Note   string          `json:"note"`
}

// RecordPayment records a payment against a split.
func (h *EventHandler) RecordPayment(w http.ResponseWriter, r *http.Request) {
	var req paymentRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	d, err := h.events.RecordPayment(r.Context(), chi.URLParam(r, "id"), req.Amount, req.Note)
	if err != nil {
		handleError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, toDebitorResponse(d))
}
