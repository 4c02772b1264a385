package httpapi

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"zendesk-analytics/internal/apperrors"
	"zendesk-analytics/internal/forms"
	"zendesk-analytics/internal/tickets"
	"zendesk-analytics/internal/validation"
	"zendesk-analytics/internal/zendesk"
)

const maxBodyBytes = 100 << 20

// TicketHandler serves the ticket intake and lookup routes.
type TicketHandler struct {
	tickets *tickets.Service
	errors  *ErrorHandler
}

func NewTicketHandler(svc *tickets.Service, errs *ErrorHandler) *TicketHandler {
	return &TicketHandler{tickets: svc, errors: errs}
}

// RegisterRoutes sets up the ticket routes on r.
func (h *TicketHandler) RegisterRoutes(r chi.Router) {
	r.Post("/form", h.HandleCreate)
	r.Get("/by-email", h.HandleByEmail)
	r.Put("/update/{ticketId}/{email}", h.HandleUpdate)
	r.Get("/status/{ticketId}", h.HandleStatus)
	r.Post("/webhook/zendesk", h.HandleWebhook)
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v any, strict bool) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if strict {
		dec.DisallowUnknownFields()
	}
	if err := dec.Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return apperrors.Validation("body", "request body is required")
		}
		return apperrors.Validation("body", err.Error())
	}
	return nil
}

func (h *TicketHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var sub forms.Submission
	if err := decodeJSON(w, r, &sub, false); err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	resp, err := h.tickets.Create(r.Context(), sub)
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}
	log.Info().Int64("ticket_id", resp.Ticket.ID).Str("form", sub.Data.Type).Msg("Ticket created")
	writeResult(w, resp)
}

func (h *TicketHandler) HandleByEmail(w http.ResponseWriter, r *http.Request) {
	resp, err := h.tickets.ByEmail(r.Context(), r.URL.Query().Get("email"))
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}
	writeResult(w, resp)
}

func (h *TicketHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	email, err := url.PathUnescape(chi.URLParam(r, "email"))
	if err != nil {
		h.errors.Handle(w, r, apperrors.Validation("email", "Must be a valid email address"))
		return
	}
	v := validation.New()
	id := v.ID("ticketId", chi.URLParam(r, "ticketId"))
	v.Required("email", email).Email("email", email)
	if err := v.Err(); err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	var update zendesk.TicketUpdate
	if err := decodeJSON(w, r, &update, true); err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	resp, err := h.tickets.UpdateForRequester(r.Context(), id, email, update)
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}
	writeResult(w, resp)
}

func (h *TicketHandler) HandleStatus(w http.ResponseWriter, r *http.Request) {
	v := validation.New()
	id := v.ID("ticketId", chi.URLParam(r, "ticketId"))
	if err := v.Err(); err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	status, err := h.tickets.Status(r.Context(), id)
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}
	writeResult(w, status)
}

// HandleWebhook acknowledges Zendesk event callbacks. Whatever arrives is
// logged and the answer is always 200.
func (h *TicketHandler) HandleWebhook(w http.ResponseWriter, r *http.Request) {
	ev := log.Info().Str("request_id", GetRequestID(r.Context()))
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	switch {
	case err != nil:
		ev = ev.AnErr("read_error", err)
	case json.Valid(body):
		ev = ev.RawJSON("payload", body)
	case len(body) > 0:
		ev = ev.Str("payload", string(body))
	}
	ev.Msg("Zendesk webhook received")
	w.WriteHeader(http.StatusOK)
}
