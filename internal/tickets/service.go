package tickets

import (
	"context"
	"strings"

	"github.com/rs/zerolog/log"

	"zendesk-analytics/internal/apperrors"
	"zendesk-analytics/internal/forms"
	"zendesk-analytics/internal/validation"
	"zendesk-analytics/internal/zendesk"
)

// Service implements the ticket operations exposed over HTTP and MCP.
type Service struct {
	client zendesk.Client
	mapper *forms.Mapper
}

// NewService creates a ticket service backed by client.
func NewService(client zendesk.Client, mapper *forms.Mapper) *Service {
	if mapper == nil {
		mapper = forms.NewMapper()
	}
	return &Service{client: client, mapper: mapper}
}

// Create maps a form submission and files it as a new ticket.
func (s *Service) Create(ctx context.Context, sub forms.Submission) (*zendesk.TicketResponse, error) {
	if err := sub.Validate(); err != nil {
		return nil, err
	}
	payload, err := s.mapper.Map(sub)
	if err != nil {
		return nil, err
	}
	return s.client.CreateTicket(ctx, payload)
}

// ByEmail returns the raw search result for a requester.
func (s *Service) ByEmail(ctx context.Context, email string) (*zendesk.SearchResponse, error) {
	if err := validation.New().Required("email", email).Email("email", email).Err(); err != nil {
		return nil, err
	}
	return s.client.SearchTicketsByEmail(ctx, email)
}

// Fetch returns a requester's tickets mapped to the domain model.
func (s *Service) Fetch(ctx context.Context, email string) ([]zendesk.Ticket, error) {
	resp, err := s.ByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	return zendesk.MapTickets(resp.Results), nil
}

// UpdateForRequester applies update only if email is the ticket's requester.
// No write is issued when the check fails.
func (s *Service) UpdateForRequester(ctx context.Context, id int64, email string, update zendesk.TicketUpdate) (*zendesk.TicketResponse, error) {
	v := validation.New().Positive("ticketId", id).Required("email", email).Email("email", email)
	if update.IsEmpty() {
		return nil, apperrors.Validation("ticket", "update must change at least one field")
	}
	if err := v.Err(); err != nil {
		return nil, err
	}

	ticket, err := s.client.GetTicket(ctx, id)
	if err != nil {
		return nil, err
	}
	requester, err := s.client.GetUser(ctx, ticket.RequesterID)
	if err != nil {
		return nil, err
	}

	if !sameEmail(requester.Email, email) {
		log.Warn().Int64("ticket_id", id).Int64("requester_id", ticket.RequesterID).Msg("Update refused: requester mismatch")
		return nil, apperrors.AuthorizationMismatch(id, email)
	}

	return s.client.UpdateTicket(ctx, id, update)
}

// Status returns the current status of a ticket.
func (s *Service) Status(ctx context.Context, id int64) (string, error) {
	if id <= 0 {
		return "", apperrors.Validation("ticketId", "Must be a positive integer")
	}
	ticket, err := s.client.GetTicket(ctx, id)
	if err != nil {
		return "", err
	}
	return ticket.Status, nil
}

func sameEmail(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}
