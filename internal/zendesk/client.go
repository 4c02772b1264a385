package zendesk

import (
	"context"
	"time"
)

// Ticket is the subset of Zendesk ticket data needed for analytics.
type Ticket struct {
	ID          int64
	Subject     string
	Status      string
	RequesterID int64
	CreatedAt   time.Time
	SolvedAt    *time.Time
	Tags        []string
	// FirstReplyMinutes is the calendar first-reply time, nil when no agent has replied.
	FirstReplyMinutes *float64
}

// Client is the interface for interacting with the Zendesk REST API.
type Client interface {
	CreateTicket(ctx context.Context, payload TicketPayload) (*TicketResponse, error)
	SearchTicketsByEmail(ctx context.Context, email string) (*SearchResponse, error)
	GetTicket(ctx context.Context, id int64) (*TicketDTO, error)
	GetUser(ctx context.Context, id int64) (*UserDTO, error)
	UpdateTicket(ctx context.Context, id int64, update TicketUpdate) (*TicketResponse, error)
}

// Config holds the connection settings for Zendesk.
type Config struct {
	// BaseURL is the API root, e.g. https://acme.zendesk.com/api/v2
	BaseURL string
	Token   string

	// Timeout bounds every outbound call.
	Timeout time.Duration
	// MaxPages caps how many search pages are followed.
	MaxPages int
}

// NewClient creates a new Zendesk client based on the provided configuration.
func NewClient(cfg Config) Client {
	return NewAPIClient(cfg)
}
