package zendesk

import "time"

// SearchResponse is the top-level container for Zendesk search results.
type SearchResponse struct {
	Results  []TicketDTO `json:"results"`
	Count    int         `json:"count"`
	NextPage *string     `json:"next_page"`
}

// TicketResponse wraps a single ticket as returned by create/update calls.
type TicketResponse struct {
	Ticket TicketDTO `json:"ticket"`
}

// TicketDTO represents a ticket as Zendesk serialises it.
type TicketDTO struct {
	ID           int64            `json:"id"`
	URL          string           `json:"url,omitempty"`
	Subject      string           `json:"subject"`
	Description  string           `json:"description,omitempty"`
	Status       string           `json:"status"`
	Priority     string           `json:"priority,omitempty"`
	Type         string           `json:"type,omitempty"`
	RequesterID  int64            `json:"requester_id"`
	TicketFormID int64            `json:"ticket_form_id,omitempty"`
	Tags         []string         `json:"tags"`
	CreatedAt    string           `json:"created_at"`
	UpdatedAt    string           `json:"updated_at,omitempty"`
	SolvedAt     *string          `json:"solved_at,omitempty"`
	CustomFields []CustomField    `json:"custom_fields,omitempty"`
	MetricEvents *MetricEventsDTO `json:"metric_events,omitempty"`
}

// MetricEventsDTO carries SLA metrics attached to a ticket.
type MetricEventsDTO struct {
	ReplyTimeInMinutes *MinutesDTO `json:"reply_time_in_minutes,omitempty"`
}

// MinutesDTO splits a duration into calendar and business minutes.
type MinutesDTO struct {
	Calendar *float64 `json:"calendar"`
	Business *float64 `json:"business,omitempty"`
}

// UserDTO is the user record used for requester checks.
type UserDTO struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type userResponse struct {
	User UserDTO `json:"user"`
}

// CustomField is an {id, value} pair on a ticket.
type CustomField struct {
	ID    int64 `json:"id"`
	Value any   `json:"value"`
}

// Comment is the body of a new ticket or a ticket update.
type Comment struct {
	Body     string   `json:"body,omitempty"`
	HTMLBody string   `json:"html_body,omitempty"`
	Public   *bool    `json:"public,omitempty"`
	Uploads  []string `json:"uploads,omitempty"`
}

// Requester identifies who a new ticket is opened for.
type Requester struct {
	Name     string `json:"name,omitempty"`
	Email    string `json:"email"`
	LocaleID int    `json:"locale_id,omitempty"`
}

// TicketPayload is the body sent to the create endpoint.
type TicketPayload struct {
	Subject      string        `json:"subject,omitempty"`
	Comment      *Comment      `json:"comment,omitempty"`
	Requester    *Requester    `json:"requester,omitempty"`
	Priority     string        `json:"priority,omitempty"`
	Type         string        `json:"type,omitempty"`
	TicketFormID int64         `json:"ticket_form_id,omitempty"`
	Tags         []string      `json:"tags,omitempty"`
	CustomFields []CustomField `json:"custom_fields,omitempty"`
}

// TicketUpdate lists the fields a requester may change on their own ticket.
type TicketUpdate struct {
	Subject      *string       `json:"subject,omitempty"`
	Status       *string       `json:"status,omitempty"`
	Priority     *string       `json:"priority,omitempty"`
	Type         *string       `json:"type,omitempty"`
	Tags         []string      `json:"tags,omitempty"`
	Comment      *Comment      `json:"comment,omitempty"`
	CustomFields []CustomField `json:"custom_fields,omitempty"`
}

// IsEmpty reports whether the update would change nothing.
func (u TicketUpdate) IsEmpty() bool {
	return u.Subject == nil && u.Status == nil && u.Priority == nil && u.Type == nil &&
		u.Tags == nil && u.Comment == nil && u.CustomFields == nil
}

type ticketEnvelope[T any] struct {
	Ticket T `json:"ticket"`
}

// ParseTime parses the ISO-8601 timestamps Zendesk emits.
func ParseTime(s string) (time.Time, error) {
	return time.Parse(time.RFC3339, s)
}
