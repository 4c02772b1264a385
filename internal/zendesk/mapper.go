package zendesk

import (
	"github.com/rs/zerolog/log"
)

// MapTicket transforms a Zendesk DTO into a domain Ticket.
// Unparseable timestamps leave the zero value and are logged at debug level.
func MapTicket(item TicketDTO) Ticket {
	ticket := Ticket{
		ID:          item.ID,
		Subject:     item.Subject,
		Status:      item.Status,
		RequesterID: item.RequesterID,
		Tags:        item.Tags,
	}

	if t, err := ParseTime(item.CreatedAt); err == nil {
		ticket.CreatedAt = t
	} else {
		log.Debug().Int64("ticket_id", item.ID).Str("created_at", item.CreatedAt).Msg("Unparseable created_at")
	}

	if item.SolvedAt != nil && *item.SolvedAt != "" {
		if t, err := ParseTime(*item.SolvedAt); err == nil {
			ticket.SolvedAt = &t
		}
	}

	if m := item.MetricEvents; m != nil && m.ReplyTimeInMinutes != nil && m.ReplyTimeInMinutes.Calendar != nil {
		v := *m.ReplyTimeInMinutes.Calendar
		ticket.FirstReplyMinutes = &v
	}

	return ticket
}

// MapTickets maps a whole search page, preserving order.
func MapTickets(items []TicketDTO) []Ticket {
	tickets := make([]Ticket, 0, len(items))
	for _, item := range items {
		tickets = append(tickets, MapTicket(item))
	}
	return tickets
}
