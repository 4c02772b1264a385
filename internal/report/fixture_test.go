package report

import (
	"time"

	"zendesk-analytics/internal/zendesk"
)

var fixtureNow = time.Date(2024, 3, 10, 10, 0, 0, 0, time.UTC)

func ptr[T any](v T) *T { return &v }

// fixtureTickets returns six solved Crocs/Colombia tickets (30 min reply,
// 120 min resolution), five open JBL/Chile tickets (300 min reply) and one
// untagged new ticket, spread over six consecutive days.
func fixtureTickets() []zendesk.Ticket {
	var out []zendesk.Ticket
	id := int64(1000)
	for i := 0; i < 6; i++ {
		created := fixtureNow.AddDate(0, 0, -i)
		out = append(out, zendesk.Ticket{
			ID:                id,
			Subject:           "Crocs order",
			Status:            "solved",
			CreatedAt:         created,
			SolvedAt:          ptr(created.Add(120 * time.Minute)),
			Tags:              []string{"portal_ccs", "portal_co"},
			FirstReplyMinutes: ptr(30.0),
		})
		id++
	}
	for i := 0; i < 5; i++ {
		out = append(out, zendesk.Ticket{
			ID:                id,
			Subject:           "JBL warranty",
			Status:            "open",
			CreatedAt:         fixtureNow.AddDate(0, 0, -i).Add(time.Hour),
			Tags:              []string{"portal_jbl", "portal_cl"},
			FirstReplyMinutes: ptr(300.0),
		})
		id++
	}
	out = append(out, zendesk.Ticket{
		ID:        id,
		Subject:   "Untagged",
		Status:    "new",
		CreatedAt: fixtureNow.Add(2 * time.Hour),
	})
	return out
}
