package mcp

import (
	"context"
	"fmt"
	"time"

	sdk "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rs/zerolog/log"

	"zendesk-analytics/internal/analytics"
	"zendesk-analytics/internal/validation"
	"zendesk-analytics/internal/zendesk"
)

func textResult(text string) *sdk.CallToolResult {
	return &sdk.CallToolResult{Content: []sdk.Content{&sdk.TextContent{Text: text}}}
}

func errorResult(doing string, err error) *sdk.CallToolResult {
	res := textResult(fmt.Sprintf("Error %s: %s", doing, err.Error()))
	res.IsError = true
	return res
}

// run executes a tool body and converts its outcome into a tool result.
// Failures are reported in-band so the client sees the message.
func run(tool, doing string, fn func() (string, error)) (*sdk.CallToolResult, any, error) {
	start := time.Now()
	text, err := fn()
	if err != nil {
		log.Error().Err(err).Str("tool", tool).Dur("duration", time.Since(start)).Msg("Tool call failed")
		return errorResult(doing, err), nil, nil
	}
	log.Info().Str("tool", tool).Dur("duration", time.Since(start)).Msg("Tool call completed")
	return textResult(text), nil, nil
}

// resolveDays applies the default window. Zero means no date filter.
func resolveDays(days *int) int {
	if days == nil {
		return DefaultDays
	}
	return *days
}

func validateRequest(email string, days int, emailTo string, emailToRequired bool) error {
	v := validation.New().Required("email", email).Email("email", email).Min("days", days, 0)
	if emailToRequired {
		v.Required("emailTo", emailTo)
	}
	if emailTo != "" {
		v.Email("emailTo", emailTo)
	}
	return v.Err()
}

// window fetches the requester's tickets and keeps those created within days.
func (s *Server) window(ctx context.Context, email string, days int) ([]zendesk.Ticket, error) {
	all, err := s.tickets.Fetch(ctx, email)
	if err != nil {
		return nil, err
	}
	filtered := analytics.FilterCreatedWithin(all, days, s.now())
	log.Debug().
		Int("fetched", len(all)).
		Int("inWindow", len(filtered)).
		Int("days", days).
		Msg("Tickets loaded for analysis")
	return filtered, nil
}
