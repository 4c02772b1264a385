package zendesk

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog/log"

	"zendesk-analytics/internal/apperrors"
)

const (
	defaultTimeout  = 30 * time.Second
	defaultMaxPages = 10
	maxErrorBody    = 512
)

type apiClient struct {
	cfg        Config
	httpClient *http.Client
}

// NewAPIClient builds a token-authenticated client for the Zendesk v2 API.
func NewAPIClient(cfg Config) Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	if cfg.MaxPages <= 0 {
		cfg.MaxPages = defaultMaxPages
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	return &apiClient{
		cfg:        cfg,
		httpClient: &http.Client{},
	}
}

func (c *apiClient) authenticateRequest(req *http.Request) {
	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", c.cfg.Token))
}

func (c *apiClient) CreateTicket(ctx context.Context, payload TicketPayload) (*TicketResponse, error) {
	var out TicketResponse
	body := ticketEnvelope[TicketPayload]{Ticket: payload}
	if err := c.do(ctx, "CreateTicket", http.MethodPost, c.cfg.BaseURL+"/tickets.json", body, &out); err != nil {
		return nil, err
	}
	log.Info().Int64("ticket_id", out.Ticket.ID).Msg("Created Zendesk ticket")
	return &out, nil
}

func (c *apiClient) SearchTicketsByEmail(ctx context.Context, email string) (*SearchResponse, error) {
	params := url.Values{}
	params.Set("query", fmt.Sprintf("type:ticket requester:%s", email))
	next := fmt.Sprintf("%s/search.json?%s", c.cfg.BaseURL, params.Encode())

	log.Info().Msg("Requesting tickets from Zendesk")
	log.Debug().Str("url", next).Msg("Zendesk search details")

	var all SearchResponse
	for page := 1; next != ""; page++ {
		var resp SearchResponse
		if err := c.do(ctx, "SearchTicketsByEmail", http.MethodGet, next, nil, &resp); err != nil {
			return nil, err
		}
		searchPages.Inc()
		all.Results = append(all.Results, resp.Results...)
		all.Count = resp.Count

		next = ""
		if resp.NextPage == nil || *resp.NextPage == "" {
			break
		}
		if page >= c.cfg.MaxPages {
			log.Warn().Int("pages", page).Int("count", resp.Count).Msg("Search page cap reached, results truncated")
			all.NextPage = resp.NextPage
			break
		}
		if !strings.HasPrefix(*resp.NextPage, c.cfg.BaseURL) {
			log.Warn().Str("next_page", *resp.NextPage).Msg("Ignoring next_page outside the configured Zendesk host")
			break
		}
		next = *resp.NextPage
	}

	log.Debug().Int("found", len(all.Results)).Int("count", all.Count).Msg("Zendesk search completed")
	return &all, nil
}

func (c *apiClient) GetTicket(ctx context.Context, id int64) (*TicketDTO, error) {
	var out TicketResponse
	if err := c.do(ctx, "GetTicket", http.MethodGet, fmt.Sprintf("%s/tickets/%d.json", c.cfg.BaseURL, id), nil, &out); err != nil {
		return nil, err
	}
	return &out.Ticket, nil
}

func (c *apiClient) GetUser(ctx context.Context, id int64) (*UserDTO, error) {
	var out userResponse
	if err := c.do(ctx, "GetUser", http.MethodGet, fmt.Sprintf("%s/users/%d.json", c.cfg.BaseURL, id), nil, &out); err != nil {
		return nil, err
	}
	return &out.User, nil
}

func (c *apiClient) UpdateTicket(ctx context.Context, id int64, update TicketUpdate) (*TicketResponse, error) {
	var out TicketResponse
	body := ticketEnvelope[TicketUpdate]{Ticket: update}
	if err := c.do(ctx, "UpdateTicket", http.MethodPut, fmt.Sprintf("%s/tickets/%d.json", c.cfg.BaseURL, id), body, &out); err != nil {
		return nil, err
	}
	log.Info().Int64("ticket_id", id).Msg("Updated Zendesk ticket")
	return &out, nil
}

// do performs a single bounded request and decodes the JSON response into out.
func (c *apiClient) do(ctx context.Context, op, method, target string, body any, out any) (err error) {
	opName := "zendesk." + op
	if c.cfg.Token == "" {
		requestsTotal.WithLabelValues(op, "unauthenticated").Inc()
		return apperrors.Authentication(opName, "ZENDESK_API_TOKEN is not configured")
	}

	timer := prometheus.NewTimer(requestDuration.WithLabelValues(op))
	defer timer.ObserveDuration()
	defer func() {
		outcome := "ok"
		if err != nil {
			outcome = strings.ToLower(apperrors.Name(err))
		}
		requestsTotal.WithLabelValues(op, outcome).Inc()
	}()

	ctx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
	defer cancel()

	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return apperrors.Transport(opName, fmt.Errorf("failed to encode request: %w", err))
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return apperrors.Transport(opName, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	c.authenticateRequest(req)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		if isTimeout(ctx, err) {
			log.Error().Str("operation", op).Dur("elapsed", time.Since(start)).Msg("Zendesk request timed out")
			return apperrors.Timeout(opName, err)
		}
		log.Error().Err(err).Str("operation", op).Msg("Zendesk request failed")
		return apperrors.Transport(opName, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		detail := readErrorDetail(resp.Body)
		log.Error().Str("operation", op).Int("status", resp.StatusCode).Str("detail", detail).Msg("Zendesk API returned an error")
		switch resp.StatusCode {
		case http.StatusUnauthorized, http.StatusForbidden:
			return apperrors.Authentication(opName, fmt.Sprintf("Zendesk authentication failed (%d). Please check ZENDESK_API_TOKEN.", resp.StatusCode))
		case http.StatusNotFound:
			return apperrors.NotFound(opName, fmt.Sprintf("Zendesk resource not found: %s", req.URL.Path))
		case http.StatusTooManyRequests:
			if retryAfter := resp.Header.Get("Retry-After"); retryAfter != "" {
				return apperrors.TransportStatus(opName, resp.StatusCode, fmt.Sprintf("rate limit exceeded, retry after %s seconds", retryAfter))
			}
			return apperrors.TransportStatus(opName, resp.StatusCode, "rate limit exceeded")
		default:
			return apperrors.TransportStatus(opName, resp.StatusCode, detail)
		}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		if isTimeout(ctx, err) {
			return apperrors.Timeout(opName, err)
		}
		return apperrors.Transport(opName, fmt.Errorf("failed to decode Zendesk response: %w", err))
	}
	return nil
}

func isTimeout(ctx context.Context, err error) bool {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

// readErrorDetail extracts Zendesk's {error, description} body, falling back to raw text.
func readErrorDetail(r io.Reader) string {
	raw, _ := io.ReadAll(io.LimitReader(r, maxErrorBody))
	var payload struct {
		Error       any    `json:"error"`
		Description string `json:"description"`
	}
	if json.Unmarshal(raw, &payload) == nil {
		switch e := payload.Error.(type) {
		case string:
			if payload.Description != "" {
				return e + ": " + payload.Description
			}
			return e
		case map[string]any:
			if msg, ok := e["message"].(string); ok {
				return msg
			}
		}
	}
	return strings.TrimSpace(string(raw))
}
