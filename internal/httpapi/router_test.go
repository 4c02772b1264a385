package httpapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"zendesk-analytics/internal/analytics"
	"zendesk-analytics/internal/apperrors"
	"zendesk-analytics/internal/config"
	"zendesk-analytics/internal/tickets"
	"zendesk-analytics/internal/zendesk"
)

type fakeClient struct {
	zendesk.Client
	created   []zendesk.TicketPayload
	updates   []zendesk.TicketUpdate
	searchErr error
}

func (f *fakeClient) CreateTicket(_ context.Context, p zendesk.TicketPayload) (*zendesk.TicketResponse, error) {
	f.created = append(f.created, p)
	return &zendesk.TicketResponse{Ticket: zendesk.TicketDTO{ID: 501, Subject: p.Subject, Status: "new"}}, nil
}

func (f *fakeClient) SearchTicketsByEmail(_ context.Context, email string) (*zendesk.SearchResponse, error) {
	if f.searchErr != nil {
		return nil, f.searchErr
	}
	return &zendesk.SearchResponse{Results: []zendesk.TicketDTO{{ID: 7, Status: "open"}}, Count: 1}, nil
}

func (f *fakeClient) GetTicket(_ context.Context, id int64) (*zendesk.TicketDTO, error) {
	if id != 7 {
		return nil, apperrors.NotFound("zendesk.GetTicket", "ticket not found")
	}
	return &zendesk.TicketDTO{ID: 7, Status: "pending", RequesterID: 70}, nil
}

func (f *fakeClient) GetUser(_ context.Context, id int64) (*zendesk.UserDTO, error) {
	return &zendesk.UserDTO{ID: id, Email: "owner@example.com"}, nil
}

func (f *fakeClient) UpdateTicket(_ context.Context, id int64, u zendesk.TicketUpdate) (*zendesk.TicketResponse, error) {
	f.updates = append(f.updates, u)
	return &zendesk.TicketResponse{Ticket: zendesk.TicketDTO{ID: id, Status: "solved"}}, nil
}

func testConfig() *config.AppConfig {
	return &config.AppConfig{
		Calendar:           analytics.DefaultCalendar(),
		Env:                "production",
		CORSAllowedOrigins: []string{"*"},
	}
}

func newTestRouter(cfg *config.AppConfig, client *fakeClient) http.Handler {
	return NewRouter(cfg, tickets.NewService(client, nil))
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) ErrorResponse {
	t.Helper()
	var resp ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	return resp
}

func TestCreateTicket_MapsFormAndWrapsResult(t *testing.T) {
	client := &fakeClient{}
	router := newTestRouter(testConfig(), client)

	body := `{"ticket":{"subject":"Promo","comment":{"body":"hi"}},"data":{"type":"promotion","NombreDeLaPromocion":"Summer"}}`
	rec := do(t, router, http.MethodPost, "/form", body)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var resp struct {
		Result zendesk.TicketResponse `json:"result"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, int64(501), resp.Result.Ticket.ID)

	require.Len(t, client.created, 1)
	assert.Equal(t, int64(27679416279323), client.created[0].TicketFormID)
	assert.NotEmpty(t, rec.Header().Get(RequestIDHeader))
}

func TestCreateTicket_UnknownFormIsConfigurationError(t *testing.T) {
	client := &fakeClient{}
	router := newTestRouter(testConfig(), client)

	rec := do(t, router, http.MethodPost, "/api/v1/ticket/form", `{"ticket":{"subject":"x"},"data":{"type":"warranty"}}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	resp := decodeError(t, rec)
	assert.True(t, strings.HasPrefix(resp.UserMessage, "ConfigurationError | "), resp.UserMessage)
	assert.Equal(t, "ERROR CATALOG: TicketCouldntBeCreated", resp.InternalMessage)
	assert.Equal(t, "forms.Map | Check system logs for more detail", resp.MoreInfo)
	assert.Empty(t, client.created)
}

func TestByEmail(t *testing.T) {
	router := newTestRouter(testConfig(), &fakeClient{})

	rec := do(t, router, http.MethodGet, "/by-email?email=owner@example.com", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"result":{"results":[`)

	rec = do(t, router, http.MethodGet, "/by-email?email=nope", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.True(t, strings.HasPrefix(decodeError(t, rec).UserMessage, "ValidationError | email"))
}

func TestByEmail_UpstreamTimeout(t *testing.T) {
	client := &fakeClient{searchErr: apperrors.Timeout("zendesk.SearchTicketsByEmail", context.DeadlineExceeded)}
	cfg := testConfig()
	cfg.Env = "local"
	router := newTestRouter(cfg, client)

	rec := do(t, router, http.MethodGet, "/by-email?email=owner@example.com", "")
	assert.Equal(t, http.StatusGatewayTimeout, rec.Code)
	resp := decodeError(t, rec)
	assert.Equal(t, "ERROR CATALOG: ZendeskTimeout", resp.InternalMessage)
	assert.Contains(t, resp.MoreInfo, "context deadline exceeded", "local environments expose the error chain")
}

func TestUpdate_RequesterMismatchNeverWrites(t *testing.T) {
	client := &fakeClient{}
	router := newTestRouter(testConfig(), client)

	rec := do(t, router, http.MethodPut, "/update/7/intruder@example.com", `{"status":"solved"}`)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "ERROR CATALOG: TicketRequesterMismatch", decodeError(t, rec).InternalMessage)
	assert.Empty(t, client.updates)
}

func TestUpdate_Owner(t *testing.T) {
	client := &fakeClient{}
	router := newTestRouter(testConfig(), client)

	rec := do(t, router, http.MethodPut, "/api/v1/ticket/update/7/OWNER@example.com", `{"status":"solved"}`)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	require.Len(t, client.updates, 1)
	require.NotNil(t, client.updates[0].Status)
	assert.Equal(t, "solved", *client.updates[0].Status)
}

func TestUpdate_PercentEncodedEmail(t *testing.T) {
	tests := []struct {
		name string
		path string
		code int
		want int
	}{
		{"encoded at sign", "/update/7/owner%40example.com", http.StatusOK, 1},
		{"encoded under api prefix", "/api/v1/ticket/update/7/OWNER%40example.com", http.StatusOK, 1},
		{"encoded plus is another requester", "/update/7/owner%2Btag%40example.com", http.StatusForbidden, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := &fakeClient{}
			router := newTestRouter(testConfig(), client)

			rec := do(t, router, http.MethodPut, tt.path, `{"status":"solved"}`)

			assert.Equal(t, tt.code, rec.Code, rec.Body.String())
			assert.Len(t, client.updates, tt.want)
		})
	}
}

func TestUpdate_RejectsRequesterChange(t *testing.T) {
	client := &fakeClient{}
	router := newTestRouter(testConfig(), client)

	rec := do(t, router, http.MethodPut, "/update/7/owner@example.com", `{"requester_id": 99}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, client.updates)
}

func TestStatus(t *testing.T) {
	router := newTestRouter(testConfig(), &fakeClient{})

	rec := do(t, router, http.MethodGet, "/status/7", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"result":"pending"}`, rec.Body.String())

	rec = do(t, router, http.MethodGet, "/status/abc", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, router, http.MethodGet, "/status/8", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestWebhookAndHealth(t *testing.T) {
	router := newTestRouter(testConfig(), &fakeClient{})

	rec := do(t, router, http.MethodPost, "/webhook/zendesk", `{"ticket_id": 7, "event": "updated"}`)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = do(t, router, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = do(t, router, http.MethodGet, "/metrics", "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestWebhook_AlwaysAcknowledges(t *testing.T) {
	router := newTestRouter(testConfig(), &fakeClient{})

	for _, body := range []string{"", "not json", `{"ticket_id": 7}`} {
		rec := do(t, router, http.MethodPost, "/webhook/zendesk", body)
		assert.Equal(t, http.StatusOK, rec.Code, "body %q", body)
	}
}

func TestNotFound(t *testing.T) {
	router := newTestRouter(testConfig(), &fakeClient{})

	rec := do(t, router, http.MethodGet, "/nope", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"status":"ERROR","message":"Page not found"}`, rec.Body.String())
}

func TestRateLimiter(t *testing.T) {
	cfg := testConfig()
	cfg.RateLimitRPS = 1
	cfg.RateLimitBurst = 2
	router := newTestRouter(cfg, &fakeClient{})

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		codes = append(codes, do(t, router, http.MethodGet, "/health", "").Code)
	}
	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)
}

func TestRateLimiter_IgnoresForwardedForByDefault(t *testing.T) {
	cfg := testConfig()
	cfg.RateLimitRPS = 1
	cfg.RateLimitBurst = 1
	router := newTestRouter(cfg, &fakeClient{})

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		req.Header.Set("X-Forwarded-For", fmt.Sprintf("198.51.100.%d", i+1))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		codes = append(codes, rec.Code)
	}
	assert.Equal(t, []int{http.StatusOK, http.StatusTooManyRequests, http.StatusTooManyRequests}, codes)
}

func TestRateLimiter_TrustedProxyKeysOnForwardedFor(t *testing.T) {
	cfg := testConfig()
	cfg.RateLimitRPS = 1
	cfg.RateLimitBurst = 1
	cfg.TrustProxyHeaders = true
	router := newTestRouter(cfg, &fakeClient{})

	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		req.Header.Set("X-Forwarded-For", fmt.Sprintf("198.51.100.%d", i+1))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)
	}
}

func TestRecoverer(t *testing.T) {
	h := RequestID(Recoverer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	})))
	rec := do(t, h, http.MethodGet, "/", "")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "ERROR CATALOG: E_DEFAULT", decodeError(t, rec).InternalMessage)
}

func TestClientIP(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "192.0.2.1:5555"
	req.Header.Set("X-Forwarded-For", "203.0.113.7, 10.0.0.1")

	assert.Equal(t, "192.0.2.1", clientIP(req, false))
	assert.Equal(t, "203.0.113.7", clientIP(req, true))

	req.Header.Del("X-Forwarded-For")
	req.Header.Set("X-Real-IP", "203.0.113.9")
	assert.Equal(t, "203.0.113.9", clientIP(req, true))
}
