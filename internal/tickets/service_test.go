package tickets

import (
	"context"
	"errors"
	"testing"

	"zendesk-analytics/internal/apperrors"
	"zendesk-analytics/internal/forms"
	"zendesk-analytics/internal/zendesk"
)

// mockClient embeds the interface so only the methods a test needs are implemented.
type mockClient struct {
	zendesk.Client
	created   []zendesk.TicketPayload
	updated   []int64
	tickets   map[int64]zendesk.TicketDTO
	users     map[int64]zendesk.UserDTO
	searchErr error
}

func (m *mockClient) CreateTicket(ctx context.Context, p zendesk.TicketPayload) (*zendesk.TicketResponse, error) {
	m.created = append(m.created, p)
	return &zendesk.TicketResponse{Ticket: zendesk.TicketDTO{ID: 100, Subject: p.Subject}}, nil
}

func (m *mockClient) SearchTicketsByEmail(ctx context.Context, email string) (*zendesk.SearchResponse, error) {
	if m.searchErr != nil {
		return nil, m.searchErr
	}
	return &zendesk.SearchResponse{Results: []zendesk.TicketDTO{{ID: 1, Status: "open", CreatedAt: "2024-01-01T00:00:00Z"}}, Count: 1}, nil
}

func (m *mockClient) GetTicket(ctx context.Context, id int64) (*zendesk.TicketDTO, error) {
	t, ok := m.tickets[id]
	if !ok {
		return nil, apperrors.NotFound("zendesk.GetTicket", "ticket not found")
	}
	return &t, nil
}

func (m *mockClient) GetUser(ctx context.Context, id int64) (*zendesk.UserDTO, error) {
	u, ok := m.users[id]
	if !ok {
		return nil, apperrors.NotFound("zendesk.GetUser", "user not found")
	}
	return &u, nil
}

func (m *mockClient) UpdateTicket(ctx context.Context, id int64, u zendesk.TicketUpdate) (*zendesk.TicketResponse, error) {
	m.updated = append(m.updated, id)
	return &zendesk.TicketResponse{Ticket: zendesk.TicketDTO{ID: id}}, nil
}

func newMock() *mockClient {
	return &mockClient{
		tickets: map[int64]zendesk.TicketDTO{7: {ID: 7, Status: "pending", RequesterID: 70}},
		users:   map[int64]zendesk.UserDTO{70: {ID: 70, Email: "Owner@Example.com"}},
	}
}

func TestCreate_UnknownFormNeverReachesClient(t *testing.T) {
	mock := newMock()
	svc := NewService(mock, nil)

	sub := forms.Submission{Data: forms.SubmissionData{Type: "unknown"}}
	_, err := svc.Create(context.Background(), sub)

	if !errors.Is(err, apperrors.ErrConfiguration) {
		t.Fatalf("err = %v, want ConfigurationError", err)
	}
	if len(mock.created) != 0 {
		t.Errorf("CreateTicket called %d times, want 0", len(mock.created))
	}
}

func TestCreate_MapsAndSends(t *testing.T) {
	mock := newMock()
	svc := NewService(mock, forms.NewMapper())

	sub := forms.Submission{
		Ticket: zendesk.TicketPayload{Subject: "Hello"},
		Data:   forms.SubmissionData{Type: "test", Fields: map[string]forms.FieldValue{"Tienda": forms.StringValue("x")}},
	}
	resp, err := svc.Create(context.Background(), sub)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if resp.Ticket.ID != 100 || len(mock.created) != 1 {
		t.Fatalf("resp = %+v, created = %d", resp, len(mock.created))
	}
	if mock.created[0].TicketFormID != 35689142494107 || len(mock.created[0].CustomFields) != 1 {
		t.Errorf("payload = %+v", mock.created[0])
	}
}

func TestUpdateForRequester(t *testing.T) {
	status := "solved"
	update := zendesk.TicketUpdate{Status: &status}

	tests := []struct {
		name        string
		id          int64
		email       string
		update      zendesk.TicketUpdate
		wantErr     error
		wantUpdates int
	}{
		{"Match", 7, "owner@example.com", update, nil, 1},
		{"MatchWithWhitespace", 7, " OWNER@example.com ", update, nil, 1},
		{"Mismatch", 7, "intruder@example.com", update, apperrors.ErrAuthorizationMismatch, 0},
		{"TicketMissing", 8, "owner@example.com", update, apperrors.ErrNotFound, 0},
		{"InvalidEmail", 7, "not-an-email", update, apperrors.ErrValidation, 0},
		{"EmptyUpdate", 7, "owner@example.com", zendesk.TicketUpdate{}, apperrors.ErrValidation, 0},
		{"BadID", 0, "owner@example.com", update, apperrors.ErrValidation, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := newMock()
			svc := NewService(mock, nil)

			_, err := svc.UpdateForRequester(context.Background(), tt.id, tt.email, tt.update)
			if tt.wantErr == nil && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Fatalf("err = %v, want %v", err, tt.wantErr)
			}
			if len(mock.updated) != tt.wantUpdates {
				t.Errorf("UpdateTicket called %d times, want %d", len(mock.updated), tt.wantUpdates)
			}
		})
	}
}

func TestStatus(t *testing.T) {
	svc := NewService(newMock(), nil)
	got, err := svc.Status(context.Background(), 7)
	if err != nil || got != "pending" {
		t.Errorf("Status(7) = %q, %v", got, err)
	}
	if _, err := svc.Status(context.Background(), -1); !errors.Is(err, apperrors.ErrValidation) {
		t.Errorf("Status(-1) err = %v", err)
	}
}

func TestFetch_PropagatesTransportFailure(t *testing.T) {
	mock := newMock()
	mock.searchErr = apperrors.Transport("zendesk.SearchTicketsByEmail", errors.New("connection reset"))
	svc := NewService(mock, nil)

	tickets, err := svc.Fetch(context.Background(), "user@example.com")
	if !errors.Is(err, apperrors.ErrTransport) || tickets != nil {
		t.Errorf("Fetch = %v, %v; want nil, transport error", tickets, err)
	}
}

func TestFetch_MapsResults(t *testing.T) {
	tickets, err := NewService(newMock(), nil).Fetch(context.Background(), "user@example.com")
	if err != nil || len(tickets) != 1 || tickets[0].CreatedAt.IsZero() {
		t.Errorf("Fetch = %+v, %v", tickets, err)
	}
}
