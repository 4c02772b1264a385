package forms

import (
	"encoding/json"
	"errors"
	"testing"

	"zendesk-analytics/internal/apperrors"
	"zendesk-analytics/internal/zendesk"
)

func TestMapper_Map_Promotion(t *testing.T) {
	raw := `{
		"ticket": {"subject": "New promo", "comment": {"body": "details"}, "custom_fields": [{"id": 1, "value": "injected"}]},
		"data": {
			"type": "promotion",
			"NombreDeLaPromocion": "Summer",
			"Países": ["co_portal", "cl_portal"],
			"ImageUrl": "https%3A%2F%2Fcdn.example.com%2Fa%20b.png",
			"NotAField": "ignored"
		}
	}`
	var sub Submission
	if err := json.Unmarshal([]byte(raw), &sub); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	ticket, err := NewMapper().Map(sub)
	if err != nil {
		t.Fatalf("Map: %v", err)
	}

	if ticket.TicketFormID != 27679416279323 {
		t.Errorf("TicketFormID = %d", ticket.TicketFormID)
	}
	if len(ticket.Tags) != 2 || ticket.Tags[0] != "tipo_promocion" {
		t.Errorf("Tags = %v", ticket.Tags)
	}
	if ticket.Subject != "New promo" {
		t.Errorf("Subject = %q", ticket.Subject)
	}

	got := map[int64]any{}
	for _, cf := range ticket.CustomFields {
		got[cf.ID] = cf.Value
	}
	if len(got) != 3 {
		t.Fatalf("custom fields = %+v", ticket.CustomFields)
	}
	if _, ok := got[1]; ok {
		t.Error("caller-supplied custom field id leaked through")
	}
	if got[27679569250459] != "Summer" {
		t.Errorf("NombreDeLaPromocion = %v", got[27679569250459])
	}
	if got[24020399637531] != "https://cdn.example.com/a b.png" {
		t.Errorf("ImageUrl = %v", got[24020399637531])
	}
	if list, ok := got[24019769142299].([]string); !ok || len(list) != 2 {
		t.Errorf("Países = %#v", got[24019769142299])
	}
}

func TestMapper_Map_UnknownTypeIsConfigurationError(t *testing.T) {
	sub := Submission{Data: SubmissionData{Type: "refund", Fields: map[string]FieldValue{"Tienda": StringValue("x")}}}

	_, err := NewMapper().Map(sub)
	if !errors.Is(err, apperrors.ErrConfiguration) {
		t.Fatalf("err = %v, want ConfigurationError", err)
	}
	if apperrors.Code(err) != "TicketCouldntBeCreated" {
		t.Errorf("code = %q", apperrors.Code(err))
	}
}

func TestMapper_Map_MalformedImageURLKeptRaw(t *testing.T) {
	sub := Submission{Data: SubmissionData{Type: "test", Fields: map[string]FieldValue{"ImageUrl": StringValue("100%zz")}}}
	ticket, err := NewMapper().Map(sub)
	if err != nil {
		t.Fatalf("Map: %v", err)
	}
	if len(ticket.CustomFields) != 1 || ticket.CustomFields[0].Value != "100%zz" {
		t.Errorf("custom fields = %+v", ticket.CustomFields)
	}
}

func TestMapper_Map_FieldOrderFollowsDictionary(t *testing.T) {
	sub := Submission{Data: SubmissionData{Type: "test", Fields: map[string]FieldValue{
		"Prioridad": StringValue("alta"),
		"SubAsunto": StringValue("s"),
		"Tienda":    StringValue("t"),
	}}}
	ticket, _ := NewMapper().Map(sub)
	want := []int64{31386061455515, 24020021733787, 28014942320539}
	for i, id := range want {
		if ticket.CustomFields[i].ID != id {
			t.Fatalf("custom field order = %+v", ticket.CustomFields)
		}
	}
}

func TestSubmissionData_RejectsNestedObjects(t *testing.T) {
	var sub Submission
	err := json.Unmarshal([]byte(`{"data":{"type":"test","Tienda":{"id":5}}}`), &sub)
	if !errors.Is(err, apperrors.ErrValidation) {
		t.Errorf("err = %v, want validation error", err)
	}
}

func TestSubmission_Validate(t *testing.T) {
	ok := Submission{Data: SubmissionData{Type: "test"}}
	if err := ok.Validate(); err != nil {
		t.Errorf("Validate() = %v", err)
	}

	bad := Submission{Ticket: zendesk.TicketPayload{Requester: &zendesk.Requester{Email: "nope"}}}
	err := bad.Validate()
	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) || len(appErr.Fields) != 2 {
		t.Errorf("Validate() = %v, want errors on data.type and requester email", err)
	}
}

func TestFieldDictionary_NamesAreUnique(t *testing.T) {
	seen := map[string]bool{}
	for _, f := range fieldDictionary {
		if seen[f.Name] {
			t.Errorf("duplicate field name %q", f.Name)
		}
		seen[f.Name] = true
		if f.ID <= 0 {
			t.Errorf("field %q has no id", f.Name)
		}
	}
}
