package forms

import (
	"bytes"
	"encoding/json"
	"fmt"

	"zendesk-analytics/internal/apperrors"
	"zendesk-analytics/internal/validation"
	"zendesk-analytics/internal/zendesk"
)

// Submission is the body of a form post: a partial ticket plus typed form data.
type Submission struct {
	Ticket zendesk.TicketPayload `json:"ticket"`
	Data   SubmissionData        `json:"data"`
}

// SubmissionData is the form type discriminator and its field values.
type SubmissionData struct {
	Type   string
	Fields map[string]FieldValue
}

// FieldValue is a submitted value restricted to a string, number, bool or list of strings.
type FieldValue struct {
	v any
}

// Value returns the value as it should be sent to Zendesk.
func (f FieldValue) Value() any { return f.v }

// StringValue wraps a string field.
func StringValue(s string) FieldValue { return FieldValue{v: s} }

func (f *FieldValue) UnmarshalJSON(b []byte) error {
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()
	var raw any
	if err := dec.Decode(&raw); err != nil {
		return err
	}

	switch v := raw.(type) {
	case nil, string, bool, json.Number:
		f.v = v
	case []any:
		list := make([]string, 0, len(v))
		for _, item := range v {
			s, ok := item.(string)
			if !ok {
				return fmt.Errorf("list values must be strings")
			}
			list = append(list, s)
		}
		f.v = list
	default:
		return fmt.Errorf("unsupported value type %T", raw)
	}
	return nil
}

func (f FieldValue) MarshalJSON() ([]byte, error) {
	return json.Marshal(f.v)
}

func (d *SubmissionData) UnmarshalJSON(b []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(b, &raw); err != nil {
		return apperrors.Validation("data", "must be an object")
	}

	d.Fields = make(map[string]FieldValue, len(raw))
	for key, msg := range raw {
		if key == "type" {
			if err := json.Unmarshal(msg, &d.Type); err != nil {
				return apperrors.Validation("data.type", "must be a string")
			}
			continue
		}
		var fv FieldValue
		if err := json.Unmarshal(msg, &fv); err != nil {
			return apperrors.Validation("data."+key, err.Error())
		}
		d.Fields[key] = fv
	}
	return nil
}

func (d SubmissionData) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(d.Fields)+1)
	for k, v := range d.Fields {
		out[k] = v.v
	}
	out["type"] = d.Type
	return json.Marshal(out)
}

// Validate checks the parts of a submission that do not depend on configuration.
func (s Submission) Validate() error {
	v := validation.New()
	v.Required("data.type", s.Data.Type)
	if r := s.Ticket.Requester; r != nil {
		v.Required("ticket.requester.email", r.Email).Email("ticket.requester.email", r.Email)
	}
	return v.Err()
}
