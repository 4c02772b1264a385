package forms

import (
	"net/url"
	"slices"

	"github.com/rs/zerolog/log"

	"zendesk-analytics/internal/apperrors"
	"zendesk-analytics/internal/zendesk"
)

// Mapper reshapes submissions into Zendesk ticket payloads.
type Mapper struct {
	forms  map[string]FormSpec
	fields []Field
}

// NewMapper returns a mapper over the built-in form and field tables.
func NewMapper() *Mapper {
	return &Mapper{forms: formsByType, fields: fieldDictionary}
}

// Map returns the ticket to create for sub. Unknown form types fail with a
// ConfigurationError. Custom fields supplied on the ticket itself are discarded
// so only dictionary fields reach Zendesk.
func (m *Mapper) Map(sub Submission) (zendesk.TicketPayload, error) {
	form, ok := m.forms[sub.Data.Type]
	if !ok {
		log.Warn().Str("type", sub.Data.Type).Strs("known", FormTypes()).Msg("Submission references an unknown form type")
		return zendesk.TicketPayload{}, apperrors.Configuration(sub.Data.Type)
	}

	ticket := sub.Ticket
	ticket.TicketFormID = form.ID
	ticket.Tags = slices.Clone(form.Tags)
	ticket.CustomFields = []zendesk.CustomField{}

	for _, field := range m.fields {
		fv, present := sub.Data.Fields[field.Name]
		if !present {
			continue
		}
		value := fv.Value()
		if field.Name == imageURLField {
			value = decodeImageURL(value)
		}
		ticket.CustomFields = append(ticket.CustomFields, zendesk.CustomField{ID: field.ID, Value: value})
	}

	ignored := len(sub.Data.Fields) - len(ticket.CustomFields)
	log.Debug().Str("type", sub.Data.Type).Int("fields", len(ticket.CustomFields)).Int("ignored", ignored).Msg("Mapped submission to ticket")
	return ticket, nil
}

func decodeImageURL(v any) any {
	s, ok := v.(string)
	if !ok {
		return v
	}
	decoded, err := url.PathUnescape(s)
	if err != nil {
		return s
	}
	return decoded
}
