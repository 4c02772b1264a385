package report

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/smtp"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/emersion/go-message/mail"
	"github.com/rs/zerolog/log"

	"zendesk-analytics/internal/config"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// Delivery is a generated report addressed to one recipient.
type Delivery struct {
	To       string
	Subject  string
	Body     string
	FilePath string
}

// Deliverer hands a report to its recipient.
type Deliverer interface {
	Deliver(ctx context.Context, d Delivery) error
}

// Subject returns the standard subject line, e.g. "Zendesk Brand Analysis Report - 2024-03-10".
func Subject(kind Kind, now time.Time) string {
	label := "Ticket"
	switch kind {
	case KindBrand:
		label = "Brand"
	case KindCountry:
		label = "Country"
	}
	return fmt.Sprintf("Zendesk %s Analysis Report - %s", label, now.Format("2006-01-02"))
}

// DimensionBody is the mail body sent with a brand or country workbook.
func DimensionBody(kind Kind, days int) string {
	period := fmt.Sprintf("covering the last %d days", days)
	if days <= 0 {
		period = "covering all available history"
	}
	return fmt.Sprintf("Please find attached the Zendesk %s analysis report %s.", kind, period)
}

// LogDeliverer records deliveries without sending them. The file stays on disk
// until the janitor evicts it.
type LogDeliverer struct{}

func (LogDeliverer) Deliver(_ context.Context, d Delivery) error {
	log.Warn().
		Str("to", d.To).
		Str("subject", d.Subject).
		Str("file", d.FilePath).
		Msg("SMTP is not configured; report was not e-mailed")
	return nil
}

type sendFunc func(addr string, a smtp.Auth, from string, to []string, msg []byte) error

// SMTPDeliverer e-mails reports as xlsx attachments.
type SMTPDeliverer struct {
	cfg  config.SMTPConfig
	send sendFunc
}

func NewSMTPDeliverer(cfg config.SMTPConfig) *SMTPDeliverer {
	return &SMTPDeliverer{cfg: cfg, send: smtp.SendMail}
}

// NewDeliverer picks SMTP delivery when it is configured, log-only otherwise.
func NewDeliverer(cfg config.SMTPConfig) Deliverer {
	if cfg.Enabled() {
		return NewSMTPDeliverer(cfg)
	}
	return LogDeliverer{}
}

// Deliver sends the message and removes the attachment once the server accepts it.
func (s *SMTPDeliverer) Deliver(ctx context.Context, d Delivery) error {
	if d.To == "" {
		return errors.New("no recipient specified")
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	msg, err := s.compose(d, time.Now())
	if err != nil {
		return fmt.Errorf("compose report e-mail: %w", err)
	}

	var auth smtp.Auth
	if s.cfg.User != "" {
		auth = smtp.PlainAuth("", s.cfg.User, s.cfg.Password, s.cfg.Host)
	}
	addr := s.cfg.Host + ":" + strconv.Itoa(s.cfg.Port)

	start := time.Now()
	if err := s.send(addr, auth, s.cfg.From, []string{d.To}, msg); err != nil {
		return fmt.Errorf("send report e-mail to %s: %w", d.To, err)
	}
	log.Info().Str("to", d.To).Str("subject", d.Subject).Dur("duration", time.Since(start)).Msg("Report e-mailed")

	if d.FilePath != "" {
		if err := os.Remove(d.FilePath); err != nil && !errors.Is(err, os.ErrNotExist) {
			log.Warn().Err(err).Str("file", d.FilePath).Msg("Failed to remove delivered report")
		}
	}
	return nil
}

func (s *SMTPDeliverer) compose(d Delivery, now time.Time) ([]byte, error) {
	var h mail.Header
	h.SetDate(now)
	h.SetAddressList("From", []*mail.Address{{Address: s.cfg.From}})
	h.SetAddressList("To", []*mail.Address{{Address: d.To}})
	h.SetSubject(d.Subject)

	var buf bytes.Buffer
	mw, err := mail.CreateWriter(&buf, h)
	if err != nil {
		return nil, err
	}

	var ih mail.InlineHeader
	ih.SetContentType("text/plain", map[string]string{"charset": "utf-8"})
	body, err := mw.CreateSingleInline(ih)
	if err != nil {
		return nil, err
	}
	if _, err := io.WriteString(body, d.Body); err != nil {
		return nil, err
	}
	if err := body.Close(); err != nil {
		return nil, err
	}

	if d.FilePath != "" {
		data, err := os.ReadFile(d.FilePath)
		if err != nil {
			return nil, err
		}
		var ah mail.AttachmentHeader
		ah.SetContentType(xlsxContentType, nil)
		ah.SetFilename(filepath.Base(d.FilePath))
		att, err := mw.CreateAttachment(ah)
		if err != nil {
			return nil, err
		}
		if _, err := att.Write(data); err != nil {
			return nil, err
		}
		if err := att.Close(); err != nil {
			return nil, err
		}
	}

	if err := mw.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
