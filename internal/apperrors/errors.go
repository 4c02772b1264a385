package apperrors

import (
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"
)

// Kind classifies an error for the request boundary.
type Kind string

const (
	KindTransport             Kind = "TransportError"
	KindTimeout               Kind = "TimeoutError"
	KindAuthentication        Kind = "AuthenticationError"
	KindConfiguration         Kind = "ConfigurationError"
	KindAuthorizationMismatch Kind = "AuthorizationMismatchError"
	KindValidation            Kind = "ValidationError"
	KindNotFound              Kind = "NotFoundError"
)

// Sentinels matched by errors.Is against any AppError of the same kind.
var (
	ErrTransport             = errors.New("zendesk request failed")
	ErrTimeout               = errors.New("zendesk request timed out")
	ErrAuthentication        = errors.New("zendesk authentication failed")
	ErrConfiguration         = errors.New("form is not configured")
	ErrAuthorizationMismatch = errors.New("ticket does not belong to requester")
	ErrValidation            = errors.New("invalid input")
	ErrNotFound              = errors.New("resource not found")
)

// DefaultCode is reported when an error carries no catalog code.
const DefaultCode = "E_DEFAULT"

// AppError wraps an underlying error with the context needed to render it at a boundary.
type AppError struct {
	Kind       Kind
	Code       string // catalog code, e.g. TicketCouldntBeCreated
	Message    string
	StatusCode int
	Op         string // operation that failed, e.g. "zendesk.SearchTicketsByEmail"
	Fields     map[string]string
	Err        error
}

func (e *AppError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return string(e.Kind)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Is lets errors.Is(err, ErrTimeout) match any timeout AppError.
func (e *AppError) Is(target error) bool {
	return target == sentinel(e.Kind)
}

func sentinel(k Kind) error {
	switch k {
	case KindTransport:
		return ErrTransport
	case KindTimeout:
		return ErrTimeout
	case KindAuthentication:
		return ErrAuthentication
	case KindConfiguration:
		return ErrConfiguration
	case KindAuthorizationMismatch:
		return ErrAuthorizationMismatch
	case KindValidation:
		return ErrValidation
	case KindNotFound:
		return ErrNotFound
	default:
		return nil
	}
}

// Transport reports a failed outbound call. The original message is preserved.
func Transport(op string, err error) *AppError {
	msg := "request failed"
	if err != nil {
		msg = err.Error()
	}
	return &AppError{
		Kind:       KindTransport,
		Code:       "ZendeskRequestFailed",
		Message:    msg,
		StatusCode: http.StatusBadGateway,
		Op:         op,
		Err:        err,
	}
}

// TransportStatus reports a non-2xx response from the ticketing API.
func TransportStatus(op string, status int, detail string) *AppError {
	msg := fmt.Sprintf("Zendesk API returned status %d", status)
	if detail != "" {
		msg = fmt.Sprintf("%s: %s", msg, detail)
	}
	return &AppError{
		Kind:       KindTransport,
		Code:       "ZendeskRequestFailed",
		Message:    msg,
		StatusCode: http.StatusBadGateway,
		Op:         op,
	}
}

func Timeout(op string, err error) *AppError {
	return &AppError{
		Kind:       KindTimeout,
		Code:       "ZendeskTimeout",
		Message:    fmt.Sprintf("Zendesk did not answer in time (%s)", op),
		StatusCode: http.StatusGatewayTimeout,
		Op:         op,
		Err:        err,
	}
}

func Authentication(op, message string) *AppError {
	return &AppError{
		Kind:       KindAuthentication,
		Code:       "ZendeskUnauthenticated",
		Message:    message,
		StatusCode: http.StatusBadGateway,
		Op:         op,
	}
}

// Configuration is raised when a submission references an unmapped form type.
func Configuration(formType string) *AppError {
	return &AppError{
		Kind:       KindConfiguration,
		Code:       "TicketCouldntBeCreated",
		Message:    fmt.Sprintf("ticket could not be created: form %q does not exist in the configuration", formType),
		StatusCode: http.StatusBadRequest,
		Op:         "forms.Map",
	}
}

func AuthorizationMismatch(ticketID int64, email string) *AppError {
	return &AppError{
		Kind:       KindAuthorizationMismatch,
		Code:       "TicketRequesterMismatch",
		Message:    fmt.Sprintf("ticket %d does not belong to %s", ticketID, email),
		StatusCode: http.StatusForbidden,
		Op:         "tickets.UpdateForRequester",
	}
}

func Validation(field, message string) *AppError {
	return &AppError{
		Kind:       KindValidation,
		Code:       "InvalidInput",
		Message:    fmt.Sprintf("%s: %s", field, message),
		StatusCode: http.StatusBadRequest,
	}
}

// InvalidFields reports several field-level validation failures at once.
func InvalidFields(fields map[string]string) *AppError {
	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	sort.Strings(names)

	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, fmt.Sprintf("%s: %s", name, fields[name]))
	}
	return &AppError{
		Kind:       KindValidation,
		Code:       "InvalidInput",
		Message:    strings.Join(parts, "; "),
		StatusCode: http.StatusBadRequest,
		Fields:     fields,
	}
}

func NotFound(op, message string) *AppError {
	return &AppError{
		Kind:       KindNotFound,
		Code:       "NotFound",
		Message:    message,
		StatusCode: http.StatusNotFound,
		Op:         op,
	}
}

// StatusCode returns the HTTP status tagged on err, or 500.
func StatusCode(err error) int {
	var appErr *AppError
	if errors.As(err, &appErr) && appErr.StatusCode != 0 {
		return appErr.StatusCode
	}
	return http.StatusInternalServerError
}

// Code returns the catalog code tagged on err, or DefaultCode.
func Code(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) && appErr.Code != "" {
		return appErr.Code
	}
	return DefaultCode
}

// Name returns the error kind name used in user-facing messages.
func Name(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) && appErr.Kind != "" {
		return string(appErr.Kind)
	}
	return "Error"
}

// Op returns the failing operation, or "unknown".
func Op(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) && appErr.Op != "" {
		return appErr.Op
	}
	return "unknown"
}
