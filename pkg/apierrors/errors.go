package apierrors

import (
	"net/http"
	"runtime/debug"
	"strings"
)

// Kind identifies one of the closed set of API error variants.
type Kind int

const (
	KindBadRequest Kind = iota
	KindUnauthorized
	KindForbidden
	KindResourceNotFound
	KindConflict
	KindLockedAccount
	KindInvalidRecipient
	KindInternalServer
)

// StatusInvalidRecipient is not part of net/http's status table.
const StatusInvalidRecipient = 553

// kindInfo holds the fixed status/title pair for each kind.
var kindInfo = map[Kind]struct {
	status int
	title  string
}{
	KindBadRequest:       {http.StatusBadRequest, "Bad Request"},
	KindUnauthorized:     {http.StatusUnauthorized, "Unauthorized"},
	KindForbidden:        {http.StatusForbidden, "Forbidden"},
	KindResourceNotFound: {http.StatusNotFound, "Resource Not Found"},
	KindConflict:         {http.StatusConflict, "Conflict"},
	KindLockedAccount:    {http.StatusLocked, "Locked Account"},
	KindInvalidRecipient: {StatusInvalidRecipient, "Invalid Recipient"},
	KindInternalServer:   {http.StatusInternalServerError, "Internal Server Error"},
}

// Error is a domain API error: a plain data carrier tagged with its Kind.
// The global error-handling middleware maps it onto an HTTP response;
// no other layer inspects it.
type Error struct {
	Kind       Kind
	StatusCode int
	Title      string
	Message    string
	Stack      string
}

// Error implements the error interface.
func (e *Error) Error() string {
	return e.Message
}

// New creates an Error of the given kind. An empty message defaults to the
// uppercased title. The call stack is captured at construction so the error
// handler can surface it in development responses.
func New(kind Kind, message string) *Error {
	info := kindInfo[kind]
	if message == "" {
		message = strings.ToUpper(info.title)
	}
	return &Error{
		Kind:       kind,
		StatusCode: info.status,
		Title:      info.title,
		Message:    message,
		Stack:      string(debug.Stack()),
	}
}

// NewBadRequest creates a 400 Bad Request error.
func NewBadRequest(message string) *Error {
	return New(KindBadRequest, message)
}

// NewUnauthorized creates a 401 Unauthorized error.
func NewUnauthorized(message string) *Error {
	return New(KindUnauthorized, message)
}

// NewForbidden creates a 403 Forbidden error.
func NewForbidden(message string) *Error {
	return New(KindForbidden, message)
}

// NewResourceNotFound creates a 404 Resource Not Found error.
func NewResourceNotFound(message string) *Error {
	return New(KindResourceNotFound, message)
}

// NewConflict creates a 409 Conflict error.
func NewConflict(message string) *Error {
	return New(KindConflict, message)
}

// NewLockedAccount creates a 423 Locked Account error.
func NewLockedAccount(message string) *Error {
	return New(KindLockedAccount, message)
}

// NewInvalidRecipient creates a 553 Invalid Recipient error.
func NewInvalidRecipient(message string) *Error {
	return New(KindInvalidRecipient, message)
}

// NewInternalServer creates a 500 Internal Server Error.
func NewInternalServer(message string) *Error {
	return New(KindInternalServer, message)
}

// HTTPError is a generic transport error carrying an explicit status code.
// Unlike Error it has no title and no stack; the error handler renders only
// its message.
type HTTPError struct {
	StatusCode int
	Message    string
}

// NewHTTPError creates a new HTTPError with the given status and message.
func NewHTTPError(statusCode int, message string) *HTTPError {
	return &HTTPError{StatusCode: statusCode, Message: message}
}

// Error implements the error interface.
func (e *HTTPError) Error() string {
	return e.Message
}
