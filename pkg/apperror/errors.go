package apperror

import (
	"fmt"
	"net/http"
)

// AppError is a structured error that maps to HTTP responses.
// Kind is the stable machine-readable error kind from the error taxonomy;
// Meta carries extra response fields for kinds that define them.
type AppError struct {
	Kind       string         `json:"error"`
	Detail     string         `json:"detail"`
	HTTPStatus int            `json:"-"`
	Meta       map[string]any `json:"-"`
	Err        error          `json:"-"` // Wrapped internal error (not exposed to client)
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Kind, e.Detail, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Kind, e.Detail)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// New creates a new AppError.
func New(kind string, detail string, httpStatus int) *AppError {
	return &AppError{
		Kind:       kind,
		Detail:     detail,
		HTTPStatus: httpStatus,
	}
}

// Wrap wraps an internal error with an AppError.
func Wrap(kind string, detail string, httpStatus int, err error) *AppError {
	return &AppError{
		Kind:       kind,
		Detail:     detail,
		HTTPStatus: httpStatus,
		Err:        err,
	}
}

// ---- Validation ----

func Validation(detail string) *AppError {
	return New("ValidationError", detail, http.StatusBadRequest)
}

// ---- Lookups ----

func ErrUnknownReference(reference string) *AppError {
	return New("UnknownReference", fmt.Sprintf("transaction %s not found", reference), http.StatusNotFound)
}

func ErrUnknownUser(userKey string) *AppError {
	return New("UnknownUser", fmt.Sprintf("user %s not found", userKey), http.StatusNotFound)
}

func ErrUnknownWorkItem(workItemID string) *AppError {
	return New("UnknownWorkItem", fmt.Sprintf("work item %s not found", workItemID), http.StatusNotFound)
}

// ---- Token business logic ----

// ErrInsufficientTokens is returned when a debit would overdraw the balance.
// The HTTP 402 body carries required_tokens and current_balance.
func ErrInsufficientTokens(required, current int64) *AppError {
	return &AppError{
		Kind:       "InsufficientTokens",
		HTTPStatus: http.StatusPaymentRequired,
		Meta: map[string]any{
			"required_tokens": required,
			"current_balance": current,
			"message": fmt.Sprintf(
				"Insufficient token balance. Required: %d, Available: %d", required, current),
		},
	}
}

// ErrDuplicateReference signals a reference collision on insert; callers may retry.
func ErrDuplicateReference(reference string) *AppError {
	return New("DuplicateReference", fmt.Sprintf("transaction reference %s already exists", reference), http.StatusConflict)
}

// ---- Gateway ----

// ErrGatewayUnavailable covers network errors, gateway 5xx responses, and
// token-acquisition failures. The transaction stays pending and verify may be retried.
func ErrGatewayUnavailable(err error) *AppError {
	return Wrap("GatewayUnavailable", "Payment gateway unavailable, please retry", http.StatusBadGateway, err)
}

// ---- Rate limiting ----

func ErrRateLimitExceeded() *AppError {
	return New("RateLimited", "Rate limit exceeded", http.StatusTooManyRequests)
}

// ---- System ----

// ErrConflictingState marks a conditional update that found the row in an
// unexpected terminal state. Should be impossible under the orchestrator's
// logic; treated as a defect and logged.
func ErrConflictingState(reference string, err error) *AppError {
	return Wrap("ConflictingState", fmt.Sprintf("transaction %s is in a conflicting terminal state", reference), http.StatusInternalServerError, err)
}

func ErrStorage(err error) *AppError {
	return Wrap("StorageError", "Internal storage error", http.StatusInternalServerError, err)
}

// InternalError wraps any unexpected internal fault.
func InternalError(err error) *AppError {
	return Wrap("InternalError", "Internal server error", http.StatusInternalServerError, err)
}
