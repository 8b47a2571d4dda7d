package apperror

import (
	"fmt"
	"net/http"
)

// AppError is a structured error that maps to HTTP responses.
type AppError struct {
	Code       string `json:"error_code"`
	Message    string `json:"message"`
	HTTPStatus int    `json:"-"`
	Err        error  `json:"-"` // Wrapped internal error (not exposed to client)
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// New creates a new AppError.
func New(code string, message string, httpStatus int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
	}
}

// Wrap wraps an internal error with an AppError.
func Wrap(code string, message string, httpStatus int, err error) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
		Err:        err,
	}
}

// ---- Wallet & Mint (WAL) ----

func ErrInsufficientBalance() *AppError {
	return New("WAL_001", "Insufficient wallet balance", http.StatusPaymentRequired)
}

func ErrInvalidToken() *AppError {
	return New("WAL_002", "Token rejected by mint", http.StatusUnprocessableEntity)
}

func ErrMintUnreachable(err error) *AppError {
	return Wrap("WAL_003", "Mint is unreachable", http.StatusServiceUnavailable, err)
}

func ErrInvalidAmount() *AppError {
	return New("WAL_004", "Invalid amount", http.StatusBadRequest)
}

// ---- Lightning (LN) ----

func ErrGatewayUnavailable(err error) *AppError {
	return Wrap("LN_001", "Lightning gateway unavailable", http.StatusServiceUnavailable, err)
}

func ErrAllGatewaysUnavailable() *AppError {
	return New("LN_002", "All configured Lightning gateways are unavailable", http.StatusServiceUnavailable)
}

// ---- Relay transport (NET) ----

func ErrRelayUnreachable(err error) *AppError {
	return Wrap("NET_001", "No relay accepted the event", http.StatusServiceUnavailable, err)
}

// ---- Round lifecycle (RND) ----

func ErrNotHost() *AppError {
	return New("RND_001", "Only the round host may perform this action", http.StatusForbidden)
}

func ErrAlreadyFinalized() *AppError {
	return New("RND_002", "Round is no longer open", http.StatusConflict)
}

func ErrNotFound(entity string) *AppError {
	return New("RND_003", fmt.Sprintf("%s not found", entity), http.StatusNotFound)
}

func ErrPlayerNotInRound() *AppError {
	return New("RND_004", "Player is not part of this round", http.StatusNotFound)
}

// ---- Payout (PAY) ----

func ErrPayoutDisbursementFailed(err error) *AppError {
	return Wrap("PAY_001", "Payout disbursement failed after retries", http.StatusBadGateway, err)
}

func ErrPayoutExceedsPot() *AppError {
	return New("PAY_002", "Payout policy returned more than the pot holds", http.StatusInternalServerError)
}

// ---- System & Infrastructure (SYS) ----

func ErrDatabaseError(err error) *AppError {
	return Wrap("SYS_001", "Internal database error", http.StatusInternalServerError, err)
}

func ErrEncryptionFailure(err error) *AppError {
	return Wrap("SYS_003", "Encryption service failure", http.StatusInternalServerError, err)
}

// InternalError wraps an internal error as a SYS_001 error.
func InternalError(err error) *AppError {
	return Wrap("SYS_001", "Internal server error", http.StatusInternalServerError, err)
}

// Validation returns a WAL_004-style validation error.
func Validation(message string) *AppError {
	return New("WAL_004", message, http.StatusBadRequest)
}
