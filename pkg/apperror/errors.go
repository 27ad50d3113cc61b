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

// ---- Ledger Business Logic (LDG) ----

func ErrWalletNotFound(walletID string) *AppError {
	return New("LDG_001", fmt.Sprintf("Wallet with ID %s not found", walletID), http.StatusNotFound)
}

func ErrInvalidAmount() *AppError {
	return New("LDG_002", "Amount must be positive", http.StatusBadRequest)
}

func ErrSameWalletTransfer() *AppError {
	return New("LDG_003", "Cannot transfer to the same wallet", http.StatusBadRequest)
}

func ErrInsufficientBalance(available, required int64) *AppError {
	return New("LDG_004",
		fmt.Sprintf("Insufficient balance. Available: %d, Required: %d", available, required),
		http.StatusPaymentRequired)
}

// ---- System & Infrastructure (SYS) ----

// InternalError wraps an internal error as a SYS_001 error.
func InternalError(err error) *AppError {
	return Wrap("SYS_001", "Internal server error", http.StatusInternalServerError, err)
}

// Validation returns a request validation error.
func Validation(message string) *AppError {
	return New("LDG_002", message, http.StatusBadRequest)
}
