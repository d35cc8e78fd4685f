package controller

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/api-sage/ledger-service/internal/domain"
)

func errParam(name string) error {
	return fmt.Errorf("%s must be a positive integer", name)
}

// statusFor maps service failures onto HTTP statuses: not-found 404, invalid
// input 400, insufficient funds 422, storage conflict after retries 409.
func statusFor(message string, err error) int {
	if message == "validation failed" {
		return http.StatusBadRequest
	}
	if message == "unauthorized" {
		return http.StatusUnauthorized
	}

	switch {
	case errors.Is(err, domain.ErrRecordNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrInvalidAmount), errors.Is(err, domain.ErrSelfTransfer):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrInsufficientBalance):
		return http.StatusUnprocessableEntity
	case errors.Is(err, domain.ErrConflict):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
