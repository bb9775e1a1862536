package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/phrazzld/bazi-api/internal/api/shared"
	"github.com/phrazzld/bazi-api/internal/domain"
	"github.com/phrazzld/bazi-api/internal/domain/bazi"
	"github.com/phrazzld/bazi-api/internal/service/auth"
	"github.com/phrazzld/bazi-api/internal/store"
)

// userInputErrors are returned by domain.NewUser; their messages are safe
// to show.
var userInputErrors = []error{
	domain.ErrInvalidEmail,
	domain.ErrEmptyEmail,
	domain.ErrPasswordTooShort,
	domain.ErrPasswordTooLong,
	domain.ErrEmptyPassword,
}

// MapErrorToStatusCode maps service errors to HTTP status codes.
func MapErrorToStatusCode(err error) int {
	switch {
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken),
		errors.Is(err, auth.ErrTokenNotYetValid),
		errors.Is(err, auth.ErrMissingToken),
		errors.Is(err, auth.ErrInvalidCredentials),
		errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized

	case errors.Is(err, store.ErrUserNotFound),
		errors.Is(err, store.ErrProfileNotFound),
		errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound

	case errors.Is(err, store.ErrEmailExists),
		errors.Is(err, store.ErrDuplicate):
		return http.StatusConflict

	case errors.Is(err, bazi.ErrInvalidInput),
		errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrInvalidID),
		errors.Is(err, store.ErrInvalidEntity),
		isUserInputError(err):
		return http.StatusBadRequest

	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a client-facing message for err that leaks no
// internal detail.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	var chartErr *bazi.ValidationError
	if errors.As(err, &chartErr) {
		return chartErr.Error()
	}

	switch {
	case errors.Is(err, auth.ErrInvalidCredentials):
		return "Invalid credentials"
	case errors.Is(err, auth.ErrExpiredToken):
		return "Token expired"
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrTokenNotYetValid),
		errors.Is(err, auth.ErrMissingToken):
		return "Invalid token"
	case errors.Is(err, domain.ErrUnauthorized):
		return "Authentication required"
	case errors.Is(err, store.ErrUserNotFound):
		return "User not found"
	case errors.Is(err, store.ErrProfileNotFound):
		return "No element profile saved; PUT /api/profile first"
	case errors.Is(err, store.ErrEmailExists):
		return "Email already exists"
	case errors.Is(err, store.ErrInvalidEntity):
		return "Invalid entity data"
	case isUserInputError(err):
		for _, target := range userInputErrors {
			if errors.Is(err, target) {
				return target.Error()
			}
		}
	}
	return "An unexpected error occurred"
}

// SanitizeValidationError turns validator errors into a short message naming
// the first offending field.
func SanitizeValidationError(err error) (field, message string) {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return "", "Validation error"
	}
	fe := verrs[0]
	return fe.Field(), fmt.Sprintf("Invalid %s: %s", fe.Field(), validationTagMessage(fe.Tag()))
}

func validationTagMessage(tag string) string {
	switch tag {
	case "required":
		return "required field"
	case "email":
		return "invalid email format"
	case "min":
		return "too short"
	case "max":
		return "too long"
	default:
		return "validation failed"
	}
}

// HandleAPIError writes the response for err. Chart input errors name the
// offending field; everything else gets its mapped status and safe message.
func HandleAPIError(w http.ResponseWriter, r *http.Request, err error) {
	var chartErr *bazi.ValidationError
	if errors.As(err, &chartErr) {
		shared.RespondWithFieldError(w, r, chartErr.Field, chartErr.Error())
		return
	}
	var domainErr *domain.ValidationError
	if errors.As(err, &domainErr) {
		shared.RespondWithFieldError(w, r, domainErr.Field, domainErr.Error())
		return
	}

	shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
}

// decodeAndValidate reads v from the body and validates it, writing a 400
// and returning false on failure.
func decodeAndValidate(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := shared.DecodeJSON(w, r, v); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, "Invalid request format", err)
		return false
	}
	if err := shared.ValidateRequest(v); err != nil {
		field, msg := SanitizeValidationError(err)
		shared.RespondWithFieldError(w, r, field, msg)
		return false
	}
	return true
}

func isUserInputError(err error) bool {
	for _, target := range userInputErrors {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
