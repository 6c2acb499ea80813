package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/quietstudy/studytrack/pkg/api"
	"github.com/quietstudy/studytrack/pkg/httpx"
)

// validate is the shared request validator. validator.Validate caches
// struct metadata, so a single instance is the intended usage.
var validate = validator.New(validator.WithRequiredStructEnabled())

// decodeJSON parses the request body into dst and runs struct validation.
// On failure it writes the error response and returns false.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		httpx.WriteJSON(w, http.StatusBadRequest, api.ErrorResponse{
			Error:            "invalid_request",
			ErrorDescription: "Invalid JSON body",
		})
		return false
	}

	if err := validate.Struct(dst); err != nil {
		httpx.WriteJSON(w, http.StatusBadRequest, api.ErrorResponse{
			Error:            "invalid_request",
			ErrorDescription: validationMessage(err),
		})
		return false
	}
	return true
}

// validationMessage turns the first field error into a short description.
func validationMessage(err error) string {
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		fe := fieldErrs[0]
		switch fe.Tag() {
		case "required":
			return fe.Field() + " is required"
		case "email":
			return fe.Field() + " must be a valid email address"
		case "min":
			return fe.Field() + " is too short or too small"
		case "max":
			return fe.Field() + " is too long or too large"
		default:
			return fe.Field() + " is invalid"
		}
	}
	return "Invalid request"
}

func writeServerError(w http.ResponseWriter) {
	httpx.WriteJSON(w, http.StatusInternalServerError, api.ErrorResponse{
		Error:            "server_error",
		ErrorDescription: "Something went wrong",
	})
}

func writeUnauthorized(w http.ResponseWriter) {
	httpx.WriteJSON(w, http.StatusUnauthorized, api.ErrorResponse{
		Error:            "unauthorized",
		ErrorDescription: "Authentication required",
	})
}
