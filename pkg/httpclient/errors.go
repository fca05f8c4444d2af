package httpclient

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	apperrors "github.com/velostore/storefront/pkg/errors"
)

// apiErrorBody mirrors the error payload returned by the storefront backend
// API: a success flag plus a human-readable message.
type apiErrorBody struct {
	Success *bool  `json:"success"`
	Message string `json:"message"`
	Error   string `json:"error"`
}

// ParseResponseError reads the body of a non-2xx HTTP response and translates
// it into an appropriate AppError. If the body matches the backend's
// {success, message} format the message is preserved; otherwise a generic
// error with the status code and raw body is returned.
//
// The caller should only invoke this when resp.StatusCode indicates an error.
// The response body is fully consumed and closed.
func ParseResponseError(resp *http.Response, serviceName string) error {
	defer func() { _ = resp.Body.Close() }()

	bodyBytes, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20)) // 1 MB limit
	if err != nil {
		return fmt.Errorf("%s returned status %d (failed to read body: %w)", serviceName, resp.StatusCode, err)
	}

	var apiErr apiErrorBody
	if json.Unmarshal(bodyBytes, &apiErr) == nil {
		msg := apiErr.Message
		if msg == "" {
			msg = apiErr.Error
		}
		if msg != "" {
			return mapStatusError(resp.StatusCode, msg, serviceName)
		}
	}

	if resp.StatusCode >= 500 {
		return apperrors.ServiceUnavailable(fmt.Sprintf("%s returned status %d", serviceName, resp.StatusCode))
	}
	return fmt.Errorf("%s returned status %d: %s", serviceName, resp.StatusCode, string(bodyBytes))
}

// mapStatusError translates the backend's HTTP status code into an AppError
// that preserves the error semantics.
func mapStatusError(status int, message, serviceName string) error {
	qualified := fmt.Sprintf("%s: %s", serviceName, message)

	switch {
	case status == http.StatusNotFound:
		return apperrors.NotFound(serviceName, message)
	case status == http.StatusBadRequest:
		return apperrors.InvalidInput(qualified)
	case status == http.StatusUnauthorized:
		return apperrors.Unauthorized(qualified)
	case status == http.StatusForbidden:
		return apperrors.Forbidden(qualified)
	case status == http.StatusConflict:
		return apperrors.Conflict(qualified)
	case status >= 500:
		return apperrors.ServiceUnavailable(qualified)
	default:
		return &apperrors.AppError{
			Code:    "UPSTREAM_ERROR",
			Message: qualified,
			Status:  status,
		}
	}
}

// IsClientError returns true if the HTTP status code is a 4xx client error.
func IsClientError(status int) bool {
	return status >= 400 && status < 500
}
