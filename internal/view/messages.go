package view

import (
	"errors"
	"fmt"
	"net/http"

	"store-frontend/internal/api"
	"store-frontend/internal/auth"
)

const networkMessage = "Network error: Could not connect to server. Please check your connection."

// Describe turns a failed call into the line shown to the user: the
// backend's own message when it sent one, otherwise something generic.
func Describe(err error, fallback string) string {
	if err == nil {
		return ""
	}
	if api.IsNetwork(err) {
		return networkMessage
	}
	if apiErr, ok := api.AsError(err); ok {
		if apiErr.Message != "" {
			return apiErr.Message
		}
		return fmt.Sprintf("Request failed with status code %d", apiErr.StatusCode)
	}
	if msg := err.Error(); msg != "" {
		return msg
	}
	return fallback
}

func statusFallback(apiErr *api.Error, action string) string {
	if apiErr.Message != "" {
		return apiErr.Message
	}
	if apiErr.Status != "" {
		return apiErr.Status
	}
	return fmt.Sprintf("%s failed with status %d", action, apiErr.StatusCode)
}

func cancelErrorMessage(err error) string {
	apiErr, ok := api.AsError(err)
	if !ok {
		return Describe(err, "Failed to cancel order")
	}
	switch apiErr.StatusCode {
	case http.StatusBadRequest:
		return "Cannot cancel this order. It may have already been shipped or is not in a cancellable state."
	case http.StatusNotFound:
		return "Order not found."
	case http.StatusUnauthorized, http.StatusForbidden:
		return "You are not authorized to cancel this order."
	default:
		return statusFallback(apiErr, "Cancel")
	}
}

func payErrorMessage(err error) string {
	apiErr, ok := api.AsError(err)
	if !ok {
		return Describe(err, "Failed to process payment")
	}
	switch apiErr.StatusCode {
	case http.StatusBadRequest:
		if apiErr.Message != "" {
			return apiErr.Message
		}
		return "Cannot process payment for this order. It may not be in PENDING status or has already been processed."
	case http.StatusNotFound:
		return "Order not found."
	case http.StatusUnauthorized, http.StatusForbidden:
		return "You are not authorized to process payment for this order. Please check your authentication."
	case http.StatusInternalServerError:
		if apiErr.Message != "" {
			return apiErr.Message
		}
		return "Server error occurred. Please try again later."
	default:
		return statusFallback(apiErr, "Payment")
	}
}

// authErrorMessage covers login and register failures.
func authErrorMessage(err error, rejected, fallback string) string {
	var rej *auth.RejectedError
	switch {
	case errors.As(err, &rej):
		if rej.Message != "" {
			return rej.Message
		}
		return rejected
	case errors.Is(err, auth.ErrMissingCredentials):
		return "Please enter your username and password."
	case api.IsNetwork(err):
		return networkMessage
	}
	if msg := api.Message(err); msg != "" {
		return msg
	}
	if _, ok := api.AsError(err); ok {
		return fallback
	}
	return Describe(err, fallback)
}
