package v1

import (
	"errors"
	"net/http"

	"github.com/ricetrack/backend/internal/models"
)

// status returns the HTTP status code a database or validation error maps to.
func status(err error) int {
	if errors.Is(err, models.ErrGeneral) {
		return http.StatusInternalServerError
	}

	if errors.Is(err, models.ErrResourceNotFound) {
		return http.StatusNotFound
	}

	return http.StatusBadRequest
}

// Authorization errors
var (
	errMissingToken       = errors.New("you must authenticate with a session token for this request")
	errNotOnboarded       = errors.New("you must complete onboarding before tracking pickups")
	errNotPickupOwner     = errors.New("you may only change your own pickups")
	errNotProfileOwner    = errors.New("you may only change your own profile")
	errNotDivisionCreator = errors.New("only the creator of a division may change it")
)

// Query errors
var (
	errMonthNotSetInQuery = errors.New("the month query parameter must be set")
)

// Cleanup errors
var (
	errCleanupConfirmation = errors.New("the confirmation for the cleanup API call was incorrect")
)
