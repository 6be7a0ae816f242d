package v1

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/ricetrack/backend/internal/models"
	"github.com/ricetrack/backend/internal/types"
	ez_uuid "github.com/ricetrack/backend/internal/uuid"
)

type PickupEditable struct {
	// The user the pickup is recorded for. Defaults to the authenticated
	// profile when unset.
	UserID uuid.UUID `json:"userId" example:"a6e29f1c-6f24-42cf-a842-fb8ee94b9ed6"`

	// The month bucket. Either monthId or month must be set on creation,
	// on updates the existing value is kept.
	MonthID uuid.UUID   `json:"monthId" example:"9a10f0cc-1b2a-4af7-9fc2-0ffd7ac47a2f"`
	Month   types.Month `json:"month" example:"2025-06"`

	Quantity   int       `json:"quantity" example:"1"` // Sacks picked up, must be positive
	PickupDate time.Time `json:"pickupDate" example:"2025-06-14T00:00:00Z"`
}

// model returns the database resource for the API representation
func (editable PickupEditable) model() models.Pickup {
	return models.Pickup{
		UserID:     editable.UserID,
		MonthID:    editable.MonthID,
		Quantity:   editable.Quantity,
		PickupDate: editable.PickupDate,
	}
}

type PickupLinks struct {
	Self  string `json:"self" example:"https://example.com/api/v1/pickups/d1a1af21-bf5c-4b0d-9c83-dcd8750d6f1f"`   // The pickup itself
	User  string `json:"user" example:"https://example.com/api/v1/profiles/a6e29f1c-6f24-42cf-a842-fb8ee94b9ed6"`  // The profile the pickup belongs to
	Month string `json:"month" example:"https://example.com/api/v1/months/9a10f0cc-1b2a-4af7-9fc2-0ffd7ac47a2f"`   // The month the pickup counts against
}

type Pickup struct {
	models.DefaultModel
	UserID     uuid.UUID   `json:"userId" example:"a6e29f1c-6f24-42cf-a842-fb8ee94b9ed6"`
	MonthID    uuid.UUID   `json:"monthId" example:"9a10f0cc-1b2a-4af7-9fc2-0ffd7ac47a2f"`
	Quantity   int         `json:"quantity" example:"1"`
	PickupDate time.Time   `json:"pickupDate" example:"2025-06-14T00:00:00Z"`
	Links      PickupLinks `json:"links"`
}

// newPickup returns the API v1 representation of the pickup
func newPickup(c *gin.Context, model models.Pickup) Pickup {
	url := c.GetString(string(models.DBContextURL))

	return Pickup{
		DefaultModel: model.DefaultModel,
		UserID:       model.UserID,
		MonthID:      model.MonthID,
		Quantity:     model.Quantity,
		PickupDate:   model.PickupDate,
		Links: PickupLinks{
			Self:  fmt.Sprintf("%s/v1/pickups/%s", url, model.ID),
			User:  fmt.Sprintf("%s/v1/profiles/%s", url, model.UserID),
			Month: fmt.Sprintf("%s/v1/months/%s", url, model.MonthID),
		},
	}
}

type PickupQueryFilter struct {
	UserID    ez_uuid.UUID `form:"user" filterField:"false"`                                    // Filter by the user the pickup is recorded for
	MonthID   ez_uuid.UUID `form:"month" filterField:"false"`                                   // Filter by month ID
	FromDate  time.Time    `form:"fromDate" filterField:"false" time_format:"2006-01-02"`       // Only pickups on or after this date
	UntilDate time.Time    `form:"untilDate" filterField:"false" time_format:"2006-01-02"`      // Only pickups on or before this date
	Offset    uint         `form:"offset" filterField:"false"`                                  // The offset of the first pickup returned. Defaults to 0.
	Limit     int          `form:"limit" filterField:"false"`                                   // Maximum number of pickups to return. Defaults to 50.
}

type PickupResponse struct {
	Error *string `json:"error" example:"quota exceeded: 3 of 3 sacks are already picked up for 2025-06, attempted to add 1"` // The error, if any occurred
	Data  *Pickup `json:"data"`                                                                                               // The pickup
}

type PickupListResponse struct {
	Error      *string     `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Data       []Pickup    `json:"data"`                                                          // List of pickups
	Pagination *Pagination `json:"pagination"`                                                    // Pagination information
}

type PickupCreateResponse struct {
	Error *string          `json:"error" example:"the request body must not be empty"` // The error, if any occurred for the whole request
	Data  []PickupResponse `json:"data"`                                               // List of created pickups or their errors
}

// appendError appends a PickupResponse with the error and returns the
// updated HTTP status
func (t *PickupCreateResponse) appendError(err error, currentStatus int) int {
	s := err.Error()
	t.Data = append(t.Data, PickupResponse{Error: &s})

	// The final status code is the highest one of all errors
	if newStatus := status(err); newStatus > currentStatus {
		currentStatus = newStatus
	}

	return currentStatus
}

// appendForbidden appends a PickupResponse for a pickup the acting
// profile may not write and escalates the status to 403.
func (t *PickupCreateResponse) appendForbidden(currentStatus int) int {
	s := errNotPickupOwner.Error()
	t.Data = append(t.Data, PickupResponse{Error: &s})

	if http.StatusForbidden > currentStatus {
		currentStatus = http.StatusForbidden
	}

	return currentStatus
}
