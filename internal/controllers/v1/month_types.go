package v1

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/ricetrack/backend/internal/models"
	"github.com/ricetrack/backend/internal/types"
)

// MonthUserStatus is one dashboard row: a profile and its completion
// state for the month.
type MonthUserStatus struct {
	UserID        uuid.UUID          `json:"userId" example:"a6e29f1c-6f24-42cf-a842-fb8ee94b9ed6"`
	Name          string             `json:"name" example:"Yuki Tanaka"`
	Division      string             `json:"division" example:"Logistics"` // Empty when the profile has no division
	AvatarConfig  types.AvatarConfig `json:"avatarConfig" swaggertype:"object"`
	Quota         int                `json:"quota" example:"3"`
	TotalQuantity int                `json:"totalQuantity" example:"2"`
	Remaining     int                `json:"remaining" example:"1"`
	IsCompleted   bool               `json:"isCompleted" example:"false"`
}

// MonthStats summarizes the month over all profiles.
type MonthStats struct {
	TotalUsers     int `json:"totalUsers" example:"14"`
	CompletedUsers int `json:"completedUsers" example:"9"`
	CompletionRate int `json:"completionRate" example:"64"` // Percentage of profiles that completed their quota, rounded
}

type MonthLinks struct {
	Self    string `json:"self" example:"https://example.com/api/v1/months/9a10f0cc-1b2a-4af7-9fc2-0ffd7ac47a2f"`      // The month itself
	Pickups string `json:"pickups" example:"https://example.com/api/v1/pickups?month=9a10f0cc-1b2a-4af7-9fc2-0ffd7ac47a2f"` // The pickups recorded in this month
}

type Month struct {
	models.Month
	Users []MonthUserStatus `json:"users"` // Status of every profile for this month, ordered by name
	Stats MonthStats        `json:"stats"`
	Links MonthLinks        `json:"links"`
}

// newMonth returns the API v1 representation of the month and its statuses
func newMonth(c *gin.Context, model models.Month, statuses []models.ProfileStatus) Month {
	url := c.GetString(string(models.DBContextURL))

	users := make([]MonthUserStatus, 0, len(statuses))
	completed := 0
	for _, status := range statuses {
		division := ""
		if status.Profile.Division != nil {
			division = status.Profile.Division.Name
		}

		if status.Status.IsCompleted {
			completed++
		}

		users = append(users, MonthUserStatus{
			UserID:        status.Profile.ID,
			Name:          status.Profile.Name,
			Division:      division,
			AvatarConfig:  status.Profile.AvatarConfig,
			Quota:         status.Status.Quota,
			TotalQuantity: status.Status.TotalQuantity,
			Remaining:     status.Status.Remaining,
			IsCompleted:   status.Status.IsCompleted,
		})
	}

	rate := 0
	if len(users) > 0 {
		rate = int(float64(completed)/float64(len(users))*100 + 0.5)
	}

	return Month{
		Month: model,
		Users: users,
		Stats: MonthStats{
			TotalUsers:     len(users),
			CompletedUsers: completed,
			CompletionRate: rate,
		},
		Links: MonthLinks{
			Self:    fmt.Sprintf("%s/v1/months/%s", url, model.ID),
			Pickups: fmt.Sprintf("%s/v1/pickups?month=%s", url, model.ID),
		},
	}
}

type MonthResponse struct {
	Error *string `json:"error" example:"the month query parameter must be set"` // The error, if any occurred
	Data  *Month  `json:"data"`                                                  // The month with all user statuses
}
