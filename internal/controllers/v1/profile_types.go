package v1

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/ricetrack/backend/internal/models"
	"github.com/ricetrack/backend/internal/types"
	ez_uuid "github.com/ricetrack/backend/internal/uuid"
)

type ProfileEditable struct {
	Name         string             `json:"name" example:"Yuki Tanaka" default:""`
	DivisionID   *uuid.UUID         `json:"divisionId" example:"d7d2a91c-bd24-4c39-a126-04e2b1465b35"` // The division this employee belongs to
	Quota        int                `json:"quota" example:"2" minimum:"1" maximum:"3" default:"1"`     // Sacks this employee may pick up per month
	AvatarConfig types.AvatarConfig `json:"avatarConfig" swaggertype:"object"`                         // Opaque configuration for the frontend avatar renderer
}

// model returns the database resource for the API representation of the editable fields
func (editable ProfileEditable) model() models.Profile {
	return models.Profile{
		Name:         editable.Name,
		DivisionID:   editable.DivisionID,
		Quota:        editable.Quota,
		AvatarConfig: editable.AvatarConfig,
	}
}

type ProfileLinks struct {
	Self     string `json:"self" example:"https://example.com/api/v1/profiles/a6e29f1c-6f24-42cf-a842-fb8ee94b9ed6"`      // The profile itself
	Division string `json:"division" example:"https://example.com/api/v1/divisions/d7d2a91c-bd24-4c39-a126-04e2b1465b35"` // The division the profile belongs to
	Pickups  string `json:"pickups" example:"https://example.com/api/v1/pickups?user=a6e29f1c-6f24-42cf-a842-fb8ee94b9ed6"` // The pickups recorded for this profile
}

type Profile struct {
	models.DefaultModel
	ProfileEditable
	Email     string       `json:"email" example:"yuki@example.com"` // The account key, read only
	Onboarded bool         `json:"onboarded" example:"true"`         // Whether name and division have been set
	Links     ProfileLinks `json:"links"`
}

// newProfile returns the API v1 representation of the resource
func newProfile(c *gin.Context, model models.Profile) Profile {
	url := c.GetString(string(models.DBContextURL))

	division := ""
	if model.DivisionID != nil {
		division = fmt.Sprintf("%s/v1/divisions/%s", url, model.DivisionID)
	}

	return Profile{
		DefaultModel: model.DefaultModel,
		ProfileEditable: ProfileEditable{
			Name:         model.Name,
			DivisionID:   model.DivisionID,
			Quota:        model.Quota,
			AvatarConfig: model.AvatarConfig,
		},
		Email:     model.Email,
		Onboarded: model.Onboarded(),
		Links: ProfileLinks{
			Self:     fmt.Sprintf("%s/v1/profiles/%s", url, model.ID),
			Division: division,
			Pickups:  fmt.Sprintf("%s/v1/pickups?user=%s", url, model.ID),
		},
	}
}

type ProfileQueryFilter struct {
	Name       string      `form:"name" filterField:"false"`   // By name
	DivisionID ez_uuid.UUID `form:"division"`                  // By division
	Search     string      `form:"search" filterField:"false"` // By string in name or email
	Offset     uint        `form:"offset" filterField:"false"` // The offset of the first profile returned. Defaults to 0.
	Limit      int         `form:"limit" filterField:"false"`  // Maximum number of profiles to return. Defaults to 50.
}

func (f ProfileQueryFilter) model() (models.Profile, error) {
	var divisionID *uuid.UUID
	if f.DivisionID != ez_uuid.Nil {
		divisionID = &f.DivisionID.UUID
	}

	return models.Profile{
		DivisionID: divisionID,
	}, nil
}

type ProfileResponse struct {
	Error *string  `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Data  *Profile `json:"data"`                                                          // The profile
}

type ProfileListResponse struct {
	Data       []Profile   `json:"data"`                                                          // List of profiles
	Error      *string     `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Pagination *Pagination `json:"pagination"`                                                    // Pagination information
}
