package v1

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/ricetrack/backend/internal/models"
)

type DivisionEditable struct {
	Name string `json:"name" binding:"required" example:"Logistics"` // Name of the division
}

// model returns the database resource for the API representation of the editable fields
func (editable DivisionEditable) model() models.Division {
	return models.Division{
		Name: editable.Name,
	}
}

type DivisionLinks struct {
	Self     string `json:"self" example:"https://example.com/api/v1/divisions/d7d2a91c-bd24-4c39-a126-04e2b1465b35"`               // The division itself
	Profiles string `json:"profiles" example:"https://example.com/api/v1/profiles?division=d7d2a91c-bd24-4c39-a126-04e2b1465b35"` // The profiles in this division
}

type Division struct {
	models.DefaultModel
	DivisionEditable
	CreatedBy *string       `json:"createdBy" example:"a6e29f1c-6f24-42cf-a842-fb8ee94b9ed6"` // ID of the profile that created the division
	Links     DivisionLinks `json:"links"`
}

// newDivision returns the API v1 representation of the resource
func newDivision(c *gin.Context, model models.Division) Division {
	url := c.GetString(string(models.DBContextURL))

	var createdBy *string
	if model.CreatedBy != nil {
		s := model.CreatedBy.String()
		createdBy = &s
	}

	return Division{
		DefaultModel: model.DefaultModel,
		DivisionEditable: DivisionEditable{
			Name: model.Name,
		},
		CreatedBy: createdBy,
		Links: DivisionLinks{
			Self:     fmt.Sprintf("%s/v1/divisions/%s", url, model.ID),
			Profiles: fmt.Sprintf("%s/v1/profiles?division=%s", url, model.ID),
		},
	}
}

type DivisionQueryFilter struct {
	Name   string `form:"name" filterField:"false"`   // By name
	Offset uint   `form:"offset" filterField:"false"` // The offset of the first division returned. Defaults to 0.
	Limit  int    `form:"limit" filterField:"false"`  // Maximum number of divisions to return. Defaults to 50.
}

type DivisionResponse struct {
	Error *string   `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Data  *Division `json:"data"`                                                          // The division
}

type DivisionListResponse struct {
	Data       []Division  `json:"data"`                                                          // List of divisions
	Error      *string     `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Pagination *Pagination `json:"pagination"`                                                    // Pagination information
}

type DivisionCreateResponse struct {
	Error *string            `json:"error" example:"the division name must not be empty"` // The error, if any occurred
	Data  []DivisionResponse `json:"data"`                                                // List of created divisions
}

func (t *DivisionCreateResponse) appendError(err error, currentStatus int) int {
	s := err.Error()
	t.Data = append(t.Data, DivisionResponse{Error: &s})

	// The final status code is the highest HTTP status code number
	newStatus := status(err)
	if newStatus > currentStatus {
		return newStatus
	}

	return currentStatus
}
