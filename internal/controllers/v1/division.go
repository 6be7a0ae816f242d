package v1

import (
	"fmt"
	"net/http"
	"slices"

	"github.com/gin-gonic/gin"
	"github.com/ricetrack/backend/internal/config"
	"github.com/ricetrack/backend/internal/httputil"
	"github.com/ricetrack/backend/internal/models"
)

func RegisterDivisionRoutes(r *gin.RouterGroup, cfg *config.Config) {
	{
		r.OPTIONS("", OptionsDivisions)
		r.GET("", GetDivisions)
		r.POST("", CreateDivisions)
	}
	{
		r.OPTIONS("/:id", OptionsDivisionDetail)
		r.GET("/:id", GetDivision)
		r.PATCH("/:id", UpdateDivision(cfg))
		r.DELETE("/:id", DeleteDivision(cfg))
	}
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Divisions
// @Success		204
// @Router			/v1/divisions [options]
func OptionsDivisions(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Divisions
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/divisions/{id} [options]
func OptionsDivisionDetail(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	err = models.DB.First(&models.Division{}, uri.ID).Error
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	httputil.OptionsGetPatchDelete(c)
}

// @Summary		Create divisions
// @Description	Creates new divisions
// @Tags			Divisions
// @Produce		json
// @Success		201			{object}	DivisionCreateResponse
// @Failure		400			{object}	DivisionCreateResponse
// @Failure		500			{object}	DivisionCreateResponse
// @Param			divisions	body		[]DivisionEditable	true	"Divisions"
// @Router			/v1/divisions [post]
func CreateDivisions(c *gin.Context) {
	var divisions []DivisionEditable

	// Bind data and return error if not possible
	err := httputil.BindData(c, &divisions)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), DivisionCreateResponse{Error: &e})
		return
	}

	// The final http status. Will be modified when errors occur
	httpStatus := http.StatusCreated
	r := DivisionCreateResponse{}

	creator := currentProfile(c).ID
	for _, create := range divisions {
		division := create.model()
		division.CreatedBy = &creator

		err = models.DB.Create(&division).Error
		if err != nil {
			httpStatus = r.appendError(err, httpStatus)
			continue
		}

		// Transform for the API and append
		apiResource := newDivision(c, division)
		r.Data = append(r.Data, DivisionResponse{Data: &apiResource})
	}

	c.JSON(httpStatus, r)
}

// @Summary		Get divisions
// @Description	Returns a list of divisions
// @Tags			Divisions
// @Produce		json
// @Success		200	{object}	DivisionListResponse
// @Failure		400	{object}	DivisionListResponse
// @Failure		500	{object}	DivisionListResponse
// @Router			/v1/divisions [get]
// @Param			name	query	string	false	"Filter by name"
// @Param			offset	query	uint	false	"The offset of the first division returned. Defaults to 0."
// @Param			limit	query	int		false	"Maximum number of divisions to return. Defaults to 50."
func GetDivisions(c *gin.Context) {
	var filter DivisionQueryFilter

	if err := c.Bind(&filter); err != nil {
		s := err.Error()
		c.JSON(http.StatusBadRequest, DivisionListResponse{Error: &s})
		return
	}

	_, setFields := httputil.GetURLFields(c.Request.URL, filter)

	q := models.DB.Order("divisions.name ASC")

	if filter.Name != "" {
		q = q.Where("name LIKE ?", fmt.Sprintf("%%%s%%", filter.Name))
	} else if slices.Contains(setFields, "Name") {
		q = q.Where("name = ''")
	}

	// Set the offset. Does not need checking since the default is 0
	q = q.Offset(int(filter.Offset))

	// Default to 50 divisions and set the limit
	limit := 50
	if slices.Contains(setFields, "Limit") {
		limit = filter.Limit
	}
	q = q.Limit(limit)

	var divisions []models.Division
	err := q.Find(&divisions).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), DivisionListResponse{Error: &s})
		return
	}

	var count int64
	err = q.Limit(-1).Offset(-1).Count(&count).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), DivisionListResponse{Error: &e})
		return
	}

	data := make([]Division, 0, len(divisions))
	for _, division := range divisions {
		data = append(data, newDivision(c, division))
	}

	c.JSON(http.StatusOK, DivisionListResponse{
		Data: data,
		Pagination: &Pagination{
			Count:  len(data),
			Total:  count,
			Offset: filter.Offset,
			Limit:  limit,
		},
	})
}

// @Summary		Get division
// @Description	Returns a specific division
// @Tags			Divisions
// @Produce		json
// @Success		200	{object}	DivisionResponse
// @Failure		400	{object}	DivisionResponse
// @Failure		404	{object}	DivisionResponse
// @Failure		500	{object}	DivisionResponse
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/divisions/{id} [get]
func GetDivision(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), DivisionResponse{Error: &s})
		return
	}

	var division models.Division
	err = models.DB.First(&division, uri.ID).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), DivisionResponse{Error: &s})
		return
	}

	data := newDivision(c, division)
	c.JSON(http.StatusOK, DivisionResponse{Data: &data})
}

// @Summary		Update division
// @Description	Updates a division. Only the creator of a division may rename it.
// @Tags			Divisions
// @Accept			json
// @Produce		json
// @Success		200			{object}	DivisionResponse
// @Failure		400			{object}	DivisionResponse
// @Failure		403			{object}	httpError
// @Failure		404			{object}	DivisionResponse
// @Failure		500			{object}	DivisionResponse
// @Param			id			path		URIID				true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			division	body		DivisionEditable	true	"Division"
// @Router			/v1/divisions/{id} [patch]
func UpdateDivision(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		var uri URIID
		err := c.ShouldBindUri(&uri)
		if err != nil {
			s := err.Error()
			c.JSON(status(err), DivisionResponse{Error: &s})
			return
		}

		var division models.Division
		err = models.DB.First(&division, uri.ID).Error
		if err != nil {
			s := err.Error()
			c.JSON(status(err), DivisionResponse{Error: &s})
			return
		}

		if !canManageDivision(c, cfg, division) {
			c.JSON(http.StatusForbidden, httpError{Error: errNotDivisionCreator.Error()})
			return
		}

		updateFields, err := httputil.GetBodyFields(c, DivisionEditable{})
		if err != nil {
			s := err.Error()
			c.JSON(status(err), DivisionResponse{Error: &s})
			return
		}

		var update DivisionEditable
		err = httputil.BindData(c, &update)
		if err != nil {
			s := err.Error()
			c.JSON(status(err), DivisionResponse{Error: &s})
			return
		}

		err = models.DB.Model(&division).Select("", updateFields...).Updates(update.model()).Error
		if err != nil {
			s := err.Error()
			c.JSON(status(err), DivisionResponse{Error: &s})
			return
		}

		data := newDivision(c, division)
		c.JSON(http.StatusOK, DivisionResponse{Data: &data})
	}
}

// @Summary		Delete division
// @Description	Deletes a division. Profiles in the division keep their pickup history and are moved to no division.
// @Tags			Divisions
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		403	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/divisions/{id} [delete]
func DeleteDivision(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		var uri URIID
		err := c.ShouldBindUri(&uri)
		if err != nil {
			c.JSON(status(err), httpError{Error: err.Error()})
			return
		}

		var division models.Division
		err = models.DB.First(&division, uri.ID).Error
		if err != nil {
			c.JSON(status(err), httpError{Error: err.Error()})
			return
		}

		if !canManageDivision(c, cfg, division) {
			c.JSON(http.StatusForbidden, httpError{Error: errNotDivisionCreator.Error()})
			return
		}

		err = models.DeleteDivision(division.ID)
		if err != nil {
			c.JSON(status(err), httpError{Error: err.Error()})
			return
		}

		c.JSON(http.StatusNoContent, nil)
	}
}

// canManageDivision reports whether the acting profile may rename or
// delete a division. Divisions without a creator are unmanaged and may
// only be changed when cross user writes are enabled.
func canManageDivision(c *gin.Context, cfg *config.Config, division models.Division) bool {
	if cfg.Ledger.AllowCrossUserWrites {
		return true
	}

	return division.CreatedBy != nil && *division.CreatedBy == currentProfile(c).ID
}
