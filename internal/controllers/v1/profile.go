package v1

import (
	"net/http"
	"slices"

	"github.com/gin-gonic/gin"
	"github.com/ricetrack/backend/internal/config"
	"github.com/ricetrack/backend/internal/httputil"
	"github.com/ricetrack/backend/internal/models"
)

func RegisterProfileRoutes(r *gin.RouterGroup, cfg *config.Config) {
	{
		r.OPTIONS("", OptionsProfiles)
		r.GET("", GetProfiles)
	}
	{
		r.OPTIONS("/me", OptionsProfileMe)
		r.GET("/me", GetProfileMe)
	}
	{
		r.OPTIONS("/:id", OptionsProfileDetail)
		r.GET("/:id", GetProfile)
		r.PATCH("/:id", UpdateProfile(cfg))
		r.DELETE("/:id", DeleteProfile(cfg))
	}
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Profiles
// @Success		204
// @Router			/v1/profiles [options]
func OptionsProfiles(c *gin.Context) {
	httputil.OptionsGet(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Profiles
// @Success		204
// @Router			/v1/profiles/me [options]
func OptionsProfileMe(c *gin.Context) {
	httputil.OptionsGet(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Profiles
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/profiles/{id} [options]
func OptionsProfileDetail(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	err = models.DB.First(&models.Profile{}, uri.ID).Error
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	httputil.OptionsGetPatchDelete(c)
}

// @Summary		Get profiles
// @Description	Returns a list of profiles
// @Tags			Profiles
// @Produce		json
// @Success		200	{object}	ProfileListResponse
// @Failure		400	{object}	ProfileListResponse
// @Failure		500	{object}	ProfileListResponse
// @Router			/v1/profiles [get]
// @Param			name		query	string	false	"Filter by name"
// @Param			division	query	string	false	"Filter by division ID"
// @Param			search		query	string	false	"Search for this text in name and email"
// @Param			offset		query	uint	false	"The offset of the first profile returned. Defaults to 0."
// @Param			limit		query	int		false	"Maximum number of profiles to return. Defaults to 50."
func GetProfiles(c *gin.Context) {
	var filter ProfileQueryFilter

	if err := c.Bind(&filter); err != nil {
		s := err.Error()
		c.JSON(http.StatusBadRequest, ProfileListResponse{Error: &s})
		return
	}

	queryFields, setFields := httputil.GetURLFields(c.Request.URL, filter)

	where, err := filter.model()
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ProfileListResponse{Error: &s})
		return
	}

	q := models.DB.
		Order("profiles.name ASC").
		Where(&where, queryFields...)

	q = nameFilters(models.DB, q, setFields, filter.Name, filter.Search)

	// Set the offset. Does not need checking since the default is 0
	q = q.Offset(int(filter.Offset))

	// Default to 50 profiles and set the limit
	limit := 50
	if slices.Contains(setFields, "Limit") {
		limit = filter.Limit
	}
	q = q.Limit(limit)

	var profiles []models.Profile
	err = q.Find(&profiles).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ProfileListResponse{Error: &s})
		return
	}

	var count int64
	err = q.Limit(-1).Offset(-1).Count(&count).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), ProfileListResponse{Error: &e})
		return
	}

	// Transform resources to their API representation
	data := make([]Profile, 0, len(profiles))
	for _, profile := range profiles {
		data = append(data, newProfile(c, profile))
	}

	c.JSON(http.StatusOK, ProfileListResponse{
		Data: data,
		Pagination: &Pagination{
			Count:  len(data),
			Total:  count,
			Offset: filter.Offset,
			Limit:  limit,
		},
	})
}

// @Summary		Get own profile
// @Description	Returns the profile of the authenticated user
// @Tags			Profiles
// @Produce		json
// @Success		200	{object}	ProfileResponse
// @Failure		401	{object}	httpError
// @Router			/v1/profiles/me [get]
func GetProfileMe(c *gin.Context) {
	data := newProfile(c, currentProfile(c))
	c.JSON(http.StatusOK, ProfileResponse{Data: &data})
}

// @Summary		Get profile
// @Description	Returns a specific profile
// @Tags			Profiles
// @Produce		json
// @Success		200	{object}	ProfileResponse
// @Failure		400	{object}	ProfileResponse
// @Failure		404	{object}	ProfileResponse
// @Failure		500	{object}	ProfileResponse
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/profiles/{id} [get]
func GetProfile(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ProfileResponse{Error: &s})
		return
	}

	var profile models.Profile
	err = models.DB.First(&profile, uri.ID).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ProfileResponse{Error: &s})
		return
	}

	data := newProfile(c, profile)
	c.JSON(http.StatusOK, ProfileResponse{Data: &data})
}

// @Summary		Update profile
// @Description	Updates a profile. Only values to be updated need to be specified.
// @Tags			Profiles
// @Accept			json
// @Produce		json
// @Success		200		{object}	ProfileResponse
// @Failure		400		{object}	ProfileResponse
// @Failure		403		{object}	httpError
// @Failure		404		{object}	ProfileResponse
// @Failure		500		{object}	ProfileResponse
// @Param			id		path		URIID			true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			profile	body		ProfileEditable	true	"Profile"
// @Router			/v1/profiles/{id} [patch]
func UpdateProfile(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		var uri URIID
		err := c.ShouldBindUri(&uri)
		if err != nil {
			s := err.Error()
			c.JSON(status(err), ProfileResponse{Error: &s})
			return
		}

		if uri.ID.UUID != currentProfile(c).ID && !cfg.Ledger.AllowCrossUserWrites {
			c.JSON(http.StatusForbidden, httpError{Error: errNotProfileOwner.Error()})
			return
		}

		var profile models.Profile
		err = models.DB.First(&profile, uri.ID).Error
		if err != nil {
			s := err.Error()
			c.JSON(status(err), ProfileResponse{Error: &s})
			return
		}

		updateFields, err := httputil.GetBodyFields(c, ProfileEditable{})
		if err != nil {
			s := err.Error()
			c.JSON(status(err), ProfileResponse{Error: &s})
			return
		}

		var update ProfileEditable
		err = httputil.BindData(c, &update)
		if err != nil {
			s := err.Error()
			c.JSON(status(err), ProfileResponse{Error: &s})
			return
		}

		// If the quota is not part of the update, keep the old value
		if update.Quota == 0 {
			update.Quota = profile.Quota
		}

		err = models.DB.Model(&profile).Select("", updateFields...).Updates(update.model()).Error
		if err != nil {
			s := err.Error()
			c.JSON(status(err), ProfileResponse{Error: &s})
			return
		}

		data := newProfile(c, profile)
		c.JSON(http.StatusOK, ProfileResponse{Data: &data})
	}
}

// @Summary		Delete profile
// @Description	Deletes a profile and all pickups recorded for it
// @Tags			Profiles
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		403	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/profiles/{id} [delete]
func DeleteProfile(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		var uri URIID
		err := c.ShouldBindUri(&uri)
		if err != nil {
			c.JSON(status(err), httpError{Error: err.Error()})
			return
		}

		if uri.ID.UUID != currentProfile(c).ID && !cfg.Ledger.AllowCrossUserWrites {
			c.JSON(http.StatusForbidden, httpError{Error: errNotProfileOwner.Error()})
			return
		}

		err = models.DeleteProfile(uri.ID.UUID)
		if err != nil {
			c.JSON(status(err), httpError{Error: err.Error()})
			return
		}

		c.JSON(http.StatusNoContent, nil)
	}
}
