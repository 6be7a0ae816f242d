package v1

import (
	"net/http"
	"slices"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/ricetrack/backend/internal/config"
	"github.com/ricetrack/backend/internal/httputil"
	"github.com/ricetrack/backend/internal/models"
	"github.com/ricetrack/backend/internal/types"
	ez_uuid "github.com/ricetrack/backend/internal/uuid"
)

func RegisterPickupRoutes(r *gin.RouterGroup, cfg *config.Config) {
	{
		r.OPTIONS("", OptionsPickups)
		r.GET("", GetPickups)
		r.POST("", CreatePickups(cfg))
	}
	{
		r.OPTIONS("/:id", OptionsPickupDetail)
		r.GET("/:id", GetPickup)
		r.PATCH("/:id", UpdatePickup(cfg))
		r.DELETE("/:id", DeletePickup(cfg))
	}
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Pickups
// @Success		204
// @Router			/v1/pickups [options]
func OptionsPickups(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Pickups
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/pickups/{id} [options]
func OptionsPickupDetail(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	err = models.DB.First(&models.Pickup{}, uri.ID).Error
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	httputil.OptionsGetPatchDelete(c)
}

// @Summary		Record pickups
// @Description	Records new pickups. Every pickup is admitted against the monthly quota of its user, a pickup that would exceed the quota is rejected and changes nothing.
// @Tags			Pickups
// @Produce		json
// @Success		201		{object}	PickupCreateResponse
// @Failure		400		{object}	PickupCreateResponse
// @Failure		403		{object}	PickupCreateResponse
// @Failure		404		{object}	PickupCreateResponse
// @Failure		500		{object}	PickupCreateResponse
// @Param			pickups	body		[]PickupEditable	true	"Pickups"
// @Router			/v1/pickups [post]
func CreatePickups(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		var editables []PickupEditable

		// Bind data and return error if not possible
		err := httputil.BindData(c, &editables)
		if err != nil {
			e := err.Error()
			c.JSON(status(err), PickupCreateResponse{Error: &e})
			return
		}

		// The final http status. Will be modified when errors occur
		httpStatus := http.StatusCreated
		r := PickupCreateResponse{}

		actor := currentProfile(c).ID
		for _, editable := range editables {
			if editable.UserID == uuid.Nil {
				editable.UserID = actor
			}

			if editable.UserID != actor && !cfg.Ledger.AllowCrossUserWrites {
				httpStatus = r.appendForbidden(httpStatus)
				continue
			}

			// Resolve the month bucket when it is given as a calendar
			// month or only implied by the pickup date
			if editable.MonthID == uuid.Nil {
				bucket := editable.Month
				if bucket.IsZero() {
					date := editable.PickupDate
					if date.IsZero() {
						date = time.Now().In(time.UTC)
					}
					bucket = types.MonthOf(date)
				}

				month, err := models.ResolveMonth(bucket)
				if err != nil {
					httpStatus = r.appendError(err, httpStatus)
					continue
				}
				editable.MonthID = month.ID
			}

			pickup := editable.model()
			err = models.DB.Create(&pickup).Error
			if err != nil {
				httpStatus = r.appendError(err, httpStatus)
				continue
			}

			// Transform for the API and append
			apiResource := newPickup(c, pickup)
			r.Data = append(r.Data, PickupResponse{Data: &apiResource})
		}

		c.JSON(httpStatus, r)
	}
}

// @Summary		Get pickups
// @Description	Returns a list of pickups, most recent first
// @Tags			Pickups
// @Produce		json
// @Success		200	{object}	PickupListResponse
// @Failure		400	{object}	PickupListResponse
// @Failure		500	{object}	PickupListResponse
// @Router			/v1/pickups [get]
// @Param			user		query	string	false	"Filter by the user the pickup is recorded for"
// @Param			month		query	string	false	"Filter by month ID"
// @Param			fromDate	query	string	false	"Pickups at and after this date"
// @Param			untilDate	query	string	false	"Pickups before and at this date"
// @Param			offset		query	uint	false	"The offset of the first pickup returned. Defaults to 0."
// @Param			limit		query	int		false	"Maximum number of pickups to return. Defaults to 50."
func GetPickups(c *gin.Context) {
	var filter PickupQueryFilter

	if err := c.Bind(&filter); err != nil {
		s := err.Error()
		c.JSON(http.StatusBadRequest, PickupListResponse{Error: &s})
		return
	}

	_, setFields := httputil.GetURLFields(c.Request.URL, filter)

	q := models.DB.Order("pickups.pickup_date DESC, pickups.created_at DESC")

	if filter.UserID != ez_uuid.Nil {
		q = q.Where("pickups.user_id = ?", filter.UserID.UUID)
	}

	if filter.MonthID != ez_uuid.Nil {
		q = q.Where("pickups.month_id = ?", filter.MonthID.UUID)
	}

	if !filter.FromDate.IsZero() {
		q = q.Where("pickups.pickup_date >= date(?)", time.Date(filter.FromDate.Year(), filter.FromDate.Month(), filter.FromDate.Day(), 0, 0, 0, 0, time.UTC))
	}

	if !filter.UntilDate.IsZero() {
		q = q.Where("pickups.pickup_date < date(?)", time.Date(filter.UntilDate.Year(), filter.UntilDate.Month(), filter.UntilDate.Day()+1, 0, 0, 0, 0, time.UTC))
	}

	// Set the offset. Does not need checking since the default is 0
	q = q.Offset(int(filter.Offset))

	// Default to 50 pickups and set the limit
	limit := 50
	if slices.Contains(setFields, "Limit") {
		limit = filter.Limit
	}
	q = q.Limit(limit)

	var pickups []models.Pickup
	err := q.Find(&pickups).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), PickupListResponse{Error: &s})
		return
	}

	var count int64
	err = q.Limit(-1).Offset(-1).Count(&count).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), PickupListResponse{Error: &e})
		return
	}

	data := make([]Pickup, 0, len(pickups))
	for _, pickup := range pickups {
		data = append(data, newPickup(c, pickup))
	}

	c.JSON(http.StatusOK, PickupListResponse{
		Data: data,
		Pagination: &Pagination{
			Count:  len(data),
			Total:  count,
			Offset: filter.Offset,
			Limit:  limit,
		},
	})
}

// @Summary		Get pickup
// @Description	Returns a specific pickup
// @Tags			Pickups
// @Produce		json
// @Success		200	{object}	PickupResponse
// @Failure		400	{object}	PickupResponse
// @Failure		404	{object}	PickupResponse
// @Failure		500	{object}	PickupResponse
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/pickups/{id} [get]
func GetPickup(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), PickupResponse{Error: &s})
		return
	}

	var pickup models.Pickup
	err = models.DB.First(&pickup, uri.ID).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), PickupResponse{Error: &s})
		return
	}

	data := newPickup(c, pickup)
	c.JSON(http.StatusOK, PickupResponse{Data: &data})
}

// @Summary		Update pickup
// @Description	Updates an existing pickup. The new quantity is admitted against the monthly quota with the old quantity of this pickup excluded, so lowering a quantity always succeeds.
// @Tags			Pickups
// @Accept			json
// @Produce		json
// @Success		200		{object}	PickupResponse
// @Failure		400		{object}	PickupResponse
// @Failure		403		{object}	httpError
// @Failure		404		{object}	PickupResponse
// @Failure		500		{object}	PickupResponse
// @Param			id		path		URIID			true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			pickup	body		PickupEditable	true	"Pickup"
// @Router			/v1/pickups/{id} [patch]
func UpdatePickup(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		var uri URIID
		err := c.ShouldBindUri(&uri)
		if err != nil {
			s := err.Error()
			c.JSON(status(err), PickupResponse{Error: &s})
			return
		}

		var pickup models.Pickup
		err = models.DB.First(&pickup, uri.ID).Error
		if err != nil {
			s := err.Error()
			c.JSON(status(err), PickupResponse{Error: &s})
			return
		}

		if !canManagePickup(c, cfg, pickup) {
			c.JSON(http.StatusForbidden, httpError{Error: errNotPickupOwner.Error()})
			return
		}

		updateFields, err := httputil.GetBodyFields(c, PickupEditable{})
		if err != nil {
			s := err.Error()
			c.JSON(status(err), PickupResponse{Error: &s})
			return
		}

		// The month alias is resolved here, only MonthID exists on the model
		updateFields = slices.DeleteFunc(updateFields, func(field any) bool {
			return field == "Month"
		})

		var update PickupEditable
		err = httputil.BindData(c, &update)
		if err != nil {
			s := err.Error()
			c.JSON(status(err), PickupResponse{Error: &s})
			return
		}

		if update.MonthID == uuid.Nil && !update.Month.IsZero() {
			month, err := models.ResolveMonth(update.Month)
			if err != nil {
				s := err.Error()
				c.JSON(status(err), PickupResponse{Error: &s})
				return
			}
			update.MonthID = month.ID
			updateFields = append(updateFields, "MonthID")
		}

		// Reassigning a pickup to another user follows the same policy as
		// recording one for them
		if slices.Contains(updateFields, any("UserID")) &&
			update.UserID != currentProfile(c).ID && !cfg.Ledger.AllowCrossUserWrites {
			c.JSON(http.StatusForbidden, httpError{Error: errNotPickupOwner.Error()})
			return
		}

		err = models.DB.Model(&pickup).Select("", updateFields...).Updates(update.model()).Error
		if err != nil {
			s := err.Error()
			c.JSON(status(err), PickupResponse{Error: &s})
			return
		}

		data := newPickup(c, pickup)
		c.JSON(http.StatusOK, PickupResponse{Data: &data})
	}
}

// @Summary		Delete pickup
// @Description	Deletes a pickup. The quota of its month becomes available again immediately.
// @Tags			Pickups
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		403	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/pickups/{id} [delete]
func DeletePickup(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		var uri URIID
		err := c.ShouldBindUri(&uri)
		if err != nil {
			c.JSON(status(err), httpError{Error: err.Error()})
			return
		}

		var pickup models.Pickup
		err = models.DB.First(&pickup, uri.ID).Error
		if err != nil {
			c.JSON(status(err), httpError{Error: err.Error()})
			return
		}

		if !canManagePickup(c, cfg, pickup) {
			c.JSON(http.StatusForbidden, httpError{Error: errNotPickupOwner.Error()})
			return
		}

		err = models.DB.Delete(&pickup).Error
		if err != nil {
			c.JSON(status(err), httpError{Error: err.Error()})
			return
		}

		c.JSON(http.StatusNoContent, nil)
	}
}

// canManagePickup reports whether the acting profile may edit or delete
// a pickup.
func canManagePickup(c *gin.Context, cfg *config.Config, pickup models.Pickup) bool {
	if cfg.Ledger.AllowCrossUserWrites {
		return true
	}

	return pickup.UserID == currentProfile(c).ID
}
