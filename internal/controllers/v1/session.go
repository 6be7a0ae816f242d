package v1

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/ricetrack/backend/internal/auth"
	"github.com/ricetrack/backend/internal/config"
	"github.com/ricetrack/backend/internal/httputil"
	"github.com/ricetrack/backend/internal/models"
)

func RegisterSessionRoutes(r *gin.RouterGroup, cfg *config.Config) {
	r.OPTIONS("", OptionsSessions)
	r.POST("", CreateSession(cfg))
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Sessions
// @Success		204
// @Router			/v1/sessions [options]
func OptionsSessions(c *gin.Context) {
	httputil.OptionsPost(c)
}

// @Summary		Create session
// @Description	Issues a session token for an email address. The profile is created on first authentication.
// @Tags			Sessions
// @Produce		json
// @Success		200		{object}	SessionResponse
// @Success		201		{object}	SessionResponse
// @Failure		400		{object}	SessionResponse
// @Failure		500		{object}	SessionResponse
// @Param			session	body		SessionEditable	true	"Session"
// @Router			/v1/sessions [post]
func CreateSession(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		var create SessionEditable
		err := httputil.BindData(c, &create)
		if err != nil {
			e := err.Error()
			c.JSON(status(err), SessionResponse{Error: &e})
			return
		}

		profile, created, err := models.FindOrCreateProfile(create.Email)
		if err != nil {
			e := err.Error()
			c.JSON(status(err), SessionResponse{Error: &e})
			return
		}

		token, err := auth.Mint(cfg.JWT, time.Now(), profile.ID)
		if err != nil {
			e := models.ErrGeneral.Error()
			c.JSON(http.StatusInternalServerError, SessionResponse{Error: &e})
			return
		}

		httpStatus := http.StatusOK
		if created {
			httpStatus = http.StatusCreated
		}

		apiResource := newProfile(c, profile)
		c.JSON(httpStatus, SessionResponse{
			Data: &Session{
				Token:   token,
				Profile: apiResource,
			},
		})
	}
}
