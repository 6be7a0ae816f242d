package v1

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/ricetrack/backend/internal/auth"
	"github.com/ricetrack/backend/internal/config"
	"github.com/ricetrack/backend/internal/models"
)

const contextProfile = "ricetrack-current-profile"

// Authenticate verifies the Bearer token and loads the acting profile
// into the request context.
func Authenticate(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token, found := strings.CutPrefix(header, "Bearer ")
		if !found || token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, httpError{Error: errMissingToken.Error()})
			return
		}

		claims, err := auth.Parse(cfg.JWT, token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, httpError{Error: err.Error()})
			return
		}

		var profile models.Profile
		err = models.DB.First(&profile, "id = ?", claims.ProfileID).Error
		if err != nil {
			// The account may have been deleted after the token was issued
			c.AbortWithStatusJSON(http.StatusUnauthorized, httpError{Error: err.Error()})
			return
		}

		c.Set(contextProfile, profile)
	}
}

// RequireOnboarded rejects requests from profiles that have not set a
// name and division yet. Ledger operations are gated on onboarding.
func RequireOnboarded() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !currentProfile(c).Onboarded() {
			c.AbortWithStatusJSON(http.StatusForbidden, httpError{Error: errNotOnboarded.Error()})
			return
		}
	}
}

// currentProfile returns the acting profile Authenticate stored in the context.
func currentProfile(c *gin.Context) models.Profile {
	profile, _ := c.MustGet(contextProfile).(models.Profile)
	return profile
}
