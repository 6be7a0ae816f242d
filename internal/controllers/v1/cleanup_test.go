package v1_test

import (
	"net/http"
	"testing"

	v1 "github.com/ricetrack/backend/internal/controllers/v1"
	"github.com/ricetrack/backend/internal/models"
	"github.com/ricetrack/backend/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (suite *TestSuiteStandard) TestCleanup() {
	t := suite.T()

	session := createTestSession(t, "yuki@example.com")
	_ = onboardTestProfile(t, session, "Yuki Tanaka")
	_ = createTestPickup(t, session, v1.PickupEditable{Quantity: 1})

	r := test.Request(t, http.MethodDelete, "http://example.com/v1?confirm=yes-please-delete-everything", "")
	test.AssertHTTPStatus(t, &r, http.StatusNoContent)

	for _, model := range []any{
		models.Pickup{},
		models.Month{},
		models.Profile{},
		models.Division{},
	} {
		var count int64
		require.Nil(t, models.DB.Unscoped().Model(&model).Count(&count).Error)
		assert.Zero(t, count, "%T is not empty after cleanup", model)
	}
}

func (suite *TestSuiteStandard) TestCleanupNotConfirmed() {
	t := suite.T()

	_ = createTestSession(t, "yuki@example.com")

	tests := []struct {
		name  string
		query string
	}{
		{"No confirmation", ""},
		{"Wrong confirmation", "?confirm=yes-please-delete-a-little"},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, http.MethodDelete, "http://example.com/v1"+tt.query, "")
			test.AssertHTTPStatus(t, &r, http.StatusBadRequest)

			// Nothing was deleted
			var count int64
			require.Nil(t, models.DB.Model(&models.Profile{}).Count(&count).Error)
			assert.Equal(t, int64(1), count)
		})
	}
}
