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

func (suite *TestSuiteStandard) TestMonthsRequiresParameter() {
	t := suite.T()

	session := createTestSession(t, "yuki@example.com")
	_ = onboardTestProfile(t, session, "Yuki Tanaka")

	tests := []struct {
		name  string
		query string
	}{
		{"Missing month", ""},
		{"Unparseable month", "?month=June"},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, http.MethodGet, "http://example.com/v1/months"+tt.query, "", authHeaders(session))
			test.AssertHTTPStatus(t, &r, http.StatusBadRequest)
		})
	}
}

func (suite *TestSuiteStandard) TestMonthsRequiresOnboarding() {
	t := suite.T()

	session := createTestSession(t, "yuki@example.com")

	r := test.Request(t, http.MethodGet, "http://example.com/v1/months?month=2025-06", "", authHeaders(session))
	test.AssertHTTPStatus(t, &r, http.StatusForbidden)
}

func (suite *TestSuiteStandard) TestMonthsCreatedOnFirstUse() {
	t := suite.T()

	session := createTestSession(t, "yuki@example.com")
	_ = onboardTestProfile(t, session, "Yuki Tanaka")

	r := test.Request(t, http.MethodGet, "http://example.com/v1/months?month=2025-06", "", authHeaders(session))
	test.AssertHTTPStatus(t, &r, http.StatusOK)

	var response v1.MonthResponse
	test.DecodeResponse(t, &r, &response)
	require.NotNil(t, response.Data)

	assert.Equal(t, 2025, response.Data.Year)
	assert.Equal(t, 6, response.Data.Month.Month)

	// A second request returns the same month resource
	again := test.Request(t, http.MethodGet, "http://example.com/v1/months?month=2025-06", "", authHeaders(session))
	test.AssertHTTPStatus(t, &again, http.StatusOK)

	var secondResponse v1.MonthResponse
	test.DecodeResponse(t, &again, &secondResponse)
	assert.Equal(t, response.Data.ID, secondResponse.Data.ID)

	var count int64
	require.Nil(t, models.DB.Model(&models.Month{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func (suite *TestSuiteStandard) TestMonthsDashboard() {
	t := suite.T()

	yuki := createTestSession(t, "yuki@example.com")
	_ = onboardTestProfile(t, yuki, "Yuki Tanaka")
	hana := createTestSession(t, "hana@example.com")
	_ = onboardTestProfile(t, hana, "Hana Sato")

	// Hana completes her quota, Yuki has not picked up anything
	_ = createTestPickup(t, hana, v1.PickupEditable{Quantity: 1, Month: testMonth(2025, 6), PickupDate: testDate(2025, 6, 14)})

	r := test.Request(t, http.MethodGet, "http://example.com/v1/months?month=2025-06", "", authHeaders(yuki))
	test.AssertHTTPStatus(t, &r, http.StatusOK)

	var response v1.MonthResponse
	test.DecodeResponse(t, &r, &response)
	require.NotNil(t, response.Data)
	require.Len(t, response.Data.Users, 2)

	assert.Equal(t, 2, response.Data.Stats.TotalUsers)
	assert.Equal(t, 1, response.Data.Stats.CompletedUsers)
	assert.Equal(t, 50, response.Data.Stats.CompletionRate)

	// Rows are ordered by name
	first := response.Data.Users[0]
	assert.Equal(t, "Hana Sato", first.Name)
	assert.Equal(t, 1, first.TotalQuantity)
	assert.Equal(t, 0, first.Remaining)
	assert.True(t, first.IsCompleted)
	assert.NotEmpty(t, first.Division)

	second := response.Data.Users[1]
	assert.Equal(t, "Yuki Tanaka", second.Name)
	assert.Equal(t, 0, second.TotalQuantity)
	assert.Equal(t, 1, second.Remaining)
	assert.False(t, second.IsCompleted)
}

func (suite *TestSuiteStandard) TestMonthsGetByID() {
	t := suite.T()

	session := createTestSession(t, "yuki@example.com")
	_ = onboardTestProfile(t, session, "Yuki Tanaka")

	r := test.Request(t, http.MethodGet, "http://example.com/v1/months?month=2025-06", "", authHeaders(session))
	test.AssertHTTPStatus(t, &r, http.StatusOK)

	var response v1.MonthResponse
	test.DecodeResponse(t, &r, &response)

	byID := test.Request(t, http.MethodGet, "http://example.com/v1/months/"+response.Data.ID.String(), "", authHeaders(session))
	test.AssertHTTPStatus(t, &byID, http.StatusOK)

	var byIDResponse v1.MonthResponse
	test.DecodeResponse(t, &byID, &byIDResponse)
	assert.Equal(t, response.Data.ID, byIDResponse.Data.ID)
}
