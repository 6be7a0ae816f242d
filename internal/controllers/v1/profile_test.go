package v1_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/google/uuid"
	v1 "github.com/ricetrack/backend/internal/controllers/v1"
	"github.com/ricetrack/backend/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (suite *TestSuiteStandard) TestProfilesOnboarding() {
	t := suite.T()

	session := createTestSession(t, "yuki@example.com")
	assert.False(t, session.Profile.Onboarded)

	profile := onboardTestProfile(t, session, "Yuki Tanaka")
	assert.Equal(t, "Yuki Tanaka", profile.Name)
	require.NotNil(t, profile.DivisionID)
	assert.True(t, profile.Onboarded)
}

func (suite *TestSuiteStandard) TestProfilesUpdateQuota() {
	t := suite.T()

	session := createTestSession(t, "yuki@example.com")
	url := "http://example.com/v1/profiles/" + session.Profile.ID.String()

	r := test.Request(t, http.MethodPatch, url, map[string]any{"quota": 3}, authHeaders(session))
	test.AssertHTTPStatus(t, &r, http.StatusOK)

	var response v1.ProfileResponse
	test.DecodeResponse(t, &r, &response)
	assert.Equal(t, 3, response.Data.Quota)

	// Updates without a quota keep the current value
	r = test.Request(t, http.MethodPatch, url, map[string]any{"name": "Yuki Tanaka"}, authHeaders(session))
	test.AssertHTTPStatus(t, &r, http.StatusOK)

	test.DecodeResponse(t, &r, &response)
	assert.Equal(t, 3, response.Data.Quota)
}

func (suite *TestSuiteStandard) TestProfilesUpdateQuotaInvalid() {
	t := suite.T()

	session := createTestSession(t, "yuki@example.com")
	url := "http://example.com/v1/profiles/" + session.Profile.ID.String()

	r := test.Request(t, http.MethodPatch, url, map[string]any{"quota": 4}, authHeaders(session))
	test.AssertHTTPStatus(t, &r, http.StatusBadRequest)
}

func (suite *TestSuiteStandard) TestProfilesUpdateAvatar() {
	t := suite.T()

	session := createTestSession(t, "yuki@example.com")
	url := "http://example.com/v1/profiles/" + session.Profile.ID.String()

	update := map[string]any{
		"avatarConfig": map[string]any{"hairColor": "black", "accessories": "round-glasses"},
	}

	r := test.Request(t, http.MethodPatch, url, update, authHeaders(session))
	test.AssertHTTPStatus(t, &r, http.StatusOK)

	var response v1.ProfileResponse
	test.DecodeResponse(t, &r, &response)
	assert.Equal(t, "black", response.Data.AvatarConfig["hairColor"])
}

func (suite *TestSuiteStandard) TestProfilesUpdateOtherForbidden() {
	t := suite.T()

	yuki := createTestSession(t, "yuki@example.com")
	hana := createTestSession(t, "hana@example.com")

	url := "http://example.com/v1/profiles/" + hana.Profile.ID.String()
	r := test.Request(t, http.MethodPatch, url, map[string]any{"name": "Not Hana"}, authHeaders(yuki))
	test.AssertHTTPStatus(t, &r, http.StatusForbidden)

	r = test.Request(t, http.MethodDelete, url, "", authHeaders(yuki))
	test.AssertHTTPStatus(t, &r, http.StatusForbidden)
}

func (suite *TestSuiteStandard) TestProfilesCrossUserWrites() {
	t := suite.T()
	t.Setenv("ALLOW_CROSS_USER_WRITES", "true")

	yuki := createTestSession(t, "yuki@example.com")
	hana := createTestSession(t, "hana@example.com")

	url := "http://example.com/v1/profiles/" + hana.Profile.ID.String()
	r := test.Request(t, http.MethodPatch, url, map[string]any{"quota": 2}, authHeaders(yuki))
	test.AssertHTTPStatus(t, &r, http.StatusOK)
}

func (suite *TestSuiteStandard) TestProfilesList() {
	t := suite.T()

	yuki := createTestSession(t, "yuki@example.com")
	_ = onboardTestProfile(t, yuki, "Yuki Tanaka")
	hana := createTestSession(t, "hana@example.com")
	_ = onboardTestProfile(t, hana, "Hana Sato")

	r := test.Request(t, http.MethodGet, "http://example.com/v1/profiles", "", authHeaders(yuki))
	test.AssertHTTPStatus(t, &r, http.StatusOK)

	var response v1.ProfileListResponse
	test.DecodeResponse(t, &r, &response)

	require.Len(t, response.Data, 2)
	assert.Equal(t, "Hana Sato", response.Data[0].Name)
	assert.Equal(t, "Yuki Tanaka", response.Data[1].Name)
	require.NotNil(t, response.Pagination)
	assert.Equal(t, int64(2), response.Pagination.Total)
}

func (suite *TestSuiteStandard) TestProfilesListFilters() {
	t := suite.T()

	yuki := createTestSession(t, "yuki@example.com")
	profile := onboardTestProfile(t, yuki, "Yuki Tanaka")
	hana := createTestSession(t, "hana@example.com")
	_ = onboardTestProfile(t, hana, "Hana Sato")

	tests := []struct {
		name  string
		query string
		count int
	}{
		{"Filter by name", "name=Yuki", 1},
		{"Search in email", "search=hana@", 1},
		{"Search in name", "search=tanaka", 1},
		{"Filter by division", fmt.Sprintf("division=%s", profile.DivisionID), 1},
		{"No match", "name=Nobody", 0},
		{"Limit", "limit=1", 1},
		{"Offset skips", "offset=2", 0},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, http.MethodGet, "http://example.com/v1/profiles?"+tt.query, "", authHeaders(yuki))
			test.AssertHTTPStatus(t, &r, http.StatusOK)

			var response v1.ProfileListResponse
			test.DecodeResponse(t, &r, &response)
			assert.Len(t, response.Data, tt.count)
		})
	}
}

func (suite *TestSuiteStandard) TestProfilesGetSingle() {
	t := suite.T()

	session := createTestSession(t, "yuki@example.com")

	tests := []struct {
		name   string
		id     string
		status int
	}{
		{"Existing profile", session.Profile.ID.String(), http.StatusOK},
		{"No profile with this ID", uuid.New().String(), http.StatusNotFound},
		{"Not a valid UUID", "NotParseableAsUUID", http.StatusBadRequest},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, http.MethodGet, "http://example.com/v1/profiles/"+tt.id, "", authHeaders(session))
			test.AssertHTTPStatus(t, &r, tt.status)
		})
	}
}

func (suite *TestSuiteStandard) TestProfilesDeleteRemovesPickups() {
	t := suite.T()

	session := createTestSession(t, "yuki@example.com")
	_ = onboardTestProfile(t, session, "Yuki Tanaka")
	_ = createTestPickup(t, session, v1.PickupEditable{Quantity: 1})

	r := test.Request(t, http.MethodDelete, "http://example.com/v1/profiles/"+session.Profile.ID.String(), "", authHeaders(session))
	test.AssertHTTPStatus(t, &r, http.StatusNoContent)

	// Other sessions no longer see any pickups for the deleted profile
	other := createTestSession(t, "hana@example.com")
	_ = onboardTestProfile(t, other, "Hana Sato")

	list := test.Request(t, http.MethodGet, "http://example.com/v1/pickups?user="+session.Profile.ID.String(), "", authHeaders(other))
	test.AssertHTTPStatus(t, &list, http.StatusOK)

	var response v1.PickupListResponse
	test.DecodeResponse(t, &list, &response)
	assert.Empty(t, response.Data)
}

func (suite *TestSuiteStandard) TestProfilesOptions() {
	t := suite.T()

	session := createTestSession(t, "yuki@example.com")

	r := test.Request(t, http.MethodOptions, "http://example.com/v1/profiles", "", authHeaders(session))
	test.AssertHTTPStatus(t, &r, http.StatusNoContent)
	assert.Equal(t, "OPTIONS, GET", r.Header().Get("allow"))

	r = test.Request(t, http.MethodOptions, "http://example.com/v1/profiles/"+session.Profile.ID.String(), "", authHeaders(session))
	test.AssertHTTPStatus(t, &r, http.StatusNoContent)
	assert.Equal(t, "OPTIONS, GET, PATCH, DELETE", r.Header().Get("allow"))
}
