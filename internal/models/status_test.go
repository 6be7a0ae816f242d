package models_test

import (
	"github.com/google/uuid"
	"github.com/ricetrack/backend/internal/models"
	"github.com/ricetrack/backend/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (suite *TestSuiteStandard) TestStatusDerivation() {
	profile := suite.createTestProfile(models.Profile{Quota: 3})
	month := suite.createTestMonth(types.NewMonth(2025, 6))

	status, err := models.Status(profile.ID, month.ID)
	require.Nil(suite.T(), err)
	assert.Equal(suite.T(), 0, status.TotalQuantity)
	assert.Equal(suite.T(), 3, status.Remaining)
	assert.False(suite.T(), status.IsCompleted)

	_ = suite.createTestPickup(models.Pickup{UserID: profile.ID, MonthID: month.ID, Quantity: 1})
	_ = suite.createTestPickup(models.Pickup{UserID: profile.ID, MonthID: month.ID, Quantity: 1})

	status, err = models.Status(profile.ID, month.ID)
	require.Nil(suite.T(), err)
	assert.Equal(suite.T(), 2, status.TotalQuantity)
	assert.Equal(suite.T(), 1, status.Remaining)
	assert.False(suite.T(), status.IsCompleted)

	_ = suite.createTestPickup(models.Pickup{UserID: profile.ID, MonthID: month.ID, Quantity: 1})

	status, err = models.Status(profile.ID, month.ID)
	require.Nil(suite.T(), err)
	assert.Equal(suite.T(), 3, status.TotalQuantity)
	assert.Equal(suite.T(), 0, status.Remaining)
	assert.True(suite.T(), status.IsCompleted)
}

func (suite *TestSuiteStandard) TestStatusFollowsDeletes() {
	profile := suite.createTestProfile(models.Profile{})
	month := suite.createTestMonth(types.NewMonth(2025, 6))

	pickup := suite.createTestPickup(models.Pickup{UserID: profile.ID, MonthID: month.ID, Quantity: 1})

	status, err := models.Status(profile.ID, month.ID)
	require.Nil(suite.T(), err)
	assert.True(suite.T(), status.IsCompleted)

	require.Nil(suite.T(), models.DB.Delete(&pickup).Error)

	// The status is derived from the live rows, it reverts immediately
	status, err = models.Status(profile.ID, month.ID)
	require.Nil(suite.T(), err)
	assert.Equal(suite.T(), 0, status.TotalQuantity)
	assert.False(suite.T(), status.IsCompleted)
}

func (suite *TestSuiteStandard) TestStatusUnknownProfile() {
	month := suite.createTestMonth(types.NewMonth(2025, 6))

	_, err := models.Status(uuid.New(), month.ID)
	assert.ErrorIs(suite.T(), err, models.ErrResourceNotFound)
}

func (suite *TestSuiteStandard) TestMonthStatuses() {
	month := suite.createTestMonth(types.NewMonth(2025, 6))
	division := suite.createTestDivision(models.Division{Name: "Logistics"})

	hana := suite.createTestProfile(models.Profile{Name: "Hana Sato", DivisionID: &division.ID, Quota: 2})
	yuki := suite.createTestProfile(models.Profile{Name: "Yuki Tanaka", DivisionID: &division.ID})
	fresh := suite.createTestProfile(models.Profile{}) // Not onboarded, no name

	_ = suite.createTestPickup(models.Pickup{UserID: hana.ID, MonthID: month.ID, Quantity: 2})

	statuses, err := models.MonthStatuses(month.ID)
	require.Nil(suite.T(), err)
	require.Len(suite.T(), statuses, 3)

	// Named profiles in alphabetical order, profiles without a name last
	assert.Equal(suite.T(), hana.ID, statuses[0].Profile.ID)
	assert.Equal(suite.T(), yuki.ID, statuses[1].Profile.ID)
	assert.Equal(suite.T(), fresh.ID, statuses[2].Profile.ID)

	assert.True(suite.T(), statuses[0].Status.IsCompleted)
	assert.Equal(suite.T(), 2, statuses[0].Status.TotalQuantity)

	// Profiles without pickups appear with a total of zero
	assert.Equal(suite.T(), 0, statuses[1].Status.TotalQuantity)
	assert.Equal(suite.T(), 1, statuses[1].Status.Remaining)

	// The division is preloaded for the dashboard
	require.NotNil(suite.T(), statuses[0].Profile.Division)
	assert.Equal(suite.T(), "Logistics", statuses[0].Profile.Division.Name)
}

func (suite *TestSuiteStandard) TestMonthStatusesUnknownMonth() {
	_, err := models.MonthStatuses(uuid.New())
	assert.ErrorIs(suite.T(), err, models.ErrResourceNotFound)
}
