package models_test

import (
	"github.com/ricetrack/backend/internal/models"
	"github.com/ricetrack/backend/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (suite *TestSuiteStandard) TestProfileEmailNormalized() {
	profile := suite.createTestProfile(models.Profile{Email: "  Yuki@Example.COM "})
	assert.Equal(suite.T(), "yuki@example.com", profile.Email)
}

func (suite *TestSuiteStandard) TestProfileEmailEmpty() {
	err := models.DB.Create(&models.Profile{Email: "   "}).Error
	assert.ErrorIs(suite.T(), err, models.ErrEmailEmpty)
}

func (suite *TestSuiteStandard) TestProfileEmailUnique() {
	_ = suite.createTestProfile(models.Profile{Email: "yuki@example.com"})

	err := models.DB.Create(&models.Profile{Email: "yuki@example.com"}).Error
	assert.ErrorIs(suite.T(), err, models.ErrEmailNotUnique)
}

func (suite *TestSuiteStandard) TestProfileQuotaDefault() {
	profile := suite.createTestProfile(models.Profile{})
	assert.Equal(suite.T(), 1, profile.Quota)
}

func (suite *TestSuiteStandard) TestProfileQuotaRange() {
	for _, quota := range []int{-1, 4, 17} {
		err := models.DB.Create(&models.Profile{Email: "q@example.com", Quota: quota}).Error
		assert.ErrorIs(suite.T(), err, models.ErrQuotaOutOfRange, "Quota %d must be rejected", quota)
	}

	profile := suite.createTestProfile(models.Profile{Quota: 3})
	assert.Equal(suite.T(), 3, profile.Quota)
}

func (suite *TestSuiteStandard) TestProfileOnboarded() {
	profile := suite.createTestProfile(models.Profile{})
	assert.False(suite.T(), profile.Onboarded())

	division := suite.createTestDivision(models.Division{})
	profile.Name = "Yuki Tanaka"
	profile.DivisionID = &division.ID
	require.Nil(suite.T(), models.DB.Save(&profile).Error)

	assert.True(suite.T(), profile.Onboarded())
}

func (suite *TestSuiteStandard) TestFindOrCreateProfile() {
	profile, created, err := models.FindOrCreateProfile("Yuki@Example.com")
	require.Nil(suite.T(), err)
	assert.True(suite.T(), created)
	assert.Equal(suite.T(), "yuki@example.com", profile.Email)
	assert.Equal(suite.T(), 1, profile.Quota)

	again, created, err := models.FindOrCreateProfile("yuki@example.COM")
	require.Nil(suite.T(), err)
	assert.False(suite.T(), created)
	assert.Equal(suite.T(), profile.ID, again.ID)
}

func (suite *TestSuiteStandard) TestFindOrCreateProfileEmptyEmail() {
	_, _, err := models.FindOrCreateProfile("  ")
	assert.ErrorIs(suite.T(), err, models.ErrEmailEmpty)
}

func (suite *TestSuiteStandard) TestDeleteProfileDeletesPickups() {
	profile := suite.createTestProfile(models.Profile{Quota: 2})
	month := suite.createTestMonth(types.NewMonth(2025, 6))
	_ = suite.createTestPickup(models.Pickup{UserID: profile.ID, MonthID: month.ID, Quantity: 1})

	require.Nil(suite.T(), models.DeleteProfile(profile.ID))

	var count int64
	require.Nil(suite.T(), models.DB.Model(&models.Pickup{}).Where("user_id = ?", profile.ID).Count(&count).Error)
	assert.Equal(suite.T(), int64(0), count)

	err := models.DB.First(&models.Profile{}, "id = ?", profile.ID).Error
	assert.ErrorIs(suite.T(), err, models.ErrResourceNotFound)
}
