package models_test

import (
	"github.com/google/uuid"
	"github.com/ricetrack/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (suite *TestSuiteStandard) TestDivisionNameTrimmed() {
	division := suite.createTestDivision(models.Division{Name: "  Logistics "})
	assert.Equal(suite.T(), "Logistics", division.Name)
}

func (suite *TestSuiteStandard) TestDivisionNameEmpty() {
	err := models.DB.Create(&models.Division{Name: " "}).Error
	assert.ErrorIs(suite.T(), err, models.ErrDivisionNameEmpty)
}

func (suite *TestSuiteStandard) TestDivisionNameUnique() {
	_ = suite.createTestDivision(models.Division{Name: "Logistics"})

	err := models.DB.Create(&models.Division{Name: "Logistics"}).Error
	assert.ErrorIs(suite.T(), err, models.ErrDivisionNameNotUnique)
}

func (suite *TestSuiteStandard) TestDeleteDivisionKeepsProfiles() {
	division := suite.createTestDivision(models.Division{})
	profile := suite.createTestProfile(models.Profile{Name: "Yuki Tanaka", DivisionID: &division.ID})

	require.Nil(suite.T(), models.DeleteDivision(division.ID))

	err := models.DB.First(&models.Division{}, "id = ?", division.ID).Error
	assert.ErrorIs(suite.T(), err, models.ErrResourceNotFound)

	// The profile survives without a division
	var reloaded models.Profile
	require.Nil(suite.T(), models.DB.First(&reloaded, "id = ?", profile.ID).Error)
	assert.Nil(suite.T(), reloaded.DivisionID)
}

func (suite *TestSuiteStandard) TestDeleteDivisionNotFound() {
	err := models.DeleteDivision(uuid.New())
	assert.ErrorIs(suite.T(), err, models.ErrResourceNotFound)
}
