package models_test

import (
	"github.com/ricetrack/backend/internal/models"
	"github.com/ricetrack/backend/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (suite *TestSuiteStandard) TestResolveMonthCreates() {
	month, err := models.ResolveMonth(types.NewMonth(2025, 6))
	require.Nil(suite.T(), err)

	assert.Equal(suite.T(), 2025, month.Year)
	assert.Equal(suite.T(), 6, month.Month)
	assert.NotZero(suite.T(), month.ID)
}

func (suite *TestSuiteStandard) TestResolveMonthIdempotent() {
	first, err := models.ResolveMonth(types.NewMonth(2025, 6))
	require.Nil(suite.T(), err)

	second, err := models.ResolveMonth(types.NewMonth(2025, 6))
	require.Nil(suite.T(), err)

	// Exactly one row may exist per calendar month
	assert.Equal(suite.T(), first.ID, second.ID)

	var count int64
	require.Nil(suite.T(), models.DB.Model(&models.Month{}).Count(&count).Error)
	assert.Equal(suite.T(), int64(1), count)
}

func (suite *TestSuiteStandard) TestResolveMonthZero() {
	_, err := models.ResolveMonth(types.Month{})
	assert.ErrorIs(suite.T(), err, models.ErrMonthNumberInvalid)
}

func (suite *TestSuiteStandard) TestMonthUniqueConstraint() {
	month := suite.createTestMonth(types.NewMonth(2025, 6))

	err := models.DB.Create(&models.Month{Year: month.Year, Month: month.Month}).Error
	assert.ErrorIs(suite.T(), err, models.ErrMonthNotUnique)
}

func (suite *TestSuiteStandard) TestMonthNumberConstraint() {
	err := models.DB.Create(&models.Month{Year: 2025, Month: 13}).Error
	assert.ErrorIs(suite.T(), err, models.ErrMonthNumberInvalid)
}

func (suite *TestSuiteStandard) TestMonthBucket() {
	month := suite.createTestMonth(types.NewMonth(2025, 6))
	assert.True(suite.T(), month.Bucket().Equal(types.NewMonth(2025, 6)))
}
