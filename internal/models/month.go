package models

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/ricetrack/backend/internal/types"
	"gorm.io/gorm"
)

// Month is the (year, month) bucket pickups are attributed to.
//
// Month rows are created lazily the first time any pickup activity occurs
// in a calendar month and are immutable afterwards, so the model carries
// no update or soft delete timestamps.
type Month struct {
	ID        uuid.UUID `json:"id" example:"9a10f0cc-1b2a-4af7-9fc2-0ffd7ac47a2f"`
	Year      int       `json:"year" gorm:"uniqueIndex:month_year_month" example:"2025"`
	Month     int       `json:"month" gorm:"uniqueIndex:month_year_month;check:month_number_range,month BETWEEN 1 AND 12" example:"6"`
	CreatedAt time.Time `json:"createdAt" example:"2025-06-01T07:31:02.831811Z"`
}

func (m *Month) BeforeCreate(_ *gorm.DB) error {
	m.ID = uuid.New()
	return nil
}

// Bucket returns the calendar month this row represents.
func (m Month) Bucket() types.Month {
	return types.NewMonth(m.Year, time.Month(m.Month))
}

// ResolveMonth returns the month row for a calendar month, creating it if
// it does not exist yet.
//
// Concurrent calls for the same calendar month are safe: the unique index
// on (year, month) rejects the second insert and the loser adopts the row
// the winner created. Exactly one row per pair can ever exist.
func ResolveMonth(bucket types.Month) (Month, error) {
	if bucket.IsZero() {
		return Month{}, ErrMonthNumberInvalid
	}

	var month Month
	err := DB.First(&month, "year = ? AND month = ?", bucket.Year(), bucket.Number()).Error
	if err == nil {
		return month, nil
	}

	if !errors.Is(err, ErrResourceNotFound) {
		return Month{}, err
	}

	month = Month{Year: bucket.Year(), Month: bucket.Number()}
	err = DB.Create(&month).Error
	if err == nil {
		return month, nil
	}

	if errors.Is(err, ErrMonthNotUnique) {
		err = DB.First(&month, "year = ? AND month = ?", bucket.Year(), bucket.Number()).Error
		return month, err
	}

	return Month{}, err
}
