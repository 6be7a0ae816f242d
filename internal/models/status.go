package models

import (
	"sort"

	"github.com/google/uuid"
)

// MonthlyStatus is the derived completion state for one user and month.
// It is always computed from the live pickup rows at call time, never
// stored, so it reflects the latest committed writes.
type MonthlyStatus struct {
	UserID        uuid.UUID `json:"userId" example:"a6e29f1c-6f24-42cf-a842-fb8ee94b9ed6"`
	MonthID       uuid.UUID `json:"monthId" example:"9a10f0cc-1b2a-4af7-9fc2-0ffd7ac47a2f"`
	TotalQuantity int       `json:"totalQuantity" example:"2"` // Sacks picked up so far this month
	Quota         int       `json:"quota" example:"3"`
	Remaining     int       `json:"remaining" example:"1"` // Never negative
	IsCompleted   bool      `json:"isCompleted" example:"false"`
}

func newMonthlyStatus(userID, monthID uuid.UUID, total, quota int) MonthlyStatus {
	remaining := quota - total
	if remaining < 0 {
		remaining = 0
	}

	return MonthlyStatus{
		UserID:        userID,
		MonthID:       monthID,
		TotalQuantity: total,
		Quota:         quota,
		Remaining:     remaining,
		IsCompleted:   total >= quota,
	}
}

// Status returns the monthly status for one user and month.
func Status(userID, monthID uuid.UUID) (MonthlyStatus, error) {
	var profile Profile
	err := DB.First(&profile, "id = ?", userID).Error
	if err != nil {
		return MonthlyStatus{}, err
	}

	var month Month
	err = DB.First(&month, "id = ?", monthID).Error
	if err != nil {
		return MonthlyStatus{}, err
	}

	total, err := PickupTotal(DB, userID, monthID, uuid.Nil)
	if err != nil {
		return MonthlyStatus{}, err
	}

	return newMonthlyStatus(userID, monthID, total, profile.Quota), nil
}

// ProfileStatus combines a profile with its status for one month. It is
// the row shape the dashboard renders.
type ProfileStatus struct {
	Profile Profile
	Status  MonthlyStatus
}

// MonthStatuses returns the status of every profile for one month,
// ordered by name. Profiles without pickups appear with a total of zero.
func MonthStatuses(monthID uuid.UUID) ([]ProfileStatus, error) {
	var month Month
	err := DB.First(&month, "id = ?", monthID).Error
	if err != nil {
		return nil, err
	}

	var profiles []Profile
	err = DB.Preload("Division").Order("name ASC").Find(&profiles).Error
	if err != nil {
		return nil, err
	}

	type userSum struct {
		UserID        uuid.UUID
		TotalQuantity int
	}

	var sums []userSum
	err = DB.Model(&Pickup{}).
		Select("user_id, SUM(quantity) AS total_quantity").
		Where("month_id = ?", monthID).
		Group("user_id").
		Scan(&sums).Error
	if err != nil {
		return nil, err
	}

	totals := make(map[uuid.UUID]int, len(sums))
	for _, sum := range sums {
		totals[sum.UserID] = sum.TotalQuantity
	}

	statuses := make([]ProfileStatus, 0, len(profiles))
	for _, profile := range profiles {
		statuses = append(statuses, ProfileStatus{
			Profile: profile,
			Status:  newMonthlyStatus(profile.ID, monthID, totals[profile.ID], profile.Quota),
		})
	}

	// Unnamed profiles have not finished onboarding, keep them at the end
	sort.SliceStable(statuses, func(i, j int) bool {
		if (statuses[i].Profile.Name == "") != (statuses[j].Profile.Name == "") {
			return statuses[j].Profile.Name == ""
		}
		return false
	})

	return statuses, nil
}
