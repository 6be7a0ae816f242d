package models

import (
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/ricetrack/backend/internal/types"
	"gorm.io/gorm"
)

// Profile represents one employee picking up rice rations.
//
// A profile is created the first time an account authenticates. Name and
// division stay empty until the onboarding form has been submitted.
type Profile struct {
	DefaultModel
	Email        string             `json:"email" gorm:"uniqueIndex:profile_email" example:"yuki@example.com"` // The account key, set on first authentication
	Name         string             `json:"name" example:"Yuki Tanaka"`
	DivisionID   *uuid.UUID         `json:"divisionId" example:"d7d2a91c-bd24-4c39-a126-04e2b1465b35"`
	Division     *Division          `json:"-"`
	Quota        int                `json:"quota" gorm:"default:1;check:profile_quota_range,quota BETWEEN 1 AND 3" example:"2"` // Sacks this employee may pick up per month
	AvatarConfig types.AvatarConfig `json:"avatarConfig" swaggertype:"object"`
}

// BeforeSave normalizes the email address and validates the quota. It
// runs before BeforeCreate, so the quota default has to be applied here.
func (p *Profile) BeforeSave(_ *gorm.DB) error {
	p.Email = strings.ToLower(strings.TrimSpace(p.Email))
	p.Name = strings.TrimSpace(p.Name)

	if p.Email == "" {
		return ErrEmailEmpty
	}

	if p.Quota == 0 {
		p.Quota = 1
	}

	// Mirrors the check constraint for a readable error before the write
	if p.Quota < 1 || p.Quota > 3 {
		return ErrQuotaOutOfRange
	}

	return nil
}

// Onboarded reports whether the profile has completed onboarding and may
// take part in pickup tracking.
func (p Profile) Onboarded() bool {
	return p.Name != "" && p.DivisionID != nil
}

// FindOrCreateProfile returns the profile for an email address, creating
// it with the default quota on first authentication. The bool reports
// whether the profile was created by this call.
func FindOrCreateProfile(email string) (Profile, bool, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return Profile{}, false, ErrEmailEmpty
	}

	var profile Profile
	err := DB.First(&profile, "email = ?", email).Error
	if err == nil {
		return profile, false, nil
	}

	if !errors.Is(err, ErrResourceNotFound) {
		return Profile{}, false, err
	}

	profile = Profile{Email: email}
	err = DB.Create(&profile).Error
	if err == nil {
		return profile, true, nil
	}

	// A concurrent first authentication for the same address won the
	// race, use its row
	if errors.Is(err, ErrEmailNotUnique) {
		err = DB.First(&profile, "email = ?", email).Error
		return profile, false, err
	}

	return Profile{}, false, err
}

// DeleteProfile removes a profile and all pickups recorded for it.
//
// Soft deletion via gorm means the database level cascade never fires, so
// the pickups are deleted explicitly in the same transaction.
func DeleteProfile(id uuid.UUID) error {
	return DB.Transaction(func(tx *gorm.DB) error {
		var profile Profile
		err := tx.First(&profile, "id = ?", id).Error
		if err != nil {
			return err
		}

		err = tx.Where("user_id = ?", id).Delete(&Pickup{}).Error
		if err != nil {
			return err
		}

		return tx.Delete(&profile).Error
	})
}
