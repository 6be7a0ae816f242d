package models

import (
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Division is a named grouping of profiles.
type Division struct {
	DefaultModel
	Name      string     `json:"name" gorm:"uniqueIndex:division_name" example:"Logistics"`
	CreatedBy *uuid.UUID `json:"createdBy" example:"a6e29f1c-6f24-42cf-a842-fb8ee94b9ed6"` // Profile that created the division
}

func (d *Division) BeforeSave(_ *gorm.DB) error {
	d.Name = strings.TrimSpace(d.Name)

	if d.Name == "" {
		return ErrDivisionNameEmpty
	}

	return nil
}

// DeleteDivision removes a division. Profiles referencing it are moved to
// no division in the same transaction, their pickup history stays intact.
func DeleteDivision(id uuid.UUID) error {
	return DB.Transaction(func(tx *gorm.DB) error {
		var division Division
		err := tx.First(&division, "id = ?", id).Error
		if err != nil {
			return err
		}

		err = tx.Model(&Profile{}).Where("division_id = ?", id).Update("division_id", nil).Error
		if err != nil {
			return err
		}

		return tx.Delete(&division).Error
	})
}
