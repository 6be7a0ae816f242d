package models

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Pickup is one recorded transaction of a user picking up sacks of rice.
type Pickup struct {
	DefaultModel
	UserID     uuid.UUID `json:"userId" gorm:"index" example:"a6e29f1c-6f24-42cf-a842-fb8ee94b9ed6"`
	User       Profile   `json:"-" gorm:"foreignKey:UserID"`
	MonthID    uuid.UUID `json:"monthId" gorm:"index" example:"9a10f0cc-1b2a-4af7-9fc2-0ffd7ac47a2f"`
	Month      Month     `json:"-"`
	Quantity   int       `json:"quantity" gorm:"check:pickup_quantity_positive,quantity > 0" example:"1"` // Sacks picked up in this transaction
	PickupDate time.Time `json:"pickupDate" example:"2025-06-14T00:00:00Z"`
}

// BeforeSave sets the timezone for the pickup date to UTC.
func (p *Pickup) BeforeSave(_ *gorm.DB) error {
	if p.PickupDate.IsZero() {
		p.PickupDate = time.Now().In(time.UTC)
	} else {
		p.PickupDate = p.PickupDate.In(time.UTC)
	}

	return nil
}

func (p *Pickup) BeforeCreate(tx *gorm.DB) error {
	_ = p.DefaultModel.BeforeCreate(tx)

	toSave := tx.Statement.Dest.(*Pickup)
	return p.checkQuota(tx, *toSave, uuid.Nil)
}

func (p *Pickup) BeforeUpdate(tx *gorm.DB) error {
	// Start from the loaded row and overlay the fields the update changes
	toSave := *p
	if tx.Statement.Changed("Quantity") {
		toSave.Quantity = tx.Statement.Dest.(Pickup).Quantity
	}
	if tx.Statement.Changed("PickupDate") {
		toSave.PickupDate = tx.Statement.Dest.(Pickup).PickupDate
	}
	if tx.Statement.Changed("UserID") {
		toSave.UserID = tx.Statement.Dest.(Pickup).UserID
	}
	if tx.Statement.Changed("MonthID") {
		toSave.MonthID = tx.Statement.Dest.(Pickup).MonthID
	}

	// The row being edited is excluded from the current total, editing a
	// pickup down must never count its old quantity against the quota
	return p.checkQuota(tx, toSave, p.ID)
}

// checkQuota gates the write against the monthly quota. It runs inside
// the transaction gorm wraps around the insert or update, so the check
// and the write commit atomically and a rejection mutates nothing.
func (p *Pickup) checkQuota(tx *gorm.DB, toSave Pickup, excluding uuid.UUID) error {
	if toSave.Quantity <= 0 {
		return ErrQuantityNotPositive
	}

	var month Month
	err := tx.First(&month, "id = ?", toSave.MonthID).Error
	if err != nil {
		return err
	}

	if !toSave.PickupDate.IsZero() && !month.Bucket().Contains(toSave.PickupDate.In(time.UTC)) {
		return ErrPickupDateOutsideMonth
	}

	// On postgres, concurrent writers for the same user pass the sum
	// below one at a time by locking the profile row first. sqlite
	// serializes writing transactions on its own.
	profileQuery := tx
	if tx.Dialector.Name() == "postgres" {
		profileQuery = tx.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var profile Profile
	err = profileQuery.First(&profile, "id = ?", toSave.UserID).Error
	if err != nil {
		return err
	}

	total, err := PickupTotal(tx, toSave.UserID, toSave.MonthID, excluding)
	if err != nil {
		return err
	}

	if total+toSave.Quantity > profile.Quota {
		return fmt.Errorf("%w: %d of %d sacks are already picked up for %s, attempted to add %d",
			ErrQuotaExceeded, total, profile.Quota, month.Bucket(), toSave.Quantity)
	}

	return nil
}

// PickupTotal returns the summed quantity of all live pickups for a user
// in a month. A pickup ID can be passed to exclude that pickup from the
// total, which is used while it is being edited.
func PickupTotal(db *gorm.DB, userID, monthID uuid.UUID, excluding uuid.UUID) (int, error) {
	var total sql.NullInt64

	q := db.Model(&Pickup{}).Where("user_id = ? AND month_id = ?", userID, monthID)
	if excluding != uuid.Nil {
		q = q.Where("id != ?", excluding)
	}

	err := q.Select("SUM(quantity)").Row().Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("summing pickups for user %s failed: %w", userID, err)
	}

	return int(total.Int64), nil
}
