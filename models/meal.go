package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Meal is a single logged meal. Every query against meals must be scoped by
// UserID; a meal is never visible to anyone but its owner.
type Meal struct {
	ID          string    `json:"id" gorm:"type:uuid;primaryKey"`
	Name        string    `json:"name" gorm:"not null"`
	Description string    `json:"description" gorm:"type:text;not null"`
	OnDiet      bool      `json:"on_diet" gorm:"not null"`
	Date        time.Time `json:"date" gorm:"not null"`
	UserID      string    `json:"user_id" gorm:"type:uuid;not null;index"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (m *Meal) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	return nil
}
