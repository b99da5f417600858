package entities

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type User struct {
	ID             string         `gorm:"primaryKey" json:"id"`
	Name           string         `json:"name"`
	Phone          *string        `json:"phone,omitempty"`
	Location       map[string]any `gorm:"serializer:json" json:"location"`
	Crops          []string       `gorm:"serializer:json" json:"crops"`
	FarmSize       *string        `json:"farm_size,omitempty"`
	IrrigationType *string        `json:"irrigation_type,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	if u.Location == nil {
		u.Location = map[string]any{}
	}
	if u.Crops == nil {
		u.Crops = []string{}
	}
	return nil
}
