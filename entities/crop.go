package entities

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Crop struct {
	ID           string     `gorm:"primaryKey" json:"id"`
	UserID       string     `gorm:"index" json:"user_id"`
	Name         string     `json:"name"`
	ImageURL     *string    `json:"image_url,omitempty"`
	PlantingDate *time.Time `json:"planting_date,omitempty"`
	CurrentStage string     `json:"current_stage"` // planted|germination|vegetative|flowering|maturity|harvested
	HealthStatus string     `json:"health_status"` // good|warning|critical
	LastActivity *time.Time `json:"last_activity,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (c *Crop) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	if c.CurrentStage == "" {
		c.CurrentStage = "planted"
	}
	if c.HealthStatus == "" {
		c.HealthStatus = "good"
	}
	return nil
}
