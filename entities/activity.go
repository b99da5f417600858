package entities

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ActivityTypes is the fixed vocabulary accepted for Activity.Type.
var ActivityTypes = []string{"watering", "fertilizer", "pesticide", "harvesting", "planting", "observation"}

type Activity struct {
	ID          string    `gorm:"primaryKey" json:"id"`
	CropID      string    `gorm:"index" json:"crop_id"`
	Type        string    `json:"type"`
	Description string    `json:"description"`
	Date        time.Time `gorm:"index" json:"date"`
	Quantity    *string   `json:"quantity,omitempty"`
	Notes       *string   `json:"notes,omitempty"`
	ImageURL    *string   `json:"image_url,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

func (a *Activity) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	if a.Date.IsZero() {
		a.Date = time.Now().UTC()
	}
	return nil
}
