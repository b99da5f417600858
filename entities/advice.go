package entities

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AdviceRecord keeps the result of an advisory call for a crop, together with
// the weather snapshot that informed it.
type AdviceRecord struct {
	ID          string         `gorm:"primaryKey" json:"id"`
	CropID      string         `gorm:"index" json:"crop_id"`
	AdviceText  string         `json:"advice_text"`
	WeatherData map[string]any `gorm:"serializer:json" json:"weather_data"`

	CreatedAt time.Time `json:"created_at"`
}

func (a *AdviceRecord) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	if a.WeatherData == nil {
		a.WeatherData = map[string]any{}
	}
	return nil
}
