package repository

import (
	"time"

	"farmwise/entities"
)

// CropPatch enumerates the mutable fields of a crop record.
type CropPatch struct {
	Name         *string    `json:"name"`
	ImageURL     *string    `json:"image_url"`
	PlantingDate *time.Time `json:"-"`
	CurrentStage *string    `json:"current_stage"`
	HealthStatus *string    `json:"health_status"`
}

type CropRepository interface {
	Create(cr *entities.Crop) error
	FindByID(id string) (*entities.Crop, error)
	ListByUser(userID string) ([]entities.Crop, error)
	Update(id string, p CropPatch) (*entities.Crop, error)
	// Delete removes the crop and every activity and advice record that
	// references it. Unrelated crops are untouched.
	Delete(id string) error
	// TouchLastActivity stamps last_activity on the crop; a missing crop id
	// matches zero rows and is not an error.
	TouchLastActivity(cropID string, t time.Time) error
}
