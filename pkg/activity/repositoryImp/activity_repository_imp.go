package repositoryImp

import (
	"gorm.io/gorm"

	"farmwise/entities"
	"farmwise/pkg/activity/repository"
)

type activityRepo struct{ db *gorm.DB }

func New(db *gorm.DB) repository.ActivityRepository { return &activityRepo{db} }

func (r *activityRepo) Create(a *entities.Activity) error { return r.db.Create(a).Error }

func (r *activityRepo) ListByCrop(cropID string) ([]entities.Activity, error) {
	var out []entities.Activity
	if err := r.db.Where("crop_id = ?", cropID).Order("date DESC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}
