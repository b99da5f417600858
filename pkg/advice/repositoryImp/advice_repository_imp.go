package repositoryImp

import (
	"gorm.io/gorm"

	"farmwise/entities"
	"farmwise/pkg/advice/repository"
)

type adviceRepo struct{ db *gorm.DB }

func New(db *gorm.DB) repository.AdviceRepository { return &adviceRepo{db} }

func (r *adviceRepo) Create(a *entities.AdviceRecord) error { return r.db.Create(a).Error }

func (r *adviceRepo) ListByCrop(cropID string) ([]entities.AdviceRecord, error) {
	var out []entities.AdviceRecord
	if err := r.db.Where("crop_id = ?", cropID).Order("created_at DESC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}
