package repositoryImp

import (
	"time"

	"gorm.io/gorm"

	"farmwise/entities"
	"farmwise/pkg/crop/repository"
)

type cropRepo struct{ db *gorm.DB }

func New(db *gorm.DB) repository.CropRepository { return &cropRepo{db} }

func (r *cropRepo) Create(cr *entities.Crop) error { return r.db.Create(cr).Error }

func (r *cropRepo) FindByID(id string) (*entities.Crop, error) {
	var cr entities.Crop
	if err := r.db.Where("id = ?", id).First(&cr).Error; err != nil {
		return nil, err
	}
	return &cr, nil
}

func (r *cropRepo) ListByUser(userID string) ([]entities.Crop, error) {
	var out []entities.Crop
	if err := r.db.Where("user_id = ?", userID).Order("created_at ASC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *cropRepo) Update(id string, p repository.CropPatch) (*entities.Crop, error) {
	cur, err := r.FindByID(id)
	if err != nil {
		return nil, err
	}
	if p.Name != nil {
		cur.Name = *p.Name
	}
	if p.ImageURL != nil {
		cur.ImageURL = p.ImageURL
	}
	if p.PlantingDate != nil {
		cur.PlantingDate = p.PlantingDate
	}
	if p.CurrentStage != nil {
		cur.CurrentStage = *p.CurrentStage
	}
	if p.HealthStatus != nil {
		cur.HealthStatus = *p.HealthStatus
	}
	return cur, r.db.Save(cur).Error
}

func (r *cropRepo) Delete(id string) error {
	res := r.db.Where("id = ?", id).Delete(&entities.Crop{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	// Cascade by foreign key. The transaction costs nothing here, but the
	// contract only promises the three deletes run sequentially.
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("crop_id = ?", id).Delete(&entities.Activity{}).Error; err != nil {
			return err
		}
		return tx.Where("crop_id = ?", id).Delete(&entities.AdviceRecord{}).Error
	})
}

func (r *cropRepo) TouchLastActivity(cropID string, t time.Time) error {
	return r.db.Model(&entities.Crop{}).Where("id = ?", cropID).
		UpdateColumn("last_activity", t).Error
}
