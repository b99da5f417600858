package repositoryImp

import (
	"farmwise/entities"
	"farmwise/pkg/user/repository"
	"gorm.io/gorm"
)

type userRepo struct{ db *gorm.DB }

func New(db *gorm.DB) repository.UserRepository { return &userRepo{db} }

func (r *userRepo) Create(u *entities.User) error { return r.db.Create(u).Error }

func (r *userRepo) FindByID(id string) (*entities.User, error) {
	var u entities.User
	if err := r.db.Where("id = ?", id).First(&u).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *userRepo) Update(id string, p repository.UserPatch) (*entities.User, error) {
	cur, err := r.FindByID(id)
	if err != nil {
		return nil, err
	}
	if p.Name != nil {
		cur.Name = *p.Name
	}
	if p.Phone != nil {
		cur.Phone = p.Phone
	}
	if p.Location != nil {
		cur.Location = *p.Location
	}
	if p.Crops != nil {
		cur.Crops = *p.Crops
	}
	if p.FarmSize != nil {
		cur.FarmSize = p.FarmSize
	}
	if p.IrrigationType != nil {
		cur.IrrigationType = p.IrrigationType
	}
	return cur, r.db.Save(cur).Error
}
