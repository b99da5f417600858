package repository

import "farmwise/entities"

// UserPatch enumerates the mutable fields of a user profile. Nil means
// "leave unchanged".
type UserPatch struct {
	Name           *string         `json:"name"`
	Phone          *string         `json:"phone"`
	Location       *map[string]any `json:"location"`
	Crops          *[]string       `json:"crops"`
	FarmSize       *string         `json:"farm_size"`
	IrrigationType *string         `json:"irrigation_type"`
}

type UserRepository interface {
	Create(u *entities.User) error
	FindByID(id string) (*entities.User, error)
	Update(id string, p UserPatch) (*entities.User, error)
}
