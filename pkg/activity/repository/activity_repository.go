package repository

import "farmwise/entities"

type ActivityRepository interface {
	Create(a *entities.Activity) error
	// ListByCrop returns the crop's activity log, newest date first.
	ListByCrop(cropID string) ([]entities.Activity, error)
}
