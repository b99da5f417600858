package repository

import "farmwise/entities"

type AdviceRepository interface {
	Create(a *entities.AdviceRecord) error
	// ListByCrop returns stored advice for a crop, newest first.
	ListByCrop(cropID string) ([]entities.AdviceRecord, error)
}
