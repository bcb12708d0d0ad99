package repository

import (
	"context"
	"errors"

	"herdsos/entities"
)

var ErrNotFound = errors.New("hospital not found")

type HospitalRepository interface {
	List(ctx context.Context) ([]entities.Hospital, error)
	FindByID(ctx context.Context, id uint) (*entities.Hospital, error)
	// Upsert inserts h, or refreshes the row with the same name. Used by seeding only.
	Upsert(ctx context.Context, h *entities.Hospital) error
}
