package repository

import (
	"context"
	"errors"

	"herdsos/entities"
)

var ErrNotFound = errors.New("cow not found")

type CowRepository interface {
	List(ctx context.Context) ([]entities.Cow, error)
	FindByID(ctx context.Context, id uint) (*entities.Cow, error)
	Upsert(ctx context.Context, c *entities.Cow) error
}
