package repositoryImp

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"herdsos/entities"
	"herdsos/pkg/cow/repository"
)

type cowRepo struct{ db *gorm.DB }

func New(db *gorm.DB) repository.CowRepository { return &cowRepo{db} }

func (r *cowRepo) List(ctx context.Context) ([]entities.Cow, error) {
	var out []entities.Cow
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&out).Error; err != nil {
		return nil, fmt.Errorf("list cows: %w", err)
	}
	return out, nil
}

func (r *cowRepo) FindByID(ctx context.Context, id uint) (*entities.Cow, error) {
	var c entities.Cow
	if err := r.db.WithContext(ctx).First(&c, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("find cow %d: %w", id, err)
	}
	return &c, nil
}

func (r *cowRepo) Upsert(ctx context.Context, c *entities.Cow) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "code"}},
		DoUpdates: clause.AssignmentColumns([]string{"description"}),
	}).Create(c).Error
}
