package repositoryImp

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"herdsos/entities"
	"herdsos/pkg/hospital/repository"
)

type hospitalRepo struct{ db *gorm.DB }

func New(db *gorm.DB) repository.HospitalRepository { return &hospitalRepo{db} }

func (r *hospitalRepo) List(ctx context.Context) ([]entities.Hospital, error) {
	var out []entities.Hospital
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&out).Error; err != nil {
		return nil, fmt.Errorf("list hospitals: %w", err)
	}
	return out, nil
}

func (r *hospitalRepo) FindByID(ctx context.Context, id uint) (*entities.Hospital, error) {
	var h entities.Hospital
	if err := r.db.WithContext(ctx).First(&h, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("find hospital %d: %w", id, err)
	}
	return &h, nil
}

func (r *hospitalRepo) Upsert(ctx context.Context, h *entities.Hospital) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		DoUpdates: clause.AssignmentColumns([]string{"phone", "lat", "lon", "address"}),
	}).Create(h).Error
}
