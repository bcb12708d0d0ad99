package repositoryImp

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"herdsos/entities"
	"herdsos/pkg/report/repository"
)

type reportRepo struct{ db *gorm.DB }

func New(db *gorm.DB) repository.ReportRepository { return &reportRepo{db: db} }

func (r *reportRepo) Create(ctx context.Context, rep *entities.Report) error {
	if err := r.db.WithContext(ctx).Create(rep).Error; err != nil {
		return fmt.Errorf("insert report: %w", err)
	}
	return nil
}

func (r *reportRepo) FindByID(ctx context.Context, id uint) (*entities.Report, error) {
	var out entities.Report
	if err := r.db.WithContext(ctx).First(&out, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("find report %d: %w", id, err)
	}
	return &out, nil
}

func (r *reportRepo) CompareAndSwap(ctx context.Context, id uint, expect repository.Expect, next *entities.Report) (bool, error) {
	q := r.db.WithContext(ctx).Model(&entities.Report{}).
		Where("id = ? AND status = ?", id, expect.Status)
	if expect.AssignedHospital == nil {
		q = q.Where("assigned_hospital IS NULL")
	} else {
		q = q.Where("assigned_hospital = ?", *expect.AssignedHospital)
	}
	res := q.Select("status", "assigned_hospital", "tried_hospitals").Updates(&entities.Report{
		Status:           next.Status,
		AssignedHospital: next.AssignedHospital,
		TriedHospitals:   next.TriedHospitals,
	})
	if res.Error != nil {
		return false, fmt.Errorf("update report %d: %w", id, res.Error)
	}
	return res.RowsAffected == 1, nil
}

func (r *reportRepo) ListPendingByHospital(ctx context.Context, hospitalID uint) ([]entities.Report, error) {
	var out []entities.Report
	err := r.db.WithContext(ctx).
		Where("assigned_hospital = ? AND status = ?", hospitalID, entities.StatusPending).
		Order("timestamp DESC, id DESC").
		Find(&out).Error
	if err != nil {
		return nil, fmt.Errorf("pending reports for hospital %d: %w", hospitalID, err)
	}
	return out, nil
}

func (r *reportRepo) views(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Table("reports AS r").
		Select("r.*, COALESCE(c.code, '') AS cow_code, COALESCE(h.name, '') AS hospital_name").
		Joins("LEFT JOIN cows c ON c.id = r.cow_id").
		Joins("LEFT JOIN hospitals h ON h.id = r.assigned_hospital")
}

func (r *reportRepo) FindView(ctx context.Context, id uint) (*entities.ReportView, error) {
	var out []entities.ReportView
	if err := r.views(ctx).Where("r.id = ?", id).Limit(1).Find(&out).Error; err != nil {
		return nil, fmt.Errorf("report view %d: %w", id, err)
	}
	if len(out) == 0 {
		return nil, repository.ErrNotFound
	}
	return &out[0], nil
}

func (r *reportRepo) ListViews(ctx context.Context) ([]entities.ReportView, error) {
	var out []entities.ReportView
	if err := r.views(ctx).Order("r.timestamp DESC, r.id DESC").Find(&out).Error; err != nil {
		return nil, fmt.Errorf("list report views: %w", err)
	}
	return out, nil
}

func (r *reportRepo) Transaction(ctx context.Context, fn func(repository.ReportRepository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&reportRepo{db: tx})
	})
}
