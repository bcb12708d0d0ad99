package repository

import (
	"context"
	"errors"

	"herdsos/entities"
)

var ErrNotFound = errors.New("report not found")

// Expect is the pre-state a conditional update must still observe.
type Expect struct {
	Status           entities.ReportStatus
	AssignedHospital *uint
}

type ReportRepository interface {
	Create(ctx context.Context, r *entities.Report) error
	FindByID(ctx context.Context, id uint) (*entities.Report, error)
	// CompareAndSwap writes status, assigned_hospital and tried_hospitals from next
	// only when the stored row still matches expect. It reports whether a row changed.
	CompareAndSwap(ctx context.Context, id uint, expect Expect, next *entities.Report) (bool, error)
	ListPendingByHospital(ctx context.Context, hospitalID uint) ([]entities.Report, error)
	FindView(ctx context.Context, id uint) (*entities.ReportView, error)
	ListViews(ctx context.Context) ([]entities.ReportView, error)
	// Transaction runs fn against a repository bound to a single database transaction.
	Transaction(ctx context.Context, fn func(ReportRepository) error) error
}
