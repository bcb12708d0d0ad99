package service

import (
	"context"
	"errors"

	"herdsos/entities"
	cowrepo "herdsos/pkg/cow/repository"
	hosprepo "herdsos/pkg/hospital/repository"
	"herdsos/pkg/report/repository"
)

var (
	ErrReportNotFound   = repository.ErrNotFound
	ErrCowNotFound      = cowrepo.ErrNotFound
	ErrHospitalNotFound = hosprepo.ErrNotFound

	// ErrNotAssigned: the acting hospital is not the report's current assignee.
	ErrNotAssigned = errors.New("report is not assigned to this hospital")
	// ErrConflict: the report left the expected state before the update landed.
	ErrConflict = errors.New("report was modified concurrently or is already resolved")
)

// CreateInput carries a reporter submission. Lat/Lon are the raw submitted
// values; anything unparseable is recorded as "no location".
type CreateInput struct {
	CowID     uint
	Condition string
	Photo     string
	Lat       string
	Lon       string
}

type Service interface {
	Create(ctx context.Context, in CreateInput) (*entities.Report, error)
	Accept(ctx context.Context, reportID, hospitalID uint) (*entities.Report, error)
	Reject(ctx context.Context, reportID, hospitalID uint) (*entities.Report, error)
	PendingForHospital(ctx context.Context, hospitalID uint) ([]entities.Report, error)
	Get(ctx context.Context, reportID uint) (*entities.ReportView, error)
	Dashboard(ctx context.Context) ([]entities.ReportView, error)
}
