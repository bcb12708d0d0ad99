package serviceImp

import (
	"context"
	"log"
	"slices"
	"strings"

	"herdsos/entities"
	"herdsos/pkg/assign"
	cowrepo "herdsos/pkg/cow/repository"
	"herdsos/pkg/geo"
	hosprepo "herdsos/pkg/hospital/repository"
	"herdsos/pkg/report/repository"
	svc "herdsos/pkg/report/service"
)

type service struct {
	reports   repository.ReportRepository
	hospitals hosprepo.HospitalRepository
	cows      cowrepo.CowRepository
}

func New(r repository.ReportRepository, h hosprepo.HospitalRepository, c cowrepo.CowRepository) svc.Service {
	return &service{reports: r, hospitals: h, cows: c}
}

func (s *service) Create(ctx context.Context, in svc.CreateInput) (*entities.Report, error) {
	if _, err := s.cows.FindByID(ctx, in.CowID); err != nil {
		return nil, err
	}

	rep := &entities.Report{
		CowID:          in.CowID,
		Condition:      strings.TrimSpace(in.Condition),
		Status:         entities.StatusPending,
		TriedHospitals: []uint{},
	}
	if p := strings.TrimSpace(in.Photo); p != "" {
		rep.Photo = &p
	}

	if loc, ok := geo.ParsePoint(in.Lat, in.Lon); ok {
		rep.Lat, rep.Lon = &loc.Lat, &loc.Lon
		hs, err := s.hospitals.List(ctx)
		if err != nil {
			return nil, err
		}
		if id, ok := assign.SelectNearest(hs, &loc, nil); ok {
			rep.AssignedHospital = &id
		}
	}

	if err := s.reports.Create(ctx, rep); err != nil {
		return nil, err
	}
	if rep.AssignedHospital != nil {
		log.Printf("[report] #%d assigned to hospital %d", rep.ID, *rep.AssignedHospital)
	} else {
		log.Printf("[report] #%d recorded without assignment (location=%v)", rep.ID, rep.HasLocation())
	}
	return rep, nil
}

func (s *service) Accept(ctx context.Context, reportID, hospitalID uint) (*entities.Report, error) {
	// looked up outside the transaction: the pool holds a single connection
	if _, err := s.hospitals.FindByID(ctx, hospitalID); err != nil {
		return nil, err
	}

	var out *entities.Report
	err := s.reports.Transaction(ctx, func(tx repository.ReportRepository) error {
		cur, err := tx.FindByID(ctx, reportID)
		if err != nil {
			return err
		}
		// a repeated accept from the same hospital changes nothing
		if cur.Status == entities.StatusAccepted && cur.IsAssignedTo(hospitalID) {
			out = cur
			return nil
		}
		if err := checkActionable(cur, hospitalID); err != nil {
			return err
		}

		next := *cur
		next.Status = entities.StatusAccepted
		ok, err := tx.CompareAndSwap(ctx, cur.ID, expectOf(cur), &next)
		if err != nil {
			return err
		}
		if !ok {
			return svc.ErrConflict
		}
		out = &next
		return nil
	})
	if err != nil {
		return nil, err
	}
	log.Printf("[report] #%d accepted by hospital %d", reportID, hospitalID)
	return out, nil
}

func (s *service) Reject(ctx context.Context, reportID, hospitalID uint) (*entities.Report, error) {
	hs, err := s.hospitals.List(ctx)
	if err != nil {
		return nil, err
	}
	if !slices.ContainsFunc(hs, func(h entities.Hospital) bool { return h.ID == hospitalID }) {
		return nil, svc.ErrHospitalNotFound
	}

	var out *entities.Report
	err = s.reports.Transaction(ctx, func(tx repository.ReportRepository) error {
		cur, err := tx.FindByID(ctx, reportID)
		if err != nil {
			return err
		}
		if err := checkActionable(cur, hospitalID); err != nil {
			return err
		}

		next := *cur
		next.TriedHospitals = append([]uint(nil), cur.TriedHospitals...)
		if !cur.Tried(hospitalID) {
			next.TriedHospitals = append(next.TriedHospitals, hospitalID)
		}

		var loc *geo.Point
		if cur.HasLocation() {
			loc = &geo.Point{Lat: *cur.Lat, Lon: *cur.Lon}
		}
		if id, ok := assign.SelectNearest(hs, loc, next.TriedHospitals); ok {
			next.AssignedHospital = &id
		} else {
			next.AssignedHospital = nil
			next.Status = entities.StatusUnassigned
		}

		ok, err := tx.CompareAndSwap(ctx, cur.ID, expectOf(cur), &next)
		if err != nil {
			return err
		}
		if !ok {
			return svc.ErrConflict
		}
		out = &next
		return nil
	})
	if err != nil {
		return nil, err
	}

	if out.AssignedHospital != nil {
		log.Printf("[report] #%d rejected by hospital %d, reassigned to %d", reportID, hospitalID, *out.AssignedHospital)
	} else {
		log.Printf("[report] #%d rejected by hospital %d, no hospitals left (tried=%v)", reportID, hospitalID, out.TriedHospitals)
	}
	return out, nil
}

func (s *service) PendingForHospital(ctx context.Context, hospitalID uint) ([]entities.Report, error) {
	if _, err := s.hospitals.FindByID(ctx, hospitalID); err != nil {
		return nil, err
	}
	return s.reports.ListPendingByHospital(ctx, hospitalID)
}

func (s *service) Get(ctx context.Context, reportID uint) (*entities.ReportView, error) {
	return s.reports.FindView(ctx, reportID)
}

func (s *service) Dashboard(ctx context.Context) ([]entities.ReportView, error) {
	return s.reports.ListViews(ctx)
}

// checkActionable allows accept/reject only from the live assignee of a pending report.
func checkActionable(r *entities.Report, hospitalID uint) error {
	if r.Status != entities.StatusPending {
		return svc.ErrConflict
	}
	if !r.IsAssignedTo(hospitalID) {
		return svc.ErrNotAssigned
	}
	return nil
}

func expectOf(r *entities.Report) repository.Expect {
	return repository.Expect{Status: r.Status, AssignedHospital: r.AssignedHospital}
}
