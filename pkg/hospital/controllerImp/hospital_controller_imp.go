package controllerImp

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"herdsos/pkg/hospital/repository"
	"herdsos/pkg/middleware"
	rsvc "herdsos/pkg/report/service"
)

type HospitalCtrl struct {
	repo    repository.HospitalRepository
	reports rsvc.Service
}

func New(repo repository.HospitalRepository, reports rsvc.Service) *HospitalCtrl {
	return &HospitalCtrl{repo: repo, reports: reports}
}

func (h *HospitalCtrl) List(c echo.Context) error {
	out, err := h.repo.List(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, out)
}

// Get returns the hospital with its pending queue. Requires middleware.HospitalScope.
func (h *HospitalCtrl) Get(c echo.Context) error {
	hosp := middleware.Hospital(c)
	pending, err := h.reports.PendingForHospital(c.Request().Context(), hosp.ID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, echo.Map{"hospital": hosp, "reports": pending})
}

// Pending is the auto-refresh feed of the hospital queue.
func (h *HospitalCtrl) Pending(c echo.Context) error {
	pending, err := h.reports.PendingForHospital(c.Request().Context(), middleware.Hospital(c).ID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, pending)
}
