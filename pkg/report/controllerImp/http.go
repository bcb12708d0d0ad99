package controllerImp

import (
	"bytes"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"herdsos/pkg/export"
	hosprepo "herdsos/pkg/hospital/repository"
	rsvc "herdsos/pkg/report/service"
)

type httpCtrl struct {
	s         rsvc.Service
	hospitals hosprepo.HospitalRepository
}

func New(s rsvc.Service, hospitals hosprepo.HospitalRepository) *httpCtrl {
	return &httpCtrl{s: s, hospitals: hospitals}
}

func (h *httpCtrl) Register(e *echo.Echo) {
	for _, g := range []*echo.Group{e.Group(""), e.Group("/api/v1")} {
		g.POST("/reports", h.create)
		g.GET("/reports/:id", h.get)
		g.POST("/reports/:id/accept", h.accept)
		g.POST("/reports/:id/reject", h.reject)
		g.GET("/dashboard", h.dashboard)
	}
	e.GET("/dashboard/export.xlsx", h.exportXLSX)

	// paths the existing report and hospital pages post to
	e.POST("/submit_report", h.create)
	e.GET("/thanks/:id", h.get)
	e.POST("/hospital_action", h.hospitalAction)
}

// coordParam keeps the raw submitted coordinate text so that bad input
// degrades to "no location" instead of failing the bind.
type coordParam string

func (p *coordParam) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*p = coordParam(s)
		return nil
	}
	if string(b) == "null" {
		*p = ""
		return nil
	}
	*p = coordParam(b)
	return nil
}

func (p *coordParam) UnmarshalParam(v string) error {
	*p = coordParam(v)
	return nil
}

type createReq struct {
	CowID     uint       `json:"cow_id" form:"cow_id"`
	Condition string     `json:"condition" form:"condition"`
	Photo     string     `json:"photo" form:"photo"`
	Lat       coordParam `json:"lat" form:"lat"`
	Lon       coordParam `json:"lon" form:"lon"`
}

type actionReq struct {
	HospitalID uint `json:"hospital_id" form:"hospital_id"`
}

func (h *httpCtrl) create(c echo.Context) error {
	var in createReq
	if err := c.Bind(&in); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if in.CowID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "cow_id is required"})
	}
	rep, err := h.s.Create(c.Request().Context(), rsvc.CreateInput{
		CowID:     in.CowID,
		Condition: in.Condition,
		Photo:     in.Photo,
		Lat:       string(in.Lat),
		Lon:       string(in.Lon),
	})
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusCreated, rep)
}

func (h *httpCtrl) get(c echo.Context) error {
	id, err := parseUint(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid report id"})
	}
	v, err := h.s.Get(c.Request().Context(), uint(id))
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusOK, v)
}

func (h *httpCtrl) accept(c echo.Context) error { return h.act(c, "accept") }

func (h *httpCtrl) reject(c echo.Context) error { return h.act(c, "reject") }

func (h *httpCtrl) act(c echo.Context, action string) error {
	id, err := parseUint(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid report id"})
	}
	var in actionReq
	if err := c.Bind(&in); err != nil || in.HospitalID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "hospital_id is required"})
	}
	return h.apply(c, action, uint(id), in.HospitalID)
}

// hospitalAction serves the form used on the hospital page:
// action=accept|reject, report_id, hospital_id.
func (h *httpCtrl) hospitalAction(c echo.Context) error {
	action := strings.ToLower(strings.TrimSpace(c.FormValue("action")))
	reportID, err1 := parseUint(c.FormValue("report_id"))
	hospitalID, err2 := parseUint(c.FormValue("hospital_id"))
	if err1 != nil || err2 != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "report_id and hospital_id are required"})
	}
	return h.apply(c, action, uint(reportID), uint(hospitalID))
}

func (h *httpCtrl) apply(c echo.Context, action string, reportID, hospitalID uint) error {
	ctx := c.Request().Context()
	switch action {
	case "accept":
		rep, err := h.s.Accept(ctx, reportID, hospitalID)
		if err != nil {
			return writeErr(c, err)
		}
		return c.JSON(http.StatusOK, rep)
	case "reject":
		rep, err := h.s.Reject(ctx, reportID, hospitalID)
		if err != nil {
			return writeErr(c, err)
		}
		return c.JSON(http.StatusOK, rep)
	default:
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "unknown action"})
	}
}

func (h *httpCtrl) dashboard(c echo.Context) error {
	ctx := c.Request().Context()
	reports, err := h.s.Dashboard(ctx)
	if err != nil {
		return writeErr(c, err)
	}
	hospitals, err := h.hospitals.List(ctx)
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"reports": reports, "hospitals": hospitals})
}

func (h *httpCtrl) exportXLSX(c echo.Context) error {
	ctx := c.Request().Context()
	reports, err := h.s.Dashboard(ctx)
	if err != nil {
		return writeErr(c, err)
	}
	hospitals, err := h.hospitals.List(ctx)
	if err != nil {
		return writeErr(c, err)
	}
	var buf bytes.Buffer
	if err := export.WriteDashboard(&buf, reports, hospitals); err != nil {
		return writeErr(c, err)
	}
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="herdsos-dashboard.xlsx"`)
	return c.Blob(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())
}

func writeErr(c echo.Context, err error) error {
	switch {
	case errors.Is(err, rsvc.ErrReportNotFound),
		errors.Is(err, rsvc.ErrCowNotFound),
		errors.Is(err, rsvc.ErrHospitalNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": err.Error()})
	case errors.Is(err, rsvc.ErrNotAssigned), errors.Is(err, rsvc.ErrConflict):
		return c.JSON(http.StatusConflict, echo.Map{"error": err.Error()})
	default:
		log.Printf("[report] %s %s: %v", c.Request().Method, c.Path(), err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
	}
}

func parseUint(s string) (uint64, error) {
	return strconv.ParseUint(strings.TrimSpace(s), 10, 64)
}
