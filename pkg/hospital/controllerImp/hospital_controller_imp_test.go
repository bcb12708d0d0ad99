package controllerImp

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"herdsos/database"
	"herdsos/entities"
	cowRepoImp "herdsos/pkg/cow/repositoryImp"
	hospRepoImp "herdsos/pkg/hospital/repositoryImp"
	"herdsos/pkg/middleware"
	reportRepoImp "herdsos/pkg/report/repositoryImp"
	rsvc "herdsos/pkg/report/service"
	"herdsos/pkg/report/serviceImp"
)

type hospitalFixture struct {
	e       *echo.Echo
	reports rsvc.Service
}

func newHospitalFixture(t *testing.T) *hospitalFixture {
	t.Helper()
	db, err := database.Open(filepath.Join(t.TempDir(), "herdsos.db"))
	require.NoError(t, err)
	t.Cleanup(func() {
		if s, err := db.DB(); err == nil {
			_ = s.Close()
		}
	})
	require.NoError(t, db.Create(&[]entities.Hospital{
		{ID: 1, Name: "Central", Lat: 12.97, Lon: 77.59},
		{ID: 2, Name: "North", Lat: 13.07, Lon: 77.59},
	}).Error)
	require.NoError(t, db.Create(&entities.Cow{ID: 1, Code: "COW-1001"}).Error)

	hr := hospRepoImp.New(db)
	s := serviceImp.New(reportRepoImp.New(db), hr, cowRepoImp.New(db))
	ctrl := New(hr, s)

	e := echo.New()
	e.GET("/hospitals", ctrl.List)
	g := e.Group("/hospitals/:id", middleware.HospitalScope(hr))
	g.GET("", ctrl.Get)
	g.GET("/reports", ctrl.Pending)
	return &hospitalFixture{e: e, reports: s}
}

func (f *hospitalFixture) get(path string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	f.e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestHospitalList(t *testing.T) {
	f := newHospitalFixture(t)
	rec := f.get("/hospitals")
	require.Equal(t, http.StatusOK, rec.Code)

	var hs []entities.Hospital
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &hs))
	require.Len(t, hs, 2)
	assert.Equal(t, "Central", hs[0].Name)
}

func TestHospitalQueue(t *testing.T) {
	f := newHospitalFixture(t)
	ctx := context.Background()

	near1, err := f.reports.Create(ctx, rsvc.CreateInput{CowID: 1, Condition: "bloated", Lat: "12.97", Lon: "77.60"})
	require.NoError(t, err)
	near2, err := f.reports.Create(ctx, rsvc.CreateInput{CowID: 1, Lat: "13.07", Lon: "77.60"})
	require.NoError(t, err)
	accepted, err := f.reports.Create(ctx, rsvc.CreateInput{CowID: 1, Lat: "12.98", Lon: "77.60"})
	require.NoError(t, err)
	_, err = f.reports.Accept(ctx, accepted.ID, 1)
	require.NoError(t, err)

	t.Run("hospital page", func(t *testing.T) {
		rec := f.get("/hospitals/1")
		require.Equal(t, http.StatusOK, rec.Code)
		var out struct {
			Hospital entities.Hospital `json:"hospital"`
			Reports  []entities.Report `json:"reports"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
		assert.Equal(t, "Central", out.Hospital.Name)
		require.Len(t, out.Reports, 1)
		assert.Equal(t, near1.ID, out.Reports[0].ID)
		assert.Equal(t, "bloated", out.Reports[0].Condition)
	})

	t.Run("queue feed", func(t *testing.T) {
		rec := f.get("/hospitals/2/reports")
		require.Equal(t, http.StatusOK, rec.Code)
		var reports []entities.Report
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &reports))
		require.Len(t, reports, 1)
		assert.Equal(t, near2.ID, reports[0].ID)
		assert.Equal(t, entities.StatusPending, reports[0].Status)
	})

	t.Run("reassigned report moves queues", func(t *testing.T) {
		_, err := f.reports.Reject(ctx, near2.ID, 2)
		require.NoError(t, err)

		var reports []entities.Report
		require.NoError(t, json.Unmarshal(f.get("/hospitals/2/reports").Body.Bytes(), &reports))
		assert.Empty(t, reports)

		require.NoError(t, json.Unmarshal(f.get("/hospitals/1/reports").Body.Bytes(), &reports))
		assert.Len(t, reports, 2)
	})

	t.Run("unknown hospital", func(t *testing.T) {
		rec := f.get("/hospitals/99")
		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Contains(t, rec.Body.String(), "error")
	})
}
