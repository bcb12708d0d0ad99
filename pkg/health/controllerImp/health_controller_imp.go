package controllerImp

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"herdsos/entities"
)

var appStart = time.Now()

type HealthCtrl struct {
	db *gorm.DB
}

func NewHealthCtrl(db *gorm.DB) *HealthCtrl { return &HealthCtrl{db: db} }

type check struct {
	OK  bool   `json:"ok"`
	Err string `json:"err,omitempty"`
}

// Health pings the database and reports whether any hospital is seeded;
// without hospitals every located report ends up unassigned.
func (h *HealthCtrl) Health(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 800*time.Millisecond)
	defer cancel()

	db := check{OK: true}
	hospitals := check{OK: true}
	var count int64

	if h.db == nil {
		db = check{Err: "gorm db is nil"}
	} else if sqlDB, err := h.db.DB(); err != nil {
		db = check{Err: "db.DB(): " + err.Error()}
	} else if err := sqlDB.PingContext(ctx); err != nil {
		db = check{Err: "ping: " + err.Error()}
	}

	if !db.OK {
		hospitals = check{Err: "database unavailable"}
	} else if err := h.db.WithContext(ctx).Model(&entities.Hospital{}).Count(&count).Error; err != nil {
		hospitals = check{Err: "count: " + err.Error()}
	} else if count == 0 {
		hospitals = check{Err: "no hospitals seeded"}
	}

	status := http.StatusOK
	if !db.OK {
		status = http.StatusServiceUnavailable
	}

	return c.JSON(status, map[string]any{
		"status":     map[string]any{"ok": db.OK && hospitals.OK},
		"uptime_sec": int(time.Since(appStart).Seconds()),
		"checks": map[string]any{
			"database":  db,
			"hospitals": hospitals,
		},
		"hospital_count": count,
		"time":           time.Now().Format(time.RFC3339),
	})
}
