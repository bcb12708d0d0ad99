package database

import (
	"path/filepath"
	"testing"

	sqlite "github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"herdsos/entities"
)

var legacySchema = []string{`
CREATE TABLE hospitals (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    name TEXT,
    phone TEXT,
    lat REAL,
    lon REAL,
    address TEXT
)`, `
CREATE TABLE cows (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    code TEXT,
    description TEXT
)`, `
CREATE TABLE reports (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    cow_id INTEGER,
    condition TEXT,
    photo TEXT,
    lat REAL,
    lon REAL,
    timestamp DATETIME DEFAULT CURRENT_TIMESTAMP,
    status TEXT DEFAULT 'pending',
    assigned_hospital INTEGER,
    tried_hospitals TEXT DEFAULT ''
)`}

func TestParseLegacyTried(t *testing.T) {
	tests := []struct {
		in   string
		want []uint
	}{
		{"", []uint{}},
		{"null", []uint{}},
		{"3", []uint{3}},
		{"1,3", []uint{1, 3}},
		{" 2 , x ,2,5", []uint{2, 5}},
		{"4,,1,4", []uint{4, 1}},
		{"[1],2", []uint{1, 2}},
		{"[3, 1],1,4", []uint{3, 1, 4}},
		{`[1,"x"]`, []uint{1}},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, parseLegacyTried(tt.in))
		})
	}
}

func TestOpenNormalizesLegacyTriedLists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "legacy.db")

	raw, err := gorm.Open(sqlite.Open(path), &gorm.Config{})
	require.NoError(t, err)
	for _, stmt := range legacySchema {
		require.NoError(t, raw.Exec(stmt).Error)
	}
	require.NoError(t, raw.Exec(`INSERT INTO hospitals (name, phone, lat, lon, address) VALUES ('A','1',12.97,77.59,'x'), ('B','2',13.07,77.59,'y')`).Error)
	require.NoError(t, raw.Exec(`INSERT INTO cows (code, description) VALUES ('COW-1','brown')`).Error)
	require.NoError(t, raw.Exec(`INSERT INTO reports (cow_id, condition, status, assigned_hospital, tried_hospitals) VALUES
		(1, 'comma', 'pending', 2, '1'),
		(1, 'json', 'unassigned', NULL, '[1, 2]'),
		(1, 'empty', 'pending', 1, ''),
		(1, 'missing', 'pending', NULL, NULL),
		(1, 'mixed', 'pending', 1, '[1],2'),
		(1, 'not ids', 'pending', 1, '["a"]')`).Error)
	sqlDB, err := raw.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())

	db, err := Open(path)
	require.NoError(t, err)
	t.Cleanup(func() {
		if s, err := db.DB(); err == nil {
			_ = s.Close()
		}
	})

	var reports []entities.Report
	require.NoError(t, db.Order("id ASC").Find(&reports).Error)
	require.Len(t, reports, 6)

	assert.Equal(t, []uint{1}, reports[0].TriedHospitals)
	assert.Equal(t, []uint{1, 2}, reports[1].TriedHospitals)
	assert.Empty(t, reports[2].TriedHospitals)
	assert.Empty(t, reports[3].TriedHospitals)
	assert.Equal(t, []uint{1, 2}, reports[4].TriedHospitals)
	assert.Empty(t, reports[5].TriedHospitals)

	var stored []string
	require.NoError(t, db.Raw(`SELECT tried_hospitals FROM reports ORDER BY id`).Scan(&stored).Error)
	assert.Equal(t, []string{"[1]", "[1, 2]", "[]", "[]", "[1,2]", "[]"}, stored)
}

func TestReset(t *testing.T) {
	db, err := Open(filepath.Join(t.TempDir(), "reset.db"))
	require.NoError(t, err)
	require.NoError(t, db.Create(&entities.Cow{Code: "COW-9", Description: "x"}).Error)

	require.NoError(t, Reset(db))

	var n int64
	require.NoError(t, db.Model(&entities.Cow{}).Count(&n).Error)
	assert.Zero(t, n)
}
