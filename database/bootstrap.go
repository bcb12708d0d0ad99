// database/bootstrap.go
package database

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"strconv"
	"strings"

	sqlite "github.com/glebarez/sqlite" // CGO-free driver
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"herdsos/entities"
)

var models = []any{
	&entities.Hospital{},
	&entities.Cow{},
	&entities.Report{},
}

// OpenSQLite opens and migrates the database or exits the process.
func OpenSQLite(path string) *gorm.DB {
	db, err := Open(path)
	if err != nil {
		log.Fatalf("[db] %v", err)
	}
	return db
}

func Open(path string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(dsn(path)), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("sql db: %w", err)
	}
	// one writer at a time: report transactions serialize in-process
	sqlDB.SetMaxOpenConns(1)
	if err := db.AutoMigrate(models...); err != nil {
		return nil, fmt.Errorf("automigrate: %w", err)
	}
	// databases created by the old tooling may hold comma-joined tried lists
	if err := normalizeTriedHospitals(db); err != nil {
		return nil, fmt.Errorf("migrate tried_hospitals: %w", err)
	}
	return db, nil
}

// Reset drops every table and recreates the schema empty.
func Reset(db *gorm.DB) error {
	if err := db.Migrator().DropTable(models...); err != nil {
		return fmt.Errorf("drop tables: %w", err)
	}
	return db.AutoMigrate(models...)
}

func dsn(path string) string {
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	// other processes (e.g. the seed command) wait for the write lock instead of failing
	return path + sep + "_pragma=busy_timeout(5000)"
}

// normalizeTriedHospitals rewrites every tried_hospitals value that is not a
// JSON array of IDs ("", NULL, "null", "1,3", "[1],2") into the canonical JSON form.
func normalizeTriedHospitals(db *gorm.DB) error {
	type legacyRow struct {
		ID    uint
		Tried sql.NullString
	}
	var all []legacyRow
	if err := db.Raw(`SELECT id, tried_hospitals AS tried FROM reports`).Scan(&all).Error; err != nil {
		return fmt.Errorf("scan legacy rows: %w", err)
	}
	var rows []legacyRow
	for _, r := range all {
		if !r.Tried.Valid || !isTriedJSON(r.Tried.String) {
			rows = append(rows, r)
		}
	}
	if len(rows) == 0 {
		return nil
	}

	return db.Transaction(func(tx *gorm.DB) error {
		for _, r := range rows {
			b, _ := json.Marshal(parseLegacyTried(r.Tried.String))
			if err := tx.Exec(`UPDATE reports SET tried_hospitals = ? WHERE id = ?`, string(b), r.ID).Error; err != nil {
				return err
			}
		}
		log.Printf("[db] normalized tried_hospitals on %d report(s)", len(rows))
		return nil
	})
}

func isTriedJSON(s string) bool {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "[") {
		return false
	}
	var ids []uint
	return json.Unmarshal([]byte(s), &ids) == nil
}

// parseLegacyTried accepts "1,3", " 2 , x ,2", "[1],2" and "null". Brackets are
// ignored, unparseable entries are dropped and duplicates keep their first position.
func parseLegacyTried(s string) []uint {
	out := []uint{}
	seen := map[uint]bool{}
	parts := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == '[' || r == ']'
	})
	for _, part := range parts {
		v, err := strconv.ParseUint(strings.TrimSpace(part), 10, 64)
		if err != nil || seen[uint(v)] {
			continue
		}
		seen[uint(v)] = true
		out = append(out, uint(v))
	}
	return out
}
