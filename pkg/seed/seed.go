// Package seed loads the hospital and cow reference data.
package seed

import (
	"context"
	"encoding/csv"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"herdsos/entities"
	cowrepo "herdsos/pkg/cow/repository"
	"herdsos/pkg/geo"
	hosprepo "herdsos/pkg/hospital/repository"
)

func DefaultHospitals() []entities.Hospital {
	return []entities.Hospital{
		{Name: "Bengaluru Vet Clinic", Phone: "+91-80-1111-0001", Lat: 12.9716, Lon: 77.5946, Address: "Main Street, Bengaluru"},
		{Name: "Whitefield Animal Care", Phone: "+91-80-1111-0002", Lat: 12.9719, Lon: 77.7499, Address: "Whitefield"},
		{Name: "Yelahanka Vet", Phone: "+91-80-1111-0003", Lat: 13.0680, Lon: 77.5938, Address: "Yelahanka"},
		{Name: "Mysore Road Clinic", Phone: "+91-80-1111-0004", Lat: 12.2958, Lon: 76.6394, Address: "Mysore Road"},
		{Name: "Vemana Vet Clinic", Phone: "+91-80-1111-0007", Lat: 12.9297, Lon: 77.6224, Address: "Koramangala"},
	}
}

func DefaultCows() []entities.Cow {
	return []entities.Cow{
		{Code: "COW-1001", Description: "Brown cow with ear tag A1"},
		{Code: "COW-1002", Description: "Grey cow near market"},
		{Code: "COW-1003", Description: "Stray cow - often in road"},
		{Code: "COW-1004", Description: "Grey cow near junction"},
	}
}

// Apply upserts hospitals by name and cows by code, so it is safe to rerun.
func Apply(ctx context.Context, hr hosprepo.HospitalRepository, cr cowrepo.CowRepository, hs []entities.Hospital, cs []entities.Cow) error {
	for i := range hs {
		if err := hr.Upsert(ctx, &hs[i]); err != nil {
			return fmt.Errorf("seed hospital %q: %w", hs[i].Name, err)
		}
	}
	for i := range cs {
		if err := cr.Upsert(ctx, &cs[i]); err != nil {
			return fmt.Errorf("seed cow %q: %w", cs[i].Code, err)
		}
	}
	log.Printf("[seed] %d hospital(s), %d cow(s)", len(hs), len(cs))
	return nil
}

// LoadHospitals reads hospitals from a .csv or .xlsx file with a header row.
// Required columns: name, lat, lon. Optional: phone, address.
func LoadHospitals(path string) ([]entities.Hospital, error) {
	tbl, err := readTable(path)
	if err != nil {
		return nil, err
	}
	cName := tbl.col("name", "hospital", "hospital_name")
	cLat := tbl.col("lat", "latitude")
	cLon := tbl.col("lon", "lng", "long", "longitude")
	cPhone := tbl.col("phone", "contact", "tel")
	cAddr := tbl.col("address", "addr", "location")
	if cName == -1 || cLat == -1 || cLon == -1 {
		return nil, fmt.Errorf("%s: missing required columns. Found headers: %v\nNeed at least: name, lat, lon", path, tbl.head)
	}

	var out []entities.Hospital
	for i, rec := range tbl.rows {
		name := cell(rec, cName)
		if name == "" {
			continue
		}
		lat, err1 := strconv.ParseFloat(cell(rec, cLat), 64)
		lon, err2 := strconv.ParseFloat(cell(rec, cLon), 64)
		if err1 != nil || err2 != nil || !(geo.Point{Lat: lat, Lon: lon}).Valid() {
			return nil, fmt.Errorf("%s row %d: bad coordinates for %q", path, i+2, name)
		}
		out = append(out, entities.Hospital{
			Name:    name,
			Phone:   cell(rec, cPhone),
			Lat:     lat,
			Lon:     lon,
			Address: cell(rec, cAddr),
		})
	}
	return out, nil
}

// LoadCows reads cows from a .csv or .xlsx file. Required column: code.
func LoadCows(path string) ([]entities.Cow, error) {
	tbl, err := readTable(path)
	if err != nil {
		return nil, err
	}
	cCode := tbl.col("code", "cow", "tag")
	cDesc := tbl.col("description", "desc", "notes")
	if cCode == -1 {
		return nil, fmt.Errorf("%s: missing required column code. Found headers: %v", path, tbl.head)
	}

	var out []entities.Cow
	for _, rec := range tbl.rows {
		code := cell(rec, cCode)
		if code == "" {
			continue
		}
		out = append(out, entities.Cow{Code: code, Description: cell(rec, cDesc)})
	}
	return out, nil
}

type table struct {
	head []string
	idx  map[string]int
	rows [][]string
}

func norm(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "\uFEFF") // BOM
	s = strings.ToLower(s)
	s = strings.ReplaceAll(s, " ", "")
	s = strings.ReplaceAll(s, "-", "")
	s = strings.ReplaceAll(s, "_", "")
	return s
}

// col returns the index of the first header matching any alias, or -1.
func (t *table) col(aliases ...string) int {
	for _, a := range aliases {
		if i, ok := t.idx[norm(a)]; ok {
			return i
		}
	}
	return -1
}

// cell guards against short rows; excelize trims trailing empty cells.
func cell(rec []string, i int) string {
	if i < 0 || i >= len(rec) {
		return ""
	}
	return strings.TrimSpace(rec[i])
}

func readTable(path string) (*table, error) {
	var (
		recs [][]string
		err  error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		recs, err = readCSV(path)
	case ".xlsx", ".xlsm":
		recs, err = readXLSX(path)
	default:
		return nil, fmt.Errorf("%s: unsupported file type (want .csv or .xlsx)", path)
	}
	if err != nil {
		return nil, err
	}
	if len(recs) == 0 {
		return nil, fmt.Errorf("%s: empty file", path)
	}

	t := &table{head: recs[0], idx: map[string]int{}, rows: recs[1:]}
	for i, h := range t.head {
		if _, dup := t.idx[norm(h)]; !dup {
			t.idx[norm(h)] = i
		}
	}
	return t, nil
}

func readCSV(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	cr := csv.NewReader(f)
	cr.FieldsPerRecord = -1
	return cr.ReadAll()
}

func readXLSX(path string) ([][]string, error) {
	x, err := excelize.OpenFile(path)
	if err != nil {
		return nil, err
	}
	defer x.Close()
	sheets := x.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("%s: no sheets", path)
	}
	return x.GetRows(sheets[0])
}
