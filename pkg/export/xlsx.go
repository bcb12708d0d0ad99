// Package export renders dashboard data as spreadsheets.
package export

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"herdsos/entities"
)

const (
	ReportsSheet   = "Reports"
	HospitalsSheet = "Hospitals"
)

var reportHeader = []any{"ID", "Cow", "Condition", "Status", "Hospital", "Lat", "Lon", "Tried", "Photo", "Reported At"}
var hospitalHeader = []any{"ID", "Name", "Phone", "Lat", "Lon", "Address"}

// WriteDashboard writes a workbook with one row per report and per hospital.
func WriteDashboard(w io.Writer, reports []entities.ReportView, hospitals []entities.Hospital) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", ReportsSheet); err != nil {
		return err
	}
	if err := f.SetSheetRow(ReportsSheet, "A1", &reportHeader); err != nil {
		return err
	}
	for i, r := range reports {
		row := []any{
			r.ID,
			r.CowCode,
			r.Condition,
			string(r.Status),
			r.HospitalName,
			optFloat(r.Lat),
			optFloat(r.Lon),
			joinIDs(r.TriedHospitals),
			optString(r.Photo),
			r.Timestamp.Format(time.RFC3339),
		}
		cellRef, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(ReportsSheet, cellRef, &row); err != nil {
			return fmt.Errorf("report row %d: %w", r.ID, err)
		}
	}

	if _, err := f.NewSheet(HospitalsSheet); err != nil {
		return err
	}
	if err := f.SetSheetRow(HospitalsSheet, "A1", &hospitalHeader); err != nil {
		return err
	}
	for i, h := range hospitals {
		row := []any{h.ID, h.Name, h.Phone, h.Lat, h.Lon, h.Address}
		cellRef, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(HospitalsSheet, cellRef, &row); err != nil {
			return fmt.Errorf("hospital row %d: %w", h.ID, err)
		}
	}

	_, err := f.WriteTo(w)
	return err
}

func optFloat(v *float64) any {
	if v == nil {
		return ""
	}
	return *v
}

func optString(v *string) string {
	if v == nil {
		return ""
	}
	return *v
}

func joinIDs(ids []uint) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.FormatUint(uint64(id), 10)
	}
	return strings.Join(parts, ",")
}
