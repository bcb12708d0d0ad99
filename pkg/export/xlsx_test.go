package export

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"herdsos/entities"
)

func TestWriteDashboard(t *testing.T) {
	lat, lon := 12.97, 77.6
	photo := "1700000000_cow.jpg"
	hid := uint(2)
	reports := []entities.ReportView{
		{
			Report: entities.Report{
				ID: 7, CowID: 1, Condition: "limping", Photo: &photo,
				Lat: &lat, Lon: &lon, Timestamp: time.Date(2024, 5, 1, 9, 30, 0, 0, time.UTC),
				Status: entities.StatusPending, AssignedHospital: &hid, TriedHospitals: []uint{1},
			},
			CowCode:      "COW-1001",
			HospitalName: "North",
		},
		{
			Report:  entities.Report{ID: 8, CowID: 2, Condition: "stray", Status: entities.StatusPending},
			CowCode: "COW-1002",
		},
	}
	hospitals := []entities.Hospital{
		{ID: 1, Name: "Central", Phone: "+91", Lat: 12.97, Lon: 77.59, Address: "Main"},
		{ID: 2, Name: "North", Lat: 13.07, Lon: 77.59},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteDashboard(&buf, reports, hospitals))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{ReportsSheet, HospitalsSheet}, f.GetSheetList())

	rows, err := f.GetRows(ReportsSheet)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "Cow", rows[0][1])
	assert.Equal(t, []string{"7", "COW-1001", "limping", "pending", "North", "12.97", "77.6", "1", "1700000000_cow.jpg", "2024-05-01T09:30:00Z"}, rows[1])
	assert.Equal(t, "8", rows[2][0])
	assert.Equal(t, "", rows[2][4])

	hrows, err := f.GetRows(HospitalsSheet)
	require.NoError(t, err)
	require.Len(t, hrows, 3)
	assert.Equal(t, "Central", hrows[1][1])
}
