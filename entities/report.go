package entities

import (
	"slices"
	"time"
)

type ReportStatus string

const (
	StatusPending    ReportStatus = "pending"
	StatusAccepted   ReportStatus = "accepted"
	StatusUnassigned ReportStatus = "unassigned"
)

type Report struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CowID     uint      `gorm:"index" json:"cow_id"`
	Condition string    `json:"condition"`
	Photo     *string   `json:"photo,omitempty"`
	Lat       *float64  `json:"lat"`
	Lon       *float64  `json:"lon"`
	Timestamp time.Time `gorm:"autoCreateTime" json:"timestamp"`

	Status           ReportStatus `gorm:"index;default:pending" json:"status"`
	AssignedHospital *uint        `gorm:"column:assigned_hospital;index" json:"assigned_hospital"`
	// ordered, no duplicates; stored as a JSON array
	TriedHospitals []uint `gorm:"column:tried_hospitals;serializer:json" json:"tried_hospitals"`
}

// HasLocation reports whether both reporter coordinates were recorded.
func (r *Report) HasLocation() bool { return r.Lat != nil && r.Lon != nil }

func (r *Report) Tried(hospitalID uint) bool {
	return slices.Contains(r.TriedHospitals, hospitalID)
}

// IsAssignedTo is true only for a live assignment to hospitalID.
func (r *Report) IsAssignedTo(hospitalID uint) bool {
	return r.AssignedHospital != nil && *r.AssignedHospital == hospitalID
}

// ReportView is the dashboard/thank-you projection joined with cow and hospital.
type ReportView struct {
	Report
	CowCode      string `json:"cow_code"`
	HospitalName string `json:"hospital_name"`
}
