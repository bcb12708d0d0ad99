package entities

// Hospital is seeded reference data; it is never modified at runtime.
type Hospital struct {
	ID      uint    `gorm:"primaryKey" json:"id"`
	Name    string  `gorm:"uniqueIndex" json:"name"`
	Phone   string  `json:"phone"`
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
	Address string  `json:"address"`
}
