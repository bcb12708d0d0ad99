package entities

type Cow struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Code        string `gorm:"uniqueIndex" json:"code"` // COW-1001
	Description string `json:"description"`
}
