package models

import "time"

// Organization is the persisted root record. Dates are stored as the exported
// ISO-8601 text so offsets and precision survive a reload.
type Organization struct {
	ID          string       `gorm:"type:varchar(200);primaryKey"`
	Name        string       `gorm:"type:varchar(200);not null"`
	Description *string      `gorm:"type:text"`
	Industry    *string      `gorm:"type:varchar(200)"`
	FoundedDate *string      `gorm:"type:varchar(64)"`
	Departments []Department `gorm:"foreignKey:OrganizationID;references:ID;constraint:OnDelete:CASCADE"`
	CreatedAt   time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt   time.Time
}
