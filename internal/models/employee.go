package models

type Employee struct {
	OrganizationID string  `gorm:"type:varchar(200);primaryKey"`
	DepartmentID   string  `gorm:"type:varchar(200);primaryKey"`
	ID             string  `gorm:"type:varchar(200);primaryKey"`
	Position       int     `gorm:"not null"`
	Name           string  `gorm:"type:varchar(200);not null"`
	Email          string  `gorm:"type:varchar(254);not null"`
	JobTitle       string  `gorm:"type:varchar(200);not null"`
	HireDate       *string `gorm:"type:varchar(64)"`
	Phone          *string `gorm:"type:varchar(200)"`
}
