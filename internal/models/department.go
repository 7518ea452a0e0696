package models

// Department rows are keyed by (organization_id, id); Position keeps the
// insertion order of the in-memory tree.
type Department struct {
	OrganizationID string     `gorm:"type:varchar(200);primaryKey"`
	ID             string     `gorm:"type:varchar(200);primaryKey"`
	Position       int        `gorm:"not null"`
	Name           string     `gorm:"type:varchar(200);not null"`
	Description    *string    `gorm:"type:text"`
	ManagerID      *string    `gorm:"type:varchar(200)"`
	Employees      []Employee `gorm:"foreignKey:OrganizationID,DepartmentID;references:OrganizationID,ID;constraint:OnDelete:CASCADE"`
}
