package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"org-structure-service/internal/apperror"
	"org-structure-service/internal/models"
	"org-structure-service/internal/org"
)

// Store persists organization exports. Each Save replaces every row of the
// organization inside one transaction.
type Store struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

func (s *Store) Save(ctx context.Context, exported org.OrganizationExport) error {
	record := exportToRecord(exported)

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// keep the original creation time so LoadAll preserves registration order
		var existing models.Organization
		err := tx.Select("created_at").Where("id = ?", exported.ID).Take(&existing).Error
		switch {
		case err == nil:
			record.CreatedAt = existing.CreatedAt
		case !errors.Is(err, gorm.ErrRecordNotFound):
			return fmt.Errorf("load organization: %w", err)
		}

		if err := deleteOrganizationRows(tx, exported.ID); err != nil {
			return err
		}
		if err := tx.Omit("Departments").Create(&record).Error; err != nil {
			return mapDatabaseError(err)
		}
		for _, department := range record.Departments {
			department := department
			if err := tx.Omit("Employees").Create(&department).Error; err != nil {
				return mapDatabaseError(err)
			}
			if len(department.Employees) == 0 {
				continue
			}
			if err := tx.Create(&department.Employees).Error; err != nil {
				return mapDatabaseError(err)
			}
		}
		return nil
	})
}

func (s *Store) Delete(ctx context.Context, organizationID string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return deleteOrganizationRows(tx, organizationID)
	})
}

func (s *Store) LoadAll(ctx context.Context) ([]org.OrganizationExport, error) {
	var records []models.Organization
	err := s.db.WithContext(ctx).
		Preload("Departments", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		Preload("Departments.Employees", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		Order("created_at ASC").
		Order("id ASC").
		Find(&records).Error
	if err != nil {
		return nil, fmt.Errorf("load organizations: %w", err)
	}

	exports := make([]org.OrganizationExport, 0, len(records))
	for _, record := range records {
		exports = append(exports, recordToExport(record))
	}
	return exports, nil
}

func deleteOrganizationRows(tx *gorm.DB, organizationID string) error {
	if err := tx.Where("organization_id = ?", organizationID).Delete(&models.Employee{}).Error; err != nil {
		return fmt.Errorf("delete employees: %w", err)
	}
	if err := tx.Where("organization_id = ?", organizationID).Delete(&models.Department{}).Error; err != nil {
		return fmt.Errorf("delete departments: %w", err)
	}
	if err := tx.Where("id = ?", organizationID).Delete(&models.Organization{}).Error; err != nil {
		return fmt.Errorf("delete organization: %w", err)
	}
	return nil
}

func exportToRecord(exported org.OrganizationExport) models.Organization {
	record := models.Organization{
		ID:          exported.ID,
		Name:        exported.Name,
		Description: exported.Description,
		Industry:    exported.Industry,
		FoundedDate: exported.FoundedDate,
		Departments: make([]models.Department, 0, len(exported.Departments)),
	}

	for i, department := range exported.Departments {
		departmentRecord := models.Department{
			OrganizationID: exported.ID,
			ID:             department.ID,
			Position:       i,
			Name:           department.Name,
			Description:    department.Description,
			ManagerID:      department.ManagerID,
			Employees:      make([]models.Employee, 0, len(department.Employees)),
		}
		for j, employee := range department.Employees {
			departmentRecord.Employees = append(departmentRecord.Employees, models.Employee{
				OrganizationID: exported.ID,
				DepartmentID:   department.ID,
				ID:             employee.ID,
				Position:       j,
				Name:           employee.Name,
				Email:          employee.Email,
				JobTitle:       employee.Position,
				HireDate:       employee.HireDate,
				Phone:          employee.Phone,
			})
		}
		record.Departments = append(record.Departments, departmentRecord)
	}

	return record
}

func recordToExport(record models.Organization) org.OrganizationExport {
	exported := org.OrganizationExport{
		ID:          record.ID,
		Name:        record.Name,
		Description: record.Description,
		Industry:    record.Industry,
		FoundedDate: record.FoundedDate,
		Departments: make([]org.DepartmentExport, 0, len(record.Departments)),
	}

	for _, department := range record.Departments {
		organizationID := record.ID
		departmentExport := org.DepartmentExport{
			ID:             department.ID,
			Name:           department.Name,
			Description:    department.Description,
			OrganizationID: &organizationID,
			ManagerID:      department.ManagerID,
			EmployeeCount:  len(department.Employees),
			Employees:      make([]org.EmployeeExport, 0, len(department.Employees)),
		}
		for _, employee := range department.Employees {
			departmentID := department.ID
			departmentExport.Employees = append(departmentExport.Employees, org.EmployeeExport{
				ID:           employee.ID,
				Name:         employee.Name,
				Email:        employee.Email,
				Position:     employee.JobTitle,
				DepartmentID: &departmentID,
				HireDate:     employee.HireDate,
				Phone:        employee.Phone,
			})
		}
		exported.TotalEmployees += len(department.Employees)
		exported.Departments = append(exported.Departments, departmentExport)
	}
	exported.DepartmentCount = len(exported.Departments)

	return exported
}

func mapDatabaseError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code == "23505" {
			return apperror.New(apperror.CodeConflict, "resource with the same unique attributes already exists")
		}
		if pgErr.Code == "23503" {
			return apperror.New(apperror.CodeValidation, "invalid foreign key reference")
		}
	}
	return err
}
