package service

import (
	"context"
	"time"

	"org-structure-service/internal/org"
)

type CreateOrganizationInput struct {
	ID          string
	Name        string
	Description *string
	Industry    *string
	FoundedDate *time.Time
}

type CreateDepartmentInput struct {
	ID          string
	Name        string
	Description *string
}

type CreateEmployeeInput struct {
	ID       string
	Name     string
	Email    string
	Position string
	HireDate *time.Time
	Phone    *string
}

// UpdateEmployeeInput changes only the fields that are set. PhoneSet with a
// nil Phone clears the phone number.
type UpdateEmployeeInput struct {
	Name        *string
	Email       *string
	Position    *string
	PhoneSet    bool
	Phone       *string
	HireDateSet bool
	HireDate    *time.Time
}

type Manager interface {
	CreateOrganization(ctx context.Context, input CreateOrganizationInput) (org.OrganizationExport, error)
	ListOrganizations(ctx context.Context) ([]org.OrganizationExport, error)
	GetOrganization(ctx context.Context, organizationID string) (org.OrganizationExport, error)
	DeleteOrganization(ctx context.Context, organizationID string) error
	GetStructure(ctx context.Context, organizationID string) (string, error)

	CreateDepartment(ctx context.Context, organizationID string, input CreateDepartmentInput) (org.DepartmentExport, error)
	DeleteDepartment(ctx context.Context, organizationID, departmentID string) error
	SetDepartmentManager(ctx context.Context, organizationID, departmentID string, employeeID *string) (org.DepartmentExport, error)

	CreateEmployee(ctx context.Context, organizationID, departmentID string, input CreateEmployeeInput) (org.EmployeeExport, error)
	UpdateEmployee(ctx context.Context, organizationID, departmentID, employeeID string, input UpdateEmployeeInput) (org.EmployeeExport, error)
	DeleteEmployee(ctx context.Context, organizationID, departmentID, employeeID string) error
	FindEmployee(ctx context.Context, organizationID, employeeID string) (org.EmployeeExport, error)
}

type Store interface {
	Save(ctx context.Context, exported org.OrganizationExport) error
	Delete(ctx context.Context, organizationID string) error
	LoadAll(ctx context.Context) ([]org.OrganizationExport, error)
}

type NopStore struct{}

func (NopStore) Save(context.Context, org.OrganizationExport) error {
	return nil
}

func (NopStore) Delete(context.Context, string) error {
	return nil
}

func (NopStore) LoadAll(context.Context) ([]org.OrganizationExport, error) {
	return nil, nil
}
