package org

import (
	"fmt"
	"time"

	"org-structure-service/internal/apperror"
)

type OrganizationInput struct {
	ID          string
	Name        string
	Description *string
	Industry    *string
	FoundedDate *time.Time
}

type Organization struct {
	id          string
	name        string
	description *string
	industry    *string
	foundedDate *time.Time
	departments []*Department
	index       map[string]*Department
}

func NewOrganization(input OrganizationInput) (*Organization, error) {
	if err := validateRequired(input.ID, "organization id"); err != nil {
		return nil, err
	}
	if err := validateRequired(input.Name, "name"); err != nil {
		return nil, err
	}
	if err := validateDate(input.FoundedDate, "founded_date"); err != nil {
		return nil, err
	}

	return &Organization{
		id:          input.ID,
		name:        input.Name,
		description: optionalString(input.Description),
		industry:    optionalString(input.Industry),
		foundedDate: copyTime(input.FoundedDate),
		index:       make(map[string]*Department),
	}, nil
}

func (o *Organization) ID() string              { return o.id }
func (o *Organization) Name() string            { return o.name }
func (o *Organization) Description() *string    { return optionalString(o.description) }
func (o *Organization) Industry() *string       { return optionalString(o.industry) }
func (o *Organization) FoundedDate() *time.Time { return copyTime(o.foundedDate) }
func (o *Organization) DepartmentCount() int    { return len(o.departments) }

func (o *Organization) AddDepartment(department *Department) error {
	if department == nil {
		return apperror.New(apperror.CodeValidation, "department is required")
	}
	if _, exists := o.index[department.id]; exists {
		return apperror.Newf(apperror.CodeConflict, "department %q is already in organization %q", department.id, o.id)
	}

	o.departments = append(o.departments, department)
	o.index[department.id] = department
	department.organization = o
	return nil
}

func (o *Organization) RemoveDepartment(departmentID string) (*Department, error) {
	department, exists := o.index[departmentID]
	if !exists {
		return nil, apperror.Newf(apperror.CodeNotFound, "department %q is not in organization %q", departmentID, o.id)
	}

	for i, candidate := range o.departments {
		if candidate.id == departmentID {
			o.departments = append(o.departments[:i:i], o.departments[i+1:]...)
			break
		}
	}
	delete(o.index, departmentID)

	if department.organization == o {
		department.organization = nil
	}
	return department, nil
}

func (o *Organization) FindDepartment(departmentID string) (*Department, error) {
	department, exists := o.index[departmentID]
	if !exists {
		return nil, apperror.Newf(apperror.CodeNotFound, "department %q is not in organization %q", departmentID, o.id)
	}
	return department, nil
}

func (o *Organization) FindEmployee(employeeID string) (*Employee, error) {
	for _, department := range o.departments {
		if employee, exists := department.index[employeeID]; exists {
			return employee, nil
		}
	}
	return nil, apperror.Newf(apperror.CodeNotFound, "employee %q is not in organization %q", employeeID, o.id)
}

func (o *Organization) Departments() []*Department {
	departments := make([]*Department, len(o.departments))
	copy(departments, o.departments)
	return departments
}

func (o *Organization) TotalEmployees() int {
	total := 0
	for _, department := range o.departments {
		total += department.EmployeeCount()
	}
	return total
}

func (o *Organization) AllEmployees() []*Employee {
	employees := make([]*Employee, 0, o.TotalEmployees())
	for _, department := range o.departments {
		employees = append(employees, department.employees...)
	}
	return employees
}

func (o *Organization) String() string {
	return fmt.Sprintf("Organization: %s - %d departments, %d employees", o.name, len(o.departments), o.TotalEmployees())
}
