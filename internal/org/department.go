package org

import (
	"fmt"

	"org-structure-service/internal/apperror"
)

type DepartmentInput struct {
	ID          string
	Name        string
	Description *string
}

type Department struct {
	id           string
	name         string
	description  *string
	organization *Organization
	manager      *Employee
	employees    []*Employee
	index        map[string]*Employee
}

func NewDepartment(input DepartmentInput) (*Department, error) {
	if err := validateRequired(input.ID, "department id"); err != nil {
		return nil, err
	}
	if err := validateRequired(input.Name, "name"); err != nil {
		return nil, err
	}

	return &Department{
		id:          input.ID,
		name:        input.Name,
		description: optionalString(input.Description),
		index:       make(map[string]*Employee),
	}, nil
}

func (d *Department) ID() string                  { return d.id }
func (d *Department) Name() string                { return d.name }
func (d *Department) Description() *string        { return optionalString(d.description) }
func (d *Department) Manager() *Employee          { return d.manager }
func (d *Department) EmployeeCount() int          { return len(d.employees) }
func (d *Department) Organization() *Organization { return d.organization }

func (d *Department) SetName(name string) error {
	if err := validateRequired(name, "name"); err != nil {
		return err
	}
	d.name = name
	return nil
}

func (d *Department) SetDescription(description *string) {
	d.description = optionalString(description)
}

// The previous department of a moved employee is not updated.
func (d *Department) AddEmployee(employee *Employee) error {
	if employee == nil {
		return apperror.New(apperror.CodeValidation, "employee is required")
	}
	if _, exists := d.index[employee.id]; exists {
		return apperror.Newf(apperror.CodeConflict, "employee %q is already in department %q", employee.id, d.id)
	}

	d.employees = append(d.employees, employee)
	d.index[employee.id] = employee
	employee.department = d
	return nil
}

func (d *Department) RemoveEmployee(employeeID string) (*Employee, error) {
	employee, exists := d.index[employeeID]
	if !exists {
		return nil, apperror.Newf(apperror.CodeNotFound, "employee %q is not in department %q", employeeID, d.id)
	}

	for i, candidate := range d.employees {
		if candidate.id == employeeID {
			d.employees = append(d.employees[:i:i], d.employees[i+1:]...)
			break
		}
	}
	delete(d.index, employeeID)

	if d.manager == employee {
		d.manager = nil
	}
	if employee.department == d {
		employee.department = nil
	}
	return employee, nil
}

func (d *Department) FindEmployee(employeeID string) (*Employee, error) {
	employee, exists := d.index[employeeID]
	if !exists {
		return nil, apperror.Newf(apperror.CodeNotFound, "employee %q is not in department %q", employeeID, d.id)
	}
	return employee, nil
}

func (d *Department) Employees() []*Employee {
	employees := make([]*Employee, len(d.employees))
	copy(employees, d.employees)
	return employees
}

func (d *Department) SetManager(employeeID string) error {
	employee, err := d.FindEmployee(employeeID)
	if err != nil {
		return err
	}
	d.manager = employee
	return nil
}

func (d *Department) ClearManager() {
	d.manager = nil
}

func (d *Department) String() string {
	if d.organization != nil {
		return fmt.Sprintf("Department: %s (%s) - %d employees", d.name, d.organization.name, len(d.employees))
	}
	return fmt.Sprintf("Department: %s - %d employees", d.name, len(d.employees))
}
