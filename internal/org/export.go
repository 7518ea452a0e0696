package org

import (
	"fmt"
	"time"

	"org-structure-service/internal/apperror"
)

const DateLayout = time.RFC3339Nano

type EmployeeExport struct {
	ID           string  `json:"id" yaml:"id"`
	Name         string  `json:"name" yaml:"name"`
	Email        string  `json:"email" yaml:"email"`
	Position     string  `json:"position" yaml:"position"`
	DepartmentID *string `json:"department_id" yaml:"department_id"`
	HireDate     *string `json:"hire_date" yaml:"hire_date"`
	Phone        *string `json:"phone" yaml:"phone"`
}

type DepartmentExport struct {
	ID             string           `json:"id" yaml:"id"`
	Name           string           `json:"name" yaml:"name"`
	Description    *string          `json:"description" yaml:"description"`
	OrganizationID *string          `json:"organization_id" yaml:"organization_id"`
	ManagerID      *string          `json:"manager_id" yaml:"manager_id"`
	EmployeeCount  int              `json:"employee_count" yaml:"employee_count"`
	Employees      []EmployeeExport `json:"employees" yaml:"employees"`
}

type OrganizationExport struct {
	ID              string             `json:"id" yaml:"id"`
	Name            string             `json:"name" yaml:"name"`
	Description     *string            `json:"description" yaml:"description"`
	Industry        *string            `json:"industry" yaml:"industry"`
	FoundedDate     *string            `json:"founded_date" yaml:"founded_date"`
	DepartmentCount int                `json:"department_count" yaml:"department_count"`
	TotalEmployees  int                `json:"total_employees" yaml:"total_employees"`
	Departments     []DepartmentExport `json:"departments" yaml:"departments"`
}

func (e *Employee) Export() EmployeeExport {
	var departmentID *string
	if e.department != nil {
		id := e.department.id
		departmentID = &id
	}

	return EmployeeExport{
		ID:           e.id,
		Name:         e.name,
		Email:        e.email,
		Position:     e.position,
		DepartmentID: departmentID,
		HireDate:     formatDate(e.hireDate),
		Phone:        optionalString(e.phone),
	}
}

func (d *Department) Export() DepartmentExport {
	var organizationID, managerID *string
	if d.organization != nil {
		id := d.organization.id
		organizationID = &id
	}
	if d.manager != nil {
		id := d.manager.id
		managerID = &id
	}

	employees := make([]EmployeeExport, 0, len(d.employees))
	for _, employee := range d.employees {
		employees = append(employees, employee.Export())
	}

	return DepartmentExport{
		ID:             d.id,
		Name:           d.name,
		Description:    optionalString(d.description),
		OrganizationID: organizationID,
		ManagerID:      managerID,
		EmployeeCount:  len(d.employees),
		Employees:      employees,
	}
}

func (o *Organization) Export() OrganizationExport {
	departments := make([]DepartmentExport, 0, len(o.departments))
	for _, department := range o.departments {
		departments = append(departments, department.Export())
	}

	return OrganizationExport{
		ID:              o.id,
		Name:            o.name,
		Description:     optionalString(o.description),
		Industry:        optionalString(o.industry),
		FoundedDate:     formatDate(o.foundedDate),
		DepartmentCount: len(o.departments),
		TotalEmployees:  o.TotalEmployees(),
		Departments:     departments,
	}
}

func ImportOrganization(exported OrganizationExport) (*Organization, error) {
	foundedDate, err := ParseDate(exported.FoundedDate, "founded_date")
	if err != nil {
		return nil, err
	}

	organization, err := NewOrganization(OrganizationInput{
		ID:          exported.ID,
		Name:        exported.Name,
		Description: exported.Description,
		Industry:    exported.Industry,
		FoundedDate: foundedDate,
	})
	if err != nil {
		return nil, err
	}

	for _, exportedDepartment := range exported.Departments {
		department, err := importDepartment(exportedDepartment)
		if err != nil {
			return nil, fmt.Errorf("department %q: %w", exportedDepartment.ID, err)
		}
		if err := organization.AddDepartment(department); err != nil {
			return nil, err
		}
	}

	return organization, nil
}

func importDepartment(exported DepartmentExport) (*Department, error) {
	department, err := NewDepartment(DepartmentInput{
		ID:          exported.ID,
		Name:        exported.Name,
		Description: exported.Description,
	})
	if err != nil {
		return nil, err
	}

	for _, exportedEmployee := range exported.Employees {
		hireDate, err := ParseDate(exportedEmployee.HireDate, "hire_date")
		if err != nil {
			return nil, err
		}
		employee, err := NewEmployee(EmployeeInput{
			ID:       exportedEmployee.ID,
			Name:     exportedEmployee.Name,
			Email:    exportedEmployee.Email,
			Position: exportedEmployee.Position,
			HireDate: hireDate,
			Phone:    exportedEmployee.Phone,
		})
		if err != nil {
			return nil, fmt.Errorf("employee %q: %w", exportedEmployee.ID, err)
		}
		if err := department.AddEmployee(employee); err != nil {
			return nil, err
		}
	}

	if exported.ManagerID != nil {
		if err := department.SetManager(*exported.ManagerID); err != nil {
			return nil, err
		}
	}

	return department, nil
}

func (o *Organization) Clone() *Organization {
	clone := &Organization{
		id:          o.id,
		name:        o.name,
		description: optionalString(o.description),
		industry:    optionalString(o.industry),
		foundedDate: copyTime(o.foundedDate),
		departments: make([]*Department, 0, len(o.departments)),
		index:       make(map[string]*Department, len(o.departments)),
	}

	departments := make(map[*Department]*Department, len(o.departments))
	for _, department := range o.departments {
		copied := &Department{
			id:           department.id,
			name:         department.name,
			description:  optionalString(department.description),
			organization: clone,
			employees:    make([]*Employee, 0, len(department.employees)),
			index:        make(map[string]*Employee, len(department.employees)),
		}
		departments[department] = copied
		clone.departments = append(clone.departments, copied)
		clone.index[copied.id] = copied
	}

	employees := make(map[*Employee]*Employee)
	for _, department := range o.departments {
		copied := departments[department]
		for _, employee := range department.employees {
			member, seen := employees[employee]
			if !seen {
				member = &Employee{
					id:         employee.id,
					name:       employee.name,
					email:      employee.email,
					position:   employee.position,
					hireDate:   copyTime(employee.hireDate),
					phone:      optionalString(employee.phone),
					department: departments[employee.department],
				}
				employees[employee] = member
			}
			copied.employees = append(copied.employees, member)
			copied.index[member.id] = member
		}
		if department.manager != nil {
			copied.manager = copied.index[department.manager.id]
		}
	}

	return clone
}

func ParseDate(raw *string, field string) (*time.Time, error) {
	if raw == nil {
		return nil, nil
	}

	for _, layout := range []string{DateLayout, time.DateOnly} {
		if parsed, err := time.Parse(layout, *raw); err == nil {
			return &parsed, nil
		}
	}
	return nil, apperror.Newf(apperror.CodeValidation, "%s must be an RFC 3339 timestamp or YYYY-MM-DD date", field)
}

func formatDate(value *time.Time) *string {
	if value == nil {
		return nil
	}
	formatted := value.Format(DateLayout)
	return &formatted
}
