package org

import (
	"fmt"
	"time"
)

type EmployeeInput struct {
	ID       string
	Name     string
	Email    string
	Position string
	HireDate *time.Time
	Phone    *string
}

type Employee struct {
	id         string
	name       string
	email      string
	position   string
	hireDate   *time.Time
	phone      *string
	department *Department
}

func NewEmployee(input EmployeeInput) (*Employee, error) {
	if err := validateRequired(input.ID, "employee id"); err != nil {
		return nil, err
	}
	if err := validateRequired(input.Name, "name"); err != nil {
		return nil, err
	}
	if err := validateEmail(input.Email); err != nil {
		return nil, err
	}
	if err := validateRequired(input.Position, "position"); err != nil {
		return nil, err
	}
	phone := optionalPhone(input.Phone)
	if phone != nil {
		if err := validateRequired(*phone, "phone"); err != nil {
			return nil, err
		}
	}
	if err := validateDate(input.HireDate, "hire_date"); err != nil {
		return nil, err
	}

	return &Employee{
		id:       input.ID,
		name:     input.Name,
		email:    input.Email,
		position: input.Position,
		hireDate: copyTime(input.HireDate),
		phone:    phone,
	}, nil
}

func (e *Employee) ID() string              { return e.id }
func (e *Employee) Name() string            { return e.name }
func (e *Employee) Email() string           { return e.email }
func (e *Employee) Position() string        { return e.position }
func (e *Employee) HireDate() *time.Time    { return copyTime(e.hireDate) }
func (e *Employee) Phone() *string          { return optionalString(e.phone) }
func (e *Employee) Department() *Department { return e.department }

func (e *Employee) SetName(name string) error {
	if err := validateRequired(name, "name"); err != nil {
		return err
	}
	e.name = name
	return nil
}

func (e *Employee) SetEmail(email string) error {
	if err := validateEmail(email); err != nil {
		return err
	}
	e.email = email
	return nil
}

func (e *Employee) SetPosition(position string) error {
	if err := validateRequired(position, "position"); err != nil {
		return err
	}
	e.position = position
	return nil
}

func (e *Employee) SetPhone(phone *string) error {
	phone = optionalPhone(phone)
	if phone != nil {
		if err := validateRequired(*phone, "phone"); err != nil {
			return err
		}
	}
	e.phone = phone
	return nil
}

func (e *Employee) SetHireDate(hireDate *time.Time) error {
	if err := validateDate(hireDate, "hire_date"); err != nil {
		return err
	}
	e.hireDate = copyTime(hireDate)
	return nil
}

func (e *Employee) String() string {
	if e.department != nil {
		return fmt.Sprintf("Employee: %s - %s (%s)", e.name, e.position, e.department.name)
	}
	return fmt.Sprintf("Employee: %s - %s", e.name, e.position)
}

func copyTime(value *time.Time) *time.Time {
	if value == nil {
		return nil
	}
	copied := *value
	return &copied
}
