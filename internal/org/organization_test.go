package org

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"org-structure-service/internal/apperror"
)

func buildTechCorp(t *testing.T) *Organization {
	t.Helper()
	organization, err := NewOrganization(OrganizationInput{ID: "ORG001", Name: "TechCorp"})
	require.NoError(t, err)

	engineering := mustDepartment(t, "DEPT001", "Engineering")
	require.NoError(t, organization.AddDepartment(engineering))

	jane, err := NewEmployee(EmployeeInput{ID: "EMP001", Name: "Jane Doe", Email: "jane@techcorp.com", Position: "CTO"})
	require.NoError(t, err)
	john, err := NewEmployee(EmployeeInput{ID: "EMP002", Name: "John Smith", Email: "john@techcorp.com", Position: "Senior Engineer"})
	require.NoError(t, err)
	require.NoError(t, engineering.AddEmployee(jane))
	require.NoError(t, engineering.AddEmployee(john))
	return organization
}

func TestNewOrganization(t *testing.T) {
	founded := time.Date(2010, 1, 1, 0, 0, 0, 0, time.UTC)
	organization, err := NewOrganization(OrganizationInput{
		ID:          "O001",
		Name:        "Tech Corp",
		Description: strPtr("A technology company"),
		Industry:    strPtr("Technology"),
		FoundedDate: &founded,
	})
	require.NoError(t, err)

	assert.Equal(t, "O001", organization.ID())
	assert.Equal(t, "Tech Corp", organization.Name())
	assert.Equal(t, "A technology company", *organization.Description())
	assert.Equal(t, "Technology", *organization.Industry())
	assert.Equal(t, 2010, organization.FoundedDate().Year())
	assert.Equal(t, 0, organization.DepartmentCount())

	_, err = NewOrganization(OrganizationInput{ID: "O002"})
	assert.True(t, apperror.Is(err, apperror.CodeValidation))
}

func TestOrganizationScenario(t *testing.T) {
	organization := buildTechCorp(t)

	assert.Equal(t, 2, organization.TotalEmployees())

	john, err := organization.FindEmployee("EMP002")
	require.NoError(t, err)
	assert.Equal(t, "John Smith", john.Name())
	assert.Equal(t, "Engineering", john.Department().Name())

	_, err = organization.FindEmployee("EMP999")
	assert.True(t, apperror.Is(err, apperror.CodeNotFound))

	expected := "Organization: TechCorp - 1 departments, 2 employees\n" +
		"  Department: Engineering (TechCorp) - 2 employees\n" +
		"    - Jane Doe (CTO)\n" +
		"    - John Smith (Senior Engineer)\n"
	assert.Equal(t, expected, organization.Structure())

	var buf bytes.Buffer
	require.NoError(t, organization.PrintStructure(&buf))
	assert.Equal(t, expected, buf.String())
}

func TestOrganizationDepartments(t *testing.T) {
	organization, err := NewOrganization(OrganizationInput{ID: "O1", Name: "Org"})
	require.NoError(t, err)
	engineering := mustDepartment(t, "D1", "Engineering")
	sales := mustDepartment(t, "D2", "Sales")

	require.NoError(t, organization.AddDepartment(engineering))
	require.NoError(t, organization.AddDepartment(sales))
	assert.Same(t, organization, sales.Organization())

	err = organization.AddDepartment(mustDepartment(t, "D1", "Other"))
	assert.True(t, apperror.Is(err, apperror.CodeConflict))
	assert.Equal(t, 2, organization.DepartmentCount())

	found, err := organization.FindDepartment("D2")
	require.NoError(t, err)
	assert.Same(t, sales, found)

	departments := organization.Departments()
	departments[0] = nil
	assert.NotNil(t, organization.Departments()[0])

	require.NoError(t, engineering.AddEmployee(mustEmployee(t, "E1", "A", "Dev")))
	removed, err := organization.RemoveDepartment("D1")
	require.NoError(t, err)
	assert.Same(t, engineering, removed)
	assert.Nil(t, engineering.Organization())
	assert.Equal(t, 1, engineering.EmployeeCount(), "employees stay with the removed department")
	assert.Same(t, engineering, engineering.Employees()[0].Department())

	_, err = organization.FindDepartment("D1")
	assert.True(t, apperror.Is(err, apperror.CodeNotFound))
	_, err = organization.RemoveDepartment("D1")
	assert.True(t, apperror.Is(err, apperror.CodeNotFound))
	_, err = organization.FindEmployee("E1")
	assert.True(t, apperror.Is(err, apperror.CodeNotFound))
}

func TestOrganizationTotalsTrackMutations(t *testing.T) {
	organization, err := NewOrganization(OrganizationInput{ID: "O1", Name: "Org"})
	require.NoError(t, err)
	first := mustDepartment(t, "D1", "One")
	second := mustDepartment(t, "D2", "Two")
	require.NoError(t, organization.AddDepartment(first))
	require.NoError(t, organization.AddDepartment(second))

	sum := func() int {
		total := 0
		for _, d := range organization.Departments() {
			total += d.EmployeeCount()
		}
		return total
	}

	require.NoError(t, first.AddEmployee(mustEmployee(t, "E1", "A", "Dev")))
	require.NoError(t, second.AddEmployee(mustEmployee(t, "E2", "B", "Dev")))
	require.NoError(t, second.AddEmployee(mustEmployee(t, "E3", "C", "Dev")))
	assert.Equal(t, sum(), organization.TotalEmployees())
	assert.Equal(t, 3, organization.TotalEmployees())

	_, err = second.RemoveEmployee("E2")
	require.NoError(t, err)
	assert.Equal(t, sum(), organization.TotalEmployees())

	_, err = organization.RemoveDepartment("D1")
	require.NoError(t, err)
	assert.Equal(t, sum(), organization.TotalEmployees())
	assert.Equal(t, 1, organization.TotalEmployees())
}

func TestOrganizationAllEmployeesOrder(t *testing.T) {
	organization, err := NewOrganization(OrganizationInput{ID: "O1", Name: "Org"})
	require.NoError(t, err)
	first := mustDepartment(t, "D1", "One")
	second := mustDepartment(t, "D2", "Two")
	require.NoError(t, organization.AddDepartment(first))
	require.NoError(t, organization.AddDepartment(second))

	require.NoError(t, second.AddEmployee(mustEmployee(t, "E3", "C", "Dev")))
	require.NoError(t, first.AddEmployee(mustEmployee(t, "E1", "A", "Dev")))
	require.NoError(t, first.AddEmployee(mustEmployee(t, "E2", "B", "Dev")))

	var ids []string
	for _, employee := range organization.AllEmployees() {
		ids = append(ids, employee.ID())
	}
	assert.Equal(t, []string{"E1", "E2", "E3"}, ids)
}

func TestOrganizationFindEmployeeFirstMatch(t *testing.T) {
	organization, err := NewOrganization(OrganizationInput{ID: "O1", Name: "Org"})
	require.NoError(t, err)
	first := mustDepartment(t, "D1", "One")
	second := mustDepartment(t, "D2", "Two")
	require.NoError(t, organization.AddDepartment(first))
	require.NoError(t, organization.AddDepartment(second))

	inSecond := mustEmployee(t, "E1", "In Second", "Dev")
	inFirst := mustEmployee(t, "E1", "In First", "Dev")
	require.NoError(t, second.AddEmployee(inSecond))
	require.NoError(t, first.AddEmployee(inFirst))

	found, err := organization.FindEmployee("E1")
	require.NoError(t, err)
	assert.Same(t, inFirst, found)
}
