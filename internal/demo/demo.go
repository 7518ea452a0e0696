// Package demo builds the sample organizations shipped with orgctl and the
// server's SEED_DEMO option.
package demo

import (
	"fmt"
	"time"

	"org-structure-service/internal/org"
)

type departmentSeed struct {
	id, name, description string
	employees             []org.EmployeeInput
}

type organizationSeed struct {
	input       org.OrganizationInput
	departments []departmentSeed
}

func date(year int, month time.Month, day int) *time.Time {
	t := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	return &t
}

func str(s string) *string { return &s }

func employee(id, name, email, position string) org.EmployeeInput {
	return org.EmployeeInput{ID: id, Name: name, Email: email, Position: position}
}

var seeds = []organizationSeed{
	{
		input: org.OrganizationInput{ID: "ORG001", Name: "TechStart Inc", Description: str("An innovative technology startup"), Industry: str("Software Development")},
		departments: []departmentSeed{
			{id: "DEPT001", name: "Engineering", description: "Software development and architecture", employees: []org.EmployeeInput{
				{ID: "EMP001", Name: "Alice Johnson", Email: "alice@techstart.com", Position: "Chief Technology Officer", HireDate: date(2022, time.January, 15)},
				{ID: "EMP002", Name: "Bob Smith", Email: "bob@techstart.com", Position: "Senior Software Engineer", HireDate: date(2022, time.March, 1), Phone: str("+1-555-0101")},
				{ID: "EMP003", Name: "Carol Davis", Email: "carol@techstart.com", Position: "Software Engineer", HireDate: date(2023, time.June, 15)},
			}},
			{id: "DEPT002", name: "Sales", description: "Business development and customer acquisition", employees: []org.EmployeeInput{
				{ID: "EMP004", Name: "David Wilson", Email: "david@techstart.com", Position: "Sales Manager", HireDate: date(2022, time.February, 1)},
				{ID: "EMP005", Name: "Emma Brown", Email: "emma@techstart.com", Position: "Sales Representative", HireDate: date(2023, time.August, 1)},
			}},
		},
	},
	{
		input: org.OrganizationInput{ID: "ORG004", Name: "MegaCorp International", Description: str("A large multinational enterprise"), Industry: str("Technology & Consulting"), FoundedDate: date(2010, time.January, 1)},
		departments: []departmentSeed{
			{id: "DEPT006", name: "Engineering", description: "Software Development", employees: []org.EmployeeInput{
				employee("EMP012", "Liam Johnson", "liam@mega.com", "VP Engineering"),
				employee("EMP013", "Maya Patel", "maya@mega.com", "Tech Lead"),
				employee("EMP014", "Noah Kim", "noah@mega.com", "Senior Engineer"),
				employee("EMP015", "Olivia Chen", "olivia@mega.com", "Engineer"),
				employee("EMP016", "Peter Singh", "peter@mega.com", "Junior Engineer"),
			}},
			{id: "DEPT007", name: "Product Management", description: "Product Strategy", employees: []org.EmployeeInput{
				employee("EMP017", "Quinn Davis", "quinn@mega.com", "Director of Product"),
				employee("EMP018", "Rachel Green", "rachel@mega.com", "Product Manager"),
			}},
			{id: "DEPT008", name: "Sales", description: "Revenue Generation", employees: []org.EmployeeInput{
				employee("EMP019", "Sam Taylor", "sam@mega.com", "VP Sales"),
				employee("EMP020", "Tina Brown", "tina@mega.com", "Sales Manager"),
				employee("EMP021", "Uma Wilson", "uma@mega.com", "Account Executive"),
			}},
			{id: "DEPT009", name: "Marketing", description: "Brand and Marketing", employees: []org.EmployeeInput{
				employee("EMP022", "Victor Lee", "victor@mega.com", "Marketing Director"),
				employee("EMP023", "Wendy Liu", "wendy@mega.com", "Marketing Manager"),
			}},
			{id: "DEPT010", name: "Human Resources", description: "People Operations", employees: []org.EmployeeInput{
				employee("EMP024", "Xavier Martinez", "xavier@mega.com", "HR Director"),
				employee("EMP025", "Yara Ahmed", "yara@mega.com", "HR Manager"),
			}},
			{id: "DEPT011", name: "Finance", description: "Financial Management", employees: []org.EmployeeInput{
				employee("EMP026", "Zane Cooper", "zane@mega.com", "CFO"),
				employee("EMP027", "Amy Foster", "amy@mega.com", "Financial Analyst"),
			}},
		},
	},
}

// Organizations builds fresh copies of the sample organizations. The first
// employee of every department is its manager.
func Organizations() ([]*org.Organization, error) {
	organizations := make([]*org.Organization, 0, len(seeds))
	for _, seed := range seeds {
		organization, err := build(seed)
		if err != nil {
			return nil, fmt.Errorf("build %s: %w", seed.input.ID, err)
		}
		organizations = append(organizations, organization)
	}
	return organizations, nil
}

func build(seed organizationSeed) (*org.Organization, error) {
	organization, err := org.NewOrganization(seed.input)
	if err != nil {
		return nil, err
	}

	for _, ds := range seed.departments {
		department, err := org.NewDepartment(org.DepartmentInput{
			ID:          ds.id,
			Name:        ds.name,
			Description: str(ds.description),
		})
		if err != nil {
			return nil, err
		}
		if err := organization.AddDepartment(department); err != nil {
			return nil, err
		}

		for _, input := range ds.employees {
			member, err := org.NewEmployee(input)
			if err != nil {
				return nil, err
			}
			if err := department.AddEmployee(member); err != nil {
				return nil, err
			}
		}
		if len(ds.employees) > 0 {
			if err := department.SetManager(ds.employees[0].ID); err != nil {
				return nil, err
			}
		}
	}

	return organization, nil
}
