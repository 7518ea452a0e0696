package service

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"org-structure-service/internal/apperror"
	"org-structure-service/internal/org"
)

type OrganizationService struct {
	mu      sync.RWMutex
	store   Store
	log     zerolog.Logger
	entries map[string]*entry
	order   []string
}

// entry.mu serializes writers of one organization. organization is written
// with both entry.mu and the registry lock held; nil means not registered.
type entry struct {
	mu           sync.Mutex
	organization *org.Organization
}

func NewOrganizationService(store Store, log zerolog.Logger) *OrganizationService {
	if store == nil {
		store = NopStore{}
	}
	return &OrganizationService{
		store:   store,
		log:     log,
		entries: make(map[string]*entry),
	}
}

func (s *OrganizationService) Restore(ctx context.Context) error {
	exports, err := s.store.LoadAll(ctx)
	if err != nil {
		return fmt.Errorf("restore organizations: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, exported := range exports {
		organization, err := org.ImportOrganization(exported)
		if err != nil {
			return fmt.Errorf("restore organization %q: %w", exported.ID, err)
		}
		if _, exists := s.entries[organization.ID()]; exists {
			return apperror.Newf(apperror.CodeConflict, "organization %q restored twice", organization.ID())
		}
		s.entries[organization.ID()] = &entry{organization: organization}
		s.order = append(s.order, organization.ID())
	}

	s.log.Info().Int("organizations", len(exports)).Msg("organizations restored")
	return nil
}

func (s *OrganizationService) Add(ctx context.Context, organization *org.Organization) error {
	id := organization.ID()
	reserved := &entry{}
	reserved.mu.Lock()
	defer reserved.mu.Unlock()

	s.mu.Lock()
	if _, exists := s.entries[id]; exists {
		s.mu.Unlock()
		return apperror.Newf(apperror.CodeConflict, "organization %q already exists", id)
	}
	s.entries[id] = reserved
	s.mu.Unlock()

	err := s.store.Save(ctx, organization.Export())

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		delete(s.entries, id)
		return fmt.Errorf("save organization: %w", err)
	}
	reserved.organization = organization
	s.order = append(s.order, id)
	return nil
}

func (s *OrganizationService) CreateOrganization(ctx context.Context, input CreateOrganizationInput) (org.OrganizationExport, error) {
	organization, err := org.NewOrganization(org.OrganizationInput{
		ID:          idOrNew(input.ID),
		Name:        input.Name,
		Description: input.Description,
		Industry:    input.Industry,
		FoundedDate: input.FoundedDate,
	})
	if err != nil {
		recordMutation("create_organization", err)
		return org.OrganizationExport{}, err
	}

	err = s.Add(ctx, organization)
	recordMutation("create_organization", err)
	if err != nil {
		return org.OrganizationExport{}, err
	}

	s.log.Info().Str("organization_id", organization.ID()).Msg("organization created")
	return organization.Export(), nil
}

func (s *OrganizationService) ListOrganizations(ctx context.Context) ([]org.OrganizationExport, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	exports := make([]org.OrganizationExport, 0, len(s.order))
	for _, id := range s.order {
		exports = append(exports, s.entries[id].organization.Export())
	}
	return exports, nil
}

func (s *OrganizationService) GetOrganization(ctx context.Context, organizationID string) (org.OrganizationExport, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	organization, err := s.lookup(organizationID)
	if err != nil {
		return org.OrganizationExport{}, err
	}
	return organization.Export(), nil
}

func (s *OrganizationService) DeleteOrganization(ctx context.Context, organizationID string) (err error) {
	defer func() { recordMutation("delete_organization", err) }()

	e, err := s.lock(organizationID)
	if err != nil {
		return err
	}
	defer e.mu.Unlock()

	if err := s.store.Delete(ctx, organizationID); err != nil {
		return fmt.Errorf("delete organization: %w", err)
	}

	s.mu.Lock()
	delete(s.entries, organizationID)
	for i, id := range s.order {
		if id == organizationID {
			s.order = append(s.order[:i:i], s.order[i+1:]...)
			break
		}
	}
	e.organization = nil
	s.mu.Unlock()

	s.log.Info().Str("organization_id", organizationID).Msg("organization deleted")
	return nil
}

func (s *OrganizationService) GetStructure(ctx context.Context, organizationID string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	organization, err := s.lookup(organizationID)
	if err != nil {
		return "", err
	}
	return organization.Structure(), nil
}

func (s *OrganizationService) CreateDepartment(ctx context.Context, organizationID string, input CreateDepartmentInput) (org.DepartmentExport, error) {
	var result org.DepartmentExport
	err := s.mutate(ctx, "create_department", organizationID, func(organization *org.Organization) error {
		department, err := org.NewDepartment(org.DepartmentInput{
			ID:          idOrNew(input.ID),
			Name:        input.Name,
			Description: input.Description,
		})
		if err != nil {
			return err
		}
		if err := organization.AddDepartment(department); err != nil {
			return err
		}
		result = department.Export()
		return nil
	})
	return result, err
}

func (s *OrganizationService) DeleteDepartment(ctx context.Context, organizationID, departmentID string) error {
	return s.mutate(ctx, "delete_department", organizationID, func(organization *org.Organization) error {
		_, err := organization.RemoveDepartment(departmentID)
		return err
	})
}

func (s *OrganizationService) SetDepartmentManager(ctx context.Context, organizationID, departmentID string, employeeID *string) (org.DepartmentExport, error) {
	var result org.DepartmentExport
	err := s.mutate(ctx, "set_manager", organizationID, func(organization *org.Organization) error {
		department, err := organization.FindDepartment(departmentID)
		if err != nil {
			return err
		}
		if employeeID == nil {
			department.ClearManager()
		} else if err := department.SetManager(*employeeID); err != nil {
			return err
		}
		result = department.Export()
		return nil
	})
	return result, err
}

func (s *OrganizationService) CreateEmployee(ctx context.Context, organizationID, departmentID string, input CreateEmployeeInput) (org.EmployeeExport, error) {
	var result org.EmployeeExport
	err := s.mutate(ctx, "create_employee", organizationID, func(organization *org.Organization) error {
		department, err := organization.FindDepartment(departmentID)
		if err != nil {
			return err
		}
		employee, err := org.NewEmployee(org.EmployeeInput{
			ID:       idOrNew(input.ID),
			Name:     input.Name,
			Email:    input.Email,
			Position: input.Position,
			HireDate: input.HireDate,
			Phone:    input.Phone,
		})
		if err != nil {
			return err
		}
		if err := department.AddEmployee(employee); err != nil {
			return err
		}
		result = employee.Export()
		return nil
	})
	return result, err
}

func (s *OrganizationService) UpdateEmployee(ctx context.Context, organizationID, departmentID, employeeID string, input UpdateEmployeeInput) (org.EmployeeExport, error) {
	var result org.EmployeeExport
	err := s.mutate(ctx, "update_employee", organizationID, func(organization *org.Organization) error {
		department, err := organization.FindDepartment(departmentID)
		if err != nil {
			return err
		}
		employee, err := department.FindEmployee(employeeID)
		if err != nil {
			return err
		}

		if input.Name != nil {
			if err := employee.SetName(*input.Name); err != nil {
				return err
			}
		}
		if input.Email != nil {
			if err := employee.SetEmail(*input.Email); err != nil {
				return err
			}
		}
		if input.Position != nil {
			if err := employee.SetPosition(*input.Position); err != nil {
				return err
			}
		}
		if input.PhoneSet {
			if err := employee.SetPhone(input.Phone); err != nil {
				return err
			}
		}
		if input.HireDateSet {
			if err := employee.SetHireDate(input.HireDate); err != nil {
				return err
			}
		}

		result = employee.Export()
		return nil
	})
	return result, err
}

func (s *OrganizationService) DeleteEmployee(ctx context.Context, organizationID, departmentID, employeeID string) error {
	return s.mutate(ctx, "delete_employee", organizationID, func(organization *org.Organization) error {
		department, err := organization.FindDepartment(departmentID)
		if err != nil {
			return err
		}
		_, err = department.RemoveEmployee(employeeID)
		return err
	})
}

func (s *OrganizationService) FindEmployee(ctx context.Context, organizationID, employeeID string) (org.EmployeeExport, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	organization, err := s.lookup(organizationID)
	if err != nil {
		return org.EmployeeExport{}, err
	}
	employee, err := organization.FindEmployee(employeeID)
	if err != nil {
		return org.EmployeeExport{}, err
	}
	return employee.Export(), nil
}

func (s *OrganizationService) mutate(ctx context.Context, op string, organizationID string, fn func(*org.Organization) error) (err error) {
	defer func() { recordMutation(op, err) }()

	e, err := s.lock(organizationID)
	if err != nil {
		return err
	}
	defer e.mu.Unlock()

	next := e.organization.Clone()
	if err := fn(next); err != nil {
		return err
	}
	if err := s.store.Save(ctx, next.Export()); err != nil {
		s.log.Error().Err(err).Str("organization_id", organizationID).Str("op", op).Msg("persist organization")
		return fmt.Errorf("save organization: %w", err)
	}

	s.mu.Lock()
	e.organization = next
	s.mu.Unlock()

	s.log.Debug().Str("organization_id", organizationID).Str("op", op).Msg("organization updated")
	return nil
}

func (s *OrganizationService) lock(organizationID string) (*entry, error) {
	s.mu.RLock()
	e, exists := s.entries[organizationID]
	s.mu.RUnlock()
	if !exists {
		return nil, notFound(organizationID)
	}

	e.mu.Lock()
	if e.organization == nil {
		e.mu.Unlock()
		return nil, notFound(organizationID)
	}
	return e, nil
}

func (s *OrganizationService) lookup(organizationID string) (*org.Organization, error) {
	e, exists := s.entries[organizationID]
	if !exists || e.organization == nil {
		return nil, notFound(organizationID)
	}
	return e.organization, nil
}

func notFound(organizationID string) error {
	return apperror.Newf(apperror.CodeNotFound, "organization %q not found", organizationID)
}

func idOrNew(id string) string {
	if id == "" {
		return uuid.NewString()
	}
	return id
}
