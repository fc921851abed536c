package employee

import (
	"log/slog"

	errors "github.com/frahmantamala/employee-directory/internal"
)

// RepositoryAPI defines the data access methods for employee records.
type RepositoryAPI interface {
	Create(e *Employee) error
	GetByID(id int64) (*Employee, error)
	List(filter ListFilter, limit, offset int) ([]*Employee, int64, error)
	Update(id int64, updates map[string]interface{}) error
	Delete(id int64) (bool, error)
	EmailExists(email string, excludeID *int64) (bool, error)
}

// Service handles employee record business logic.
type Service struct {
	repo   RepositoryAPI
	logger *slog.Logger
}

func NewService(repo RepositoryAPI, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

// CreateEmployee validates the payload, pre-checks email uniqueness for a
// clean error, and persists the record. The store's unique constraint is
// the real guarantee; the repository reports its violation as the same
// duplicate email conflict.
func (s *Service) CreateEmployee(dto CreateEmployeeDTO) (*Employee, error) {
	if err := dto.Validate(); err != nil {
		s.logger.Error("employee validation failed", "error", err, "email", dto.Email)
		return nil, err
	}

	exists, err := s.repo.EmailExists(dto.Email, nil)
	if err != nil {
		s.logger.Error("failed to check email uniqueness", "error", err)
		return nil, errors.NewInternalError("failed to create employee", err)
	}
	if exists {
		return nil, errors.ErrDuplicateEmail
	}

	emp := &Employee{
		Name:       dto.Name,
		Email:      dto.Email,
		Department: dto.Department,
		Role:       dto.Role,
		DateJoined: Today(),
	}

	if err := s.repo.Create(emp); err != nil {
		if appErr, ok := errors.IsAppError(err); ok {
			return nil, appErr
		}
		s.logger.Error("failed to create employee", "error", err, "email", dto.Email)
		return nil, errors.NewInternalError("failed to create employee", err)
	}

	s.logger.Info("employee created", "employee_id", emp.ID, "email", emp.Email)
	return emp, nil
}

// GetEmployee retrieves a single record by id.
func (s *Service) GetEmployee(id int64) (*Employee, error) {
	emp, err := s.repo.GetByID(id)
	if err != nil {
		if appErr, ok := errors.IsAppError(err); ok {
			return nil, appErr
		}
		s.logger.Error("failed to get employee", "error", err, "employee_id", id)
		return nil, errors.NewInternalError("failed to get employee", err)
	}
	return emp, nil
}

// ListEmployees returns one page of records matching the filter, with the
// total counted before pagination. A page beyond the data is an empty
// slice, not an error.
func (s *Service) ListEmployees(filter ListFilter, page, pageSize int) (*ListEmployeesResponse, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}

	offset := (page - 1) * pageSize
	items, total, err := s.repo.List(filter, pageSize, offset)
	if err != nil {
		s.logger.Error("failed to list employees", "error", err)
		return nil, errors.NewInternalError("failed to list employees", err)
	}

	responses := make([]EmployeeResponse, 0, len(items))
	for _, emp := range items {
		responses = append(responses, emp.ToResponse())
	}

	totalPages := (total + int64(pageSize) - 1) / int64(pageSize)

	return &ListEmployeesResponse{
		Items:      responses,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
	}, nil
}

// UpdateEmployee applies only the fields present in the request. Omitted
// fields keep their prior value; an empty payload is a no-op that returns
// the current record.
func (s *Service) UpdateEmployee(id int64, dto UpdateEmployeeDTO) (*Employee, error) {
	if err := dto.Validate(); err != nil {
		s.logger.Error("employee update validation failed", "error", err, "employee_id", id)
		return nil, err
	}

	existing, err := s.GetEmployee(id)
	if err != nil {
		return nil, err
	}

	if dto.IsEmpty() {
		return existing, nil
	}

	if dto.Email.Set && *dto.Email.Value != existing.Email {
		exists, err := s.repo.EmailExists(*dto.Email.Value, &id)
		if err != nil {
			s.logger.Error("failed to check email uniqueness", "error", err, "employee_id", id)
			return nil, errors.NewInternalError("failed to update employee", err)
		}
		if exists {
			return nil, errors.ErrDuplicateEmail
		}
	}

	updates := make(map[string]interface{})
	if dto.Name.Set {
		updates["name"] = *dto.Name.Value
	}
	if dto.Email.Set {
		updates["email"] = *dto.Email.Value
	}
	if dto.Department.Set {
		updates["department"] = dto.Department.Value
	}
	if dto.Role.Set {
		updates["role"] = dto.Role.Value
	}

	if err := s.repo.Update(id, updates); err != nil {
		if appErr, ok := errors.IsAppError(err); ok {
			return nil, appErr
		}
		s.logger.Error("failed to update employee", "error", err, "employee_id", id)
		return nil, errors.NewInternalError("failed to update employee", err)
	}

	updated, err := s.GetEmployee(id)
	if err != nil {
		return nil, err
	}

	s.logger.Info("employee updated", "employee_id", id)
	return updated, nil
}

// DeleteEmployee removes the record permanently. Deleting an unknown id is
// a not-found, the same as deleting one twice.
func (s *Service) DeleteEmployee(id int64) error {
	deleted, err := s.repo.Delete(id)
	if err != nil {
		s.logger.Error("failed to delete employee", "error", err, "employee_id", id)
		return errors.NewInternalError("failed to delete employee", err)
	}
	if !deleted {
		return errors.ErrEmployeeNotFound
	}

	s.logger.Info("employee deleted", "employee_id", id)
	return nil
}
