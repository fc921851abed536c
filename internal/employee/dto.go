package employee

import (
	"encoding/json"

	errors "github.com/frahmantamala/employee-directory/internal"
	"github.com/frahmantamala/employee-directory/internal/core/common/validation"
)

// CreateEmployeeDTO is the request payload for creating an employee.
// Name and email are required, department and role are optional.
type CreateEmployeeDTO struct {
	Name       string  `json:"name"`
	Email      string  `json:"email"`
	Department *string `json:"department,omitempty"`
	Role       *string `json:"role,omitempty"`
}

func (dto CreateEmployeeDTO) Validate() error {
	v := validation.NewValidator()
	v.Field("name", dto.Name).Required().MaxLength(255)
	v.Field("email", dto.Email).Required().Email()
	if dto.Department != nil {
		v.Field("department", *dto.Department).OneOf(Departments...)
	}
	if dto.Role != nil {
		v.Field("role", *dto.Role).OneOf(Roles...)
	}
	if err := v.Validate(); err != nil {
		return err
	}
	return nil
}

// OptionalString distinguishes an absent key from an explicit JSON null.
// Set is true when the key appeared in the body; Value is nil for null.
type OptionalString struct {
	Set   bool
	Value *string
}

// UpdateEmployeeDTO supports partial updates: only fields present in the
// request body change. An explicit null clears department/role but is
// invalid for name and email, which are non-nullable.
type UpdateEmployeeDTO struct {
	Name       OptionalString
	Email      OptionalString
	Department OptionalString
	Role       OptionalString
}

func (dto *UpdateEmployeeDTO) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	fields := map[string]*OptionalString{
		"name":       &dto.Name,
		"email":      &dto.Email,
		"department": &dto.Department,
		"role":       &dto.Role,
	}

	for key, target := range fields {
		msg, ok := raw[key]
		if !ok {
			continue
		}
		target.Set = true
		if err := json.Unmarshal(msg, &target.Value); err != nil {
			if typeErr, ok := err.(*json.UnmarshalTypeError); ok {
				typeErr.Field = key
			}
			return err
		}
	}

	return nil
}

// IsEmpty reports a no-op update: no fields supplied at all.
func (dto UpdateEmployeeDTO) IsEmpty() bool {
	return !dto.Name.Set && !dto.Email.Set && !dto.Department.Set && !dto.Role.Set
}

func (dto UpdateEmployeeDTO) Validate() error {
	v := validation.NewValidator()
	if dto.Name.Set {
		v.Field("name", dto.Name.Value).Required().MaxLength(255)
	}
	if dto.Email.Set {
		v.Field("email", dto.Email.Value).Required().Email()
	}
	if dto.Department.Set && dto.Department.Value != nil {
		v.Field("department", *dto.Department.Value).OneOf(Departments...)
	}
	if dto.Role.Set && dto.Role.Value != nil {
		v.Field("role", *dto.Role.Value).OneOf(Roles...)
	}
	if err := v.Validate(); err != nil {
		return err
	}
	return nil
}

// EmployeeResponse is the API shape for a single record.
type EmployeeResponse struct {
	ID         int64   `json:"id"`
	Name       string  `json:"name"`
	Email      string  `json:"email"`
	Department *string `json:"department"`
	Role       *string `json:"role"`
	DateJoined string  `json:"date_joined"`
}

// ListEmployeesResponse carries one page plus pagination metadata.
type ListEmployeesResponse struct {
	Items      []EmployeeResponse `json:"items"`
	Total      int64              `json:"total"`
	Page       int                `json:"page"`
	PageSize   int                `json:"page_size"`
	TotalPages int64              `json:"total_pages"`
}

// ListFilter holds canonical enum values; nil means no filtering on that
// field. Filters are AND-combined by the repository.
type ListFilter struct {
	Department *string
	Role       *string
}

// DefaultPageSize is fixed on the HTTP surface.
const DefaultPageSize = 10

// ParseListFilter resolves raw query values case-insensitively against the
// closed sets. Unknown values are a bad request, never a silent empty page.
func ParseListFilter(department, role string) (ListFilter, error) {
	var filter ListFilter

	if department != "" {
		canonical, ok := CanonicalDepartment(department)
		if !ok {
			return filter, errors.NewBadRequestError(
				"Invalid department. Must be one of: HR, Engineering, Sales",
				errors.ErrCodeInvalidFilter)
		}
		filter.Department = &canonical
	}

	if role != "" {
		canonical, ok := CanonicalRole(role)
		if !ok {
			return filter, errors.NewBadRequestError(
				"Invalid role. Must be one of: Manager, Developer, Analyst",
				errors.ErrCodeInvalidFilter)
		}
		filter.Role = &canonical
	}

	return filter, nil
}
