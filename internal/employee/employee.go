package employee

import (
	"strings"
	"time"
)

// Employee is the single persisted entity: one row per employee, email
// unique across all live records, date_joined fixed at creation.
type Employee struct {
	ID         int64     `json:"id" gorm:"primaryKey"`
	Name       string    `json:"name" gorm:"column:name;size:255;not null"`
	Email      string    `json:"email" gorm:"column:email;size:255;uniqueIndex;not null"`
	Department *string   `json:"department" gorm:"column:department;size:50"`
	Role       *string   `json:"role" gorm:"column:role;size:50"`
	DateJoined time.Time `json:"-" gorm:"column:date_joined;type:date;not null"`
}

// TableName returns the table name for GORM
func (Employee) TableName() string {
	return "employees"
}

// Closed sets for the two optional enum fields. Canonical casing matters:
// request bodies must match exactly, list filters resolve case-insensitively.
const (
	DepartmentHR          = "HR"
	DepartmentEngineering = "Engineering"
	DepartmentSales       = "Sales"

	RoleManager   = "Manager"
	RoleDeveloper = "Developer"
	RoleAnalyst   = "Analyst"
)

var (
	Departments = []string{DepartmentHR, DepartmentEngineering, DepartmentSales}
	Roles       = []string{RoleManager, RoleDeveloper, RoleAnalyst}
)

// CanonicalDepartment resolves a filter value to its canonical name,
// ignoring case. The second return is false for values outside the set.
func CanonicalDepartment(value string) (string, bool) {
	return canonical(value, Departments)
}

// CanonicalRole resolves a filter value to its canonical role name.
func CanonicalRole(value string) (string, bool) {
	return canonical(value, Roles)
}

func canonical(value string, allowed []string) (string, bool) {
	for _, candidate := range allowed {
		if strings.EqualFold(value, candidate) {
			return candidate, true
		}
	}
	return "", false
}

// DateOnly is the wire format for date_joined.
const DateOnly = "2006-01-02"

// ToResponse converts the stored record into its API shape.
func (e *Employee) ToResponse() EmployeeResponse {
	return EmployeeResponse{
		ID:         e.ID,
		Name:       e.Name,
		Email:      e.Email,
		Department: e.Department,
		Role:       e.Role,
		DateJoined: e.DateJoined.Format(DateOnly),
	}
}

// Today returns the creation date for new records, truncated to a calendar
// day in UTC so the stored value round-trips through the date column.
func Today() time.Time {
	now := time.Now().UTC()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}
