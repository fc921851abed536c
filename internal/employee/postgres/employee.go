package postgres

import (
	"errors"

	apperrors "github.com/frahmantamala/employee-directory/internal"
	"github.com/frahmantamala/employee-directory/internal/employee"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// EmployeeRepository implements employee.RepositoryAPI using GORM.
type EmployeeRepository struct {
	db *gorm.DB
}

func NewEmployeeRepository(db *gorm.DB) employee.RepositoryAPI {
	return &EmployeeRepository{db: db}
}

// Create persists a new record. The UNIQUE constraint on email is the
// authoritative uniqueness guarantee: two concurrent creates can both pass
// the service pre-check, but only one insert survives here.
func (r *EmployeeRepository) Create(emp *employee.Employee) error {
	if err := r.db.Create(emp).Error; err != nil {
		if isUniqueViolation(err) {
			return apperrors.ErrDuplicateEmail
		}
		return err
	}
	return nil
}

func (r *EmployeeRepository) GetByID(id int64) (*employee.Employee, error) {
	var emp employee.Employee
	err := r.db.Where("id = ?", id).First(&emp).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrEmployeeNotFound
		}
		return nil, err
	}
	return &emp, nil
}

// List applies AND-combined filters, counts matches before pagination, and
// returns one page ordered by id.
func (r *EmployeeRepository) List(filter employee.ListFilter, limit, offset int) ([]*employee.Employee, int64, error) {
	query := r.db.Model(&employee.Employee{})

	if filter.Department != nil {
		query = query.Where("department = ?", *filter.Department)
	}
	if filter.Role != nil {
		query = query.Where("role = ?", *filter.Role)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var employees []*employee.Employee
	err := query.Order("id ASC").
		Limit(limit).
		Offset(offset).
		Find(&employees).Error
	if err != nil {
		return nil, 0, err
	}

	return employees, total, nil
}

// Update applies only the given columns; callers build the map from the
// fields actually present in the request, so omitted fields are untouched
// and a nil value clears a nullable column.
func (r *EmployeeRepository) Update(id int64, updates map[string]interface{}) error {
	if len(updates) == 0 {
		return nil
	}
	err := r.db.Model(&employee.Employee{}).
		Where("id = ?", id).
		Updates(updates).Error
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.ErrDuplicateEmail
		}
		return err
	}
	return nil
}

func (r *EmployeeRepository) Delete(id int64) (bool, error) {
	result := r.db.Where("id = ?", id).Delete(&employee.Employee{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// EmailExists reports whether any record other than excludeID holds the
// email. excludeID lets an update check uniqueness against everyone else.
func (r *EmployeeRepository) EmailExists(email string, excludeID *int64) (bool, error) {
	query := r.db.Model(&employee.Employee{}).Where("email = ?", email)
	if excludeID != nil {
		query = query.Where("id <> ?", *excludeID)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
		return true
	}
	return false
}
