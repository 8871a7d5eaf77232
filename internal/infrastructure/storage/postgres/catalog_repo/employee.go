package catalog_repo

import (
	"context"

	"github.com/Masterminds/squirrel"

	"billdesk/internal/core/apperror"
	"billdesk/internal/domain/catalogs/employee"
	"billdesk/internal/infrastructure/storage/postgres"
)

const employeeTable = "cat_employees"

// EmployeeRepo implements employee.Repository.
type EmployeeRepo struct {
	*BaseCatalogRepo[*employee.Employee]
}

// NewEmployeeRepo creates a new employee repository.
func NewEmployeeRepo(txManager *postgres.TxManager) *EmployeeRepo {
	return &EmployeeRepo{
		BaseCatalogRepo: NewBaseCatalogRepo(
			txManager,
			employeeTable,
			postgres.ExtractDBColumns[employee.Employee](),
			func() *employee.Employee { return &employee.Employee{} },
		),
	}
}

// FindByEmail retrieves an employee by the unique email.
func (r *EmployeeRepo) FindByEmail(ctx context.Context, email string) (*employee.Employee, error) {
	q := r.baseSelect().
		Where(squirrel.Eq{"email": email}).
		Where(squirrel.Eq{"deletion_mark": false}).
		Limit(1)

	e, err := r.FindOne(ctx, q)
	if err != nil {
		if apperror.IsNotFound(err) {
			return nil, apperror.NewNotFound("employee", email)
		}
		return nil, err
	}
	return e, nil
}
