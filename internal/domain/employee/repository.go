package employee

import (
	"context"
	"time"
)

// EmployeeRepository is the read side of the employee directory. Records are
// maintained by HR record management and never physically removed.
type EmployeeRepository interface {
	GetByPAKCode(ctx context.Context, pakCode string) (Employee, error)

	// ListCurrent returns the roster of employees still posted on asOf,
	// ordered by PAK code.
	ListCurrent(ctx context.Context, asOf time.Time) ([]Employee, error)

	List(ctx context.Context, filter EmployeeFilter) ([]Employee, int64, error)
}
