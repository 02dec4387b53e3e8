package employee

import (
	"context"
)

// EmployeeService defines read operations over the employee directory
type EmployeeService interface {
	// GetEmployee retrieves a single employee by PAK code
	GetEmployee(ctx context.Context, pakCode string) (EmployeeResponse, error)

	// ListEmployees lists employees with filters and pagination
	ListEmployees(ctx context.Context, filter EmployeeFilter) (ListEmployeeResponse, error)
}
