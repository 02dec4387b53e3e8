package employee

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/paf-hr/hrms-backend-go/internal/domain/employee"
	"github.com/paf-hr/hrms-backend-go/internal/pkg/validator"
)

type EmployeeServiceImpl struct {
	employeeRepo employee.EmployeeRepository
	now          func() time.Time
}

func NewEmployeeService(employeeRepo employee.EmployeeRepository) employee.EmployeeService {
	return &EmployeeServiceImpl{
		employeeRepo: employeeRepo,
		now:          time.Now,
	}
}

// Helper function to map Employee to EmployeeResponse
func (s *EmployeeServiceImpl) mapEmployeeToResponse(emp employee.Employee) employee.EmployeeResponse {
	var postingIn *string
	if emp.PostingIn != nil {
		v := emp.PostingIn.Format("2006-01-02")
		postingIn = &v
	}

	var postingOut *string
	if emp.PostingOut != nil {
		v := emp.PostingOut.Format("2006-01-02")
		postingOut = &v
	}

	return employee.EmployeeResponse{
		PAKCode:    emp.PAKCode,
		Name:       emp.Name,
		Category:   string(emp.Category),
		Uniformed:  emp.Category.IsUniformed(),
		PostingIn:  postingIn,
		PostingOut: postingOut,
		IsCurrent:  emp.IsCurrent(s.now()),
	}
}

// GetEmployee implements employee.EmployeeService.
func (s *EmployeeServiceImpl) GetEmployee(ctx context.Context, pakCode string) (employee.EmployeeResponse, error) {
	pakCode = strings.TrimSpace(pakCode)
	if !validator.IsValidPAKCode(pakCode) {
		return employee.EmployeeResponse{}, employee.ErrInvalidPAKCode
	}

	emp, err := s.employeeRepo.GetByPAKCode(ctx, pakCode)
	if err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			return employee.EmployeeResponse{}, employee.ErrEmployeeNotFound
		}
		return employee.EmployeeResponse{}, fmt.Errorf("failed to get employee: %w", err)
	}

	return s.mapEmployeeToResponse(emp), nil
}

// ListEmployees implements employee.EmployeeService.
func (s *EmployeeServiceImpl) ListEmployees(ctx context.Context, filter employee.EmployeeFilter) (employee.ListEmployeeResponse, error) {
	if err := filter.Validate(); err != nil {
		return employee.ListEmployeeResponse{}, err
	}

	employees, total, err := s.employeeRepo.List(ctx, filter)
	if err != nil {
		return employee.ListEmployeeResponse{}, fmt.Errorf("failed to list employees: %w", err)
	}

	responses := make([]employee.EmployeeResponse, 0, len(employees))
	for _, emp := range employees {
		responses = append(responses, s.mapEmployeeToResponse(emp))
	}

	totalPages := int(math.Ceil(float64(total) / float64(filter.Limit)))
	showing := fmt.Sprintf("%d-%d of %d", (filter.Page-1)*filter.Limit+1, min(filter.Page*filter.Limit, int(total)), total)
	if total == 0 {
		showing = "0 of 0"
	}

	return employee.ListEmployeeResponse{
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: totalPages,
		Showing:    showing,
		Employees:  responses,
	}, nil
}
