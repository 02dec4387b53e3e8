package employee

import "errors"

var (
	ErrEmployeeNotFound = errors.New("employee not found")
	ErrInvalidPAKCode   = errors.New("invalid PAK code format")
	ErrInvalidCategory  = errors.New("category must be one of Officer, JCO, Airmen, Civilian")
)
