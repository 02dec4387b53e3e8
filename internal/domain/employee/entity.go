package employee

import (
	"time"
)

type Employee struct {
	PAKCode    string
	Name       string
	Category   Category
	PostingIn  *time.Time
	PostingOut *time.Time
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// IsCurrent reports whether the employee is still posted on asOf. A posting-out
// date that is missing or later than asOf keeps the employee on the roster.
func (e Employee) IsCurrent(asOf time.Time) bool {
	if e.PostingOut == nil {
		return true
	}
	return e.PostingOut.After(asOf)
}

type Category string

const (
	CategoryOfficer  Category = "Officer"
	CategoryJCO      Category = "JCO"
	CategoryAirmen   Category = "Airmen"
	CategoryCivilian Category = "Civilian"
)

// IsUniformed separates PAF personnel from civilian staff.
func (c Category) IsUniformed() bool {
	return c == CategoryOfficer || c == CategoryJCO || c == CategoryAirmen
}
