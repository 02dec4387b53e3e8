package penalty

import "context"

// PenaltyService computes late-arrival penalties and manages the policy
type PenaltyService interface {
	// GetSettings returns the saved policy, or the defaults when none is saved
	GetSettings(ctx context.Context) (SettingsResponse, error)

	// UpdateSettings validates and saves the policy
	UpdateSettings(ctx context.Context, req UpdateSettingsRequest) (SettingsResponse, error)

	// Calculate proposes penalties for every employee with attendance on date
	Calculate(ctx context.Context, date string) (CalculateResponse, error)
}
