package penalty

import "context"

type SettingsRepository interface {
	// Get returns ErrSettingsNotFound when no row has been saved yet
	Get(ctx context.Context) (Settings, error)
	Save(ctx context.Context, settings Settings) (Settings, error)
}
