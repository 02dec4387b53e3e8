package penalty

import "errors"

var (
	ErrSettingsNotFound = errors.New("penalty settings not found")
	ErrInvalidSettings  = errors.New("invalid penalty settings")
)
