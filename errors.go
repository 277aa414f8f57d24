// FILE: lixenwraith/emuconfig/errors.go
package emuconfig

import "errors"

// Sentinel errors for host lookups and settings files.
var (
	// ErrConfigNotFound is returned when a settings file does not exist.
	ErrConfigNotFound = errors.New("settings file not found")

	// ErrNotFound indicates the host has no value stored under the key.
	ErrNotFound = errors.New("setting not found")

	// ErrProviderUnavailable indicates the settings provider could not be resolved.
	ErrProviderUnavailable = errors.New("settings provider unavailable")

	// ErrMethodUnavailable indicates the provider does not expose the requested getter.
	ErrMethodUnavailable = errors.New("provider method unavailable")

	// ErrInvalidRef is returned when a handle is unknown or was already released.
	ErrInvalidRef = errors.New("invalid or released reference")

	// ErrTypeMismatch indicates the host returned a value of an unexpected kind.
	ErrTypeMismatch = errors.New("result type mismatch")

	// ErrFileTooLarge is returned when a settings file exceeds MaxSettingsFileSize.
	ErrFileTooLarge = errors.New("settings file too large")

	// ErrUnknownFormat is returned when a settings file format cannot be determined.
	ErrUnknownFormat = errors.New("unable to determine settings file format")
)
