// File: lixenwraith/emuconfig/builder.go
package emuconfig

import (
	"errors"
	"fmt"
)

// ValidatorFunc validates the registry after the startup reload.
type ValidatorFunc func(v *Values) error

// Builder provides a fluent interface for building a Syncer
type Builder struct {
	values     *Values
	host       Host
	file       string
	format     string
	provider   string
	policy     ZeroPolicy
	catalog    ServiceCatalog
	applyLog   LogApplier
	setApplier bool
	metrics    *Metrics
	err        error
	validators []ValidatorFunc
}

// NewBuilder creates a new syncer builder
func NewBuilder() *Builder {
	return &Builder{
		policy:     ZeroAsAbsent,
		catalog:    DefaultServiceCatalog,
		validators: make([]ValidatorFunc, 0),
	}
}

// WithValues sets the registry to populate. A fresh registry is used otherwise.
func (b *Builder) WithValues(v *Values) *Builder {
	b.values = v
	return b
}

// WithHost sets the settings host
func (b *Builder) WithHost(h Host) *Builder {
	b.host = h
	return b
}

// WithFile serves settings from a file. format may be empty for detection.
// It replaces any host set with WithHost.
func (b *Builder) WithFile(path, format string) *Builder {
	b.file = path
	b.format = format
	return b
}

// WithProvider sets the provider name resolved on the host
func (b *Builder) WithProvider(name string) *Builder {
	b.provider = name
	return b
}

// WithZeroPolicy sets how zero primitive results are interpreted
func (b *Builder) WithZeroPolicy(p ZeroPolicy) *Builder {
	if p != ZeroAsAbsent && p != ZeroAsValue {
		b.err = fmt.Errorf("unknown zero policy %d", p)
		return b
	}
	b.policy = p
	return b
}

// WithServiceCatalog sets the service modules given low-level emulation defaults
func (b *Builder) WithServiceCatalog(c ServiceCatalog) *Builder {
	b.catalog = c
	return b
}

// WithLogApplier replaces the log filter propagation. nil disables it.
func (b *Builder) WithLogApplier(fn LogApplier) *Builder {
	b.applyLog = fn
	b.setApplier = true
	return b
}

// WithMetrics attaches lookup and reload metrics
func (b *Builder) WithMetrics(m *Metrics) *Builder {
	b.metrics = m
	return b
}

// WithValidator adds a validation function that runs after the startup reload.
// Validators are executed in the order they are added
func (b *Builder) WithValidator(fn ValidatorFunc) *Builder {
	if fn != nil {
		b.validators = append(b.validators, fn)
	}
	return b
}

// Build creates the Syncer and runs the startup reload.
// A missing settings file is not fatal: the syncer is returned with an empty
// host alongside ErrConfigNotFound.
func (b *Builder) Build() (*Syncer, error) {
	if b.err != nil {
		return nil, b.err
	}

	host := b.host
	var loadErr error
	if b.file != "" {
		fh, err := NewFileHost(b.file, b.format)
		switch {
		case err == nil:
			host = fh
		case errors.Is(err, ErrConfigNotFound):
			host = NewMemoryHost(nil)
			loadErr = err
		default:
			return nil, err
		}
	}

	values := b.values
	if values == nil {
		values = NewValues()
	}

	adapter := NewAdapter(host, b.provider, b.policy)
	adapter.SetMetrics(b.metrics)

	s := NewSyncer(values, adapter)
	s.catalog = b.catalog
	s.metrics = b.metrics
	if b.setApplier {
		s.applyLog = b.applyLog
	}

	s.Reload()

	for _, validator := range b.validators {
		if err := validator(values); err != nil {
			return nil, fmt.Errorf("settings validation failed: %w", err)
		}
	}

	// ErrConfigNotFound or nil
	return s, loadErr
}

// MustBuild is like Build but panics on error
func (b *Builder) MustBuild() *Syncer {
	s, err := b.Build()
	if err != nil && !errors.Is(err, ErrConfigNotFound) {
		panic(fmt.Sprintf("emuconfig build failed: %v", err))
	}
	return s
}

// BuildAndScan builds and decodes the resolved settings into target
func (b *Builder) BuildAndScan(target any) error {
	s, err := b.Build()
	if err != nil && !errors.Is(err, ErrConfigNotFound) {
		return err
	}

	if scanErr := s.Values().Scan(target); scanErr != nil {
		return fmt.Errorf("failed to scan settings into target: %w", scanErr)
	}

	// ErrConfigNotFound or nil
	return err
}

// Host returns the host the syncer reads from.
func (s *Syncer) Host() Host {
	return s.adapter.host
}
