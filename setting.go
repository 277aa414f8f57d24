// FILE: lixenwraith/emuconfig/setting.go
package emuconfig

import (
	"fmt"
	"sync"

	"golang.org/x/exp/constraints"
)

// Value is the set of types a setting descriptor can hold.
type Value interface {
	~bool | ~string | constraints.Integer | constraints.Float
}

// Descriptor is the type-erased view of a setting, used for enumeration and snapshots.
type Descriptor interface {
	Label() string
	AnyValue() any
	AnyDefault() any
	Reset()
}

// Setting is a labelled configuration slot holding a default and a current value.
// The label doubles as the key used to look the value up on the host.
type Setting[T Value] struct {
	label  string
	def    T
	min    T
	max    T
	ranged bool

	mu    sync.RWMutex // Protects value
	value T
}

// NewSetting creates a setting whose current value starts at its default.
func NewSetting[T Value](label string, def T) *Setting[T] {
	return &Setting[T]{
		label: label,
		def:   def,
		value: def,
	}
}

// NewRanged creates a setting with a declared closed range [min, max].
// The range is metadata only: values read from the host are not checked against it.
func NewRanged[T Value](label string, def, min, max T) *Setting[T] {
	s := NewSetting(label, def)
	s.min = min
	s.max = max
	s.ranged = true
	return s
}

// Label returns the setting's key.
func (s *Setting[T]) Label() string {
	return s.label
}

// Default returns the compiled-in default.
func (s *Setting[T]) Default() T {
	return s.def
}

// Range returns the declared range and whether the setting is ranged.
func (s *Setting[T]) Range() (min, max T, ok bool) {
	return s.min, s.max, s.ranged
}

// Value returns the current value.
func (s *Setting[T]) Value() T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.value
}

// Set replaces the current value.
func (s *Setting[T]) Set(v T) {
	s.mu.Lock()
	s.value = v
	s.mu.Unlock()
}

// Reset restores the default.
func (s *Setting[T]) Reset() {
	s.Set(s.def)
}

// AnyValue returns the current value as an interface.
func (s *Setting[T]) AnyValue() any {
	return s.Value()
}

// AnyDefault returns the default as an interface.
func (s *Setting[T]) AnyDefault() any {
	return s.def
}

func (s *Setting[T]) String() string {
	return fmt.Sprintf("%s=%v", s.label, s.Value())
}
