// FILE: lixenwraith/emuconfig/dispatch.go
package emuconfig

import (
	"reflect"
)

// scaledLabels names the float settings the provider stores in scaled form.
var scaledLabels = map[string]bool{
	"volume": true,
}

// IsScaled reports whether the float setting under label is read through the scaled getter.
func IsScaled(label string) bool {
	return scaledLabels[label]
}

// Read fetches label with the adapter call matching T and returns placeholder when
// the host reports no value. Integer results are converted to T without checking
// any declared range; callers that need membership validation do it themselves.
func Read[T Value](a *Adapter, label string, placeholder T) T {
	out := placeholder
	v := reflect.ValueOf(&out).Elem()

	switch v.Kind() {
	case reflect.Bool:
		if b, ok := a.FetchBoolean(label); ok {
			v.SetBool(b)
		}
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		if i, ok := a.FetchInteger(label); ok {
			v.SetInt(int64(i))
		}
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		if i, ok := a.FetchInteger(label); ok {
			v.SetUint(uint64(i))
		}
	case reflect.Float32, reflect.Float64:
		var (
			f  float32
			ok bool
		)
		if IsScaled(label) {
			f, ok = a.FetchScaledFloat(label)
		} else {
			f, ok = a.FetchFloat(label)
		}
		if ok {
			v.SetFloat(float64(f))
		}
	case reflect.String:
		if s, ok := a.FetchString(label); ok {
			v.SetString(s)
		}
	}
	return out
}

// ReadSetting reads s by its label with its default as placeholder and stores the result.
// It reports whether the stored value differs from the default.
func ReadSetting[T Value](a *Adapter, s *Setting[T]) bool {
	def := s.Default()
	got := Read(a, s.Label(), def)
	s.Set(got)
	return got != def
}
