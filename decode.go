// FILE: lixenwraith/emuconfig/decode.go
package emuconfig

import (
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/url"
	"reflect"
	"slices"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// Snapshot returns the current value of every setting keyed by path. Labelled
// settings use their label; composite state lives under "input.", "camera." and
// "lle_modules.".
func (v *Values) Snapshot() map[string]any {
	snap := make(map[string]any, len(v.descriptors)+16)
	for _, d := range v.descriptors {
		snap[d.Label()] = d.AnyValue()
	}

	in := v.Input()
	for i, b := range in.Buttons {
		snap["input.buttons."+strconv.Itoa(i)] = b
	}
	for i, a := range in.Analogs {
		snap["input.analogs."+strconv.Itoa(i)] = a
	}
	snap["input.motion_device"] = in.MotionDevice
	snap["input.touch_device"] = in.TouchDevice
	snap["input.udp_input_address"] = in.UDPInputAddress
	snap["input.udp_input_port"] = in.UDPInputPort

	for slot := CameraSlot(0); slot < NumCameras; slot++ {
		c := v.Camera(slot)
		prefix := "camera." + slot.String() + "."
		snap[prefix+"name"] = c.Name
		snap[prefix+"config"] = c.Config
		snap[prefix+"flip"] = c.Flip
	}

	for name, lle := range v.LLEModules() {
		snap["lle_modules."+name] = lle
	}
	return snap
}

// Diff returns the sorted paths whose values differ between two snapshots.
func Diff(before, after map[string]any) []string {
	var changed []string
	for path, old := range before {
		if cur, ok := after[path]; !ok || !reflect.DeepEqual(old, cur) {
			changed = append(changed, path)
		}
	}
	for path := range after {
		if _, ok := before[path]; !ok {
			changed = append(changed, path)
		}
	}
	slices.Sort(changed)
	return changed
}

// Nested converts a flat snapshot into nested maps split on '.'.
func Nested(snap map[string]any) map[string]any {
	nested := make(map[string]any)
	for path, value := range snap {
		setNestedValue(nested, path, value)
	}
	return nested
}

// Scan decodes the current settings into target, a non-nil struct pointer,
// matching fields by their `toml` tag. Indexed composite slots decode into maps.
func (v *Values) Scan(target any) error {
	rv := reflect.ValueOf(target)
	if rv.Kind() != reflect.Ptr || rv.IsNil() {
		return fmt.Errorf("scan target must be non-nil pointer, got %T", target)
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           target,
		TagName:          "toml",
		WeaklyTypedInput: true,
		DecodeHook:       decodeHook(),
		ZeroFields:       true,
	})
	if err != nil {
		return fmt.Errorf("decoder creation failed: %w", err)
	}

	if err := decoder.Decode(Nested(v.Snapshot())); err != nil {
		return fmt.Errorf("decode failed: %w", err)
	}
	return nil
}

// Encode writes a snapshot as nested TOML, JSON or YAML.
func Encode(w io.Writer, snap map[string]any, format string) error {
	nested := Nested(snap)
	switch format {
	case "toml", "":
		return toml.NewEncoder(w).Encode(nested)
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(nested)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(nested); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

// decodeHook returns the composite decode hook for scanning
func decodeHook() mapstructure.DecodeHookFunc {
	return mapstructure.ComposeDecodeHookFunc(
		stringToNetIPHookFunc(),
		stringToURLHookFunc(),
	)
}

// stringToNetIPHookFunc handles net.IP conversion
func stringToNetIPHookFunc() mapstructure.DecodeHookFunc {
	return func(f reflect.Type, t reflect.Type, data any) (any, error) {
		if f.Kind() != reflect.String {
			return data, nil
		}
		if t != reflect.TypeOf(net.IP{}) {
			return data, nil
		}

		str := data.(string)
		if len(str) > 45 { // Max IPv6 length
			return nil, fmt.Errorf("invalid IP length: %d", len(str))
		}
		ip := net.ParseIP(str)
		if ip == nil {
			return nil, fmt.Errorf("invalid IP address: %s", str)
		}
		return ip, nil
	}
}

// stringToURLHookFunc handles url.URL conversion
func stringToURLHookFunc() mapstructure.DecodeHookFunc {
	return func(f reflect.Type, t reflect.Type, data any) (any, error) {
		if f.Kind() != reflect.String {
			return data, nil
		}
		isPtr := t.Kind() == reflect.Ptr
		targetType := t
		if isPtr {
			targetType = t.Elem()
		}
		if targetType != reflect.TypeOf(url.URL{}) {
			return data, nil
		}

		str := data.(string)
		if len(str) > 2048 {
			return nil, fmt.Errorf("URL too long: %d bytes", len(str))
		}
		u, err := url.Parse(str)
		if err != nil {
			return nil, fmt.Errorf("invalid URL: %w", err)
		}
		if isPtr {
			return u, nil
		}
		return *u, nil
	}
}

// setNestedValue stores value at a dot-separated path, creating maps as needed.
// A scalar in the way of a deeper path is replaced by a map.
func setNestedValue(nested map[string]any, path string, value any) {
	segments := strings.Split(path, ".")
	current := nested
	for _, segment := range segments[:len(segments)-1] {
		next, ok := current[segment].(map[string]any)
		if !ok {
			next = make(map[string]any)
			current[segment] = next
		}
		current = next
	}
	current[segments[len(segments)-1]] = value
}
