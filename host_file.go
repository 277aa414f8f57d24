// FILE: lixenwraith/emuconfig/host_file.go
package emuconfig

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// MaxSettingsFileSize is the largest settings file accepted. Larger files fail with ErrFileTooLarge.
const MaxSettingsFileSize = 1 << 20

// FileHost serves settings from a TOML, JSON or YAML file. Nested tables are
// flattened and keyed by their last segment, so a `[Renderer]` table holding
// `resolution_factor` serves the key "resolution_factor".
type FileHost struct {
	*MemoryHost

	mu     sync.Mutex
	path   string
	format string
}

// NewFileHost loads path and returns a host serving its contents.
// format may be "toml", "json", "yaml", or empty/"auto" for detection.
func NewFileHost(path, format string) (*FileHost, error) {
	h := &FileHost{
		MemoryHost: NewMemoryHost(nil),
		path:       path,
		format:     format,
	}
	if err := h.Refresh(); err != nil {
		return nil, err
	}
	return h, nil
}

// Path returns the settings file path.
func (h *FileHost) Path() string {
	return h.path
}

// Refresh re-reads the settings file and atomically replaces the served values.
// On error the previous values are kept.
func (h *FileHost) Refresh() error {
	h.mu.Lock()
	defer h.mu.Unlock()

	values, err := readSettingsFile(h.path, h.format)
	if err != nil {
		return err
	}
	h.Replace(values)
	return nil
}

// readSettingsFile reads, parses and flattens a settings file
func readSettingsFile(path, format string) (map[string]any, error) {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrConfigNotFound
		}
		return nil, fmt.Errorf("failed to open settings file '%s': %w", path, err)
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, MaxSettingsFileSize+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read settings file '%s': %w", path, err)
	}
	if len(data) > MaxSettingsFileSize {
		return nil, fmt.Errorf("%w: '%s' exceeds %d bytes", ErrFileTooLarge, path, MaxSettingsFileSize)
	}

	if format == "" || format == "auto" {
		format = detectFileFormat(path)
		if format == "" {
			format = detectFormatFromContent(data)
		}
	}

	parsed, err := parseSettings(data, format)
	if err != nil {
		return nil, fmt.Errorf("settings file '%s': %w", path, err)
	}

	return flattenByKey(parsed), nil
}

// parseSettings decodes raw data in the given format into a nested map
func parseSettings(data []byte, format string) (map[string]any, error) {
	nested := make(map[string]any)
	switch format {
	case "toml":
		if err := toml.Unmarshal(data, &nested); err != nil {
			return nil, fmt.Errorf("failed to parse TOML: %w", err)
		}
	case "json":
		decoder := json.NewDecoder(bytes.NewReader(data))
		decoder.UseNumber() // Keep integers integral
		if err := decoder.Decode(&nested); err != nil {
			return nil, fmt.Errorf("failed to parse JSON: %w", err)
		}
	case "yaml":
		if err := yaml.Unmarshal(data, &nested); err != nil {
			return nil, fmt.Errorf("failed to parse YAML: %w", err)
		}
	default:
		return nil, ErrUnknownFormat
	}
	return nested, nil
}

// flattenByKey collapses nested tables, keying every leaf by its own name.
// A later duplicate leaf name overwrites an earlier one in map iteration order,
// so files should not repeat keys across tables.
func flattenByKey(nested map[string]any) map[string]any {
	flat := make(map[string]any)
	for path, value := range flattenMap(nested, "") {
		key := path
		if i := strings.LastIndexByte(path, '.'); i >= 0 {
			key = path[i+1:]
		}
		flat[key] = normalizeNumber(value)
	}
	return flat
}

// normalizeNumber turns json.Number into int64 or float64
func normalizeNumber(v any) any {
	n, ok := v.(json.Number)
	if !ok {
		return v
	}
	if i, err := n.Int64(); err == nil {
		return i
	}
	if f, err := n.Float64(); err == nil {
		return f
	}
	return n.String()
}

// flattenMap converts a nested map[string]any to a flat map[string]any with dot-notation paths.
func flattenMap(nested map[string]any, prefix string) map[string]any {
	flat := make(map[string]any)

	for key, value := range nested {
		newPath := key
		if prefix != "" {
			newPath = prefix + "." + key
		}

		if nestedMap, isMap := value.(map[string]any); isMap {
			for subPath, subValue := range flattenMap(nestedMap, newPath) {
				flat[subPath] = subValue
			}
		} else {
			flat[newPath] = value
		}
	}

	return flat
}

// detectFileFormat determines format from file extension
func detectFileFormat(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml", ".tml":
		return "toml"
	case ".json":
		return "json"
	case ".yaml", ".yml":
		return "yaml"
	default:
		return ""
	}
}

// detectFormatFromContent attempts to detect format by parsing
func detectFormatFromContent(data []byte) string {
	// JSON first, it is the strictest
	var jsonTest any
	if err := json.Unmarshal(data, &jsonTest); err == nil {
		return "json"
	}

	var tomlTest map[string]any
	if err := toml.Unmarshal(data, &tomlTest); err == nil {
		return "toml"
	}

	var yamlTest map[string]any
	if err := yaml.Unmarshal(data, &yamlTest); err == nil {
		return "yaml"
	}

	return ""
}
