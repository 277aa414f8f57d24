// FILE: lixenwraith/emuconfig/discovery.go
package emuconfig

import (
	"os"
	"path/filepath"
)

// FileDiscoveryOptions configures settings file discovery
type FileDiscoveryOptions struct {
	// Base name of the settings file (without extension)
	Name string

	// Directory name under the XDG config roots
	AppDir string

	// Extensions to try (in order)
	Extensions []string

	// Custom search paths (searched first)
	Paths []string

	// Whether to search in XDG config directories
	UseXDG bool

	// Whether to search in current directory
	UseCurrentDir bool
}

// DefaultDiscoveryOptions returns sensible defaults
func DefaultDiscoveryOptions(appDir string) FileDiscoveryOptions {
	return FileDiscoveryOptions{
		Name:          "settings",
		AppDir:        appDir,
		Extensions:    []string{".toml", ".json", ".yaml", ".yml"},
		UseXDG:        true,
		UseCurrentDir: true,
	}
}

// DiscoverSettingsFile returns the first existing settings file on the search
// path, or "" when there is none.
func DiscoverSettingsFile(opts FileDiscoveryOptions) string {
	var searchPaths []string
	searchPaths = append(searchPaths, opts.Paths...)

	if opts.UseCurrentDir {
		if cwd, err := os.Getwd(); err == nil {
			searchPaths = append(searchPaths, cwd)
		}
	}
	if opts.UseXDG {
		searchPaths = append(searchPaths, getXDGConfigPaths(opts.AppDir)...)
	}

	for _, dir := range searchPaths {
		for _, ext := range opts.Extensions {
			path := filepath.Join(dir, opts.Name+ext)
			if info, err := os.Stat(path); err == nil && info.Mode().IsRegular() {
				return path
			}
		}
	}
	return ""
}

// WithFileDiscovery serves settings from the first file found on the search path.
// No file found is not an error; the registry keeps its defaults.
func (b *Builder) WithFileDiscovery(opts FileDiscoveryOptions) *Builder {
	if path := DiscoverSettingsFile(opts); path != "" {
		b.file = path
	}
	return b
}

// getXDGConfigPaths returns XDG-compliant config search paths
func getXDGConfigPaths(appDir string) []string {
	var paths []string

	if xdgHome := os.Getenv("XDG_CONFIG_HOME"); xdgHome != "" {
		paths = append(paths, filepath.Join(xdgHome, appDir))
	} else if home := os.Getenv("HOME"); home != "" {
		paths = append(paths, filepath.Join(home, ".config", appDir))
	}

	if xdgDirs := os.Getenv("XDG_CONFIG_DIRS"); xdgDirs != "" {
		for _, dir := range filepath.SplitList(xdgDirs) {
			paths = append(paths, filepath.Join(dir, appDir))
		}
	} else {
		paths = append(paths,
			filepath.Join("/etc/xdg", appDir),
			filepath.Join("/etc", appDir),
		)
	}

	return paths
}
