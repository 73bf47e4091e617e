package cli

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"sync"

	"github.com/ardnew/slip/pkg"
)

// baseConfig is the base name of the configuration file.
const baseConfig = "config"

// defaultDirMode is the permission mode for directories created at startup.
const defaultDirMode os.FileMode = 0o700

// basePrefix names the per-user subdirectory holding slip's configuration
// and cache files. It derives from the executable name so renamed or
// symlinked installs keep their state separate, with two substitutions:
// dlv's __debug_bin output maps back to the command name, and leading dots
// are stripped.
var basePrefix = sync.OnceValue(func() string {
	id := os.Args[0]
	if exe, err := os.Executable(); err == nil {
		id = exe
	}

	id = filepath.Base(id)
	id = strings.TrimSuffix(id, filepath.Ext(id))
	id = regexp.MustCompile(`^__debug_bin\d+$`).ReplaceAllString(id, pkg.Name)

	return strings.TrimLeft(id, ".")
})

// stateDir resolves a per-user directory, falling back to a dot directory
// under the home directory and finally to the working directory when the
// platform defaults are unavailable.
func stateDir(platform func() (string, error), dotName string) string {
	dir, err := platform()
	if err == nil {
		return filepath.Join(dir, basePrefix())
	}

	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, dotName, basePrefix())
	}

	dir, err = os.Getwd()
	if err != nil {
		dir = "."
	}

	return filepath.Join(dir, basePrefix())
}

// configDir returns the configuration directory path.
var configDir = sync.OnceValue(func() string {
	return stateDir(os.UserConfigDir, ".config")
})

// cacheDir returns the cache directory path used for transient files such
// as the interactive session history and profiling output.
var cacheDir = sync.OnceValue(func() string {
	return stateDir(os.UserCacheDir, ".cache")
})

// configPath joins the configuration directory with the given path
// elements. With no elements it is equivalent to [configDir].
func configPath(elem ...string) string {
	return filepath.Join(append([]string{configDir()}, elem...)...)
}

// mkdirAllRequired creates the runtime directories needed before any
// command runs.
func mkdirAllRequired() error {
	err := os.MkdirAll(configDir(), defaultDirMode)
	if err != nil {
		return err
	}

	return os.MkdirAll(cacheDir(), defaultDirMode)
}
