// Package appconfig resolves the single directory under which pkroam keeps
// its database and logs. Resolution order: an explicit --config-dir flag,
// then the PKROAM_CONFIG_DIR environment variable, then the OS-native
// per-user config directory joined with the application name.
package appconfig

import (
	"os"
	"path/filepath"

	"github.com/pkroam/pkroam/internal/codeerr"
)

const envKey = "PKROAM_CONFIG_DIR"
const appName = "pkroam"

// Paths is a resolved config directory plus its standard subdirectories.
type Paths struct {
	ConfigDir string
}

// Resolve determines the config directory. flagValue is the --config-dir
// flag's value, empty if unset.
func Resolve(flagValue string) (Paths, error) {
	dir, err := configDir(flagValue)
	if err != nil {
		return Paths{}, err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return Paths{}, codeerr.Wrap(codeerr.KindStoreWriteFailed, err, "creating config directory")
	}
	return Paths{ConfigDir: dir}, nil
}

func configDir(flagValue string) (string, error) {
	if flagValue != "" {
		return flagValue, nil
	}
	if env := os.Getenv(envKey); env != "" {
		return env, nil
	}
	base, err := os.UserConfigDir()
	if err != nil {
		return "", codeerr.Wrap(codeerr.KindStoreReadFailed, err, "resolving OS-native config directory")
	}
	return filepath.Join(base, appName), nil
}

// DatabasePath is where the RoamStore's SQLite file lives.
func (p Paths) DatabasePath() string {
	dir := filepath.Join(p.ConfigDir, "db")
	_ = os.MkdirAll(dir, 0o755)
	return filepath.Join(dir, "roam.sqlite")
}

// LogDir is where structured log output is written.
func (p Paths) LogDir() string {
	dir := filepath.Join(p.ConfigDir, "logs")
	_ = os.MkdirAll(dir, 0o755)
	return dir
}
