// Package config resolves filesystem locations used by todolist.
package config

import (
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

const (
	// AppName is used for directory and file names.
	AppName = "todolist"
	// LocalDataDir is the per-project data directory checked in the working directory.
	LocalDataDir = ".todolist"
)

// GetGlobalDataDir returns the global data directory (~/.todolist).
// It's a variable to allow overriding in tests.
var GetGlobalDataDir = func() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, LocalDataDir), nil
}

// GetDataDir returns the directory holding persisted tasks.
// Resolution order (first match wins):
// 1. Explicit config via "data.dir" (flag/env/config file)
// 2. Local project directory: ./.todolist (if exists)
// 3. XDG_DATA_HOME/todolist (if XDG_DATA_HOME is set)
// 4. Global fallback: ~/.todolist
func GetDataDir() string {
	if dir := viper.GetString("data.dir"); dir != "" {
		return dir
	}

	if info, err := os.Stat(LocalDataDir); err == nil && info.IsDir() {
		return LocalDataDir
	}

	if xdgData := os.Getenv("XDG_DATA_HOME"); xdgData != "" {
		return filepath.Join(xdgData, AppName)
	}

	dir, err := GetGlobalDataDir()
	if err != nil {
		return LocalDataDir
	}
	return dir
}

// ResolveInDataDir joins a relative path onto the data directory. Absolute
// paths and the empty string are returned unchanged.
func ResolveInDataDir(dataDir, path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(dataDir, path)
}
