package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/viper"
)

// ConfigFileName is the file "config set" creates when no config was loaded.
const ConfigFileName = "." + AppName + ".yaml"

// SettableKeys lists the keys "config set" may write, in display order.
var SettableKeys = []string{
	"data.dir",
	"data.backend",
	"data.format",
	"data.activeKey",
	"data.completedKey",
	"log.file",
	"log.level",
}

// GetGlobalConfigFile returns ~/.todolist.yaml.
// It's a variable to allow overriding in tests.
var GetGlobalConfigFile = func() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("locate home directory: %w", err)
	}
	return filepath.Join(home, ConfigFileName), nil
}

// IsSettable reports whether key may be written by SaveSetting. Case is ignored.
func IsSettable(key string) bool {
	return slices.ContainsFunc(SettableKeys, func(k string) bool {
		return strings.EqualFold(k, key)
	})
}

// SaveSetting writes key=value into the YAML config file at path, keeping
// every other setting already there.
func SaveSetting(path, key, value string) error {
	if !IsSettable(key) {
		return fmt.Errorf("unknown config key: %s\n\nAvailable keys:\n  %s", key, strings.Join(SettableKeys, "\n  "))
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	// Read existing if any to preserve other settings
	if err := v.ReadInConfig(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("read %s: %w", path, err)
	}

	v.Set(key, value)
	if err := v.WriteConfig(); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
