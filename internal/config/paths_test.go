package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
)

func TestGetDataDir_ResolutionOrder(t *testing.T) {
	tmp := t.TempDir()
	t.Chdir(tmp)
	t.Setenv("XDG_DATA_HOME", "")

	origGlobal := GetGlobalDataDir
	defer func() { GetGlobalDataDir = origGlobal }()
	GetGlobalDataDir = func() (string, error) { return filepath.Join(tmp, "home", ".todolist"), nil }

	viper.Reset()
	defer viper.Reset()

	// 4. global fallback
	assert.Equal(t, filepath.Join(tmp, "home", ".todolist"), GetDataDir())

	// 3. XDG beats global
	t.Setenv("XDG_DATA_HOME", filepath.Join(tmp, "xdg"))
	assert.Equal(t, filepath.Join(tmp, "xdg", "todolist"), GetDataDir())

	// 2. local project dir beats XDG
	assert.NoError(t, os.Mkdir(LocalDataDir, 0o755))
	assert.Equal(t, LocalDataDir, GetDataDir())

	// 1. explicit config beats everything
	viper.Set("data.dir", "/explicit")
	assert.Equal(t, "/explicit", GetDataDir())
}

func TestGetDataDir_HomeUnavailable(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("XDG_DATA_HOME", "")
	viper.Reset()
	defer viper.Reset()

	origGlobal := GetGlobalDataDir
	defer func() { GetGlobalDataDir = origGlobal }()
	GetGlobalDataDir = func() (string, error) { return "", errors.New("no home") }

	assert.Equal(t, LocalDataDir, GetDataDir())
}

func TestResolveInDataDir(t *testing.T) {
	assert.Equal(t, "", ResolveInDataDir("/data", ""))
	assert.Equal(t, "/var/log/x.log", ResolveInDataDir("/data", "/var/log/x.log"))
	assert.Equal(t, filepath.Join("/data", "todolist.log"), ResolveInDataDir("/data", "todolist.log"))
}
