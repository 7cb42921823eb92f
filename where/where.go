// Package where resolves the directories and files mediactl keeps on disk.
package where

import (
	"os"
	"path/filepath"

	"github.com/mediactl/mediactl/constant"
	"github.com/mediactl/mediactl/filesystem"
	"github.com/samber/lo"
)

// EnvConfigPath overrides the config directory.
const EnvConfigPath = "MEDIACTL_CONFIG_PATH"

func ensureDir(path string) string {
	lo.Must0(filesystem.API().MkdirAll(path, os.ModePerm))
	return path
}

// Config is the config directory, the user config dir unless EnvConfigPath is set.
func Config() string {
	if custom, ok := os.LookupEnv(EnvConfigPath); ok {
		return ensureDir(custom)
	}

	base := lo.Must(os.UserConfigDir())
	return ensureDir(filepath.Join(base, constant.Mediactl))
}

// Cache falls back to ./cache when the platform has no cache dir.
func Cache() string {
	base, err := os.UserCacheDir()
	if err != nil {
		base = filepath.Join(".", "cache")
	}
	return ensureDir(filepath.Join(base, constant.Mediactl))
}

// Logs returns the directory log files are written to.
func Logs() string {
	return ensureDir(filepath.Join(Config(), "logs"))
}

// Snapshots is where snapshots go when snapshot.directory is empty.
func Snapshots() string {
	return ensureDir(filepath.Join(Cache(), "snapshots"))
}

// Playlists holds playlist files that can be referred to by name.
func Playlists() string {
	return ensureDir(filepath.Join(Config(), "playlists"))
}

// History is the playback history file.
func History() string {
	return filepath.Join(Config(), "history.json")
}

// Temp returns a scratch directory that is wiped on every start.
func Temp() string {
	return ensureDir(filepath.Join(os.TempDir(), constant.Mediactl))
}
