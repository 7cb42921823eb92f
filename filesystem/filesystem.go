// Package filesystem holds the process-wide afero backend.
//
// Config, logs, history, playlists and snapshots all go through API, so tests can run
// against memory without touching the disk.
package filesystem

import "github.com/spf13/afero"

var backend = afero.Afero{Fs: afero.NewOsFs()}

// API returns the active backend.
func API() afero.Afero {
	return backend
}

// SetOsFs switches to the operating system filesystem.
func SetOsFs() {
	Use(afero.NewOsFs())
}

// SetMemMapFs switches to an empty in-memory filesystem.
func SetMemMapFs() {
	Use(afero.NewMemMapFs())
}

// Use switches to fs.
func Use(fs afero.Fs) {
	backend = afero.Afero{Fs: fs}
}
