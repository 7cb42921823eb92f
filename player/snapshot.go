package player

import (
	"fmt"
	"image"
	"os"
	"path/filepath"
	"time"

	"github.com/disintegration/imaging"
	"github.com/mediactl/mediactl/filesystem"
)

// SaveSnapshot writes the current video frame to path as PNG and returns the path used.
// An empty path picks a time-stamped name in the snapshot directory, or in the home
// directory when none is configured.
func (c *Controller) SaveSnapshot(path string) (string, error) {
	return c.SaveSnapshotSized(path, 0, 0)
}

// SaveSnapshotSized is SaveSnapshot with a target size. A zero dimension keeps the aspect ratio;
// both zero keep the original size.
func (c *Controller) SaveSnapshotSized(path string, width, height int) (string, error) {
	if c.released.Load() {
		return "", ErrReleased
	}

	if path == "" {
		dir, err := c.defaultSnapshotDir()
		if err != nil {
			return "", err
		}
		path = filepath.Join(dir, fmt.Sprintf("mediactl-snapshot-%d.png", time.Now().UnixMilli()))
	}

	if err := filesystem.API().MkdirAll(filepath.Dir(path), os.ModePerm); err != nil {
		return "", fmt.Errorf("%w: %v", ErrSnapshotDirectory, err)
	}

	if err := c.lock(); err != nil {
		return "", err
	}
	defer c.mu.Unlock()

	if err := c.engine.TakeSnapshot(c.player, path, width, height); err != nil {
		return "", fmt.Errorf("take snapshot: %w", err)
	}
	c.logger.WithField("path", path).Debug("snapshot saved")
	return path, nil
}

func (c *Controller) defaultSnapshotDir() (string, error) {
	c.mu.Lock()
	dir := c.snapshotDir
	c.mu.Unlock()
	if dir != "" {
		return dir, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrSnapshotDirectory, err)
	}
	return home, nil
}

// Snapshot returns the current video frame.
func (c *Controller) Snapshot() (image.Image, error) {
	if c.released.Load() {
		return nil, ErrReleased
	}

	f, err := filesystem.API().TempFile("", "mediactl-snapshot-*.png")
	if err != nil {
		return nil, fmt.Errorf("create snapshot file: %w", err)
	}
	name := f.Name()
	_ = f.Close()
	defer func() { _ = filesystem.API().Remove(name) }()

	if _, err := c.SaveSnapshot(name); err != nil {
		return nil, err
	}

	r, err := filesystem.API().Open(name)
	if err != nil {
		return nil, fmt.Errorf("open snapshot: %w", err)
	}
	defer r.Close()

	img, err := imaging.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("decode snapshot: %w", err)
	}
	return img, nil
}

// Thumbnail returns the current video frame scaled to fit within width x height.
func (c *Controller) Thumbnail(width, height int) (image.Image, error) {
	img, err := c.Snapshot()
	if err != nil {
		return nil, err
	}
	return imaging.Fit(img, width, height, imaging.Lanczos), nil
}
