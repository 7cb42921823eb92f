package player

import (
	"errors"

	"github.com/mediactl/mediactl/native"
)

var (
	// ErrReleased is returned by every operation once Release has been called.
	ErrReleased = errors.New("controller released")

	// ErrNoMedia is returned by media operations when nothing is bound.
	ErrNoMedia = errors.New("no media bound")

	// ErrEngineUnavailable is returned by New when the engine cannot create an instance or player.
	ErrEngineUnavailable = native.ErrEngineUnavailable

	// ErrInvalidLocator means the engine refused to create media for a locator.
	ErrInvalidLocator = errors.New("invalid media locator")

	// ErrPlayFailed wraps an engine refusal to start playback.
	ErrPlayFailed = errors.New("play failed")

	// ErrSnapshotDirectory means the snapshot's parent directory could not be created.
	ErrSnapshotDirectory = errors.New("snapshot directory unavailable")

	// ErrOutOfRange is returned for track or subtitle ids beyond the available count.
	ErrOutOfRange = errors.New("value out of range")
)
