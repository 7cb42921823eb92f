package player

import (
	"time"

	"github.com/mediactl/mediactl/event"
	"github.com/mediactl/mediactl/key"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// Hook is called with the controller it belongs to.
type Hook func(c *Controller)

type settings struct {
	logger          *logrus.Entry
	engineArgs      []string
	mask            event.Mask
	standardOptions []string
	repeat          bool
	playSubItems    bool
	videoPoll       time.Duration
	videoTimeout    time.Duration
	snapshotDir     string
	beforePlay      Hook
	afterRelease    Hook
}

const (
	defaultVideoPoll    = 50 * time.Millisecond
	defaultVideoTimeout = 5000 * time.Millisecond
)

func defaults() settings {
	return settings{
		mask:         event.MaskAll,
		videoPoll:    defaultVideoPoll,
		videoTimeout: defaultVideoTimeout,
	}
}

// Option customizes a Controller at construction.
type Option func(*settings)

// WithLogger sets the entry used for controller, queue and registry logs.
func WithLogger(logger *logrus.Entry) Option {
	return func(s *settings) {
		s.logger = logger
	}
}

// WithEngineArgs passes arguments to the engine instance.
func WithEngineArgs(args ...string) Option {
	return func(s *settings) {
		s.engineArgs = append(s.engineArgs, args...)
	}
}

// WithEventMask restricts which event kinds are translated and delivered.
func WithEventMask(mask event.Mask) Option {
	return func(s *settings) {
		s.mask = mask
	}
}

// WithStandardMediaOptions sets options applied to every media before per-call options.
func WithStandardMediaOptions(opts ...string) Option {
	return func(s *settings) {
		s.standardOptions = append([]string(nil), opts...)
	}
}

// WithRepeat enables auto-repeat from the start.
func WithRepeat(on bool) Option {
	return func(s *settings) {
		s.repeat = on
	}
}

// WithPlaySubItems enables sub-item chaining from the start.
func WithPlaySubItems(on bool) Option {
	return func(s *settings) {
		s.playSubItems = on
	}
}

// WithVideoOutputWait sets the video output poll period and timeout.
// Non-positive values keep the defaults.
func WithVideoOutputWait(period, timeout time.Duration) Option {
	return func(s *settings) {
		if period > 0 {
			s.videoPoll = period
		}
		if timeout > 0 {
			s.videoTimeout = timeout
		}
	}
}

// WithSnapshotDirectory sets where snapshots go when no path is given.
func WithSnapshotDirectory(dir string) Option {
	return func(s *settings) {
		s.snapshotDir = dir
	}
}

// WithBeforePlay registers a hook run before every play command.
func WithBeforePlay(h Hook) Option {
	return func(s *settings) {
		s.beforePlay = h
	}
}

// WithAfterRelease registers a hook run once, after all native resources are gone.
func WithAfterRelease(h Hook) Option {
	return func(s *settings) {
		s.afterRelease = h
	}
}

// ConfigOptions builds options from the current configuration.
func ConfigOptions() []Option {
	return []Option{
		WithEngineArgs(viper.GetStringSlice(key.PlayerEngineArgs)...),
		WithStandardMediaOptions(viper.GetStringSlice(key.PlayerStandardOptions)...),
		WithRepeat(viper.GetBool(key.PlayerRepeat)),
		WithPlaySubItems(viper.GetBool(key.PlayerPlaySubItems)),
		WithVideoOutputWait(
			time.Duration(viper.GetInt(key.PlayerVideoOutputPoll))*time.Millisecond,
			time.Duration(viper.GetInt(key.PlayerVideoOutputTimeout))*time.Millisecond,
		),
		WithSnapshotDirectory(viper.GetString(key.SnapshotDirectory)),
	}
}
