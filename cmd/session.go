package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/mediactl/mediactl/color"
	"github.com/mediactl/mediactl/config"
	"github.com/mediactl/mediactl/history"
	"github.com/mediactl/mediactl/icon"
	"github.com/mediactl/mediactl/key"
	"github.com/mediactl/mediactl/listener"
	"github.com/mediactl/mediactl/log"
	"github.com/mediactl/mediactl/metrics"
	"github.com/mediactl/mediactl/player"
	"github.com/mediactl/mediactl/playlist"
	"github.com/mediactl/mediactl/style"
	"github.com/mediactl/mediactl/util"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"
)

var errNothingPlayed = errors.New("none of the items could be played")

// session plays a playlist through one controller and reports progress on out.
type session struct {
	listener.Adapter

	c      *player.Controller
	list   *playlist.Playlist
	out    io.Writer
	logger *logrus.Entry

	tty     bool
	limiter *rate.Limiter

	// ended receives true when the current item ran to its end and false on error.
	ended  chan bool
	length atomic.Int64

	mu    sync.Mutex
	erase func()
}

func newSession(c *player.Controller, list *playlist.Playlist, out io.Writer) *session {
	fd := os.Stdout.Fd()
	return &session{
		c:       c,
		list:    list,
		out:     out,
		logger:  log.Component("session").WithField("controller", c.ID()),
		tty:     out == os.Stdout && (isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)),
		limiter: rate.NewLimiter(rate.Limit(max(viper.GetFloat64(key.StatusRate), 0.1)), 1),
		ended:   make(chan bool, 1),
	}
}

func (s *session) run(ctx context.Context, wait bool) error {
	defer s.c.Release()

	if err := s.c.AddListener(s); err != nil {
		return err
	}
	if err := s.c.AddVideoOutputListener(s); err != nil {
		return err
	}
	if config.Watch(s.reload) {
		s.logger.Debug("watching config file")
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	g, ctx := errgroup.WithContext(ctx)

	if addr := viper.GetString(key.MetricsListen); addr != "" {
		g.Go(func() error {
			return metrics.Serve(ctx, addr, metrics.NewRouter(s.status), log.Component("metrics"))
		})
	}

	g.Go(func() error {
		defer cancel()
		return s.playAll(ctx, wait)
	})

	err := g.Wait()
	s.clearStatus()
	return err
}

func (s *session) playAll(ctx context.Context, wait bool) error {
	for {
		played := 0
		for _, item := range s.list.Items {
			ok, err := s.playItem(ctx, item, wait)
			if err != nil {
				return err
			}
			if ctx.Err() != nil {
				return nil
			}
			if ok {
				played++
			}
		}

		if played == 0 {
			return errNothingPlayed
		}
		if !s.list.Repeat {
			return nil
		}
	}
}

// playItem plays item until it ends, fails or ctx is done. It reports whether playback started.
func (s *session) playItem(ctx context.Context, item playlist.Item, wait bool) (bool, error) {
	select {
	case <-s.ended:
	default:
	}

	if item.SubItems && !s.c.PlaySubItems() {
		_ = s.c.SetPlaySubItems(true)
		defer func() { _ = s.c.SetPlaySubItems(false) }()
	}

	opts := s.list.OptionsFor(item)
	s.logger.WithFields(logrus.Fields{"locator": item.Locator, "options": opts}).Info("playing")

	if wait {
		timeout := time.Duration(viper.GetInt(key.PlayerStartTimeout)) * time.Millisecond
		startCtx, stop := context.WithTimeout(ctx, timeout)
		started, err := s.c.StartMedia(startCtx, item.Locator, opts...)
		stop()

		switch {
		case ctx.Err() != nil:
			return false, nil
		case errors.Is(err, context.DeadlineExceeded):
			s.fail(item, fmt.Errorf("did not start within %s", timeout))
			return false, nil
		case errors.Is(err, player.ErrInvalidLocator), errors.Is(err, player.ErrPlayFailed):
			s.fail(item, err)
			return false, nil
		case err != nil:
			return false, err
		case !started:
			s.fail(item, errors.New("engine reported an error"))
			return false, nil
		}
	} else if err := s.c.PlayMedia(item.Locator, opts...); err != nil {
		if errors.Is(err, player.ErrInvalidLocator) || errors.Is(err, player.ErrPlayFailed) {
			s.fail(item, err)
			return false, nil
		}
		return false, err
	}

	select {
	case <-ctx.Done():
		_ = s.c.Stop()
	case ok := <-s.ended:
		if !ok {
			s.fail(item, errors.New("playback failed"))
		}
	}

	s.remember(item)
	return true, nil
}

// continues reports whether the controller is about to play something else by itself
// after the current media finishes.
func (s *session) continues() bool {
	count, err := s.c.SubItemCount()
	if err != nil {
		return false
	}
	if count == 0 {
		return s.c.Repeat()
	}
	if !s.c.PlaySubItems() {
		return false
	}
	if s.c.Repeat() {
		return true
	}
	index, _ := s.c.SubItemIndex()
	return index+1 < count
}

func (s *session) signal(ok bool) {
	select {
	case s.ended <- ok:
	default:
	}
}

func (s *session) remember(item playlist.Item) {
	if !viper.GetBool(key.HistorySave) {
		return
	}

	title := util.FileStem(item.Locator)
	if meta, err := s.c.MediaMeta(); err == nil && meta.Title != "" {
		title = meta.Title
	}
	position, _ := s.c.Position()
	if err := history.Save(item.Locator, title, util.Clamp(position, 0, 1)); err != nil {
		s.logger.WithError(err).Warn("could not save history")
	}
}

func (s *session) reload(changed []string) {
	for _, k := range changed {
		var err error
		switch k {
		case key.PlayerRepeat:
			err = s.c.SetRepeat(viper.GetBool(k))
		case key.PlayerPlaySubItems:
			err = s.c.SetPlaySubItems(viper.GetBool(k))
		case key.PlayerStandardOptions:
			err = s.c.SetStandardMediaOptions(viper.GetStringSlice(k)...)
		case key.PlayerVideoOutputPoll, key.PlayerVideoOutputTimeout:
			err = s.c.SetVideoOutputWait(
				time.Duration(viper.GetInt(key.PlayerVideoOutputPoll))*time.Millisecond,
				time.Duration(viper.GetInt(key.PlayerVideoOutputTimeout))*time.Millisecond,
			)
		case key.StatusRate:
			s.limiter.SetLimit(rate.Limit(max(viper.GetFloat64(k), 0.1)))
		default:
			continue
		}
		s.logger.WithField("key", k).WithError(err).Info("applied config change")
	}
}

type sessionStatus struct {
	ID           string  `json:"id"`
	Status       string  `json:"status"`
	Locator      string  `json:"locator,omitempty"`
	TimeMs       int64   `json:"time_ms"`
	LengthMs     int64   `json:"length_ms"`
	Position     float32 `json:"position"`
	Repeat       bool    `json:"repeat"`
	SubItems     bool    `json:"sub_items"`
	SubItemIndex int     `json:"sub_item_index"`
}

func (s *session) status() any {
	st := sessionStatus{
		ID:       s.c.ID().String(),
		Status:   s.c.Status().String(),
		Repeat:   s.c.Repeat(),
		SubItems: s.c.PlaySubItems(),
	}
	st.Locator, _ = s.c.Locator()
	st.TimeMs, _ = s.c.Time()
	st.LengthMs, _ = s.c.Length()
	st.Position, _ = s.c.Position()
	st.SubItemIndex, _ = s.c.SubItemIndex()
	return st
}

func (s *session) println(format string, args ...any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.erase != nil {
		s.erase()
		s.erase = nil
	}
	_, _ = fmt.Fprintf(s.out, format+"\n", args...)
}

func (s *session) printStatus(ms int64) {
	line := fmt.Sprintf("%s %s %s / %s",
		icon.Get(icon.Play),
		style.Status(s.c.Status().String()),
		util.Clock(ms),
		util.Clock(s.length.Load()),
	)
	if width, _, err := util.TerminalSize(); err == nil && width > 0 {
		line = style.Truncate(width)(line)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.erase != nil {
		s.erase()
	}
	s.erase = util.PrintErasable(line)
}

func (s *session) clearStatus() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.erase != nil {
		s.erase()
		s.erase = nil
	}
}

func (s *session) fail(item playlist.Item, err error) {
	s.logger.WithError(err).WithField("locator", item.Locator).Warn("item failed")
	s.println("%s %s: %v", style.Fg(color.Red)(icon.Get(icon.Fail)), item.Locator, err)
}

func (s *session) Playing() {
	locator, _ := s.c.Locator()
	if index, _ := s.c.SubItemIndex(); index >= 0 {
		locator = fmt.Sprintf("%s [%d]", locator, index+1)
	}
	s.println("%s %s", style.Fg(color.Green)(icon.Get(icon.Play)), style.Bold(locator))
}

func (s *session) Paused() {
	s.println("%s paused", style.Fg(color.Yellow)(icon.Get(icon.Pause)))
}

func (s *session) Stopped() {
	s.clearStatus()
}

func (s *session) Finished() {
	if !s.continues() {
		s.signal(true)
	} else if s.c.Repeat() {
		s.println("%s again", style.Fg(color.Cyan)(icon.Get(icon.Repeat)))
	}
}

func (s *session) Error() {
	s.signal(false)
}

func (s *session) LengthChanged(ms int64) {
	s.length.Store(ms)
}

func (s *session) TimeChanged(ms int64) {
	if s.tty && s.limiter.Allow() {
		s.printStatus(ms)
	}
}

func (s *session) SnapshotTaken(filename string) {
	s.println("%s %s", icon.Get(icon.Snapshot), filename)
}

func (s *session) VideoOutputAvailable(ok bool) {
	if ok {
		if dim, err := s.c.VideoDimension(); err == nil && dim.IsPresent() {
			d := dim.MustGet()
			s.println("%s video %dx%d", icon.Get(icon.Video), d.Width, d.Height)
			return
		}
		s.println("%s video", icon.Get(icon.Video))
		return
	}
	s.println("%s %s", icon.Get(icon.NoVideo), style.Faint("no video output"))
}
