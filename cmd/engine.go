package cmd

import (
	"fmt"
	"time"

	"github.com/mediactl/mediactl/color"
	"github.com/mediactl/mediactl/constant"
	"github.com/mediactl/mediactl/filesystem"
	"github.com/mediactl/mediactl/key"
	"github.com/mediactl/mediactl/log"
	"github.com/mediactl/mediactl/native"
	"github.com/mediactl/mediactl/native/fake"
	"github.com/mediactl/mediactl/native/libvlc"
	"github.com/mediactl/mediactl/player"
	"github.com/mediactl/mediactl/style"
	"github.com/mediactl/mediactl/where"
	levenshtein "github.com/ka-weihe/fast-levenshtein"
	"github.com/samber/lo"
	"github.com/spf13/viper"
)

var engineNames = []string{constant.EngineLibVLC, constant.EngineFake}

// fakeTimeline is how long the fake engine pretends each media plays.
const fakeTimeline = 3 * time.Second

func closest(name string, candidates []string) string {
	return lo.MinBy(candidates, func(a, b string) bool {
		return levenshtein.Distance(name, a) < levenshtein.Distance(name, b)
	})
}

func newEngine() (native.Engine, error) {
	switch name := viper.GetString(key.PlayerEngine); name {
	case constant.EngineLibVLC:
		return libvlc.New()
	case constant.EngineFake:
		return fake.New(
			fake.WithTimeline(fakeTimeline),
			fake.WithFs(filesystem.API().Fs),
		), nil
	default:
		return nil, fmt.Errorf(
			"unknown engine %s, did you mean %s?",
			style.Fg(color.Red)(name),
			style.Fg(color.Yellow)(closest(name, engineNames)),
		)
	}
}

// newController creates a controller configured from viper. opts are applied last.
func newController(opts ...player.Option) (*player.Controller, error) {
	engine, err := newEngine()
	if err != nil {
		return nil, err
	}

	base := append(player.ConfigOptions(), player.WithLogger(log.Component("player")))
	if viper.GetString(key.SnapshotDirectory) == "" {
		base = append(base, player.WithSnapshotDirectory(where.Snapshots()))
	}
	return player.New(engine, append(base, opts...)...)
}
