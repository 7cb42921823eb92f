package cmd

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/mediactl/mediactl/config"
	"github.com/mediactl/mediactl/filesystem"
	"github.com/mediactl/mediactl/history"
	"github.com/mediactl/mediactl/key"
	"github.com/mediactl/mediactl/log"
	"github.com/mediactl/mediactl/native/fake"
	"github.com/mediactl/mediactl/player"
	"github.com/mediactl/mediactl/playlist"
	"github.com/samber/lo"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/viper"
)

func init() {
	filesystem.SetMemMapFs()
	lo.Must0(config.Setup())
}

func runSession(e *fake.Engine, list *playlist.Playlist, wait bool, opts ...player.Option) (string, error) {
	c, err := player.New(e, append([]player.Option{player.WithLogger(log.Discard())}, opts...)...)
	So(err, ShouldBeNil)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var out bytes.Buffer
	err = newSession(c, list, &out).run(ctx, wait)
	So(c.Released(), ShouldBeTrue)
	return out.String(), err
}

func TestSession(t *testing.T) {
	Convey("Given a fake engine with short media", t, func() {
		viper.Set(key.HistorySave, true)
		So(history.Clear(), ShouldBeNil)

		Convey("Every item is played in order and remembered", func() {
			e := fake.New(fake.WithTimeline(20 * time.Millisecond))
			out, err := runSession(e, playlist.FromLocators("a.mp4", "b.mp4"), false)

			So(err, ShouldBeNil)
			So(e.Played(), ShouldResemble, []string{"a.mp4", "b.mp4"})
			So(out, ShouldContainSubstring, "a.mp4")

			saved, err := history.Get()
			So(err, ShouldBeNil)
			So(saved, ShouldContainKey, "a.mp4")
			So(saved, ShouldContainKey, "b.mp4")
			So(saved["b.mp4"].Plays, ShouldEqual, 1)
		})

		Convey("Waiting for start works the same way", func() {
			e := fake.New(fake.WithTimeline(20 * time.Millisecond))
			_, err := runSession(e, playlist.FromLocators("a.mp4"), true)

			So(err, ShouldBeNil)
			So(e.Played(), ShouldResemble, []string{"a.mp4"})
		})

		Convey("History is left alone when disabled", func() {
			viper.Set(key.HistorySave, false)
			defer viper.Set(key.HistorySave, true)

			_, err := runSession(fake.New(fake.WithTimeline(20*time.Millisecond)), playlist.FromLocators("c.mp4"), false)
			So(err, ShouldBeNil)

			saved, _ := history.Get()
			So(saved, ShouldBeEmpty)
		})

		Convey("Sub-items of an item are chained before moving on", func() {
			e := fake.New(
				fake.WithSubItems("list.m3u", "x.mp4", "y.mp4"),
				fake.WithTimeline(20*time.Millisecond),
			)
			list := &playlist.Playlist{Items: []playlist.Item{{Locator: "list.m3u", SubItems: true}, {Locator: "z.mp4"}}}

			_, err := runSession(e, list, false)
			So(err, ShouldBeNil)
			So(e.Played(), ShouldResemble, []string{"list.m3u", "x.mp4", "y.mp4", "z.mp4"})
		})

		Convey("Items that cannot be played are skipped", func() {
			e := fake.New(fake.WithInvalidLocator("bad://x"), fake.WithTimeline(20*time.Millisecond))
			out, err := runSession(e, playlist.FromLocators("bad://x", "good.mp4"), false)

			So(err, ShouldBeNil)
			So(out, ShouldContainSubstring, "bad://x")
			So(e.Played(), ShouldResemble, []string{"good.mp4"})
		})

		Convey("A playlist where nothing plays is an error", func() {
			_, err := runSession(fake.New(fake.WithPlayFailure()), playlist.FromLocators("a.mp4"), true)
			So(errors.Is(err, errNothingPlayed), ShouldBeTrue)
		})

		Convey("Cancelling stops the current item", func() {
			e := fake.New(fake.WithTimeline(time.Minute))
			c, err := player.New(e, player.WithLogger(log.Discard()))
			So(err, ShouldBeNil)

			ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
			defer cancel()

			start := time.Now()
			var out bytes.Buffer
			So(newSession(c, playlist.FromLocators("long.mkv"), &out).run(ctx, false), ShouldBeNil)
			So(time.Since(start), ShouldBeLessThan, 2*time.Second)
			So(c.Released(), ShouldBeTrue)
		})
	})
}

func TestLoadPlaylist(t *testing.T) {
	Convey("Locators become a playlist", t, func() {
		list, err := loadPlaylist("", []string{"a", "b"})
		So(err, ShouldBeNil)
		So(list.Locators(), ShouldResemble, []string{"a", "b"})
	})

	Convey("Nothing to play is an error", t, func() {
		_, err := loadPlaylist("", nil)
		So(err, ShouldNotBeNil)
	})

	Convey("Extra locators follow the playlist file", t, func() {
		So(playlist.Save("/lists/p.yaml", playlist.FromLocators("one")), ShouldBeNil)
		list, err := loadPlaylist("/lists/p.yaml", []string{"two"})
		So(err, ShouldBeNil)
		So(list.Locators(), ShouldResemble, []string{"one", "two"})
	})
}

func TestClosest(t *testing.T) {
	Convey("Unknown names get the nearest suggestion", t, func() {
		So(closest("libvcl", engineNames), ShouldEqual, "libvlc")
		So(closest("player.repat", []string{key.PlayerRepeat, key.HistorySave}), ShouldEqual, key.PlayerRepeat)
	})
}
