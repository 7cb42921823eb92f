package playlist

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/mediactl/mediactl/filesystem"
	"github.com/mediactl/mediactl/where"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	filesystem.SetMemMapFs()
}

const sample = `
repeat: true
options: [":no-audio"]
items:
  - locator: /videos/intro.mkv
  - locator: ""
  - locator: https://example.com/live.m3u8
    options: [":network-caching=1000"]
    sub_items: true
`

func TestLoad(t *testing.T) {
	Convey("Given a playlist file", t, func() {
		So(filesystem.API().WriteFile("/lists/evening.yaml", []byte(sample), 0o644), ShouldBeNil)

		p, err := Load("/lists/evening.yaml")
		So(err, ShouldBeNil)

		Convey("Blank items are dropped", func() {
			So(p.Locators(), ShouldResemble, []string{"/videos/intro.mkv", "https://example.com/live.m3u8"})
			So(p.Repeat, ShouldBeTrue)
			So(p.Items[1].SubItems, ShouldBeTrue)
		})

		Convey("Shared options come before item options", func() {
			So(p.OptionsFor(p.Items[0]), ShouldResemble, []string{":no-audio"})
			So(p.OptionsFor(p.Items[1]), ShouldResemble, []string{":no-audio", ":network-caching=1000"})
			So(p.Options, ShouldHaveLength, 1)
		})

		Convey("It survives a save and load", func() {
			So(Save("/lists/copy/evening.yaml", p), ShouldBeNil)
			again, err := Load("/lists/copy/evening.yaml")
			So(err, ShouldBeNil)
			So(again, ShouldResemble, p)
		})
	})

	Convey("A playlist without items is rejected", t, func() {
		So(filesystem.API().WriteFile("/lists/empty.yaml", []byte("items: []\n"), 0o644), ShouldBeNil)
		_, err := Load("/lists/empty.yaml")
		So(errors.Is(err, ErrEmpty), ShouldBeTrue)
	})

	Convey("Broken YAML is reported", t, func() {
		So(filesystem.API().WriteFile("/lists/broken.yaml", []byte("items: [\n"), 0o644), ShouldBeNil)
		_, err := Load("/lists/broken.yaml")
		So(err, ShouldNotBeNil)
	})

	Convey("A missing file is reported", t, func() {
		_, err := Load("/lists/nope.yaml")
		So(err, ShouldNotBeNil)
	})
}

func TestResolve(t *testing.T) {
	Convey("Bare names live in the playlists directory", t, func() {
		So(Resolve("evening"), ShouldEqual, filepath.Join(where.Playlists(), "evening.yaml"))
		So(Resolve("/lists/evening.yaml"), ShouldEqual, "/lists/evening.yaml")
		So(Resolve("evening.yml"), ShouldEqual, "evening.yml")
	})

	Convey("FromLocators keeps the order", t, func() {
		So(FromLocators("a", "b").Locators(), ShouldResemble, []string{"a", "b"})
	})
}
