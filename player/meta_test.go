package player

import (
	"errors"
	"testing"

	"github.com/mediactl/mediactl/native"
	"github.com/mediactl/mediactl/native/fake"
	. "github.com/smartystreets/goconvey/convey"
)

func TestMediaMeta(t *testing.T) {
	Convey("Given bound media with an artist", t, func() {
		e := fake.New(fake.WithMeta("/music/song.flac", native.MetaArtist, "Nina"))
		c := newTestController(e)
		defer c.Release()

		_, err := c.MetaField(native.MetaArtist)
		So(errors.Is(err, ErrNoMedia), ShouldBeTrue)

		ok, err := c.PrepareMedia("/music/song.flac")
		So(ok, ShouldBeTrue)
		So(err, ShouldBeNil)

		Convey("Every field is copied", func() {
			meta, err := c.MediaMeta()
			So(err, ShouldBeNil)
			So(meta.Locator, ShouldEqual, "/music/song.flac")
			So(meta.Artist, ShouldEqual, "Nina")
			So(meta.Title, ShouldEqual, "song.flac")
			So(meta.Get(native.MetaArtist), ShouldEqual, "Nina")
			So(meta.Present(), ShouldResemble, []native.Meta{native.MetaTitle, native.MetaArtist})
		})

		Convey("A single field can be read", func() {
			artist, err := c.MetaField(native.MetaArtist)
			So(err, ShouldBeNil)
			So(artist, ShouldEqual, "Nina")

			genre, _ := c.MetaField(native.MetaGenre)
			So(genre, ShouldBeEmpty)
		})
	})

	Convey("Field names match loosely", t, func() {
		So(MatchFields("art")[0], ShouldEqual, native.MetaArtist)
		So(MatchFields("nowplay")[0], ShouldEqual, native.MetaNowPlaying)
		So(MatchFields("zzz"), ShouldBeEmpty)
	})
}
