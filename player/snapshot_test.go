package player

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mediactl/mediactl/filesystem"
	"github.com/mediactl/mediactl/native/fake"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/afero"
)

func TestSnapshot(t *testing.T) {
	Convey("Given a playing controller", t, func() {
		filesystem.SetMemMapFs()
		e := fake.New(fake.WithFs(filesystem.API().Fs))
		c := newTestController(e, WithSnapshotDirectory("/snaps"))
		defer c.Release()

		j := new(journal)
		So(c.AddListener(&recorder{name: "r", j: j}), ShouldBeNil)
		So(c.PlayMedia("movie.mkv"), ShouldBeNil)

		Convey("A snapshot is written to the requested path", func() {
			path, err := c.SaveSnapshot("/shots/deep/a.png")
			So(err, ShouldBeNil)
			So(path, ShouldEqual, "/shots/deep/a.png")

			exists, err := filesystem.API().Exists(path)
			So(err, ShouldBeNil)
			So(exists, ShouldBeTrue)

			So(eventually(func() bool {
				for _, entry := range j.list() {
					if entry == "r:snapshot:/shots/deep/a.png" {
						return true
					}
				}
				return false
			}), ShouldBeTrue)
		})

		Convey("An empty path lands in the snapshot directory", func() {
			path, err := c.SaveSnapshot("")
			So(err, ShouldBeNil)
			So(strings.HasPrefix(path, "/snaps/mediactl-snapshot-"), ShouldBeTrue)
			So(strings.HasSuffix(path, ".png"), ShouldBeTrue)
		})

		Convey("Snapshots can be read back as images", func() {
			img, err := c.Snapshot()
			So(err, ShouldBeNil)
			So(img.Bounds().Dx(), ShouldEqual, 64)
			So(img.Bounds().Dy(), ShouldEqual, 36)

			thumb, err := c.Thumbnail(32, 32)
			So(err, ShouldBeNil)
			So(thumb.Bounds().Dx(), ShouldEqual, 32)
			So(thumb.Bounds().Dy(), ShouldEqual, 18)
		})

		Convey("A sized snapshot keeps the requested size", func() {
			path, err := c.SaveSnapshotSized("/shots/small.png", 16, 9)
			So(err, ShouldBeNil)
			info, err := filesystem.API().Stat(path)
			So(err, ShouldBeNil)
			So(info.Size(), ShouldBeGreaterThan, 0)
		})
	})

	Convey("Given a filesystem that refuses new directories", t, func() {
		filesystem.Use(afero.NewReadOnlyFs(afero.NewMemMapFs()))
		defer filesystem.SetMemMapFs()

		c := newTestController(fake.New(fake.WithFs(filesystem.API().Fs)))
		defer c.Release()
		So(c.PlayMedia("movie.mkv"), ShouldBeNil)

		Convey("The snapshot fails with a directory error and the controller stays usable", func() {
			_, err := c.SaveSnapshot("/shots/a.png")
			So(errors.Is(err, ErrSnapshotDirectory), ShouldBeTrue)
			So(c.Released(), ShouldBeFalse)
			So(c.Pause(), ShouldBeNil)
		})
	})

	Convey("A released controller takes no snapshots", t, func() {
		filesystem.SetMemMapFs()
		e := fake.New(fake.WithFs(filesystem.API().Fs))
		c := newTestController(e)
		c.Release()

		_, err := c.SaveSnapshot("/a.png")
		So(errors.Is(err, ErrReleased), ShouldBeTrue)

		Convey("and decoding one does not touch the filesystem", func() {
			img, err := c.Snapshot()
			So(img, ShouldBeNil)
			So(errors.Is(err, ErrReleased), ShouldBeTrue)

			_, err = c.Thumbnail(16, 16)
			So(errors.Is(err, ErrReleased), ShouldBeTrue)

			leftovers, _ := afero.Glob(filesystem.API().Fs, filepath.Join(os.TempDir(), "mediactl-snapshot-*"))
			So(leftovers, ShouldBeEmpty)
			So(e.Calls("TakeSnapshot"), ShouldEqual, 0)
		})
	})
}
