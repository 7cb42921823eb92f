package prune

import (
	"testing"
	"time"

	"github.com/mediactl/mediactl/filesystem"
	"github.com/samber/lo"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	filesystem.SetMemMapFs()
}

func TestOlder(t *testing.T) {
	Convey("Given a directory with old and new snapshots", t, func() {
		fs := filesystem.API()
		So(fs.MkdirAll("/snaps/nested", 0o755), ShouldBeNil)
		for _, name := range []string{"/snaps/old.png", "/snaps/nested/old.png", "/snaps/new.png"} {
			So(fs.WriteFile(name, []byte("png"), 0o644), ShouldBeNil)
		}
		past := time.Now().Add(-48 * time.Hour)
		So(fs.Chtimes("/snaps/old.png", past, past), ShouldBeNil)
		So(fs.Chtimes("/snaps/nested/old.png", past, past), ShouldBeNil)

		Convey("Only files past the retention are removed", func() {
			removed, err := Older("/snaps", 24*time.Hour)
			So(err, ShouldBeNil)
			So(removed, ShouldEqual, 2)
			So(lo.Must(fs.Exists("/snaps/new.png")), ShouldBeTrue)
			So(lo.Must(fs.Exists("/snaps/old.png")), ShouldBeFalse)
			So(lo.Must(fs.IsDir("/snaps/nested")), ShouldBeTrue)
		})

		Convey("A zero retention keeps everything", func() {
			removed, err := Older("/snaps", 0)
			So(err, ShouldBeNil)
			So(removed, ShouldEqual, 0)
		})
	})
}
