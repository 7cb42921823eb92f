package filesystem

import (
	"os"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/afero"
)

func TestBackend(t *testing.T) {
	Convey("Given the filesystem backend", t, func() {
		Convey("It can be switched to the OS", func() {
			SetOsFs()
			So(API().Name(), ShouldEqual, "OsFs")
		})

		Convey("It can be switched to memory", func() {
			SetMemMapFs()
			So(API().Name(), ShouldEqual, "MemMapFS")
		})

		Convey("Use installs any afero filesystem", func() {
			Use(afero.NewReadOnlyFs(afero.NewMemMapFs()))
			defer SetMemMapFs()

			So(API().MkdirAll("/snapshots", os.ModePerm), ShouldNotBeNil)
		})

		Convey("GacheFs goes through the active backend", func() {
			SetMemMapFs()
			var g GacheFs

			So(g.MkdirAll("/history", os.ModePerm), ShouldBeNil)
			f, err := g.OpenFile("/history/played.json", os.O_CREATE|os.O_RDWR, 0o644)
			So(err, ShouldBeNil)
			_, err = f.Write([]byte("{}"))
			So(err, ShouldBeNil)
			So(f.Close(), ShouldBeNil)

			exists, _ := API().Exists("/history/played.json")
			So(exists, ShouldBeTrue)
		})
	})
}
