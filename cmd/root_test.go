package cmd

import (
	"path/filepath"
	"testing"

	"github.com/mediactl/mediactl/filesystem"
	"github.com/mediactl/mediactl/where"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/afero"
)

func TestCleanTemp(t *testing.T) {
	Convey("Given leftovers in the temp directory", t, func() {
		leftover := filepath.Join(where.Temp(), "old-snapshot.png")
		So(afero.WriteFile(filesystem.API().Fs, leftover, []byte("png"), 0o644), ShouldBeNil)

		Convey("They are removed", func() {
			So(cleanTemp(), ShouldBeNil)
			exists, err := filesystem.API().Exists(leftover)
			So(err, ShouldBeNil)
			So(exists, ShouldBeFalse)

			Convey("and cleaning again is harmless", func() {
				So(cleanTemp(), ShouldBeNil)
			})
		})
	})
}
