package log

import (
	"io"
	"testing"

	"github.com/mediactl/mediactl/filesystem"
	"github.com/mediactl/mediactl/key"
	"github.com/mediactl/mediactl/where"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/viper"
)

func init() {
	filesystem.SetMemMapFs()
}

func TestSetup(t *testing.T) {
	Convey("Given logging is disabled", t, func() {
		viper.Set(key.LogsWrite, false)
		So(Setup(), ShouldBeNil)

		Convey("Component loggers discard their output", func() {
			entry := Component("dispatch")
			So(entry.Data["component"], ShouldEqual, "dispatch")
			So(entry.Logger.Out == io.Discard, ShouldBeTrue)
		})
	})

	Convey("Given logging is enabled", t, func() {
		viper.Set(key.LogsWrite, true)
		viper.Set(key.LogsLevel, "debug")
		defer viper.Set(key.LogsWrite, false)

		So(Setup(), ShouldBeNil)

		Convey("A daily log file is created", func() {
			files, err := filesystem.API().ReadDir(where.Logs())
			So(err, ShouldBeNil)
			So(len(files), ShouldEqual, 1)
		})

		Convey("Component loggers use the configured level", func() {
			So(Component("player").Logger.GetLevel().String(), ShouldEqual, "debug")
		})
	})
}
