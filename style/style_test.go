package style

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	. "github.com/smartystreets/goconvey/convey"
)

func TestRenderers(t *testing.T) {
	Convey("Without a color profile text passes through", t, func() {
		lipgloss.SetColorProfile(termenv.Ascii)

		So(Bold("mediactl"), ShouldEqual, "mediactl")
		So(Fg("1")("x"), ShouldEqual, "x")
		So(Tag("1", "2")("x"), ShouldEqual, " x ")
		So(Status("playing"), ShouldEqual, " playing ")
		So(Status("media-bound"), ShouldEqual, " media-bound ")
	})
}
