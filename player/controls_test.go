package player

import (
	"errors"
	"testing"

	"github.com/mediactl/mediactl/native"
	"github.com/mediactl/mediactl/native/fake"
	. "github.com/smartystreets/goconvey/convey"
)

func TestControls(t *testing.T) {
	Convey("Given a playing controller", t, func() {
		e := fake.New(
			fake.WithTracks("movie.mkv", native.TrackInfo{ID: 1, Type: native.TrackVideo, Width: 1920, Height: 1080}),
		)
		c := newTestController(e)
		defer c.Release()
		p := playerOf(e)
		So(c.PlayMedia("movie.mkv"), ShouldBeNil)

		Convey("Skip moves relative to the current time and stops at zero", func() {
			So(c.SetTime(1000), ShouldBeNil)
			So(c.Skip(1500), ShouldBeNil)
			ms, _ := c.Time()
			So(ms, ShouldEqual, int64(2500))

			So(c.Skip(-5000), ShouldBeNil)
			ms, _ = c.Time()
			So(ms, ShouldEqual, int64(0))
		})

		Convey("SkipPosition stays within the media", func() {
			So(c.SetPosition(0.9), ShouldBeNil)
			So(c.SkipPosition(0.5), ShouldBeNil)
			pos, _ := c.Position()
			So(pos, ShouldEqual, float32(1))
		})

		Convey("Subtitle selection is range checked", func() {
			So(errors.Is(c.SetSpu(1), ErrOutOfRange), ShouldBeTrue)

			So(e.SetInt(p, native.ParamSpuCount, 3), ShouldBeNil)
			So(c.SetSpu(2), ShouldBeNil)
			spu, _ := c.Spu()
			So(spu, ShouldEqual, 2)
			So(errors.Is(c.SetSpu(4), ErrOutOfRange), ShouldBeTrue)

			Convey("and cycles back to zero after the last track", func() {
				So(c.CycleSpu(), ShouldBeNil)
				spu, _ = c.Spu()
				So(spu, ShouldEqual, 3)

				So(c.CycleSpu(), ShouldBeNil)
				spu, _ = c.Spu()
				So(spu, ShouldEqual, 0)
			})
		})

		Convey("Overlay opacity is scaled to a byte", func() {
			So(c.SetLogoOpacity(0.5), ShouldBeNil)
			So(e.Int(p, native.ParamLogoOpacity), ShouldEqual, 128)
			So(c.SetMarqueeOpacity(1), ShouldBeNil)
			So(e.Int(p, native.ParamMarqueeOpacity), ShouldEqual, 255)
		})

		Convey("Marquee colour drops the alpha channel", func() {
			So(c.SetMarqueeColor(0xff112233), ShouldBeNil)
			So(e.Int(p, native.ParamMarqueeColor), ShouldEqual, 0x112233)
		})

		Convey("Locations set both coordinates", func() {
			So(c.SetLogoLocation(10, 20), ShouldBeNil)
			So(e.Int(p, native.ParamLogoX), ShouldEqual, 10)
			So(e.Int(p, native.ParamLogoY), ShouldEqual, 20)
		})

		Convey("Mute toggles", func() {
			muted, err := c.ToggleMute()
			So(err, ShouldBeNil)
			So(muted, ShouldBeTrue)
			muted, _ = c.IsMute()
			So(muted, ShouldBeTrue)

			muted, _ = c.ToggleMute()
			So(muted, ShouldBeFalse)
		})

		Convey("Video dimension needs a video output", func() {
			dim, err := c.VideoDimension()
			So(err, ShouldBeNil)
			So(dim.IsAbsent(), ShouldBeTrue)

			e.SetVideoOutputs(1)
			dim, _ = c.VideoDimension()
			So(dim.MustGet(), ShouldResemble, Dimension{Width: 640, Height: 360})
		})

		Convey("Media details are only available while playing", func() {
			details, err := c.MediaDetails()
			So(err, ShouldBeNil)
			So(details.MustGet().SpuDescriptions, ShouldHaveLength, 2)

			So(c.Stop(), ShouldBeNil)
			details, _ = c.MediaDetails()
			So(details.IsAbsent(), ShouldBeTrue)
		})

		Convey("Statistics exist while playing", func() {
			stats, err := c.MediaStatistics()
			So(err, ShouldBeNil)
			So(stats.IsPresent(), ShouldBeTrue)
		})

		Convey("Tracks are reported after parsing", func() {
			tracks, _ := c.TrackInfo()
			So(tracks, ShouldBeEmpty)

			So(c.ParseMedia(), ShouldBeNil)
			tracks, _ = c.TrackInfo()
			So(tracks, ShouldHaveLength, 1)
			So(tracks[0].Width, ShouldEqual, uint32(1920))
		})

		Convey("Chapters step through the engine", func() {
			So(c.NextChapter(), ShouldBeNil)
			So(c.NextChapter(), ShouldBeNil)
			So(c.PreviousChapter(), ShouldBeNil)
			chapter, _ := c.Chapter()
			So(chapter, ShouldEqual, 1)
		})

		Convey("An audio output device can be selected", func() {
			So(c.SelectAudioOutputDevice("pulse", "alsa_output.usb"), ShouldBeNil)
			So(e.String(p, native.ParamAudioOutput), ShouldEqual, "pulse")
			device, err := c.AudioOutputDevice()
			So(err, ShouldBeNil)
			So(device, ShouldEqual, "alsa_output.usb")

			Convey("and an empty module keeps the current one", func() {
				So(c.SelectAudioOutputDevice("", "hdmi"), ShouldBeNil)
				So(e.String(p, native.ParamAudioOutput), ShouldEqual, "pulse")
				device, _ = c.AudioOutputDevice()
				So(device, ShouldEqual, "hdmi")
			})

			So(c.SetAudioOutputDeviceType(2), ShouldBeNil)
			kind, _ := c.AudioOutputDeviceType()
			So(kind, ShouldEqual, 2)
		})

		Convey("Menu and frame commands reach the engine", func() {
			So(c.MenuUp(), ShouldBeNil)
			So(c.MenuActivate(), ShouldBeNil)
			So(e.Calls("Navigate"), ShouldEqual, 2)

			So(c.SetPause(true), ShouldBeNil)
			So(c.NextFrame(), ShouldBeNil)
			So(e.Calls("NextFrame"), ShouldEqual, 1)

			fps, err := c.Fps()
			So(err, ShouldBeNil)
			So(fps, ShouldEqual, float32(25))
		})

		Convey("Forwarders fail once released", func() {
			c.Release()
			So(errors.Is(c.MenuDown(), ErrReleased), ShouldBeTrue)
			So(errors.Is(c.SelectAudioOutputDevice("pulse", "x"), ErrReleased), ShouldBeTrue)
			_, err := c.ChapterCount()
			So(errors.Is(err, ErrReleased), ShouldBeTrue)
		})

		Convey("An invalid rate is rejected by the engine", func() {
			So(c.SetRate(0), ShouldNotBeNil)
			So(c.SetRate(1.5), ShouldBeNil)
			rate, _ := c.Rate()
			So(rate, ShouldEqual, float32(1.5))
		})
	})
}
