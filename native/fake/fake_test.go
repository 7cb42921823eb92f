package fake

import (
	"testing"
	"time"

	"github.com/mediactl/mediactl/native"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/afero"
)

func TestEngine(t *testing.T) {
	Convey("Given a fake engine", t, func() {
		e := New(WithSubItems("list.m3u", "a.mp4", "b.mp4"))
		inst, err := e.NewInstance(nil)
		So(err, ShouldBeNil)
		p, err := e.NewPlayer(inst)
		So(err, ShouldBeNil)

		Convey("Handles are counted and double frees detected", func() {
			m, err := e.NewMedia(inst, "movie.mkv")
			So(err, ShouldBeNil)
			So(e.LiveMedia(), ShouldEqual, 1)

			e.ReleaseMedia(m)
			e.ReleaseMedia(m)
			So(e.LiveMedia(), ShouldEqual, 0)
			So(e.DoubleFrees(), ShouldEqual, 1)
		})

		Convey("A player keeps its media alive until replaced or released", func() {
			m, _ := e.NewMedia(inst, "movie.mkv")
			e.SetMedia(p, m)
			e.ReleaseMedia(m)
			So(e.LiveMedia(), ShouldEqual, 1)
			So(e.Play(p), ShouldBeNil)

			e.ReleasePlayer(p)
			So(e.LiveMedia(), ShouldEqual, 0)
			So(e.DoubleFrees(), ShouldEqual, 0)
		})

		Convey("Emitted text is overwritten after the callback returns", func() {
			var view []byte
			var copied string
			So(e.EventAttach(e.PlayerEventManager(p), native.PlayerSnapshotTaken, func(ev *native.RawEvent) {
				view = ev.Text
				copied = string(ev.Text)
			}, 1), ShouldBeNil)

			e.EmitPlayer(p, native.PlayerSnapshotTaken, func(ev *native.RawEvent) {
				ev.Text = e.Text("/tmp/shot.png")
			})

			So(copied, ShouldEqual, "/tmp/shot.png")
			So(string(view), ShouldNotEqual, "/tmp/shot.png")
		})

		Convey("Detached callbacks are not invoked", func() {
			calls := 0
			em := e.PlayerEventManager(p)
			So(e.EventAttach(em, native.PlayerPlaying, func(*native.RawEvent) { calls++ }, 7), ShouldBeNil)
			e.EmitPlayer(p, native.PlayerPlaying, nil)
			e.EventDetach(em, native.PlayerPlaying, 7)
			e.EmitPlayer(p, native.PlayerPlaying, nil)
			So(calls, ShouldEqual, 1)
		})

		Convey("Sub-item lists honour the lock protocol", func() {
			m, _ := e.NewMedia(inst, "list.m3u")
			l := e.MediaSubItems(m)
			e.ListLock(l)
			So(e.ListCount(l), ShouldEqual, 2)
			item := e.ListItemAt(l, 1)
			So(e.MediaLocator(item), ShouldEqual, "b.mp4")
			e.ListUnlock(l)
			e.ListRelease(l)
			e.ReleaseMedia(item)
			So(e.UnlockedListAccesses(), ShouldEqual, 0)

			l = e.MediaSubItems(m)
			_ = e.ListCount(l)
			So(e.UnlockedListAccesses(), ShouldEqual, 1)
		})

		Convey("Snapshots are written to the configured filesystem", func() {
			fs := afero.NewMemMapFs()
			e := New(WithFs(fs))
			inst, _ := e.NewInstance(nil)
			p, _ := e.NewPlayer(inst)
			So(fs.MkdirAll("/shots", 0o755), ShouldBeNil)
			So(e.TakeSnapshot(p, "/shots/a.png", 32, 16), ShouldBeNil)
			exists, _ := afero.Exists(fs, "/shots/a.png")
			So(exists, ShouldBeTrue)
		})

		Convey("A timeline raises the playback events in order", func() {
			e := New(WithTimeline(300 * time.Millisecond))
			inst, _ := e.NewInstance(nil)
			p, _ := e.NewPlayer(inst)
			m, _ := e.NewMedia(inst, "clip.mp4")
			e.SetMedia(p, m)

			seen := make(chan native.EventType, 64)
			for _, typ := range []native.EventType{native.PlayerOpening, native.PlayerPlaying, native.PlayerEndReached} {
				So(e.EventAttach(e.PlayerEventManager(p), typ, func(ev *native.RawEvent) { seen <- ev.Type }, 1), ShouldBeNil)
			}

			So(e.Play(p), ShouldBeNil)
			So(<-seen, ShouldEqual, native.PlayerOpening)
			So(<-seen, ShouldEqual, native.PlayerPlaying)
			select {
			case typ := <-seen:
				So(typ, ShouldEqual, native.PlayerEndReached)
			case <-time.After(3 * time.Second):
				So("end reached", ShouldBeEmpty)
			}
			So(e.VideoOutputCount(p), ShouldEqual, 1)
		})
	})
}
