package player

import (
	"testing"
	"time"

	"github.com/mediactl/mediactl/native"
	"github.com/mediactl/mediactl/native/fake"
	. "github.com/smartystreets/goconvey/convey"
	"go.uber.org/goleak"
)

func TestSubItems(t *testing.T) {
	Convey("Given media with three sub-items", t, func() {
		Convey("Chaining plays every sub-item once and stops", func() {
			e := fake.New(
				fake.WithSubItems("list.m3u", "a.mp4", "b.mp4", "c.mp4"),
				fake.WithTimeline(time.Millisecond),
			)
			c := newTestController(e, WithPlaySubItems(true))
			defer c.Release()

			So(c.PlayMedia("list.m3u"), ShouldBeNil)
			So(eventually(func() bool { return len(e.Played()) == 4 }), ShouldBeTrue)
			So(eventually(func() bool {
				idx, _ := c.SubItemIndex()
				return idx == -1
			}), ShouldBeTrue)

			time.Sleep(400 * time.Millisecond)
			So(e.Played(), ShouldResemble, []string{"list.m3u", "a.mp4", "b.mp4", "c.mp4"})
			So(e.UnlockedListAccesses(), ShouldEqual, 0)

			locator, err := c.Locator()
			So(err, ShouldBeNil)
			So(locator, ShouldEqual, "list.m3u")
		})

		Convey("With repeat on the chain wraps and the parent is not replayed", func() {
			e := fake.New(
				fake.WithSubItems("list.m3u", "a.mp4", "b.mp4", "c.mp4"),
				fake.WithTimeline(time.Millisecond),
			)
			c := newTestController(e, WithPlaySubItems(true), WithRepeat(true))
			defer c.Release()

			So(c.PlayMedia("list.m3u"), ShouldBeNil)
			So(eventually(func() bool { return len(e.Played()) >= 6 }), ShouldBeTrue)
			So(e.Played()[:6], ShouldResemble, []string{"list.m3u", "a.mp4", "b.mp4", "c.mp4", "a.mp4", "b.mp4"})
		})

		Convey("Sub-items can be played and listed directly", func() {
			e := fake.New(fake.WithSubItems("list.m3u", "a.mp4", "b.mp4", "c.mp4"))
			c := newTestController(e, WithStandardMediaOptions(":std"))
			defer c.Release()
			p := playerOf(e)

			count, err := c.SubItemCount()
			So(err, ShouldBeNil)
			So(count, ShouldEqual, 0)

			_, _ = c.PrepareMedia("list.m3u")

			items, err := c.SubItems()
			So(err, ShouldBeNil)
			So(items, ShouldResemble, []string{"a.mp4", "b.mp4", "c.mp4"})

			metas, err := c.SubItemMediaMeta()
			So(err, ShouldBeNil)
			So(metas, ShouldHaveLength, 3)
			So(metas[2].Title, ShouldEqual, "c.mp4")

			ok, err := c.PlaySubItem(1, ":sub")
			So(err, ShouldBeNil)
			So(ok, ShouldBeTrue)
			So(e.Played(), ShouldResemble, []string{"b.mp4"})
			So(e.MediaOptions(e.PlayerMedia(p)), ShouldResemble, []string{":std", ":sub"})

			ok, err = c.PlayNextSubItem()
			So(ok, ShouldBeTrue)
			So(err, ShouldBeNil)

			ok, err = c.PlayNextSubItem()
			So(ok, ShouldBeFalse)
			So(err, ShouldBeNil)

			idx, _ := c.SubItemIndex()
			So(idx, ShouldEqual, -1)
			So(e.Played(), ShouldResemble, []string{"b.mp4", "c.mp4"})
			So(e.UnlockedListAccesses(), ShouldEqual, 0)

			c.Release()
			So(e.LiveMedia(), ShouldEqual, 0)
			So(e.Released("list"), ShouldEqual, e.Created("list"))
		})

		Convey("Playing past the end wraps only with repeat", func() {
			e := fake.New(fake.WithSubItems("list.m3u", "a.mp4", "b.mp4"))
			c := newTestController(e)
			defer c.Release()
			_, _ = c.PrepareMedia("list.m3u")

			ok, _ := c.PlaySubItem(5)
			So(ok, ShouldBeFalse)

			So(c.SetRepeat(true), ShouldBeNil)
			ok, _ = c.PlaySubItem(5)
			So(ok, ShouldBeTrue)
			So(e.Played(), ShouldResemble, []string{"a.mp4"})
		})
	})
}

func TestAutoRepeat(t *testing.T) {
	Convey("Given a short media", t, func() {
		e := fake.New(fake.WithTimeline(time.Millisecond))

		Convey("Repeat replays it when it finishes", func() {
			c := newTestController(e, WithRepeat(true), WithStandardMediaOptions(":loop-std"))
			defer c.Release()

			So(c.PlayMedia("clip.mp4"), ShouldBeNil)
			So(eventually(func() bool { return len(e.Played()) >= 3 }), ShouldBeTrue)
			for _, locator := range e.Played() {
				So(locator, ShouldEqual, "clip.mp4")
			}
			So(e.Created("media"), ShouldBeGreaterThanOrEqualTo, 3)
			So(e.MediaOptions(e.PlayerMedia(playerOf(e))), ShouldResemble, []string{":loop-std"})
		})

		Convey("Without repeat or sub-items playback ends after one run", func() {
			c := newTestController(e)
			defer c.Release()

			j := new(journal)
			So(c.AddListener(&recorder{name: "r", j: j}), ShouldBeNil)
			So(c.PlayMedia("clip.mp4"), ShouldBeNil)

			So(eventually(func() bool {
				for _, entry := range j.list() {
					if entry == "r:finished" {
						return true
					}
				}
				return false
			}), ShouldBeTrue)
			time.Sleep(300 * time.Millisecond)
			So(e.Played(), ShouldResemble, []string{"clip.mp4"})
		})
	})
}

type videoProbe struct {
	results chan bool
}

func (v *videoProbe) VideoOutputAvailable(ok bool) {
	v.results <- ok
}

func TestVideoOutputDetection(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	Convey("Given a controller with a video output listener", t, func() {
		e := fake.New()
		c := newTestController(e, WithVideoOutputWait(10*time.Millisecond, 100*time.Millisecond))
		defer c.Release()
		p := playerOf(e)

		probe := &videoProbe{results: make(chan bool, 4)}
		So(c.AddVideoOutputListener(probe), ShouldBeNil)

		Convey("An output that appears is reported", func() {
			e.SetVideoOutputs(1)
			e.EmitPlayer(p, native.PlayerPlaying, nil)

			select {
			case ok := <-probe.results:
				So(ok, ShouldBeTrue)
			case <-time.After(2 * time.Second):
				So("no report", ShouldBeEmpty)
			}
		})

		Convey("A missing output is reported after the timeout", func() {
			start := time.Now()
			e.EmitPlayer(p, native.PlayerPlaying, nil)

			select {
			case ok := <-probe.results:
				So(ok, ShouldBeFalse)
				So(time.Since(start), ShouldBeGreaterThanOrEqualTo, 100*time.Millisecond)
			case <-time.After(2 * time.Second):
				So("no report", ShouldBeEmpty)
			}
		})

		Convey("No poll runs without a listener", func() {
			So(c.RemoveVideoOutputListener(probe), ShouldBeNil)
			before := e.Calls("VideoOutputCount")

			e.EmitPlayer(p, native.PlayerPlaying, nil)
			time.Sleep(60 * time.Millisecond)
			So(e.Calls("VideoOutputCount"), ShouldEqual, before)
		})

		Convey("Release cancels a running poll", func() {
			So(c.SetVideoOutputWait(10*time.Millisecond, 5*time.Second), ShouldBeNil)
			e.EmitPlayer(p, native.PlayerPlaying, nil)
			time.Sleep(40 * time.Millisecond)

			c.Release()
			time.Sleep(100 * time.Millisecond)
			So(probe.results, ShouldHaveLength, 0)
		})
	})
}
