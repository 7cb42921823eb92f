package event

import (
	"testing"

	"github.com/mediactl/mediactl/native"
	. "github.com/smartystreets/goconvey/convey"
)

func TestTranslate(t *testing.T) {
	Convey("Given a player translator", t, func() {
		tr := NewTranslator(FromPlayer)

		Convey("Payload fields are copied per kind", func() {
			e, ok := tr.Translate(&native.RawEvent{Type: native.PlayerTimeChanged, Int: 4200}, MaskAll)
			So(ok, ShouldBeTrue)
			So(e.Kind, ShouldEqual, TimeChanged)
			So(e.Time, ShouldEqual, 4200)

			e, ok = tr.Translate(&native.RawEvent{Type: native.PlayerSeekableChanged, Bool: true}, MaskAll)
			So(ok, ShouldBeTrue)
			So(e.Seekable, ShouldBeTrue)

			e, _ = tr.Translate(&native.RawEvent{Type: native.PlayerVout, Int: 2}, MaskAll)
			So(e.VideoOutputs, ShouldEqual, 2)
		})

		Convey("End reached and encountered error map to finished and error", func() {
			e, _ := tr.Translate(&native.RawEvent{Type: native.PlayerEndReached}, MaskAll)
			So(e.Kind, ShouldEqual, Finished)

			e, _ = tr.Translate(&native.RawEvent{Type: native.PlayerEncounteredError}, MaskAll)
			So(e.Kind, ShouldEqual, Error)
			So(e.Failed(), ShouldBeTrue)
		})

		Convey("The snapshot filename does not alias the raw buffer", func() {
			buf := []byte("/tmp/shot.png")
			e, ok := tr.Translate(&native.RawEvent{Type: native.PlayerSnapshotTaken, Text: buf}, MaskAll)
			So(ok, ShouldBeTrue)
			copy(buf, "XXXXXXXXXXXXX")
			So(e.Filename, ShouldEqual, "/tmp/shot.png")
		})

		Convey("Media range events are rejected", func() {
			_, ok := tr.Translate(&native.RawEvent{Type: native.MediaStateChanged}, MaskAll)
			So(ok, ShouldBeFalse)
		})

		Convey("Nothing-special, unknown and nil events are rejected", func() {
			_, ok := tr.Translate(&native.RawEvent{Type: native.PlayerNothingSpecial}, MaskAll)
			So(ok, ShouldBeFalse)
			_, ok = tr.Translate(&native.RawEvent{Type: 0x1ff}, MaskAll)
			So(ok, ShouldBeFalse)
			_, ok = tr.Translate(nil, MaskAll)
			So(ok, ShouldBeFalse)
		})

		Convey("Masked kinds are dropped", func() {
			mask := MaskOf(Playing, Finished)
			_, ok := tr.Translate(&native.RawEvent{Type: native.PlayerPlaying}, mask)
			So(ok, ShouldBeTrue)
			_, ok = tr.Translate(&native.RawEvent{Type: native.PlayerTimeChanged}, mask)
			So(ok, ShouldBeFalse)
		})
	})

	Convey("Given a media translator", t, func() {
		tr := NewTranslator(FromMedia)

		Convey("State and parse status are carried", func() {
			e, ok := tr.Translate(&native.RawEvent{Type: native.MediaStateChanged, Int: int64(native.StateError)}, MaskAll)
			So(ok, ShouldBeTrue)
			So(e.State, ShouldEqual, native.StateError)
			So(e.Failed(), ShouldBeTrue)

			e, _ = tr.Translate(&native.RawEvent{Type: native.MediaParsedChanged, Int: int64(native.ParseDone)}, MaskAll)
			So(e.Parse, ShouldEqual, native.ParseDone)
		})

		Convey("Player range events are rejected", func() {
			_, ok := tr.Translate(&native.RawEvent{Type: native.PlayerPlaying}, MaskAll)
			So(ok, ShouldBeFalse)
		})
	})
}

func TestKinds(t *testing.T) {
	Convey("Kinds", t, func() {
		kinds := Kinds()
		So(kinds[0], ShouldEqual, MediaChanged)
		So(kinds[len(kinds)-1], ShouldEqual, MediaStateChanged)

		k, ok := ParseKind(" Finished ")
		So(ok, ShouldBeTrue)
		So(k, ShouldEqual, Finished)

		_, ok = ParseKind("nope")
		So(ok, ShouldBeFalse)
		So(Kind(99).String(), ShouldEqual, "unknown")
	})
}
