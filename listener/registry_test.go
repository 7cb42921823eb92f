package listener

import (
	"errors"
	"testing"

	"github.com/mediactl/mediactl/event"
	"github.com/mediactl/mediactl/log"
	"github.com/mediactl/mediactl/native"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/stretchr/testify/mock"
)

type mockListener struct {
	Adapter
	mock.Mock
}

func (m *mockListener) Playing()                      { m.Called() }
func (m *mockListener) TimeChanged(ms int64)          { m.Called(ms) }
func (m *mockListener) SnapshotTaken(filename string) { m.Called(filename) }
func (m *mockListener) MediaStateChanged(s native.State) {
	m.Called(s)
}

type recorder struct {
	Adapter
	name  string
	order *[]string
	kinds []event.Kind
}

func (r *recorder) Playing() {
	*r.order = append(*r.order, r.name)
	r.kinds = append(r.kinds, event.Playing)
}

func (r *recorder) TimeChanged(int64) {
	r.kinds = append(r.kinds, event.TimeChanged)
}

type panicky struct{ Adapter }

func (panicky) TimeChanged(int64) { panic("listener bug") }
func (panicky) Playing()          { panic("listener bug") }

type unhashable struct {
	Adapter
	tags []string
}

func TestNotify(t *testing.T) {
	Convey("Notify routes events to the matching hook with its payload", t, func() {
		m := new(mockListener)
		m.On("Playing").Once()
		m.On("TimeChanged", int64(1500)).Once()
		m.On("SnapshotTaken", "/tmp/a.png").Once()
		m.On("MediaStateChanged", native.StateEnded).Once()

		Notify(m, event.Event{Kind: event.Playing})
		Notify(m, event.Event{Kind: event.TimeChanged, Time: 1500})
		Notify(m, event.Event{Kind: event.SnapshotTaken, Filename: "/tmp/a.png"})
		Notify(m, event.Event{Kind: event.MediaStateChanged, State: native.StateEnded})
		Notify(m, event.Event{Kind: event.Paused})

		So(m.AssertExpectations(t), ShouldBeTrue)
	})
}

func TestRegistry(t *testing.T) {
	Convey("Given a registry", t, func() {
		r := NewRegistry[Listener](log.Discard())
		var order []string

		a := &recorder{name: "a", order: &order}
		b := &recorder{name: "b", order: &order}
		c := &recorder{name: "c", order: &order}

		Convey("Listeners are notified newest first", func() {
			So(r.Add(a), ShouldBeNil)
			So(r.Add(b), ShouldBeNil)
			So(r.Add(c), ShouldBeNil)

			Broadcast(r, event.Event{Kind: event.Playing})
			So(order, ShouldResemble, []string{"c", "b", "a"})
		})

		Convey("Adding twice keeps one registration", func() {
			So(r.Add(a), ShouldBeNil)
			So(r.Add(b), ShouldBeNil)
			So(r.Add(a), ShouldBeNil)
			So(r.Len(), ShouldEqual, 2)

			Broadcast(r, event.Event{Kind: event.Playing})
			So(order, ShouldResemble, []string{"b", "a"})
		})

		Convey("Removed listeners are not notified", func() {
			_ = r.Add(a)
			_ = r.Add(b)
			So(r.Remove(a), ShouldBeTrue)
			So(r.Remove(a), ShouldBeFalse)

			Broadcast(r, event.Event{Kind: event.Playing})
			So(order, ShouldResemble, []string{"b"})
		})

		Convey("A failing listener does not stop delivery to the others", func() {
			_ = r.Add(a)
			_ = r.Add(panicky{})

			failures := 0
			for i := 0; i < 100; i++ {
				failures += Broadcast(r, event.Event{Kind: event.TimeChanged, Time: int64(i)})
			}
			So(failures, ShouldEqual, 100)
			So(len(a.kinds), ShouldEqual, 100)
		})

		Convey("Non comparable listeners are rejected", func() {
			err := r.Add(unhashable{tags: []string{"x"}})
			So(errors.Is(err, ErrNotComparable), ShouldBeTrue)
			So(r.Remove(unhashable{}), ShouldBeFalse)
			So(r.Len(), ShouldEqual, 0)
		})

		Convey("Clear empties the registry", func() {
			_ = r.Add(a)
			_ = r.Add(b)
			r.Clear()
			So(r.Len(), ShouldEqual, 0)
			Broadcast(r, event.Event{Kind: event.Playing})
			So(order, ShouldBeEmpty)
		})
	})
}
