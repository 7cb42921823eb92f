package dispatch

import (
	"sync"
	"testing"
	"time"

	"github.com/mediactl/mediactl/log"
	. "github.com/smartystreets/goconvey/convey"
	"go.uber.org/goleak"
)

func waitDone(q *Queue) bool {
	select {
	case <-q.Done():
		return true
	case <-time.After(2 * time.Second):
		return false
	}
}

func TestQueue(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	Convey("Given a running queue", t, func() {
		q := New("test", log.Discard())
		defer q.Shutdown()

		Convey("Tasks run in submission order even when one is slow", func() {
			var (
				mu  sync.Mutex
				got []int
				wg  sync.WaitGroup
			)
			wg.Add(100)
			for i := 0; i < 100; i++ {
				i := i
				So(q.Submit(func() {
					defer wg.Done()
					if i == 10 {
						time.Sleep(20 * time.Millisecond)
					}
					mu.Lock()
					got = append(got, i)
					mu.Unlock()
				}), ShouldBeTrue)
			}
			wg.Wait()

			So(len(got), ShouldEqual, 100)
			for i, v := range got {
				So(v, ShouldEqual, i)
			}
		})

		Convey("A panicking task does not stop the worker", func() {
			ran := make(chan struct{})
			q.Submit(func() { panic("boom") })
			q.Submit(func() { close(ran) })

			select {
			case <-ran:
			case <-time.After(2 * time.Second):
				So("second task", ShouldBeEmpty)
			}
		})

		Convey("Submit does not block while the worker is busy", func() {
			release := make(chan struct{})
			q.Submit(func() { <-release })

			start := time.Now()
			for i := 0; i < 1000; i++ {
				q.Submit(func() {})
			}
			So(time.Since(start), ShouldBeLessThan, time.Second)
			So(q.Len(), ShouldBeGreaterThan, 0)
			close(release)
		})

		Convey("After shutdown", func() {
			block := make(chan struct{})
			started := make(chan struct{})
			abandoned := make(chan struct{}, 1)
			q.Submit(func() { close(started); <-block })
			q.Submit(func() { abandoned <- struct{}{} })
			<-started

			q.Shutdown()
			q.Shutdown()
			close(block)

			Convey("pending tasks are abandoned and the worker exits", func() {
				So(waitDone(q), ShouldBeTrue)
				So(len(abandoned), ShouldEqual, 0)
				So(q.Len(), ShouldEqual, 0)
			})

			Convey("new tasks are refused", func() {
				So(q.Submit(func() {}), ShouldBeFalse)
			})
		})
	})
}
