// Package dispatch runs tasks one at a time, in submission order, on a dedicated worker goroutine.
package dispatch

import (
	"fmt"
	"runtime/debug"
	"sync"
	"time"

	"github.com/mediactl/mediactl/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
)

// Task is a unit of work run by the queue worker.
type Task func()

// Queue is an unbounded FIFO served by a single worker.
//
// Submit never blocks, so it is safe to call from an engine callback. Tasks queued
// when Shutdown is called are abandoned.
type Queue struct {
	name   string
	logger *logrus.Entry

	mu     sync.Mutex
	tasks  []Task
	closed bool

	signal chan struct{}
	quit   chan struct{}
	done   chan struct{}

	depth    prometheus.Gauge
	ok       prometheus.Counter
	panicked prometheus.Counter
	duration prometheus.Observer
}

// New starts a queue worker. name labels the queue in logs and metrics.
func New(name string, logger *logrus.Entry) *Queue {
	q := &Queue{
		name:     name,
		logger:   logger.WithField("queue", name),
		signal:   make(chan struct{}, 1),
		quit:     make(chan struct{}),
		done:     make(chan struct{}),
		depth:    metrics.QueueDepth.WithLabelValues(name),
		ok:       metrics.TasksProcessed.WithLabelValues(name, "ok"),
		panicked: metrics.TasksProcessed.WithLabelValues(name, "panic"),
		duration: metrics.TaskDuration.WithLabelValues(name),
	}
	go q.run()
	return q
}

// Submit enqueues task and returns immediately. It returns false once the queue is shut down.
func (q *Queue) Submit(task Task) bool {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return false
	}
	q.tasks = append(q.tasks, task)
	q.depth.Set(float64(len(q.tasks)))
	q.mu.Unlock()

	select {
	case q.signal <- struct{}{}:
	default:
	}
	return true
}

// Len reports the number of tasks waiting to run.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.tasks)
}

// Shutdown stops admitting tasks and abandons those still queued. It does not wait
// for a running task; use Done for that. Calling it more than once is harmless.
func (q *Queue) Shutdown() {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		return
	}
	q.closed = true
	if n := len(q.tasks); n > 0 {
		q.logger.WithField("abandoned", n).Debug("queue shut down with pending tasks")
	}
	q.tasks = nil
	q.depth.Set(0)
	close(q.quit)
}

// Done is closed when the worker has exited.
func (q *Queue) Done() <-chan struct{} {
	return q.done
}

func (q *Queue) run() {
	defer close(q.done)
	for {
		select {
		case <-q.quit:
			return
		case <-q.signal:
		}

		for {
			task, ok := q.next()
			if !ok {
				break
			}
			q.exec(task)
		}
	}
}

func (q *Queue) next() (Task, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed || len(q.tasks) == 0 {
		return nil, false
	}
	task := q.tasks[0]
	q.tasks[0] = nil
	q.tasks = q.tasks[1:]
	q.depth.Set(float64(len(q.tasks)))
	return task, true
}

func (q *Queue) exec(task Task) {
	start := time.Now()
	defer func() {
		q.duration.Observe(time.Since(start).Seconds())
		if r := recover(); r != nil {
			q.panicked.Inc()
			q.logger.WithField("panic", fmt.Sprint(r)).
				WithField("stack", string(debug.Stack())).
				Error("dispatch task panicked")
			return
		}
		q.ok.Inc()
	}()
	task()
}
