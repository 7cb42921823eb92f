package listener

import (
	"errors"
	"fmt"
	"reflect"
	"sync"

	"github.com/mediactl/mediactl/event"
	"github.com/mediactl/mediactl/metrics"
	"github.com/sirupsen/logrus"
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// ErrNotComparable is returned when a listener value cannot be used as a registry key.
// Register pointers.
var ErrNotComparable = errors.New("listener is not comparable")

// Registry keeps listeners in registration order and notifies them newest first.
type Registry[L comparable] struct {
	logger *logrus.Entry

	mu    sync.RWMutex
	items *orderedmap.OrderedMap[L, struct{}]
}

// NewRegistry returns an empty registry.
func NewRegistry[L comparable](logger *logrus.Entry) *Registry[L] {
	return &Registry[L]{
		logger: logger,
		items:  orderedmap.New[L, struct{}](),
	}
}

// Add registers l. Adding a listener twice keeps its original position.
func (r *Registry[L]) Add(l L) error {
	if t := reflect.TypeOf(l); t == nil || !t.Comparable() {
		return fmt.Errorf("%w: %v", ErrNotComparable, t)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, present := r.items.Get(l); !present {
		r.items.Set(l, struct{}{})
	}
	return nil
}

// Remove unregisters l and reports whether it was registered.
func (r *Registry[L]) Remove(l L) bool {
	if t := reflect.TypeOf(l); t == nil || !t.Comparable() {
		return false
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	_, present := r.items.Delete(l)
	return present
}

// Len reports the number of registered listeners.
func (r *Registry[L]) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.items.Len()
}

// Clear removes every listener.
func (r *Registry[L]) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items = orderedmap.New[L, struct{}]()
}

// Snapshot returns the listeners, most recently added first.
func (r *Registry[L]) Snapshot() []L {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]L, 0, r.items.Len())
	for pair := r.items.Newest(); pair != nil; pair = pair.Prev() {
		out = append(out, pair.Key)
	}
	return out
}

// Each calls fn for every listener, newest first. A panic in fn is recovered, logged and
// counted; the remaining listeners are still called. It returns the number of failures.
func (r *Registry[L]) Each(label string, fn func(L)) int {
	failures := 0
	for _, l := range r.Snapshot() {
		if !r.call(label, l, fn) {
			failures++
		}
	}
	return failures
}

func (r *Registry[L]) call(label string, l L, fn func(L)) (ok bool) {
	defer func() {
		if rec := recover(); rec != nil {
			metrics.ListenerFailures.WithLabelValues(label).Inc()
			r.logger.WithFields(logrus.Fields{
				"event":    label,
				"listener": fmt.Sprintf("%T", l),
				"panic":    fmt.Sprint(rec),
			}).Warn("listener failed")
			ok = false
		}
	}()
	fn(l)
	return true
}

// Broadcast delivers e to every listener in r.
func Broadcast(r *Registry[Listener], e event.Event) int {
	return r.Each(e.Kind.String(), func(l Listener) {
		Notify(l, e)
	})
}
