// Package track defines the analytics sink consumed by the funnel. Recording
// is fire-and-forget: implementations must never panic into the caller, and
// callers never block on delivery.
package track

import (
	"log"
	"sort"
	"sync"
)

// Tracker receives named analytics records with free-form properties.
type Tracker interface {
	Record(event string, props map[string]any)
}

// TrackerFunc adapts a function to the Tracker interface.
type TrackerFunc func(event string, props map[string]any)

// Record calls the wrapped function.
func (f TrackerFunc) Record(event string, props map[string]any) {
	if f == nil {
		return
	}
	f(event, props)
}

// Discard drops every record.
var Discard Tracker = TrackerFunc(func(string, map[string]any) {})

// Record is one captured analytics event.
type Record struct {
	Event string
	Props map[string]any
}

// Memory buffers records in order of arrival. It is safe for concurrent use
// and intended for tests and the example programs.
type Memory struct {
	mu      sync.Mutex
	records []Record
}

// NewMemory creates an empty in-memory sink.
func NewMemory() *Memory {
	return &Memory{}
}

// Record appends a copy of the event to the buffer.
func (m *Memory) Record(event string, props map[string]any) {
	if m == nil {
		return
	}
	copied := make(map[string]any, len(props))
	for key, value := range props {
		copied[key] = value
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records = append(m.records, Record{Event: event, Props: copied})
}

// Records returns a snapshot of everything recorded so far.
func (m *Memory) Records() []Record {
	if m == nil {
		return nil
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Record, len(m.records))
	copy(out, m.records)
	return out
}

// Named returns the records matching event, preserving arrival order.
func (m *Memory) Named(event string) []Record {
	var out []Record
	for _, record := range m.Records() {
		if record.Event == event {
			out = append(out, record)
		}
	}
	return out
}

// Reset discards buffered records.
func (m *Memory) Reset() {
	if m == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records = nil
}

// LogTracker writes records through a stdlib logger. A nil logger falls back
// to the default logger.
type LogTracker struct {
	Logger *log.Logger
}

// Record prints the event name followed by its properties in key order.
func (t LogTracker) Record(event string, props map[string]any) {
	keys := make([]string, 0, len(props))
	for key := range props {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	args := make([]any, 0, 1+len(keys))
	args = append(args, "track "+event)
	for _, key := range keys {
		args = append(args, key, "=", props[key])
	}
	if t.Logger != nil {
		t.Logger.Println(args...)
		return
	}
	log.Println(args...)
}
