// Package flow implements the lead-capture flow state machine: a fixed,
// statically known graph of UI steps and the events that move between them.
// State lives in memory for the lifetime of a session; the graph is cyclic
// (EXIT always returns to default) so one machine serves repeated sessions.
package flow

import (
	"fmt"

	"github.com/goliatone/go-leadflow/pkg/track"
)

// InvalidTransitionEvent is the tracker event recorded when a (state, event)
// pair has no entry in the table. Exactly one record is emitted per attempt.
const InvalidTransitionEvent = "invalid_transition"

// Option customises machine construction.
type Option func(*Machine)

// WithTracker injects the sink that receives invalid-transition diagnostics.
func WithTracker(tracker track.Tracker) Option {
	return func(m *Machine) {
		if tracker != nil {
			m.tracker = tracker
		}
	}
}

// WithTable replaces the default flow graph. Intended for tests that exercise
// reduced graphs; production callers use the built-in table.
func WithTable(table Table) Option {
	return func(m *Machine) {
		if table != nil {
			m.table = table
		}
	}
}

// Machine holds the current flow state and is its sole mutator. It is not
// safe for concurrent use: the funnel drives it from a single event loop,
// matching the browser-session model it replaces.
type Machine struct {
	table   Table
	current State
	tracker track.Tracker
}

// NewMachine builds a machine positioned at the default state.
func NewMachine(options ...Option) *Machine {
	m := &Machine{
		table:   buildTable(),
		current: StateDefault,
		tracker: track.Discard,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(m)
	}
	return m
}

// Current returns the active state.
func (m *Machine) Current() State {
	return m.current
}

// Transition applies event to the current state and returns the resulting
// state. Undefined transitions are non-fatal: the machine records one
// diagnostic and stays put. A current state missing from the table means the
// table and the state set have desynced, which is a programming error and
// panics.
func (m *Machine) Transition(event Event) State {
	events, ok := m.table[m.current]
	if !ok {
		panic(fmt.Sprintf("flow: state %q missing from transition table", m.current))
	}

	target, ok := events[event]
	if !ok {
		m.tracker.Record(InvalidTransitionEvent, map[string]any{
			"current_state": string(m.current),
			"event":         string(event),
		})
		return m.current
	}

	m.current = target
	return m.current
}

// Can reports whether event is defined from the current state without
// applying it.
func (m *Machine) Can(event Event) bool {
	_, ok := m.table.Next(m.current, event)
	return ok
}

// Reset returns the machine to the default state without recording anything.
func (m *Machine) Reset() {
	m.current = StateDefault
}
