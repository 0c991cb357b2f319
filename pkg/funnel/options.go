package funnel

import (
	"context"
	"time"

	"github.com/goliatone/go-leadflow/pkg/flow"
	"github.com/goliatone/go-leadflow/pkg/services"
	"github.com/goliatone/go-leadflow/pkg/track"
)

// Option customises funnel construction.
type Option func(*Funnel)

// ConfirmFunc asks the user to approve leaving a partially filled form. It
// returns true when the exit should proceed.
type ConfirmFunc func(ctx context.Context, prompt string) (bool, error)

// Sleeper waits for d or until ctx is done. Injected so the timed analysis
// sequence runs instantly in tests.
type Sleeper func(ctx context.Context, d time.Duration) error

// Summarizer renders a named outcome summary from template data. The pongo2
// engine in pkg/summary satisfies this.
type Summarizer interface {
	Render(name string, data map[string]any) (string, error)
}

// AnalysisNotifyFunc receives each analysis step label as it becomes current.
// It runs on the submitting goroutine, before the step's wait begins, so
// callers can read view-model state inside it without synchronization.
type AnalysisNotifyFunc func(label string)

// WithAddressLookup wires the typeahead service.
func WithAddressLookup(lookup services.AddressLookup) Option {
	return func(f *Funnel) {
		f.addresses = lookup
	}
}

// WithParcelLookup wires the parcel service.
func WithParcelLookup(lookup services.ParcelLookup) Option {
	return func(f *Funnel) {
		f.parcels = lookup
	}
}

// WithEstimateService wires the estimate service.
func WithEstimateService(svc services.EstimateService) Option {
	return func(f *Funnel) {
		f.estimates = svc
	}
}

// WithLeadService wires lead creation.
func WithLeadService(svc services.LeadService) Option {
	return func(f *Funnel) {
		f.leads = svc
	}
}

// WithTracker wires the analytics sink shared by the machine and the
// view-models.
func WithTracker(tracker track.Tracker) Option {
	return func(f *Funnel) {
		if tracker != nil {
			f.tracker = tracker
		}
	}
}

// WithMachine replaces the flow machine. Intended for tests; when omitted the
// funnel builds one over the default table with the configured tracker.
func WithMachine(machine *flow.Machine) Option {
	return func(f *Funnel) {
		f.machine = machine
	}
}

// WithConfirm installs the interactive exit-confirmation policy.
func WithConfirm(confirm ConfirmFunc) Option {
	return func(f *Funnel) {
		if confirm != nil {
			f.confirm = confirm
		}
	}
}

// WithSleeper replaces the clock used by the analysis sequence.
func WithSleeper(sleep Sleeper) Option {
	return func(f *Funnel) {
		if sleep != nil {
			f.sleep = sleep
		}
	}
}

// WithAnalysisNotify installs a progress callback for the analysis sequence.
// This is how displays observe the sequence; polling AnalysisStatus from
// another goroutine is not safe.
func WithAnalysisNotify(notify AnalysisNotifyFunc) Option {
	return func(f *Funnel) {
		f.notify = notify
	}
}

// WithAnalysisSteps replaces the simulated analysis sequence shown while a
// contact submission is in flight.
func WithAnalysisSteps(steps []AnalysisStep) Option {
	return func(f *Funnel) {
		if len(steps) > 0 {
			f.steps = append([]AnalysisStep{}, steps...)
		}
	}
}

// WithSummarizer wires the outcome-summary renderer. Optional; without it
// analytics records and lead payloads omit the rendered summary.
func WithSummarizer(s Summarizer) Option {
	return func(f *Funnel) {
		f.summarizer = s
	}
}

func approveConfirm(context.Context, string) (bool, error) {
	return true, nil
}

func sleepWithContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
