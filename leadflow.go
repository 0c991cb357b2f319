// Package leadflow re-exports the pieces most integrations need: the funnel
// constructor, its options, and the flow state taxonomy. Deeper customisation
// lives in the pkg/ packages.
package leadflow

import (
	"github.com/goliatone/go-leadflow/components/addresssearch"
	"github.com/goliatone/go-leadflow/pkg/flow"
	"github.com/goliatone/go-leadflow/pkg/funnel"
	"github.com/goliatone/go-leadflow/pkg/summary"
	"github.com/goliatone/go-leadflow/pkg/track"
)

// Funnel drives one visitor session through the lead-capture flow.
type Funnel = funnel.Funnel

// Option configures funnel construction.
type Option = funnel.Option

// State names the UI step currently displayed.
type State = flow.State

// Event triggers flow transitions.
type Event = flow.Event

// Tracker receives analytics records from the machine and the view-models.
type Tracker = track.Tracker

// Re-exported funnel options, so simple integrations only import this package.
var (
	WithAddressLookup   = funnel.WithAddressLookup
	WithParcelLookup    = funnel.WithParcelLookup
	WithEstimateService = funnel.WithEstimateService
	WithLeadService     = funnel.WithLeadService
	WithTracker         = funnel.WithTracker
	WithConfirm         = funnel.WithConfirm
	WithSleeper         = funnel.WithSleeper
	WithAnalysisSteps   = funnel.WithAnalysisSteps
	WithSummarizer      = funnel.WithSummarizer
)

// New constructs a funnel. See funnel.New for the required services.
func New(options ...Option) (*Funnel, error) {
	return funnel.New(options...)
}

// NewWithDataset constructs a funnel whose typeahead and parcel lookups are
// served by the bundled demo dataset and whose outcome summaries use the
// embedded templates. Estimate and lead services still have to be supplied.
func NewWithDataset(options ...Option) (*Funnel, error) {
	lookup := addresssearch.NewLookup()

	engine, err := summary.New()
	if err != nil {
		return nil, err
	}

	base := []Option{
		WithAddressLookup(lookup),
		WithParcelLookup(lookup),
		WithSummarizer(engine),
	}
	return funnel.New(append(base, options...)...)
}
