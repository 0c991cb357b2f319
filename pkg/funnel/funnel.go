// Package funnel orchestrates the lead-capture flow: it owns the flow state
// machine, the per-step view-models, and the session data accumulated while a
// visitor moves from address entry to a scheduling or community outcome.
//
// A Funnel and its view-models are driven from a single event loop, matching
// the browser-session model they replace. Methods are not safe for concurrent
// callers; the only internal concurrency is the contact submission join,
// which never mutates shared state from a second goroutine.
package funnel

import (
	"errors"

	"github.com/goliatone/go-leadflow/pkg/flow"
	"github.com/goliatone/go-leadflow/pkg/services"
	"github.com/goliatone/go-leadflow/pkg/track"
)

var (
	// ErrExitRefused is returned when a modal close is attempted while a
	// contact submission is in flight.
	ErrExitRefused = errors.New("funnel: exit refused while submission is processing")

	// ErrNoSelection is returned when an address submission runs without a
	// committed typeahead selection to look up.
	ErrNoSelection = errors.New("funnel: no address selected")
)

// Funnel wires the state machine, session data, services, and view-models
// together. Construct one per visitor session with New.
type Funnel struct {
	machine *flow.Machine
	tracker track.Tracker

	addresses services.AddressLookup
	parcels   services.ParcelLookup
	estimates services.EstimateService
	leads     services.LeadService

	confirm    ConfirmFunc
	sleep      Sleeper
	steps      []AnalysisStep
	notify     AnalysisNotifyFunc
	summarizer Summarizer

	session session

	address  *AddressForm
	contact  *ContactForm
	estimate *EstimateView
	modal    *Modal
}

// session is the data accumulated during one visit. Everything starts empty
// and resets whenever the address input changes.
type session struct {
	selection services.AddressMatch
	parcel    services.Parcel
	estimate  services.Estimate
	contact   services.Contact
	submitted bool
}

// New constructs a funnel. The four services are required; everything else
// has defaults (discarding tracker, real clock, four analysis steps, exit
// confirmations auto-approved).
func New(options ...Option) (*Funnel, error) {
	f := &Funnel{
		tracker: track.Discard,
		confirm: approveConfirm,
		sleep:   sleepWithContext,
		steps:   DefaultAnalysisSteps(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(f)
	}

	if f.addresses == nil {
		return nil, errors.New("funnel: address lookup service is required")
	}
	if f.parcels == nil {
		return nil, errors.New("funnel: parcel lookup service is required")
	}
	if f.estimates == nil {
		return nil, errors.New("funnel: estimate service is required")
	}
	if f.leads == nil {
		return nil, errors.New("funnel: lead service is required")
	}

	if f.machine == nil {
		f.machine = flow.NewMachine(flow.WithTracker(f.tracker))
	}

	f.address = newAddressForm(f)
	f.contact = newContactForm(f)
	f.estimate = newEstimateView(f)
	f.modal = newModal(f)
	return f, nil
}

// State returns the active flow state.
func (f *Funnel) State() flow.State {
	return f.machine.Current()
}

// Address returns the address view-model.
func (f *Funnel) Address() *AddressForm { return f.address }

// Contact returns the contact view-model.
func (f *Funnel) Contact() *ContactForm { return f.contact }

// Estimate returns the estimate view-model.
func (f *Funnel) Estimate() *EstimateView { return f.estimate }

// Modal returns the modal helper.
func (f *Funnel) Modal() *Modal { return f.modal }

// IsSelected reports whether a typeahead match has been committed. True iff
// the selection carries an ID.
func (f *Funnel) IsSelected() bool {
	return f.session.selection.ID != ""
}

// Selection returns the committed typeahead match, zero if none.
func (f *Funnel) Selection() services.AddressMatch {
	return f.session.selection
}

// HasParcelDetails reports whether the parcel lookup has completed. True iff
// both APN and jurisdiction are present.
func (f *Funnel) HasParcelDetails() bool {
	return f.session.parcel.APN != "" && f.session.parcel.Jurisdiction != ""
}

// Parcel returns the resolved parcel record, zero if none.
func (f *Funnel) Parcel() services.Parcel {
	return f.session.parcel
}

// HasResults reports whether an estimate has been computed. True iff the
// jurisdiction status is set.
func (f *Funnel) HasResults() bool {
	return f.session.estimate.JurisdictionStatus != ""
}

// EstimateResult returns the computed offer range, zero if none.
func (f *Funnel) EstimateResult() services.Estimate {
	return f.session.estimate
}

// IsSubmitted reports whether lead creation has succeeded this session.
func (f *Funnel) IsSubmitted() bool {
	return f.session.submitted
}

// invalidateDownstream clears everything derived from the address input:
// selection, parcel, estimate, and the contact-submitted flag. Contact field
// values survive so a visitor correcting an address does not retype them.
func (f *Funnel) invalidateDownstream() {
	f.session.selection = services.AddressMatch{}
	f.session.parcel = services.Parcel{}
	f.session.estimate = services.Estimate{}
	f.session.submitted = false
}

// hasDownstreamState reports whether anything derived from the address input
// is populated.
func (f *Funnel) hasDownstreamState() bool {
	return f.IsSelected() || f.HasParcelDetails() || f.HasResults() || f.session.submitted
}
