package funnel

import (
	"context"
	"strings"

	"github.com/goliatone/go-leadflow/pkg/flow"
	"github.com/goliatone/go-leadflow/pkg/services"
)

// Key identifies the keyboard events the address form intercepts. Every other
// key passes through untouched.
type Key string

const (
	KeyArrowUp   Key = "ArrowUp"
	KeyArrowDown Key = "ArrowDown"
	KeyEnter     Key = "Enter"
)

// NoHighlight is the keyboard index meaning no match is highlighted.
const NoHighlight = -1

// AddressForm is the typeahead view-model: it tracks the visible input text,
// the ranked match list, keyboard navigation, the committed selection, and
// the address submission pipeline (parcel lookup then estimate).
type AddressForm struct {
	funnel *Funnel

	input    string
	errorMsg string
	matches  []services.AddressMatch
	index    int

	// seq tags each typeahead request; responses carrying a stale tag are
	// discarded so a slow early lookup cannot overwrite a later one.
	seq uint64
}

func newAddressForm(f *Funnel) *AddressForm {
	return &AddressForm{funnel: f, index: NoHighlight}
}

// Input returns the current visible input text.
func (a *AddressForm) Input() string { return a.input }

// ErrorMessage returns the user-facing lookup or submission error, empty when
// none is showing.
func (a *AddressForm) ErrorMessage() string { return a.errorMsg }

// Matches returns the current typeahead results.
func (a *AddressForm) Matches() []services.AddressMatch { return a.matches }

// HighlightedIndex returns the keyboard highlight position, NoHighlight when
// nothing is highlighted.
func (a *AddressForm) HighlightedIndex() int { return a.index }

// HandleInput records a (externally debounced) keystroke: it invalidates
// every piece of downstream session state, then fetches ranked matches for
// the new text. A lookup failure sets the error message and fires the ERROR
// transition; a successful lookup clears any message showing.
func (a *AddressForm) HandleInput(ctx context.Context, text string) error {
	a.input = text
	if a.funnel.hasDownstreamState() {
		a.funnel.invalidateDownstream()
	}

	if strings.TrimSpace(text) == "" {
		a.matches = nil
		a.index = NoHighlight
		return nil
	}

	a.seq++
	issued := a.seq

	matches, err := a.funnel.addresses.Search(ctx, text)
	if issued != a.seq {
		// A newer request was issued while this one was in flight.
		return nil
	}
	if err != nil {
		a.errorMsg = "We couldn't look up that address. Please try again."
		a.funnel.machine.Transition(flow.EventError)
		return err
	}

	a.errorMsg = ""
	a.matches = matches
	a.index = NoHighlight
	return nil
}

// HandleKeydown intercepts ArrowUp, ArrowDown, and Enter while an unselected
// match list is showing. It returns true when the key was consumed. ArrowUp
// from NoHighlight wraps to the last match; ArrowDown from the last match
// wraps to NoHighlight; Enter commits the highlighted match.
func (a *AddressForm) HandleKeydown(key Key) bool {
	if len(a.matches) == 0 || a.funnel.IsSelected() {
		return false
	}

	switch key {
	case KeyArrowUp:
		if a.index == NoHighlight {
			a.index = len(a.matches) - 1
		} else {
			a.index--
		}
		return true
	case KeyArrowDown:
		if a.index == len(a.matches)-1 {
			a.index = NoHighlight
		} else {
			a.index++
		}
		return true
	case KeyEnter:
		if a.index == NoHighlight {
			return false
		}
		a.HandleMatchSelection(a.matches[a.index])
		return true
	}
	return false
}

// HandleMatchSelection commits match as the session selection, rewrites the
// visible input to "<address>, <context>", and clears the match list.
func (a *AddressForm) HandleMatchSelection(match services.AddressMatch) {
	a.funnel.session.selection = match
	a.input = match.Display()
	a.matches = nil
	a.index = NoHighlight
}

// Submit runs the address pipeline. It is a no-op while an address submission
// is already processing. After the SUBMIT_ADDRESS transition: when parcel,
// estimate, and a prior contact submission are all present the flow skips
// straight to results; otherwise the missing parcel and estimate are fetched
// sequentially before SUCCESS. Any failure sets the error message and fires
// ERROR.
func (a *AddressForm) Submit(ctx context.Context) error {
	if flow.IsAddressProcessing(a.funnel.State()) {
		return nil
	}

	a.errorMsg = ""
	a.funnel.machine.Transition(flow.EventSubmitAddress)

	if a.funnel.HasParcelDetails() && a.funnel.HasResults() && a.funnel.IsSubmitted() {
		a.funnel.machine.Transition(flow.EventSkipContact)
		return nil
	}

	if !a.funnel.HasParcelDetails() {
		if !a.funnel.IsSelected() {
			a.fail("Please choose an address from the suggestions.")
			return ErrNoSelection
		}
		parcel, err := a.funnel.parcels.Parcel(ctx, a.funnel.session.selection.ID)
		if err != nil {
			a.fail("We couldn't find records for that address. Please try again.")
			return err
		}
		a.funnel.session.parcel = parcel
	}

	if !a.funnel.HasResults() {
		estimate, err := a.funnel.estimates.Estimate(ctx, services.EstimateRequest{
			Parcel:  a.funnel.session.parcel,
			Address: a.input,
		})
		if err != nil {
			a.fail("We couldn't build an estimate right now. Please try again.")
			return err
		}
		a.funnel.session.estimate = estimate
	}

	a.funnel.machine.Transition(flow.EventSuccess)
	return nil
}

func (a *AddressForm) fail(message string) {
	a.errorMsg = message
	a.funnel.machine.Transition(flow.EventError)
}
