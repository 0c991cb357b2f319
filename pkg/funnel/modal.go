package funnel

import (
	"context"

	"github.com/goliatone/go-leadflow/pkg/flow"
)

const exitConfirmPrompt = "Leave without submitting your details?"

// Modal derives modal visibility from the flow state and gates exits with the
// confirmation policy.
type Modal struct {
	funnel *Funnel
}

func newModal(f *Funnel) *Modal {
	return &Modal{funnel: f}
}

// IsOpen reports whether the modal should be visible: true iff the current
// state belongs to the modal flow.
func (m *Modal) IsOpen() bool {
	return flow.IsModal(m.funnel.State())
}

// HandleModalFlowStart opens the modal flow from the default state.
func (m *Modal) HandleModalFlowStart() {
	m.funnel.machine.Transition(flow.EventStartModalFlow)
}

// HandleModalClose applies the exit policy. Outside the modal flow there is
// nothing to close and the call is a no-op. While a contact submission is in
// flight the close is refused with ErrExitRefused. On the contact form with
// any field populated, the configured ConfirmFunc must approve the exit; a
// declined confirmation leaves the flow where it is. Otherwise EXIT fires.
// The returned bool reports whether the modal actually closed.
func (m *Modal) HandleModalClose(ctx context.Context) (bool, error) {
	if !m.IsOpen() {
		return false, nil
	}

	switch m.funnel.State() {
	case flow.StateContactFormProcessing:
		return false, ErrExitRefused
	case flow.StateContactForm:
		if m.funnel.contact.HasInput() {
			ok, err := m.funnel.confirm(ctx, exitConfirmPrompt)
			if err != nil {
				return false, err
			}
			if !ok {
				return false, nil
			}
		}
	}

	m.funnel.machine.Transition(flow.EventExit)
	return true, nil
}
