package flow

// transitions maps the events legal from one state to their targets.
type transitions map[Event]State

// Table is the static flow graph: state -> event -> target state.
type Table map[State]transitions

// Shared transition fragments. Several states accept the same submissions or
// the same exit; they reference one definition so an edit applies everywhere.
func addressSubmit(target State) transitions {
	return transitions{EventSubmitAddress: target}
}

func contactSubmit() transitions {
	return transitions{EventSubmitContact: StateContactFormProcessing}
}

func exitToDefault() transitions {
	return transitions{EventExit: StateDefault}
}

// merge folds fragments into a single transition set. Later fragments win on
// event collisions, which buildTable never relies on.
func merge(fragments ...transitions) transitions {
	out := make(transitions)
	for _, fragment := range fragments {
		for event, target := range fragment {
			out[event] = target
		}
	}
	return out
}

func buildTable() Table {
	return Table{
		StateDefault: merge(
			addressSubmit(StateAddressFormProcessing),
			transitions{EventStartModalFlow: StateModalAddressForm},
		),
		StateAddressFormProcessing: transitions{
			EventSuccess:     StateContactForm,
			EventSkipContact: StateEstimateResults,
			EventError:       StateAddressFormError,
		},
		StateAddressFormError: addressSubmit(StateAddressFormProcessing),
		StateModalAddressForm: merge(
			addressSubmit(StateModalAddressFormProcessing),
			exitToDefault(),
		),
		StateModalAddressFormProcessing: merge(
			transitions{
				EventSuccess:     StateContactForm,
				EventSkipContact: StateEstimateResults,
				EventError:       StateModalAddressFormError,
			},
			exitToDefault(),
		),
		StateModalAddressFormError: merge(
			addressSubmit(StateModalAddressFormProcessing),
			exitToDefault(),
		),
		StateContactForm: merge(
			contactSubmit(),
			exitToDefault(),
		),
		StateContactFormProcessing: merge(
			transitions{
				EventSuccess: StateEstimateResults,
				EventError:   StateContactFormError,
			},
			exitToDefault(),
		),
		StateContactFormError: merge(
			contactSubmit(),
			exitToDefault(),
		),
		StateEstimateResults: merge(
			transitions{
				EventSchedule:         StateScheduleConsultation,
				EventRequestCommunity: StateRequestedCommunity,
			},
			exitToDefault(),
		),
		StateScheduleConsultation: exitToDefault(),
		StateRequestedCommunity:   exitToDefault(),
	}
}

// DefaultTable returns a fresh copy of the flow graph. Callers may inspect it
// but machines built by NewMachine always use their own copy.
func DefaultTable() Table {
	return buildTable()
}

// Next resolves a (state, event) pair. The second return reports whether the
// transition is defined.
func (t Table) Next(state State, event Event) (State, bool) {
	events, ok := t[state]
	if !ok {
		return state, false
	}
	target, ok := events[event]
	if !ok {
		return state, false
	}
	return target, true
}

// States returns every state the table defines transitions for.
func (t Table) States() []State {
	out := make([]State, 0, len(t))
	for state := range t {
		out = append(out, state)
	}
	return out
}
