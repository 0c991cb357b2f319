package flow

// State names the single UI step currently displayed. Exactly one state is
// active at a time and every value handed to callers is a member of the set
// below.
type State string

const (
	StateDefault                    State = "default"
	StateAddressFormProcessing      State = "addressFormProcessing"
	StateAddressFormError           State = "addressFormError"
	StateModalAddressForm           State = "modalAddressForm"
	StateModalAddressFormProcessing State = "modalAddressFormProcessing"
	StateModalAddressFormError      State = "modalAddressFormError"
	StateContactForm                State = "contactForm"
	StateContactFormProcessing      State = "contactFormProcessing"
	StateContactFormError           State = "contactFormError"
	StateEstimateResults            State = "estimateResults"
	StateScheduleConsultation       State = "scheduleConsultation"
	StateRequestedCommunity         State = "requestedCommunity"
)

// Event is a named trigger that, from a given state, deterministically selects
// the next state.
type Event string

const (
	EventSubmitAddress    Event = "SUBMIT_ADDRESS"
	EventSubmitContact    Event = "SUBMIT_CONTACT"
	EventStartModalFlow   Event = "START_MODAL_FLOW"
	EventSuccess          Event = "SUCCESS"
	EventError            Event = "ERROR"
	EventSkipContact      Event = "SKIP_CONTACT"
	EventExit             Event = "EXIT"
	EventSchedule         Event = "SCHEDULE"
	EventRequestCommunity Event = "REQUEST_COMMUNITY"
)

// IsModal reports whether the state belongs to the modal flow, meaning the
// funnel modal should be visible while it is active.
func IsModal(s State) bool {
	switch s {
	case StateModalAddressForm,
		StateModalAddressFormProcessing,
		StateModalAddressFormError,
		StateContactForm,
		StateContactFormProcessing,
		StateContactFormError,
		StateEstimateResults,
		StateScheduleConsultation,
		StateRequestedCommunity:
		return true
	}
	return false
}

// IsAddressProcessing reports whether an address submission is in flight.
func IsAddressProcessing(s State) bool {
	return s == StateAddressFormProcessing || s == StateModalAddressFormProcessing
}

// IsProcessing reports whether any asynchronous submission is in flight.
func IsProcessing(s State) bool {
	return IsAddressProcessing(s) || s == StateContactFormProcessing
}
