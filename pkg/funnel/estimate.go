package funnel

import (
	"context"

	"github.com/goliatone/go-leadflow/pkg/flow"
)

// Analytics event names emitted by the estimate view.
const (
	EventConsultationScheduled = "consultation_scheduled"
	EventCommunityRequested    = "community_requested"
)

// EstimateView exposes the computed offer range and the two terminal actions
// a visitor can take from the results step.
type EstimateView struct {
	funnel *Funnel
}

func newEstimateView(f *Funnel) *EstimateView {
	return &EstimateView{funnel: f}
}

// HasResults reports whether an estimate is available to show.
func (e *EstimateView) HasResults() bool {
	return e.funnel.HasResults()
}

// JurisdictionStatus returns the regulatory support status of the parcel's
// jurisdiction, empty before an estimate exists.
func (e *EstimateView) JurisdictionStatus() string {
	return e.funnel.session.estimate.JurisdictionStatus
}

// Range returns the low and high ends of the offer range.
func (e *EstimateView) Range() (low, high int64) {
	return e.funnel.session.estimate.Low, e.funnel.session.estimate.High
}

// HandleScheduleConsultationClick fires the SCHEDULE transition and records
// the full session context for analytics.
func (e *EstimateView) HandleScheduleConsultationClick(ctx context.Context) {
	e.funnel.machine.Transition(flow.EventSchedule)
	e.record(ctx, EventConsultationScheduled, "estimate_results")
}

// HandleRequestCommunityClick fires the REQUEST_COMMUNITY transition and
// records the full session context for analytics.
func (e *EstimateView) HandleRequestCommunityClick(ctx context.Context) {
	e.funnel.machine.Transition(flow.EventRequestCommunity)
	e.record(ctx, EventCommunityRequested, "community_request")
}

func (e *EstimateView) record(_ context.Context, event, summaryName string) {
	props := e.funnel.summaryData()
	if e.funnel.summarizer != nil {
		if summary, err := e.funnel.summarizer.Render(summaryName, props); err == nil {
			props["summary"] = summary
		}
	}
	e.funnel.tracker.Record(event, props)
}

// summaryData flattens the accumulated address, parcel, estimate, and contact
// context into template/analytics properties.
func (f *Funnel) summaryData() map[string]any {
	return map[string]any{
		"address":             f.address.Input(),
		"address_id":          f.session.selection.ID,
		"apn":                 f.session.parcel.APN,
		"jurisdiction":        f.session.parcel.Jurisdiction,
		"city":                f.session.parcel.City,
		"state":               f.session.parcel.State,
		"zip":                 f.session.parcel.Zip,
		"jurisdiction_status": f.session.estimate.JurisdictionStatus,
		"estimate_low":        f.session.estimate.Low,
		"estimate_high":       f.session.estimate.High,
		"first_name":          f.session.contact.FirstName,
		"last_name":           f.session.contact.LastName,
		"email":               f.session.contact.Email,
		"phone":               f.session.contact.Phone,
		"desired_timeline":    f.session.contact.DesiredTimeline,
		"contact_submitted":   f.session.submitted,
	}
}
