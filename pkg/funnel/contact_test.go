package funnel

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-leadflow/pkg/flow"
	"github.com/goliatone/go-leadflow/pkg/services"
)

// walkToContactForm drives a funnel through the modal address flow so the
// contact form is live.
func walkToContactForm(t *testing.T, ctx context.Context, fn *Funnel) {
	t.Helper()
	fn.Modal().HandleModalFlowStart()
	if err := fn.Address().HandleInput(ctx, "main"); err != nil {
		t.Fatalf("HandleInput: %v", err)
	}
	fn.Address().HandleMatchSelection(testMatches[0])
	if err := fn.Address().Submit(ctx); err != nil {
		t.Fatalf("address Submit: %v", err)
	}
	if got := fn.State(); got != flow.StateContactForm {
		t.Fatalf("setup ended in %q, want contact form", got)
	}
}

func TestContactSubmit_RunsEveryAnalysisStepThenJoins(t *testing.T) {
	ctx := context.Background()

	var seen []string
	var fn *Funnel
	sleeper := func(context.Context, time.Duration) error {
		seen = append(seen, fn.Contact().AnalysisStatus())
		return nil
	}

	created, svc := newTestFunnel(t, WithSleeper(sleeper))
	fn = created
	walkToContactForm(t, ctx, fn)

	fn.Contact().SetEmail("dana@example.com")
	if err := fn.Contact().Submit(ctx); err != nil {
		t.Fatalf("Submit: %v", err)
	}

	want := []string{
		"Reviewing parcel records",
		"Checking local regulations",
		"Comparing recent projects",
		"Finalizing your estimate",
	}
	if diff := cmp.Diff(want, seen); diff != "" {
		t.Fatalf("analysis sequence mismatch (-want +got):\n%s", diff)
	}
	if got := fn.Contact().AnalysisStatus(); got != "" {
		t.Fatalf("analysis status should clear after submission, got %q", got)
	}
	if svc.leadCalls != 1 {
		t.Fatalf("expected 1 lead call, got %d", svc.leadCalls)
	}
	if !fn.IsSubmitted() {
		t.Fatal("session not marked submitted")
	}
	if got := fn.State(); got != flow.StateEstimateResults {
		t.Fatalf("state = %q, want estimate results", got)
	}
}

// Progress displays consume the notify callback on the submitting goroutine;
// reading the view-model inside it is safe and needs no polling from a second
// goroutine.
func TestContactSubmit_NotifiesEachStepOnTheCallerGoroutine(t *testing.T) {
	ctx := context.Background()

	var labels []string
	var statuses []string
	var fn *Funnel
	notify := func(label string) {
		labels = append(labels, label)
		statuses = append(statuses, fn.Contact().AnalysisStatus())
	}

	created, _ := newTestFunnel(t, WithAnalysisNotify(notify))
	fn = created
	walkToContactForm(t, ctx, fn)

	fn.Contact().SetEmail("dana@example.com")
	if err := fn.Contact().Submit(ctx); err != nil {
		t.Fatalf("Submit: %v", err)
	}

	want := []string{
		"Reviewing parcel records",
		"Checking local regulations",
		"Comparing recent projects",
		"Finalizing your estimate",
	}
	if diff := cmp.Diff(want, labels); diff != "" {
		t.Fatalf("notified labels mismatch (-want +got):\n%s", diff)
	}
	// The callback fires after the step becomes current, so the status read
	// inside it always matches the notified label.
	if diff := cmp.Diff(labels, statuses); diff != "" {
		t.Fatalf("status inside notify mismatch (-labels +statuses):\n%s", diff)
	}
}

func TestContactSubmit_LeadFailureDecidesOutcome(t *testing.T) {
	ctx := context.Background()
	fn, svc := newTestFunnel(t)
	svc.leadFn = func(context.Context, services.Lead) error {
		return services.NewNetworkError("create lead", errors.New("503"))
	}
	walkToContactForm(t, ctx, fn)

	fn.Contact().SetEmail("dana@example.com")
	err := fn.Contact().Submit(ctx)
	if err == nil {
		t.Fatal("expected lead failure to propagate")
	}
	if got := fn.State(); got != flow.StateContactFormError {
		t.Fatalf("state = %q, want contact error", got)
	}
	if fn.Contact().ErrorMessage() == "" {
		t.Fatal("expected a user-facing error message")
	}
	if fn.IsSubmitted() {
		t.Fatal("failed submission must not mark the session submitted")
	}

	// Retry succeeds and clears the message.
	svc.leadFn = nil
	if err := fn.Contact().Submit(ctx); err != nil {
		t.Fatalf("retry: %v", err)
	}
	if got := fn.Contact().ErrorMessage(); got != "" {
		t.Fatalf("error message not cleared: %q", got)
	}
	if got := fn.State(); got != flow.StateEstimateResults {
		t.Fatalf("state = %q, want estimate results", got)
	}
}

func TestContactSubmit_NoOpWhileProcessing(t *testing.T) {
	ctx := context.Background()
	machine := flow.NewMachine()
	machine.Transition(flow.EventStartModalFlow)
	machine.Transition(flow.EventSubmitAddress)
	machine.Transition(flow.EventSuccess)
	machine.Transition(flow.EventSubmitContact)

	fn, svc := newTestFunnel(t, WithMachine(machine))
	if err := fn.Contact().Submit(ctx); err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if svc.leadCalls != 0 {
		t.Fatal("submit during processing must not call the lead service")
	}
	if got := fn.State(); got != flow.StateContactFormProcessing {
		t.Fatalf("state moved to %q", got)
	}
}

func TestContactSubmit_PayloadIsTrimmedAndSanitized(t *testing.T) {
	ctx := context.Background()
	fn, svc := newTestFunnel(t)
	walkToContactForm(t, ctx, fn)

	contact := fn.Contact()
	contact.SetFirstName("  Dana ")
	contact.SetLastName("<script>alert(1)</script>Alvarez")
	contact.SetEmail(" dana@example.com ")
	contact.SetPhone("<b>408-555-0101</b>")
	contact.SetDesiredTimeline("6 months")

	if err := contact.Submit(ctx); err != nil {
		t.Fatalf("Submit: %v", err)
	}

	want := services.Contact{
		FirstName:       "Dana",
		LastName:        "Alvarez",
		Email:           "dana@example.com",
		Phone:           "408-555-0101",
		DesiredTimeline: "6 months",
	}
	if diff := cmp.Diff(want, svc.lastLead.Contact); diff != "" {
		t.Fatalf("lead contact mismatch (-want +got):\n%s", diff)
	}
	if svc.lastLead.Address != testMatches[0].Display() {
		t.Fatalf("lead address = %q", svc.lastLead.Address)
	}
	if diff := cmp.Diff(testParcel, svc.lastLead.Parcel); diff != "" {
		t.Fatalf("lead parcel mismatch (-want +got):\n%s", diff)
	}
}

func TestContactSubmit_SummaryAttachedWhenConfigured(t *testing.T) {
	ctx := context.Background()
	summarizer := summarizerFunc(func(name string, data map[string]any) (string, error) {
		if name != "estimate_results" {
			return "", errors.New("unexpected template " + name)
		}
		return "summary for " + data["address"].(string), nil
	})

	fn, svc := newTestFunnel(t, WithSummarizer(summarizer))
	walkToContactForm(t, ctx, fn)

	fn.Contact().SetEmail("dana@example.com")
	if err := fn.Contact().Submit(ctx); err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if got, want := svc.lastLead.Summary, "summary for "+testMatches[0].Display(); got != want {
		t.Fatalf("lead summary = %q, want %q", got, want)
	}
}

func TestHasInput(t *testing.T) {
	fn, _ := newTestFunnel(t)
	if fn.Contact().HasInput() {
		t.Fatal("empty form should report no input")
	}
	fn.Contact().SetPhone("  ")
	if fn.Contact().HasInput() {
		t.Fatal("whitespace-only field should report no input")
	}
	fn.Contact().SetDesiredTimeline("soon")
	if !fn.Contact().HasInput() {
		t.Fatal("populated field should report input")
	}
}

type summarizerFunc func(name string, data map[string]any) (string, error)

func (f summarizerFunc) Render(name string, data map[string]any) (string, error) {
	return f(name, data)
}
