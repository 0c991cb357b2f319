package funnel

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/microcosm-cc/bluemonday"

	"github.com/goliatone/go-leadflow/pkg/flow"
	"github.com/goliatone/go-leadflow/pkg/services"
)

// AnalysisStep is one entry of the simulated progress sequence shown while a
// contact submission is in flight.
type AnalysisStep struct {
	Label    string
	Duration time.Duration
}

// DefaultAnalysisSteps returns the stock four-step sequence (1.5s each).
func DefaultAnalysisSteps() []AnalysisStep {
	return []AnalysisStep{
		{Label: "Reviewing parcel records", Duration: 1500 * time.Millisecond},
		{Label: "Checking local regulations", Duration: 1500 * time.Millisecond},
		{Label: "Comparing recent projects", Duration: 1500 * time.Millisecond},
		{Label: "Finalizing your estimate", Duration: 1500 * time.Millisecond},
	}
}

var (
	contactPolicyOnce sync.Once
	contactPolicy     *bluemonday.Policy
)

// contactSanitizer strips any markup from contact fields before they reach an
// outbound lead payload. Lead text is re-rendered in CRM emails downstream.
func contactSanitizer() *bluemonday.Policy {
	contactPolicyOnce.Do(func() {
		contactPolicy = bluemonday.StrictPolicy()
	})
	return contactPolicy
}

func cleanField(raw string) string {
	return strings.TrimSpace(contactSanitizer().Sanitize(raw))
}

// ContactForm is the contact-capture view-model: form field state plus the
// submission orchestration that joins the simulated analysis sequence with
// the lead-creation network call.
type ContactForm struct {
	funnel *Funnel

	fields   services.Contact
	errorMsg string

	// stepIndex is NoHighlight outside a submission, otherwise the position
	// of the analysis step currently showing.
	stepIndex int
}

func newContactForm(f *Funnel) *ContactForm {
	return &ContactForm{funnel: f, stepIndex: NoHighlight}
}

// SetFirstName updates the first-name field.
func (c *ContactForm) SetFirstName(v string) { c.fields.FirstName = v }

// SetLastName updates the last-name field.
func (c *ContactForm) SetLastName(v string) { c.fields.LastName = v }

// SetEmail updates the email field.
func (c *ContactForm) SetEmail(v string) { c.fields.Email = v }

// SetPhone updates the phone field.
func (c *ContactForm) SetPhone(v string) { c.fields.Phone = v }

// SetDesiredTimeline updates the desired-timeline field.
func (c *ContactForm) SetDesiredTimeline(v string) { c.fields.DesiredTimeline = v }

// Fields returns the raw form values as entered.
func (c *ContactForm) Fields() services.Contact { return c.fields }

// ErrorMessage returns the user-facing submission error, empty when none.
func (c *ContactForm) ErrorMessage() string { return c.errorMsg }

// HasInput reports whether any contact field is populated. The modal close
// policy uses this to decide whether leaving needs confirmation.
func (c *ContactForm) HasInput() bool {
	return strings.TrimSpace(c.fields.FirstName) != "" ||
		strings.TrimSpace(c.fields.LastName) != "" ||
		strings.TrimSpace(c.fields.Email) != "" ||
		strings.TrimSpace(c.fields.Phone) != "" ||
		strings.TrimSpace(c.fields.DesiredTimeline) != ""
}

// AnalysisStatus returns the label of the analysis step currently showing,
// empty outside a submission.
func (c *ContactForm) AnalysisStatus() string {
	if c.stepIndex < 0 || c.stepIndex >= len(c.funnel.steps) {
		return ""
	}
	return c.funnel.steps[c.stepIndex].Label
}

// payload builds the outbound contact record: every field trimmed and
// stripped of markup.
func (c *ContactForm) payload() services.Contact {
	return services.Contact{
		FirstName:       cleanField(c.fields.FirstName),
		LastName:        cleanField(c.fields.LastName),
		Email:           cleanField(c.fields.Email),
		Phone:           cleanField(c.fields.Phone),
		DesiredTimeline: cleanField(c.fields.DesiredTimeline),
	}
}

// Submit runs the contact submission. It is a no-op while one is already
// processing. After SUBMIT_CONTACT it runs the analysis sequence and the
// lead-creation call concurrently and waits for both (join, not race). Only
// the lead call decides the outcome: on success the session is marked
// submitted and SUCCESS fires; on failure the error message is set and ERROR
// fires.
func (c *ContactForm) Submit(ctx context.Context) error {
	if c.funnel.State() == flow.StateContactFormProcessing {
		return nil
	}

	c.errorMsg = ""
	c.funnel.machine.Transition(flow.EventSubmitContact)

	lead := services.Lead{
		Contact: c.payload(),
		Parcel:  c.funnel.session.parcel,
		Address: c.funnel.address.Input(),
	}
	if c.funnel.summarizer != nil {
		if summary, err := c.funnel.summarizer.Render("estimate_results", c.funnel.summaryData()); err == nil {
			lead.Summary = summary
		}
	}

	leadErr := make(chan error, 1)
	go func() {
		leadErr <- c.funnel.leads.CreateLead(ctx, lead)
	}()

	// The sequence runs on the caller's goroutine so view-model state is
	// only ever touched from the event loop; the network call joins at the
	// end regardless of how the sequence finished.
	c.runAnalysisSequence(ctx)
	err := <-leadErr
	c.stepIndex = NoHighlight

	if err != nil {
		c.errorMsg = "Something went wrong submitting your details. Please try again."
		c.funnel.machine.Transition(flow.EventError)
		return err
	}

	c.funnel.session.contact = lead.Contact
	c.funnel.session.submitted = true
	c.funnel.machine.Transition(flow.EventSuccess)
	return nil
}

// runAnalysisSequence walks the steps strictly in order, announcing each one
// through the notify callback before its wait. Its outcome is irrelevant to
// submission success; a cancelled context just cuts the remaining steps short.
func (c *ContactForm) runAnalysisSequence(ctx context.Context) {
	for i, step := range c.funnel.steps {
		c.stepIndex = i
		if c.funnel.notify != nil {
			c.funnel.notify(step.Label)
		}
		if err := c.funnel.sleep(ctx, step.Duration); err != nil {
			return
		}
	}
}
