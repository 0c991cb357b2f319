// Command leadflow-cli runs the lead-capture funnel in a terminal: address
// typeahead, parcel lookup, an offer estimate, and contact capture ending in a
// consultation or community outcome. Without -base-url it runs against the
// bundled demo dataset, so it works offline.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"hash/fnv"
	"log"
	"net/http"
	"os"
	"os/signal"

	"github.com/goliatone/go-leadflow/components/addresssearch"
	"github.com/goliatone/go-leadflow/internal/config"
	"github.com/goliatone/go-leadflow/internal/leadapi"
	"github.com/goliatone/go-leadflow/internal/prompt"
	"github.com/goliatone/go-leadflow/pkg/flow"
	"github.com/goliatone/go-leadflow/pkg/funnel"
	"github.com/goliatone/go-leadflow/pkg/services"
	"github.com/goliatone/go-leadflow/pkg/summary"
	"github.com/goliatone/go-leadflow/pkg/track"
)

func main() {
	configPath := flag.String("config", "", "path to a YAML config file")
	baseURL := flag.String("base-url", "", "lead-capture API base URL (overrides config; empty runs the local demo dataset)")
	verbose := flag.Bool("verbose", false, "log analytics records to stderr")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, *configPath, *baseURL, *verbose); err != nil {
		if errors.Is(err, prompt.ErrAborted) || errors.Is(err, context.Canceled) {
			fmt.Println("\nGoodbye.")
			return
		}
		log.Fatalf("leadflow-cli: %v", err)
	}
}

func run(ctx context.Context, configPath, baseURL string, verbose bool) error {
	cfg := config.Default()
	if configPath != "" {
		loaded, err := config.Load(configPath)
		if err != nil {
			return err
		}
		cfg = loaded
	}
	if baseURL != "" {
		cfg.Service.BaseURL = baseURL
	}

	var tracker track.Tracker = track.Discard
	if verbose {
		tracker = track.LogTracker{Logger: log.New(os.Stderr, "", log.LstdFlags)}
	}

	engine, err := summary.New()
	if err != nil {
		return err
	}

	driver := prompt.NewSurveyDriver()

	options := []funnel.Option{
		funnel.WithTracker(tracker),
		funnel.WithSummarizer(engine),
		funnel.WithConfirm(func(ctx context.Context, message string) (bool, error) {
			return driver.Confirm(ctx, prompt.ConfirmConfig{Message: message})
		}),
		// Runs on the submitting goroutine; no concurrent view-model reads.
		funnel.WithAnalysisNotify(func(label string) {
			_ = driver.Info(ctx, "  "+label+"...")
		}),
	}
	if steps := cfg.Steps(); steps != nil {
		options = append(options, funnel.WithAnalysisSteps(steps))
	}

	if cfg.Service.BaseURL != "" {
		client, err := leadapi.New(ctx, cfg.Service.BaseURL,
			leadapi.WithHTTPClient(&http.Client{Timeout: cfg.Service.Timeout.Std()}))
		if err != nil {
			return err
		}
		options = append(options,
			funnel.WithAddressLookup(client),
			funnel.WithParcelLookup(client),
			funnel.WithEstimateService(client),
			funnel.WithLeadService(client),
		)
	} else {
		lookup := addresssearch.NewLookup(addresssearch.WithDefaultLimit(cfg.Typeahead.Limit))
		options = append(options,
			funnel.WithAddressLookup(lookup),
			funnel.WithParcelLookup(lookup),
			funnel.WithEstimateService(demoEstimates{}),
			funnel.WithLeadService(demoLeads{out: os.Stdout}),
		)
	}

	fn, err := funnel.New(options...)
	if err != nil {
		return err
	}

	return interact(ctx, fn, driver)
}

// interact drives the funnel until the modal flow exits or a prompt aborts.
func interact(ctx context.Context, fn *funnel.Funnel, driver prompt.Driver) error {
	fn.Modal().HandleModalFlowStart()

	for fn.Modal().IsOpen() {
		if err := ctx.Err(); err != nil {
			return err
		}

		switch fn.State() {
		case flow.StateModalAddressForm, flow.StateModalAddressFormError:
			if err := addressStep(ctx, fn, driver); err != nil {
				return err
			}
		case flow.StateContactForm, flow.StateContactFormError:
			if err := contactStep(ctx, fn, driver); err != nil {
				return err
			}
		case flow.StateEstimateResults:
			if err := resultsStep(ctx, fn, driver); err != nil {
				return err
			}
		case flow.StateScheduleConsultation:
			if err := driver.Info(ctx, "You're booked. We'll reach out to confirm a time."); err != nil {
				return err
			}
			if _, err := fn.Modal().HandleModalClose(ctx); err != nil {
				return err
			}
		case flow.StateRequestedCommunity:
			if err := driver.Info(ctx, "Thanks! We'll let you know about community projects near you."); err != nil {
				return err
			}
			if _, err := fn.Modal().HandleModalClose(ctx); err != nil {
				return err
			}
		default:
			return fmt.Errorf("leadflow-cli: unexpected state %q", fn.State())
		}
	}
	return nil
}

func addressStep(ctx context.Context, fn *funnel.Funnel, driver prompt.Driver) error {
	address := fn.Address()
	if msg := address.ErrorMessage(); msg != "" {
		if err := driver.Info(ctx, msg); err != nil {
			return err
		}
	}

	text, err := driver.Input(ctx, prompt.InputConfig{
		Message: "Property address",
		Default: address.Input(),
		Help:    "Start typing a street address to see suggestions",
	})
	if err != nil {
		return err
	}
	if err := address.HandleInput(ctx, text); err != nil {
		return nil
	}

	matches := address.Matches()
	if len(matches) == 0 {
		return driver.Info(ctx, "No matching addresses. Try a different street.")
	}

	options := make([]string, 0, len(matches)+1)
	for _, match := range matches {
		options = append(options, match.Display())
	}
	options = append(options, "Search again")

	choice, err := driver.Select(ctx, prompt.SelectConfig{
		Message: "Select your address",
		Options: options,
	})
	if err != nil {
		return err
	}
	if choice < 0 || choice >= len(matches) {
		return nil
	}

	address.HandleMatchSelection(matches[choice])
	if err := address.Submit(ctx); err != nil {
		return nil
	}
	return nil
}

func contactStep(ctx context.Context, fn *funnel.Funnel, driver prompt.Driver) error {
	contact := fn.Contact()
	if msg := contact.ErrorMessage(); msg != "" {
		if err := driver.Info(ctx, msg); err != nil {
			return err
		}
	}

	fields := []struct {
		message string
		current string
		set     func(string)
	}{
		{"First name", contact.Fields().FirstName, contact.SetFirstName},
		{"Last name", contact.Fields().LastName, contact.SetLastName},
		{"Email", contact.Fields().Email, contact.SetEmail},
		{"Phone", contact.Fields().Phone, contact.SetPhone},
		{"When are you hoping to build?", contact.Fields().DesiredTimeline, contact.SetDesiredTimeline},
	}
	for _, field := range fields {
		value, err := driver.Input(ctx, prompt.InputConfig{Message: field.message, Default: field.current})
		if err != nil {
			if errors.Is(err, prompt.ErrAborted) {
				return closeOrResume(ctx, fn, driver)
			}
			return err
		}
		field.set(value)
	}

	ok, err := driver.Confirm(ctx, prompt.ConfirmConfig{Message: "Submit your details?", Default: true})
	if err != nil {
		return err
	}
	if !ok {
		return closeOrResume(ctx, fn, driver)
	}

	// Progress labels print through the analysis notify callback configured
	// at construction; submission failures surface via ErrorMessage on the
	// next pass through the loop.
	_ = contact.Submit(ctx)
	return nil
}

func resultsStep(ctx context.Context, fn *funnel.Funnel, driver prompt.Driver) error {
	estimate := fn.Estimate()
	low, high := estimate.Range()
	message := fmt.Sprintf("Estimated offer for %s: $%d - $%d (jurisdiction: %s)",
		fn.Address().Input(), low, high, estimate.JurisdictionStatus())
	if err := driver.Info(ctx, message); err != nil {
		return err
	}

	choice, err := driver.Select(ctx, prompt.SelectConfig{
		Message: "Next step",
		Options: []string{
			"Schedule a consultation",
			"Ask about community projects instead",
			"Close",
		},
	})
	if err != nil {
		return err
	}

	switch choice {
	case 0:
		estimate.HandleScheduleConsultationClick(ctx)
	case 1:
		estimate.HandleRequestCommunityClick(ctx)
	default:
		_, err := fn.Modal().HandleModalClose(ctx)
		return err
	}
	return nil
}

// closeOrResume applies the modal close policy; a declined confirmation drops
// back into the loop with state untouched.
func closeOrResume(ctx context.Context, fn *funnel.Funnel, driver prompt.Driver) error {
	closed, err := fn.Modal().HandleModalClose(ctx)
	if err != nil {
		if errors.Is(err, funnel.ErrExitRefused) {
			return driver.Info(ctx, "Hang tight, we're still submitting your details.")
		}
		return err
	}
	if !closed {
		return driver.Info(ctx, "Okay, picking up where you left off.")
	}
	return nil
}

// demoEstimates prices parcels deterministically from the APN so repeated runs
// show stable numbers.
type demoEstimates struct{}

func (demoEstimates) Estimate(ctx context.Context, req services.EstimateRequest) (services.Estimate, error) {
	if err := ctx.Err(); err != nil {
		return services.Estimate{}, err
	}

	h := fnv.New32a()
	h.Write([]byte(req.Parcel.APN))
	base := int64(90_000 + h.Sum32()%60_000)

	return services.Estimate{
		JurisdictionStatus: "supported",
		Low:                base,
		High:               base + 45_000,
	}, nil
}

// demoLeads prints captured leads instead of delivering them anywhere.
type demoLeads struct {
	out *os.File
}

func (d demoLeads) CreateLead(ctx context.Context, lead services.Lead) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	fmt.Fprintf(d.out, "lead captured: %s %s <%s> for %s\n",
		lead.Contact.FirstName, lead.Contact.LastName, lead.Contact.Email, lead.Address)
	return nil
}
