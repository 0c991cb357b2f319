// Package services declares the external collaborators the funnel consumes:
// address typeahead, parcel lookup, estimate generation, and lead creation.
// The funnel depends only on these contracts; concrete transports live in
// internal/leadapi and components/addresssearch.
package services

import "context"

// AddressMatch is one ranked typeahead result. ID is the parcel identifier
// used for the follow-up parcel lookup.
type AddressMatch struct {
	Address string  `json:"address"`
	Context string  `json:"context"`
	ID      string  `json:"id"`
	Score   float64 `json:"score"`
}

// Display is the single-line rendering committed to the input field when a
// match is selected.
func (m AddressMatch) Display() string {
	if m.Context == "" {
		return m.Address
	}
	return m.Address + ", " + m.Context
}

// Parcel is the legal land-lot record behind a selected address.
type Parcel struct {
	APN          string `json:"apn"`
	Jurisdiction string `json:"jurisdiction"`
	Address      string `json:"address"`
	City         string `json:"city"`
	State        string `json:"state"`
	Zip          string `json:"zip"`
}

// EstimateRequest carries the context the estimate service prices against.
type EstimateRequest struct {
	Parcel  Parcel `json:"parcel"`
	Address string `json:"address"`
}

// Estimate is the computed offer range. JurisdictionStatus reports whether
// the local regulatory authority is supported for estimate generation.
type Estimate struct {
	JurisdictionStatus string `json:"jurisdictionStatus"`
	Low                int64  `json:"low"`
	High               int64  `json:"high"`
}

// Contact holds the visitor's details as entered on the contact form. Fields
// are trimmed and sanitized by the funnel before they reach a lead payload.
type Contact struct {
	FirstName       string `json:"firstName"`
	LastName        string `json:"lastName"`
	Email           string `json:"email"`
	Phone           string `json:"phone"`
	DesiredTimeline string `json:"desiredTimeline"`
}

// Lead is the outbound payload for lead creation.
type Lead struct {
	Contact Contact `json:"contact"`
	Parcel  Parcel  `json:"parcel"`
	Address string  `json:"address"`
	Summary string  `json:"summary,omitempty"`
}

// AddressLookup resolves free text to ranked address matches.
type AddressLookup interface {
	Search(ctx context.Context, text string) ([]AddressMatch, error)
}

// ParcelLookup resolves a match ID to its parcel record.
type ParcelLookup interface {
	Parcel(ctx context.Context, id string) (Parcel, error)
}

// EstimateService prices a parcel.
type EstimateService interface {
	Estimate(ctx context.Context, req EstimateRequest) (Estimate, error)
}

// LeadService submits a captured lead.
type LeadService interface {
	CreateLead(ctx context.Context, lead Lead) error
}
