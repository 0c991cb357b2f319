package addresssearch

import (
	"context"
	"fmt"

	"github.com/goliatone/go-leadflow/pkg/services"
)

// Lookup serves typeahead and parcel queries straight from the configured
// dataset. It satisfies services.AddressLookup and services.ParcelLookup,
// which lets the funnel run without a network backend in tests, examples,
// and demos.
type Lookup struct {
	opts    Options
	entries []Entry
	byID    map[string]Entry
}

// NewLookup builds a dataset-backed lookup with default options plus any
// overrides. Without WithEntries it serves the embedded default dataset.
func NewLookup(fns ...OptionFn) *Lookup {
	opts := NewOptions(fns...)
	entries := opts.Entries
	if entries == nil {
		entries = DefaultEntries()
	}
	byID := make(map[string]Entry, len(entries))
	for _, entry := range entries {
		byID[entry.ID] = entry
	}
	return &Lookup{opts: opts, entries: entries, byID: byID}
}

// Search implements services.AddressLookup.
func (l *Lookup) Search(ctx context.Context, text string) ([]services.AddressMatch, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return Search(l.entries, text, 0, l.opts), nil
}

// Parcel implements services.ParcelLookup.
func (l *Lookup) Parcel(ctx context.Context, id string) (services.Parcel, error) {
	if err := ctx.Err(); err != nil {
		return services.Parcel{}, err
	}
	entry, ok := l.byID[id]
	if !ok {
		return services.Parcel{}, fmt.Errorf("addresssearch: parcel %q not found", id)
	}
	return entry.Parcel, nil
}
