package addresssearch

import (
	"net/http"

	"github.com/goliatone/go-leadflow/pkg/services"
)

type EmptySearchMode string

const (
	EmptySearchNone EmptySearchMode = "none"
	EmptySearchTop  EmptySearchMode = "top"
)

type GuardFunc func(r *http.Request) error

type Options struct {
	RoutePath       string
	SearchParam     string
	LimitParam      string
	DefaultLimit    int
	MaxLimit        int
	EmptySearchMode EmptySearchMode
	Guard           GuardFunc

	Entries []Entry
}

// Entry is one searchable parcel address in the backing dataset.
type Entry struct {
	Address string
	Context string
	ID      string
	Parcel  services.Parcel
}

type OptionFn func(*Options)

func DefaultOptions() Options {
	return Options{
		RoutePath:       "/api/address-search",
		SearchParam:     "q",
		LimitParam:      "limit",
		DefaultLimit:    8,
		MaxLimit:        25,
		EmptySearchMode: EmptySearchNone,
	}
}

func NewOptions(fns ...OptionFn) Options {
	opts := DefaultOptions()
	for _, fn := range fns {
		if fn == nil {
			continue
		}
		fn(&opts)
	}
	opts.normalize()
	return opts
}

// normalize backfills zero fields with defaults, clamps limits, and detaches
// the entries slice from the caller's copy.
func (o *Options) normalize() {
	if o.DefaultLimit <= 0 {
		o.DefaultLimit = 8
	}
	if o.MaxLimit <= 0 {
		o.MaxLimit = 25
	}
	if o.EmptySearchMode == "" {
		o.EmptySearchMode = EmptySearchNone
	}
	if o.RoutePath == "" {
		o.RoutePath = "/api/address-search"
	}
	if o.SearchParam == "" {
		o.SearchParam = "q"
	}
	if o.LimitParam == "" {
		o.LimitParam = "limit"
	}
	if o.Entries != nil {
		o.Entries = append([]Entry{}, o.Entries...)
	}
}

func WithRoutePath(path string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.RoutePath = path
	}
}

func WithSearchParam(name string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.SearchParam = name
	}
}

func WithLimitParam(name string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.LimitParam = name
	}
}

func WithDefaultLimit(limit int) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.DefaultLimit = limit
	}
}

func WithMaxLimit(limit int) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.MaxLimit = limit
	}
}

func WithEmptySearchMode(mode EmptySearchMode) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.EmptySearchMode = mode
	}
}

func WithGuard(guard GuardFunc) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Guard = guard
	}
}

func WithEntries(entries []Entry) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		if entries == nil {
			o.Entries = nil
			return
		}
		o.Entries = append([]Entry{}, entries...)
	}
}

func clampLimit(limit int, opts Options) int {
	if limit < 0 {
		return 0
	}
	if limit == 0 {
		limit = opts.DefaultLimit
	}
	if opts.MaxLimit > 0 && limit > opts.MaxLimit {
		return opts.MaxLimit
	}
	return limit
}
