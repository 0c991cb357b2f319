package addresssearch

import "net/http"

// Component is a small, extraction-friendly wrapper around the address-search
// handler, its configuration, and routing helpers.
type Component struct {
	opts Options
}

// New constructs a new component with default options plus any overrides.
func New(fns ...OptionFn) *Component {
	opts := NewOptions(fns...)
	return &Component{opts: opts}
}

// Options returns a copy of the component configuration.
func (c *Component) Options() Options {
	if c == nil {
		return DefaultOptions()
	}
	opts := c.opts
	opts.normalize()
	return opts
}

// Handler returns a net/http handler for typeahead queries.
func (c *Component) Handler() http.Handler {
	if c == nil {
		return Handler()
	}
	return HandlerWithOptions(c.opts)
}

// RegisterRoutes registers the component handler under basePath on mux.
func (c *Component) RegisterRoutes(mux Mux, basePath string) (string, error) {
	if c == nil {
		return RegisterRoutes(mux, basePath)
	}
	return RegisterRoutesWithOptions(mux, basePath, c.opts)
}

// Lookup returns a services.AddressLookup backed by the component dataset.
func (c *Component) Lookup() *Lookup {
	return NewLookup(func(o *Options) {
		if c != nil {
			*o = c.opts
		}
	})
}
