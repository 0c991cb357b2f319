// Package addresssearch provides a deterministic address typeahead: ranked
// search over a configured parcel dataset, a small net/http handler that
// returns JSON matches for form inputs, and a services.AddressLookup
// implementation so the funnel can run against local data.
//
// The default handler responds to GET and HEAD requests and supports query
// and limit parameters to filter results.
package addresssearch
