package addresssearch

import (
	"sort"
	"strings"

	"github.com/goliatone/go-leadflow/pkg/services"
)

const (
	prefixScore   = 1.0
	containsScore = 0.5
)

// Search returns ranked matches for query. Prefix matches on the street
// address rank before substring matches anywhere in "address, context"; ties
// break lexically so output is deterministic.
func Search(entries []Entry, query string, limit int, opts Options) []services.AddressMatch {
	limit = clampLimit(limit, opts)
	if limit == 0 {
		return nil
	}

	query = strings.TrimSpace(query)
	if query == "" {
		if opts.EmptySearchMode == EmptySearchTop {
			n := len(entries)
			if n > limit {
				n = limit
			}
			return toMatches(entries[:n], containsScore)
		}
		return nil
	}

	q := strings.ToLower(query)
	matches := make([]matchedEntry, 0, 16)
	for _, entry := range entries {
		lowerAddress := strings.ToLower(entry.Address)
		haystack := lowerAddress
		if entry.Context != "" {
			haystack = lowerAddress + ", " + strings.ToLower(entry.Context)
		}
		if !strings.Contains(haystack, q) {
			continue
		}
		matches = append(matches, matchedEntry{
			entry:    entry,
			isPrefix: strings.HasPrefix(lowerAddress, q),
		})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].isPrefix != matches[j].isPrefix {
			return matches[i].isPrefix
		}
		return matches[i].entry.Address < matches[j].entry.Address
	})

	if len(matches) > limit {
		matches = matches[:limit]
	}

	out := make([]services.AddressMatch, 0, len(matches))
	for _, match := range matches {
		score := containsScore
		if match.isPrefix {
			score = prefixScore
		}
		out = append(out, services.AddressMatch{
			Address: match.entry.Address,
			Context: match.entry.Context,
			ID:      match.entry.ID,
			Score:   score,
		})
	}
	return out
}

type matchedEntry struct {
	entry    Entry
	isPrefix bool
}

func toMatches(entries []Entry, score float64) []services.AddressMatch {
	out := make([]services.AddressMatch, 0, len(entries))
	for _, entry := range entries {
		out = append(out, services.AddressMatch{
			Address: entry.Address,
			Context: entry.Context,
			ID:      entry.ID,
			Score:   score,
		})
	}
	return out
}
