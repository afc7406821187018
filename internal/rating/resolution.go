// Package rating defines the resolution result shared by the cache, the
// resolver, and presentation code.
//
// A Resolution is either a matched teacher record or an explicit not-found
// marker. Not-found is a first-class outcome, not an error: it renders as "no
// rating available" and is cached with a short TTL so transient search
// failures retry sooner than confirmed matches.
package rating

import "proflens/internal/rmp"

// Resolution is the outcome of resolving a schedule name. Exactly one branch
// is populated; use Teacher to branch.
type Resolution struct {
	Record   *rmp.Teacher `json:"teacher,omitempty"`
	NotFound bool         `json:"notFound,omitempty"`
}

// Found wraps a matched teacher record.
func Found(t rmp.Teacher) Resolution {
	return Resolution{Record: &t}
}

// NoMatch returns the explicit not-found marker.
func NoMatch() Resolution {
	return Resolution{NotFound: true}
}

// Teacher returns the matched record, if any. Callers must check ok before
// using the record.
func (r Resolution) Teacher() (rmp.Teacher, bool) {
	if r.NotFound || r.Record == nil {
		return rmp.Teacher{}, false
	}
	return *r.Record, true
}

// Valid reports whether the resolution carries exactly one branch. Cached
// payloads that fail this check are treated as corrupt.
func (r Resolution) Valid() bool {
	return r.NotFound != (r.Record != nil)
}
