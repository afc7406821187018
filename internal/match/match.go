package match

import (
	"sort"
	"strings"

	"proflens/internal/nameutil"
	"proflens/internal/rmp"
)

// Pick selects the best candidate for a free-text schedule name, or reports
// that none is acceptable. A wrong pick silently shows the wrong person's
// rating, so the heuristic is deliberately conservative:
//
//  1. Keep candidates whose surname matches exactly (case-insensitive).
//  2. Within those, keep candidates whose first name starts with the
//     schedule name's first initial.
//  3. If a narrowing step empties the pool, fall back to the previous one.
//  4. Rank by exact full-name match first, then by rating count.
//
// Candidates with missing name fields compare as empty strings.
func Pick(scheduleName string, candidates []rmp.Teacher) (rmp.Teacher, bool) {
	first, last := nameutil.Split(scheduleName)
	firstU := strings.ToUpper(first)
	lastU := strings.ToUpper(last)

	var sameLast []rmp.Teacher
	for _, c := range candidates {
		if strings.ToUpper(c.LastName) == lastU {
			sameLast = append(sameLast, c)
		}
	}

	var sameInitial []rmp.Teacher
	initial := ""
	if firstU != "" {
		initial = firstU[:1]
	}
	for _, c := range sameLast {
		if strings.HasPrefix(strings.ToUpper(c.FirstName), initial) {
			sameInitial = append(sameInitial, c)
		}
	}

	pool := candidates
	if len(sameLast) > 0 {
		pool = sameLast
	}
	if len(sameInitial) > 0 {
		pool = sameInitial
	}
	if len(pool) == 0 {
		return rmp.Teacher{}, false
	}

	ranked := make([]rmp.Teacher, len(pool))
	copy(ranked, pool)
	sort.SliceStable(ranked, func(i, j int) bool {
		iExact := exactName(ranked[i], firstU, lastU)
		jExact := exactName(ranked[j], firstU, lastU)
		if iExact != jExact {
			return iExact
		}
		return ranked[i].NumRatings > ranked[j].NumRatings
	})
	return ranked[0], true
}

// LikelyMatch reports whether a candidate's name plausibly refers to the
// schedule name: exact surname, and a matching first initial when both sides
// supply a first name.
func LikelyMatch(scheduleName, candidateFirst, candidateLast string) bool {
	first, last := nameutil.Split(scheduleName)
	if last == "" || candidateLast == "" {
		return false
	}
	if !strings.EqualFold(last, candidateLast) {
		return false
	}
	if first == "" || candidateFirst == "" {
		return true
	}
	return strings.EqualFold(first[:1], candidateFirst[:1])
}

func exactName(c rmp.Teacher, firstU, lastU string) bool {
	return strings.ToUpper(c.FirstName) == firstU && strings.ToUpper(c.LastName) == lastU
}
