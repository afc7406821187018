package subjects

import (
	"context"
	"log/slog"
	"sort"
	"strings"

	"proflens/internal/logging"
	"proflens/internal/nameutil"
	"proflens/internal/rmp"
)

// searchTerms maps abbreviated subject codes to department names the rating
// site can actually search for. Unmapped codes search as-is.
var searchTerms = map[string]string{
	"STAT":    "Statistics",
	"STATS":   "Statistics",
	"MATH":    "Mathematics",
	"CS":      "Computer Science",
	"CMPSCI":  "Computer Science",
	"COMPSCI": "Computer Science",
	"ECON":    "Economics",
	"PSYCH":   "Psychology",
	"HIST":    "History",
	"CHEM":    "Chemistry",
	"PHYS":    "Physics",
	"BIO":     "Biology",
	"BIOL":    "Biology",
	"ENGL":    "English",
	"POLI":    "Political Science",
	"SOC":     "Sociology",
}

// TermForSubject returns the department search term for a subject code,
// falling back to the code itself when unmapped.
func TermForSubject(subject string) string {
	key := strings.ToUpper(strings.Join(strings.Fields(subject), ""))
	if term, ok := searchTerms[key]; ok {
		return term
	}
	return subject
}

// Browser runs exploratory department-wide queries. Results come straight
// from search, never from the per-name cache, so they reflect the rating
// site's current state.
type Browser struct {
	client rmp.Searcher
	logger *slog.Logger
}

// NewBrowser constructs a subject browser over a search client.
func NewBrowser(client rmp.Searcher, logger *slog.Logger) *Browser {
	return &Browser{
		client: client,
		logger: logging.NewComponentLogger(logger, "subjects"),
	}
}

// ListAll returns every rated instructor found for a subject at one school,
// sorted by average rating descending. Instructors with zero ratings are
// omitted. The subject's first token is used; tokens shorter than two
// characters return nothing.
func (b *Browser) ListAll(ctx context.Context, subject, schoolID string) []rmp.Teacher {
	pool := b.searchSubject(ctx, subject, schoolID)
	sortByRating(pool)
	return pool
}

// Alternatives suggests up to five better-rated instructors from the same
// subject, excluding the current instructor by normalized name. Candidates
// must reach max(2.5, currentRating+0.5) to qualify, so the suggestions are a
// meaningful step up rather than a lateral move.
func (b *Browser) Alternatives(ctx context.Context, subject, currentName string, currentRating float64, schoolID string) []rmp.Teacher {
	minRating := currentRating + 0.5
	if minRating < 2.5 {
		minRating = 2.5
	}
	currentKey := nameutil.NormalizeKey(currentName)

	var pool []rmp.Teacher
	for _, c := range b.searchSubject(ctx, subject, schoolID) {
		if nameutil.NormalizeKey(c.FullName()) == currentKey {
			continue
		}
		if c.AvgRating < minRating {
			continue
		}
		pool = append(pool, c)
	}
	sortByRating(pool)

	if len(pool) > 5 {
		pool = pool[:5]
	}
	return pool
}

func (b *Browser) searchSubject(ctx context.Context, subject, schoolID string) []rmp.Teacher {
	if schoolID == "" {
		return nil
	}
	fields := strings.Fields(subject)
	if len(fields) == 0 || len(fields[0]) < 2 {
		return nil
	}
	term := TermForSubject(fields[0])

	b.logger.Debug("searching subject",
		logging.String("subject", fields[0]),
		logging.String("search_term", term),
		logging.String(logging.FieldSchoolID, schoolID))

	var pool []rmp.Teacher
	for _, c := range b.client.SearchTeachers(ctx, term, schoolID) {
		if c.School.ID != schoolID {
			continue
		}
		if c.NumRatings < 1 {
			continue
		}
		pool = append(pool, c)
	}
	return pool
}

func sortByRating(pool []rmp.Teacher) {
	sort.SliceStable(pool, func(i, j int) bool {
		return pool[i].AvgRating > pool[j].AvgRating
	})
}
