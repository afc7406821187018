package resolver

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"proflens/internal/logging"
	"proflens/internal/match"
	"proflens/internal/nameutil"
	"proflens/internal/overrides"
	"proflens/internal/rating"
	"proflens/internal/ratingcache"
	"proflens/internal/rmp"
)

// Service resolves free-text instructor names to rating records. It is the
// central orchestrator: cache check, manual override lookup, throttled
// search, candidate matching, and cache write-back.
//
// Concurrent calls for the same name may race into duplicate searches; that
// is an accepted inefficiency because the eventual cache write is a full-row
// overwrite of the same value.
type Service struct {
	client      rmp.Searcher
	cache       *ratingcache.Store
	overrides   *overrides.Catalog
	logger      *slog.Logger
	allowList   []string
	successTTL  time.Duration
	notFoundTTL time.Duration
}

// Options configures optional resolver behavior.
type Option func(*Service)

// WithOverrides attaches a manual override catalog. A nil catalog is ignored.
func WithOverrides(catalog *overrides.Catalog) Option {
	return func(s *Service) { s.overrides = catalog }
}

// WithAllowList sets the alternate institution-id encodings that count as the
// same school. It only ever widens matching within one institution; results
// from unrelated schools are never admitted.
func WithAllowList(ids []string) Option {
	return func(s *Service) { s.allowList = ids }
}

// WithTTLs overrides the cache lifetimes for successful and not-found
// resolutions.
func WithTTLs(success, notFound time.Duration) Option {
	return func(s *Service) {
		if success > 0 {
			s.successTTL = success
		}
		if notFound > 0 {
			s.notFoundTTL = notFound
		}
	}
}

// New constructs a resolver around a search client and a cache store.
func New(client rmp.Searcher, cache *ratingcache.Store, logger *slog.Logger, opts ...Option) *Service {
	service := &Service{
		client:      client,
		cache:       cache,
		logger:      logging.NewComponentLogger(logger, "resolver"),
		successTTL:  7 * 24 * time.Hour,
		notFoundTTL: time.Hour,
	}
	for _, opt := range opts {
		opt(service)
	}
	return service
}

// Resolve returns the rating resolution for one schedule name at one school.
// Every outcome is terminal: a cached entry, an override hit, a matched
// candidate, or a NotFound marker. Network and storage failures degrade to
// NotFound rather than erroring; callers only ever see a resolution.
func (s *Service) Resolve(ctx context.Context, schoolID, scheduleName string) rating.Resolution {
	first, last := nameutil.Split(scheduleName)
	key := ratingcache.Key(schoolID, first, last)

	if cached, ok, err := s.cache.GetWithTTL(ctx, key); err != nil {
		s.logger.Warn("cache read failed, resolving without cache",
			logging.String(logging.FieldEventType, "cache_read_failed"),
			logging.String("cache_key", key),
			logging.Error(err))
	} else if ok {
		return cached
	}

	if res, ok := s.resolveOverride(ctx, key, scheduleName); ok {
		return res
	}

	candidates := s.client.SearchTeachers(ctx, scheduleName, schoolID)
	pool := s.filterToSchool(candidates, schoolID)
	if len(pool) == 0 {
		return s.finish(ctx, key, scheduleName, rating.NoMatch())
	}

	best, ok := match.Pick(scheduleName, pool)
	if !ok {
		return s.finish(ctx, key, scheduleName, rating.NoMatch())
	}
	return s.finish(ctx, key, scheduleName, rating.Found(best))
}

// ResolveBatch resolves each name independently and returns a map keyed by
// the input names. Duplicate names are not deduplicated; each occurrence
// performs its own cache check.
func (s *Service) ResolveBatch(ctx context.Context, schoolID string, scheduleNames []string) map[string]rating.Resolution {
	batchID := uuid.NewString()
	logger := s.logger.With(logging.String(logging.FieldBatchID, batchID))
	logger.Info("resolving batch",
		logging.String(logging.FieldSchoolID, schoolID),
		logging.Int("names", len(scheduleNames)))

	results := make(map[string]rating.Resolution, len(scheduleNames))
	for _, name := range scheduleNames {
		results[name] = s.Resolve(ctx, schoolID, name)
	}

	matched := 0
	for _, res := range results {
		if _, ok := res.Teacher(); ok {
			matched++
		}
	}
	logger.Info("batch resolved",
		logging.Int("matched", matched),
		logging.Int("total", len(results)))
	return results
}

// FetchByID returns the rating record for an explicit teacher id, or nil when
// the id is unknown or the fetch fails.
func (s *Service) FetchByID(ctx context.Context, teacherID string) *rmp.Teacher {
	return s.client.TeacherByID(ctx, teacherID)
}

// SearchTeachers exposes the raw throttled search. Queries shorter than two
// characters return nothing without touching the network.
func (s *Service) SearchTeachers(ctx context.Context, text, schoolID string) []rmp.Teacher {
	text = strings.TrimSpace(text)
	if len(text) < 2 {
		return nil
	}
	return s.client.SearchTeachers(ctx, text, schoolID)
}

func (s *Service) resolveOverride(ctx context.Context, key, scheduleName string) (rating.Resolution, bool) {
	if s.overrides == nil {
		return rating.Resolution{}, false
	}
	teacherID, ok, err := s.overrides.Lookup(scheduleName)
	if err != nil {
		s.logger.Warn("override lookup failed, falling through to search",
			logging.String(logging.FieldEventType, "override_lookup_failed"),
			logging.Error(err))
		return rating.Resolution{}, false
	}
	if !ok {
		return rating.Resolution{}, false
	}

	teacher := s.client.TeacherByID(ctx, teacherID)
	if teacher == nil {
		// Keep the override in place but let search try; the pinned id may
		// refer to a record the API temporarily failed to serve.
		return rating.Resolution{}, false
	}
	return s.finish(ctx, key, scheduleName, rating.Found(*teacher)), true
}

// filterToSchool keeps only candidates from the target institution. When the
// exact-id filter comes up empty and the target id is one of the allow-listed
// alternate encodings, the filter retries against the whole allow-list. It
// never falls back to candidates from other institutions.
func (s *Service) filterToSchool(candidates []rmp.Teacher, schoolID string) []rmp.Teacher {
	if schoolID == "" {
		return candidates
	}

	var pool []rmp.Teacher
	for _, c := range candidates {
		if c.School.ID == schoolID {
			pool = append(pool, c)
		}
	}
	if len(pool) > 0 || !s.allowListed(schoolID) {
		return pool
	}

	for _, c := range candidates {
		if s.allowListed(c.School.ID) {
			pool = append(pool, c)
		}
	}
	return pool
}

func (s *Service) allowListed(id string) bool {
	for _, allowed := range s.allowList {
		if allowed == id {
			return true
		}
	}
	return false
}

func (s *Service) finish(ctx context.Context, key, scheduleName string, res rating.Resolution) rating.Resolution {
	ttl := s.successTTL
	if res.NotFound {
		ttl = s.notFoundTTL
	}
	if err := s.cache.SetWithTTL(ctx, key, res, ttl); err != nil {
		s.logger.Warn("cache write failed",
			logging.String(logging.FieldEventType, "cache_write_failed"),
			logging.String("cache_key", key),
			logging.Error(err))
	}

	if teacher, ok := res.Teacher(); ok {
		s.logger.Debug("resolved instructor",
			logging.String("schedule_name", scheduleName),
			logging.String("teacher_id", teacher.ID),
			logging.Float64("avg_rating", teacher.AvgRating))
	} else {
		s.logger.Debug("no rating match",
			logging.String("schedule_name", scheduleName))
	}
	return res
}
