package config

const (
	defaultCacheDB       = "~/.local/share/proflens/ratings.db"
	defaultOverridesPath = "~/.config/proflens/overrides.json"
	defaultLogDir        = "~/.local/share/proflens/logs"

	// DefaultSchoolID is the UMass Amherst encoding used when no school is
	// configured. Lookups are always scoped to one school.
	DefaultSchoolID = "U2Nob29sLTE1MTM"

	defaultRMPBaseURL           = "https://www.ratemyprofessors.com/graphql"
	defaultRMPAuthToken         = "dGVzdDp0ZXN0"
	defaultRMPReferer           = "https://www.ratemyprofessors.com/"
	defaultRequestTimeout       = 10
	defaultMinRequestIntervalMS = 350

	defaultSuccessTTLHours    = 7 * 24
	defaultNotFoundTTLMinutes = 60

	defaultOverallWeight    = 0.7
	defaultDifficultyWeight = 0.3

	defaultLogFormat = "console"
	defaultLogLevel  = "info"
)

// defaultAlternateSchoolIDs lists upstream encodings observed for the default
// school. The search API has drifted between these formats over time.
var defaultAlternateSchoolIDs = []string{"U2Nob29sLTE1MTM", "U2Nob29sOjE1MTM", "1513"}

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			CacheDB:       defaultCacheDB,
			OverridesPath: defaultOverridesPath,
			LogDir:        defaultLogDir,
		},
		School: School{
			ID:           DefaultSchoolID,
			AlternateIDs: append([]string(nil), defaultAlternateSchoolIDs...),
		},
		RMP: RMP{
			BaseURL:              defaultRMPBaseURL,
			AuthToken:            defaultRMPAuthToken,
			Referer:              defaultRMPReferer,
			RequestTimeout:       defaultRequestTimeout,
			MinRequestIntervalMS: defaultMinRequestIntervalMS,
		},
		Cache: Cache{
			SuccessTTLHours:    defaultSuccessTTLHours,
			NotFoundTTLMinutes: defaultNotFoundTTLMinutes,
		},
		Weights: Weights{
			Overall:    defaultOverallWeight,
			Difficulty: defaultDifficultyWeight,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
