package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains file and directory configuration.
type Paths struct {
	CacheDB       string `toml:"cache_db"`
	OverridesPath string `toml:"overrides_path"`
	LogDir        string `toml:"log_dir"`
}

// School scopes every rating lookup to a single institution.
type School struct {
	ID string `toml:"id"`
	// AlternateIDs lists alternate upstream encodings of the same school.
	// The institution filter may fall back to these, never to a different school.
	AlternateIDs []string `toml:"alternate_ids"`
}

// RMP contains configuration for the rating search API.
type RMP struct {
	BaseURL              string `toml:"base_url"`
	AuthToken            string `toml:"auth_token"`
	Referer              string `toml:"referer"`
	RequestTimeout       int    `toml:"request_timeout"`
	MinRequestIntervalMS int    `toml:"min_request_interval_ms"`
}

// Cache contains configuration for the resolved-rating cache.
type Cache struct {
	SuccessTTLHours    int `toml:"success_ttl_hours"`
	NotFoundTTLMinutes int `toml:"not_found_ttl_minutes"`
}

// Weights tunes how display scores combine rating and difficulty.
type Weights struct {
	Overall    float64 `toml:"overall"`
	Difficulty float64 `toml:"difficulty"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// Config encapsulates all configuration values for proflens.
//
// Configuration sections by subsystem:
//   - Paths: cache database, override catalog, and log locations
//   - School: target institution id plus alternate encodings
//   - RMP: rating API endpoint, credentials, and rate limiting
//   - Cache: TTLs for successful and not-found resolutions
//   - Weights: score weighting for display ranking
//   - Logging: log format and level
type Config struct {
	Paths   Paths   `toml:"paths"`
	School  School  `toml:"school"`
	RMP     RMP     `toml:"rmp"`
	Cache   Cache   `toml:"cache"`
	Weights Weights `toml:"weights"`
	Logging Logging `toml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/proflens/config.toml")
}

// Load locates, parses, and validates a configuration file. The returned config has all
// path fields expanded and normalized.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("proflens.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// EnsureDirectories creates the directories backing the cache database,
// override catalog, and logs.
func (c *Config) EnsureDirectories() error {
	dirs := []string{c.Paths.LogDir}
	if strings.TrimSpace(c.Paths.CacheDB) != "" {
		dirs = append(dirs, filepath.Dir(c.Paths.CacheDB))
	}
	if strings.TrimSpace(c.Paths.OverridesPath) != "" {
		dirs = append(dirs, filepath.Dir(c.Paths.OverridesPath))
	}
	for _, dir := range dirs {
		if strings.TrimSpace(dir) == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	return nil
}

// SuccessTTL returns the cache lifetime for resolved ratings.
func (c *Config) SuccessTTL() time.Duration {
	return time.Duration(c.Cache.SuccessTTLHours) * time.Hour
}

// NotFoundTTL returns the cache lifetime for not-found markers.
func (c *Config) NotFoundTTL() time.Duration {
	return time.Duration(c.Cache.NotFoundTTLMinutes) * time.Minute
}

// MinRequestInterval returns the minimum spacing between rating API calls.
func (c *Config) MinRequestInterval() time.Duration {
	return time.Duration(c.RMP.MinRequestIntervalMS) * time.Millisecond
}

// RequestTimeout returns the HTTP timeout for rating API calls.
func (c *Config) RequestTimeout() time.Duration {
	return time.Duration(c.RMP.RequestTimeout) * time.Second
}

// SchoolAllowList returns the configured school id plus its alternate
// encodings, used by the institution filter.
func (c *Config) SchoolAllowList() []string {
	allow := make([]string, 0, len(c.School.AlternateIDs)+1)
	if id := strings.TrimSpace(c.School.ID); id != "" {
		allow = append(allow, id)
	}
	for _, id := range c.School.AlternateIDs {
		if id = strings.TrimSpace(id); id != "" {
			allow = append(allow, id)
		}
	}
	return allow
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}

	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
