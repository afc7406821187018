package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeSchool()
	c.normalizeRMP()
	c.normalizeCache()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if c.Paths.CacheDB, err = expandPath(c.Paths.CacheDB); err != nil {
		return fmt.Errorf("paths.cache_db: %w", err)
	}
	if c.Paths.OverridesPath, err = expandPath(c.Paths.OverridesPath); err != nil {
		return fmt.Errorf("paths.overrides_path: %w", err)
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeSchool() {
	c.School.ID = strings.TrimSpace(c.School.ID)
	if value, ok := os.LookupEnv("PROFLENS_SCHOOL_ID"); ok && strings.TrimSpace(value) != "" {
		c.School.ID = strings.TrimSpace(value)
	}
	ids := c.School.AlternateIDs[:0]
	for _, id := range c.School.AlternateIDs {
		if id = strings.TrimSpace(id); id != "" {
			ids = append(ids, id)
		}
	}
	c.School.AlternateIDs = ids
}

func (c *Config) normalizeRMP() {
	c.RMP.BaseURL = strings.TrimRight(strings.TrimSpace(c.RMP.BaseURL), "/")
	if c.RMP.BaseURL == "" {
		c.RMP.BaseURL = defaultRMPBaseURL
	}
	c.RMP.AuthToken = strings.TrimSpace(c.RMP.AuthToken)
	c.RMP.Referer = strings.TrimSpace(c.RMP.Referer)
	if c.RMP.RequestTimeout <= 0 {
		c.RMP.RequestTimeout = defaultRequestTimeout
	}
	if c.RMP.MinRequestIntervalMS <= 0 {
		c.RMP.MinRequestIntervalMS = defaultMinRequestIntervalMS
	}
}

func (c *Config) normalizeCache() {
	if c.Cache.SuccessTTLHours <= 0 {
		c.Cache.SuccessTTLHours = defaultSuccessTTLHours
	}
	if c.Cache.NotFoundTTLMinutes <= 0 {
		c.Cache.NotFoundTTLMinutes = defaultNotFoundTTLMinutes
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
