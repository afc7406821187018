package config

import (
	"errors"
	"fmt"
	"net/url"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateSchool(); err != nil {
		return err
	}
	if err := c.validateRMP(); err != nil {
		return err
	}
	if err := c.validateWeights(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateSchool() error {
	if c.School.ID == "" {
		defaultPath, err := DefaultConfigPath()
		if err != nil {
			defaultPath = "~/.config/proflens/config.toml"
		}
		return fmt.Errorf("school.id is required. Set PROFLENS_SCHOOL_ID env var or edit %s (create with 'proflens config init')", defaultPath)
	}
	return nil
}

func (c *Config) validateRMP() error {
	parsed, err := url.Parse(c.RMP.BaseURL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return fmt.Errorf("rmp.base_url must be an absolute URL, got %q", c.RMP.BaseURL)
	}
	return nil
}

func (c *Config) validateWeights() error {
	if c.Weights.Overall < 0 || c.Weights.Difficulty < 0 {
		return errors.New("weights.overall and weights.difficulty must be non-negative")
	}
	if c.Weights.Overall == 0 && c.Weights.Difficulty == 0 {
		return errors.New("weights.overall and weights.difficulty cannot both be zero")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be \"console\" or \"json\", got %q", c.Logging.Format)
	}
	return nil
}
