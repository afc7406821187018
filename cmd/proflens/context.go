package main

import (
	"log/slog"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"proflens/internal/config"
	"proflens/internal/logging"
	"proflens/internal/overrides"
	"proflens/internal/ratelimit"
	"proflens/internal/rating"
	"proflens/internal/ratingcache"
	"proflens/internal/resolver"
	"proflens/internal/rmp"
	"proflens/internal/subjects"
)

type commandContext struct {
	configFlag *string
	jsonFlag   *bool

	configOnce sync.Once
	config     *config.Config
	configErr  error
}

func newCommandContext(configFlag *string, jsonFlag *bool) *commandContext {
	return &commandContext{
		configFlag: configFlag,
		jsonFlag:   jsonFlag,
	}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, _, _, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

func (c *commandContext) jsonOutput() bool {
	return c.jsonFlag != nil && *c.jsonFlag
}

// runtime bundles the wired components behind each command.
type runtime struct {
	cfg     *config.Config
	logger  *slog.Logger
	store   *ratingcache.Store
	catalog *overrides.Catalog
	service *resolver.Service
	browser *subjects.Browser
}

func (r *runtime) Close() {
	if r != nil && r.store != nil {
		_ = r.store.Close()
	}
}

// Score applies the configured weighting to a teacher's metrics.
func (r *runtime) Score(teacher rmp.Teacher) float64 {
	return rating.Score(r.cfg.Weights.Overall, r.cfg.Weights.Difficulty, teacher)
}

func (c *commandContext) newRuntime() (*runtime, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	return buildRuntime(cfg)
}

func buildRuntime(cfg *config.Config) (*runtime, error) {
	logger, err := logging.NewFromConfig(cfg)
	if err != nil {
		return nil, err
	}

	store, err := ratingcache.Open(cfg.Paths.CacheDB, logger)
	if err != nil {
		return nil, err
	}

	limiter := ratelimit.New(cfg.MinRequestInterval(), logger)
	client, err := rmp.New(cfg.RMP.BaseURL, cfg.RMP.AuthToken, limiter, logger,
		rmp.WithReferer(cfg.RMP.Referer),
		rmp.WithTimeout(cfg.RequestTimeout()))
	if err != nil {
		_ = store.Close()
		return nil, err
	}

	catalog := overrides.NewCatalog(cfg.Paths.OverridesPath, logger)
	service := resolver.New(client, store, logger,
		resolver.WithOverrides(catalog),
		resolver.WithAllowList(cfg.SchoolAllowList()),
		resolver.WithTTLs(cfg.SuccessTTL(), cfg.NotFoundTTL()))

	return &runtime{
		cfg:     cfg,
		logger:  logger,
		store:   store,
		catalog: catalog,
		service: service,
		browser: subjects.NewBrowser(client, logger),
	}, nil
}

func (c *commandContext) withRuntime(fn func(*runtime) error) error {
	rt, err := c.newRuntime()
	if err != nil {
		return err
	}
	defer rt.Close()
	return fn(rt)
}

// schoolOrDefault resolves the effective school id for a command: the
// --school flag when set, otherwise the configured institution.
func (c *commandContext) schoolOrDefault(flagValue string) string {
	if id := strings.TrimSpace(flagValue); id != "" {
		return id
	}
	if c.config != nil {
		return c.config.School.ID
	}
	return ""
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for cur := cmd; cur != nil; cur = cur.Parent() {
		if cur.Annotations != nil && cur.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}
