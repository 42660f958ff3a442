package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"marquee/internal/backing"
	"marquee/internal/config"
	"marquee/internal/directory"
	"marquee/internal/durable"
	"marquee/internal/identity"
	"marquee/internal/logging"
	"marquee/internal/resourcecache"
	"marquee/internal/resources"
	"marquee/internal/venues"
	"marquee/internal/workflow"
)

type commandContext struct {
	configFlag *string

	configOnce sync.Once
	config     *config.Config
	configErr  error

	appOnce sync.Once
	app     *app
	appErr  error
}

// app holds the wired client stack shared by all commands.
type app struct {
	logger    *slog.Logger
	store     *durable.Store
	backing   *backing.Client
	directory *directory.Client
	bootstrap *identity.Bootstrap
	venueList *resourcecache.Cache[[]venues.Venue]
	ratings   *resourcecache.Cache[[]venues.Rating]
	profiles  *resourcecache.Cache[venues.Profile]
	allVenues *resources.Resource[[]venues.Venue]
	workflows *workflow.Service
}

func newCommandContext(configFlag *string) *commandContext {
	return &commandContext{configFlag: configFlag}
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

// ensureApp wires the full stack on first use. Commands that only touch
// configuration never pay for it.
func (c *commandContext) ensureApp() (*app, error) {
	c.appOnce.Do(func() {
		cfg, err := c.ensureConfig()
		if err != nil {
			c.appErr = err
			return
		}
		c.app, c.appErr = buildApp(cfg)
	})
	return c.app, c.appErr
}

func (c *commandContext) shutdown() {
	if c.app == nil {
		return
	}
	c.app.workflows.Wait()
	if c.app.store != nil {
		_ = c.app.store.Close()
	}
}

func buildApp(cfg *config.Config) (*app, error) {
	logger, err := logging.New(logging.Options{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Output: os.Stderr,
	})
	if err != nil {
		return nil, fmt.Errorf("configure logging: %w", err)
	}

	var store *durable.Store
	if cfg.Cache.Persist {
		store, err = durable.Open(cfg.Paths.StateDir, logger)
		if err != nil {
			return nil, fmt.Errorf("open state store: %w", err)
		}
	}

	client, err := backing.New(cfg.Backing.BaseURL, cfg.Backing.APIToken,
		backing.WithTimeout(cfg.BackingTimeout()))
	if err != nil {
		return nil, fmt.Errorf("configure backing client: %w", err)
	}

	var provider *directory.Client
	if strings.TrimSpace(cfg.Directory.APIKey) != "" {
		provider, err = directory.New(cfg.Directory.APIKey, cfg.Directory.BaseURL)
		if err != nil {
			return nil, fmt.Errorf("configure directory client: %w", err)
		}
	}

	var cacheOpts []resourcecache.Option[[]venues.Venue]
	var ratingOpts []resourcecache.Option[[]venues.Rating]
	var profileOpts []resourcecache.Option[venues.Profile]
	if store != nil {
		cacheOpts = append(cacheOpts, resourcecache.WithDurable[[]venues.Venue](store))
		ratingOpts = append(ratingOpts, resourcecache.WithDurable[[]venues.Rating](store))
		profileOpts = append(profileOpts, resourcecache.WithDurable[venues.Profile](store))
	}

	venueList := resourcecache.New[[]venues.Venue]("venues", cfg.VenueFreshnessWindow(), logger, cacheOpts...)
	ratings := resourcecache.New[[]venues.Rating]("ratings", cfg.RatingFreshnessWindow(), logger, ratingOpts...)
	profiles := resourcecache.New[venues.Profile]("profiles", cfg.ProfileFreshnessWindow(), logger, profileOpts...)

	bootstrap := identity.New(client, logger, identity.Options{
		SessionTimeout: cfg.SessionTimeout(),
		AttemptTimeout: cfg.AttemptTimeout(),
		Backoff:        cfg.IdentityBackoff(),
	})

	var enricher workflow.Enricher
	if provider != nil {
		enricher = provider
	}

	workflows := workflow.NewService(workflow.Options{
		Store:     client,
		Enricher:  enricher,
		Bootstrap: bootstrap,
		Ratings:   ratings,
		VenueList: venueList,
		Profiles:  profiles,
		Logger:    logger,
	})

	return &app{
		logger:    logger,
		store:     store,
		backing:   client,
		directory: provider,
		bootstrap: bootstrap,
		venueList: venueList,
		ratings:   ratings,
		profiles:  profiles,
		allVenues: resources.New(venueList, "all", client.ListVenues),
		workflows: workflows,
	}, nil
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}
