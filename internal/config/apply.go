package config

import "git.home.luguber.info/inful/oakdocs/internal/site"

// Apply overlays the configured site overrides onto cfg.
func (c *Config) Apply(cfg *site.SiteConfig) {
	o := c.Site
	if o.Title != nil {
		cfg.Title = *o.Title
	}
	if o.Description != nil {
		cfg.Description = *o.Description
	}
	if o.Base != nil {
		cfg.Base = *o.Base
	}
	if o.IgnoreDeadLinks != nil {
		cfg.IgnoreDeadLinks = *o.IgnoreDeadLinks
	}
}

// SiteConfig returns the authoritative Oak Chain configuration with overrides applied.
func (c *Config) SiteConfig() *site.SiteConfig {
	cfg := site.OakChain()
	c.Apply(cfg)
	return cfg
}
