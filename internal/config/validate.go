package config

import (
	"net"
	"path/filepath"
	"strings"

	foundation "git.home.luguber.info/inful/oakdocs/internal/foundation/errors"
)

// Validate checks the tool configuration after defaults have been applied.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Content.Dir) == "" {
		return invalid("content.dir", "content directory must not be empty")
	}
	if strings.TrimSpace(c.Output.Dir) == "" {
		return invalid("output.dir", "output directory must not be empty")
	}
	if within(c.Output.Dir, c.Content.Dir) {
		return invalid("output.dir", "output directory must not be the content directory or inside it")
	}
	if _, _, err := net.SplitHostPort(c.Server.Addr); err != nil {
		return foundation.ConfigError("server.addr must be host:port").
			WithContext("field", "server.addr").
			WithContext("value", c.Server.Addr).
			WithCause(err).
			Build()
	}
	if b := c.Site.Base; b != nil && (!strings.HasPrefix(*b, "/") || !strings.HasSuffix(*b, "/")) {
		return invalid("site.base", "base path must start and end with /")
	}
	if t := c.Site.Title; t != nil && strings.TrimSpace(*t) == "" {
		return invalid("site.title", "title override must not be empty")
	}
	return nil
}

// within reports whether dir is root or lies below it.
func within(dir, root string) bool {
	d, err := filepath.Abs(dir)
	if err != nil {
		return false
	}
	r, err := filepath.Abs(root)
	if err != nil {
		return false
	}
	rel, err := filepath.Rel(r, d)
	if err != nil {
		return false
	}
	return rel == "." || (rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)))
}

func invalid(field, msg string) error {
	return foundation.ConfigError(msg).WithContext("field", field).Build()
}
