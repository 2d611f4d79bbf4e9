package config

import (
	"errors"
	"fmt"
	"os"

	foundation "git.home.luguber.info/inful/oakdocs/internal/foundation/errors"
)

const starter = `# oakdocs tool configuration.
# Values may reference environment variables as ${VAR}; .env files are loaded first.

content:
  dir: docs

output:
  dir: dist
  clean: true

# Overrides for the built-in Oak Chain site options.
site:
  # base: /oak-chain/
  ignore_dead_links: true

server:
  addr: 127.0.0.1:8089

metrics:
  enabled: false
`

// Init writes a starter configuration to path. An existing file is only
// replaced when force is set.
func Init(path string, force bool) error {
	if _, err := os.Stat(path); err == nil && !force {
		return foundation.ValidationError(fmt.Sprintf("configuration file already exists: %s (use --force to overwrite)", path)).
			WithContext("path", path).
			Build()
	} else if err != nil && !errors.Is(err, os.ErrNotExist) {
		return foundation.WrapError(err, foundation.CategoryFileSystem, "failed to stat config file").
			WithContext("path", path).
			Build()
	}
	if err := os.WriteFile(path, []byte(starter), 0o644); err != nil {
		return foundation.WrapError(err, foundation.CategoryFileSystem, "failed to write config file").
			WithContext("path", path).
			Build()
	}
	return nil
}
