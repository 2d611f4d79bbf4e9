package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	foundation "git.home.luguber.info/inful/oakdocs/internal/foundation/errors"
	"git.home.luguber.info/inful/oakdocs/internal/site"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), DefaultPath)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadAppliesDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, "metrics:\n  enabled: true\n"))
	require.NoError(t, err)
	assert.Equal(t, "docs", cfg.Content.Dir)
	assert.Equal(t, "dist", cfg.Output.Dir)
	assert.Equal(t, "127.0.0.1:8089", cfg.Server.Addr)
	assert.True(t, cfg.Metrics.Enabled)
}

func TestLoadEmptyFile(t *testing.T) {
	cfg, err := Load(writeConfig(t, ""))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadExpandsEnvironment(t *testing.T) {
	t.Setenv("OAKDOCS_TEST_OUT", "/tmp/oak-out")
	cfg, err := Load(writeConfig(t, "output:\n  dir: ${OAKDOCS_TEST_OUT}\n"))
	require.NoError(t, err)
	assert.Equal(t, "/tmp/oak-out", cfg.Output.Dir)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
	assert.True(t, foundation.HasCategory(err, foundation.CategoryNotFound))

	cfg, err := LoadOrDefault(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestParseRejectsUnknownKeys(t *testing.T) {
	_, err := Parse([]byte("repositories: []\n"))
	require.Error(t, err)
	assert.True(t, foundation.HasCategory(err, foundation.CategoryConfig))
}

func TestValidate(t *testing.T) {
	base := "docs"
	cases := []struct {
		name  string
		body  string
		field string
	}{
		{"bad addr", "server:\n  addr: localhost\n", "server.addr"},
		{"bad base", "site:\n  base: docs\n", "site.base"},
		{"empty title", "site:\n  title: \"  \"\n", "site.title"},
		{"clean content dir", "content:\n  dir: " + base + "\noutput:\n  dir: " + base + "\n  clean: true\n", "output.dir"},
		{"same dir without clean", "content:\n  dir: " + base + "\noutput:\n  dir: " + base + "/\n", "output.dir"},
		{"output inside content", "content:\n  dir: " + base + "\noutput:\n  dir: " + base + "/.oakdocs/dist\n", "output.dir"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse([]byte(tc.body))
			require.Error(t, err)
			ce, ok := foundation.AsClassified(err)
			require.True(t, ok)
			assert.Equal(t, foundation.CategoryConfig, ce.Category())
			field, _ := ce.Context().GetString("field")
			assert.Equal(t, tc.field, field)
		})
	}
}

func TestValidateAllowsSiblingOutput(t *testing.T) {
	cfg, err := Parse([]byte("content:\n  dir: docs\noutput:\n  dir: docs-dist\n"))
	require.NoError(t, err)
	assert.Equal(t, "docs-dist", cfg.Output.Dir)

	cfg.Output.Dir = "../dist"
	assert.NoError(t, cfg.Validate())
}

func TestApplyOverridesSite(t *testing.T) {
	cfg, err := Parse([]byte("site:\n  title: Oak Chain Preview\n  base: /oak/\n  ignore_dead_links: false\n"))
	require.NoError(t, err)

	s := cfg.SiteConfig()
	assert.Equal(t, "Oak Chain Preview", s.Title)
	assert.Equal(t, "/oak/", s.Base)
	assert.False(t, s.IgnoreDeadLinks)
	assert.Equal(t, site.OakChain().Description, s.Description, "unset overrides keep built-in values")
	require.NoError(t, s.Validate())
}

func TestInit(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultPath)
	require.NoError(t, Init(path, false))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.NotNil(t, cfg.Site.IgnoreDeadLinks)
	assert.True(t, *cfg.Site.IgnoreDeadLinks)
	assert.True(t, cfg.Output.Clean)

	err = Init(path, false)
	require.Error(t, err)
	assert.True(t, foundation.HasCategory(err, foundation.CategoryValidation))
	require.NoError(t, Init(path, true))
}
