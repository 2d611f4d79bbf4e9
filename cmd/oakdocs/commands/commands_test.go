package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/alecthomas/kong"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	foundation "git.home.luguber.info/inful/oakdocs/internal/foundation/errors"
	"git.home.luguber.info/inful/oakdocs/internal/generator"
	"git.home.luguber.info/inful/oakdocs/internal/nav"
	"git.home.luguber.info/inful/oakdocs/internal/testutil"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var cli CLI
	var buf bytes.Buffer
	parser, err := kong.New(&cli,
		kong.Name("oakdocs"),
		kong.Vars{"version": "test"},
		kong.BindTo(context.Background(), (*context.Context)(nil)),
		kong.Bind(&Global{Stdout: &buf}, &cli),
		kong.Exit(func(int) {}),
	)
	require.NoError(t, err)
	kctx, err := parser.Parse(args)
	if err != nil {
		return "", err
	}
	err = kctx.Run()
	return buf.String(), err
}

func TestResolve(t *testing.T) {
	out, err := run(t, "-c", filepath.Join(t.TempDir(), "absent.yaml"), "resolve", "/adr/003-aeron-consensus")
	require.Error(t, err, "an explicitly named config must exist")
	assert.Empty(t, out)

	t.Chdir(t.TempDir())
	out, err = run(t, "resolve", "/adr/003-aeron-consensus")
	require.NoError(t, err)
	assert.Contains(t, out, "/adr/003-aeron-consensus -> /adr/")
	assert.Contains(t, out, "/adr/003-aeron-consensus\n")

	out, err = run(t, "resolve", "--json", "/guide/getting-started")
	require.NoError(t, err)
	var resp struct {
		Prefix string      `json:"prefix"`
		Groups []nav.Group `json:"groups"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "/", resp.Prefix)
	assert.Equal(t, "Introduction", resp.Groups[0].Text)
}

func TestInitThenGenerate(t *testing.T) {
	root := t.TempDir()
	cfgPath := filepath.Join(root, "oakdocs.yaml")
	docs := filepath.Join(root, "docs")
	dist := filepath.Join(root, "dist")
	testutil.WriteOakChainDocs(t, docs)

	out, err := run(t, "-c", cfgPath, "init")
	require.NoError(t, err)
	assert.Contains(t, out, "Wrote "+cfgPath)

	_, err = run(t, "-c", cfgPath, "init")
	require.Error(t, err)
	assert.True(t, foundation.HasCategory(err, foundation.CategoryValidation))

	out, err = run(t, "-c", cfgPath, "generate", "-d", docs, "-o", dist)
	require.NoError(t, err)
	assert.Contains(t, out, "Generated "+dist)
	assert.FileExists(t, filepath.Join(dist, generator.FileSiteYAML))
	assert.FileExists(t, filepath.Join(dist, generator.FileReport))
}

func TestCheck(t *testing.T) {
	t.Chdir(t.TempDir())
	docs := filepath.Join(t.TempDir(), "docs")
	testutil.WriteOakChainDocs(t, docs, "/adr/002-oak-segment-store")

	out, err := run(t, "check", "-d", docs)
	require.NoError(t, err)
	assert.Contains(t, out, "dead link (ignored): /adr/002-oak-segment-store")

	_, err = run(t, "check", "--strict", "-d", docs)
	require.Error(t, err)
	assert.Equal(t, 2, foundation.NewCLIErrorAdapter(false, nil).ExitCodeFor(err))
}

func TestParseLevel(t *testing.T) {
	lvl, err := parseLevel("warn")
	require.NoError(t, err)
	assert.Equal(t, "WARN", lvl.String())

	_, err = parseLevel("loud")
	require.Error(t, err)
}

func TestGenerateRejectsOutputInsideContent(t *testing.T) {
	t.Chdir(t.TempDir())
	docs := filepath.Join(t.TempDir(), "docs")
	testutil.WriteOakChainDocs(t, docs)

	_, err := run(t, "generate", "-d", docs, "-o", filepath.Join(docs, "dist"))
	require.Error(t, err)
	assert.True(t, foundation.HasCategory(err, foundation.CategoryConfig))
	assert.NoDirExists(t, filepath.Join(docs, "dist"))
}
