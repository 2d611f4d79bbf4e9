package watch

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func startWatcher(t *testing.T, w *Watcher) (cancel func()) {
	t.Helper()
	ctx, stop := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()
	return func() {
		stop()
		select {
		case err := <-done:
			require.NoError(t, err)
		case <-time.After(5 * time.Second):
			t.Fatal("watcher did not stop")
		}
	}
}

func TestRegeneratesOnceForBurst(t *testing.T) {
	dir := t.TempDir()
	var calls atomic.Int32
	w, err := New(func(context.Context) error {
		calls.Add(1)
		return nil
	}, WithDebounce(100*time.Millisecond))
	require.NoError(t, err)
	require.NoError(t, w.AddTree(dir))
	stop := startWatcher(t, w)
	defer stop()

	page := filepath.Join(dir, "guide.md")
	for i := 0; i < 5; i++ {
		require.NoError(t, os.WriteFile(page, []byte("# Guide\n"), 0o644))
	}

	require.Eventually(t, func() bool { return calls.Load() == 1 }, 3*time.Second, 20*time.Millisecond)
	time.Sleep(300 * time.Millisecond)
	assert.Equal(t, int32(1), calls.Load(), "burst must collapse into one regeneration")
}

func TestIgnoresIrrelevantFiles(t *testing.T) {
	dir := t.TempDir()
	var calls atomic.Int32
	w, err := New(func(context.Context) error {
		calls.Add(1)
		return nil
	}, WithDebounce(50*time.Millisecond))
	require.NoError(t, err)
	require.NoError(t, w.AddTree(dir))
	stop := startWatcher(t, w)
	defer stop()

	require.NoError(t, os.WriteFile(filepath.Join(dir, ".guide.md.swp"), []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "logo.svg"), []byte("<svg/>"), 0o644))
	time.Sleep(300 * time.Millisecond)
	assert.Zero(t, calls.Load())
}

func TestWatchesNewDirectoriesAndConfigFile(t *testing.T) {
	root := t.TempDir()
	docs := filepath.Join(root, "docs")
	require.NoError(t, os.Mkdir(docs, 0o755))
	cfgPath := filepath.Join(root, "oakdocs.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("{}\n"), 0o644))

	var calls atomic.Int32
	w, err := New(func(context.Context) error {
		calls.Add(1)
		return nil
	}, WithDebounce(50*time.Millisecond))
	require.NoError(t, err)
	require.NoError(t, w.AddTree(docs))
	require.NoError(t, w.AddFile(cfgPath))
	stop := startWatcher(t, w)
	defer stop()

	adr := filepath.Join(docs, "adr")
	require.NoError(t, os.Mkdir(adr, 0o755))
	require.Eventually(t, func() bool { return calls.Load() >= 1 }, 3*time.Second, 20*time.Millisecond)

	before := calls.Load()
	require.NoError(t, os.WriteFile(filepath.Join(adr, "001-record-architecture-decisions.md"), []byte("# ADR\n"), 0o644))
	require.Eventually(t, func() bool { return calls.Load() > before }, 3*time.Second, 20*time.Millisecond)

	before = calls.Load()
	require.NoError(t, os.WriteFile(cfgPath, []byte("metrics:\n  enabled: true\n"), 0o644))
	require.Eventually(t, func() bool { return calls.Load() > before }, 3*time.Second, 20*time.Millisecond)
}

func TestCallbackErrorKeepsWatching(t *testing.T) {
	dir := t.TempDir()
	var calls atomic.Int32
	w, err := New(func(context.Context) error {
		calls.Add(1)
		return assert.AnError
	}, WithDebounce(30*time.Millisecond))
	require.NoError(t, err)
	require.NoError(t, w.AddTree(dir))
	stop := startWatcher(t, w)
	defer stop()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.md"), []byte("a"), 0o644))
	require.Eventually(t, func() bool { return calls.Load() == 1 }, 3*time.Second, 10*time.Millisecond)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.md"), []byte("b"), 0o644))
	require.Eventually(t, func() bool { return calls.Load() == 2 }, 3*time.Second, 10*time.Millisecond)
}

func TestSwitchTreeFollowsNewContentDir(t *testing.T) {
	root := t.TempDir()
	oldDocs := filepath.Join(root, "docs")
	newDocs := filepath.Join(root, "site")
	require.NoError(t, os.MkdirAll(filepath.Join(oldDocs, "guide"), 0o755))
	require.NoError(t, os.MkdirAll(newDocs, 0o755))

	var calls atomic.Int32
	w, err := New(func(context.Context) error {
		calls.Add(1)
		return nil
	}, WithDebounce(30*time.Millisecond))
	require.NoError(t, err)
	require.NoError(t, w.AddTree(oldDocs))
	require.NoError(t, w.SwitchTree(oldDocs, newDocs))
	assert.Equal(t, []string{newDocs}, w.fsw.WatchList())
	require.NoError(t, w.SwitchTree(newDocs, newDocs+string(filepath.Separator)))
	stop := startWatcher(t, w)
	defer stop()

	require.NoError(t, os.WriteFile(filepath.Join(oldDocs, "guide", "a.md"), []byte("a"), 0o644))
	time.Sleep(200 * time.Millisecond)
	assert.Zero(t, calls.Load(), "old tree is no longer watched")

	require.NoError(t, os.WriteFile(filepath.Join(newDocs, "index.md"), []byte("# Oak Chain\n"), 0o644))
	require.Eventually(t, func() bool { return calls.Load() == 1 }, 3*time.Second, 10*time.Millisecond)
}

func TestIgnored(t *testing.T) {
	for name, want := range map[string]bool{
		".git":         true,
		"node_modules": true,
		"public":       true,
		"guide.md~":    true,
		"guide.md":     false,
		"adr":          false,
	} {
		assert.Equal(t, want, ignored(name), name)
	}
}
