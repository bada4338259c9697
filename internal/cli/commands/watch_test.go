package commands

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/sqlseg/internal/cli/config"
	"github.com/leapstack-labs/sqlseg/internal/cli/output"
	"github.com/leapstack-labs/sqlseg/internal/cli/testutil"
	logtest "github.com/leapstack-labs/sqlseg/internal/testutil"
	"github.com/leapstack-labs/sqlseg/pkg/dialects/ansi"
	"github.com/leapstack-labs/sqlseg/pkg/lint"
)

// syncBuffer is a bytes.Buffer safe for one writer and one reader.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestWatchTargets(t *testing.T) {
	dir := testutil.WriteSQLFiles(t, map[string]string{
		"models/a.sql": "SELECT 1",
		"single.sql":   "SELECT 1",
		"other.sql":    "SELECT 1",
	})

	watcher, err := fsnotify.NewWatcher()
	require.NoError(t, err)
	defer func() { _ = watcher.Close() }()

	targets, err := addWatchTargets(watcher, []string{
		filepath.Join(dir, "models"),
		filepath.Join(dir, "single.sql"),
	})
	require.NoError(t, err)

	assert.True(t, targets.matches(filepath.Join(dir, "models", "a.sql")))
	assert.True(t, targets.matches(filepath.Join(dir, "models", "new", "b.sql")))
	assert.True(t, targets.matches(filepath.Join(dir, "single.sql")))
	assert.False(t, targets.matches(filepath.Join(dir, "other.sql")))
	assert.False(t, targets.matches(filepath.Join(dir, "models", "notes.txt")))

	_, err = addWatchTargets(watcher, []string{"-"})
	assert.ErrorContains(t, err, "stdin")
}

func TestWatchLint_RelintsChangedFile(t *testing.T) {
	dir := testutil.WriteSQLFiles(t, map[string]string{"q.sql": "SELECT a FROM t;\n"})
	path := filepath.Join(dir, "q.sql")

	out := &syncBuffer{}
	cmdCtx := &CommandContext{
		Cfg:      config.Default(),
		Logger:   logtest.NewTestLogger(t),
		Dialect:  ansi.ANSI,
		Renderer: output.NewRendererWithTTY(out, &syncBuffer{}, false, output.ModeText),
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- watchLint(ctx, cmdCtx, lint.NewAnalyzer(nil), []string{dir}, &LintOptions{Processes: 1}, lint.SeverityHint)
	}()

	require.Eventually(t, func() bool {
		return strings.Contains(out.String(), "Watching for changes")
	}, 5*time.Second, 10*time.Millisecond)

	require.NoError(t, os.WriteFile(path, []byte("SELECT a FROM t  \n"), 0600))

	assert.Eventually(t, func() bool {
		return strings.Contains(out.String(), "LT01")
	}, 5*time.Second, 20*time.Millisecond, "output: %s", out.String())

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watchLint did not stop after cancel")
	}
}

func TestLint_WatchNeedsPaths(t *testing.T) {
	_, _, err := execute(t, NewLintCommand(), nil, "SELECT 1", "--watch")
	assert.ErrorContains(t, err, "--watch")
}
