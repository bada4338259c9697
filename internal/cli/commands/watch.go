package commands

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/leapstack-labs/sqlseg/pkg/lint"
)

// watchDebounce groups bursts of editor writes into one re-lint.
const watchDebounce = 100 * time.Millisecond

// watchTargets tracks which change events should trigger a re-lint.
type watchTargets struct {
	files map[string]bool
	dirs  []string
}

func (w *watchTargets) matches(name string) bool {
	name = filepath.Clean(name)
	if w.files[name] {
		return true
	}
	return isSQLFile(name) && w.matchesDir(name)
}

// matchesDir reports whether name lies under a watched directory.
func (w *watchTargets) matchesDir(name string) bool {
	name = filepath.Clean(name)
	for _, dir := range w.dirs {
		if rel, err := filepath.Rel(dir, name); err == nil && !strings.HasPrefix(rel, "..") {
			return true
		}
	}
	return false
}

func isSQLFile(name string) bool {
	return strings.EqualFold(filepath.Ext(name), ".sql")
}

// addWatchTargets registers every path with watcher. Directories are
// watched recursively; a file is watched through its parent directory.
func addWatchTargets(watcher *fsnotify.Watcher, paths []string) (*watchTargets, error) {
	targets := &watchTargets{files: make(map[string]bool)}
	for _, p := range paths {
		if p == "-" {
			return nil, fmt.Errorf("--watch cannot read from stdin")
		}
		p = filepath.Clean(p)
		info, err := os.Stat(p)
		if err != nil {
			return nil, fmt.Errorf("failed to watch %s: %w", p, err)
		}
		if info.IsDir() {
			if err := watchDirRecursive(watcher, p); err != nil {
				return nil, fmt.Errorf("failed to watch %s: %w", p, err)
			}
			targets.dirs = append(targets.dirs, p)
			continue
		}
		if err := watcher.Add(filepath.Dir(p)); err != nil {
			return nil, fmt.Errorf("failed to watch %s: %w", p, err)
		}
		targets.files[p] = true
	}
	return targets, nil
}

// watchDirRecursive adds a directory and all subdirectories to the watcher.
func watchDirRecursive(watcher *fsnotify.Watcher, dir string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return watcher.Add(path)
		}
		return nil
	})
}

// watchLint re-lints changed SQL files under paths until ctx is done.
func watchLint(ctx context.Context, cmdCtx *CommandContext, analyzer *lint.Analyzer, paths []string, opts *LintOptions, threshold lint.Severity) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	targets, err := addWatchTargets(watcher, paths)
	if err != nil {
		return err
	}
	cmdCtx.Renderer.Muted("Watching for changes. Press Ctrl+C to stop.")

	pending := make(map[string]bool)
	var debounce <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&fsnotify.Create != 0 {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() && targets.matchesDir(event.Name) {
					if err := watchDirRecursive(watcher, event.Name); err != nil {
						cmdCtx.Logger.Warn("failed to watch new directory", "path", event.Name, "error", err)
					}
					continue
				}
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 || !targets.matches(event.Name) {
				continue
			}
			pending[filepath.Clean(event.Name)] = true
			debounce = time.After(watchDebounce)

		case <-debounce:
			debounce = nil
			changed := make([]string, 0, len(pending))
			for p := range pending {
				changed = append(changed, p)
			}
			pending = make(map[string]bool)
			sort.Strings(changed)

			if err := relint(ctx, cmdCtx, analyzer, changed, opts, threshold); err != nil {
				cmdCtx.Renderer.Error(err.Error())
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			cmdCtx.Logger.Error("watcher error", "error", err)
		}
	}
}

func relint(ctx context.Context, cmdCtx *CommandContext, analyzer *lint.Analyzer, paths []string, opts *LintOptions, threshold lint.Severity) error {
	var inputs []sqlInput
	for _, p := range paths {
		data, err := os.ReadFile(p) //nolint:gosec // watched paths come from the command line
		if err != nil {
			// Removed or renamed between the event and now
			cmdCtx.Logger.Debug("skipping unreadable file", "path", p, "error", err)
			continue
		}
		inputs = append(inputs, sqlInput{Path: p, Source: string(data)})
	}
	if len(inputs) == 0 {
		return nil
	}

	results, err := lintInputs(ctx, cmdCtx, analyzer, inputs, opts.Processes)
	if err != nil {
		return err
	}
	return renderLintResults(cmdCtx.Renderer, filterBySeverity(results, threshold))
}
