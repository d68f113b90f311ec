// Package extract collects text files with a given extension from a directory
// tree into an in-memory name to content mapping, bounded by per-file and
// aggregate size ceilings.
package extract

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"jdtools/pkg/ignore"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Collector runs bounded collections with a fixed Config.
type Collector struct {
	cfg    Config
	logger *zap.Logger
}

// New validates cfg and returns a Collector. A nil logger discards diagnostics.
func New(cfg Config, logger *zap.Logger) (*Collector, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid collector config: %w", err)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.BudgetScope == "" {
		cfg.BudgetScope = ScopeSubtree
	}
	return &Collector{cfg: cfg, logger: logger}, nil
}

// Recursive collects markdown files under dir with the default limits.
func Recursive(dir string, logger *zap.Logger) (Collection, error) {
	return collectWith(dir, true, logger)
}

// NonRecursive collects markdown files directly inside dir with the default
// limits. Any subdirectory makes it fail with ErrNotRecursive.
func NonRecursive(dir string, logger *zap.Logger) (Collection, error) {
	return collectWith(dir, false, logger)
}

func collectWith(dir string, recursive bool, logger *zap.Logger) (Collection, error) {
	cfg := DefaultConfig()
	cfg.Recursive = recursive
	c, err := New(cfg, logger)
	if err != nil {
		return nil, err
	}
	res, err := c.Collect(dir)
	if err != nil {
		return nil, err
	}
	return res.Files, nil
}

// Collect walks root depth-first and returns the matching files.
//
// Oversized files are skipped. Hitting the aggregate ceiling stops the walk
// and returns what was gathered so far with StatusTruncated. A subdirectory
// found without recursion, or any I/O failure, aborts the run with no result.
func (c *Collector) Collect(root string) (*Result, error) {
	startTime := time.Now()
	logger := c.logger.With(zap.String("runID", uuid.NewString()), zap.String("root", root))
	logger.Debug("Starting collection",
		zap.Bool("recursive", c.cfg.Recursive),
		zap.String("budgetScope", string(c.cfg.BudgetScope)),
		zap.Int64("maxFileSize", c.cfg.MaxFileSize),
		zap.Int64("maxTotalSize", c.cfg.MaxTotalSize))

	absRoot, err := filepath.Abs(root)
	if err != nil {
		logger.Error("Failed to resolve root path", zap.Error(err))
		return nil, fmt.Errorf("failed to get absolute path: %w", err)
	}

	info, err := os.Stat(absRoot)
	if err != nil {
		logger.Error("Cannot stat collection root", zap.Error(err))
		return nil, err
	}
	if !info.IsDir() {
		return nil, &fs.PathError{Op: "open", Path: absRoot, Err: ErrNotDirectory}
	}

	matcher, err := ignore.Load(absRoot, c.cfg.Exclude, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to load exclude patterns: %w", err)
	}

	w := &walker{cfg: c.cfg, root: absRoot, matcher: matcher, logger: logger}
	total := &budget{limit: c.cfg.MaxTotalSize}
	entries, _, err := w.walkDir(absRoot, total)
	if err != nil {
		logger.Error("Collection failed", zap.Error(err))
		return nil, err
	}

	res := &Result{
		Files:      make(Collection, len(entries)),
		Status:     StatusComplete,
		TotalBytes: total.used,
		Skipped:    w.skipped,
	}
	if w.truncated {
		res.Status = StatusTruncated
	}
	for _, e := range entries {
		key := e.key(c.cfg.KeyByPath)
		if _, exists := res.Files[key]; exists {
			logger.Debug("Overwriting entry with colliding key", zap.String("key", key), zap.String("path", e.path))
		}
		res.Files[key] = e.content
	}

	logger.Info("Collection completed",
		zap.Int("files", len(res.Files)),
		zap.Stringer("status", res.Status),
		zap.Int64("totalBytes", res.TotalBytes),
		zap.Int("skipped", len(res.Skipped)),
		zap.Duration("elapsed", time.Since(startTime)))
	return res, nil
}

// walker holds the state of one Collect call.
type walker struct {
	cfg       Config
	root      string
	matcher   *ignore.Matcher
	logger    *zap.Logger
	skipped   []SkippedFile
	truncated bool
}

// walkDir collects dir into entries, charging included bytes to b. The bool
// result reports that this level stopped on the aggregate ceiling.
func (w *walker) walkDir(dir string, b *budget) ([]entry, bool, error) {
	dirEntries, err := os.ReadDir(dir)
	if err != nil {
		return nil, false, err
	}

	var entries []entry
	for _, de := range dirEntries {
		path := filepath.Join(dir, de.Name())
		relPath := w.relPath(path)

		isDir := de.IsDir()
		var info fs.FileInfo
		if de.Type()&fs.ModeSymlink != 0 {
			if target, err := os.Stat(path); err == nil {
				isDir = target.IsDir()
				info = target
			}
		}

		if w.matcher.Match(path, isDir) {
			continue
		}

		if isDir {
			if !w.cfg.Recursive {
				w.logger.Debug("Found directory without recursion", zap.String("path", relPath))
				return nil, false, fmt.Errorf("%w: %s", ErrNotRecursive, path)
			}

			sub := b
			if w.cfg.BudgetScope != ScopeTree {
				sub = &budget{limit: b.limit}
			}
			subEntries, stopped, err := w.walkDir(path, sub)
			if err != nil {
				return nil, false, err
			}

			if w.cfg.BudgetScope == ScopeTree {
				entries = append(entries, subEntries...)
				if stopped {
					return entries, true, nil
				}
				continue
			}

			for _, e := range w.collapse(subEntries) {
				n := int64(len(e.content))
				if !b.fits(n) {
					w.limitReached(e.path, b)
					return entries, true, nil
				}
				entries = append(entries, e)
				b.used += n
			}
			continue
		}

		if !w.cfg.matchesExtension(de.Name()) {
			continue
		}

		if info == nil {
			info, err = de.Info()
			if err != nil {
				return nil, false, err
			}
		}
		size := info.Size()

		if size > w.cfg.MaxFileSize {
			w.logger.Warn("Skipping large file",
				zap.String("path", relPath),
				zap.Int64("sizeBytes", size),
				zap.Int64("maxFileSize", w.cfg.MaxFileSize))
			w.skipped = append(w.skipped, SkippedFile{Path: relPath, Size: size})
			continue
		}

		if !b.fits(size) {
			w.limitReached(relPath, b)
			return entries, true, nil
		}

		content, err := readFileContent(path)
		if err != nil {
			return nil, false, err
		}
		entries = append(entries, entry{path: relPath, name: de.Name(), content: content})
		b.used += size
		w.logger.Debug("Collected file", zap.String("path", relPath), zap.Int64("sizeBytes", size))
	}

	return entries, false, nil
}

// collapse reduces a subtree's entries to the collection the subtree built:
// for each key only the last entry is kept, at its own visit position.
func (w *walker) collapse(entries []entry) []entry {
	last := make(map[string]int, len(entries))
	for i, e := range entries {
		last[e.key(w.cfg.KeyByPath)] = i
	}
	if len(last) == len(entries) {
		return entries
	}

	out := make([]entry, 0, len(last))
	for i, e := range entries {
		if last[e.key(w.cfg.KeyByPath)] == i {
			out = append(out, e)
		}
	}
	return out
}

func (w *walker) limitReached(relPath string, b *budget) {
	w.truncated = true
	w.logger.Warn("Reached total size limit. Stopping file processing.",
		zap.String("path", relPath),
		zap.Int64("totalBytes", b.used),
		zap.Int64("maxTotalSize", b.limit))
}

// relPath returns path relative to the collection root with forward slashes.
func (w *walker) relPath(path string) string {
	rel, err := filepath.Rel(w.root, path)
	if err != nil {
		return filepath.ToSlash(path)
	}
	return filepath.ToSlash(rel)
}
