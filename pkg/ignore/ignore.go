// Package ignore matches collection entries against gitignore-style exclude patterns.
package ignore

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	gitignore "github.com/monochromegane/go-gitignore"
	"go.uber.org/zap"
)

// FileName is the optional per-root ignore file read by Load.
const FileName = ".collectignore"

// Matcher reports whether a path under the root is excluded.
// A nil Matcher, or one built without patterns, excludes nothing.
type Matcher struct {
	matcher  gitignore.IgnoreMatcher
	patterns []string
	logger   *zap.Logger
}

// Load builds a Matcher for root from the given patterns plus the lines of
// root/.collectignore when that file exists.
func Load(root string, patterns []string, logger *zap.Logger) (*Matcher, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	lines := append([]string{}, patterns...)

	ignoreFile := filepath.Join(root, FileName)
	content, err := os.ReadFile(ignoreFile)
	switch {
	case err == nil:
		fileLines := strings.Split(string(content), "\n")
		lines = append(lines, fileLines...)
		logger.Debug("Loaded ignore file", zap.String("filePath", ignoreFile), zap.Int("lineCount", len(fileLines)))
	case os.IsNotExist(err):
		logger.Debug("Ignore file does not exist and will be skipped", zap.String("filePath", ignoreFile))
	default:
		logger.Error("Failed to read ignore file", zap.String("filePath", ignoreFile), zap.Error(err))
		return nil, fmt.Errorf("failed to read ignore file: %w", err)
	}

	m := &Matcher{logger: logger}
	for _, line := range lines {
		if isPatternLine(line) {
			m.patterns = append(m.patterns, strings.TrimSpace(line))
		}
	}
	if len(m.patterns) == 0 {
		return m, nil
	}

	m.matcher = gitignore.NewGitIgnoreFromReader(root, strings.NewReader(strings.Join(m.patterns, "\n")))
	logger.Debug("Compiled ignore patterns", zap.Strings("patterns", m.patterns))
	return m, nil
}

// Patterns returns the effective pattern lines, comments and blanks removed.
func (m *Matcher) Patterns() []string {
	if m == nil {
		return nil
	}
	return m.patterns
}

// Match reports whether path, an absolute path under the root, is excluded.
func (m *Matcher) Match(path string, isDir bool) bool {
	if m == nil || m.matcher == nil {
		return false
	}
	if m.matcher.Match(path, isDir) {
		m.logger.Debug("Path matches ignore pattern", zap.String("path", path), zap.Bool("isDir", isDir))
		return true
	}
	return false
}

// isPatternLine drops empty lines and comments.
func isPatternLine(line string) bool {
	trimmed := strings.TrimSpace(line)
	return trimmed != "" && !strings.HasPrefix(trimmed, "#")
}
