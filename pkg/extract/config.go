// File: pkg/extract/config.go
package extract

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Default limits applied when no configuration overrides them.
const (
	DefaultMaxFileSize  int64 = 10 * 1024 * 1024  // 10 MiB per file
	DefaultMaxTotalSize int64 = 100 * 1024 * 1024 // 100 MiB per collection
	DefaultExtension          = "md"
)

// BudgetScope selects how MaxTotalSize is counted across directory levels.
type BudgetScope string

const (
	// ScopeSubtree gives every directory its own running total. A parent still
	// checks each merged entry against its own total.
	ScopeSubtree BudgetScope = "subtree"
	// ScopeTree shares one running total across the whole traversal.
	ScopeTree BudgetScope = "tree"
)

// ParseBudgetScope converts a configuration string into a BudgetScope.
// An empty string selects ScopeSubtree.
func ParseBudgetScope(s string) (BudgetScope, error) {
	switch BudgetScope(strings.ToLower(strings.TrimSpace(s))) {
	case "", ScopeSubtree:
		return ScopeSubtree, nil
	case ScopeTree:
		return ScopeTree, nil
	default:
		return "", fmt.Errorf("unknown budget scope %q (want %q or %q)", s, ScopeSubtree, ScopeTree)
	}
}

// Config holds the options for a single collection run.
type Config struct {
	MaxFileSize  int64       // Files larger than this many bytes are skipped.
	MaxTotalSize int64       // Ceiling on the bytes included in one collection.
	Extension    string      // Target extension, with or without the leading dot. Case-sensitive.
	Recursive    bool        // Descend into subdirectories; when false a subdirectory aborts the run.
	BudgetScope  BudgetScope // How MaxTotalSize is counted across directory levels.
	KeyByPath    bool        // Key files by root-relative path instead of base name.
	Exclude      []string    // Gitignore-style patterns for entries to leave out.
}

// DefaultConfig returns a recursive markdown configuration with the default limits.
func DefaultConfig() Config {
	return Config{
		MaxFileSize:  DefaultMaxFileSize,
		MaxTotalSize: DefaultMaxTotalSize,
		Extension:    DefaultExtension,
		Recursive:    true,
		BudgetScope:  ScopeSubtree,
	}
}

// Validate reports the first invalid field in the configuration.
func (c Config) Validate() error {
	if c.MaxFileSize <= 0 {
		return fmt.Errorf("max file size must be positive, got %d", c.MaxFileSize)
	}
	if c.MaxTotalSize <= 0 {
		return fmt.Errorf("max total size must be positive, got %d", c.MaxTotalSize)
	}
	ext := strings.TrimPrefix(c.Extension, ".")
	if ext == "" {
		return fmt.Errorf("extension must not be empty")
	}
	if strings.ContainsAny(ext, `./\`) {
		return fmt.Errorf("extension %q must be a single suffix without separators", c.Extension)
	}
	if _, err := ParseBudgetScope(string(c.BudgetScope)); err != nil {
		return err
	}
	return nil
}

// suffix returns the extension with its leading dot.
func (c Config) suffix() string {
	return "." + strings.TrimPrefix(c.Extension, ".")
}

// matchesExtension reports whether name carries the target extension.
// A name made only of the suffix (".md") has no extension.
func (c Config) matchesExtension(name string) bool {
	suffix := c.suffix()
	return filepath.Ext(name) == suffix && name != suffix
}
