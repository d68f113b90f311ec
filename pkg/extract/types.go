package extract

import "sort"

// Collection maps a file key (base name, or relative path with Config.KeyByPath)
// to the file's full text content.
type Collection map[string]string

// Keys returns the collection keys in sorted order.
func (c Collection) Keys() []string {
	keys := make([]string, 0, len(c))
	for k := range c {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Status records why a collection run stopped.
type Status int

const (
	StatusComplete  Status = iota // Every eligible entry was visited.
	StatusTruncated               // The aggregate ceiling stopped at least one directory level.
)

func (s Status) String() string {
	switch s {
	case StatusComplete:
		return "complete"
	case StatusTruncated:
		return "truncated"
	default:
		return "unknown"
	}
}

// SkippedFile describes a matching file left out for exceeding MaxFileSize.
type SkippedFile struct {
	Path string // Slash-separated path relative to the collection root.
	Size int64  // On-disk size in bytes.
}

// Result is the outcome of a single collection run.
type Result struct {
	Files      Collection    // Collected file contents.
	Status     Status        // Complete or truncated by the aggregate ceiling.
	TotalBytes int64         // Bytes counted against the top-level budget.
	Skipped    []SkippedFile // Oversized files, in traversal order.
}

// Truncated reports whether the aggregate ceiling cut the run short.
func (r *Result) Truncated() bool {
	return r.Status == StatusTruncated
}

// entry is a file accepted during traversal, kept in visit order.
type entry struct {
	path    string // Slash-separated, relative to the collection root.
	name    string // Base name.
	content string
}

// key returns the collection key for e: its base name, or its relative path
// when byPath is set.
func (e entry) key(byPath bool) string {
	if byPath {
		return e.path
	}
	return e.name
}

// budget tracks the bytes included against an aggregate ceiling.
type budget struct {
	used  int64
	limit int64
}

func (b *budget) fits(n int64) bool {
	return b.used+n <= b.limit
}
