package extract

import "errors"

var (
	// ErrNotRecursive is returned when a subdirectory is found while recursion is disabled.
	ErrNotRecursive = errors.New("target is a directory, use recursion")

	// ErrInvalidEncoding is wrapped in an *fs.PathError when a file is not valid UTF-8 text.
	ErrInvalidEncoding = errors.New("content is not valid UTF-8")

	// ErrNotDirectory is wrapped in an *fs.PathError when the collection root is not a directory.
	ErrNotDirectory = errors.New("not a directory")
)
