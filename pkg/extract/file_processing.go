package extract

import (
	"io"
	"io/fs"
	"os"
	"unicode/utf8"
)

// readFileContent returns the full content of the file at path as text.
// Errors are *fs.PathError values naming the failing operation.
func readFileContent(path string) (string, error) {
	file, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return "", err
	}
	if !utf8.Valid(data) {
		return "", &fs.PathError{Op: "decode", Path: path, Err: ErrInvalidEncoding}
	}
	return string(data), nil
}
