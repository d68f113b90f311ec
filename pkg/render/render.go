// Package render formats collection results for terminals and files.
package render

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"jdtools/pkg/extract"

	"github.com/fatih/color"
	"gopkg.in/yaml.v3"
)

// Format selects the output encoding.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat converts a flag value into a Format.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatText, FormatJSON, FormatYAML:
		return f, nil
	case "":
		return FormatText, nil
	case "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("unknown output format %q (want text, json or yaml)", s)
	}
}

// Options controls how a result is rendered.
type Options struct {
	Format Format
	Color  bool // Colorize text headers; ignored by json and yaml.
}

type skippedFile struct {
	Path string `json:"path" yaml:"path"`
	Size int64  `json:"size" yaml:"size"`
}

type document struct {
	Status     string            `json:"status" yaml:"status"`
	TotalBytes int64             `json:"totalBytes" yaml:"totalBytes"`
	Skipped    []skippedFile     `json:"skipped,omitempty" yaml:"skipped,omitempty"`
	Files      map[string]string `json:"files" yaml:"files"`
}

func newDocument(res *extract.Result) document {
	doc := document{
		Status:     res.Status.String(),
		TotalBytes: res.TotalBytes,
		Files:      res.Files,
	}
	if doc.Files == nil {
		doc.Files = map[string]string{}
	}
	for _, s := range res.Skipped {
		doc.Skipped = append(doc.Skipped, skippedFile{Path: s.Path, Size: s.Size})
	}
	return doc
}

// Render writes res to w in the requested format.
func Render(w io.Writer, res *extract.Result, opts Options) error {
	switch opts.Format {
	case FormatText, "":
		return renderText(w, res, opts.Color)
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(newDocument(res)); err != nil {
			return fmt.Errorf("failed to encode json: %w", err)
		}
		return nil
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(newDocument(res)); err != nil {
			return fmt.Errorf("failed to encode yaml: %w", err)
		}
		return enc.Close()
	default:
		return fmt.Errorf("unknown output format %q", opts.Format)
	}
}

// renderText writes each file under a "# Source:" header, in key order,
// followed by a status line.
func renderText(w io.Writer, res *extract.Result, colored bool) error {
	header := color.New(color.FgCyan)
	status := color.New(color.FgGreen)
	if res.Truncated() {
		status = color.New(color.FgYellow)
	}
	for _, c := range []*color.Color{header, status} {
		if colored {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}

	separatorLine := "# " + strings.Repeat("-", 78)
	for _, key := range res.Files.Keys() {
		if _, err := fmt.Fprintf(w, "%s\n%s\n\n", header.Sprint(separatorLine), header.Sprintf("# Source: %s #", key)); err != nil {
			return err
		}
		content := res.Files[key]
		if _, err := io.WriteString(w, content); err != nil {
			return err
		}
		if !strings.HasSuffix(content, "\n") {
			if _, err := io.WriteString(w, "\n"); err != nil {
				return err
			}
		}
		if _, err := io.WriteString(w, "\n"); err != nil {
			return err
		}
	}

	line := fmt.Sprintf("# Status: %s, %d files, %d bytes", res.Status, len(res.Files), res.TotalBytes)
	if n := len(res.Skipped); n > 0 {
		line += fmt.Sprintf(", %d skipped", n)
	}
	_, err := fmt.Fprintln(w, status.Sprint(line))
	return err
}
