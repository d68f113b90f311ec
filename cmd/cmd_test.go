package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"jdtools/pkg/extract"
	"jdtools/pkg/version"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func writeFixture(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	files := map[string]string{
		"small.md":   "Hello, Markdown!",
		"dir/dir.md": "Hello, Markdown in the directory!",
		"notes.txt":  "not markdown",
	}
	for rel, content := range files {
		path := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
	return root
}

// runCommand executes the root command with args and returns its stdout.
func runCommand(t *testing.T, logger *zap.Logger, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCommand(logger)
	cmd.SetArgs(args)

	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)

	err := cmd.Execute()
	return out.String(), err
}

type collectOutput struct {
	Status     string            `json:"status"`
	TotalBytes int64             `json:"totalBytes"`
	Files      map[string]string `json:"files"`
	Skipped    []struct {
		Path string `json:"path"`
		Size int64  `json:"size"`
	} `json:"skipped"`
}

func decodeCollect(t *testing.T, out string) collectOutput {
	t.Helper()
	var doc collectOutput
	require.NoError(t, json.Unmarshal([]byte(out), &doc), out)
	return doc
}

func TestCollectCommand_Text(t *testing.T) {
	root := writeFixture(t)

	out, err := runCommand(t, nil, "collect", root)
	require.NoError(t, err)
	assert.Contains(t, out, "# Source: small.md #")
	assert.Contains(t, out, "# Source: dir.md #")
	assert.Contains(t, out, "Hello, Markdown in the directory!")
	assert.NotContains(t, out, "not markdown")
	assert.Contains(t, out, "# Status: complete, 2 files")
}

func TestCollectCommand_JSON(t *testing.T) {
	root := writeFixture(t)

	out, err := runCommand(t, nil, "collect", root, "--format", "json")
	require.NoError(t, err)

	doc := decodeCollect(t, out)
	assert.Equal(t, "complete", doc.Status)
	assert.Equal(t, map[string]string{
		"small.md": "Hello, Markdown!",
		"dir.md":   "Hello, Markdown in the directory!",
	}, doc.Files)
}

func TestCollectCommand_NonRecursive(t *testing.T) {
	root := writeFixture(t)

	out, err := runCommand(t, nil, "collect", root, "--recursive=false")
	require.Error(t, err)
	assert.ErrorIs(t, err, extract.ErrNotRecursive)
	assert.Empty(t, out)
}

func TestCollectCommand_SizeFlags(t *testing.T) {
	root := writeFixture(t)

	core, logs := observer.New(zapcore.WarnLevel)
	out, err := runCommand(t, zap.New(core), "collect", root, "-f", "json", "--max-file-size", "20")
	require.NoError(t, err)

	doc := decodeCollect(t, out)
	assert.Equal(t, map[string]string{"small.md": "Hello, Markdown!"}, doc.Files)
	require.Len(t, doc.Skipped, 1)
	assert.Equal(t, "dir/dir.md", doc.Skipped[0].Path)
	assert.Equal(t, 1, logs.FilterMessage("Skipping large file").Len())
}

func TestCollectCommand_EnvOverride(t *testing.T) {
	root := writeFixture(t)
	t.Setenv("JDTOOLS_MAX_TOTAL_SIZE", "20")

	out, err := runCommand(t, nil, "collect", root, "--format", "json")
	require.NoError(t, err)

	doc := decodeCollect(t, out)
	assert.Equal(t, "truncated", doc.Status)
	assert.LessOrEqual(t, doc.TotalBytes, int64(20))
}

func TestCollectCommand_ConfigFile(t *testing.T) {
	root := writeFixture(t)
	cfgPath := filepath.Join(t.TempDir(), "jdtools.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("key_by_path: true\nformat: json\n"), 0o644))

	out, err := runCommand(t, nil, "--config", cfgPath, "collect", root)
	require.NoError(t, err)

	doc := decodeCollect(t, out)
	assert.Contains(t, doc.Files, "dir/dir.md")
	assert.Contains(t, doc.Files, "small.md")
}

func TestCollectCommand_MissingConfigFile(t *testing.T) {
	root := writeFixture(t)

	_, err := runCommand(t, nil, "--config", filepath.Join(t.TempDir(), "missing.yaml"), "collect", root)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestCollectCommand_InvalidSettings(t *testing.T) {
	root := writeFixture(t)

	_, err := runCommand(t, nil, "collect", root, "--budget-scope", "forest")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown budget scope")

	_, err = runCommand(t, nil, "collect", root, "--max-total-size", "0")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid configuration")

	_, err = runCommand(t, nil, "collect", root, "--format", "xml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown output format")
}

func TestCollectCommand_Exclude(t *testing.T) {
	root := writeFixture(t)

	out, err := runCommand(t, nil, "collect", root, "--exclude", "dir/", "--format", "json")
	require.NoError(t, err)

	doc := decodeCollect(t, out)
	assert.Equal(t, map[string]string{"small.md": "Hello, Markdown!"}, doc.Files)
}

func TestCollectCommand_OutputFile(t *testing.T) {
	root := writeFixture(t)
	outPath := filepath.Join(t.TempDir(), "out", "collection.txt")

	out, err := runCommand(t, nil, "collect", root, "--output", outPath)
	require.NoError(t, err)
	assert.Empty(t, out)

	data, err := os.ReadFile(outPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "# Source: small.md #")
	assert.NotContains(t, string(data), "\x1b[")
}

func TestLetterCommand(t *testing.T) {
	root := writeFixture(t)

	out, err := runCommand(t, nil, "letter", "--resume", "resume.md", "--jd", root, "--no-color")
	require.NoError(t, err)
	assert.Contains(t, out, "Hello, Markdown in the directory!")
	assert.True(t, strings.HasSuffix(out, "letter generation not implemented yet\n"))
}

func TestLetterCommand_RequiresFlags(t *testing.T) {
	_, err := runCommand(t, nil, "letter", "--resume", "resume.md")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"jd"`)
}

func TestValidateCommand(t *testing.T) {
	out, err := runCommand(t, nil, "validate", "-r", "resume.md", "-j", "jd")
	require.NoError(t, err)
	assert.Equal(t, "validation not implemented yet\n", out)
}

func TestVersionCommand(t *testing.T) {
	out, err := runCommand(t, nil, "version", "--short")
	require.NoError(t, err)
	assert.Equal(t, version.Version+"\n", out)

	out, err = runCommand(t, nil, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "jdtools version "+version.Version)
}
