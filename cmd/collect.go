package cmd

import (
	"fmt"
	"io"
	"os"

	"jdtools/pkg/extract"
	"jdtools/pkg/render"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newCollectCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "collect [DIR]",
		Short: "Collect markdown files from a directory tree",
		Long: `Collect reads every file with the target extension under DIR (default ".")
and prints them as one listing. Files above --max-file-size are skipped; once
--max-total-size is reached the walk stops and the partial listing is printed.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) == 1 {
				dir = args[0]
			}
			output, err := cmd.Flags().GetString("output")
			if err != nil {
				return fmt.Errorf("error reading flags: %w", err)
			}
			return a.runCollect(cmd.OutOrStdout(), dir, output)
		},
	}

	cmd.Flags().BoolP("recursive", "r", true, "Descend into subdirectories; when disabled a subdirectory is an error")
	cmd.Flags().StringP("output", "o", "", "Write the collection to this file instead of stdout")
	bindFlags(a.v, cmd.Flags(), map[string]string{"recursive": "recursive"})
	return cmd
}

func (a *app) runCollect(out io.Writer, dir, output string) error {
	cfg, err := a.collectorConfig()
	if err != nil {
		return err
	}
	format, err := render.ParseFormat(a.v.GetString("format"))
	if err != nil {
		return err
	}

	res, err := a.collect(cfg, dir)
	if err != nil {
		return err
	}

	if output != "" {
		return render.WriteFile(output, res, render.Options{Format: format}, a.logger)
	}
	return render.Render(out, res, render.Options{Format: format, Color: a.colorEnabled(out)})
}

func (a *app) collect(cfg extract.Config, dir string) (*extract.Result, error) {
	collector, err := extract.New(cfg, a.logger)
	if err != nil {
		return nil, err
	}
	res, err := collector.Collect(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to collect %s: %w", dir, err)
	}
	if res.Truncated() {
		a.logger.Warn("Collection truncated by total size limit",
			zap.String("dir", dir),
			zap.Int64("maxTotalSize", cfg.MaxTotalSize))
	}
	return res, nil
}

// colorEnabled reports whether out is a terminal and color was not disabled.
func (a *app) colorEnabled(out io.Writer) bool {
	if a.v.GetBool("no_color") {
		return false
	}
	f, ok := out.(*os.File)
	return ok && isatty.IsTerminal(f.Fd())
}
