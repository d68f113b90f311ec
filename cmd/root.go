package cmd

import (
	"jdtools/pkg/extract"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// app carries the state shared by every subcommand of one root command.
type app struct {
	logger  *zap.Logger
	v       *viper.Viper
	cfgFile string
}

// NewRootCommand builds the jdtools command tree. A nil logger discards diagnostics.
func NewRootCommand(logger *zap.Logger) *cobra.Command {
	if logger == nil {
		logger = zap.NewNop()
	}
	a := &app{logger: logger, v: viper.New()}

	rootCmd := &cobra.Command{
		Use:   "jdtools",
		Short: "jdtools validates your resume against a jd",
		Long: `jdtools gathers markdown documents (resumes, job descriptions) from a directory
tree into a single listing, bounded by per-file and total size limits.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.initConfig()
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&a.cfgFile, "config", "", "config file (default is $HOME/.config/jdtools/config.yaml)")
	flags.Bool("debug", false, "Enable debug logging")
	flags.Bool("no-color", false, "Disable colored output")
	flags.Int64("max-file-size", extract.DefaultMaxFileSize, "Skip files larger than this many bytes")
	flags.Int64("max-total-size", extract.DefaultMaxTotalSize, "Stop once included files reach this many bytes")
	flags.String("extension", extract.DefaultExtension, "File extension to collect (case-sensitive)")
	flags.String("budget-scope", string(extract.ScopeSubtree), "Total size accounting: subtree (per directory) or tree (whole walk)")
	flags.Bool("key-by-path", false, "Key files by relative path instead of base name")
	flags.StringSlice("exclude", nil, "Gitignore-style patterns to leave out (repeatable)")
	flags.StringP("format", "f", "text", "Output format: text, json or yaml")

	bindFlags(a.v, flags, map[string]string{
		"debug":          "debug",
		"no_color":       "no-color",
		"max_file_size":  "max-file-size",
		"max_total_size": "max-total-size",
		"extension":      "extension",
		"budget_scope":   "budget-scope",
		"key_by_path":    "key-by-path",
		"exclude":        "exclude",
		"format":         "format",
	})

	rootCmd.AddCommand(
		newCollectCommand(a),
		newLetterCommand(a),
		newValidateCommand(),
		newVersionCommand(),
	)
	return rootCmd
}

// Execute runs the root command with the process arguments.
func Execute(logger *zap.Logger) error {
	return NewRootCommand(logger).Execute()
}
