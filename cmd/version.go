// File: cmd/version.go
package cmd

import (
	"fmt"

	"jdtools/pkg/version"

	"github.com/spf13/cobra"
)

// newVersionCommand displays the current version of jdtools.
// The --short flag prints only the version number.
func newVersionCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Display the version of jdtools",
		Long:  `Display the current version information of the jdtools CLI.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			short, err := cmd.Flags().GetBool("short")
			if err != nil {
				return fmt.Errorf("error reading flags: %w", err)
			}

			v := version.Get()
			if short {
				fmt.Fprintln(cmd.OutOrStdout(), v.Version)
			} else {
				fmt.Fprintln(cmd.OutOrStdout(), v.String())
			}
			return nil
		},
	}

	cmd.Flags().BoolP("short", "s", false, "Print the version number only")
	return cmd
}
