package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newValidateCommand() *cobra.Command {
	var resume, jd string

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "validates your resume against a jd",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := fmt.Fprintln(cmd.OutOrStdout(), "validation not implemented yet")
			return err
		},
	}

	cmd.Flags().StringVarP(&resume, "resume", "r", "", "path to your resume")
	cmd.Flags().StringVarP(&jd, "jd", "j", "", "path to your jd")
	_ = cmd.MarkFlagRequired("resume")
	_ = cmd.MarkFlagRequired("jd")
	return cmd
}
