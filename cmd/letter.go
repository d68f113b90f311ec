package cmd

import (
	"fmt"

	"jdtools/pkg/render"

	"github.com/spf13/cobra"
)

func newLetterCommand(a *app) *cobra.Command {
	var resume, jd string

	cmd := &cobra.Command{
		Use:   "letter",
		Short: "writes cover letter for a jd, from your resume",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.collectorConfig()
			if err != nil {
				return err
			}
			cfg.Recursive = true

			res, err := a.collect(cfg, jd)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if err := render.Render(out, res, render.Options{Format: render.FormatText, Color: a.colorEnabled(out)}); err != nil {
				return err
			}
			// TODO: generate the letter from the resume and the collected jd.
			_, err = fmt.Fprintln(out, "letter generation not implemented yet")
			return err
		},
	}

	cmd.Flags().StringVarP(&resume, "resume", "r", "", "path to your resume")
	cmd.Flags().StringVarP(&jd, "jd", "j", "", "path to your jd")
	_ = cmd.MarkFlagRequired("resume")
	_ = cmd.MarkFlagRequired("jd")
	return cmd
}
