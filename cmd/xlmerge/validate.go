package main

import (
	"fmt"

	"github.com/javajack/xlmerge"
	"github.com/spf13/cobra"
)

func newValidateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Check every source file against the summary header row",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := a.settings(cmd)
			if err != nil {
				return err
			}
			log := a.logger(cmd.ErrOrStderr())

			s, err := openSession(cfg, log)
			if err != nil {
				return err
			}
			if len(s.results) == 0 {
				log.Warn("no spreadsheet files found", "folder", cfg.Folder, "excluding", cfg.Summary)
				return nil
			}
			fmt.Fprint(cmd.OutOrStdout(), xlmerge.DescribeResults(cfg.Sheet, s.results))
			return nil
		},
	}
}
