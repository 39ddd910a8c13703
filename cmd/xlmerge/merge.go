package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/javajack/xlmerge"
	"github.com/spf13/cobra"
)

type mergeFlags struct {
	preserveHidden bool
	selectExpr     string
	files          []string
	keepOrder      bool
	yes            bool
}

func newMergeCmd(a *app) *cobra.Command {
	mf := &mergeFlags{}
	cmd := &cobra.Command{
		Use:   "merge",
		Short: "Clear the summary and append the data rows of the selected files",
		Long: `merge validates the folder, selects eligible files (all of them, the ones named
with --file, or those matching --select), clears every row of the summary below
the header and appends the selected files' data rows in alphabetical order.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runMerge(cmd, a, mf)
		},
	}

	f := cmd.Flags()
	f.BoolVar(&mf.preserveHidden, "preserve-hidden", false, "keep hidden source rows hidden in the summary")
	f.StringVar(&mf.selectExpr, "select", "", `expression choosing files, e.g. 'name startsWith "North"'`)
	f.StringSliceVarP(&mf.files, "file", "f", nil, "merge only these files")
	f.BoolVar(&mf.keepOrder, "keep-order", false, "merge --file names in the given order instead of alphabetically")
	f.BoolVarP(&mf.yes, "yes", "y", false, "do not ask for confirmation")
	return cmd
}

func runMerge(cmd *cobra.Command, a *app, mf *mergeFlags) error {
	cfg, err := a.settings(cmd)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("preserve-hidden") {
		cfg.PreserveHiddenRows = mf.preserveHidden
	}
	if cmd.Flags().Changed("select") {
		cfg.Select = mf.selectExpr
	}
	log := a.logger(cmd.ErrOrStderr())
	out := cmd.OutOrStdout()

	s, err := openSession(cfg, log,
		xlmerge.WithPreserveHiddenRows(cfg.PreserveHiddenRows),
		xlmerge.WithListener(&logListener{log: log}),
	)
	if err != nil {
		return err
	}

	names, err := s.selection(mf)
	if err != nil {
		return err
	}
	if len(names) == 0 {
		return errors.New("no eligible files selected")
	}

	if !mf.yes {
		ok, err := confirm(cmd.InOrStdin(), out, cfg.Summary, names, cfg.PreserveHiddenRows)
		if err != nil {
			return err
		}
		if !ok {
			fmt.Fprintln(out, "aborted")
			return nil
		}
	}

	log.Info("merging files", "count", len(names), "preserve_hidden", cfg.PreserveHiddenRows)
	res, err := s.batch.Merge(names)
	if err != nil {
		return fmt.Errorf("failed to process files: %w", err)
	}
	if err := s.folder.Write(cfg.Summary, res.Content); err != nil {
		return fmt.Errorf("save summary file: %w", err)
	}

	fmt.Fprintf(out, "%s to %s\n", res.Outcome, cfg.Summary)
	return nil
}

// selection returns the file names to merge in merge order. Explicitly named
// files that failed validation are dropped with a warning.
func (s *session) selection(mf *mergeFlags) ([]string, error) {
	if len(mf.files) == 0 {
		return xlmerge.Select(s.results, s.cfg.Select)
	}

	var names []string
	for _, name := range mf.files {
		res, ok := s.batch.Result(name)
		if !ok {
			return nil, fmt.Errorf("file %q not found among source files", name)
		}
		if !res.Eligible() {
			s.log.Warn("skipping file with validation issues", "file", name, "reason", res.Reason)
			continue
		}
		names = append(names, name)
	}
	if !mf.keepOrder {
		xlmerge.SortNames(names)
	}
	return names, nil
}

func confirm(in io.Reader, out io.Writer, summary string, names []string, preserveHidden bool) (bool, error) {
	fmt.Fprintf(out, "This will:\n  - clear all data in %s (the header row is kept)\n", summary)
	fmt.Fprintf(out, "  - copy data rows from %d file(s), in this order:\n", len(names))
	for _, name := range names {
		fmt.Fprintf(out, "      %s\n", name)
	}
	if preserveHidden {
		fmt.Fprintln(out, "  - keep hidden rows hidden")
	} else {
		fmt.Fprintln(out, "  - copy hidden rows as visible")
	}
	fmt.Fprint(out, "Continue? [y/N] ")

	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return false, fmt.Errorf("read confirmation: %w", err)
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true, nil
	}
	return false, nil
}
