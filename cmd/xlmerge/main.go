// Command xlmerge validates the spreadsheets in a folder against a summary
// spreadsheet and merges the selected ones into it.
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/google/uuid"
	"github.com/javajack/xlmerge"
	"github.com/javajack/xlmerge/internal/config"
	"github.com/javajack/xlmerge/internal/folder"
	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// app holds the flags shared by all subcommands.
type app struct {
	configPath  string
	dir         string
	summary     string
	sheet       string
	patterns    []string
	concurrency int
	verbose     bool
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:   "xlmerge",
		Short: "Merge spreadsheets that share a header row into a summary spreadsheet",
		Long: `xlmerge checks every spreadsheet in a folder against the header row of a
summary spreadsheet, then clears the summary (keeping its header row) and appends
the data rows of the selected files.`,
		SilenceUsage: true,
	}

	pf := root.PersistentFlags()
	pf.StringVarP(&a.configPath, "config", "c", "", "YAML config file")
	pf.StringVarP(&a.dir, "dir", "d", "", "folder holding the summary and source files (default: .)")
	pf.StringVar(&a.summary, "summary", "", `summary file name (default: "_OVERVIEW SUMMARY.xlsx")`)
	pf.StringVar(&a.sheet, "sheet", "", `nominated sheet name (default: "Sheet1")`)
	pf.StringSliceVar(&a.patterns, "pattern", nil, "source file patterns (default: *.xlsx,*.xls)")
	pf.IntVar(&a.concurrency, "concurrency", 0, "files validated in parallel (default: 4)")
	pf.BoolVarP(&a.verbose, "verbose", "v", false, "log debug output")

	root.AddCommand(newValidateCmd(a), newMergeCmd(a))
	return root
}

// settings merges the config file (or defaults) with explicitly set flags.
func (a *app) settings(cmd *cobra.Command) (config.Config, error) {
	cfg := config.Default()
	if a.configPath != "" {
		var err error
		if cfg, err = config.Load(a.configPath); err != nil {
			return cfg, err
		}
	}

	flags := cmd.Flags()
	if flags.Changed("dir") {
		cfg.Folder = a.dir
	}
	if flags.Changed("summary") {
		cfg.Summary = a.summary
	}
	if flags.Changed("sheet") {
		cfg.Sheet = a.sheet
	}
	if flags.Changed("pattern") {
		cfg.Patterns = a.patterns
	}
	if flags.Changed("concurrency") {
		cfg.Concurrency = a.concurrency
	}
	return cfg, cfg.Validate()
}

func (a *app) logger(w io.Writer) *slog.Logger {
	level := slog.LevelInfo
	if a.verbose {
		level = slog.LevelDebug
	}
	h := slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})
	return slog.New(h).With("run", uuid.NewString())
}

// session is one validation pass over a folder.
type session struct {
	cfg     config.Config
	log     *slog.Logger
	folder  *folder.Folder
	batch   *xlmerge.Batch
	results []xlmerge.ValidationResult
}

// openSession lists the folder, loads the summary headers and validates every
// source file. Results are sorted by file name.
func openSession(cfg config.Config, log *slog.Logger, opts ...xlmerge.Option) (*session, error) {
	fd := folder.New(cfg.Folder)
	names, err := fd.List(cfg.Patterns, cfg.Summary)
	if err != nil {
		return nil, err
	}
	log.Debug("listed source files", "folder", cfg.Folder, "count", len(names))

	summary, err := fd.Read(cfg.Summary)
	if err != nil {
		return nil, fmt.Errorf("cannot load summary file: %w", err)
	}

	opts = append([]xlmerge.Option{
		xlmerge.WithSheet(cfg.Sheet),
		xlmerge.WithConcurrency(cfg.Concurrency),
	}, opts...)
	batch, err := xlmerge.NewBatch(summary, opts...)
	if err != nil {
		return nil, err
	}
	log.Debug("loaded summary headers", "summary", cfg.Summary, "headers", batch.Headers().String())

	sources, err := fd.ReadAll(names)
	if err != nil {
		return nil, err
	}
	results := batch.Validate(sources)
	xlmerge.SortByName(results)

	invalid := 0
	for _, r := range results {
		if !r.Eligible() {
			invalid++
			log.Debug("file failed validation", "file", r.FileName, "reason", r.Reason)
		}
	}
	if invalid > 0 {
		log.Warn("some files have validation issues and cannot be selected", "invalid", invalid)
	}

	return &session{cfg: cfg, log: log, folder: fd, batch: batch, results: results}, nil
}
