package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/bamsammich/ntfscp/internal/config"
	"github.com/bamsammich/ntfscp/internal/engine"
	"github.com/bamsammich/ntfscp/internal/event"
	"github.com/bamsammich/ntfscp/internal/report"
	"github.com/bamsammich/ntfscp/internal/stats"
	"github.com/bamsammich/ntfscp/internal/ui"
)

var version = "dev"

func main() {
	os.Exit(run())
}

//nolint:gocyclo,revive // cyclomatic,cognitive-complexity: main CLI entry point orchestrates all flag parsing
func run() int {
	var (
		noLog       bool
		noVerify    bool
		journalPath string
		logFile     string
		bwLimitStr  string
		quiet       bool
		verbose     bool
		noProgress  bool
		dryRun      bool
		showVersion bool
	)

	rootCmd := &cobra.Command{
		Use:   "ntfscp [flags] <source> <destination>",
		Short: "Copy a tree, carrying NTFS creation times along as extended attributes",
		Args: func(cmd *cobra.Command, args []string) error {
			if showVersion {
				return nil
			}
			return cobra.ExactArgs(2)(cmd, args)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if showVersion {
				fmt.Fprintf(os.Stdout, "ntfscp %s\n", version)
				return nil
			}

			src, dst := args[0], args[1]

			// Load optional config file.
			cfg, err := config.Load()
			if err != nil {
				slog.Warn("failed to load config", "error", err)
			}

			// Config file defaults apply only to flags not set on the CLI.
			verify := !noVerify
			if !cmd.Flags().Changed("no-verify") && cfg.Defaults.Verify != nil {
				verify = *cfg.Defaults.Verify
			}
			journal := !noLog
			if !cmd.Flags().Changed("no-log") && cfg.Defaults.Journal != nil {
				journal = *cfg.Defaults.Journal
			}
			if !cmd.Flags().Changed("no-progress") && cfg.Defaults.Progress != nil {
				noProgress = !*cfg.Defaults.Progress
			}
			if !cmd.Flags().Changed("bwlimit") && cfg.Defaults.BWLimit != nil {
				bwLimitStr = *cfg.Defaults.BWLimit
			}

			var bwLimit int64
			if bwLimitStr != "" {
				bwLimit, err = parseSize(bwLimitStr)
				if err != nil {
					return fmt.Errorf("invalid --bwlimit: %w", err)
				}
			}

			// Preconditions come before any output file is opened: an
			// aborted run must leave nothing behind, neither the --log
			// file nor the journal.
			if err := engine.CheckPreconditions(src, dst); err != nil {
				return err
			}

			// Configure logging.
			logLevel := slog.LevelWarn
			if verbose {
				logLevel = slog.LevelDebug
			} else if !quiet {
				logLevel = slog.LevelInfo
			}
			textHandler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
				Level: logLevel,
			})
			var logHandler slog.Handler = textHandler
			if logFile != "" {
				lf, lfErr := os.Create(logFile)
				if lfErr != nil {
					return fmt.Errorf("open log file: %w", lfErr)
				}
				defer lf.Close()
				jsonHandler := slog.NewJSONHandler(lf, &slog.HandlerOptions{
					Level: slog.LevelDebug,
				})
				logHandler = ui.NewMultiHandler(textHandler, jsonHandler)
			}
			slog.SetDefault(slog.New(logHandler))

			if dryRun {
				slog.Info("dry run mode")
			}

			// The narrative journal appends to its file across runs.
			if journalPath == "" {
				journalPath = report.DefaultJournalPath
			}
			jrn, err := report.NewJournal(journalPath, journal && !dryRun, os.Args)
			if err != nil {
				return fmt.Errorf("open journal: %w", err)
			}
			defer jrn.Close()

			collector := stats.NewCollector()
			events := make(chan event.Event, 256)

			// When --log is set, tee events through a logging goroutine that
			// writes structured records before forwarding to the presenter.
			presenterEvents := (<-chan event.Event)(events)
			if logFile != "" {
				teed := make(chan event.Event, 256)
				go func() {
					for ev := range events {
						attrs := []slog.Attr{
							slog.String("type", ev.Type.String()),
							slog.String("path", ev.Path),
							slog.String("timestamp", ev.Display),
						}
						if ev.Error != nil {
							attrs = append(attrs, slog.String("error", ev.Error.Error()))
						}
						slog.LogAttrs(context.Background(), slog.LevelInfo, "ntfscp.event", attrs...)
						teed <- ev
					}
					close(teed)
				}()
				presenterEvents = teed
			}

			presenter := ui.NewPresenter(ui.Config{
				Writer:     os.Stdout,
				ErrWriter:  os.Stderr,
				Stats:      collector,
				IsTTY:      ui.IsTTY(os.Stderr.Fd()),
				TermWidth:  ui.TermWidth(os.Stderr.Fd()),
				Quiet:      quiet,
				Verbose:    verbose,
				NoProgress: noProgress,
			})

			// On interrupt, remove any in-flight temp file before dying.
			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
			defer signal.Stop(sigCh)
			go func() {
				<-sigCh
				engine.CleanupTmpFiles()
				os.Exit(130)
			}()

			var presenterErr error
			var wg sync.WaitGroup
			wg.Add(1)
			go func() {
				defer wg.Done()
				presenterErr = presenter.Run(presenterEvents)
			}()

			result := engine.Run(engine.Config{
				Src:     src,
				Dst:     dst,
				Verify:  verify,
				DryRun:  dryRun,
				BWLimit: bwLimit,
				Events:  events,
				Stats:   collector,
				Journal: jrn,
			})
			close(events)
			wg.Wait()
			if presenterErr != nil {
				fmt.Fprintf(os.Stderr, "presenter: %v\n", presenterErr)
			}

			if !quiet && !dryRun {
				if summary := presenter.Summary(); summary != "" {
					fmt.Fprintln(os.Stderr, summary)
				}
			}

			if result.Err != nil {
				slog.Error("copy failed", "error", result.Err)
				return &exitError{code: 2}
			}

			// Per-file failures are recorded in the table and the journal;
			// they never change the exit status.
			return nil
		},
	}

	rootCmd.Flags().BoolVar(&showVersion, "version", false, "print version and exit")
	rootCmd.Flags().BoolVar(&noLog, "no-log", false, "disable the run journal")
	rootCmd.Flags().BoolVar(&noVerify, "no-verify", false, "skip the destination file-count check")
	rootCmd.Flags().
		StringVar(&journalPath, "journal", "", "journal file (default: "+report.DefaultJournalPath+")")
	rootCmd.Flags().StringVar(&logFile, "log", "", "write structured JSON log to FILE")
	rootCmd.Flags().
		StringVar(&bwLimitStr, "bwlimit", "", "bandwidth limit (e.g. 100M, 1G)")
	rootCmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "suppress all output except errors")
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.Flags().BoolVar(&noProgress, "no-progress", false, "disable progress display")
	rootCmd.Flags().
		BoolVar(&dryRun, "dry-run", false, "enumerate the source without copying anything")

	if err := rootCmd.Execute(); err != nil {
		if exitErr, ok := err.(*exitError); ok {
			return exitErr.code
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 2
	}

	return 0
}

type exitError struct {
	code int
}

func (e *exitError) Error() string {
	return fmt.Sprintf("exit code %d", e.code)
}
