package commands

import (
	"context"
	"fmt"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/leapstack-labs/sqlmark/pkg/annotate"
	"github.com/spf13/cobra"
)

// AnnotateOptions holds options for the annotate command.
type AnnotateOptions struct {
	RefsFile     string
	OutputFormat string
	Diagnostics  bool
	Watch        bool
}

// NewAnnotateCommand creates the annotate command.
func NewAnnotateCommand() *cobra.Command {
	opts := &AnnotateOptions{}

	cmd := &cobra.Command{
		Use:   "annotate <sql-file>",
		Short: "Annotate a SQL file with references",
		Long: `Render a SQL file line by line with reference snippets highlighted and
tagged. References are read from a JSON or YAML file.`,
		Example: `  # Annotate query.sql with references from refs.json
  sqlmark annotate query.sql --refs refs.json

  # Read SQL from stdin
  cat query.sql | sqlmark annotate - --refs refs.json

  # Machine-readable segments
  sqlmark annotate query.sql --refs refs.json --output json

  # Report references that never matched
  sqlmark annotate query.sql --refs refs.json --diagnostics

  # Re-render whenever either file changes
  sqlmark annotate query.sql --refs refs.json --watch`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAnnotate(cmd, args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.RefsFile, "refs", "r", "", "References file (.json, .yaml)")
	cmd.Flags().StringVarP(&opts.OutputFormat, "output", "o", "", "Output format (text|json)")
	cmd.Flags().BoolVar(&opts.Diagnostics, "diagnostics", false, "Report references whose snippet never matched")
	cmd.Flags().BoolVarP(&opts.Watch, "watch", "w", false, "Re-render when the sql or references file changes")

	return cmd
}

func runAnnotate(cmd *cobra.Command, sqlPath string, opts *AnnotateOptions) error {
	if opts.Watch && sqlPath == "-" {
		return fmt.Errorf("--watch requires a sql file, not stdin")
	}

	if err := annotateOnce(cmd, sqlPath, opts); err != nil {
		return err
	}

	if !opts.Watch {
		return nil
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	return watchAndAnnotate(ctx, cmd, sqlPath, opts)
}

func annotateOnce(cmd *cobra.Command, sqlPath string, opts *AnnotateOptions) error {
	cfg := getConfig()

	sql, err := readSQL(cmd, sqlPath)
	if err != nil {
		return err
	}

	refs, err := loadRefs(opts.RefsFile)
	if err != nil {
		return err
	}

	result := annotate.AnnotateWithOptions(sql, refs, annotate.Options{
		Diagnostics: opts.Diagnostics || cfg.Diagnostics,
		Logger:      newLogger(cfg),
	})

	renderer := newRenderer(cmd, opts.OutputFormat)
	return renderer.Annotation(result, cfg.IconSet())
}

// watchAndAnnotate re-runs annotation whenever the sql or references file
// changes, until the context is cancelled.
func watchAndAnnotate(ctx context.Context, cmd *cobra.Command, sqlPath string, opts *AnnotateOptions) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer func() { _ = watcher.Close() }()

	// Watch parent directories; editors typically replace files on save,
	// which drops plain file watches.
	targets := map[string]bool{}
	for _, p := range []string{sqlPath, opts.RefsFile} {
		if p == "" {
			continue
		}
		abs, err := filepath.Abs(p)
		if err != nil {
			return err
		}
		targets[abs] = true
		if err := watcher.Add(filepath.Dir(abs)); err != nil {
			return fmt.Errorf("failed to watch %s: %w", filepath.Dir(abs), err)
		}
	}

	var debounceTimer *time.Timer
	rerun := make(chan struct{}, 1)

	for {
		select {
		case <-ctx.Done():
			return nil

		case <-rerun:
			_, _ = fmt.Fprintln(cmd.OutOrStdout())
			if err := annotateOnce(cmd, sqlPath, opts); err != nil {
				// Keep watching through transient errors (e.g. half-written
				// files).
				_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
			}

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			abs, err := filepath.Abs(event.Name)
			if err != nil || !targets[abs] {
				continue
			}

			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			debounceTimer = time.AfterFunc(100*time.Millisecond, func() {
				select {
				case rerun <- struct{}{}:
				default:
				}
			})

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "watch error: %v\n", err)
		}
	}
}
