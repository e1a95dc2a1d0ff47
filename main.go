package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/YLivay/gocut/config"
	"github.com/YLivay/gocut/filter"
	"github.com/YLivay/gocut/log"
	"github.com/YLivay/gocut/selector"
)

type cliFlags struct {
	delimiter       string
	outputDelimiter string
	fields          string
	permute         bool
	onlyDelimited   bool
	skipMissing     bool
	multiChar       bool
	zeroTerminated  bool
	where           string
	jobs            int
	configPath      string
	verbose         bool
}

func main() {
	ctx, cancelCtx := context.WithCancel(context.Background())
	cleanupOsSignals := setupOsSignals(ctx, cancelCtx)

	err := newRootCmd(log.Default()).ExecuteContext(ctx)
	cleanupOsSignals()
	log.Default().Sync()

	if err != nil {
		fmt.Fprintln(os.Stderr, "gocut:", err)
		os.Exit(1)
	}
}

func newRootCmd(logger *log.Logger) *cobra.Command {
	flags := &cliFlags{}

	cmd := &cobra.Command{
		Use:   "gocut -d DELIM -f LIST [flags] [file ...]",
		Short: "Print selected fields from each line of the input",
		Long: `gocut splits every input record on a delimiter and prints the selected fields.

LIST is a comma separated list of 1-based field numbers or ranges: N, N-M,
-M (fields 1 through M) and N- (field N through the last field). Empty items,
as in "1,,2", are rejected. Fields are printed in ascending order, each once,
unless -p is given, in which case they are printed exactly in the order listed.

With no file, or when file is -, standard input is read.`,
		Example: `  echo "a,b,c" | gocut -d, -f2,3,1      # a,b,c
  echo "a,b,c" | gocut -d, -f2,3,1 -p   # b,c,a`,
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, args, flags, logger)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&flags.delimiter, "delimiter", "d", "", "use DELIM to split fields")
	f.StringVar(&flags.outputDelimiter, "output-delimiter", "", "join output fields with this string instead of DELIM")
	f.StringVarP(&flags.fields, "fields", "f", "", "select only these fields; LIST items are comma separated and must not be empty")
	f.BoolVarP(&flags.permute, "permute", "p", false, "print fields in the order they were listed")
	f.BoolVarP(&flags.onlyDelimited, "only-delimited", "s", false, "do not print lines without delimiters")
	f.BoolVar(&flags.skipMissing, "skip-missing", false, "silently skip fields past the end of a line instead of failing")
	f.BoolVar(&flags.multiChar, "multi-char", false, "allow DELIM to be longer than one character")
	f.BoolVarP(&flags.zeroTerminated, "zero-terminated", "z", false, "line delimiter is NUL, not newline")
	f.StringVar(&flags.where, "where", "", "only print lines for which this jq program is truthy; input is the array of fields")
	f.IntVarP(&flags.jobs, "jobs", "j", 0, "number of files to process concurrently; with 1, output is streamed instead of buffered per file")
	f.StringVar(&flags.configPath, "config", "", "path to a YAML file with defaults (default $"+config.EnvPath+")")
	f.BoolVarP(&flags.verbose, "verbose", "v", false, "log debug information to stderr")

	return cmd
}

func run(cmd *cobra.Command, args []string, flags *cliFlags, logger *log.Logger) error {
	logger.SetVerbose(flags.verbose)

	cfg, err := config.Load(flags.configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	mergeFlags(cmd, flags, &cfg)
	logger.Debugf("effective config: %+v", cfg)

	if cfg.Delimiter == "" {
		return errors.New("you must specify a delimiter with -d")
	}
	if flags.fields == "" {
		return errors.New("you must specify a list of fields with -f")
	}

	fields, err := selector.ParseFieldList(flags.fields)
	if err != nil {
		return err
	}

	opts := selector.Options{
		Delimiter:               cfg.Delimiter,
		OutputDelimiter:         cfg.OutputDelimiter,
		Fields:                  fields,
		Mode:                    selector.Ascending,
		AllowMultiCharDelimiter: cfg.MultiChar,
	}
	if cfg.Permute {
		opts.Mode = selector.AsSpecified
	}
	if cfg.OutOfRange == "skip" {
		opts.OutOfRange = selector.SkipOutOfRange
	}

	sel, err := selector.New(opts)
	if err != nil {
		return err
	}

	app := NewApplication(sel, logger)
	app.onlyDelimited = cfg.OnlyDelimited
	app.jobs = cfg.Jobs
	app.maxRecordBytes = cfg.MaxRecordBytes
	if cfg.ZeroTerminated {
		app.terminator = 0
	}
	if flags.where != "" {
		if app.filter, err = filter.Compile(flags.where); err != nil {
			return err
		}
	}

	logger.Debugf("selecting fields %s in %s order", fields, sel.Mode())
	return app.Run(cmd.Context(), args, cmd.InOrStdin(), cmd.OutOrStdout())
}

// mergeFlags overrides config values with the flags that were given
// explicitly.
func mergeFlags(cmd *cobra.Command, flags *cliFlags, cfg *config.Config) {
	changed := cmd.Flags().Changed

	if changed("delimiter") {
		cfg.Delimiter = flags.delimiter
	}
	if changed("output-delimiter") {
		cfg.OutputDelimiter = flags.outputDelimiter
	}
	if changed("permute") {
		cfg.Permute = flags.permute
	}
	if changed("only-delimited") {
		cfg.OnlyDelimited = flags.onlyDelimited
	}
	if changed("skip-missing") {
		if flags.skipMissing {
			cfg.OutOfRange = "skip"
		} else {
			cfg.OutOfRange = "error"
		}
	}
	if changed("multi-char") {
		cfg.MultiChar = flags.multiChar
	}
	if changed("zero-terminated") {
		cfg.ZeroTerminated = flags.zeroTerminated
	}
	if changed("jobs") && flags.jobs > 0 {
		cfg.Jobs = flags.jobs
	}
}

func setupOsSignals(ctx context.Context, cancelCtx context.CancelFunc) (cleanup func()) {
	// Catch ctrl+c signal and make it close the context instead of immediately
	// exiting. This lets buffered output be flushed.
	signalChan := make(chan os.Signal, 1)
	signal.Notify(signalChan, os.Interrupt)

	cleanup = func() {
		signal.Stop(signalChan)
		cancelCtx()
	}

	go func() {
		select {
		case <-signalChan:
			log.Debugf("interrupted")
			cancelCtx()
		case <-ctx.Done():
		}
	}()

	return cleanup
}

// prepareReader opens the named input. "-" means stdin, which is never
// closed.
func prepareReader(filename string, stdin io.Reader) (reader io.Reader, cleanup func(), err error) {
	// As resources are created in this function, accumulate functions to clean
	// them up in this slice.
	var deferredCleanups []func()
	cleanup = func() {
		// Invoke deferredCleanups in reverse order.
		for i := len(deferredCleanups) - 1; i >= 0; i-- {
			deferredCleanups[i]()
		}
	}

	if filename == stdinName {
		return stdin, cleanup, nil
	}

	f, err := os.Open(filename)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open file for reading: %w", err)
	}
	deferredCleanups = append(deferredCleanups, func() {
		if err := f.Close(); err != nil {
			log.Warnf("failed to close %s: %v", filename, err)
		}
	})

	info, err := f.Stat()
	if err != nil {
		cleanup()
		return nil, nil, fmt.Errorf("failed to stat %s: %w", filename, err)
	}
	if info.IsDir() {
		cleanup()
		return nil, nil, fmt.Errorf("%s: is a directory", filename)
	}

	return f, cleanup, nil
}
