package main

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/YLivay/gocut/filter"
	"github.com/YLivay/gocut/log"
	"github.com/YLivay/gocut/reader"
	"github.com/YLivay/gocut/selector"
)

const stdinName = "-"

type Application struct {
	selector *selector.Selector

	// Optional. Records it rejects are dropped before selection.
	filter *filter.Filter

	// If true, records that do not contain the delimiter are dropped.
	onlyDelimited bool

	// Separates records on both input and output.
	terminator byte

	maxRecordBytes int

	// How many inputs may be processed at the same time.
	jobs int

	logger *log.Logger
}

func NewApplication(sel *selector.Selector, logger *log.Logger) *Application {
	return &Application{
		selector:       sel,
		terminator:     '\n',
		maxRecordBytes: reader.DefaultMaxRecordBytes,
		jobs:           1,
		logger:         logger,
	}
}

// Run reads every input in order and writes the selected fields of each record
// to stdout. With no inputs stdin is read. The first error stops the run;
// output for records before it has already been written.
func (a *Application) Run(ctx context.Context, inputs []string, stdin io.Reader, stdout io.Writer) error {
	if len(inputs) == 0 {
		inputs = []string{stdinName}
	}

	out := bufio.NewWriter(stdout)
	readers := stdinReaders(inputs, stdin)
	var err error
	if a.jobs <= 1 || len(inputs) == 1 {
		err = a.runSequentially(ctx, inputs, readers, out)
	} else {
		err = a.runConcurrently(ctx, inputs, readers, out)
	}

	if flushErr := out.Flush(); flushErr != nil && err == nil {
		err = fmt.Errorf("failed to write output: %w", flushErr)
	}
	return err
}

// stdinReaders returns the reader each input reads when it names stdin. Only
// the first "-" gets stdin; later ones read nothing.
func stdinReaders(inputs []string, stdin io.Reader) []io.Reader {
	readers := make([]io.Reader, len(inputs))
	seen := false
	for i, name := range inputs {
		if name == stdinName && seen {
			readers[i] = strings.NewReader("")
			continue
		}
		seen = seen || name == stdinName
		readers[i] = stdin
	}
	return readers
}

// runSequentially streams each input straight to out, one after the other.
func (a *Application) runSequentially(ctx context.Context, inputs []string, stdins []io.Reader, out io.Writer) error {
	for i, name := range inputs {
		if err := a.processInput(ctx, name, stdins[i], out); err != nil {
			return err
		}
	}
	return nil
}

// runConcurrently processes inputs in parallel into separate buffers, then
// writes the buffers in argument order. Every input's output is held in memory
// until the inputs before it are written.
func (a *Application) runConcurrently(ctx context.Context, inputs []string, stdins []io.Reader, out io.Writer) error {
	results := make([]bytes.Buffer, len(inputs))
	errs := make([]error, len(inputs))

	a.logger.Debug("processing inputs concurrently", zap.Int("inputs", len(inputs)), zap.Int("jobs", a.jobs))

	var g errgroup.Group
	g.SetLimit(max(a.jobs, 1))
	for i, name := range inputs {
		i, name := i, name
		g.Go(func() error {
			// Errors are kept per input rather than returned so that a
			// failure in a later input never masks an earlier one.
			errs[i] = a.processInput(ctx, name, stdins[i], &results[i])
			return nil
		})
	}
	g.Wait()

	for i := range inputs {
		if _, err := results[i].WriteTo(out); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
		if errs[i] != nil {
			return errs[i]
		}
	}
	return nil
}

func (a *Application) processInput(ctx context.Context, name string, stdin io.Reader, w io.Writer) error {
	in, cleanup, err := prepareReader(name, stdin)
	if err != nil {
		return err
	}
	defer cleanup()

	logger := a.logger.With(zap.String("source", name))
	logger.Debug("reading input")

	scanner := reader.NewRecordScanner(in, a.terminator, a.maxRecordBytes)
	var read, written int
	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}
		read++

		rec := newRecord(name, scanner.Number(), scanner.Offset(), scanner.Text())
		out, keep, err := a.processRecord(ctx, rec)
		if err != nil {
			logger.Debug("record failed", zap.Int("record", rec.number), zap.Int64("offset", rec.byteOffset), zap.Error(err))
			return rec.wrap(err)
		}
		if !keep {
			continue
		}

		if _, err := io.WriteString(w, out); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
		if _, err := w.Write([]byte{a.terminator}); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
		written++
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}

	logger.Debug("finished input", zap.Int("read", read), zap.Int("written", written))
	return nil
}

// processRecord returns the output for one record, or keep=false if the record
// is dropped.
func (a *Application) processRecord(ctx context.Context, rec *record) (out string, keep bool, err error) {
	fields := selector.Split(rec.text, a.selector.Delimiter())
	if a.onlyDelimited && len(fields) == 1 {
		return "", false, nil
	}

	if a.filter != nil {
		ok, err := a.filter.Match(ctx, fields, rec.text, rec.number)
		if err != nil {
			return "", false, err
		}
		if !ok {
			return "", false, nil
		}
	}

	picked, err := a.selector.Pick(fields)
	if err != nil {
		return "", false, err
	}
	return selector.Join(picked, a.selector.OutputDelimiter()), true, nil
}
