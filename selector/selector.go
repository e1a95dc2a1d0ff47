// Package selector splits delimited records into fields and picks fields out
// of them by their 1-based index.
package selector

import (
	"fmt"
	"slices"
	"strings"

	"github.com/YLivay/gocut/utils"
)

// Mode controls the order in which selected fields are emitted.
type Mode int

const (
	// Ascending emits fields in increasing index order, each at most once,
	// regardless of how they were listed.
	Ascending Mode = iota
	// AsSpecified emits fields exactly in the order they were listed,
	// duplicates included.
	AsSpecified
)

func (m Mode) String() string {
	switch m {
	case Ascending:
		return "ascending"
	case AsSpecified:
		return "as-specified"
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

// OutOfRange is the policy for indices past the last field of a record.
type OutOfRange int

const (
	FailOutOfRange OutOfRange = iota
	SkipOutOfRange
)

func (p OutOfRange) String() string {
	switch p {
	case FailOutOfRange:
		return "error"
	case SkipOutOfRange:
		return "skip"
	}
	return fmt.Sprintf("OutOfRange(%d)", int(p))
}

// Split splits record on delim. Empty fields are kept, so "a,,c" yields three
// fields.
func Split(record, delim string) []string {
	return strings.Split(record, delim)
}

// Join is the inverse of Split.
func Join(fields []string, delim string) string {
	return strings.Join(fields, delim)
}

// ValidateDelimiter checks that delim is a single user-perceived character,
// or any non-empty string when multiChar is set.
func ValidateDelimiter(delim string, multiChar bool) error {
	if delim == "" {
		return fmt.Errorf("%w: empty", ErrInvalidDelimiter)
	}
	if !multiChar && !utils.IsSingleGrapheme(delim) {
		return fmt.Errorf("%w: %q is %d characters, not one", ErrInvalidDelimiter, delim, utils.GraphemeCount(delim))
	}
	return nil
}

// Select splits record on delim and joins the fields at the given 1-based
// indices back together with delim. Indices past the last field fail with
// ErrFieldOutOfRange.
func Select(record, delim string, fields []int, mode Mode) (string, error) {
	list, err := Fields(fields...)
	if err != nil {
		return "", err
	}

	s, err := New(Options{Delimiter: delim, Fields: list, Mode: mode})
	if err != nil {
		return "", err
	}
	return s.Select(record)
}

type Options struct {
	Delimiter string
	// OutputDelimiter joins the selected fields. It defaults to Delimiter.
	OutputDelimiter string
	Fields          FieldList
	Mode            Mode
	OutOfRange      OutOfRange
	// AllowMultiCharDelimiter lifts the single character restriction on
	// Delimiter.
	AllowMultiCharDelimiter bool
}

// Selector is a validated set of Options. It holds no mutable state and can be
// shared between goroutines.
type Selector struct {
	delim      string
	outDelim   string
	fields     FieldList
	mode       Mode
	outOfRange OutOfRange
}

func New(opts Options) (*Selector, error) {
	if err := ValidateDelimiter(opts.Delimiter, opts.AllowMultiCharDelimiter); err != nil {
		return nil, err
	}
	if opts.Fields.Empty() {
		return nil, ErrEmptyFieldList
	}
	if opts.Mode != Ascending && opts.Mode != AsSpecified {
		return nil, fmt.Errorf("unknown mode %v", opts.Mode)
	}

	outDelim := opts.OutputDelimiter
	if outDelim == "" {
		outDelim = opts.Delimiter
	}

	return &Selector{
		delim:      opts.Delimiter,
		outDelim:   outDelim,
		fields:     opts.Fields,
		mode:       opts.Mode,
		outOfRange: opts.OutOfRange,
	}, nil
}

// Delimiter returns the input delimiter.
func (s *Selector) Delimiter() string {
	return s.delim
}

// Mode returns the ordering mode.
func (s *Selector) Mode() Mode {
	return s.mode
}

// Select picks fields out of a raw record and joins them with the output
// delimiter.
func (s *Selector) Select(record string) (string, error) {
	picked, err := s.Pick(Split(record, s.delim))
	if err != nil {
		return "", err
	}
	return Join(picked, s.outDelim), nil
}

// Pick selects from a record that has already been split. The returned slice
// shares its strings with fields.
func (s *Selector) Pick(fields []string) ([]string, error) {
	n := len(fields)
	indices := s.fields.Resolve(n)
	if s.mode == Ascending {
		slices.Sort(indices)
		indices = slices.Compact(indices)
	}

	picked := make([]string, 0, len(indices))
	for _, idx := range indices {
		if idx > n {
			if s.outOfRange == SkipOutOfRange {
				continue
			}
			return nil, &FieldOutOfRangeError{Field: idx, Count: n}
		}
		picked = append(picked, fields[idx-1])
	}
	return picked, nil
}

// OutputDelimiter returns the delimiter used to join selected fields.
func (s *Selector) OutputDelimiter() string {
	return s.outDelim
}
