// Package filter decides whether a record is kept, based on a jq program run
// against the record's fields.
package filter

import (
	"context"
	"fmt"

	"github.com/itchyny/gojq"
)

// Filter is a compiled jq program. The program's input is the record's fields
// as an array of strings. The raw record is bound to $line and its 1-based
// number to $nr.
type Filter struct {
	src  string
	code *gojq.Code
}

func Compile(src string) (*Filter, error) {
	query, err := gojq.Parse(src)
	if err != nil {
		return nil, fmt.Errorf("failed to parse filter %q: %w", src, err)
	}

	code, err := gojq.Compile(query, gojq.WithVariables([]string{"$line", "$nr"}))
	if err != nil {
		return nil, fmt.Errorf("failed to compile filter %q: %w", src, err)
	}

	return &Filter{src: src, code: code}, nil
}

func (f *Filter) String() string {
	return f.src
}

// Match runs the program and reports whether its first output is truthy, jq
// style: anything except false and null. A program that produces no output
// does not match.
func (f *Filter) Match(ctx context.Context, fields []string, line string, nr int) (bool, error) {
	input := make([]any, len(fields))
	for i, field := range fields {
		input[i] = field
	}

	iter := f.code.RunWithContext(ctx, input, line, nr)
	v, ok := iter.Next()
	if !ok {
		return false, nil
	}
	if err, ok := v.(error); ok {
		return false, fmt.Errorf("filter %q: %w", f.src, err)
	}

	switch v := v.(type) {
	case nil:
		return false, nil
	case bool:
		return v, nil
	}
	return true, nil
}
