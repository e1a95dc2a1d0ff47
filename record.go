package main

import "fmt"

type record struct {
	// Name of the input the record was read from, "-" for stdin.
	source string

	// 1-based record number within its input.
	number int

	// Byte offset of the start of the record in its input.
	byteOffset int64

	// The record without its terminator.
	text string
}

func newRecord(source string, number int, byteOffset int64, text string) *record {
	return &record{
		source:     source,
		number:     number,
		byteOffset: byteOffset,
		text:       text,
	}
}

func (r *record) String() string {
	return fmt.Sprintf("%s:%d", r.source, r.number)
}

// wrap prefixes err with the record's position so diagnostics point at the
// offending input line.
func (r *record) wrap(err error) error {
	return fmt.Errorf("%s: %w", r, err)
}
