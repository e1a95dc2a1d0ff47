package selector

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidDelimiter = errors.New("invalid delimiter")
	ErrFieldOutOfRange  = errors.New("field out of range")
	ErrEmptyFieldList   = errors.New("empty field list")
	ErrInvalidField     = errors.New("invalid field")
)

// FieldOutOfRangeError is returned when a requested field index is past the
// last field of a record. It matches ErrFieldOutOfRange with errors.Is.
type FieldOutOfRangeError struct {
	Field int
	Count int
}

func (e *FieldOutOfRangeError) Error() string {
	return fmt.Sprintf("field %d out of range (record has %d fields)", e.Field, e.Count)
}

func (e *FieldOutOfRangeError) Unwrap() error {
	return ErrFieldOutOfRange
}
