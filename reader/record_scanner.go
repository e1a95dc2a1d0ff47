package reader

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
)

const (
	// DefaultMaxRecordBytes bounds the size of a single record, terminator
	// included.
	DefaultMaxRecordBytes = 1024 * 1024

	initialBufSize = 64 * 1024
)

var ErrRecordTooLong = errors.New("record too long")

// RecordScanner reads terminator separated records from a reader. Unlike
// bufio.ScanLines it does not drop carriage returns, and a final record that
// is missing its terminator is still returned.
type RecordScanner struct {
	*bufio.Scanner
	terminator byte
	maxBytes   int

	token      []byte
	number     int
	offset     int64
	nextOffset int64
}

func NewRecordScanner(r io.Reader, terminator byte, maxBytes int) *RecordScanner {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxRecordBytes
	}

	s := &RecordScanner{
		terminator: terminator,
		maxBytes:   maxBytes,
	}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, min(initialBufSize, maxBytes)), maxBytes)
	scanner.Split(s.scanRecords)
	s.Scanner = scanner
	return s
}

func (s *RecordScanner) Scan() bool {
	s.token = nil
	if !s.Scanner.Scan() {
		return false
	}

	raw := s.Scanner.Bytes()
	s.offset = s.nextOffset
	s.nextOffset += int64(len(raw))
	s.number++

	if len(raw) > 0 && raw[len(raw)-1] == s.terminator {
		raw = raw[:len(raw)-1]
	}
	s.token = raw
	return true
}

// Err wraps bufio.ErrTooLong with the record number it happened at.
func (s *RecordScanner) Err() error {
	err := s.Scanner.Err()
	if errors.Is(err, bufio.ErrTooLong) {
		return fmt.Errorf("%w: record %d exceeds %d bytes", ErrRecordTooLong, s.number+1, s.maxBytes)
	}
	return err
}

// Bytes returns the current record without its terminator. The slice is only
// valid until the next call to Scan.
func (s *RecordScanner) Bytes() []byte {
	return s.token
}

func (s *RecordScanner) Text() string {
	return string(s.token)
}

// Number returns the 1-based number of the current record.
func (s *RecordScanner) Number() int {
	return s.number
}

// Offset returns the byte offset of the start of the current record.
func (s *RecordScanner) Offset() int64 {
	return s.offset
}

// Modified from bufio.ScanLines to split on an arbitrary terminator, keep
// carriage returns and return the terminator itself. Scan strips it again, so
// a final record without one is not confused with a record ending in it.
func (s *RecordScanner) scanRecords(data []byte, atEOF bool) (advance int, token []byte, err error) {
	if atEOF && len(data) == 0 {
		return 0, nil, nil
	}
	if i := bytes.IndexByte(data, s.terminator); i >= 0 {
		return i + 1, data[0 : i+1], nil
	}
	// If we're at EOF, we have a final, non-terminated record. Return it.
	if atEOF {
		return len(data), data, nil
	}
	// Request more data.
	return 0, nil, nil
}
