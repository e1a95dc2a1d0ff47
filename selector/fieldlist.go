package selector

import (
	"fmt"
	"strconv"
	"strings"
)

// fieldRange is an inclusive range of 1-based field indices. A zero hi means
// the range is open and runs to the last field of the record.
type fieldRange struct {
	lo, hi int
}

func (r fieldRange) open() bool {
	return r.hi == 0
}

// FieldList is a parsed -f argument. Items keep the order they were written
// in, and ranges expand in place.
type FieldList struct {
	ranges []fieldRange
}

// Fields builds a FieldList out of plain indices.
func Fields(indices ...int) (FieldList, error) {
	if len(indices) == 0 {
		return FieldList{}, ErrEmptyFieldList
	}

	ranges := make([]fieldRange, 0, len(indices))
	for _, idx := range indices {
		if idx < 1 {
			return FieldList{}, fmt.Errorf("%w: %d", ErrInvalidField, idx)
		}
		ranges = append(ranges, fieldRange{lo: idx, hi: idx})
	}
	return FieldList{ranges: ranges}, nil
}

// ParseFieldList parses a comma separated list of items of the forms N, N-M,
// -M and N-. A blank list is ErrEmptyFieldList; an empty item inside a list,
// as in "1,,2", is ErrInvalidField.
func ParseFieldList(spec string) (FieldList, error) {
	if strings.TrimSpace(spec) == "" {
		return FieldList{}, ErrEmptyFieldList
	}

	parts := strings.Split(spec, ",")
	ranges := make([]fieldRange, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			return FieldList{}, fmt.Errorf("%w: empty item in %q", ErrInvalidField, spec)
		}

		r, err := parseItem(part)
		if err != nil {
			return FieldList{}, err
		}
		ranges = append(ranges, r)
	}
	return FieldList{ranges: ranges}, nil
}

func parseItem(item string) (fieldRange, error) {
	if !strings.Contains(item, "-") {
		n, err := parseIndex(item)
		if err != nil {
			return fieldRange{}, err
		}
		return fieldRange{lo: n, hi: n}, nil
	}

	loStr, hiStr, _ := strings.Cut(item, "-")
	loStr = strings.TrimSpace(loStr)
	hiStr = strings.TrimSpace(hiStr)
	if loStr == "" && hiStr == "" {
		return fieldRange{}, fmt.Errorf("%w: %q", ErrInvalidField, item)
	}

	r := fieldRange{lo: 1}
	var err error
	if loStr != "" {
		if r.lo, err = parseIndex(loStr); err != nil {
			return fieldRange{}, err
		}
	}
	if hiStr != "" {
		if r.hi, err = parseIndex(hiStr); err != nil {
			return fieldRange{}, err
		}
		if r.hi < r.lo {
			return fieldRange{}, fmt.Errorf("%w: decreasing range %q", ErrInvalidField, item)
		}
	}
	return r, nil
}

func parseIndex(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidField, s)
	}
	return n, nil
}

// Empty reports whether the list holds no items.
func (l FieldList) Empty() bool {
	return len(l.ranges) == 0
}

// Resolve expands the list into indices for a record with n fields. Ranges
// never expand past n: a range that reaches beyond the record contributes its
// in-range part followed by a single index for the first missing field, so
// out of range handling still sees it and the result stays bounded by the
// record size.
func (l FieldList) Resolve(n int) []int {
	var out []int
	for _, r := range l.ranges {
		if !r.open() && r.hi <= n {
			for i := r.lo; i <= r.hi; i++ {
				out = append(out, i)
			}
			continue
		}

		for i := r.lo; i <= n; i++ {
			out = append(out, i)
		}
		if r.open() && r.lo <= n {
			continue
		}
		out = append(out, max(n+1, r.lo))
	}
	return out
}

func (l FieldList) String() string {
	parts := make([]string, 0, len(l.ranges))
	for _, r := range l.ranges {
		switch {
		case r.open():
			parts = append(parts, strconv.Itoa(r.lo)+"-")
		case r.lo == r.hi:
			parts = append(parts, strconv.Itoa(r.lo))
		default:
			parts = append(parts, strconv.Itoa(r.lo)+"-"+strconv.Itoa(r.hi))
		}
	}
	return strings.Join(parts, ",")
}
