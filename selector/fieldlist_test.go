package selector

import (
	"math"
	"strconv"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFieldList_Resolve(t *testing.T) {
	cases := []struct {
		spec string
		n    int
		want []int
	}{
		{"1,2,3", 3, []int{1, 2, 3}},
		{"2,3,1", 3, []int{2, 3, 1}},
		{"2-3,1", 3, []int{2, 3, 1}},
		{"-2", 5, []int{1, 2}},
		{"3-", 5, []int{3, 4, 5}},
		{"3-", 1, []int{3}},
		{" 1 , 1 ", 1, []int{1, 1}},
		{"1-3", 3, []int{1, 2, 3}},
		{"2-9", 3, []int{2, 3, 4}},
		{"5-7", 3, []int{5}},
		{"2-9,1", 3, []int{2, 3, 4, 1}},
	}
	for _, c := range cases {
		list, err := ParseFieldList(c.spec)
		require.NoError(t, err, c.spec)
		if diff := cmp.Diff(c.want, list.Resolve(c.n)); diff != "" {
			t.Errorf("ParseFieldList(%q).Resolve(%d) mismatch (-want +got):\n%s", c.spec, c.n, diff)
		}
	}
}

func TestParseFieldList_Errors(t *testing.T) {
	_, err := ParseFieldList("")
	assert.ErrorIs(t, err, ErrEmptyFieldList)

	_, err = ParseFieldList(" ")
	assert.ErrorIs(t, err, ErrEmptyFieldList)

	for _, spec := range []string{"0", "a", "1,x", "3-1", "-", "1-2-3", "-0", ",", ",,", " , ", "1,,2", "1,", ",1"} {
		_, err := ParseFieldList(spec)
		assert.ErrorIs(t, err, ErrInvalidField, spec)
	}
}

func TestFieldList_ResolveHugeRanges(t *testing.T) {
	list, err := ParseFieldList("1-20000000")
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3, 4}, list.Resolve(3))

	top := strconv.Itoa(math.MaxInt-1) + "-" + strconv.Itoa(math.MaxInt)
	list, err = ParseFieldList(top)
	require.NoError(t, err)
	assert.Equal(t, []int{math.MaxInt - 1}, list.Resolve(3))

	list, err = ParseFieldList("2-" + strconv.Itoa(math.MaxInt))
	require.NoError(t, err)
	assert.Equal(t, []int{2, 3, 4}, list.Resolve(3))
}

func TestFieldList_String(t *testing.T) {
	list, err := ParseFieldList("2-3, 1,5-,-4")
	require.NoError(t, err)
	assert.Equal(t, "2-3,1,5-,1-4", list.String())
}

func TestFields(t *testing.T) {
	list, err := Fields(3, 1)
	require.NoError(t, err)
	assert.False(t, list.Empty())
	assert.Equal(t, []int{3, 1}, list.Resolve(0))

	_, err = Fields()
	assert.ErrorIs(t, err, ErrEmptyFieldList)

	assert.True(t, FieldList{}.Empty())
}
