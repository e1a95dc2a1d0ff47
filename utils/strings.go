package utils

import (
	"github.com/rivo/uniseg"
)

// stepState is based off of rivo/tview's strings.go:stepState struct without
// the styling, tag parsing and line breaking logic.
// https://github.com/rivo/tview/blob/8a0aeb0aa377d2009202dc3111f17f13cd9f22ce/strings.go
type stepState struct {
	unisegState int
}

func step(str string, state *stepState) (cluster, rest string, newState *stepState) {
	if state == nil {
		state = &stepState{
			unisegState: -1,
		}
	}
	if len(str) == 0 {
		newState = state
		return
	}

	cluster, rest, _, state.unisegState = uniseg.StepString(str, state.unisegState)

	newState = state
	return
}

// GraphemeCount returns the number of user-perceived characters in str.
func GraphemeCount(str string) int {
	var state *stepState
	count := 0
	for len(str) > 0 {
		_, str, state = step(str, state)
		count++
	}
	return count
}

// IsSingleGrapheme reports whether str is exactly one user-perceived
// character. A base letter followed by combining marks counts as one, as does
// "\r\n".
func IsSingleGrapheme(str string) bool {
	if len(str) == 0 {
		return false
	}
	_, rest, _ := step(str, nil)
	return rest == ""
}
