// Package diff holds structured unified-diff records and builds the index of
// added lines that new-code coverage is measured against.
package diff

import (
	"fmt"
	"strings"
)

// ModifyType is the change marker of a diff line.
type ModifyType int

const (
	Context ModifyType = iota
	Add
	Delete
)

// String returns the upper-case name of the change type.
func (t ModifyType) String() string {
	switch t {
	case Add:
		return "ADD"
	case Delete:
		return "DELETE"
	case Context:
		return "CONTEXT"
	default:
		return fmt.Sprintf("ModifyType(%d)", int(t))
	}
}

// ParseModifyType converts a change type name (case-insensitive) to a
// ModifyType. "NEUTRAL" is accepted as an alias of CONTEXT.
func ParseModifyType(name string) (ModifyType, error) {
	switch strings.ToUpper(strings.TrimSpace(name)) {
	case "ADD":
		return Add, nil
	case "DELETE":
		return Delete, nil
	case "CONTEXT", "NEUTRAL":
		return Context, nil
	default:
		return Context, fmt.Errorf("unknown diff line type %q", name)
	}
}

// Line is one line of a diff hunk. Number refers to the new revision of the
// file for added and context lines.
type Line struct {
	Number int
	Type   ModifyType
}

// Section is a single hunk.
type Section struct {
	Lines []Line
}

// Diff is the change set of one file. File is '/'-separated and
// repository-relative.
type Diff struct {
	File     string
	Sections []Section
}
