package coverage

import (
	"fmt"
	"strings"
)

// Status classifies how a single source line was exercised by tests.
//
// Statuses form a total order, Nothing < Uncovered < Condition < Covered.
// When a line is reported more than once the higher-ranked status wins,
// see Max.
type Status int

const (
	// Nothing marks a line that is not executable or was not instrumented.
	Nothing Status = iota
	// Uncovered marks an executable line no test reached.
	Uncovered
	// Condition marks a branch that was only partially taken.
	Condition
	// Covered marks a line that was fully exercised.
	Covered
)

var statusNames = [...]string{
	Nothing:   "NOTHING",
	Uncovered: "UNCOVERED",
	Condition: "CONDITION",
	Covered:   "COVERED",
}

// String returns the upper-case name of the status.
func (s Status) String() string {
	if s < Nothing || s > Covered {
		return fmt.Sprintf("Status(%d)", int(s))
	}
	return statusNames[s]
}

// ParseStatus converts a status name (case-insensitive) to a Status.
func ParseStatus(name string) (Status, error) {
	n := strings.ToUpper(strings.TrimSpace(name))
	for i, s := range statusNames {
		if s == n {
			return Status(i), nil
		}
	}
	return Nothing, fmt.Errorf("unknown coverage status %q", name)
}

// Rank returns the precedence of s; higher ranks win duplicate resolution.
func (s Status) Rank() int {
	return int(s)
}

// Compare returns -1, 0 or +1 depending on whether a ranks below, equal to,
// or above b.
func Compare(a, b Status) int {
	switch {
	case a.Rank() < b.Rank():
		return -1
	case a.Rank() > b.Rank():
		return 1
	default:
		return 0
	}
}

// Max returns the higher-ranked of two statuses. On a tie it returns b, the
// later of the two.
func Max(a, b Status) Status {
	if Compare(a, b) > 0 {
		return a
	}
	return b
}

// IsTestable reports whether a line with this status counts toward the
// denominator of new-code coverage.
func (s Status) IsTestable() bool {
	return s != Nothing
}

// IsCovered reports whether a line with this status counts as covered.
// Partially covered branches count.
func (s Status) IsCovered() bool {
	return s == Covered || s == Condition
}

// MarshalText encodes the status by name.
func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText decodes a status name.
func (s *Status) UnmarshalText(text []byte) error {
	parsed, err := ParseStatus(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}
