package checker

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/krysz/cover-checker/internal/coverage"
)

func TestCompress(t *testing.T) {
	tests := []struct {
		name  string
		lines []LineStatus
		want  []RangeStatus
	}{
		{
			name:  "empty",
			lines: nil,
			want:  []RangeStatus{},
		},
		{
			name:  "single line",
			lines: []LineStatus{{Line: 4, Status: coverage.Covered}},
			want:  []RangeStatus{rs(4, 4, coverage.Covered)},
		},
		{
			name: "status change splits",
			lines: []LineStatus{
				{Line: 1, Status: coverage.Covered},
				{Line: 2, Status: coverage.Covered},
				{Line: 3, Status: coverage.Uncovered},
				{Line: 4, Status: coverage.Uncovered},
			},
			want: []RangeStatus{rs(1, 2, coverage.Covered), rs(3, 4, coverage.Uncovered)},
		},
		{
			name: "gap with same status merges",
			lines: []LineStatus{
				{Line: 1, Status: coverage.Covered},
				{Line: 2, Status: coverage.Covered},
				{Line: 5, Status: coverage.Uncovered},
				{Line: 9, Status: coverage.Covered},
				{Line: 12, Status: coverage.Covered},
			},
			want: []RangeStatus{
				rs(1, 2, coverage.Covered),
				rs(5, 5, coverage.Uncovered),
				rs(9, 12, coverage.Covered),
			},
		},
		{
			name: "alternating",
			lines: []LineStatus{
				{Line: 1, Status: coverage.Covered},
				{Line: 2, Status: coverage.Uncovered},
				{Line: 3, Status: coverage.Covered},
			},
			want: []RangeStatus{
				rs(1, 1, coverage.Covered),
				rs(2, 2, coverage.Uncovered),
				rs(3, 3, coverage.Covered),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Compress(tt.lines))
		})
	}
}

func TestRange_String(t *testing.T) {
	assert.Equal(t, "3", Range{Start: 3, End: 3}.String())
	assert.Equal(t, "3-7", Range{Start: 3, End: 7}.String())
}
