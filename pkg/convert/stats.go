package convert

import (
	"fmt"
	"math"
	"strings"
)

// Stats compares the size of a workflow with the code generated from it.
type Stats struct {
	InputLines  int
	OutputLines int
}

// NewStats counts lines of the trimmed input and output.
func NewStats(input, output string) Stats {
	return Stats{
		InputLines:  countLines(input),
		OutputLines: countLines(output),
	}
}

// Saved is the number of lines saved; negative when the output is longer.
func (s Stats) Saved() int {
	return s.InputLines - s.OutputLines
}

// Percent is Saved as a rounded percentage of the input.
func (s Stats) Percent() int {
	if s.InputLines == 0 {
		return 0
	}
	return int(math.Round(float64(s.Saved()) / float64(s.InputLines) * 100))
}

func (s Stats) String() string {
	saved := s.Saved()
	if saved < 0 {
		saved = -saved
	}
	return fmt.Sprintf("%d LOC saved! (%d%% of original)", saved, s.Percent())
}

func countLines(s string) int {
	return len(strings.Split(strings.TrimSpace(s), "\n"))
}
