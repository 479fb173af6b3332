package subtitle

import (
	"fmt"
)

// result of one parse + overlap run over a document
type Analysis struct {
	Segments []Segment
	Overlaps []Overlap
	Errors   []*EntryError
}

// Analyze parses text and checks the resulting segments for overlaps. Each
// call starts from scratch; nothing is shared between calls.
func Analyze(text string) *Analysis {
	segments, errs := Parse(text)
	return &Analysis{
		Segments: segments,
		Overlaps: DetectOverlaps(segments),
		Errors:   errs,
	}
}

func (a *Analysis) HasOverlaps() bool {
	return len(a.Overlaps) > 0
}

// overlaps that involve the segment with the given declared index, on either side
func (a *Analysis) OverlapsFor(index int) []Overlap {
	var found []Overlap
	for _, o := range a.Overlaps {
		if o.FirstIndex == index || o.SecondIndex == index {
			found = append(found, o)
		}
	}
	return found
}

// Partner returns the index on the other side of o as seen from index.
func Partner(o Overlap, index int) int {
	if o.FirstIndex == index {
		return o.SecondIndex
	}
	return o.FirstIndex
}

func FormatDuration(ms int64) string {
	return fmt.Sprintf("%dms", ms)
}
