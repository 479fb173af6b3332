package subtitle

import (
	"time"
)

// DetectOverlaps scans segments, which must already be sorted by start time,
// and reports every neighbour pair where the first segment ends after the
// second one starts. Touching boundaries are not overlaps.
//
// Only neighbours are compared. A long segment that runs past a later,
// non-adjacent segment is reported against its immediate successor only;
// a contained segment further along is not reported on its own.
func DetectOverlaps(segments []Segment) []Overlap {
	overlaps := []Overlap{}

	for i := 0; i+1 < len(segments); i++ {
		current := segments[i]
		next := segments[i+1]

		if current.EndTime > next.StartTime {
			overlaps = append(overlaps, Overlap{
				FirstIndex:  current.Index,
				SecondIndex: next.Index,
				Duration:    current.EndTime - next.StartTime,
			})
		}
	}

	return overlaps
}

// SegmentsPastEnd returns the segments that end after mediaEnd.
func SegmentsPastEnd(segments []Segment, mediaEnd time.Duration) []Segment {
	var past []Segment
	for _, seg := range segments {
		if seg.End() > mediaEnd {
			past = append(past, seg)
		}
	}
	return past
}
