package report

import (
	"encoding/json"
	"io"

	"github.com/mgpai22/srtcheck/internal/subtitle"
)

// Document is the machine readable form of an analysis, shared by the
// CLI --json output and the HTTP API.
type Document struct {
	SegmentCount int                `json:"segment_count"`
	OverlapCount int                `json:"overlap_count"`
	Segments     []subtitle.Segment `json:"segments"`
	Overlaps     []subtitle.Overlap `json:"overlaps"`
	Errors       []EntryError       `json:"errors"`
	PastEnd      []int              `json:"past_media_end,omitempty"`
}

type EntryError struct {
	Block     int    `json:"block"`
	IndexLine string `json:"index_line"`
	Message   string `json:"message"`
}

func NewDocument(a *subtitle.Analysis, pastEnd []subtitle.Segment) *Document {
	doc := &Document{
		SegmentCount: len(a.Segments),
		OverlapCount: len(a.Overlaps),
		Segments:     a.Segments,
		Overlaps:     a.Overlaps,
		Errors:       make([]EntryError, 0, len(a.Errors)),
	}
	if doc.Segments == nil {
		doc.Segments = []subtitle.Segment{}
	}
	if doc.Overlaps == nil {
		doc.Overlaps = []subtitle.Overlap{}
	}

	for _, e := range a.Errors {
		doc.Errors = append(doc.Errors, EntryError{
			Block:     e.Block,
			IndexLine: e.IndexLine,
			Message:   e.Err.Error(),
		})
	}
	for _, seg := range pastEnd {
		doc.PastEnd = append(doc.PastEnd, seg.Index)
	}

	return doc
}

func JSON(w io.Writer, doc *Document) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}
