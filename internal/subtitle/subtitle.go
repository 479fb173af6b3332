package subtitle

import (
	"time"
)

// represents single subtitle entry, times in milliseconds since 00:00:00,000
type Segment struct {
	Index     int    `json:"index"`
	StartTime int64  `json:"start_time"`
	EndTime   int64  `json:"end_time"`
	Text      string `json:"text"`

	// timestamps exactly as written in the timing line, trimmed
	StartLabel string `json:"start_label"`
	EndLabel   string `json:"end_label"`
}

func (s Segment) End() time.Duration {
	return time.Duration(s.EndTime) * time.Millisecond
}

// represents timing collision between two neighbours in start-time order
type Overlap struct {
	FirstIndex  int   `json:"first_index"`
	SecondIndex int   `json:"second_index"`
	Duration    int64 `json:"overlap_duration_ms"`
}

// represents supported subtitle formats
type Format string

const (
	FormatSRT Format = "srt"
)
