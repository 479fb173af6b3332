package report

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/mgpai22/srtcheck/internal/subtitle"
)

const overlapping = `1
00:00:01,000 --> 00:00:09,839
First.

2
00:00:09,519 --> 00:00:11,000
Second.

x
00:00:12,000 --> 00:00:13,000
Broken index.
`

func TestTextWithOverlaps(t *testing.T) {
	a := subtitle.Analyze(overlapping)

	var buf bytes.Buffer
	if err := Text(&buf, a, Options{}); err != nil {
		t.Fatalf("Text returned error: %v", err)
	}
	out := buf.String()

	for _, want := range []string{
		"Total Segments: 2",
		"Collision Count: 1",
		"Found 1 timing overlap.",
		"#1  00:00:01,000 → 00:00:09,839",
		"Overlap: 320ms with #2",
		"Overlap: 320ms with #1",
		"1 entry could not be parsed:",
		`block 3 ("x")`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("expected output to contain %q, got:\n%s", want, out)
		}
	}
	if strings.Contains(out, "\x1b[") {
		t.Errorf("expected no escape sequences without color, got %q", out)
	}
}

func TestTextVerdicts(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"empty", "", "0 segments parsed"},
		{"clean", "1\n00:00:01,000 --> 00:00:02,000\nHi\n", "No overlaps found."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			if err := Text(&buf, subtitle.Analyze(tt.input), Options{}); err != nil {
				t.Fatalf("Text returned error: %v", err)
			}
			if !strings.Contains(buf.String(), tt.want) {
				t.Errorf("expected %q in output, got:\n%s", tt.want, buf.String())
			}
		})
	}
}

func TestTextMediaBounds(t *testing.T) {
	a := subtitle.Analyze(overlapping)
	past := subtitle.SegmentsPastEnd(a.Segments, 10*time.Second)

	var buf bytes.Buffer
	err := Text(&buf, a, Options{MediaEnd: 10 * time.Second, PastEnd: past})
	if err != nil {
		t.Fatalf("Text returned error: %v", err)
	}
	if !strings.Contains(buf.String(), "1 segment(s) end after the media (10s):") {
		t.Errorf("missing media summary in:\n%s", buf.String())
	}
	if !strings.Contains(buf.String(), "#2 ends at 00:00:11,000") {
		t.Errorf("missing past-end segment in:\n%s", buf.String())
	}
}

func TestJSONDocument(t *testing.T) {
	a := subtitle.Analyze(overlapping)

	var buf bytes.Buffer
	if err := JSON(&buf, NewDocument(a, nil)); err != nil {
		t.Fatalf("JSON returned error: %v", err)
	}

	var doc map[string]any
	if err := json.Unmarshal(buf.Bytes(), &doc); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}

	if doc["segment_count"] != float64(2) {
		t.Errorf("expected segment_count 2, got %v", doc["segment_count"])
	}
	if doc["overlap_count"] != float64(1) {
		t.Errorf("expected overlap_count 1, got %v", doc["overlap_count"])
	}
	if _, ok := doc["past_media_end"]; ok {
		t.Error("past_media_end should be omitted without a media check")
	}

	overlaps := doc["overlaps"].([]any)
	first := overlaps[0].(map[string]any)
	if first["overlap_duration_ms"] != float64(320) {
		t.Errorf("expected duration 320, got %v", first["overlap_duration_ms"])
	}

	errs := doc["errors"].([]any)
	if len(errs) != 1 {
		t.Fatalf("expected 1 error, got %d", len(errs))
	}
}

func TestJSONEmptyAnalysisUsesArrays(t *testing.T) {
	var buf bytes.Buffer
	if err := JSON(&buf, NewDocument(subtitle.Analyze(""), nil)); err != nil {
		t.Fatalf("JSON returned error: %v", err)
	}
	out := buf.String()
	for _, want := range []string{`"segments": []`, `"overlaps": []`, `"errors": []`} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %s in %s", want, out)
		}
	}
}
