package subtitle

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

const timingSeparator = " --> "

// blank line, possibly holding stray whitespace. Covers vertical tab,
// Unicode space separators, line/paragraph separators and BOM, not just \s.
var blockSeparator = regexp.MustCompile(`\n[\s\v\p{Zs}\x{2028}\x{2029}\x{feff}]*\n`)

// Parse converts SRT text into segments sorted by start time. Blocks with
// fewer than three lines are dropped silently. Blocks whose index or timing
// line cannot be read are reported as *EntryError and left out; the rest of
// the document is still parsed. Segments with equal start times keep their
// document order.
func Parse(text string) ([]Segment, []*EntryError) {
	text = normalize(text)
	segments := []Segment{}
	var errs []*EntryError

	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return segments, nil
	}

	for i, block := range blockSeparator.Split(trimmed, -1) {
		lines := strings.Split(strings.TrimSpace(block), "\n")
		if len(lines) < 3 {
			continue
		}

		seg, err := parseBlock(lines)
		if err != nil {
			errs = append(errs, &EntryError{
				Block:     i + 1,
				IndexLine: strings.TrimSpace(lines[0]),
				Err:       err,
			})
			continue
		}
		segments = append(segments, seg)
	}

	sort.SliceStable(segments, func(a, b int) bool {
		return segments[a].StartTime < segments[b].StartTime
	})

	return segments, errs
}

func parseBlock(lines []string) (Segment, error) {
	index, err := parseIndex(lines[0])
	if err != nil {
		return Segment{}, err
	}

	parts := strings.Split(lines[1], timingSeparator)
	if len(parts) < 2 {
		return Segment{}, ErrMalformedTimingLine
	}
	startLabel := strings.TrimSpace(parts[0])
	endLabel := strings.TrimSpace(parts[1])

	startTime, err := ParseTimestamp(startLabel)
	if err != nil {
		return Segment{}, fmt.Errorf("start: %w", err)
	}
	endTime, err := ParseTimestamp(endLabel)
	if err != nil {
		return Segment{}, fmt.Errorf("end: %w", err)
	}

	return Segment{
		Index:      index,
		StartTime:  startTime,
		EndTime:    endTime,
		Text:       strings.Join(lines[2:], "\n"),
		StartLabel: startLabel,
		EndLabel:   endLabel,
	}, nil
}

// parseIndex reads the longest leading integer of the line, ignoring
// whatever follows it ("12 " and "12a" both give 12).
func parseIndex(line string) (int, error) {
	s := strings.TrimLeft(line, " \t\v\f\r")

	end := 0
	if end < len(s) && (s[end] == '+' || s[end] == '-') {
		end++
	}
	digits := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digits {
		return 0, ErrInvalidIndex
	}

	index, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrInvalidIndex, err)
	}
	return index, nil
}

// ParseTimestamp converts "H:MM:SS,mmm" to milliseconds. Components may have
// any number of digits and are not range checked, so "0:75:00,000" is
// 4500000.
func ParseTimestamp(label string) (int64, error) {
	clock, millis, ok := strings.Cut(label, ",")
	if !ok {
		return 0, fmt.Errorf("%w %q: missing milliseconds", ErrInvalidTimestamp, label)
	}

	fields := strings.Split(clock, ":")
	if len(fields) != 3 {
		return 0, fmt.Errorf("%w %q: expected hours:minutes:seconds", ErrInvalidTimestamp, label)
	}

	h, err := parseComponent(fields[0])
	if err != nil {
		return 0, fmt.Errorf("%w %q: hours: %v", ErrInvalidTimestamp, label, err)
	}
	m, err := parseComponent(fields[1])
	if err != nil {
		return 0, fmt.Errorf("%w %q: minutes: %v", ErrInvalidTimestamp, label, err)
	}
	s, err := parseComponent(fields[2])
	if err != nil {
		return 0, fmt.Errorf("%w %q: seconds: %v", ErrInvalidTimestamp, label, err)
	}
	ms, err := parseComponent(millis)
	if err != nil {
		return 0, fmt.Errorf("%w %q: milliseconds: %v", ErrInvalidTimestamp, label, err)
	}

	// every term must fit before it is scaled
	const limit = math.MaxInt64 / 4
	if h > limit/3600000 || m > limit/60000 || s > limit/1000 || ms > limit {
		return 0, fmt.Errorf("%w %q: out of range", ErrInvalidTimestamp, label)
	}

	return (h*3600+m*60+s)*1000 + ms, nil
}

func parseComponent(field string) (int64, error) {
	if field == "" {
		return 0, errors.New("empty")
	}
	for _, r := range field {
		if r < '0' || r > '9' {
			return 0, fmt.Errorf("%q is not a number", field)
		}
	}
	return strconv.ParseInt(field, 10, 64)
}

func normalize(text string) string {
	text = strings.TrimPrefix(text, "\ufeff")
	return strings.ReplaceAll(text, "\r\n", "\n")
}
