package subtitle

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidIndex        = errors.New("invalid index line")
	ErrMalformedTimingLine = errors.New("timing line missing \" --> \" separator")
	ErrInvalidTimestamp    = errors.New("invalid timestamp")

	ErrInputTooLarge     = errors.New("input exceeds size limit")
	ErrInvalidEncoding   = errors.New("input is not valid UTF-8")
	ErrUnsupportedFormat = errors.New("unsupported subtitle format")
)

// EntryError reports a block that had the right shape but could not be
// turned into a Segment. Block is the 1-based position of the block in the
// document, IndexLine is its first line as written.
type EntryError struct {
	Block     int
	IndexLine string
	Err       error
}

func (e *EntryError) Error() string {
	return fmt.Sprintf("block %d (%q): %v", e.Block, e.IndexLine, e.Err)
}

func (e *EntryError) Unwrap() error {
	return e.Err
}
