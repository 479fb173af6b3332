package subtitle

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"
)

// ReadFile loads an .srt document. maxBytes <= 0 disables the size check.
func ReadFile(path string, maxBytes int64) (string, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if ext != "."+string(FormatSRT) {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}

	file, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open SRT file: %w", err)
	}
	defer func() {
		_ = file.Close()
	}()

	return Read(file, maxBytes)
}

// Read loads a document from r and checks that it is valid UTF-8.
func Read(r io.Reader, maxBytes int64) (string, error) {
	if maxBytes > 0 {
		r = io.LimitReader(r, maxBytes+1)
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("error reading SRT input: %w", err)
	}

	if maxBytes > 0 && int64(len(data)) > maxBytes {
		return "", fmt.Errorf("%w of %d bytes", ErrInputTooLarge, maxBytes)
	}
	if !utf8.Valid(data) {
		return "", ErrInvalidEncoding
	}

	return string(data), nil
}
