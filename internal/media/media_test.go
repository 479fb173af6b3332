package media

import (
	"context"
	"path/filepath"
	"testing"
	"time"
)

func TestParseProbeDuration(t *testing.T) {
	tests := []struct {
		name    string
		out     string
		want    time.Duration
		wantErr bool
	}{
		{
			name: "seconds with fraction",
			out:  `{"streams":[],"format":{"filename":"a.mp4","duration":"15.554000"}}`,
			want: 15554 * time.Millisecond,
		},
		{
			name:    "missing duration",
			out:     `{"format":{}}`,
			wantErr: true,
		},
		{
			name:    "not json",
			out:     `ffprobe: error`,
			wantErr: true,
		},
		{
			name:    "garbage duration",
			out:     `{"format":{"duration":"N/A"}}`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseProbeDuration(tt.out)
			if tt.wantErr {
				if err == nil {
					t.Errorf("expected error, got %v", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestDurationMissingFile(t *testing.T) {
	p := NewFFprobe(time.Second)
	_, err := p.Duration(context.Background(), filepath.Join(t.TempDir(), "missing.mp4"))
	if err == nil {
		t.Error("expected error for missing file")
	}
}
