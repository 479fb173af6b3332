package report

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/mgpai22/srtcheck/internal/subtitle"
)

type Options struct {
	Color bool

	// set when the document was checked against a media file
	MediaEnd time.Duration
	PastEnd  []subtitle.Segment
}

type styles struct {
	header   lipgloss.Style
	dim      lipgloss.Style
	ok       lipgloss.Style
	alert    lipgloss.Style
	badge    lipgloss.Style
	flagged  lipgloss.Style
	timecode lipgloss.Style
}

func newStyles(r *lipgloss.Renderer) styles {
	return styles{
		header:   r.NewStyle().Bold(true),
		dim:      r.NewStyle().Foreground(lipgloss.Color("241")),
		ok:       r.NewStyle().Foreground(lipgloss.Color("42")),
		alert:    r.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),
		badge:    r.NewStyle().Foreground(lipgloss.Color("231")).Background(lipgloss.Color("160")),
		flagged:  r.NewStyle().Foreground(lipgloss.Color("203")).Bold(true),
		timecode: r.NewStyle().Foreground(lipgloss.Color("245")),
	}
}

// Text writes a human readable report: counts, a verdict line, every
// segment in start-time order with overlap badges, then entries that could
// not be parsed.
func Text(w io.Writer, a *subtitle.Analysis, opts Options) error {
	r := lipgloss.NewRenderer(w)
	if !opts.Color {
		r.SetColorProfile(termenv.Ascii)
	}
	st := newStyles(r)

	var sb strings.Builder

	sb.WriteString(st.header.Render("Analysis Results"))
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("Total Segments: %d  Collision Count: %d\n\n",
		len(a.Segments), len(a.Overlaps)))

	switch {
	case len(a.Segments) == 0:
		sb.WriteString(st.dim.Render("0 segments parsed"))
	case a.HasOverlaps():
		n := len(a.Overlaps)
		plural := "s"
		if n == 1 {
			plural = ""
		}
		sb.WriteString(st.alert.Render(fmt.Sprintf("Found %d timing overlap%s.", n, plural)))
	default:
		sb.WriteString(st.ok.Render("No overlaps found."))
	}
	sb.WriteString("\n")

	if len(a.Segments) > 0 {
		sb.WriteString("\n")
	}
	for _, seg := range a.Segments {
		overlaps := a.OverlapsFor(seg.Index)

		label := fmt.Sprintf("#%d", seg.Index)
		if len(overlaps) > 0 {
			label = st.flagged.Render(label)
		} else {
			label = st.header.Render(label)
		}
		sb.WriteString(fmt.Sprintf("%s  %s\n", label,
			st.timecode.Render(seg.StartLabel+" → "+seg.EndLabel)))

		for _, line := range strings.Split(seg.Text, "\n") {
			sb.WriteString("    ")
			sb.WriteString(line)
			sb.WriteString("\n")
		}

		for _, o := range overlaps {
			sb.WriteString("    ")
			sb.WriteString(st.badge.Render(fmt.Sprintf(" Overlap: %s with #%d ",
				subtitle.FormatDuration(o.Duration),
				subtitle.Partner(o, seg.Index))))
			sb.WriteString("\n")
		}
	}

	if opts.MediaEnd > 0 {
		sb.WriteString("\n")
		if len(opts.PastEnd) == 0 {
			sb.WriteString(st.ok.Render(fmt.Sprintf("All segments end within the media (%s).", opts.MediaEnd)))
			sb.WriteString("\n")
		} else {
			sb.WriteString(st.alert.Render(fmt.Sprintf("%d segment(s) end after the media (%s):",
				len(opts.PastEnd), opts.MediaEnd)))
			sb.WriteString("\n")
			for _, seg := range opts.PastEnd {
				sb.WriteString(fmt.Sprintf("    #%d ends at %s\n", seg.Index, seg.EndLabel))
			}
		}
	}

	if len(a.Errors) > 0 {
		sb.WriteString("\n")
		sb.WriteString(st.alert.Render(fmt.Sprintf("%d entr%s could not be parsed:",
			len(a.Errors), pluralY(len(a.Errors)))))
		sb.WriteString("\n")
		for _, e := range a.Errors {
			sb.WriteString(st.dim.Render("    " + e.Error()))
			sb.WriteString("\n")
		}
	}

	_, err := io.WriteString(w, sb.String())
	return err
}

func pluralY(n int) string {
	if n == 1 {
		return "y"
	}
	return "ies"
}
