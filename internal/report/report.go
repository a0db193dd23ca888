// Package report summarises an import batch for the terminal.
package report

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/glamour"

	"hrconsole/internal/attendance"
	"hrconsole/internal/export"
)

// Summary is the outcome of one import batch.
type Summary struct {
	BatchID    string
	Records    int
	Files      []attendance.FileResult
	Counts     attendance.StatusCounts
	TotalHours float64
}

// Build summarises a batch.
func Build(b *attendance.Batch) Summary {
	return Summary{
		BatchID:    b.ID,
		Records:    len(b.Records),
		Files:      b.Files,
		Counts:     attendance.Summarize(b.Records),
		TotalHours: attendance.TotalHours(b.Records),
	}
}

// Message is the single success line shown after an import.
func (s Summary) Message() string {
	return fmt.Sprintf("Successfully processed %d records from %d file(s)", s.Records, len(s.Files))
}

// Skipped returns the malformed line count across files.
func (s Summary) Skipped() int {
	n := 0
	for _, f := range s.Files {
		n += f.Skipped
	}
	return n
}

// Markdown renders the summary as a markdown document.
func (s Summary) Markdown() string {
	var sb strings.Builder

	sb.WriteString("# Attendance import\n\n")
	sb.WriteString(s.Message() + ".\n\n")

	sb.WriteString("| Status | Days |\n|---|---:|\n")
	for _, st := range attendance.AllStatuses {
		if st == attendance.StatusUnknown && s.Counts[st] == 0 {
			continue
		}
		fmt.Fprintf(&sb, "| %s | %d |\n", st, s.Counts[st])
	}
	fmt.Fprintf(&sb, "\nTotal hours worked: **%s**\n\n", export.FormatHours(roundHours(s.TotalHours)))

	sb.WriteString("## Files\n\n| File | Encoding | Lines | Records | Skipped |\n|---|---|---:|---:|---:|\n")
	for _, f := range s.Files {
		fmt.Fprintf(&sb, "| %s | %s | %d | %d | %d |\n", f.Name, f.Encoding, f.Lines, f.Records, f.Skipped)
	}

	if n := s.Skipped(); n > 0 {
		fmt.Fprintf(&sb, "\n> %d malformed line(s) were skipped.\n", n)
	}
	if s.BatchID != "" {
		fmt.Fprintf(&sb, "\n`batch %s`\n", s.BatchID)
	}
	return sb.String()
}

func roundHours(h float64) float64 {
	return math.Round(h*100) / 100
}

// Render renders the summary with a glamour style ("dark", "light", "notty", ...).
func Render(s Summary, style string, width int) (string, error) {
	if style == "" {
		style = "notty"
	}
	opts := []glamour.TermRendererOption{glamour.WithStandardStyle(style)}
	if width > 0 {
		opts = append(opts, glamour.WithWordWrap(width))
	}
	r, err := glamour.NewTermRenderer(opts...)
	if err != nil {
		return "", fmt.Errorf("failed to create renderer: %w", err)
	}
	out, err := r.Render(s.Markdown())
	if err != nil {
		return "", fmt.Errorf("failed to render summary: %w", err)
	}
	return out, nil
}
