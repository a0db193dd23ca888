// Package export writes attendance records as CSV or JSON.
package export

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"hrconsole/internal/attendance"
	"hrconsole/internal/logging"
)

// Header is the fixed CSV column order.
var Header = []string{
	"Employee ID",
	"Name",
	"Date",
	"Clock In",
	"Clock Out",
	"Hours Worked",
	"Status",
	"Total Punches",
}

// FileName returns the export file name for the given day.
func FileName(t time.Time) string {
	return fmt.Sprintf("attendance-%s.csv", t.Format("2006-01-02"))
}

// Row returns the CSV fields of one record.
func Row(r attendance.DailyRecord) []string {
	return []string{
		r.EmployeeID,
		r.Name,
		r.Date,
		r.ClockIn,
		r.ClockOut,
		FormatHours(r.HoursWorked),
		string(r.Status),
		strconv.Itoa(r.TotalPunches),
	}
}

// FormatHours prints hours in their shortest form: 9.42, 8, 0.
func FormatHours(h float64) string {
	return strconv.FormatFloat(h, 'f', -1, 64)
}

// WriteCSV writes a header row and one row per record. Every field is
// double-quoted and rows end with a bare newline.
func WriteCSV(w io.Writer, records []attendance.DailyRecord) error {
	bw := bufio.NewWriter(w)
	if err := writeRow(bw, Header); err != nil {
		return err
	}
	for _, r := range records {
		if err := writeRow(bw, Row(r)); err != nil {
			return err
		}
	}
	return bw.Flush()
}

func writeRow(w *bufio.Writer, fields []string) error {
	for i, f := range fields {
		if i > 0 {
			if err := w.WriteByte(','); err != nil {
				return err
			}
		}
		if _, err := w.WriteString(quote(f)); err != nil {
			return err
		}
	}
	return w.WriteByte('\n')
}

func quote(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

// WriteJSON writes records as an indented JSON array.
func WriteJSON(w io.Writer, records []attendance.DailyRecord) error {
	if records == nil {
		records = []attendance.DailyRecord{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(records)
}

// WriteFile writes the CSV export for day t into dir and returns its path.
func WriteFile(dir string, t time.Time, records []attendance.DailyRecord) (string, error) {
	return WriteFileAs(dir, FileName(t), records)
}

// WriteFileAs writes the CSV export into dir under name and returns its path.
func WriteFileAs(dir, name string, records []attendance.DailyRecord) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create export directory: %w", err)
	}
	path := filepath.Join(dir, name)

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create export file: %w", err)
	}
	if err := WriteCSV(f, records); err != nil {
		f.Close()
		return "", fmt.Errorf("failed to write export: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("failed to close export: %w", err)
	}

	logging.Export("wrote %d records to %s", len(records), path)
	return path, nil
}
