package export

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hrconsole/internal/attendance"
)

func TestWriteCSV(t *testing.T) {
	records := []attendance.DailyRecord{
		{
			EmployeeID: "255", Name: "Humera", Date: "2025-07-22",
			ClockIn: "09:05:00", ClockOut: "18:30:00",
			HoursWorked: 9.42, TotalPunches: 3, Status: attendance.StatusOvertime,
		},
		{
			EmployeeID: "8", Name: `Dana "DJ"`, Date: "2025-07-22",
			ClockIn: "22:00", ClockOut: "06:00",
			HoursWorked: 8, TotalPunches: 2, Status: attendance.StatusPresent,
		},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, records))

	want := `"Employee ID","Name","Date","Clock In","Clock Out","Hours Worked","Status","Total Punches"` + "\n" +
		`"255","Humera","2025-07-22","09:05:00","18:30:00","9.42","Overtime","3"` + "\n" +
		`"8","Dana ""DJ""","2025-07-22","22:00","06:00","8","Present","2"` + "\n"
	assert.Equal(t, want, buf.String())
}

func TestWriteCSVEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, nil))
	assert.Equal(t, 1, bytes.Count(buf.Bytes(), []byte("\n")))
}

func TestFileName(t *testing.T) {
	day := time.Date(2025, time.July, 23, 15, 4, 5, 0, time.UTC)
	assert.Equal(t, "attendance-2025-07-23.csv", FileName(day))
}

func TestFormatHours(t *testing.T) {
	assert.Equal(t, "0", FormatHours(0))
	assert.Equal(t, "8", FormatHours(8))
	assert.Equal(t, "9.42", FormatHours(9.42))
	assert.Equal(t, "0.33", FormatHours(0.33))
}

func TestWriteFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "exports")
	day := time.Date(2025, time.July, 23, 0, 0, 0, 0, time.UTC)

	path, err := WriteFile(dir, day, []attendance.DailyRecord{{EmployeeID: "1", Name: "A", Status: attendance.StatusAbsent}})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "attendance-2025-07-23.csv"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"1","A","","","","0","Absent","0"`)
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, nil))
	assert.JSONEq(t, "[]", buf.String())

	buf.Reset()
	require.NoError(t, WriteJSON(&buf, []attendance.DailyRecord{{EmployeeID: "1", Status: attendance.StatusPartial, HoursWorked: 2.5}}))

	var decoded []map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	require.Len(t, decoded, 1)
	assert.Equal(t, "Partial", decoded[0]["status"])
	assert.Equal(t, 2.5, decoded[0]["hoursWorked"])
}
