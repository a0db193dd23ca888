package report

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hrconsole/internal/attendance"
)

func loadSample(t *testing.T) *attendance.Batch {
	t.Helper()
	batch, err := attendance.LoadBatch(context.Background(), []attendance.Source{
		attendance.MemorySource{FileName: "a.dat", Data: []byte(
			"1 Amina 2025-07-22 09:00 0\n1 Amina 2025-07-22 17:30 1\n2 Basit 2025-07-22 10:00 0\noops\n")},
	}, attendance.DefaultBatchOptions())
	require.NoError(t, err)
	return batch
}

func TestBuild(t *testing.T) {
	s := Build(loadSample(t))

	assert.Equal(t, 2, s.Records)
	assert.Equal(t, 1, s.Counts[attendance.StatusPresent])
	assert.Equal(t, 1, s.Counts[attendance.StatusAbsent])
	assert.Equal(t, 1, s.Skipped())
	assert.InDelta(t, 8.5, s.TotalHours, 1e-9)
	assert.Equal(t, "Successfully processed 2 records from 1 file(s)", s.Message())
}

func TestMarkdown(t *testing.T) {
	md := Build(loadSample(t)).Markdown()

	assert.Contains(t, md, "| Present | 1 |")
	assert.Contains(t, md, "| Absent | 1 |")
	assert.NotContains(t, md, "| Unknown |")
	assert.Contains(t, md, "| a.dat | utf-8 | 4 | 2 | 1 |")
	assert.Contains(t, md, "1 malformed line(s) were skipped")
	assert.Contains(t, md, "**8.5**")
}

func TestRenderPlain(t *testing.T) {
	out, err := Render(Build(loadSample(t)), "notty", 100)
	require.NoError(t, err)
	assert.True(t, strings.Contains(out, "Attendance import"))
	assert.Contains(t, out, "a.dat")
}
