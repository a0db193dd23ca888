package attendance

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"golang.org/x/text/encoding/unicode"
)

type failingSource struct{ name string }

func (f failingSource) Name() string { return f.name }

func (f failingSource) Open() (io.ReadCloser, error) {
	return nil, errors.New("device disconnected")
}

func TestLoadBatchConcatenatesWithoutMerging(t *testing.T) {
	defer goleak.VerifyNone(t)

	sources := []Source{
		MemorySource{FileName: "gate-a.dat", Data: []byte("255 Humera 2025-07-22 09:00:00 0\n255 Humera 2025-07-22 17:00:00 1\n")},
		MemorySource{FileName: "gate-b.dat", Data: []byte("255 Humera 2025-07-22 18:41:57 1\nshort line\n")},
	}

	batch, err := LoadBatch(context.Background(), sources, DefaultBatchOptions())
	require.NoError(t, err)

	require.Len(t, batch.Records, 2)
	assert.Equal(t, batch.Records[0].Key(), batch.Records[1].Key())
	assert.Equal(t, 8.0, batch.Records[0].HoursWorked)
	assert.Equal(t, 1, batch.Records[1].TotalPunches)

	require.Len(t, batch.Files, 2)
	assert.Equal(t, "gate-a.dat", batch.Files[0].Name)
	assert.Equal(t, "gate-b.dat", batch.Files[1].Name)
	assert.Equal(t, 1, batch.Files[1].Skipped)
	assert.Equal(t, 1, batch.SkippedLines())
	assert.NotEmpty(t, batch.ID)
	assert.Equal(t, "Successfully processed 2 records from 2 file(s)", batch.Message())
}

func TestLoadBatchRejectsWrongExtension(t *testing.T) {
	defer goleak.VerifyNone(t)

	sources := []Source{
		MemorySource{FileName: "ok.dat", Data: []byte("1 A 2025-07-22 08:00 0\n")},
		MemorySource{FileName: "export.csv"},
	}

	_, err := LoadBatch(context.Background(), sources, DefaultBatchOptions())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidFileType)
	assert.Contains(t, err.Error(), "export.csv")
}

func TestLoadBatchExtensionIsCaseSensitive(t *testing.T) {
	sources := []Source{
		MemorySource{FileName: "ok.dat", Data: []byte("1 A 2025-07-22 08:00 0\n")},
		MemorySource{FileName: "GATE.DAT", Data: []byte("1 A 2025-07-22 08:00 0\n")},
	}

	_, err := LoadBatch(context.Background(), sources, DefaultBatchOptions())
	assert.ErrorIs(t, err, ErrInvalidFileType)
	assert.Contains(t, err.Error(), "GATE.DAT")
}

func TestHasAllowedExtension(t *testing.T) {
	tests := []struct {
		name    string
		allowed []string
		want    bool
	}{
		{"log.dat", []string{".dat"}, true},
		{"log.DAT", []string{".dat"}, false},
		{"log.dat.bak", []string{".dat"}, false},
		{"log.txt", []string{".dat", ".txt"}, true},
		{"anything", nil, true},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, HasAllowedExtension(tt.name, tt.allowed), tt.name)
	}
}

func TestLoadBatchReadFailureAbortsBatch(t *testing.T) {
	defer goleak.VerifyNone(t)

	sources := []Source{
		MemorySource{FileName: "ok.dat", Data: []byte("1 A 2025-07-22 08:00 0\n")},
		failingSource{name: "broken.dat"},
	}

	batch, err := LoadBatch(context.Background(), sources, DefaultBatchOptions())
	require.Error(t, err)
	assert.Nil(t, batch)
	assert.ErrorIs(t, err, ErrRead)

	var rerr *ReadError
	require.True(t, errors.As(err, &rerr))
	assert.Equal(t, "broken.dat", rerr.File)
}

func TestLoadBatchStrictParseFailure(t *testing.T) {
	defer goleak.VerifyNone(t)

	opts := DefaultBatchOptions()
	opts.Mode = ModeStrict
	sources := []Source{
		MemorySource{FileName: "ok.dat", Data: []byte("1 A 2025-07-22 08:00 0\n")},
		MemorySource{FileName: "bad.dat", Data: []byte("1 A 2025-07-22 08:00 0\ngarbage\n")},
	}

	_, err := LoadBatch(context.Background(), sources, opts)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrParse)
	assert.Contains(t, err.Error(), "bad.dat line 2")
}

func TestLoadBatchDecodeFailure(t *testing.T) {
	defer goleak.VerifyNone(t)

	decode = func(data []byte) (string, string, error) {
		return "", "", errors.New("utf-16le decode failed: short read")
	}
	t.Cleanup(func() { decode = Decode })

	sources := []Source{MemorySource{FileName: "gate.dat", Data: []byte{0xff, 0xfe, 0x31}}}
	batch, err := LoadBatch(context.Background(), sources, DefaultBatchOptions())
	require.Error(t, err)
	assert.Nil(t, batch)
	assert.ErrorIs(t, err, ErrParse)

	var perr *ParseError
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, "gate.dat", perr.File)
	assert.Equal(t, "failed to parse gate.dat: utf-16le decode failed: short read", err.Error())
}

func TestLoadBatchNoFiles(t *testing.T) {
	_, err := LoadBatch(context.Background(), nil, DefaultBatchOptions())
	assert.ErrorIs(t, err, ErrNoFiles)
}

func TestLoadBatchCancelledContext(t *testing.T) {
	defer goleak.VerifyNone(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := LoadBatch(ctx, []Source{MemorySource{FileName: "a.dat"}}, DefaultBatchOptions())
	assert.ErrorIs(t, err, context.Canceled)
}

func TestLoadBatchFromDiskUTF16(t *testing.T) {
	defer goleak.VerifyNone(t)

	enc := unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewEncoder()
	data, err := enc.Bytes([]byte("42 Zainab 2025-07-22 08:00:00 0\n42 Zainab 2025-07-22 14:00:00 1\n"))
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "att.dat")
	require.NoError(t, os.WriteFile(path, data, 0644))

	batch, err := LoadBatch(context.Background(), []Source{FileSource(path)}, DefaultBatchOptions())
	require.NoError(t, err)
	require.Len(t, batch.Records, 1)
	assert.Equal(t, "Zainab", batch.Records[0].Name)
	assert.Equal(t, StatusPresent, batch.Records[0].Status)
	assert.Equal(t, EncodingUTF16LE, batch.Files[0].Encoding)
}

func TestLoadBatchMissingFile(t *testing.T) {
	defer goleak.VerifyNone(t)

	path := filepath.Join(t.TempDir(), "missing.dat")
	_, err := LoadBatch(context.Background(), []Source{FileSource(path)}, DefaultBatchOptions())
	assert.ErrorIs(t, err, ErrRead)
	assert.ErrorIs(t, err, os.ErrNotExist)
}
