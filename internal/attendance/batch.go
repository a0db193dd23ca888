package attendance

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"hrconsole/internal/logging"
)

// decode is replaced in tests to simulate undecodable input.
var decode = Decode

// ErrNoFiles is returned when a batch is submitted without any files.
var ErrNoFiles = errors.New("no punch-log files selected")

// Source is a named, readable punch-log payload.
type Source interface {
	Name() string
	Open() (io.ReadCloser, error)
}

// FileSource reads a punch log from disk.
type FileSource string

// Name returns the base name of the file.
func (f FileSource) Name() string { return filepath.Base(string(f)) }

// Open opens the file for reading.
func (f FileSource) Open() (io.ReadCloser, error) { return os.Open(string(f)) }

// MemorySource is an in-memory punch log.
type MemorySource struct {
	FileName string
	Data     []byte
}

// Name returns the file name.
func (m MemorySource) Name() string { return m.FileName }

// Open returns a reader over the data.
func (m MemorySource) Open() (io.ReadCloser, error) {
	return io.NopCloser(bytes.NewReader(m.Data)), nil
}

// BatchOptions control LoadBatch.
type BatchOptions struct {
	Mode               Mode
	AllowedExtensions  []string
	MaxConcurrentReads int
}

// DefaultBatchOptions returns lenient parsing of .dat files with up to 4 concurrent reads.
func DefaultBatchOptions() BatchOptions {
	return BatchOptions{
		Mode:               ModeLenient,
		AllowedExtensions:  []string{".dat"},
		MaxConcurrentReads: 4,
	}
}

// FileResult describes one file's contribution to a batch.
type FileResult struct {
	Name     string        `json:"name"`
	Encoding string        `json:"encoding"`
	Records  int           `json:"records"`
	Lines    int           `json:"lines"`
	Skipped  int           `json:"skipped"`
	Warnings []LineWarning `json:"warnings,omitempty"`
}

// Batch is the combined result of importing several files.
// Records are concatenated in submission order; records from different files
// are never merged even when they share an employee and date.
type Batch struct {
	ID      string        `json:"id"`
	Files   []FileResult  `json:"files"`
	Records []DailyRecord `json:"records"`
}

// SkippedLines returns the number of malformed lines across all files.
func (b *Batch) SkippedLines() int {
	n := 0
	for _, f := range b.Files {
		n += f.Skipped
	}
	return n
}

// Message is the user-facing completion message.
func (b *Batch) Message() string {
	return fmt.Sprintf("Successfully processed %d records from %d file(s)", len(b.Records), len(b.Files))
}

// ValidateSources rejects files whose names lack an allowed extension.
func ValidateSources(sources []Source, allowed []string) error {
	for _, src := range sources {
		if !HasAllowedExtension(src.Name(), allowed) {
			return &InputError{File: src.Name(), Allowed: allowed}
		}
	}
	return nil
}

// HasAllowedExtension reports whether name ends in one of allowed. The
// comparison is case-sensitive, so "log.DAT" is not a ".dat" file.
// An empty allow-list accepts every name.
func HasAllowedExtension(name string, allowed []string) bool {
	if len(allowed) == 0 {
		return true
	}
	for _, a := range allowed {
		if strings.HasSuffix(name, a) {
			return true
		}
	}
	return false
}

// LoadBatch reads every source concurrently, then parses each independently.
// The batch is all-or-nothing: one rejected, unreadable or unparseable file
// fails the whole call and no records are returned.
func LoadBatch(ctx context.Context, sources []Source, opts BatchOptions) (*Batch, error) {
	timer := logging.StartTimer(logging.CategoryImport, "LoadBatch")
	defer timer.Stop()

	if len(sources) == 0 {
		return nil, ErrNoFiles
	}
	if err := ValidateSources(sources, opts.AllowedExtensions); err != nil {
		logging.ImportError("batch rejected: %v", err)
		return nil, err
	}

	contents, err := readAll(ctx, sources, opts.MaxConcurrentReads)
	if err != nil {
		logging.ImportError("batch read failed: %v", err)
		return nil, err
	}

	batch := &Batch{
		ID:    uuid.NewString(),
		Files: make([]FileResult, 0, len(sources)),
	}
	for i, src := range sources {
		text, enc, err := decode(contents[i])
		if err != nil {
			perr := &ParseError{File: src.Name(), Reason: err.Error()}
			logging.ImportError("batch decode failed: %v", perr)
			return nil, perr
		}
		res, err := ParseWithOptions(text, Options{Mode: opts.Mode, File: src.Name()})
		if err != nil {
			logging.ImportError("batch parse failed: %v", err)
			return nil, err
		}
		batch.Records = append(batch.Records, res.Records...)
		batch.Files = append(batch.Files, FileResult{
			Name:     src.Name(),
			Encoding: enc,
			Records:  len(res.Records),
			Lines:    res.Lines,
			Skipped:  res.Skipped,
			Warnings: res.Warnings,
		})
	}

	logging.Import("batch %s: %s (skipped %d lines)", batch.ID, batch.Message(), batch.SkippedLines())
	if l := logging.Get(logging.CategoryImport); l.Enabled() {
		for _, f := range batch.Files {
			l.Debug("batch %s file %s: encoding=%s lines=%d records=%d skipped=%d", batch.ID, f.Name, f.Encoding, f.Lines, f.Records, f.Skipped)
		}
	}
	return batch, nil
}

func readAll(ctx context.Context, sources []Source, limit int) ([][]byte, error) {
	contents := make([][]byte, len(sources))

	g, gctx := errgroup.WithContext(ctx)
	if limit > 0 {
		g.SetLimit(limit)
	}
	for i, src := range sources {
		i, src := i, src
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			data, err := readSource(src)
			if err != nil {
				return &ReadError{File: src.Name(), Err: err}
			}
			contents[i] = data
			logging.ImportDebug("read %s (%d bytes)", src.Name(), len(data))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return contents, nil
}

func readSource(src Source) ([]byte, error) {
	rc, err := src.Open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return io.ReadAll(rc)
}
