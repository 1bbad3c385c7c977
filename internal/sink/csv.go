package sink

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/clobwatch/polymarket-data/internal/model"
)

// WriteError wraps a failure to persist a record. Callers treat it as fatal:
// a recorder that keeps consuming while dropping rows is worse than one that
// stops loudly.
type WriteError struct {
	Path string
	Err  error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("sink write %s: %v", e.Path, e.Err)
}

func (e *WriteError) Unwrap() error {
	return e.Err
}

// CSV is an append-only record sink backed by a single CSV file. Every write
// flushes user-space buffers before returning, so a crash immediately after
// Write loses at most OS-level buffering.
type CSV struct {
	mu     sync.Mutex
	file   *os.File
	w      *csv.Writer
	path   string
	closed bool
}

// Open ensures dir exists, opens dir/filename for appending, and writes the
// header row only when the file is empty. Reopening an existing non-empty
// file never duplicates the header.
func Open(dir, filename string) (*CSV, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}

	path := filepath.Join(dir, filename)
	file, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open sink file: %w", err)
	}

	c := &CSV{
		file: file,
		w:    csv.NewWriter(file),
		path: path,
	}

	info, err := file.Stat()
	if err != nil {
		file.Close()
		return nil, fmt.Errorf("stat sink file: %w", err)
	}
	if info.Size() == 0 {
		if err := c.writeRow(model.Columns); err != nil {
			file.Close()
			return nil, fmt.Errorf("write header: %w", err)
		}
	}

	return c, nil
}

// Path returns the file the sink appends to.
func (c *CSV) Path() string {
	return c.path
}

// Write appends one record and flushes it through to the file.
func (c *CSV) Write(rec *model.Record) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return &WriteError{Path: c.path, Err: os.ErrClosed}
	}
	if err := c.write(rec.Row()); err != nil {
		return &WriteError{Path: c.path, Err: err}
	}
	return nil
}

// Close flushes and releases the file. Safe to call more than once;
// subsequent calls are no-ops.
func (c *CSV) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return nil
	}
	c.closed = true

	c.w.Flush()
	flushErr := c.w.Error()
	closeErr := c.file.Close()
	if flushErr != nil {
		return flushErr
	}
	return closeErr
}

// writeRow appends a row under the lock.
func (c *CSV) writeRow(row []string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.write(row)
}

func (c *CSV) write(row []string) error {
	if err := c.w.Write(row); err != nil {
		return err
	}
	c.w.Flush()
	return c.w.Error()
}
