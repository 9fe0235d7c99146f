// Package export serializes Explanation records to JSON Lines and reads
// them back. This is the contract a persistence collaborator must
// round-trip faithfully: one JSON object per line, field names as
// defined on the model types.
package export

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/mfeld/lucid/internal/model"
)

// Writer appends Explanation records to a JSONL file. Safe for
// concurrent use; every record is flushed on write for crash safety.
type Writer struct {
	file   *os.File
	writer *bufio.Writer
	mutex  sync.Mutex
}

// NewWriter opens a JSONL file for appending, creating it if absent.
func NewWriter(filePath string) (*Writer, error) {
	// filePath is user-provided configuration for the history location
	// #nosec G304 -- History path is intentionally configurable by user
	file, err := os.OpenFile(filePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, fmt.Errorf("failed to open history file: %w", err)
	}
	return &Writer{
		file:   file,
		writer: bufio.NewWriter(file),
	}, nil
}

// Write appends one explanation as a JSON line.
func (w *Writer) Write(e *model.Explanation) error {
	w.mutex.Lock()
	defer w.mutex.Unlock()

	data, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("failed to marshal explanation %s: %w", e.DecisionID, err)
	}
	if _, err := w.writer.Write(data); err != nil {
		return fmt.Errorf("failed to write explanation: %w", err)
	}
	if _, err := w.writer.WriteString("\n"); err != nil {
		return fmt.Errorf("failed to write newline: %w", err)
	}
	if err := w.writer.Flush(); err != nil {
		return fmt.Errorf("failed to flush history file: %w", err)
	}
	return nil
}

// Close flushes and closes the underlying file.
func (w *Writer) Close() error {
	w.mutex.Lock()
	defer w.mutex.Unlock()

	var errs []error
	if err := w.writer.Flush(); err != nil {
		errs = append(errs, fmt.Errorf("failed to flush history file: %w", err))
	}
	if err := w.file.Close(); err != nil {
		errs = append(errs, fmt.Errorf("failed to close history file: %w", err))
	}
	if len(errs) > 0 {
		return fmt.Errorf("errors closing history file: %v", errs)
	}
	return nil
}

// WriteFile writes a full history to a JSONL file in one call,
// truncating any existing file.
func WriteFile(filePath string, explanations []*model.Explanation) error {
	// #nosec G304 -- History path is intentionally configurable by user
	file, err := os.Create(filePath)
	if err != nil {
		return fmt.Errorf("failed to create history file: %w", err)
	}
	defer file.Close()

	writer := bufio.NewWriter(file)
	for _, e := range explanations {
		data, err := json.Marshal(e)
		if err != nil {
			return fmt.Errorf("failed to marshal explanation %s: %w", e.DecisionID, err)
		}
		if _, err := writer.Write(data); err != nil {
			return fmt.Errorf("failed to write explanation: %w", err)
		}
		if _, err := writer.WriteString("\n"); err != nil {
			return fmt.Errorf("failed to write newline: %w", err)
		}
	}
	if err := writer.Flush(); err != nil {
		return fmt.Errorf("failed to flush history file: %w", err)
	}
	return nil
}

// Read decodes a JSONL history stream. Blank lines are skipped; a
// malformed line fails the whole read with its line number.
func Read(r io.Reader) ([]*model.Explanation, error) {
	var explanations []*model.Explanation
	scanner := bufio.NewScanner(r)
	// Records with large contexts can exceed the default token size.
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)

	line := 0
	for scanner.Scan() {
		line++
		raw := scanner.Bytes()
		if len(raw) == 0 {
			continue
		}
		var e model.Explanation
		if err := json.Unmarshal(raw, &e); err != nil {
			return nil, fmt.Errorf("failed to parse history line %d: %w", line, err)
		}
		// The decoder only validates the context; the rest of the record
		// invariants must hold too before the analytics see it.
		if err := e.Validate(); err != nil {
			return nil, fmt.Errorf("invalid record at history line %d: %w", line, err)
		}
		explanations = append(explanations, &e)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read history: %w", err)
	}
	return explanations, nil
}

// ReadFile decodes a JSONL history file.
func ReadFile(filePath string) ([]*model.Explanation, error) {
	// #nosec G304 -- History path is intentionally configurable by user
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open history file: %w", err)
	}
	defer file.Close()
	return Read(file)
}
