// Package logger appends one JSONL audit record per validation run.
// Free-text fields pass through the redactor before hitting disk, so the
// audit log can never leak what the validator just caught.
package logger

import (
	"encoding/json"
	"os"
	"sync"

	"github.com/promptsec/promptval/internal/redact"
)

// AuditEvent summarizes one validation run.
type AuditEvent struct {
	Timestamp      string `json:"timestamp"`
	Identifier     string `json:"identifier"`
	Score          int    `json:"score"`
	IssueCount     int    `json:"issue_count"`
	ErrorCount     int    `json:"error_count"`
	WarningCount   int    `json:"warning_count"`
	Degraded       bool   `json:"degraded,omitempty"`
	DegradedReason string `json:"degraded_reason,omitempty"`
	Provider       string `json:"provider,omitempty"`
	Error          string `json:"error,omitempty"`
}

// AuditLogger appends events to a single file. Safe for concurrent use.
type AuditLogger struct {
	file     *os.File
	redactor *redact.Redactor
	mu       sync.Mutex
}

// New opens (or creates) the audit log at path.
func New(path string, r *redact.Redactor) (*AuditLogger, error) {
	file, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
	if err != nil {
		return nil, err
	}
	return &AuditLogger{file: file, redactor: r}, nil
}

// Log writes one event as a JSON line, redacting free-text fields first.
func (l *AuditLogger) Log(event AuditEvent) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	event.Identifier = l.redactor.All(event.Identifier)
	event.DegradedReason = l.redactor.All(event.DegradedReason)
	if event.Error != "" {
		event.Error = l.redactor.All(event.Error)
	}

	data, err := json.Marshal(event)
	if err != nil {
		return err
	}
	data = append(data, '\n')
	_, err = l.file.Write(data)
	return err
}

// Close releases the underlying file.
func (l *AuditLogger) Close() error {
	if l.file != nil {
		return l.file.Close()
	}
	return nil
}
