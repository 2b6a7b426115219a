// internal/service/eventlog/log.go
package eventlog

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Entry is one immutable audit record. Metadata keys are flattened into the
// same JSON object as the fixed fields, one object per line.
type Entry struct {
	Timestamp time.Time              `json:"timestamp"`
	OrderID   string                 `json:"orderId"`
	Event     string                 `json:"event"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
}

// Log is an append-only JSON-lines audit trail of invoice events. Appends are
// mutex-guarded so concurrent writers never interleave within a line; queries
// re-read the file on every call.
type Log struct {
	path   string
	mu     sync.Mutex
	logger *zap.Logger
}

// NewLog places the log file at <publicDir>/logs/invoice-events.log.
func NewLog(publicDir string, logger *zap.Logger) *Log {
	return &Log{
		path:   filepath.Join(publicDir, "logs", "invoice-events.log"),
		logger: logger,
	}
}

// Record appends one event line, creating the containing directory if absent.
func (l *Log) Record(orderID, event string, metadata map[string]interface{}) error {
	line := make(map[string]interface{}, len(metadata)+3)
	for k, v := range metadata {
		line[k] = v
	}
	line["timestamp"] = time.Now().UTC().Format(time.RFC3339)
	line["orderId"] = orderID
	line["event"] = event

	raw, err := json.Marshal(line)
	if err != nil {
		return fmt.Errorf("failed to encode event: %w", err)
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(l.path), 0o755); err != nil {
		return fmt.Errorf("failed to create log directory: %w", err)
	}

	f, err := os.OpenFile(l.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open event log: %w", err)
	}
	defer f.Close()

	if _, err := f.Write(append(raw, '\n')); err != nil {
		return fmt.Errorf("failed to append event: %w", err)
	}

	l.logger.Info("invoice event logged",
		zap.String("event", event),
		zap.String("order_id", orderID),
	)
	return nil
}

// Query reads the full log and returns the entries matching the order id, in
// file (chronological) order. Unparseable lines are skipped, not fatal.
func (l *Log) Query(orderID string) ([]Entry, error) {
	f, err := os.Open(l.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to open event log: %w", err)
	}
	defer f.Close()

	var entries []Entry
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		var raw map[string]interface{}
		if err := json.Unmarshal([]byte(line), &raw); err != nil {
			continue
		}

		entry := parseEntry(raw)
		if entry.OrderID != orderID {
			continue
		}
		entries = append(entries, entry)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read event log: %w", err)
	}

	return entries, nil
}

func parseEntry(raw map[string]interface{}) Entry {
	var e Entry
	if s, ok := raw["timestamp"].(string); ok {
		e.Timestamp, _ = time.Parse(time.RFC3339, s)
	}
	if s, ok := raw["orderId"].(string); ok {
		e.OrderID = s
	}
	if s, ok := raw["event"].(string); ok {
		e.Event = s
	}

	delete(raw, "timestamp")
	delete(raw, "orderId")
	delete(raw, "event")
	if len(raw) > 0 {
		e.Metadata = raw
	}
	return e
}
