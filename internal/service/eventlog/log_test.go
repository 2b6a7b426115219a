package eventlog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestRecordAndQuery(t *testing.T) {
	dir := t.TempDir()
	l := NewLog(dir, zap.NewNop())

	require.NoError(t, l.Record("HH-915100", "invoice_generated", map[string]interface{}{"path": "/tmp/a.pdf"}))
	require.NoError(t, l.Record("HH-915101", "invoice_generated", nil))
	require.NoError(t, l.Record("HH-915100", "email_sent", map[string]interface{}{"profile": "customer"}))

	entries, err := l.Query("HH-915100")
	require.NoError(t, err)
	require.Len(t, entries, 2)

	assert.Equal(t, "invoice_generated", entries[0].Event, "chronological file order preserved")
	assert.Equal(t, "email_sent", entries[1].Event)
	assert.Equal(t, "/tmp/a.pdf", entries[0].Metadata["path"])
	assert.Equal(t, "customer", entries[1].Metadata["profile"])
	assert.False(t, entries[0].Timestamp.IsZero())
}

func TestQuery_MissingFileReturnsEmpty(t *testing.T) {
	l := NewLog(t.TempDir(), zap.NewNop())

	entries, err := l.Query("HH-915100")
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestQuery_SkipsUnparseableLines(t *testing.T) {
	dir := t.TempDir()
	l := NewLog(dir, zap.NewNop())

	require.NoError(t, l.Record("HH-915100", "invoice_generated", nil))

	// Corrupt the log with a garbage line between two valid ones.
	path := filepath.Join(dir, "logs", "invoice-events.log")
	f, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0o644)
	require.NoError(t, err)
	_, err = f.WriteString("not json at all\n")
	require.NoError(t, err)
	require.NoError(t, f.Close())

	require.NoError(t, l.Record("HH-915100", "email_sent", nil))

	entries, err := l.Query("HH-915100")
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "invoice_generated", entries[0].Event)
	assert.Equal(t, "email_sent", entries[1].Event)
}

func TestQuery_FreshReadEachCall(t *testing.T) {
	dir := t.TempDir()
	l := NewLog(dir, zap.NewNop())

	entries, err := l.Query("HH-915100")
	require.NoError(t, err)
	assert.Empty(t, entries)

	require.NoError(t, l.Record("HH-915100", "invoice_generated", nil))

	entries, err = l.Query("HH-915100")
	require.NoError(t, err)
	assert.Len(t, entries, 1, "query reflects appends made after a previous query")
}

func TestRecord_OneObjectPerLine(t *testing.T) {
	dir := t.TempDir()
	l := NewLog(dir, zap.NewNop())

	require.NoError(t, l.Record("HH-915100", "invoice_generated", map[string]interface{}{"source": "on-demand"}))

	raw, err := os.ReadFile(filepath.Join(dir, "logs", "invoice-events.log"))
	require.NoError(t, err)

	line := string(raw)
	assert.Contains(t, line, `"orderId":"HH-915100"`)
	assert.Contains(t, line, `"event":"invoice_generated"`)
	assert.Contains(t, line, `"source":"on-demand"`)
	assert.Equal(t, byte('\n'), raw[len(raw)-1])
}
