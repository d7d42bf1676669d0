package logging

import "sync"

// MockEntry records one logged message for assertions in tests.
type MockEntry struct {
	Level   string
	Message string
	Fields  map[string]interface{}
}

// MockLogger is a Logger implementation that records entries instead of
// writing them anywhere. Safe for concurrent use; derived loggers share the
// entry sink with their parent.
type MockLogger struct {
	mu      *sync.Mutex
	entries *[]MockEntry
	fields  map[string]interface{}
}

// NewMockLogger creates an empty recording logger.
func NewMockLogger() *MockLogger {
	entries := make([]MockEntry, 0)
	return &MockLogger{
		mu:      &sync.Mutex{},
		entries: &entries,
		fields:  map[string]interface{}{},
	}
}

// Entries returns a copy of everything logged so far.
func (m *MockLogger) Entries() []MockEntry {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]MockEntry, len(*m.entries))
	copy(out, *m.entries)
	return out
}

func (m *MockLogger) record(level, msg string, fields []Field) {
	m.mu.Lock()
	defer m.mu.Unlock()
	merged := make(map[string]interface{}, len(m.fields)+len(fields))
	for k, v := range m.fields {
		merged[k] = v
	}
	for _, f := range fields {
		merged[f.Key] = f.Value
	}
	*m.entries = append(*m.entries, MockEntry{Level: level, Message: msg, Fields: merged})
}

// Debug records a debug entry.
func (m *MockLogger) Debug(msg string, fields ...Field) { m.record("debug", msg, fields) }

// Info records an info entry.
func (m *MockLogger) Info(msg string, fields ...Field) { m.record("info", msg, fields) }

// Warn records a warn entry.
func (m *MockLogger) Warn(msg string, fields ...Field) { m.record("warn", msg, fields) }

// Error records an error entry.
func (m *MockLogger) Error(msg string, fields ...Field) { m.record("error", msg, fields) }

// WithError returns a logger with an error field attached.
func (m *MockLogger) WithError(err error) Logger {
	return m.WithField("error", err)
}

// WithField returns a logger with a single field attached.
func (m *MockLogger) WithField(key string, value interface{}) Logger {
	return m.WithFields(Field{Key: key, Value: value})
}

// WithFields returns a logger with multiple fields attached. The returned
// logger shares the entry sink with its parent.
func (m *MockLogger) WithFields(fields ...Field) Logger {
	m.mu.Lock()
	defer m.mu.Unlock()
	merged := make(map[string]interface{}, len(m.fields)+len(fields))
	for k, v := range m.fields {
		merged[k] = v
	}
	for _, f := range fields {
		merged[f.Key] = f.Value
	}
	return &MockLogger{mu: m.mu, entries: m.entries, fields: merged}
}
