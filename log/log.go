// Package log provides a high level logger abstraction for the container
// codec. The codec core never imports a concrete logging backend: callers
// wire one in with SetFactory, and everything logs nothing by default.
package log

// Severity defines severity markers for log entries.
type Severity int

const (
	// UnsetLevel should not be output by a logger implementation.
	UnsetLevel Severity = iota - 2
	// DebugLevel marks detailed output useful while diagnosing a single file.
	DebugLevel
	// InfoLevel is the default log output marker.
	InfoLevel
	// ErrorLevel marks an error output.
	ErrorLevel
)

// Factory creates new loggers.
type Factory interface {
	New() Logger
}

// Logger describes the logger feature interface used across the codec.
type Logger interface {
	Level(lvl Severity) Logger
	Field(k string, v any) Logger
	Fields(data map[string]any) Logger
	Error(err error) Logger
	Message(msg string)
	Messagef(format string, v ...any)
}

// -----------------------------------------------------------------------------

type noop struct{}

var (
	_ Factory = (*noop)(nil)
	_ Logger  = (*noop)(nil)
)

func (n *noop) New() Logger                          { return n }
func (n *noop) Level(lvl Severity) Logger             { return n }
func (n *noop) Field(k string, v any) Logger          { return n }
func (n *noop) Fields(data map[string]any) Logger     { return n }
func (n *noop) Error(err error) Logger                { return n }
func (n *noop) Message(_ string)                      {}
func (n *noop) Messagef(_ string, _ ...any)           {}

// -----------------------------------------------------------------------------

var factory Factory = &noop{}

// SetFactory sets the static logger factory used by Component and the
// package-level helpers.
func SetFactory(f Factory) {
	factory = f
}

// New returns a new logger instance from the static factory.
func New() Logger {
	return factory.New()
}

// Component returns a new logger tagged with a "component" field, used by
// the writer, reader, and virtual stream to identify which cooperating piece
// emitted a given line without each one importing a concrete backend.
func Component(name string) Logger {
	return factory.New().Field("component", name)
}

// Level returns a new logger instance with its level set to the value supplied.
func Level(lvl Severity) Logger {
	return factory.New().Level(lvl)
}

// Field returns a new logger instance with a field value set as supplied.
func Field(k string, v any) Logger {
	return factory.New().Field(k, v)
}

// Fields returns a new logger instance with field values set as supplied.
func Fields(data map[string]any) Logger {
	return factory.New().Fields(data)
}

// Error returns a new logger instance with the error set as supplied.
func Error(err error) Logger {
	return factory.New().Error(err)
}
