package flux

import (
	"fmt"

	"github.com/joeycumines/logiface"
	"github.com/joeycumines/stumpy"
	"github.com/wireframe-dev/flux/internal"
)

// Logger is the structured-logging surface a caller can install with
// WithLogger. DefaultLogger wraps a github.com/joeycumines/logiface Logger
// writing stumpy-encoded JSON lines, matching the teacher's own logging
// stack.
type Logger interface {
	Debugf(format string, args ...any)
	Errorf(format string, args ...any)
}

// stumpyLogger adapts a logiface.Logger[*stumpy.Event] to Logger.
type stumpyLogger struct {
	l *logiface.Logger[*stumpy.Event]
}

// DefaultLogger returns a Logger backed by stumpy's zero-allocation JSON
// encoder, writing to the given writer via logiface's builder API.
func DefaultLogger(opts ...stumpy.Option) Logger {
	return &stumpyLogger{
		l: stumpy.L.New(stumpy.L.WithStumpy(opts...)),
	}
}

func (s *stumpyLogger) Debugf(format string, args ...any) {
	s.l.Debug().Log(fmt.Sprintf(format, args...))
}

func (s *stumpyLogger) Errorf(format string, args ...any) {
	s.l.Err().Log(fmt.Sprintf(format, args...))
}

// adaptLogger bridges a flux.Logger to the internal package's identically
// shaped Logger interface, which knows nothing of logiface/stumpy.
func adaptLogger(logger Logger) internal.Logger {
	return logger
}
