package internal

// Logger is the minimal surface the engine needs from a structured logger.
// The flux package adapts a github.com/joeycumines/logiface Logger[*stumpy.Event]
// to this interface, so internal stays decoupled from the logging facade's
// generic Event type.
type Logger interface {
	Debugf(format string, args ...any)
	Errorf(format string, args ...any)
}

type noopLogger struct{}

func (noopLogger) Debugf(string, ...any) {}
func (noopLogger) Errorf(string, ...any) {}
