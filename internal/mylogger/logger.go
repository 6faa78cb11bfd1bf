package mylogger

import (
	"os"
	"runtime/debug"
	"time"

	"github.com/sirupsen/logrus"
)

// Logger is the structured logger used across the service. Implementations are
// immutable: Action and With return derived loggers, the receiver is untouched.
type Logger interface {
	Action(action string) Logger
	With(args ...any) Logger
	Info(msg string, args ...any)
	Debug(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, err error, args ...any)
}

type logrusLogger struct {
	entry *logrus.Entry
}

// New builds a JSON logger tagged with the service name and hostname.
// level is one of DEBUG, INFO, WARN, ERROR; unknown values fall back to INFO.
func New(service, level string) Logger {
	l := logrus.New()
	l.SetOutput(os.Stdout)
	l.SetFormatter(&logrus.JSONFormatter{
		TimestampFormat: time.RFC3339,
	})

	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	l.SetLevel(lvl)

	hostname, _ := os.Hostname()
	return &logrusLogger{
		entry: l.WithFields(logrus.Fields{
			"service":  service,
			"hostname": hostname,
		}),
	}
}

func (l *logrusLogger) Action(action string) Logger {
	return &logrusLogger{entry: l.entry.WithField("action", action)}
}

func (l *logrusLogger) With(args ...any) Logger {
	return &logrusLogger{entry: l.entry.WithFields(kvFields(args))}
}

func (l *logrusLogger) Info(msg string, args ...any) {
	l.entry.WithFields(kvFields(args)).Info(msg)
}

func (l *logrusLogger) Debug(msg string, args ...any) {
	l.entry.WithFields(kvFields(args)).Debug(msg)
}

func (l *logrusLogger) Warn(msg string, args ...any) {
	l.entry.WithFields(kvFields(args)).Warn(msg)
}

func (l *logrusLogger) Error(msg string, err error, args ...any) {
	fields := kvFields(args)
	if err != nil {
		fields["error"] = err.Error()
		fields["stack"] = string(debug.Stack())
	}
	l.entry.WithFields(fields).Error(msg)
}

// kvFields folds a variadic key/value list into logrus fields.
// A trailing key without a value is kept with an empty value.
func kvFields(args []any) logrus.Fields {
	fields := logrus.Fields{}
	for i := 0; i < len(args); i += 2 {
		key, ok := args[i].(string)
		if !ok {
			continue
		}
		if i+1 < len(args) {
			fields[key] = args[i+1]
		} else {
			fields[key] = ""
		}
	}
	return fields
}
