// pkg/utils/logger.go
package utils

import (
	"os"
	"runtime"
	"strings"

	"github.com/sirupsen/logrus"
)

// Config holds the logger settings
type Config struct {
	LogLevel  string
	LogFormat string
	Pretty    bool
}

// Logger wraps logrus with caller-aware helpers
type Logger struct {
	*logrus.Logger
}

// NewLogger builds a logger from Config. Unknown levels fall back to info.
func NewLogger(cfg Config) *Logger {
	l := logrus.New()
	l.SetOutput(os.Stdout)

	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = logrus.InfoLevel
	}
	l.SetLevel(level)

	if strings.EqualFold(cfg.LogFormat, "json") {
		l.SetFormatter(&logrus.JSONFormatter{
			PrettyPrint:     cfg.Pretty,
			TimestampFormat: "2006-01-02T15:04:05.000Z07:00",
		})
	} else {
		l.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:   true,
			ForceColors:     cfg.Pretty,
			TimestampFormat: "2006-01-02 15:04:05",
		})
	}

	return &Logger{Logger: l}
}

// WithFunc returns an entry tagged with the name of the calling function
func (l *Logger) WithFunc() *logrus.Entry {
	return l.WithField("func", callerName(2))
}

func callerName(skip int) string {
	pc, _, _, ok := runtime.Caller(skip)
	if !ok {
		return "unknown"
	}
	fn := runtime.FuncForPC(pc)
	if fn == nil {
		return "unknown"
	}
	name := fn.Name()
	// keep "pkg.(*Type).Method" out of "module/path/pkg.(*Type).Method"
	if i := strings.LastIndex(name, "/"); i >= 0 {
		name = name[i+1:]
	}
	return name
}
