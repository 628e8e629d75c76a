package logger

import (
	"os"
	"path/filepath"
	"strings"
	"sync"

	"go.uber.org/zap"
)

// DefaultLogFilePath is where the designer appends its log when a file sink is requested,
// relative to the working directory (project root when run via go run ./cmd/keychain).
const DefaultLogFilePath = "logs/keychain.log"

// maxLines caps the in-memory history shown by the preview console.
const maxLines = 500

// Logger writes structured entries through zap and keeps the recent console lines in memory
// so the preview console can draw them. Safe for use from the decode goroutines.
type Logger struct {
	sugar *zap.SugaredLogger

	mu    *sync.Mutex
	lines *[]string
}

// New builds a logger for mode ("prod"/"production" or anything else for development).
// When filePath is non-empty the entries are also appended to that file; its directory is created.
func New(mode, filePath string) (*Logger, error) {
	var cfg zap.Config
	switch strings.ToLower(strings.TrimSpace(mode)) {
	case "prod", "production":
		cfg = zap.NewProductionConfig()
	default:
		cfg = zap.NewDevelopmentConfig()
	}
	cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	if filePath != "" {
		if err := os.MkdirAll(filepath.Dir(filePath), 0755); err != nil {
			return nil, err
		}
		cfg.OutputPaths = append(cfg.OutputPaths, filePath)
	}
	z, err := cfg.Build()
	if err != nil {
		return nil, err
	}
	return wrap(z.Sugar()), nil
}

// Nop returns a logger that discards entries but still records console lines.
func Nop() *Logger {
	return wrap(zap.NewNop().Sugar())
}

func wrap(s *zap.SugaredLogger) *Logger {
	lines := make([]string, 0)
	return &Logger{sugar: s, mu: &sync.Mutex{}, lines: &lines}
}

// Sync flushes buffered entries.
func (l *Logger) Sync() {
	_ = l.sugar.Sync()
}

func (l *Logger) Debug(msg string, keysAndValues ...interface{}) {
	l.sugar.Debugw(msg, keysAndValues...)
}

func (l *Logger) Info(msg string, keysAndValues ...interface{}) {
	l.sugar.Infow(msg, keysAndValues...)
}

func (l *Logger) Warn(msg string, keysAndValues ...interface{}) {
	l.sugar.Warnw(msg, keysAndValues...)
}

func (l *Logger) Error(msg string, keysAndValues ...interface{}) {
	l.sugar.Errorw(msg, keysAndValues...)
}

// With returns a child logger carrying the given key/value pairs. The console history is shared.
func (l *Logger) With(keysAndValues ...interface{}) *Logger {
	return &Logger{sugar: l.sugar.With(keysAndValues...), mu: l.mu, lines: l.lines}
}

// Log records a console line (typed command or command feedback) and emits it at info level.
func (l *Logger) Log(line string) {
	l.mu.Lock()
	*l.lines = append(*l.lines, line)
	if n := len(*l.lines); n > maxLines {
		*l.lines = append((*l.lines)[:0], (*l.lines)[n-maxLines:]...)
	}
	l.mu.Unlock()
	l.sugar.Infow("console", "line", line)
}

// Lines returns a copy of the stored console lines, oldest first.
func (l *Logger) Lines() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]string, len(*l.lines))
	copy(out, *l.lines)
	return out
}
