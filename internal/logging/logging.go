// internal/logging/logging.go
package logging

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

var (
	mu      sync.Mutex
	logFile *os.File
	debug   bool
)

// InitWith routes the standard logger to console and, when logPath is set, to
// an appended log file. A nil console logs to the file only, which is what the
// terminal view needs while it owns the screen. Calling InitWith again closes
// the previous file.
func InitWith(logPath string, console io.Writer) error {
	mu.Lock()
	defer mu.Unlock()

	if logFile != nil {
		_ = logFile.Close()
		logFile = nil
	}

	var writers []io.Writer
	if console != nil {
		writers = append(writers, console)
	}

	if logPath != "" {
		if dir := filepath.Dir(logPath); dir != "" && dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return err
			}
		}
		file, err := os.OpenFile(logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return err
		}
		logFile = file
		writers = append(writers, logFile)
	}

	if len(writers) == 0 {
		log.SetOutput(io.Discard)
		return nil
	}
	log.SetOutput(io.MultiWriter(writers...))
	return nil
}

// Close releases the log file and points the standard logger back at stderr.
func Close() error {
	mu.Lock()
	defer mu.Unlock()
	if logFile == nil {
		return nil
	}
	log.SetOutput(os.Stderr)
	err := logFile.Close()
	logFile = nil
	return err
}

// SetDebug toggles LogDebug output.
func SetDebug(enabled bool) {
	mu.Lock()
	debug = enabled
	mu.Unlock()
}

// DebugEnabled reports whether LogDebug writes anything.
func DebugEnabled() bool {
	mu.Lock()
	defer mu.Unlock()
	return debug
}

func LogEvent(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	log.Println(msg)
}

// LogDebug logs only when debug mode is on.
func LogDebug(format string, args ...any) {
	if !DebugEnabled() {
		return
	}
	log.Println("[DEBUG] " + fmt.Sprintf(format, args...))
}

// LogLoad records the outcome of a dataset load in a single key=value line.
func LogLoad(source string, kept, dropped int, err error) {
	log.Println(buildLoadMessage(source, kept, dropped, err))
}

func buildLoadMessage(source string, kept, dropped int, err error) string {
	src := strings.TrimSpace(source)
	if src == "" {
		src = "unknown"
	}
	status := "OK"
	if err != nil {
		status = "FAILED"
	}
	parts := []string{fmt.Sprintf("[LOAD %s]", status)}
	parts = append(parts, fmt.Sprintf("source=%s", src))
	parts = append(parts, fmt.Sprintf("kept=%d", kept))
	parts = append(parts, fmt.Sprintf("dropped=%d", dropped))
	if err != nil {
		parts = append(parts, fmt.Sprintf("error=%q", err.Error()))
	}
	return strings.Join(parts, " ")
}
