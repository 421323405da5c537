// Package logger provides logging implementations for rfopener runs.
//
// Loggers report the scan (root, counts, cap notices) and the interactive
// session (files being opened, playlist position). Implementations are
// thread-safe and filter messages by level.
package logger

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/fatih/color"
)

// Log level constants for filtering
const (
	levelTrace int = 0
	levelDebug int = 1
	levelInfo  int = 2
	levelWarn  int = 3
	levelError int = 4
)

// Logger is the reporting surface shared by the scanner front-end and the
// interactive session.
type Logger interface {
	LogTrace(message string)
	LogDebug(message string)
	LogInfo(message string)
	LogWarn(message string)
	LogError(message string)
	LogScanStart(root string, depth int, checkCaps bool)
	LogScanSummary(fileCount, dirCount int)
	LogCapReached(maxPaths int)
	LogDepthClamped(requested, applied int)
	LogMemoryUsage(headerBytes, stringBytes int)
	LogOpening(absPath string)
	LogPosition(index, total int)
}

// ConsoleLogger logs run progress to a writer with timestamps and thread safety.
// All output is prefixed with [HH:MM:SS] timestamps.
// It supports log level filtering to control message verbosity.
// Color output is automatically enabled for terminal output (os.Stdout/os.Stderr).
type ConsoleLogger struct {
	writer      io.Writer
	logLevel    string
	mutex       sync.Mutex
	colorOutput bool
}

// NewConsoleLogger creates a ConsoleLogger that writes to the provided io.Writer.
// If writer is nil, messages are silently discarded.
// Valid levels: trace, debug, info, warn, error (case-insensitive).
// If logLevel is empty or invalid, defaults to "info".
func NewConsoleLogger(writer io.Writer, logLevel string) *ConsoleLogger {
	return &ConsoleLogger{
		writer:      writer,
		logLevel:    normalizeLogLevel(logLevel),
		colorOutput: isTerminal(writer),
	}
}

// isTerminal checks if the writer is a terminal that supports colors.
func isTerminal(w io.Writer) bool {
	if w == nil {
		return false
	}
	if w == os.Stdout || w == os.Stderr {
		// fatih/color already honors NO_COLOR and non-TTY output
		return !color.NoColor
	}
	return false
}

// normalizeLogLevel converts a log level string to lowercase and validates it.
// Returns "info" as default for empty or invalid levels.
func normalizeLogLevel(level string) string {
	normalized := strings.ToLower(strings.TrimSpace(level))
	switch normalized {
	case "trace", "debug", "info", "warn", "error":
		return normalized
	default:
		return "info"
	}
}

// logLevelToInt converts a log level string to its numeric value.
func logLevelToInt(level string) int {
	switch level {
	case "trace":
		return levelTrace
	case "debug":
		return levelDebug
	case "info":
		return levelInfo
	case "warn":
		return levelWarn
	case "error":
		return levelError
	default:
		return levelInfo
	}
}

// shouldLog checks if a message at the given level should be logged.
func (cl *ConsoleLogger) shouldLog(messageLevel string) bool {
	return logLevelToInt(messageLevel) >= logLevelToInt(cl.logLevel)
}

// LogTrace logs a trace-level message (most verbose).
func (cl *ConsoleLogger) LogTrace(message string) {
	cl.logWithLevel("TRACE", message)
}

// LogDebug logs a debug-level message.
func (cl *ConsoleLogger) LogDebug(message string) {
	cl.logWithLevel("DEBUG", message)
}

// LogInfo logs an info-level message.
func (cl *ConsoleLogger) LogInfo(message string) {
	cl.logWithLevel("INFO", message)
}

// LogWarn logs a warning-level message.
func (cl *ConsoleLogger) LogWarn(message string) {
	cl.logWithLevel("WARN", message)
}

// LogError logs an error-level message.
func (cl *ConsoleLogger) LogError(message string) {
	cl.logWithLevel("ERROR", message)
}

func (cl *ConsoleLogger) logWithLevel(level string, message string) {
	if cl.writer == nil || !cl.shouldLog(strings.ToLower(level)) {
		return
	}

	cl.mutex.Lock()
	defer cl.mutex.Unlock()

	ts := timestamp()
	if cl.colorOutput {
		fmt.Fprint(cl.writer, cl.formatWithColor(ts, level, message))
		return
	}
	fmt.Fprintf(cl.writer, "[%s] [%s] %s\n", ts, level, message)
}

// formatWithColor formats a log message with ANSI color codes.
func (cl *ConsoleLogger) formatWithColor(ts, level, message string) string {
	var coloredLevel string

	switch level {
	case "TRACE":
		coloredLevel = color.New(color.FgHiBlack).Sprint(level)
	case "DEBUG":
		coloredLevel = color.New(color.FgCyan).Sprint(level)
	case "INFO":
		coloredLevel = color.New(color.FgBlue).Sprint(level)
	case "WARN":
		coloredLevel = color.New(color.FgYellow).Sprint(level)
	case "ERROR":
		coloredLevel = color.New(color.FgRed).Sprint(level)
	default:
		coloredLevel = level
	}

	return fmt.Sprintf("[%s] [%s] %s\n", ts, coloredLevel, message)
}

// highlight renders a path or number in bright cyan when colors are on.
func (cl *ConsoleLogger) highlight(v interface{}) string {
	if cl.colorOutput {
		return color.New(color.FgHiCyan).Sprint(v)
	}
	return fmt.Sprint(v)
}

// LogScanStart logs the root and effective limits at INFO level.
// Format: "[HH:MM:SS] [INFO] Scanning <root> (depth <n>, caps on|off)"
func (cl *ConsoleLogger) LogScanStart(root string, depth int, checkCaps bool) {
	cl.LogInfo(fmt.Sprintf("Scanning %s (depth %d, caps %s)", cl.highlight(root), depth, onOff(checkCaps)))
}

// LogScanSummary logs the final counts at INFO level.
// Format: "[HH:MM:SS] [INFO] <files> files, <dirs> subdirectories scanned"
func (cl *ConsoleLogger) LogScanSummary(fileCount, dirCount int) {
	cl.LogInfo(fmt.Sprintf("%s files, %s subdirectories scanned", cl.highlight(fileCount), cl.highlight(dirCount)))
}

// LogCapReached logs the soft cap notice at WARN level.
func (cl *ConsoleLogger) LogCapReached(maxPaths int) {
	cl.LogWarn(fmt.Sprintf("Soft cap of %d paths reached, remaining entries were not scanned (use --nocap to lift it)", maxPaths))
}

// LogDepthClamped logs a depth clamp at WARN level.
func (cl *ConsoleLogger) LogDepthClamped(requested, applied int) {
	cl.LogWarn(fmt.Sprintf("Depth %d exceeds the soft cap, using %d (use --nocap to lift it)", requested, applied))
}

// LogMemoryUsage logs the memory held by the collected paths at DEBUG level.
func (cl *ConsoleLogger) LogMemoryUsage(headerBytes, stringBytes int) {
	cl.LogDebug(fmt.Sprintf("Path storage: %d bytes of headers + %d bytes of strings = %d bytes",
		headerBytes, stringBytes, headerBytes+stringBytes))
}

// LogOpening logs a launch at INFO level.
// Format: "[HH:MM:SS] [INFO] Opening <path> ..."
func (cl *ConsoleLogger) LogOpening(absPath string) {
	cl.LogInfo(fmt.Sprintf("Opening %s ...", cl.highlight(absPath)))
}

// LogPosition logs the playlist position at INFO level.
// Format: "[HH:MM:SS] [INFO] [====      ] 4 of 10"
func (cl *ConsoleLogger) LogPosition(index, total int) {
	bar := NewPositionBar(total, 10, cl.colorOutput)
	bar.Update(index)
	cl.LogInfo(bar.Render())
}

// timestamp returns the current time formatted as "15:04:05" (HH:MM:SS).
func timestamp() string {
	return time.Now().Format("15:04:05")
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}

// NoOpLogger is a Logger implementation that discards all log messages.
// Useful for testing or when logging is disabled.
type NoOpLogger struct{}

// NewNoOpLogger creates a NoOpLogger instance.
func NewNoOpLogger() *NoOpLogger {
	return &NoOpLogger{}
}

func (n *NoOpLogger) LogTrace(string) {}
func (n *NoOpLogger) LogDebug(string) {}
func (n *NoOpLogger) LogInfo(string) {}
func (n *NoOpLogger) LogWarn(string) {}
func (n *NoOpLogger) LogError(string) {}
func (n *NoOpLogger) LogScanStart(string, int, bool) {}
func (n *NoOpLogger) LogScanSummary(int, int) {}
func (n *NoOpLogger) LogCapReached(int) {}
func (n *NoOpLogger) LogDepthClamped(int, int) {}
func (n *NoOpLogger) LogMemoryUsage(int, int) {}
func (n *NoOpLogger) LogOpening(string) {}
func (n *NoOpLogger) LogPosition(int, int) {}
