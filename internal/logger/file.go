package logger

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

// FileLogger writes run events to a timestamped log file in logDir and
// maintains a latest.log symlink pointing to the most recent run.
// It is thread-safe and supports log level filtering.
type FileLogger struct {
	logDir   string
	runLog   *os.File
	runFile  string
	logLevel string
	mu       sync.Mutex
}

// NewFileLogger creates a FileLogger in logDir with the default "info" level.
func NewFileLogger(logDir string) (*FileLogger, error) {
	return NewFileLoggerWithLevel(logDir, "info")
}

// NewFileLoggerWithLevel creates a FileLogger with a custom log level.
// The log directory is created if it doesn't exist.
func NewFileLoggerWithLevel(logDir string, logLevel string) (*FileLogger, error) {
	if err := os.MkdirAll(logDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	// run-YYYYMMDD-HHMMSS.log
	stamp := time.Now().Format("20060102-150405")
	runFile := filepath.Join(logDir, fmt.Sprintf("run-%s.log", stamp))

	file, err := os.OpenFile(runFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to create run log file: %w", err)
	}

	symlinkPath := filepath.Join(logDir, "latest.log")
	if _, err := os.Lstat(symlinkPath); err == nil {
		if err := os.Remove(symlinkPath); err != nil {
			file.Close()
			return nil, fmt.Errorf("failed to remove old symlink: %w", err)
		}
	}
	if err := os.Symlink(filepath.Base(runFile), symlinkPath); err != nil {
		file.Close()
		return nil, fmt.Errorf("failed to create symlink: %w", err)
	}

	logger := &FileLogger{
		logDir:   logDir,
		runLog:   file,
		runFile:  runFile,
		logLevel: normalizeLogLevel(logLevel),
	}

	logger.writeRunLog("=== Random File Opener Run Log ===\n")
	logger.writeRunLog(fmt.Sprintf("Started at: %s\n\n", time.Now().Format(time.RFC3339)))

	return logger, nil
}

// RunFile returns the path of the current run log.
func (fl *FileLogger) RunFile() string {
	return fl.runFile
}

func (fl *FileLogger) shouldLog(messageLevel string) bool {
	return logLevelToInt(messageLevel) >= logLevelToInt(fl.logLevel)
}

// LogTrace logs a trace-level message (most verbose).
func (fl *FileLogger) LogTrace(message string) {
	fl.logWithLevel("TRACE", message)
}

// LogDebug logs a debug-level message.
func (fl *FileLogger) LogDebug(message string) {
	fl.logWithLevel("DEBUG", message)
}

// LogInfo logs an info-level message.
func (fl *FileLogger) LogInfo(message string) {
	fl.logWithLevel("INFO", message)
}

// LogWarn logs a warning-level message.
func (fl *FileLogger) LogWarn(message string) {
	fl.logWithLevel("WARN", message)
}

// LogError logs an error-level message.
func (fl *FileLogger) LogError(message string) {
	fl.logWithLevel("ERROR", message)
}

func (fl *FileLogger) logWithLevel(level string, message string) {
	if !fl.shouldLog(strings.ToLower(level)) {
		return
	}
	fl.writeRunLog(fmt.Sprintf("[%s] [%s] %s\n", timestamp(), level, message))
}

// LogScanStart logs the root and effective limits at INFO level.
func (fl *FileLogger) LogScanStart(root string, depth int, checkCaps bool) {
	fl.LogInfo(fmt.Sprintf("Scanning %s (depth %d, caps %s)", root, depth, onOff(checkCaps)))
}

// LogScanSummary logs the final counts at INFO level.
func (fl *FileLogger) LogScanSummary(fileCount, dirCount int) {
	fl.LogInfo(fmt.Sprintf("%d files, %d subdirectories scanned", fileCount, dirCount))
}

// LogCapReached logs the soft cap notice at WARN level.
func (fl *FileLogger) LogCapReached(maxPaths int) {
	fl.LogWarn(fmt.Sprintf("Soft cap of %d paths reached, remaining entries were not scanned", maxPaths))
}

// LogDepthClamped logs a depth clamp at WARN level.
func (fl *FileLogger) LogDepthClamped(requested, applied int) {
	fl.LogWarn(fmt.Sprintf("Depth %d exceeds the soft cap, using %d", requested, applied))
}

// LogMemoryUsage logs path storage size at DEBUG level.
func (fl *FileLogger) LogMemoryUsage(headerBytes, stringBytes int) {
	fl.LogDebug(fmt.Sprintf("Path storage: %d bytes of headers + %d bytes of strings = %d bytes",
		headerBytes, stringBytes, headerBytes+stringBytes))
}

// LogOpening logs a launch at INFO level.
func (fl *FileLogger) LogOpening(absPath string) {
	fl.LogInfo(fmt.Sprintf("Opening %s ...", absPath))
}

// LogPosition logs the playlist position at INFO level.
func (fl *FileLogger) LogPosition(index, total int) {
	fl.LogInfo(fmt.Sprintf("Position %d of %d", index, total))
}

// Close flushes and closes the run log file.
func (fl *FileLogger) Close() error {
	fl.mu.Lock()
	defer fl.mu.Unlock()

	if fl.runLog != nil {
		if err := fl.runLog.Sync(); err != nil {
			return fmt.Errorf("failed to sync run log: %w", err)
		}
		if err := fl.runLog.Close(); err != nil {
			return fmt.Errorf("failed to close run log: %w", err)
		}
		fl.runLog = nil
	}
	return nil
}

// writeRunLog is a thread-safe helper to write to the run log file.
func (fl *FileLogger) writeRunLog(message string) {
	fl.mu.Lock()
	defer fl.mu.Unlock()

	if fl.runLog != nil {
		fl.runLog.WriteString(message)
		fl.runLog.Sync()
	}
}
