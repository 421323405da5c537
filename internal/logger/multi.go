package logger

// MultiLogger fans every call out to a set of loggers, in order.
type MultiLogger struct {
	loggers []Logger
}

// NewMultiLogger creates a MultiLogger. Nil entries are dropped.
func NewMultiLogger(loggers ...Logger) *MultiLogger {
	ml := &MultiLogger{}
	for _, l := range loggers {
		if l != nil {
			ml.loggers = append(ml.loggers, l)
		}
	}
	return ml
}

func (m *MultiLogger) each(fn func(Logger)) {
	for _, l := range m.loggers {
		fn(l)
	}
}

func (m *MultiLogger) LogTrace(message string) { m.each(func(l Logger) { l.LogTrace(message) }) }
func (m *MultiLogger) LogDebug(message string) { m.each(func(l Logger) { l.LogDebug(message) }) }
func (m *MultiLogger) LogInfo(message string) { m.each(func(l Logger) { l.LogInfo(message) }) }
func (m *MultiLogger) LogWarn(message string) { m.each(func(l Logger) { l.LogWarn(message) }) }
func (m *MultiLogger) LogError(message string) { m.each(func(l Logger) { l.LogError(message) }) }

func (m *MultiLogger) LogScanStart(root string, depth int, checkCaps bool) {
	m.each(func(l Logger) { l.LogScanStart(root, depth, checkCaps) })
}

func (m *MultiLogger) LogScanSummary(fileCount, dirCount int) {
	m.each(func(l Logger) { l.LogScanSummary(fileCount, dirCount) })
}

func (m *MultiLogger) LogCapReached(maxPaths int) {
	m.each(func(l Logger) { l.LogCapReached(maxPaths) })
}

func (m *MultiLogger) LogDepthClamped(requested, applied int) {
	m.each(func(l Logger) { l.LogDepthClamped(requested, applied) })
}

func (m *MultiLogger) LogMemoryUsage(headerBytes, stringBytes int) {
	m.each(func(l Logger) { l.LogMemoryUsage(headerBytes, stringBytes) })
}

func (m *MultiLogger) LogOpening(absPath string) {
	m.each(func(l Logger) { l.LogOpening(absPath) })
}

func (m *MultiLogger) LogPosition(index, total int) {
	m.each(func(l Logger) { l.LogPosition(index, total) })
}

var (
	_ Logger = (*ConsoleLogger)(nil)
	_ Logger = (*FileLogger)(nil)
	_ Logger = (*MultiLogger)(nil)
	_ Logger = (*NoOpLogger)(nil)
)
