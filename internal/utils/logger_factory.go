package utils

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/mattn/go-isatty"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

const (
	logLevelDebugStringConstant          = "debug"
	logLevelInfoStringConstant           = "info"
	logLevelWarnStringConstant           = "warn"
	logLevelErrorStringConstant          = "error"
	logFormatStructuredStringConstant    = "structured"
	logFormatConsoleStringConstant       = "console"
	logFormatAutoStringConstant          = "auto"
	unsupportedLogLevelTemplateConstant  = "unsupported log level: %s"
	unsupportedLogFormatTemplateConstant = "unsupported log format: %s"
	logDirectoryCreationTemplateConstant = "unable to create log directory %s: %w"
	logDirectoryPermissionsConstant      = 0o755
	logFileMaxSizeMegabytesConstant      = 10
	logFileMaxBackupsConstant            = 5
	logFileMaxAgeDaysConstant            = 7
)

// LogLevel enumerates supported logging granularities.
type LogLevel string

// Exported log level constants for reuse across packages.
const (
	LogLevelDebug LogLevel = LogLevel(logLevelDebugStringConstant)
	LogLevelInfo  LogLevel = LogLevel(logLevelInfoStringConstant)
	LogLevelWarn  LogLevel = LogLevel(logLevelWarnStringConstant)
	LogLevelError LogLevel = LogLevel(logLevelErrorStringConstant)
)

// LogFormat enumerates supported logger output encodings.
type LogFormat string

// Exported log format constants for reuse across packages.
// LogFormatAuto selects console output when stderr is a terminal and structured output otherwise.
const (
	LogFormatStructured LogFormat = LogFormat(logFormatStructuredStringConstant)
	LogFormatConsole    LogFormat = LogFormat(logFormatConsoleStringConstant)
	LogFormatAuto       LogFormat = LogFormat(logFormatAutoStringConstant)
)

// TerminalDetector reports whether a file descriptor refers to a terminal.
type TerminalDetector func(fileDescriptor uintptr) bool

// LoggerOption customizes a single CreateLogger call.
type LoggerOption func(*loggerSettings)

type loggerSettings struct {
	logFilePath string
}

// WithLogFile additionally writes structured entries to a size-rotated file at path.
func WithLogFile(path string) LoggerOption {
	return func(settings *loggerSettings) {
		settings.logFilePath = path
	}
}

// LoggerFactory builds zap.Logger instances with consistent configuration.
type LoggerFactory struct {
	terminalDetector TerminalDetector
}

var logLevelMapping = map[LogLevel]zapcore.Level{
	LogLevelDebug: zapcore.DebugLevel,
	LogLevelInfo:  zapcore.InfoLevel,
	LogLevelWarn:  zapcore.WarnLevel,
	LogLevelError: zapcore.ErrorLevel,
}

// NewLoggerFactory constructs a new logger factory that detects terminals with go-isatty.
func NewLoggerFactory() *LoggerFactory {
	return NewLoggerFactoryWithTerminalDetector(nil)
}

// NewLoggerFactoryWithTerminalDetector constructs a logger factory with a custom terminal detector.
func NewLoggerFactoryWithTerminalDetector(detector TerminalDetector) *LoggerFactory {
	if detector == nil {
		detector = isTerminal
	}
	return &LoggerFactory{terminalDetector: detector}
}

// ResolveLogFormat replaces LogFormatAuto with the concrete format suited to stderr.
func (factory *LoggerFactory) ResolveLogFormat(requestedLogFormat LogFormat) LogFormat {
	if requestedLogFormat != LogFormatAuto {
		return requestedLogFormat
	}
	if factory.terminalDetector(os.Stderr.Fd()) {
		return LogFormatConsole
	}
	return LogFormatStructured
}

// CreateLogger produces a zap.Logger writing to stderr honoring the requested log level and format.
func (factory *LoggerFactory) CreateLogger(requestedLogLevel LogLevel, requestedLogFormat LogFormat, options ...LoggerOption) (*zap.Logger, error) {
	zapLogLevel, levelExists := logLevelMapping[requestedLogLevel]
	if !levelExists {
		return nil, fmt.Errorf(unsupportedLogLevelTemplateConstant, requestedLogLevel)
	}

	settings := loggerSettings{}
	for _, option := range options {
		if option != nil {
			option(&settings)
		}
	}

	encoderConfiguration := zap.NewProductionEncoderConfig()
	encoderConfiguration.EncodeTime = zapcore.ISO8601TimeEncoder

	var streamEncoder zapcore.Encoder
	switch factory.ResolveLogFormat(requestedLogFormat) {
	case LogFormatStructured:
		streamEncoder = zapcore.NewJSONEncoder(encoderConfiguration)
	case LogFormatConsole:
		streamEncoder = zapcore.NewConsoleEncoder(encoderConfiguration)
	default:
		return nil, fmt.Errorf(unsupportedLogFormatTemplateConstant, requestedLogFormat)
	}

	cores := []zapcore.Core{zapcore.NewCore(streamEncoder, zapcore.Lock(os.Stderr), zapLogLevel)}

	if len(settings.logFilePath) > 0 {
		logDirectory := filepath.Dir(settings.logFilePath)
		if directoryError := os.MkdirAll(logDirectory, logDirectoryPermissionsConstant); directoryError != nil {
			return nil, fmt.Errorf(logDirectoryCreationTemplateConstant, logDirectory, directoryError)
		}
		fileWriter := &lumberjack.Logger{
			Filename:   settings.logFilePath,
			MaxSize:    logFileMaxSizeMegabytesConstant,
			MaxBackups: logFileMaxBackupsConstant,
			MaxAge:     logFileMaxAgeDaysConstant,
			Compress:   true,
		}
		cores = append(cores, zapcore.NewCore(zapcore.NewJSONEncoder(encoderConfiguration), zapcore.AddSync(fileWriter), zapLogLevel))
	}

	return zap.New(zapcore.NewTee(cores...)), nil
}

func isTerminal(fileDescriptor uintptr) bool {
	return isatty.IsTerminal(fileDescriptor) || isatty.IsCygwinTerminal(fileDescriptor)
}
