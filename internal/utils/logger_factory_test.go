package utils_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"syscall"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/pullstrategy/internal/utils"
)

const (
	testLoggerFactoryCaseSupportedFormatConstant   = "supported_log_level_%s_format_%s"
	testLoggerFactoryCaseUnsupportedLevelConstant  = "unsupported_log_level"
	testLoggerFactoryCaseUnsupportedFormatConstant = "unsupported_log_format"
	testLoggerFactorySubtestTemplateConstant       = "%d_%s"
	testInvalidLogLevelConstant                    = "invalid"
	testInvalidLogFormatConstant                   = "invalid"
	testLogMessageConstant                         = "logger_factory_test_message"
	testLoggerFactoryCaseAutoTerminalConstant      = "auto_format_on_terminal"
	testLoggerFactoryCaseAutoPipeConstant          = "auto_format_on_pipe"
	testLogFileRelativePathConstant                = "logs/pullstrategy.log"
)

func TestLoggerFactoryCreateLogger(testInstance *testing.T) {
	testCases := []struct {
		name                string
		requestedLogLevel   utils.LogLevel
		requestedLogFormat  utils.LogFormat
		terminal            bool
		expectError         bool
		expectStructuredLog bool
	}{
		{
			name:                fmt.Sprintf(testLoggerFactoryCaseSupportedFormatConstant, utils.LogLevelDebug, utils.LogFormatStructured),
			requestedLogLevel:   utils.LogLevelDebug,
			requestedLogFormat:  utils.LogFormatStructured,
			expectError:         false,
			expectStructuredLog: true,
		},
		{
			name:                fmt.Sprintf(testLoggerFactoryCaseSupportedFormatConstant, utils.LogLevelInfo, utils.LogFormatStructured),
			requestedLogLevel:   utils.LogLevelInfo,
			requestedLogFormat:  utils.LogFormatStructured,
			expectError:         false,
			expectStructuredLog: true,
		},
		{
			name:                fmt.Sprintf(testLoggerFactoryCaseSupportedFormatConstant, utils.LogLevelInfo, utils.LogFormatConsole),
			requestedLogLevel:   utils.LogLevelInfo,
			requestedLogFormat:  utils.LogFormatConsole,
			expectError:         false,
			expectStructuredLog: false,
		},
		{
			name:                testLoggerFactoryCaseAutoTerminalConstant,
			requestedLogLevel:   utils.LogLevelWarn,
			requestedLogFormat:  utils.LogFormatAuto,
			terminal:            true,
			expectStructuredLog: false,
		},
		{
			name:                testLoggerFactoryCaseAutoPipeConstant,
			requestedLogLevel:   utils.LogLevelError,
			requestedLogFormat:  utils.LogFormatAuto,
			terminal:            false,
			expectStructuredLog: true,
		},
		{
			name:               testLoggerFactoryCaseUnsupportedLevelConstant,
			requestedLogLevel:  utils.LogLevel(testInvalidLogLevelConstant),
			requestedLogFormat: utils.LogFormatStructured,
			expectError:        true,
		},
		{
			name:               testLoggerFactoryCaseUnsupportedFormatConstant,
			requestedLogLevel:  utils.LogLevelInfo,
			requestedLogFormat: utils.LogFormat(testInvalidLogFormatConstant),
			expectError:        true,
		},
	}

	for testCaseIndex, testCase := range testCases {
		testInstance.Run(fmt.Sprintf(testLoggerFactorySubtestTemplateConstant, testCaseIndex, testCase.name), func(testInstance *testing.T) {
			terminal := testCase.terminal
			loggerFactory := utils.NewLoggerFactoryWithTerminalDetector(func(uintptr) bool { return terminal })

			pipeReader, pipeWriter, pipeError := os.Pipe()
			require.NoError(testInstance, pipeError)

			originalStderr := os.Stderr
			os.Stderr = pipeWriter

			logger, creationError := loggerFactory.CreateLogger(testCase.requestedLogLevel, testCase.requestedLogFormat)

			os.Stderr = originalStderr

			if testCase.expectError {
				require.Error(testInstance, creationError)
				require.Nil(testInstance, logger)

				require.NoError(testInstance, pipeWriter.Close())
				require.NoError(testInstance, pipeReader.Close())
				return
			}

			require.NoError(testInstance, creationError)
			require.NotNil(testInstance, logger)

			logger.Error(testLogMessageConstant)
			syncError := logger.Sync()
			if syncError != nil {
				require.True(testInstance, errors.Is(syncError, syscall.ENOTSUP) || errors.Is(syncError, syscall.EINVAL))
			}

			require.NoError(testInstance, pipeWriter.Close())

			capturedOutput, readError := io.ReadAll(pipeReader)
			require.NoError(testInstance, readError)
			require.NoError(testInstance, pipeReader.Close())

			trimmedOutput := bytes.TrimSpace(capturedOutput)
			require.NotEmpty(testInstance, trimmedOutput)
			require.Contains(testInstance, string(trimmedOutput), testLogMessageConstant)

			isJSONLog := json.Valid(trimmedOutput)
			if testCase.expectStructuredLog {
				require.True(testInstance, isJSONLog)
			} else {
				require.False(testInstance, isJSONLog)
			}
		})
	}
}

func TestLoggerFactoryWritesLogFile(testInstance *testing.T) {
	logFilePath := filepath.Join(testInstance.TempDir(), testLogFileRelativePathConstant)
	loggerFactory := utils.NewLoggerFactoryWithTerminalDetector(func(uintptr) bool { return false })

	logger, creationError := loggerFactory.CreateLogger(utils.LogLevelDebug, utils.LogFormatConsole, utils.WithLogFile(logFilePath))
	require.NoError(testInstance, creationError)

	logger.Debug(testLogMessageConstant)

	fileContent, readError := os.ReadFile(logFilePath)
	require.NoError(testInstance, readError)
	require.Contains(testInstance, string(fileContent), testLogMessageConstant)
	require.True(testInstance, json.Valid(bytes.TrimSpace(fileContent)))
}

func TestLoggerFactoryResolveLogFormat(testInstance *testing.T) {
	terminalFactory := utils.NewLoggerFactoryWithTerminalDetector(func(uintptr) bool { return true })
	pipeFactory := utils.NewLoggerFactoryWithTerminalDetector(func(uintptr) bool { return false })

	require.Equal(testInstance, utils.LogFormatConsole, terminalFactory.ResolveLogFormat(utils.LogFormatAuto))
	require.Equal(testInstance, utils.LogFormatStructured, pipeFactory.ResolveLogFormat(utils.LogFormatAuto))
	require.Equal(testInstance, utils.LogFormatConsole, pipeFactory.ResolveLogFormat(utils.LogFormatConsole))
}
