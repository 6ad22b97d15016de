package utils_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/reposmith/reposmith/internal/utils"
)

const (
	testSupportedCaseNameTemplateConstant = "supported_log_level_%s_format_%s"
	testUnsupportedLevelCaseNameConstant  = "unsupported_log_level"
	testUnsupportedFormatCaseNameConstant = "unsupported_log_format"
	testLoggerSubtestTemplateConstant     = "%d_%s"
	testInvalidLogLevelConstant           = "invalid"
	testInvalidLogFormatConstant          = "invalid"
)

func TestLoggerFactoryCreateLogger(testInstance *testing.T) {
	testCases := []struct {
		name               string
		requestedLogLevel  utils.LogLevel
		requestedLogFormat utils.LogFormat
		expectError        bool
	}{
		{
			name:               fmt.Sprintf(testSupportedCaseNameTemplateConstant, utils.LogLevelDebug, utils.LogFormatStructured),
			requestedLogLevel:  utils.LogLevelDebug,
			requestedLogFormat: utils.LogFormatStructured,
		},
		{
			name:               fmt.Sprintf(testSupportedCaseNameTemplateConstant, utils.LogLevelInfo, utils.LogFormatConsole),
			requestedLogLevel:  utils.LogLevelInfo,
			requestedLogFormat: utils.LogFormatConsole,
		},
		{
			name:               fmt.Sprintf(testSupportedCaseNameTemplateConstant, utils.LogLevelError, utils.LogFormatStructured),
			requestedLogLevel:  utils.LogLevelError,
			requestedLogFormat: utils.LogFormatStructured,
		},
		{
			name:               testUnsupportedLevelCaseNameConstant,
			requestedLogLevel:  utils.LogLevel(testInvalidLogLevelConstant),
			requestedLogFormat: utils.LogFormatStructured,
			expectError:        true,
		},
		{
			name:               testUnsupportedFormatCaseNameConstant,
			requestedLogLevel:  utils.LogLevelInfo,
			requestedLogFormat: utils.LogFormat(testInvalidLogFormatConstant),
			expectError:        true,
		},
	}

	loggerFactory := utils.NewLoggerFactory()

	for testCaseIndex, testCase := range testCases {
		testInstance.Run(fmt.Sprintf(testLoggerSubtestTemplateConstant, testCaseIndex, testCase.name), func(subtest *testing.T) {
			logger, creationError := loggerFactory.CreateLogger(testCase.requestedLogLevel, testCase.requestedLogFormat)
			if testCase.expectError {
				require.Error(subtest, creationError)
				require.Nil(subtest, logger)
				return
			}

			require.NoError(subtest, creationError)
			require.NotNil(subtest, logger)
		})
	}
}
