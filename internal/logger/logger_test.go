package logger

import (
	"testing"

	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

type LoggerTestSuite struct {
	suite.Suite
}

func TestLoggerSuite(t *testing.T) {
	suite.Run(t, new(LoggerTestSuite))
}

func (suite *LoggerTestSuite) TestNewLogger() {
	log, err := NewLogger()
	suite.Require().NoError(err)
	suite.True(log.Core().Enabled(zapcore.InfoLevel))
	suite.False(log.Core().Enabled(zapcore.DebugLevel))
}

func (suite *LoggerTestSuite) TestLevelNames() {
	tests := []struct {
		name    string
		enabled zapcore.Level
		muted   []zapcore.Level
		wantErr bool
	}{
		{name: "debug", enabled: zapcore.DebugLevel},
		{name: "warn", enabled: zapcore.WarnLevel, muted: []zapcore.Level{zapcore.InfoLevel}},
		{name: "ERROR", enabled: zapcore.ErrorLevel, muted: []zapcore.Level{zapcore.InfoLevel, zapcore.WarnLevel}},
		{name: "verbose", wantErr: true},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			log, err := NewLoggerFromLevelName(tt.name)
			if tt.wantErr {
				suite.Error(err)
				suite.Nil(log)

				return
			}

			suite.Require().NoError(err)
			suite.True(log.Core().Enabled(tt.enabled))
			for _, level := range tt.muted {
				suite.False(log.Core().Enabled(level))
			}
		})
	}
}

func (suite *LoggerTestSuite) TestComponentTagsEntries() {
	core, logs := observer.New(zapcore.DebugLevel)
	log := &Logger{Logger: zap.New(core)}

	log.Component("aligner").Info("aligned", zap.Int("base_index", 7))

	entries := logs.All()
	suite.Require().Len(entries, 1)
	suite.Equal("aligner", entries[0].LoggerName)
	suite.Equal("aligner", entries[0].ContextMap()["component"])
	suite.EqualValues(7, entries[0].ContextMap()["base_index"])
}

func (suite *LoggerTestSuite) TestComponentOnEmptyLogger() {
	var log *Logger
	suite.NotNil(log.Component("feed").Logger)
	suite.NotNil((&Logger{}).Component("feed").Logger)
}

func (suite *LoggerTestSuite) TestSync() {
	suite.NoError((&Logger{}).Sync())
	suite.NoError(NewNopLogger().Sync())
}
