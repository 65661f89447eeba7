package log

import (
	"testing"

	confv1 "connect-register/internal/conf/v1"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap/zapcore"
)

func TestNew(t *testing.T) {
	logger, err := New(nil)
	assert.NoError(t, err)
	assert.NotNil(t, logger)
	assert.True(t, logger.Core().Enabled(zapcore.InfoLevel))
	assert.False(t, logger.Core().Enabled(zapcore.DebugLevel))

	logger, err = New(&confv1.Log{Level: "debug", Format: "console"})
	assert.NoError(t, err)
	assert.True(t, logger.Core().Enabled(zapcore.DebugLevel))
}

func TestNew_Invalid(t *testing.T) {
	_, err := New(&confv1.Log{Level: "loud"})
	assert.Error(t, err)

	_, err = New(&confv1.Log{Format: "xml"})
	assert.Error(t, err)
}
