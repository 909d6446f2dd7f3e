package logger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInit(t *testing.T) {
	dataDir := filepath.Join(t.TempDir(), "data")

	err := Init(Config{DataDir: dataDir})
	require.NoError(t, err)

	_, err = os.Stat(filepath.Join(dataDir, "logs"))
	assert.NoError(t, err, "log directory should exist")
	require.NotNil(t, Logger)

	Debug("debug message")
	Info("info message")
	Warn("warning message", "key", "value")
	Error("error message")
}

func TestInitDebugMode(t *testing.T) {
	err := Init(Config{Debug: true, DataDir: t.TempDir()})
	require.NoError(t, err)
	require.NotNil(t, Logger)

	Debug("debug message in debug mode")
}

func TestLogFunctionsWithoutInit(t *testing.T) {
	Logger = nil

	// must not panic
	Debug("debug")
	Info("info")
	Warn("warn")
	Error("error")
}
