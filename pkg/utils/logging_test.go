package utils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLoggerWritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "trainer.log")
	l, err := NewLogger(path, "debug")
	require.NoError(t, err)
	l.Info("treino iniciado")
	_ = l.Sync()

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(b), "treino iniciado")
}

func TestNewLoggerRejectsUnknownLevel(t *testing.T) {
	_, err := NewLogger("", "verbose")
	assert.Error(t, err)
}

func TestSetLogger(t *testing.T) {
	l, err := NewLogger("", "warn")
	require.NoError(t, err)
	SetLogger(l)
	assert.Same(t, l, Logger())
}
