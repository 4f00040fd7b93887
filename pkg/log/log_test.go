package log

import (
	"io"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func resetLogger(t *testing.T) {
	t.Helper()
	once = sync.Once{}
	logger = nil
	t.Cleanup(func() {
		once = sync.Once{}
		logger = nil
	})
}

// unsetEnv removes key for the duration of the test; godotenv never
// overrides variables that are already present.
func unsetEnv(t *testing.T, key string) {
	t.Helper()
	prev, had := os.LookupEnv(key)
	require.NoError(t, os.Unsetenv(key))
	t.Cleanup(func() {
		if had {
			_ = os.Setenv(key, prev)
		} else {
			_ = os.Unsetenv(key)
		}
	})
}

func TestInit_AppliesLevelFromEnvFile(t *testing.T) {
	resetLogger(t)
	unsetEnv(t, "LOG_LEVEL")
	unsetEnv(t, "APP_ENV")

	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("LOG_LEVEL=warn\nAPP_ENV=test\n"), 0o600))

	l, err := Init(path)
	require.NoError(t, err)
	assert.Equal(t, logrus.WarnLevel, l.GetLevel())
	assert.Same(t, l, NewLogger())
}

func TestInit_MissingFileStillBuildsLogger(t *testing.T) {
	resetLogger(t)
	t.Setenv("APP_ENV", "test")
	t.Setenv("LOG_LEVEL", "error")

	l, err := Init(filepath.Join(t.TempDir(), "missing.env"))
	assert.Error(t, err)
	require.NotNil(t, l)
	assert.Equal(t, logrus.ErrorLevel, l.GetLevel())
}

func TestErrorWithTraceID_ReusesRequestID(t *testing.T) {
	resetLogger(t)
	t.Setenv("APP_ENV", "test")
	NewLogger().SetOutput(io.Discard)

	assert.Equal(t, "req-1", ErrorWithTraceID(Fields{RequestIDKey: "req-1"}, "boom"))
	assert.NotEqual(t, "unknown", ErrorWithTraceID(nil, "boom"))
}
