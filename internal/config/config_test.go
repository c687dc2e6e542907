package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestLoadConfiguration(t *testing.T) {
	path := writeConfig(t, `
apiBaseUrl: https://payrun.example.com/api
userId: "1024"
financialYear: "2025-2026"
statutoryFile: statutory.yaml
timing:
  quietPeriodMs: 500
  minVisibleMs: 250
logging:
  level: debug
  format: console
output:
  directory: /tmp/reports
`)

	conf, err := LoadConfiguration(path)
	require.NoError(t, err)

	assert.Equal(t, "https://payrun.example.com/api", conf.APIBaseURL)
	assert.Equal(t, "1024", conf.UserID)
	assert.Equal(t, "2025-2026", conf.FinancialYear)
	assert.Equal(t, "statutory.yaml", conf.StatutoryFile)
	assert.Equal(t, 500*time.Millisecond, conf.Timing.QuietPeriod())
	assert.Equal(t, 250*time.Millisecond, conf.Timing.MinVisible())
	assert.Equal(t, "debug", conf.Logging.Level)
	assert.Equal(t, "/tmp/reports", conf.Output.Directory)
}

func TestLoadConfiguration_Defaults(t *testing.T) {
	path := writeConfig(t, `
apiBaseUrl: https://payrun.example.com/api
userId: "1024"
`)

	conf, err := LoadConfiguration(path)
	require.NoError(t, err)

	assert.Equal(t, "2025-2026", conf.FinancialYear)
	assert.Equal(t, time.Second, conf.Timing.QuietPeriod())
	assert.Equal(t, time.Second, conf.Timing.MinVisible())
}

func TestLoadConfiguration_Errors(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"missing base URL", "userId: \"1024\"\n"},
		{"missing user ID", "apiBaseUrl: https://payrun.example.com/api\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadConfiguration(writeConfig(t, tt.body))
			assert.Error(t, err)
		})
	}

	_, err := LoadConfiguration(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestBuildLogger(t *testing.T) {
	logger, err := BuildLogger(LoggingConfig{Level: "debug", Format: "console"}, "")
	require.NoError(t, err)
	assert.NotNil(t, logger)

	logger, err = BuildLogger(LoggingConfig{Level: "info"}, "warn")
	require.NoError(t, err)
	assert.True(t, logger.Core().Enabled(zapcore.WarnLevel))
	assert.False(t, logger.Core().Enabled(zapcore.InfoLevel))

	_, err = BuildLogger(LoggingConfig{Level: "loud"}, "")
	assert.Error(t, err)
	_, err = BuildLogger(LoggingConfig{Format: "xml"}, "")
	assert.Error(t, err)
}
