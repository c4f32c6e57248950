package logger

import (
	"testing"

	"github.com/pms-portal/billing-api/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestBuildConfig(t *testing.T) {
	tests := []struct {
		name        string
		logging     config.LoggingConfig
		environment string
		wantJSON    bool
		wantLevel   zapcore.Level
	}{
		{"development console", config.LoggingConfig{Level: "debug", Format: "console"}, "development", false, zapcore.DebugLevel},
		{"json requested", config.LoggingConfig{Level: "warn", Format: "json"}, "development", true, zapcore.WarnLevel},
		{"production forces json", config.LoggingConfig{Level: "info", Format: "console"}, "production", true, zapcore.InfoLevel},
		{"bad level falls back to info", config.LoggingConfig{Level: "loud"}, "staging", false, zapcore.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := buildConfig(&tt.logging, &config.AppConfig{Name: "billing", Environment: tt.environment})
			assert.Equal(t, tt.wantJSON, cfg.Encoding == "json")
			assert.Equal(t, tt.wantLevel, cfg.Level.Level())
			assert.Equal(t, "billing", cfg.InitialFields["app"])
		})
	}
}

func TestNewLogger(t *testing.T) {
	log, err := NewLogger(&config.LoggingConfig{Level: "info", Format: "json"}, &config.AppConfig{Name: "billing", Environment: "test"})
	require.NoError(t, err)
	assert.NotNil(t, log)
}
