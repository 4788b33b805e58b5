package logger

import (
	"testing"

	"go.uber.org/zap/zapcore"

	"github.com/arnavshah/shift-roster-go/pkg/config"
)

func TestNewLogger(t *testing.T) {
	log, err := NewLogger(&config.LogConfig{Level: "warn", Format: "console"})
	if err != nil {
		t.Fatalf("NewLogger failed: %v", err)
	}
	if log.Core().Enabled(zapcore.InfoLevel) {
		t.Error("Expected info to be disabled at warn level")
	}
	if !log.Core().Enabled(zapcore.ErrorLevel) {
		t.Error("Expected error to be enabled at warn level")
	}
}

func TestNewLogger_BadLevel(t *testing.T) {
	if _, err := NewLogger(&config.LogConfig{Level: "loud", Format: "json"}); err == nil {
		t.Error("Expected an error for an unknown level")
	}
}
