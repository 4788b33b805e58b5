package cache

import (
	"testing"

	"go.uber.org/zap"

	"github.com/arnavshah/shift-roster-go/pkg/config"
)

func TestNewClient_Disabled(t *testing.T) {
	c, err := NewClient(&config.RedisConfig{}, zap.NewNop())
	if err != nil {
		t.Fatalf("Expected no error without an address, got %v", err)
	}
	if c != nil {
		t.Error("Expected a nil client when redis is not configured")
	}
}

func TestNewClient_Unreachable(t *testing.T) {
	// port 1 is reserved and never accepts connections
	_, err := NewClient(&config.RedisConfig{Addr: "127.0.0.1:1"}, zap.NewNop())
	if err == nil {
		t.Error("Expected an error for an unreachable redis")
	}
}
