package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Server.Port != 8000 {
		t.Errorf("Expected port 8000, got %d", cfg.Server.Port)
	}
	if cfg.Database.Path != "api_keys.db" {
		t.Errorf("Expected sqlite path api_keys.db, got %q", cfg.Database.Path)
	}
	if cfg.Auth.TokenTTL != 24*time.Hour {
		t.Errorf("Expected 24h token ttl, got %v", cfg.Auth.TokenTTL)
	}
	if cfg.Scheduler.MaxDaysPerWeek != 5 || cfg.Scheduler.MinEmployeesPerShift != 2 {
		t.Errorf("Unexpected scheduler defaults %+v", cfg.Scheduler)
	}
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	t.Setenv("PORT", "9100")
	t.Setenv("DATABASE_URL", "postgres://roster@localhost/roster")
	t.Setenv("ROSTER_LOG_LEVEL", "debug")
	t.Setenv("ROSTER_SCHEDULER_MIN_EMPLOYEES_PER_SHIFT", "3")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Server.Port != 9100 {
		t.Errorf("Expected PORT alias to set port 9100, got %d", cfg.Server.Port)
	}
	if cfg.Database.URL != "postgres://roster@localhost/roster" {
		t.Errorf("Expected DATABASE_URL alias to be honoured, got %q", cfg.Database.URL)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("Expected log level debug, got %q", cfg.Log.Level)
	}
	if cfg.Scheduler.MinEmployeesPerShift != 3 {
		t.Errorf("Expected minimum headcount 3, got %d", cfg.Scheduler.MinEmployeesPerShift)
	}
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "roster.yaml")
	data := []byte("server:\n  port: 8123\nscheduler:\n  max_days_per_week: 4\nlog:\n  format: console\n")
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Server.Port != 8123 || cfg.Scheduler.MaxDaysPerWeek != 4 || cfg.Log.Format != "console" {
		t.Errorf("Expected file values to apply, got %+v", cfg)
	}
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("Expected an error for a missing explicit config file")
	}
}

func TestLoad_InvalidScheduler(t *testing.T) {
	t.Setenv("ROSTER_SCHEDULER_MAX_DAYS_PER_WEEK", "9")

	_, err := Load("")
	if !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("Expected ErrInvalidConfig, got %v", err)
	}
}

func TestValidateServer(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if err := cfg.ValidateServer(); !errors.Is(err, ErrMissingSecret) {
		t.Errorf("Expected ErrMissingSecret, got %v", err)
	}

	cfg.Auth.JWTSecret = "jwt-secret-for-tests"
	cfg.Auth.APIMasterSecret = "master-secret-for-tests"
	if err := cfg.ValidateServer(); err != nil {
		t.Errorf("Expected secrets to satisfy validation, got %v", err)
	}
}
