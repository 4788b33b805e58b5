package database

import (
	"path/filepath"
	"testing"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/arnavshah/shift-roster-go/pkg/config"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := InitDB(&config.DatabaseConfig{Path: filepath.Join(t.TempDir(), "roster.db")}, zap.NewNop())
	if err != nil {
		t.Fatalf("InitDB failed: %v", err)
	}
	return db
}

func TestRecordUsage_Upserts(t *testing.T) {
	db := openTestDB(t)
	key := APIKey{Key: "k.sig", Name: "k", RateLimit: 10}
	if err := db.Create(&key).Error; err != nil {
		t.Fatal(err)
	}

	now := time.Date(2026, 10, 17, 12, 0, 0, 0, time.UTC)
	if err := RecordUsage(db, key.ID, 3, 10, now); err != nil {
		t.Fatalf("RecordUsage failed: %v", err)
	}
	if err := RecordUsage(db, key.ID, 4, 12, now); err != nil {
		t.Fatalf("RecordUsage failed: %v", err)
	}

	n, err := RequestsOn(db, key.ID, now)
	if err != nil || n != 2 {
		t.Errorf("Expected 2 requests today, got %d (%v)", n, err)
	}
	if n, _ := RequestsOn(db, key.ID, now.AddDate(0, 0, 1)); n != 0 {
		t.Errorf("Expected 0 requests tomorrow, got %d", n)
	}

	history, err := UsageHistory(db, key.ID)
	if err != nil {
		t.Fatalf("UsageHistory failed: %v", err)
	}
	if len(history) != 1 {
		t.Fatalf("Expected 1 usage row, got %d", len(history))
	}
	if history[0].TotalEmployees != 7 || history[0].TotalAssignments != 22 {
		t.Errorf("Unexpected totals %+v", history[0])
	}
}
