package auth

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/arnavshah/shift-roster-go/pkg/config"
	"github.com/arnavshah/shift-roster-go/pkg/database"
)

func testAuth() *Authenticator {
	return New(config.AuthConfig{
		JWTSecret:       "jwt-secret-for-tests",
		APIMasterSecret: "master-secret-for-tests",
		AdminUsername:   "admin",
		AdminPassword:   "s3cret",
		BcryptCost:      4,
	})
}

func TestToken_RoundTrip(t *testing.T) {
	a := testAuth()

	token, err := a.CreateToken("admin")
	if err != nil {
		t.Fatalf("CreateToken failed: %v", err)
	}
	claims, err := a.VerifyToken(token)
	if err != nil {
		t.Fatalf("VerifyToken failed: %v", err)
	}
	if claims.Username != "admin" {
		t.Errorf("Expected username admin, got %q", claims.Username)
	}

	other := New(config.AuthConfig{JWTSecret: "a-different-secret"})
	if _, err := other.VerifyToken(token); err == nil {
		t.Error("Expected a token signed with another secret to be rejected")
	}
}

func TestHMACKey(t *testing.T) {
	a := testAuth()
	key := a.GenerateHMACKey("team.rota")

	userID, err := a.VerifyHMACKey(key)
	if err != nil {
		t.Fatalf("VerifyHMACKey failed: %v", err)
	}
	if userID != "team.rota" {
		t.Errorf("Expected user id team.rota, got %q", userID)
	}

	if _, err := a.VerifyHMACKey("team.rota." + strings.Repeat("0", 64)); !errors.Is(err, ErrInvalidSignature) {
		t.Errorf("Expected ErrInvalidSignature, got %v", err)
	}
	if _, err := a.VerifyHMACKey("no-signature"); !errors.Is(err, ErrInvalidKeyFormat) {
		t.Errorf("Expected ErrInvalidKeyFormat, got %v", err)
	}
	if _, err := a.VerifyHMACKey("trailing."); !errors.Is(err, ErrInvalidKeyFormat) {
		t.Errorf("Expected ErrInvalidKeyFormat, got %v", err)
	}
}

func TestKeyPreview(t *testing.T) {
	if got := KeyPreview("short"); got != "****" {
		t.Errorf("Expected ****, got %q", got)
	}
	if got := KeyPreview("team.abcdef0123"); got != "tea...0123" {
		t.Errorf("Expected tea...0123, got %q", got)
	}
}

func TestEnsureAdminExists(t *testing.T) {
	db, err := database.InitDB(&config.DatabaseConfig{Path: filepath.Join(t.TempDir(), "auth.db")}, zap.NewNop())
	if err != nil {
		t.Fatalf("InitDB failed: %v", err)
	}
	a := testAuth()

	if err := a.EnsureAdminExists(db, zap.NewNop()); err != nil {
		t.Fatalf("EnsureAdminExists failed: %v", err)
	}
	if err := a.EnsureAdminExists(db, zap.NewNop()); err != nil {
		t.Fatalf("second EnsureAdminExists failed: %v", err)
	}

	var users []database.MasterUser
	db.Find(&users)
	if len(users) != 1 {
		t.Fatalf("Expected exactly 1 admin, got %d", len(users))
	}
	if !CheckPasswordHash("s3cret", users[0].PasswordHash) {
		t.Error("Expected the stored hash to match the configured password")
	}
	if CheckPasswordHash("wrong", users[0].PasswordHash) {
		t.Error("Expected a wrong password to be rejected")
	}
}
