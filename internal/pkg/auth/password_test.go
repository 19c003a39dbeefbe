package auth

import (
	"testing"

	"github.com/baankanom/bakery-backend/internal/config"
)

func newTestPasswordManager() *PasswordManager {
	cfg := &config.Config{}
	cfg.Security.BcryptCost = 4 // minimum cost keeps the test fast
	return NewPasswordManager(cfg)
}

func TestHashAndVerifyPassword(t *testing.T) {
	manager := newTestPasswordManager()

	hash, err := manager.HashPassword("choco1234")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if hash == "choco1234" {
		t.Fatal("password stored in plain text")
	}

	if err := manager.VerifyPassword("choco1234", hash); err != nil {
		t.Errorf("correct password rejected: %v", err)
	}
	if err := manager.VerifyPassword("wrong-password", hash); err == nil {
		t.Error("wrong password accepted")
	}
}

func TestValidatePassword(t *testing.T) {
	manager := newTestPasswordManager()

	tests := []struct {
		name     string
		password string
		wantErr  bool
	}{
		{"valid", "choco1234", false},
		{"too short", "ab1", true},
		{"no digits", "chocolate", true},
		{"no letters", "12345678", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := manager.ValidatePassword(tt.password)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidatePassword(%q) error = %v, wantErr %v", tt.password, err, tt.wantErr)
			}
		})
	}
}
