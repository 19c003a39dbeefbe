package auth

import (
	"testing"
	"time"

	"github.com/baankanom/bakery-backend/internal/config"
)

func newTestManager(t *testing.T) *JWTManager {
	t.Helper()
	cfg := &config.Config{}
	cfg.JWT.Secret = "test-secret-that-is-long-enough-to-pass"
	cfg.JWT.AccessTokenExpiry = 15 * time.Minute
	cfg.JWT.RefreshTokenExpiry = 7 * 24 * time.Hour
	return NewJWTManager(cfg)
}

func TestGenerateAndValidateTokenPair(t *testing.T) {
	manager := newTestManager(t)

	pair, err := manager.GenerateTokenPair(42, "nok@example.com", true)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if pair.ExpiresIn != int64((15 * time.Minute).Seconds()) {
		t.Errorf("ExpiresIn = %d", pair.ExpiresIn)
	}

	claims, err := manager.ValidateAccessToken(pair.AccessToken)
	if err != nil {
		t.Fatalf("validate access: %v", err)
	}
	if claims.UserID != 42 || claims.Email != "nok@example.com" || !claims.IsAdmin {
		t.Errorf("unexpected claims: %+v", claims)
	}

	refreshClaims, err := manager.ValidateRefreshToken(pair.RefreshToken)
	if err != nil {
		t.Fatalf("validate refresh: %v", err)
	}
	if refreshClaims.IsAdmin {
		t.Error("refresh token must not carry admin status")
	}
}

func TestTokenTypeMismatchRejected(t *testing.T) {
	manager := newTestManager(t)

	pair, err := manager.GenerateTokenPair(1, "a@example.com", false)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	if _, err := manager.ValidateAccessToken(pair.RefreshToken); err == nil {
		t.Error("refresh token accepted as access token")
	}
	if _, err := manager.ValidateRefreshToken(pair.AccessToken); err == nil {
		t.Error("access token accepted as refresh token")
	}
}

func TestTamperedTokenRejected(t *testing.T) {
	manager := newTestManager(t)

	pair, err := manager.GenerateTokenPair(1, "a@example.com", false)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	tampered := pair.AccessToken[:len(pair.AccessToken)-2] + "xx"
	if _, err := manager.ValidateAccessToken(tampered); err == nil {
		t.Error("tampered token accepted")
	}

	other := newTestManager(t)
	other.config.JWT.Secret = "a-completely-different-secret-string!!"
	if _, err := other.ValidateAccessToken(pair.AccessToken); err == nil {
		t.Error("token signed with another secret accepted")
	}
}

func TestExtractTokenFromHeader(t *testing.T) {
	tests := []struct {
		name   string
		header string
		want   string
	}{
		{"bearer token", "Bearer abc.def.ghi", "abc.def.ghi"},
		{"missing scheme", "abc.def.ghi", ""},
		{"wrong scheme", "Basic abc", ""},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExtractTokenFromHeader(tt.header); got != tt.want {
				t.Errorf("ExtractTokenFromHeader(%q) = %q, want %q", tt.header, got, tt.want)
			}
		})
	}
}
