package jwt

import (
	"errors"
	"testing"
	"time"

	"uni-analytics/backend/config"
)

func newTestManager(ttl time.Duration) *Manager {
	return NewManager(&config.AuthConfig{
		JWTSecret: "test-secret-key-at-least-16-chars",
		TokenTTL:  ttl,
	})
}

func TestManager_GenerateAndParse(t *testing.T) {
	mgr := newTestManager(time.Hour)

	token, err := mgr.GenerateAccessToken("user", "admin")
	if err != nil {
		t.Fatalf("GenerateAccessToken: %v", err)
	}

	claims, err := mgr.ParseToken(token)
	if err != nil {
		t.Fatalf("ParseToken: %v", err)
	}
	if claims.Username != "user" {
		t.Errorf("expected username=user, got %s", claims.Username)
	}
	if claims.Role != "admin" {
		t.Errorf("expected role=admin, got %s", claims.Role)
	}
	if claims.ID == "" {
		t.Error("expected a non-empty jti")
	}
}

func TestManager_ParseExpired(t *testing.T) {
	mgr := newTestManager(-time.Minute)

	token, err := mgr.GenerateAccessToken("user", "admin")
	if err != nil {
		t.Fatalf("GenerateAccessToken: %v", err)
	}

	_, err = mgr.ParseToken(token)
	if !errors.Is(err, ErrTokenExpired) {
		t.Errorf("expected ErrTokenExpired, got %v", err)
	}
}

func TestManager_ParseWrongSecret(t *testing.T) {
	mgr := newTestManager(time.Hour)
	other := NewManager(&config.AuthConfig{
		JWTSecret: "another-secret-key-16-chars-min",
		TokenTTL:  time.Hour,
	})

	token, err := mgr.GenerateAccessToken("user", "admin")
	if err != nil {
		t.Fatalf("GenerateAccessToken: %v", err)
	}

	_, err = other.ParseToken(token)
	if !errors.Is(err, ErrTokenInvalid) {
		t.Errorf("expected ErrTokenInvalid, got %v", err)
	}
}

func TestManager_ParseGarbage(t *testing.T) {
	mgr := newTestManager(time.Hour)

	_, err := mgr.ParseToken("not.a.token")
	if !errors.Is(err, ErrTokenInvalid) {
		t.Errorf("expected ErrTokenInvalid, got %v", err)
	}
}
