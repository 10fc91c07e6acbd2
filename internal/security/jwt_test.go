package security

import (
	"errors"
	"testing"
	"time"
)

const testSecret = "abcdefghijklmnopqrstuvwxyz123456"

func TestSignAndParseAccessToken(t *testing.T) {
	mgr := NewJWTManager("treasures", "admin-panel", testSecret)

	raw, err := mgr.SignAccessToken("admin", time.Hour)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	claims, err := mgr.ParseAccessToken(raw)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if claims.Subject != "admin" {
		t.Fatalf("unexpected subject: %q", claims.Subject)
	}
	if claims.Issuer != "treasures" {
		t.Fatalf("unexpected issuer: %q", claims.Issuer)
	}
}

func TestParseRejectsExpiredToken(t *testing.T) {
	mgr := NewJWTManager("treasures", "admin-panel", testSecret)

	raw, err := mgr.SignAccessToken("admin", -time.Minute)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	if _, err := mgr.ParseAccessToken(raw); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestParseRejectsWrongSecret(t *testing.T) {
	mgr := NewJWTManager("treasures", "admin-panel", testSecret)
	other := NewJWTManager("treasures", "admin-panel", "zyxwvutsrqponmlkjihgfedcba654321")

	raw, err := mgr.SignAccessToken("admin", time.Hour)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	if _, err := other.ParseAccessToken(raw); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestParseRejectsWrongAudience(t *testing.T) {
	mgr := NewJWTManager("treasures", "admin-panel", testSecret)
	other := NewJWTManager("treasures", "storefront", testSecret)

	raw, err := mgr.SignAccessToken("admin", time.Hour)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	if _, err := other.ParseAccessToken(raw); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestParseRejectsGarbage(t *testing.T) {
	mgr := NewJWTManager("treasures", "admin-panel", testSecret)
	if _, err := mgr.ParseAccessToken("not-a-token"); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}
