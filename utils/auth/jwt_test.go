package auth

import (
	"testing"
	"time"

	"github.com/CHYou2Sef/BridgeEd/model"
	"github.com/CHYou2Sef/BridgeEd/utils/clock"
)

func newTestManager() *TokenManager {
	return NewTokenManager(TokenConfig{
		Secret: "test-secret",
		Expiry: time.Hour,
		Issuer: "bridge-ed-test",
	})
}

func TestMintAndParseSessionToken(t *testing.T) {
	manager := newTestManager()
	user := &model.User{ID: "u1", Email: "amira@example.com", Tier: model.TierPro}

	token, err := manager.MintSessionToken(user, time.Now())
	if err != nil {
		t.Fatalf("MintSessionToken returned error: %v", err)
	}

	claims, err := manager.ParseSessionToken(token)
	if err != nil {
		t.Fatalf("ParseSessionToken returned error: %v", err)
	}
	if claims.UserID != "u1" || claims.Email != "amira@example.com" || claims.Tier != "pro" {
		t.Errorf("claims do not match the user: %+v", claims)
	}
	if claims.ID == "" {
		t.Error("expected a JTI on the token")
	}
}

func TestParseRejectsExpiredToken(t *testing.T) {
	manager := newTestManager()
	user := &model.User{ID: "u1", Email: "a@b.com", Tier: model.TierFree}

	token, err := manager.MintSessionToken(user, time.Now().Add(-2*time.Hour))
	if err != nil {
		t.Fatalf("MintSessionToken returned error: %v", err)
	}

	if _, err := manager.ParseSessionToken(token); err != ErrExpiredToken {
		t.Fatalf("expected ErrExpiredToken, got %v", err)
	}
}

func TestParseHonorsInjectedClock(t *testing.T) {
	// Simulated sign-in delays advance the manual clock ahead of wall time,
	// so tokens it stamps must be validated against the same clock
	clk := clock.NewManual(time.Now().Add(time.Hour))
	manager := NewTokenManager(TokenConfig{
		Secret: "test-secret",
		Expiry: time.Hour,
		Issuer: "bridge-ed-test",
		Clock:  clk,
	})
	user := &model.User{ID: "u1", Email: "a@b.com", Tier: model.TierFree}

	token, err := manager.MintSessionToken(user, clk.Now())
	if err != nil {
		t.Fatalf("MintSessionToken returned error: %v", err)
	}

	if _, err := manager.ParseSessionToken(token); err != nil {
		t.Fatalf("expected the token to validate on the injected clock, got %v", err)
	}

	clk.Advance(2 * time.Hour)
	if _, err := manager.ParseSessionToken(token); err != ErrExpiredToken {
		t.Fatalf("expected ErrExpiredToken after advancing the clock, got %v", err)
	}
}

func TestParseRejectsForeignSignature(t *testing.T) {
	manager := newTestManager()
	other := NewTokenManager(TokenConfig{Secret: "different-secret", Expiry: time.Hour, Issuer: "other"})
	user := &model.User{ID: "u1", Email: "a@b.com", Tier: model.TierFree}

	token, err := other.MintSessionToken(user, time.Now())
	if err != nil {
		t.Fatalf("MintSessionToken returned error: %v", err)
	}

	if _, err := manager.ParseSessionToken(token); err != ErrInvalidToken {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}
