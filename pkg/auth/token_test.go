package auth

import (
	"strings"
	"testing"
	"time"

	"github.com/delanoso/safetyhub/pkg/config"
	"github.com/delanoso/safetyhub/pkg/enums"
)

func testSessionConfig() config.SessionConfig {
	return config.SessionConfig{Secret: "secret", Issuer: "safetyhub", TTLMinutes: 30}
}

func TestMintAndParseSessionToken(t *testing.T) {
	cfg := testSessionConfig()
	now := time.Now().UTC()

	token, err := MintSessionToken(cfg, now, 42, "jti-1")
	if err != nil {
		t.Fatalf("mint session token: %v", err)
	}

	claims, err := ParseSessionToken(cfg, token)
	if err != nil {
		t.Fatalf("parse session token: %v", err)
	}
	if claims.UserID != 42 || claims.ID != "jti-1" {
		t.Fatalf("unexpected claims %+v", claims)
	}
	if claims.Issuer != "safetyhub" {
		t.Fatalf("unexpected issuer %s", claims.Issuer)
	}
}

func TestParseSessionTokenRejectsTampering(t *testing.T) {
	cfg := testSessionConfig()
	token, err := MintSessionToken(cfg, time.Now(), 7, "jti")
	if err != nil {
		t.Fatalf("mint: %v", err)
	}

	other := cfg
	other.Secret = "different"
	if _, err := ParseSessionToken(other, token); err == nil {
		t.Fatal("expected signature error with a different secret")
	}

	parts := strings.Split(token, ".")
	if _, err := ParseSessionToken(cfg, parts[0]+"."+parts[1]+"."); err == nil {
		t.Fatal("expected error for stripped signature")
	}
}

func TestParseSessionTokenRejectsExpired(t *testing.T) {
	cfg := testSessionConfig()
	token, err := MintSessionToken(cfg, time.Now().Add(-2*time.Hour), 7, "jti")
	if err != nil {
		t.Fatalf("mint: %v", err)
	}
	if _, err := ParseSessionToken(cfg, token); err == nil {
		t.Fatal("expected expired token to be rejected")
	}
}

func TestMintSessionTokenValidatesInput(t *testing.T) {
	cfg := testSessionConfig()
	if _, err := MintSessionToken(cfg, time.Now(), 0, "jti"); err == nil {
		t.Fatal("expected error for missing user")
	}
	if _, err := MintSessionToken(cfg, time.Now(), 1, " "); err == nil {
		t.Fatal("expected error for missing session id")
	}
	cfg.Secret = ""
	if _, err := MintSessionToken(cfg, time.Now(), 1, "jti"); err == nil {
		t.Fatal("expected error for missing secret")
	}
}

func TestActorScopes(t *testing.T) {
	one, two := uint(1), uint(2)
	admin := Actor{UserID: 1, Role: enums.RoleAdmin, CompanyID: &one}
	if !admin.OwnsCompany(&one) || admin.OwnsCompany(&two) || admin.OwnsCompany(nil) {
		t.Fatal("admin must only see its own company")
	}
	super := Actor{UserID: 2, Role: enums.RoleSuper}
	if !super.OwnsCompany(&two) || !super.OwnsCompany(nil) {
		t.Fatal("super sees every company")
	}
	orphan := Actor{UserID: 3, Role: enums.RoleUser}
	if orphan.OwnsCompany(&one) || orphan.CanManage() {
		t.Fatal("user without company sees nothing")
	}
}
