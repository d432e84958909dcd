package service

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/playtube/playtube-go/internal/apperr"
	"github.com/playtube/playtube-go/internal/config"
)

func testTokenService() *TokenService {
	return NewTokenService(&config.Config{
		AccessTokenSecret:  "test-access-secret",
		AccessTokenTTL:     time.Minute,
		RefreshTokenSecret: "test-refresh-secret",
		RefreshTokenTTL:    time.Hour,
	})
}

func TestTokenRoundTrip(t *testing.T) {
	svc := testTokenService()
	userID := uuid.New()

	access, err := svc.IssueAccessToken(userID, "maya", "maya@example.com")
	if err != nil {
		t.Fatalf("IssueAccessToken: %v", err)
	}
	got, err := svc.VerifyAccessToken(access)
	if err != nil {
		t.Fatalf("VerifyAccessToken: %v", err)
	}
	if got != userID {
		t.Errorf("verified id = %s, want %s", got, userID)
	}

	refresh, err := svc.IssueRefreshToken(userID)
	if err != nil {
		t.Fatalf("IssueRefreshToken: %v", err)
	}
	got, err = svc.VerifyRefreshToken(refresh)
	if err != nil {
		t.Fatalf("VerifyRefreshToken: %v", err)
	}
	if got != userID {
		t.Errorf("verified id = %s, want %s", got, userID)
	}
}

func TestTokenSecretsAreNotInterchangeable(t *testing.T) {
	svc := testTokenService()
	userID := uuid.New()

	refresh, err := svc.IssueRefreshToken(userID)
	if err != nil {
		t.Fatalf("IssueRefreshToken: %v", err)
	}

	// A refresh token must not pass as an access token.
	if _, err := svc.VerifyAccessToken(refresh); err == nil {
		t.Fatal("refresh token verified as access token")
	}
}

func TestVerifyRejectsGarbage(t *testing.T) {
	svc := testTokenService()

	for _, tok := range []string{"", "not-a-jwt", "a.b.c"} {
		_, err := svc.VerifyAccessToken(tok)
		if err == nil {
			t.Fatalf("token %q should be rejected", tok)
		}
		if apperr.KindOf(err) != apperr.KindAuthentication {
			t.Errorf("error kind = %v, want authentication", apperr.KindOf(err))
		}
	}
}

func TestExpiredTokenRejected(t *testing.T) {
	svc := NewTokenService(&config.Config{
		AccessTokenSecret: "test-access-secret",
		AccessTokenTTL:    -time.Minute,
	})

	access, err := svc.IssueAccessToken(uuid.New(), "maya", "maya@example.com")
	if err != nil {
		t.Fatalf("IssueAccessToken: %v", err)
	}
	if _, err := svc.VerifyAccessToken(access); err == nil {
		t.Fatal("expired token should be rejected")
	}
}
