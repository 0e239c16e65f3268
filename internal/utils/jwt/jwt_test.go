package jwt

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

const testSecret = "test-secret"

func TestAccessTokenRoundtrip(t *testing.T) {
	userID := uuid.New()

	token, err := GenerateAccessToken(userID, testSecret, time.Minute)
	if err != nil {
		t.Fatalf("GenerateAccessToken() error = %v", err)
	}

	claims, err := VerifyToken(token, testSecret)
	if err != nil {
		t.Fatalf("VerifyToken() error = %v", err)
	}

	if claims.UserID != userID {
		t.Errorf("UserID = %v, want %v", claims.UserID, userID)
	}
}

func TestVerifyTokenWrongSecret(t *testing.T) {
	token, err := GenerateAccessToken(uuid.New(), testSecret, time.Minute)
	if err != nil {
		t.Fatalf("GenerateAccessToken() error = %v", err)
	}

	if _, err := VerifyToken(token, "other-secret"); err != ErrInvalidToken {
		t.Errorf("VerifyToken() error = %v, want ErrInvalidToken", err)
	}
}

func TestVerifyTokenExpired(t *testing.T) {
	token, err := GenerateAccessToken(uuid.New(), testSecret, -time.Minute)
	if err != nil {
		t.Fatalf("GenerateAccessToken() error = %v", err)
	}

	if _, err := VerifyToken(token, testSecret); err != ErrExpiredToken {
		t.Errorf("VerifyToken() error = %v, want ErrExpiredToken", err)
	}
}

func TestDecodeWithoutVerifyExpiredToken(t *testing.T) {
	userID := uuid.New()
	token, err := GenerateAccessToken(userID, testSecret, -time.Minute)
	if err != nil {
		t.Fatalf("GenerateAccessToken() error = %v", err)
	}

	claims, err := DecodeWithoutVerify(token)
	if err != nil {
		t.Fatalf("DecodeWithoutVerify() error = %v", err)
	}

	if claims.UserID != userID {
		t.Errorf("UserID = %v, want %v", claims.UserID, userID)
	}
}

func TestPurposeToken(t *testing.T) {
	token, err := GeneratePurposeToken(uuid.New(), "password_reset", testSecret, time.Minute)
	if err != nil {
		t.Fatalf("GeneratePurposeToken() error = %v", err)
	}

	claims, err := VerifyToken(token, testSecret)
	if err != nil {
		t.Fatalf("VerifyToken() error = %v", err)
	}

	if claims.Purpose != "password_reset" {
		t.Errorf("Purpose = %q, want password_reset", claims.Purpose)
	}
}

func TestVerifyTokenGarbage(t *testing.T) {
	if _, err := VerifyToken("not.a.token", testSecret); err != ErrInvalidToken {
		t.Errorf("VerifyToken() error = %v, want ErrInvalidToken", err)
	}
}
