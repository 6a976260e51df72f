package utils

import (
	"errors"
	"testing"
	"time"
)

func TestJWTManager_RoundTrip(t *testing.T) {
	m := NewJWTManager("test-secret", "penned-works")

	token, err := m.GenerateSessionToken("user-1", "jane", time.Hour)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	claims, err := m.ParseSessionToken(token)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if claims.UserID != "user-1" {
		t.Errorf("user id = %q, want %q", claims.UserID, "user-1")
	}
	if claims.Username != "jane" {
		t.Errorf("username = %q, want %q", claims.Username, "jane")
	}
	if claims.Issuer != "penned-works" {
		t.Errorf("issuer = %q, want %q", claims.Issuer, "penned-works")
	}
}

func TestJWTManager_WrongSecret(t *testing.T) {
	token, err := NewJWTManager("secret-a", "penned-works").GenerateSessionToken("user-1", "jane", time.Hour)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := NewJWTManager("secret-b", "penned-works").ParseSessionToken(token); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("error = %v, want ErrInvalidToken", err)
	}
}

func TestJWTManager_Expired(t *testing.T) {
	m := NewJWTManager("test-secret", "penned-works")

	token, err := m.GenerateSessionToken("user-1", "jane", -time.Minute)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := m.ParseSessionToken(token); !errors.Is(err, ErrExpiredToken) {
		t.Errorf("error = %v, want ErrExpiredToken", err)
	}
}

func TestJWTManager_Garbage(t *testing.T) {
	m := NewJWTManager("test-secret", "penned-works")

	if _, err := m.ParseSessionToken("not.a.token"); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("error = %v, want ErrInvalidToken", err)
	}
}
