package keyring

import (
	"testing"

	gokeyring "github.com/zalando/go-keyring"
)

func TestSessionTokenRoundTrip(t *testing.T) {
	gokeyring.MockInit()

	if err := SetSessionToken("tok-123"); err != nil {
		t.Fatalf("SetSessionToken() failed: %v", err)
	}

	got, err := GetSessionToken()
	if err != nil {
		t.Fatalf("GetSessionToken() failed: %v", err)
	}
	if got != "tok-123" {
		t.Errorf("GetSessionToken() = %q, want %q", got, "tok-123")
	}

	if err := DeleteSessionToken(); err != nil {
		t.Fatalf("DeleteSessionToken() failed: %v", err)
	}

	if _, err := GetSessionToken(); err != ErrNotFound {
		t.Errorf("GetSessionToken() after delete error = %v, want %v", err, ErrNotFound)
	}
}

func TestSetSessionTokenEmpty(t *testing.T) {
	gokeyring.MockInit()

	if err := SetSessionToken(""); err == nil {
		t.Error("SetSessionToken(\"\") should return an error")
	}
}

func TestConnectionStringRoundTrip(t *testing.T) {
	gokeyring.MockInit()

	connStr := "postgres://smartshelf@localhost:5432/smartshelf?sslmode=disable"

	if err := SetConnectionString(connStr); err != nil {
		t.Fatalf("SetConnectionString() failed: %v", err)
	}

	got, err := GetConnectionString()
	if err != nil {
		t.Fatalf("GetConnectionString() failed: %v", err)
	}
	if got != connStr {
		t.Errorf("GetConnectionString() = %q, want %q", got, connStr)
	}
}

func TestDeleteSessionTokenNotFound(t *testing.T) {
	gokeyring.MockInit()

	_ = DeleteSessionToken()
	if err := DeleteSessionToken(); err != ErrNotFound {
		t.Errorf("DeleteSessionToken() error = %v, want %v", err, ErrNotFound)
	}
}
