package password_test

import (
	"errors"
	"testing"
	"trs/shared/password"
)

func TestHashAndVerify(t *testing.T) {
	hash, err := password.Hash("s3cret-pass")
	if err != nil {
		t.Fatalf("Hash() failed: %v", err)
	}

	if hash == "s3cret-pass" {
		t.Error("hash must not equal the plain password")
	}

	if err := password.Verify("s3cret-pass", hash); err != nil {
		t.Errorf("Verify() with correct password failed: %v", err)
	}

	if err := password.Verify("wrong-pass", hash); !errors.Is(err, password.ErrInvalidPassword) {
		t.Errorf("expected ErrInvalidPassword, got %v", err)
	}
}

func TestHash_EmptyPassword(t *testing.T) {
	if _, err := password.Hash(""); err == nil {
		t.Error("expected error for empty password")
	}
}

func TestVerify_EmptyInputs(t *testing.T) {
	if err := password.Verify("", "hash"); !errors.Is(err, password.ErrInvalidPassword) {
		t.Errorf("expected ErrInvalidPassword for empty password, got %v", err)
	}

	if err := password.Verify("pass", ""); !errors.Is(err, password.ErrInvalidPassword) {
		t.Errorf("expected ErrInvalidPassword for empty hash, got %v", err)
	}
}
