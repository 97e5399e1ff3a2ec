package auth

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/Samik0007/JournalAppPersonal/pkg/db"
)

func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	testDB, err := db.OpenDBConnection(":memory:", true, "NORMAL")
	if err != nil {
		t.Fatalf("Failed to open in-memory database: %v", err)
	}

	if err := db.InitializeSchema(testDB, db.TargetSchemaVersion); err != nil {
		t.Fatalf("Failed to initialize schema: %v", err)
	}

	t.Cleanup(func() { testDB.Close() })
	return testDB
}

func TestValidatePin(t *testing.T) {
	cases := []struct {
		pin  string
		want bool
	}{
		{"1234", true},
		{"0000", true},
		{"9999", true},
		{"123", false},
		{"12345", false},
		{"12a4", false},
		{"12.4", false},
		{"", false},
		{" 123", false},
	}

	for _, tc := range cases {
		if got := ValidatePin(tc.pin); got != tc.want {
			t.Errorf("ValidatePin(%q) = %v, want %v", tc.pin, got, tc.want)
		}
	}
}

func TestGetAuthMode(t *testing.T) {
	testDB := setupTestDB(t)
	ctx := context.Background()

	mode, err := GetAuthMode(ctx, testDB)
	if err != nil {
		t.Fatalf("GetAuthMode failed: %v", err)
	}
	if mode != SetupPin {
		t.Errorf("Expected SetupPin before any user exists, got %s", mode)
	}

	if _, err := CreateUserWithPin(ctx, testDB, "1234"); err != nil {
		t.Fatalf("CreateUserWithPin failed: %v", err)
	}

	mode, err = GetAuthMode(ctx, testDB)
	if err != nil {
		t.Fatalf("GetAuthMode failed: %v", err)
	}
	if mode != LoginPin {
		t.Errorf("Expected LoginPin after setup, got %s", mode)
	}
}

func TestCreateUserWithPin(t *testing.T) {
	testDB := setupTestDB(t)
	ctx := context.Background()

	user, err := CreateUserWithPin(ctx, testDB, "0042")
	if err != nil {
		t.Fatalf("CreateUserWithPin failed: %v", err)
	}
	if user.ID == uuid.Nil {
		t.Error("Expected user ID to be set")
	}
	if user.Pin != 42 {
		t.Errorf("Expected stored PIN value 42, got %d", user.Pin)
	}
	if user.CreatedAt == 0 {
		t.Error("Expected created_at to be populated")
	}

	_, err = CreateUserWithPin(ctx, testDB, "9999")
	if !errors.Is(err, ErrUserExists) {
		t.Errorf("Expected ErrUserExists on second setup, got %v", err)
	}
}

func TestCreateUserWithPinRejectsMalformedPin(t *testing.T) {
	testDB := setupTestDB(t)
	ctx := context.Background()

	for _, pin := range []string{"123", "12345", "12a4", ""} {
		_, err := CreateUserWithPin(ctx, testDB, pin)
		if !errors.Is(err, ErrInvalidPin) {
			t.Errorf("CreateUserWithPin(%q): expected ErrInvalidPin, got %v", pin, err)
		}
	}
}

func TestVerifyPin(t *testing.T) {
	testDB := setupTestDB(t)
	ctx := context.Background()

	// No user yet: verification fails quietly.
	ok, err := VerifyPin(ctx, testDB, "1234")
	if err != nil {
		t.Fatalf("VerifyPin failed: %v", err)
	}
	if ok {
		t.Error("Expected verification to fail with no user")
	}

	if _, err := CreateUserWithPin(ctx, testDB, "1234"); err != nil {
		t.Fatalf("CreateUserWithPin failed: %v", err)
	}

	ok, err = VerifyPin(ctx, testDB, "1234")
	if err != nil {
		t.Fatalf("VerifyPin failed: %v", err)
	}
	if !ok {
		t.Error("Expected matching PIN to verify")
	}

	for _, pin := range []string{"4321", "12a4", "123", "12345"} {
		ok, err := VerifyPin(ctx, testDB, pin)
		if err != nil {
			t.Fatalf("VerifyPin(%q) failed: %v", pin, err)
		}
		if ok {
			t.Errorf("VerifyPin(%q): expected false", pin)
		}
	}
}

func TestChangePin(t *testing.T) {
	testDB := setupTestDB(t)
	ctx := context.Background()

	if err := ChangePin(ctx, testDB, "1234", "5678"); !errors.Is(err, ErrNoUser) {
		t.Errorf("Expected ErrNoUser before setup, got %v", err)
	}

	if _, err := CreateUserWithPin(ctx, testDB, "1234"); err != nil {
		t.Fatalf("CreateUserWithPin failed: %v", err)
	}

	if err := ChangePin(ctx, testDB, "0000", "5678"); !errors.Is(err, ErrWrongPin) {
		t.Errorf("Expected ErrWrongPin for wrong current PIN, got %v", err)
	}
	if err := ChangePin(ctx, testDB, "1234", "56789"); !errors.Is(err, ErrInvalidPin) {
		t.Errorf("Expected ErrInvalidPin for malformed new PIN, got %v", err)
	}

	if err := ChangePin(ctx, testDB, "1234", "5678"); err != nil {
		t.Fatalf("ChangePin failed: %v", err)
	}

	ok, err := VerifyPin(ctx, testDB, "5678")
	if err != nil {
		t.Fatalf("VerifyPin failed: %v", err)
	}
	if !ok {
		t.Error("Expected new PIN to verify after change")
	}

	ok, err = VerifyPin(ctx, testDB, "1234")
	if err != nil {
		t.Fatalf("VerifyPin failed: %v", err)
	}
	if ok {
		t.Error("Expected old PIN to stop verifying after change")
	}
}
