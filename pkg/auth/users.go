// Package auth implements the single-user PIN gate. The users table is a
// singleton: zero rows means setup has not run, one row is the normal state,
// and more than one is treated as a data-integrity condition where the
// earliest-created row wins.
package auth

import (
	"context"
	"database/sql"
	"errors"
	"strconv"

	"github.com/google/uuid"
)

var (
	// ErrInvalidPin is returned when a PIN is not exactly 4 ASCII digits.
	ErrInvalidPin = errors.New("PIN must be 4 digits")

	// ErrUserExists is returned when setup runs but a user row already exists.
	ErrUserExists = errors.New("user already exists")

	// ErrNoUser is returned when an operation needs a user row and none exists.
	ErrNoUser = errors.New("no user exists")

	// ErrWrongPin is returned when the supplied current PIN does not match.
	ErrWrongPin = errors.New("current PIN is incorrect")
)

// AuthMode tells the caller whether to show PIN setup or PIN login.
type AuthMode string

const (
	SetupPin AuthMode = "setup"
	LoginPin AuthMode = "login"
)

// User is the single stored account. The PIN is kept as an integer; leading
// zeros are significant at the validation boundary, not in storage ("0000"
// and every other 4-digit spelling of zero compare equal by value).
type User struct {
	ID        uuid.UUID `json:"id"`
	Pin       int       `json:"-"`
	CreatedAt float64   `json:"created_at"`
}

const (
	createUserStatement = `
	INSERT INTO users (id, pin)
	VALUES (?, ?)
	`

	getUserStatement = `
	SELECT id, pin, created_at
	FROM users
	ORDER BY created_at ASC
	LIMIT 1
	`

	countUsersStatement = `
	SELECT COUNT(*) FROM users
	`

	updatePinStatement = `
	UPDATE users
	SET pin = ?
	WHERE id = ?
	`
)

// ValidatePin reports whether pin is exactly 4 ASCII digits.
func ValidatePin(pin string) bool {
	if len(pin) != 4 {
		return false
	}
	for _, c := range pin {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}

// GetAuthMode returns SetupPin when no user row exists, else LoginPin.
func GetAuthMode(ctx context.Context, db *sql.DB) (AuthMode, error) {
	var count int
	if err := db.QueryRowContext(ctx, countUsersStatement).Scan(&count); err != nil {
		return "", err
	}
	if count == 0 {
		return SetupPin, nil
	}
	return LoginPin, nil
}

// CreateUserWithPin creates the single user row. Fails with ErrInvalidPin on
// a malformed PIN and ErrUserExists when setup already ran.
func CreateUserWithPin(ctx context.Context, db *sql.DB, pin string) (User, error) {
	if !ValidatePin(pin) {
		return User{}, ErrInvalidPin
	}

	var count int
	if err := db.QueryRowContext(ctx, countUsersStatement).Scan(&count); err != nil {
		return User{}, err
	}
	if count > 0 {
		return User{}, ErrUserExists
	}

	pinValue, _ := strconv.Atoi(pin)
	userID := uuid.New()
	if _, err := db.ExecContext(ctx, createUserStatement, userID, pinValue); err != nil {
		return User{}, err
	}

	return getUser(ctx, db)
}

// VerifyPin reports whether pin matches the stored PIN. Malformed input and
// mismatches both return false, never an error.
func VerifyPin(ctx context.Context, db *sql.DB, pin string) (bool, error) {
	if !ValidatePin(pin) {
		return false, nil
	}

	user, err := getUser(ctx, db)
	if err != nil {
		if errors.Is(err, ErrNoUser) {
			return false, nil
		}
		return false, err
	}

	pinValue, _ := strconv.Atoi(pin)
	return user.Pin == pinValue, nil
}

// ChangePin replaces the stored PIN after validating both inputs and
// checking the current one.
func ChangePin(ctx context.Context, db *sql.DB, currentPin, newPin string) error {
	if !ValidatePin(currentPin) || !ValidatePin(newPin) {
		return ErrInvalidPin
	}

	user, err := getUser(ctx, db)
	if err != nil {
		return err
	}

	currentValue, _ := strconv.Atoi(currentPin)
	if user.Pin != currentValue {
		return ErrWrongPin
	}

	newValue, _ := strconv.Atoi(newPin)
	_, err = db.ExecContext(ctx, updatePinStatement, newValue, user.ID)
	return err
}

func getUser(ctx context.Context, db *sql.DB) (User, error) {
	var user User
	err := db.QueryRowContext(ctx, getUserStatement).Scan(&user.ID, &user.Pin, &user.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return User{}, ErrNoUser
		}
		return User{}, err
	}
	return user, nil
}
