package keyring

import (
	"errors"
	"fmt"

	"github.com/zalando/go-keyring"

	"github.com/smartshelf/smartshelf/internal/constants"
)

var (
	// ErrNotFound is returned when no entry exists in the keyring.
	ErrNotFound = errors.New("credentials not found in keyring")
	// ErrKeyringUnavailable is returned when the OS keyring is not available.
	ErrKeyringUnavailable = errors.New("OS keyring is not available")
)

// GetSessionToken retrieves the backend session token from the OS keyring.
func GetSessionToken() (string, error) {
	return get(constants.KeyringSessionUser)
}

// SetSessionToken stores the backend session token in the OS keyring.
func SetSessionToken(token string) error {
	if token == "" {
		return errors.New("session token cannot be empty")
	}
	return set(constants.KeyringSessionUser, token)
}

// DeleteSessionToken removes the backend session token from the OS keyring.
func DeleteSessionToken() error {
	return del(constants.KeyringSessionUser)
}

// GetConnectionString retrieves the database connection string from the OS keyring.
func GetConnectionString() (string, error) {
	return get(constants.KeyringDatabaseUser)
}

// SetConnectionString stores the database connection string in the OS keyring.
func SetConnectionString(connStr string) error {
	if connStr == "" {
		return errors.New("connection string cannot be empty")
	}
	return set(constants.KeyringDatabaseUser, connStr)
}

// DeleteConnectionString removes the database connection string from the OS keyring.
func DeleteConnectionString() error {
	return del(constants.KeyringDatabaseUser)
}

// IsAvailable checks if the OS keyring is usable on this system. Best
// effort; a read that fails with anything other than not-found means the
// keyring is likely broken or absent.
func IsAvailable() bool {
	_, err := keyring.Get(constants.AppName, "test-availability")
	return err == nil || err == keyring.ErrNotFound
}

func get(user string) (string, error) {
	value, err := keyring.Get(constants.AppName, user)
	if err != nil {
		if err == keyring.ErrNotFound {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("%w: %v", ErrKeyringUnavailable, err)
	}
	return value, nil
}

func set(user, value string) error {
	if err := keyring.Set(constants.AppName, user, value); err != nil {
		return fmt.Errorf("failed to store credentials in keyring: %w", err)
	}
	return nil
}

func del(user string) error {
	err := keyring.Delete(constants.AppName, user)
	if err != nil {
		if err == keyring.ErrNotFound {
			return ErrNotFound
		}
		return fmt.Errorf("failed to delete credentials from keyring: %w", err)
	}
	return nil
}
