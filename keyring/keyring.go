// Package keyring stores the NordVPN access token in the system keyring.
// When no keyring service is reachable the token is kept in memory for the
// lifetime of the process only; it is never written to disk.
package keyring

import (
	"errors"
	"fmt"
	"sync"

	"github.com/zalando/go-keyring"

	"github.com/yllada/nordvpn-indicator/common"
)

const (
	// serviceName is the identifier used in the system keyring.
	serviceName = common.AppID
	// tokenUser is the keyring entry holding the login token.
	tokenUser = "access-token"
)

// Common errors returned by keyring operations.
var (
	ErrNotFound    = common.ErrCredentialsNotFound
	ErrEmptyToken  = fmt.Errorf("%w: token cannot be empty", common.ErrUserInputInvalid)
	ErrUnavailable = errors.New("keyring service unavailable")
)

var (
	mu           sync.RWMutex
	sessionToken string
	sessionOnly  bool
)

// Store saves the access token.
// It returns ErrUnavailable (wrapped) when the token could only be kept for this session.
func Store(token string) error {
	if token == "" {
		return ErrEmptyToken
	}

	if err := keyring.Set(serviceName, tokenUser, token); err != nil {
		mu.Lock()
		sessionToken = token
		sessionOnly = true
		mu.Unlock()
		common.LogWarn("System keyring unavailable, token kept for this session: %v", err)
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	mu.Lock()
	sessionToken = ""
	sessionOnly = false
	mu.Unlock()
	return nil
}

// Get retrieves the stored access token.
func Get() (string, error) {
	mu.RLock()
	token, only := sessionToken, sessionOnly
	mu.RUnlock()
	if only && token != "" {
		return token, nil
	}

	token, err := keyring.Get(serviceName, tokenUser)
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return token, nil
}

// Delete removes the stored access token. Deleting a missing token is not an error.
func Delete() error {
	mu.Lock()
	sessionToken = ""
	sessionOnly = false
	mu.Unlock()

	if err := keyring.Delete(serviceName, tokenUser); err != nil && !errors.Is(err, keyring.ErrNotFound) {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return nil
}

// Exists checks if an access token is stored.
func Exists() bool {
	_, err := Get()
	return err == nil
}
