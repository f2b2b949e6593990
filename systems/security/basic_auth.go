package security

import (
	"encoding/base64"
	"net/http"
	"strings"

	"github.com/go-home-io/kiwi/plugins/common"
	"golang.org/x/crypto/bcrypt"
)

const (
	authHeader = "Authorization"
	authScheme = "basic"
)

// Implements basic auth user provider.
// Passwords are stored as bcrypt hashes.
type basicAuthProvider struct {
	logger common.ILoggerProvider
	hashes map[string][]byte
}

// Constructs a new basic auth provider.
func newBasicAuthProvider(logger common.ILoggerProvider, users map[string]string) *basicAuthProvider {
	b := &basicAuthProvider{
		logger: logger,
		hashes: make(map[string][]byte, len(users)),
	}

	for k, v := range users {
		b.hashes[k] = []byte(v)
	}

	return b
}

// Returns whether at least one user is configured.
func (b *basicAuthProvider) hasUsers() bool {
	return len(b.hashes) > 0
}

// Authorize validates basic auth header against configured users.
func (b *basicAuthProvider) Authorize(headers map[string][]string) (string, error) {
	user, pwd, err := parseAuthHeader(headers)
	if err != nil {
		b.logger.Warn("Failed to parse Basic Auth header", common.LogErrorToken, err.Error())
		return "", err
	}

	hash, ok := b.hashes[user]
	if !ok || bcrypt.CompareHashAndPassword(hash, []byte(pwd)) != nil {
		b.logger.Warn("User is unauthorized", common.LogUserNameToken, user)
		return "", &ErrInvalidCredentials{User: user}
	}

	b.logger.Debug("Found user", common.LogUserNameToken, user)
	return user, nil
}

// Extracts user and password out of basic auth header.
// Only a single Authorization header is accepted.
func parseAuthHeader(headers map[string][]string) (string, string, error) {
	values := http.Header(headers)[authHeader]
	if 0 == len(values) {
		return "", "", &ErrNoHeader{}
	}

	if 1 != len(values) {
		return "", "", &ErrMalformedHeader{Reason: "multiple headers"}
	}

	parts := strings.SplitN(values[0], " ", 2)
	if 2 != len(parts) || !strings.EqualFold(parts[0], authScheme) {
		return "", "", &ErrNoHeader{}
	}

	payload, err := base64.StdEncoding.DecodeString(strings.TrimSpace(parts[1]))
	if err != nil {
		return "", "", &ErrMalformedHeader{Reason: "not a base64 value"}
	}

	pair := strings.SplitN(string(payload), ":", 2)
	if 2 != len(pair) {
		return "", "", &ErrMalformedHeader{Reason: "no password separator"}
	}

	return pair[0], pair[1], nil
}
