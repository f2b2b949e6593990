package kiwi

import (
	"context"
	"net/http"
	"sync"

	"github.com/go-home-io/kiwi/plugins/common"
)

const (
	// Header used by Kiwi to pass session key.
	sessionKeyHeader = "session-key"
	// Authentication endpoint.
	sessionPath = "v1/session"
)

// Holds current session and mints new ones.
type sessionManager struct {
	sync.RWMutex

	credentials Credentials
	transport   *transport
	logger      common.ILoggerProvider

	session *Session
}

// Creates a new session using configured credentials.
// Stored session is replaced only if login succeeded.
func (s *sessionManager) login(ctx context.Context) (*Session, error) {
	s.logger.Debug("Creating a new kiwi session", common.LogUserNameToken, s.credentials.Username)

	resp, err := s.transport.send(ctx, &request{
		method: http.MethodPost,
		path:   sessionPath,
		body:   s.credentials,
	}, nil)
	if err != nil {
		return nil, err
	}

	if !resp.isSuccess() {
		return nil, &ErrAuthentication{Status: resp.status, Reason: resp.bodyString()}
	}

	data := &createSessionResponse{}
	if err := decodeBody(resp.body, data); err != nil {
		return nil, &ErrAuthentication{Reason: "can't parse session", Err: err}
	}

	if data.Result == nil || data.Result.Session == nil {
		return nil, &ErrAuthentication{Reason: "session is missing in response"}
	}

	session := *data.Result.Session
	if session.SessionKey == "" {
		session.SessionKey = data.Result.SessionKey
	}

	if session.SessionKey == "" {
		return nil, &ErrAuthentication{Reason: "session key is missing in response"}
	}

	s.Lock()
	s.session = &session
	s.Unlock()

	s.logger.Info("Kiwi session created", common.LogUserNameToken, s.credentials.Username)
	return &session, nil
}

// Returns header with current session key or empty header if there is no session.
func (s *sessionManager) authHeader() http.Header {
	h := make(http.Header)

	s.RLock()
	defer s.RUnlock()
	if s.session != nil {
		h.Set(sessionKeyHeader, s.session.SessionKey)
	}

	return h
}

// Returns a copy of current session.
func (s *sessionManager) current() *Session {
	s.RLock()
	defer s.RUnlock()

	if s.session == nil {
		return nil
	}

	session := *s.session
	return &session
}
