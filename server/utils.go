package server

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/go-home-io/kiwi/plugins/common"
	"github.com/go-home-io/kiwi/systems/security"
	"github.com/pkg/errors"
)

// Plain HTTP_200 API response.
func respondOk(writer http.ResponseWriter) {
	writer.Header().Set("Content-Type", "application/json")
	writer.WriteHeader(http.StatusOK)
	io.WriteString(writer, `{ "status": "OK" }`) // nolint: errcheck
}

// Generic API respond.
func respond(writer http.ResponseWriter, data interface{}) {
	d, err := json.Marshal(data)
	if err != nil {
		respondError(writer, http.StatusInternalServerError, err.Error())
		return
	}

	writer.Header().Set("Content-Type", "application/json")
	writer.WriteHeader(http.StatusOK)
	writer.Write(d) // nolint: errcheck
}

// Validates whether error is not null and responds different status
// depending on it.
func respondOkError(writer http.ResponseWriter, err error) {
	if err == nil {
		respondOk(writer)
		return
	}

	respondError(writer, errorStatus(err), err.Error())
}

// Return HTTP_UNAUTHORIZED status with basic auth challenge.
func respondUnAuth(writer http.ResponseWriter) {
	writer.Header().Set("WWW-Authenticate", fmt.Sprintf(`Basic realm="%s"`, authRealm))
	http.Error(writer, "Unauthorized", http.StatusUnauthorized)
}

// Return HTTP_FORBIDDEN status.
func respondForbidden(writer http.ResponseWriter) {
	http.Error(writer, "Forbidden", http.StatusForbidden)
}

// Plain error API response.
func respondError(writer http.ResponseWriter, status int, problem string) {
	d, _ := json.Marshal(map[string]string{"status": "ERROR", "problem": problem})
	writer.Header().Set("Content-Type", "application/json")
	writer.WriteHeader(status)
	writer.Write(d) // nolint: errcheck
}

// Maps command error into HTTP status.
// Command failures are matched before unwrapping, their cause is a remote error.
func errorStatus(err error) int {
	if _, ok := err.(*ErrCommandFailed); ok {
		return http.StatusBadGateway
	}

	switch errors.Cause(err).(type) {
	case *ErrUnknownDevice:
		return http.StatusNotFound
	case *ErrUnknownCommand:
		return http.StatusBadRequest
	case *ErrCommandFailed:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// Logger middleware for the API.
func (s *KiwiServer) logMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.Logger.Debug("REST invocation", common.LogSystemToken, logSystem,
			common.LogURLToken, r.RequestURI)
		next.ServeHTTP(w, r)
	})
}

// Authz middleware.
func (s *KiwiServer) authMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.security == nil || !s.security.IsEnabled() {
			next.ServeHTTP(w, r)
			return
		}

		user, err := s.security.Authorize(r.Header)
		if err != nil {
			s.Logger.Warn("Unauthorized access attempt", common.LogSystemToken, logSystem,
				common.LogURLToken, r.RequestURI)
			if _, ok := errors.Cause(err).(*security.ErrNoHeader); ok {
				respondUnAuth(w)
			} else {
				respondForbidden(w)
			}

			return
		}

		ctx := context.WithValue(r.Context(), ctxtUserName, user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// Gets current user out of context.
func getContextUser(request *http.Request) string {
	user, ok := request.Context().Value(ctxtUserName).(string)
	if !ok {
		return ""
	}

	return user
}

// Adapts system logger for panics recovery.
type recoveryLogger struct {
	logger common.ILoggerProvider
}

// Println logs recovered panic.
func (l *recoveryLogger) Println(v ...interface{}) {
	l.logger.Error("Recovered from panic", fmt.Errorf("%s", fmt.Sprint(v...)),
		common.LogSystemToken, logSystem)
}
