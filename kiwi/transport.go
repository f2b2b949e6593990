package kiwi

import (
	"bytes"
	"context"
	"io"
	"io/ioutil"
	"net/http"
	"net/url"
	"strings"

	"github.com/go-home-io/kiwi/plugins/common"
	"github.com/pkg/errors"
)

// Upper limit for a response body we are willing to read.
const maxBodySize = 4 << 20

// Session source used by transport for re-authentication.
type authenticator interface {
	login(ctx context.Context) (*Session, error)
	authHeader() http.Header
}

// Single Kiwi API request.
type request struct {
	method        string
	path          string
	body          interface{}
	authenticated bool
	allowEmpty    bool
}

// Raw Kiwi API response.
type response struct {
	status int
	body   []byte
}

// Issues requests against Kiwi API base URL.
type transport struct {
	baseURL *url.URL
	client  *http.Client
	logger  common.ILoggerProvider
	auth    authenticator
}

// Creates a new transport.
func newTransport(baseURL string, client *http.Client, logger common.ILoggerProvider) (*transport, error) {
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}

	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, errors.Wrap(err, "invalid api url")
	}

	if u.Scheme == "" || u.Host == "" {
		return nil, &ErrInvalidSettings{Field: "apiUrl"}
	}

	return &transport{
		baseURL: u,
		client:  client,
		logger:  logger,
	}, nil
}

// Performs authenticated request.
// Request is sent with current session header. If Kiwi rejects the session,
// transport logs in once, re-sends the request once and returns whatever second attempt yields.
func (t *transport) do(ctx context.Context, r *request, out interface{}) error {
	resp, err := t.send(ctx, r, t.auth.authHeader())
	if err != nil {
		return err
	}

	if resp.status == http.StatusUnauthorized && r.authenticated {
		t.logger.Debug("Kiwi session was rejected, re-authenticating", common.LogURLToken, r.path)
		if _, err := t.auth.login(ctx); err != nil {
			return err
		}

		resp, err = t.send(ctx, r, t.auth.authHeader())
		if err != nil {
			return err
		}

		if resp.status == http.StatusUnauthorized {
			return &ErrAuthentication{Status: resp.status, Reason: "session rejected after re-authentication"}
		}
	}

	return resp.decode(r, out)
}

// Performs a single round trip.
func (t *transport) send(ctx context.Context, r *request, header http.Header) (*response, error) {
	req, err := t.newHTTPRequest(ctx, r, header)
	if err != nil {
		return nil, err
	}

	resp, err := t.client.Do(req)
	if err != nil {
		return nil, errors.Wrapf(err, "%s %s failed", r.method, r.path)
	}
	defer resp.Body.Close() // nolint: errcheck

	body, err := ioutil.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read %s %s response", r.method, r.path)
	}

	t.logger.Debug("Kiwi API responded", common.LogURLToken, r.path,
		common.LogStatusToken, http.StatusText(resp.StatusCode))

	return &response{
		status: resp.StatusCode,
		body:   body,
	}, nil
}

// Builds a new HTTP request.
// Body is encoded every time, so the same request could be re-sent.
func (t *transport) newHTTPRequest(ctx context.Context, r *request, header http.Header) (*http.Request, error) {
	var reader io.Reader
	if r.body != nil {
		data, err := encodeBody(r.body)
		if err != nil {
			return nil, errors.Wrap(err, "failed to encode request body")
		}
		reader = bytes.NewReader(data)
	}

	u := t.baseURL.ResolveReference(&url.URL{Path: r.path})
	req, err := http.NewRequest(r.method, u.String(), reader)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create request")
	}

	req = req.WithContext(ctx)
	req.Header.Set("Accept", "application/json")
	if r.body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	for k, v := range header {
		for _, vv := range v {
			req.Header.Add(k, vv)
		}
	}

	return req, nil
}

// Checks whether response has 2xx status.
func (r *response) isSuccess() bool {
	return r.status >= 200 && r.status < 300
}

// Returns trimmed body.
func (r *response) bodyString() string {
	return strings.TrimSpace(string(r.body))
}

// Validates response status and decodes body.
func (r *response) decode(req *request, out interface{}) error {
	if !r.isSuccess() {
		return &ErrRemoteRequest{Status: r.status, Body: r.bodyString()}
	}

	if out == nil {
		return nil
	}

	if req.allowEmpty && len(bytes.TrimSpace(r.body)) == 0 {
		return nil
	}

	return decodeBody(r.body, out)
}
