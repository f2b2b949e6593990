package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/go-home-io/kiwi/bridge"
	"github.com/go-home-io/kiwi/kiwi"
	"github.com/go-home-io/kiwi/mocks"
	"github.com/go-home-io/kiwi/plugins/device"
	"github.com/go-home-io/kiwi/providers"
	"github.com/go-home-io/kiwi/systems/metrics"
	"github.com/go-home-io/kiwi/systems/registry"
	"github.com/go-home-io/kiwi/systems/security"
	pkgerrors "github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type switchCall struct {
	id string
	on bool
}

type fakeController struct {
	sync.Mutex
	calls []switchCall
	err   error
}

func (c *fakeController) SetSwitch(id string, on bool) error {
	c.Lock()
	defer c.Unlock()
	c.calls = append(c.calls, switchCall{id: id, on: on})
	return c.err
}

func getRegistry() providers.IAccessoryRegistry {
	r := registry.NewRegistry(&registry.ConstructRegistry{Logger: mocks.FakeNewLogger(nil)})
	r.Register([]*device.Accessory{
		{ID: "acc-1", DisplayName: "Front door", SensorID: 1},
		{ID: "acc-2", DisplayName: "Back door", SensorID: 2, On: true},
	})

	return r
}

func getServer(ctrl *fakeController, users map[string]string) *KiwiServer {
	return NewServer(&ConstructServer{
		Settings:   &providers.APISettings{Port: 8080, Users: users},
		Logger:     mocks.FakeNewLogger(nil),
		Registry:   getRegistry(),
		Controller: ctrl,
		Security: security.NewSecurityProvider(&security.ConstructSecurityProvider{
			Logger: mocks.FakeNewLogger(nil),
			Users:  users,
		}),
		Metrics: metrics.NewMetrics(nil),
	})
}

func serve(t *testing.T, srv *KiwiServer, method string, url string,
	prep func(r *http.Request)) *httptest.ResponseRecorder {
	req, err := http.NewRequest(method, url, nil)
	require.NoError(t, err, "setup failed")
	if prep != nil {
		prep(req)
	}

	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)
	return rec
}

// Tests ping.
func TestPing(t *testing.T) {
	rec := serve(t, getServer(&fakeController{}, nil), http.MethodGet, "/pub/ping", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"OK"}`, rec.Body.String())
}

// Tests metrics exposure.
func TestMetricsEndpoint(t *testing.T) {
	rec := serve(t, getServer(&fakeController{}, nil), http.MethodGet, "/metrics", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.Contains(rec.Body.String(), "kiwi_bridge_accessories"))
}

// Tests devices list.
func TestGetDevices(t *testing.T) {
	rec := serve(t, getServer(&fakeController{}, nil), http.MethodGet, "/api/v1/device", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	data := make([]*device.Accessory, 0)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &data))
	require.Equal(t, 2, len(data))
	assert.Equal(t, "Back door", data[0].DisplayName)
	assert.Equal(t, "Front door", data[1].DisplayName)
}

// Tests single device.
func TestGetDevice(t *testing.T) {
	srv := getServer(&fakeController{}, nil)
	rec := serve(t, srv, http.MethodGet, "/api/v1/device/acc-2", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	data := &device.Accessory{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), data))
	assert.Equal(t, int64(2), data.SensorID)
	assert.True(t, data.On)

	rec = serve(t, srv, http.MethodGet, "/api/v1/device/wrong", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

// Tests commands.
func TestDeviceCommands(t *testing.T) {
	data := []struct {
		url     string
		code    int
		call    bool
		id      string
		state   bool
		problem string
	}{
		{url: "/api/v1/device/acc-1/on", code: http.StatusOK, call: true, id: "acc-1", state: true},
		{url: "/api/v1/device/acc-1/OFF", code: http.StatusOK, call: true, id: "acc-1", state: false},
		{url: "/api/v1/device/acc-1/toggle", code: http.StatusOK, call: true, id: "acc-1", state: true},
		{url: "/api/v1/device/acc-2/toggle", code: http.StatusOK, call: true, id: "acc-2", state: false},
		{url: "/api/v1/device/acc-1/brightness", code: http.StatusBadRequest, problem: "command brightness is unknown"},
		{url: "/api/v1/device/wrong/on", code: http.StatusNotFound, problem: "device wrong is unknown"},
	}

	for _, v := range data {
		ctrl := &fakeController{}
		rec := serve(t, getServer(ctrl, nil), http.MethodPost, v.url, nil)
		assert.Equal(t, v.code, rec.Code, v.url)
		if !v.call {
			assert.Equal(t, 0, len(ctrl.calls), v.url)
			resp := make(map[string]string)
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp), v.url)
			assert.Equal(t, v.problem, resp["problem"], v.url)
			continue
		}

		require.Equal(t, 1, len(ctrl.calls), v.url)
		assert.Equal(t, switchCall{id: v.id, on: v.state}, ctrl.calls[0], v.url)
	}
}

// Tests wrong method.
func TestCommandMethod(t *testing.T) {
	ctrl := &fakeController{}
	rec := serve(t, getServer(ctrl, nil), http.MethodGet, "/api/v1/device/acc-1/on", nil)
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	assert.Equal(t, 0, len(ctrl.calls))
}

// Tests failed open.
func TestCommandFailure(t *testing.T) {
	ctrl := &fakeController{err: errors.New("kiwi is down")}
	rec := serve(t, getServer(ctrl, nil), http.MethodPost, "/api/v1/device/acc-1/on", nil)
	assert.Equal(t, http.StatusBadGateway, rec.Code)

	ctrl = &fakeController{err: &kiwi.ErrAuthentication{Reason: "rejected"}}
	rec = serve(t, getServer(ctrl, nil), http.MethodPost, "/api/v1/device/acc-1/on", nil)
	assert.Equal(t, http.StatusBadGateway, rec.Code, "no cause")

	ctrl = &fakeController{err: &bridge.ErrUnknownAccessory{ID: "acc-1"}}
	rec = serve(t, getServer(ctrl, nil), http.MethodPost, "/api/v1/device/acc-1/on", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

// Tests errors mapping into HTTP statuses.
func TestErrorStatus(t *testing.T) {
	data := []struct {
		err  error
		code int
	}{
		{err: &ErrCommandFailed{ID: "1", Err: &kiwi.ErrRemoteRequest{Status: 404}}, code: http.StatusBadGateway},
		{err: &ErrCommandFailed{ID: "1", Err: &kiwi.ErrAuthentication{Reason: "rejected"}}, code: http.StatusBadGateway},
		{err: &ErrCommandFailed{ID: "1"}, code: http.StatusBadGateway},
		{err: &ErrUnknownDevice{ID: "1"}, code: http.StatusNotFound},
		{err: pkgerrors.Wrap(&ErrUnknownDevice{ID: "1"}, "wrapped"), code: http.StatusNotFound},
		{err: &ErrUnknownCommand{Name: "open"}, code: http.StatusBadRequest},
		{err: errors.New("other"), code: http.StatusInternalServerError},
	}

	for _, v := range data {
		assert.Equal(t, v.code, errorStatus(v.err), v.err.Error())
	}
}

// Tests basic auth.
func TestAuth(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("secret"), bcrypt.MinCost)
	require.NoError(t, err)

	ctrl := &fakeController{}
	srv := getServer(ctrl, map[string]string{"admin": string(hash)})

	rec := serve(t, srv, http.MethodGet, "/api/v1/device", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code, "no header")
	assert.Equal(t, `Basic realm="kiwi"`, rec.Header().Get("WWW-Authenticate"))

	rec = serve(t, srv, http.MethodPost, "/api/v1/device/acc-1/on", func(r *http.Request) {
		r.SetBasicAuth("admin", "wrong")
	})
	assert.Equal(t, http.StatusForbidden, rec.Code, "wrong password")
	assert.Equal(t, 0, len(ctrl.calls))

	rec = serve(t, srv, http.MethodPost, "/api/v1/device/acc-1/on", func(r *http.Request) {
		r.SetBasicAuth("admin", "secret")
	})
	assert.Equal(t, http.StatusOK, rec.Code, "correct password")
	assert.Equal(t, 1, len(ctrl.calls))

	rec = serve(t, srv, http.MethodGet, "/pub/ping", nil)
	assert.Equal(t, http.StatusOK, rec.Code, "public")
}

// Tests panics recovery.
func TestRecovery(t *testing.T) {
	logged := false
	srv := getServer(&fakeController{}, nil)
	srv.Logger = mocks.FakeNewLogger(func(s string) {
		if s == "Recovered from panic" {
			logged = true
		}
	})
	srv.registry = nil

	rec := serve(t, srv, http.MethodGet, "/api/v1/device", nil)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.True(t, logged)
}

// Tests server start and stop.
func TestStartStop(t *testing.T) {
	srv := NewServer(&ConstructServer{
		Settings:   &providers.APISettings{Port: 0},
		Logger:     mocks.FakeNewLogger(nil),
		Registry:   getRegistry(),
		Controller: &fakeController{},
	})

	require.NoError(t, srv.Start())
	assert.NoError(t, srv.Stop(context.Background()))
}
