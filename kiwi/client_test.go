package kiwi

import (
	"context"
	"encoding/json"
	"io/ioutil"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/go-home-io/kiwi/mocks"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	loginResponse = `{"status":"ok","result":{"session_key":"XYZ","session":{"session_key":"XYZ",
"enabled":"true","expires":"2026-10-20T10:00:00Z","user_id":42,"max_expires":"2026-11-19T10:00:00Z",
"username":"a","account_verification":1,"language":"en"}}}`

	sensorsResponse = `{"status":"ok","result":{"sensors":[
{"sensor_id":3,"sensor_name":null,"name":"Front door","customer_name":"Home","can_invite":true,
"address":{"street":"Main 1","postal_code":"10115","city":"Berlin","state":"","country":"DE","lat":52.5,"lng":13.4,"specifier":""},
"hardware_type":"UZ_HANDLE_KIWI_DOOR_HUB","hardware_variant":null,"highest_permission":"IS_HOST",
"installation_date":"2019-01-01","battery_step":null,
"owner":{"name":null,"user_id":null,"lastname":null,"username":null},"is_owner":true},
{"sensor_id":1,"name":"Garage","customer_name":null,"hardware_type":"UZ_KNOB_KIWI_DOOR_INTEGRATION","is_owner":false}],
"total_results":2,"page_size":25,"page_number":1,"order_by":"sensor_id","sort_by":"asc"}}`
)

// Fake Kiwi API.
type fakeAPI struct {
	sync.Mutex

	server *httptest.Server

	loginStatus  int
	loginBody    string
	listStatuses []int
	openStatus   int
	openBody     string
	validKey     string

	loginCalls int
	listCalls  int
	openCalls  int

	listHeaders  []string
	loginPayload map[string]interface{}
	openPaths    []string
}

func newFakeAPI() *fakeAPI {
	f := &fakeAPI{
		loginStatus: http.StatusOK,
		loginBody:   loginResponse,
		openStatus:  http.StatusOK,
		openBody:    `{"status":"ok"}`,
		validKey:    "XYZ",
	}

	f.server = httptest.NewServer(http.HandlerFunc(f.handle))
	return f
}

func (f *fakeAPI) handle(w http.ResponseWriter, r *http.Request) {
	f.Lock()
	defer f.Unlock()

	switch {
	case r.Method == http.MethodPost && r.URL.Path == "/v1/session":
		f.loginCalls++
		body, _ := ioutil.ReadAll(r.Body)
		f.loginPayload = make(map[string]interface{})
		json.Unmarshal(body, &f.loginPayload) // nolint: errcheck
		w.WriteHeader(f.loginStatus)
		w.Write([]byte(f.loginBody)) // nolint: errcheck
	case r.Method == http.MethodGet && r.URL.Path == "/v1/sensors":
		f.listCalls++
		key := r.Header.Get("session-key")
		f.listHeaders = append(f.listHeaders, key)
		status := http.StatusOK
		if len(f.listStatuses) >= f.listCalls {
			status = f.listStatuses[f.listCalls-1]
		} else if key != f.validKey {
			status = http.StatusUnauthorized
		}
		w.WriteHeader(status)
		if status == http.StatusOK {
			w.Write([]byte(sensorsResponse)) // nolint: errcheck
		}
	case r.Method == http.MethodPost && strings.HasPrefix(r.URL.Path, "/v1/sensors/"):
		f.openCalls++
		f.openPaths = append(f.openPaths, r.URL.Path)
		if r.Header.Get("session-key") != f.validKey {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.WriteHeader(f.openStatus)
		w.Write([]byte(f.openBody)) // nolint: errcheck
	default:
		w.WriteHeader(http.StatusNotFound)
	}
}

func (f *fakeAPI) close() {
	f.server.Close()
}

func getClient(t *testing.T, f *fakeAPI) *Client {
	c, err := NewClient(&ConstructClient{
		Settings: &Settings{
			Username: "a",
			Password: "b",
			APIURL:   f.server.URL,
			Timeout:  5,
		},
		Logger: mocks.FakeNewLogger(nil),
	})
	require.NoError(t, err, "client")
	return c
}

// Tests explicit login.
func TestLogin(t *testing.T) {
	f := newFakeAPI()
	defer f.close()
	c := getClient(t, f)

	assert.Nil(t, c.Session(), "session before login")

	s, err := c.Login(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "XYZ", s.SessionKey, "key")
	assert.Equal(t, int64(42), s.UserID, "user id")
	assert.Equal(t, "en", s.Language, "language")
	assert.Equal(t, 1, s.AccountVerification, "verification")
	assert.Equal(t, "XYZ", c.Session().SessionKey, "stored session")
	assert.Equal(t, "a", f.loginPayload["username"], "username")
	assert.Equal(t, "b", f.loginPayload["password"], "password")
}

// Tests that session key from result is used if session doesn't have one.
func TestLoginKeyFromResult(t *testing.T) {
	f := newFakeAPI()
	defer f.close()
	f.loginBody = `{"status":"ok","result":{"session_key":"ABC","session":{"user_id":1}}}`
	c := getClient(t, f)

	s, err := c.Login(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "ABC", s.SessionKey)
}

// Tests failed login keeps previous session.
func TestLoginFailureKeepsSession(t *testing.T) {
	f := newFakeAPI()
	defer f.close()
	c := getClient(t, f)

	_, err := c.Login(context.Background())
	require.NoError(t, err)

	f.loginStatus = http.StatusForbidden
	f.loginBody = `{"status":"error"}`
	_, err = c.Login(context.Background())
	require.Error(t, err)

	authErr, ok := err.(*ErrAuthentication)
	require.True(t, ok, "error type")
	assert.Equal(t, http.StatusForbidden, authErr.Status, "status")
	assert.Equal(t, "XYZ", c.Session().SessionKey, "session")
}

// Tests failed login from unauthenticated state.
func TestLoginFailureUnauthenticated(t *testing.T) {
	data := []struct {
		status int
		body   string
	}{
		{http.StatusUnauthorized, `{"status":"error"}`},
		{http.StatusOK, `not json`},
		{http.StatusOK, `{"status":"ok"}`},
		{http.StatusOK, `{"status":"ok","result":{"session":{"user_id":1}}}`},
	}

	for _, v := range data {
		f := newFakeAPI()
		f.loginStatus = v.status
		f.loginBody = v.body
		c := getClient(t, f)

		_, err := c.Login(context.Background())
		f.close()

		require.Error(t, err, v.body)
		_, ok := err.(*ErrAuthentication)
		assert.True(t, ok, v.body)
		assert.Nil(t, c.Session(), v.body)
	}
}

// Tests sensors list on a session-less client.
func TestGetSensorListReAuthenticates(t *testing.T) {
	f := newFakeAPI()
	defer f.close()
	c := getClient(t, f)

	list, err := c.GetSensorList(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, f.listCalls, "list calls")
	assert.Equal(t, 1, f.loginCalls, "login calls")
	assert.Equal(t, []string{"", "XYZ"}, f.listHeaders, "headers")

	assert.Equal(t, 2, list.Count, "count")
	require.Equal(t, 2, len(list.Sensors), "sensors")
	assert.Equal(t, int64(3), list.Sensors[0].SensorID, "order")
	assert.Equal(t, int64(1), list.Sensors[1].SensorID, "order")
	assert.Equal(t, "Home", list.Sensors[0].DisplayName(), "customer name")
	assert.Equal(t, "Garage", list.Sensors[1].DisplayName(), "name")
	assert.Equal(t, HardwareDoorHub, list.Sensors[0].HardwareType, "hardware")
	assert.Equal(t, HardwareKnobIntegration, list.Sensors[1].HardwareType, "hardware")
	assert.Equal(t, PermissionHost, list.Sensors[0].HighestPermission, "permission")
	assert.Equal(t, "10115", list.Sensors[0].Address.PostalCode, "address")
	assert.Nil(t, list.Sensors[0].Owner.UserID, "owner")
	assert.True(t, list.Sensors[0].IsOwner, "is owner")
}

// Tests that existing session is re-used.
func TestGetSensorListWithSession(t *testing.T) {
	f := newFakeAPI()
	defer f.close()
	c := getClient(t, f)

	_, err := c.Login(context.Background())
	require.NoError(t, err)

	_, err = c.GetSensorList(context.Background())
	require.NoError(t, err)
	_, err = c.GetSensorList(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, f.listCalls, "list calls")
	assert.Equal(t, 1, f.loginCalls, "login calls")
	assert.Equal(t, []string{"XYZ", "XYZ"}, f.listHeaders, "headers")
}

// Tests that second 401 is not retried.
func TestGetSensorListDoubleUnauthorized(t *testing.T) {
	f := newFakeAPI()
	defer f.close()
	f.listStatuses = []int{http.StatusUnauthorized, http.StatusUnauthorized, http.StatusOK}
	c := getClient(t, f)

	_, err := c.GetSensorList(context.Background())
	require.Error(t, err)

	_, ok := err.(*ErrAuthentication)
	assert.True(t, ok, "error type")
	assert.Equal(t, 2, f.listCalls, "list calls")
	assert.Equal(t, 1, f.loginCalls, "login calls")
}

// Tests that failed re-authentication is surfaced without resending.
func TestGetSensorListReLoginFails(t *testing.T) {
	f := newFakeAPI()
	defer f.close()
	f.loginStatus = http.StatusUnauthorized
	c := getClient(t, f)

	_, err := c.GetSensorList(context.Background())
	require.Error(t, err)

	_, ok := err.(*ErrAuthentication)
	assert.True(t, ok, "error type")
	assert.Equal(t, 1, f.listCalls, "list calls")
	assert.Equal(t, 1, f.loginCalls, "login calls")
}

// Tests non-401 errors are surfaced immediately.
func TestGetSensorListRemoteError(t *testing.T) {
	f := newFakeAPI()
	defer f.close()
	f.listStatuses = []int{http.StatusInternalServerError}
	c := getClient(t, f)

	_, err := c.GetSensorList(context.Background())
	require.Error(t, err)

	remoteErr, ok := err.(*ErrRemoteRequest)
	require.True(t, ok, "error type")
	assert.Equal(t, http.StatusInternalServerError, remoteErr.Status, "status")
	assert.Equal(t, 1, f.listCalls, "list calls")
	assert.Equal(t, 0, f.loginCalls, "login calls")
}

// Tests malformed list response.
func TestGetSensorListMalformed(t *testing.T) {
	data := []string{
		`[1,2]`,
		`{"status":"ok"}`,
		`{"status":"ok","result":{"sensors":"wrong"}}`,
		`{`,
	}

	for _, v := range data {
		body := v
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(body)) // nolint: errcheck
		}))

		c, err := NewClient(&ConstructClient{
			Settings: &Settings{Username: "a", Password: "b", APIURL: server.URL},
			Logger:   mocks.FakeNewLogger(nil),
		})
		require.NoError(t, err)

		_, err = c.GetSensorList(context.Background())
		server.Close()

		require.Error(t, err, v)
		_, ok := err.(*ErrMalformedResponse)
		assert.True(t, ok, v)
	}
}

// Tests that empty sensors list is not nil.
func TestGetSensorListEmpty(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status":"ok","result":{"total_results":0}}`)) // nolint: errcheck
	}))
	defer server.Close()

	c, err := NewClient(&ConstructClient{
		Settings: &Settings{Username: "a", Password: "b", APIURL: server.URL},
		Logger:   mocks.FakeNewLogger(nil),
	})
	require.NoError(t, err)

	list, err := c.GetSensorList(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, list.Sensors)
	assert.Equal(t, 0, len(list.Sensors))
}

// Tests open sensor.
func TestOpenSensor(t *testing.T) {
	f := newFakeAPI()
	defer f.close()
	c := getClient(t, f)

	res, err := c.OpenSensor(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, "ok", res.Status, "status")
	assert.Equal(t, 2, f.openCalls, "open calls")
	assert.Equal(t, 1, f.loginCalls, "login calls")
	assert.Equal(t, "/v1/sensors/3/act/open", f.openPaths[1], "path")
}

// Tests open sensor with empty acknowledgement.
func TestOpenSensorEmptyBody(t *testing.T) {
	f := newFakeAPI()
	defer f.close()
	f.openBody = ""
	c := getClient(t, f)

	res, err := c.OpenSensor(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, "", res.Status)
}

// Tests open of unknown sensor.
func TestOpenSensorNotFound(t *testing.T) {
	f := newFakeAPI()
	defer f.close()
	f.openStatus = http.StatusNotFound
	f.openBody = `{"status":"error","message":"sensor not found"}`
	c := getClient(t, f)

	_, err := c.OpenSensor(context.Background(), 999)
	require.Error(t, err)

	remoteErr, ok := err.(*ErrRemoteRequest)
	require.True(t, ok, "error type")
	assert.Equal(t, http.StatusNotFound, remoteErr.Status, "status")
	assert.Contains(t, remoteErr.Body, "sensor not found", "body")
}

// Tests network errors are surfaced without retries.
func TestNetworkError(t *testing.T) {
	f := newFakeAPI()
	c := getClient(t, f)
	f.close()

	_, err := c.GetSensorList(context.Background())
	require.Error(t, err)

	_, isAuth := errors.Cause(err).(*ErrAuthentication)
	_, isRemote := errors.Cause(err).(*ErrRemoteRequest)
	assert.False(t, isAuth, "auth error")
	assert.False(t, isRemote, "remote error")
}

// Tests cancelled context.
func TestCancelledContext(t *testing.T) {
	f := newFakeAPI()
	defer f.close()
	c := getClient(t, f)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.GetSensorList(ctx)
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled), "cancelled")
	assert.Equal(t, 0, f.loginCalls, "login calls")
}

// Tests client settings validation.
func TestNewClientErrors(t *testing.T) {
	_, err := NewClient(&ConstructClient{Logger: mocks.FakeNewLogger(nil)})
	assert.Error(t, err, "nil settings")

	_, err = NewClient(&ConstructClient{
		Settings: &Settings{Password: "b"},
		Logger:   mocks.FakeNewLogger(nil),
	})
	assert.Error(t, err, "no username")

	_, err = NewClient(&ConstructClient{
		Settings: &Settings{Username: "a", APIURL: "not-a-url"},
		Logger:   mocks.FakeNewLogger(nil),
	})
	assert.Error(t, err, "wrong url")

	c, err := NewClient(&ConstructClient{
		Settings: &Settings{Username: "a"},
		Logger:   mocks.FakeNewLogger(nil),
	})
	require.NoError(t, err, "defaults")
	assert.Equal(t, "api.kiwi.ki", c.transport.baseURL.Host, "default url")
	assert.Equal(t, DefaultTimeout, c.transport.client.Timeout, "default timeout")
}
