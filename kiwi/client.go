// Package kiwi contains Kiwi cloud API client.
//
// Client keeps a single session in memory. Session is created on demand:
// whenever Kiwi rejects a request with 401, client logs in once and re-sends
// the request once. Any other failure is returned to the caller as is.
//
//	client, err := kiwi.NewClient(&kiwi.ConstructClient{Settings: settings, Logger: logger})
//	list, err := client.GetSensorList(ctx)
//	_, err = client.OpenSensor(ctx, list.Sensors[0].SensorID)
package kiwi

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-home-io/kiwi/plugins/common"
)

const (
	// DefaultAPIURL is Kiwi production API.
	DefaultAPIURL = "https://api.kiwi.ki"
	// DefaultTimeout is applied to every request if nothing else is configured.
	DefaultTimeout = 15 * time.Second

	sensorsPath    = "v1/sensors"
	openSensorPath = "v1/sensors/%d/act/open"
)

// IClient defines Kiwi API client.
type IClient interface {
	Login(ctx context.Context) (*Session, error)
	GetSensorList(ctx context.Context) (*SensorList, error)
	OpenSensor(ctx context.Context, sensorID int64) (*OpenSensorResult, error)
}

// Settings has data required for accessing Kiwi API.
type Settings struct {
	Username string   `yaml:"username" validate:"required"`
	Password string   `yaml:"password" validate:"required"`
	APIURL   string   `yaml:"apiUrl" validate:"required,url" default:"https://api.kiwi.ki"`
	Timeout  int      `yaml:"timeout" validate:"gte=1,lte=300" default:"15"`
	Include  []string `yaml:"include" validate:"dive,glob"`
	Exclude  []string `yaml:"exclude" validate:"dive,glob"`
}

// ConstructClient has data required for a new client.
type ConstructClient struct {
	Settings   *Settings
	Logger     common.ILoggerProvider
	HTTPClient *http.Client
}

// Client implements IClient.
type Client struct {
	transport *transport
	session   *sessionManager
}

// NewClient constructs a new Kiwi API client.
// If no HTTP client was supplied, a new one with configured timeout is used.
func NewClient(ctor *ConstructClient) (*Client, error) {
	if ctor.Settings == nil {
		return nil, &ErrInvalidSettings{Field: "settings"}
	}

	if ctor.Settings.Username == "" {
		return nil, &ErrInvalidSettings{Field: "username"}
	}

	apiURL := ctor.Settings.APIURL
	if apiURL == "" {
		apiURL = DefaultAPIURL
	}

	httpClient := ctor.HTTPClient
	if httpClient == nil {
		timeout := time.Duration(ctor.Settings.Timeout) * time.Second
		if timeout <= 0 {
			timeout = DefaultTimeout
		}
		httpClient = &http.Client{Timeout: timeout}
	}

	t, err := newTransport(apiURL, httpClient, ctor.Logger)
	if err != nil {
		return nil, err
	}

	s := &sessionManager{
		credentials: Credentials{
			Username: ctor.Settings.Username,
			Password: ctor.Settings.Password,
		},
		transport: t,
		logger:    ctor.Logger,
	}
	t.auth = s

	return &Client{
		transport: t,
		session:   s,
	}, nil
}

// Login creates a new session explicitly.
// It's not required to call this method, session is created on first 401 anyway.
func (c *Client) Login(ctx context.Context) (*Session, error) {
	return c.session.login(ctx)
}

// Session returns a copy of the current session or nil.
func (c *Client) Session() *Session {
	return c.session.current()
}

// GetSensorList returns sensors from the first page, preserving Kiwi ordering.
func (c *Client) GetSensorList(ctx context.Context) (*SensorList, error) {
	data := &sensorListResponse{}
	err := c.transport.do(ctx, &request{
		method:        http.MethodGet,
		path:          sensorsPath,
		authenticated: true,
	}, data)
	if err != nil {
		return nil, err
	}

	if data.Result == nil {
		return nil, &ErrMalformedResponse{Reason: "result is missing"}
	}

	sensors := data.Result.Sensors
	if sensors == nil {
		sensors = make([]*Sensor, 0)
	}

	return &SensorList{
		Count:   data.Result.TotalResults,
		Sensors: sensors,
	}, nil
}

// OpenSensor sends open command to the sensor.
func (c *Client) OpenSensor(ctx context.Context, sensorID int64) (*OpenSensorResult, error) {
	data := &OpenSensorResult{}
	err := c.transport.do(ctx, &request{
		method:        http.MethodPost,
		path:          fmt.Sprintf(openSensorPath, sensorID),
		authenticated: true,
		allowEmpty:    true,
	}, data)
	if err != nil {
		return nil, err
	}

	return data, nil
}
