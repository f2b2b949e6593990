package kiwi

// HardwareType describes Kiwi sensor hardware.
type HardwareType string

const (
	// HardwareDoorHub describes a handle mounted door hub.
	HardwareDoorHub HardwareType = "UZ_HANDLE_KIWI_DOOR_HUB"
	// HardwareKnobIntegration describes a knob door integration.
	HardwareKnobIntegration HardwareType = "UZ_KNOB_KIWI_DOOR_INTEGRATION"
)

// Permission describes the highest permission the user holds on a sensor.
type Permission string

const (
	// PermissionHost describes sensor host permission.
	PermissionHost Permission = "IS_HOST"
)

// Credentials are used to create new sessions.
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Session describes an authenticated Kiwi session.
type Session struct {
	SessionKey          string `json:"sessionKey"`
	Enabled             string `json:"enabled"`
	Expires             string `json:"expires"`
	MaxExpires          string `json:"maxExpires"`
	UserID              int64  `json:"userId"`
	Username            string `json:"username"`
	AccountVerification int    `json:"accountVerification"`
	Language            string `json:"language"`
}

// Address describes sensor installation address.
type Address struct {
	Street     string  `json:"street"`
	PostalCode string  `json:"postalCode"`
	City       string  `json:"city"`
	State      string  `json:"state"`
	Country    string  `json:"country"`
	Lat        float64 `json:"lat"`
	Lng        float64 `json:"lng"`
	Specifier  string  `json:"specifier"`
}

// Owner describes sensor owner.
// Kiwi returns nulls for sensors shared with the user.
type Owner struct {
	Name     *string `json:"name"`
	UserID   *int64  `json:"userId"`
	Lastname *string `json:"lastname"`
	Username *string `json:"username"`
}

// Sensor describes a single Kiwi smart-lock sensor.
type Sensor struct {
	SensorID          int64        `json:"sensorId"`
	SensorName        *string      `json:"sensorName"`
	Name              string       `json:"name"`
	CustomerName      *string      `json:"customerName"`
	CanInvite         bool         `json:"canInvite"`
	Address           Address      `json:"address"`
	HardwareType      HardwareType `json:"hardwareType"`
	HardwareVariant   *string      `json:"hardwareVariant"`
	HighestPermission Permission   `json:"highestPermission"`
	InstallationDate  string       `json:"installationDate"`
	BatteryStep       *int         `json:"batteryStep"`
	Owner             Owner        `json:"owner"`
	IsOwner           bool         `json:"isOwner"`
}

// DisplayName returns customer assigned name if it's set, otherwise sensor name.
func (s *Sensor) DisplayName() string {
	if s.CustomerName != nil && *s.CustomerName != "" {
		return *s.CustomerName
	}

	return s.Name
}

// SensorList contains the first page of known sensors.
type SensorList struct {
	Count   int
	Sensors []*Sensor
}

// OpenSensorResult contains open command acknowledgement.
type OpenSensorResult struct {
	Status string `json:"status"`
}

// Wire envelopes, after keys normalization.
type createSessionResponse struct {
	Status string               `json:"status"`
	Result *createSessionResult `json:"result"`
}

type createSessionResult struct {
	SessionKey string   `json:"sessionKey"`
	Session    *Session `json:"session"`
}

type sensorListResponse struct {
	Status string            `json:"status"`
	Result *sensorListResult `json:"result"`
}

type sensorListResult struct {
	Sensors      []*Sensor `json:"sensors"`
	TotalResults int       `json:"totalResults"`
	PageSize     int       `json:"pageSize"`
	PageNumber   int       `json:"pageNumber"`
	OrderBy      string    `json:"orderBy"`
	SortBy       string    `json:"sortBy"`
}
