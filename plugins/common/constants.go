package common

const (
	// LogSystemToken describes system log entry.
	LogSystemToken = "system"
	// LogDeviceNameToken describes device name log entry.
	LogDeviceNameToken = "device_name"
	// LogDeviceIDToken describes device ID log entry.
	LogDeviceIDToken = "device_id"
	// LogDeviceCommandToken describes device command log entry.
	LogDeviceCommandToken = "device_cmd"
	// LogSensorIDToken describes kiwi sensor ID log entry.
	LogSensorIDToken = "sensor_id"
	// LogUserNameToken describes user name log entry.
	LogUserNameToken = "user"
	// LogURLToken describes URL log entry.
	LogURLToken = "url"
	// LogStatusToken describes response status log entry.
	LogStatusToken = "status"
	// LogTopicToken describes MQTT topic log entry.
	LogTopicToken = "topic"
)

const (
	// LogErrorToken describes error log entry.
	LogErrorToken = "error"
	// LogFileToken describes file log entry.
	LogFileToken = "file"
	// LogNameToken describes name log entry.
	LogNameToken = "name"
	// LogProviderToken describes provider log entry.
	LogProviderToken = "provider"
	// LogFieldToken describes field log entry.
	LogFieldToken = "field"
)
