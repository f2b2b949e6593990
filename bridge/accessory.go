package bridge

import (
	"strconv"

	"github.com/go-home-io/kiwi/kiwi"
	"github.com/go-home-io/kiwi/plugins/device"
	"github.com/go-home-io/kiwi/utils"
)

const manufacturer = "Kiwi"

// Builds accessory out of the sensor.
func newAccessory(platformName string, sensor *kiwi.Sensor) *device.Accessory {
	return &device.Accessory{
		ID:           utils.AccessoryID(platformName, sensor.SensorID),
		DisplayName:  sensor.DisplayName(),
		SensorID:     sensor.SensorID,
		Manufacturer: manufacturer,
		Model:        string(sensor.HardwareType),
		SerialNumber: strconv.FormatInt(sensor.SensorID, 10),
	}
}
