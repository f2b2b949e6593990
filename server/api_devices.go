package server

import (
	"net/http"

	"github.com/gorilla/mux"
)

// Returns all exposed devices.
func (s *KiwiServer) getDevices(writer http.ResponseWriter, _ *http.Request) {
	respond(writer, s.registry.GetAccessories())
}

// Returns single device.
func (s *KiwiServer) getDevice(writer http.ResponseWriter, request *http.Request) {
	id := mux.Vars(request)[string(urlDeviceID)]
	acc := s.registry.GetAccessory(id)
	if nil == acc {
		err := &ErrUnknownDevice{ID: id}
		respondError(writer, errorStatus(err), err.Error())
		return
	}

	respond(writer, acc)
}

// Executes device command.
func (s *KiwiServer) deviceCommand(writer http.ResponseWriter, request *http.Request) {
	vars := mux.Vars(request)
	respondOkError(writer, s.commandInvokeDeviceCommand(getContextUser(request),
		vars[string(urlDeviceID)], vars[string(urlCommandName)]))
}
