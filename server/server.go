// Package server contains HTTP API of the bridge.
package server

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/go-home-io/kiwi/plugins/common"
	"github.com/go-home-io/kiwi/plugins/device"
	"github.com/go-home-io/kiwi/providers"
	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
)

const (
	// Logger system representation.
	logSystem = "server"

	readTimeout  = 10 * time.Second
	writeTimeout = 30 * time.Second
)

// ConstructServer has all data required for a new API server.
type ConstructServer struct {
	Settings   *providers.APISettings
	Logger     common.ILoggerProvider
	Registry   providers.IAccessoryRegistry
	Controller device.ISwitchController
	Security   providers.ISecurityProvider
	Metrics    providers.IMetricsProvider
}

// KiwiServer describes HTTP API server.
type KiwiServer struct {
	Settings *providers.APISettings
	Logger   common.ILoggerProvider

	registry   providers.IAccessoryRegistry
	controller device.ISwitchController
	security   providers.ISecurityProvider
	metrics    providers.IMetricsProvider

	httpServer *http.Server
}

// NewServer constructs a new API server.
func NewServer(ctor *ConstructServer) *KiwiServer {
	s := &KiwiServer{
		Settings:   ctor.Settings,
		Logger:     ctor.Logger,
		registry:   ctor.Registry,
		controller: ctor.Controller,
		security:   ctor.Security,
		metrics:    ctor.Metrics,
	}

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", s.Settings.Port),
		Handler:      s.Router(),
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
	}

	return s
}

// Start binds API port and serves requests in background.
func (s *KiwiServer) Start() error {
	ln, err := net.Listen("tcp", s.httpServer.Addr)
	if err != nil {
		s.Logger.Error("Failed to start server", err, common.LogSystemToken, logSystem)
		return err
	}

	go func() {
		err := s.httpServer.Serve(ln)
		if err != nil && err != http.ErrServerClosed {
			s.Logger.Error("Server stopped unexpectedly", err, common.LogSystemToken, logSystem)
		}
	}()

	s.Logger.Info(fmt.Sprintf("Started server on port %d", s.Settings.Port),
		common.LogSystemToken, logSystem)
	return nil
}

// Stop gracefully shuts down the server.
func (s *KiwiServer) Stop(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// Router returns root API handler.
func (s *KiwiServer) Router() http.Handler {
	router := mux.NewRouter()
	s.registerAPI(router)

	return handlers.RecoveryHandler(handlers.RecoveryLogger(&recoveryLogger{logger: s.Logger}))(router)
}

// All API registration.
func (s *KiwiServer) registerAPI(router *mux.Router) {
	publicRouter := router.PathPrefix("/pub").Subrouter()
	publicRouter.HandleFunc("/ping", s.ping).Methods(http.MethodGet)

	if s.metrics != nil {
		router.Handle("/metrics", s.metrics.Handler()).Methods(http.MethodGet)
	}

	apiRouter := router.PathPrefix(routeAPI).Subrouter()
	apiRouter.HandleFunc("/device", s.getDevices).Methods(http.MethodGet)
	apiRouter.HandleFunc(fmt.Sprintf("/device/{%s}", urlDeviceID), s.getDevice).Methods(http.MethodGet)
	apiRouter.HandleFunc(fmt.Sprintf("/device/{%s}/{%s}", urlDeviceID, urlCommandName),
		s.deviceCommand).Methods(http.MethodPost)
	apiRouter.Use(s.logMiddleware)
	apiRouter.Use(s.authMiddleware)
}
