package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-home-io/kiwi/bridge"
	"github.com/go-home-io/kiwi/kiwi"
	"github.com/go-home-io/kiwi/plugins/common"
	"github.com/go-home-io/kiwi/providers"
	"github.com/go-home-io/kiwi/server"
	"github.com/go-home-io/kiwi/settings"
	"github.com/go-home-io/kiwi/systems"
	"github.com/go-home-io/kiwi/systems/fanout"
	"github.com/go-home-io/kiwi/systems/metrics"
	"github.com/go-home-io/kiwi/systems/mqtt"
	"github.com/go-home-io/kiwi/systems/registry"
	"github.com/go-home-io/kiwi/systems/security"
	"github.com/jessevdk/go-flags"
)

const shutdownTimeout = 5 * time.Second

func main() {
	options := &settings.StartUpOptions{}
	_, err := flags.Parse(options)
	if err != nil {
		os.Exit(1)
	}

	s, err := settings.Load(options)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %s\n", err.Error())
		os.Exit(1)
	}

	log := s.SystemLogger()
	log.Info("Starting kiwi bridge")

	client, err := kiwi.NewClient(&kiwi.ConstructClient{
		Settings: s.KiwiSettings(),
		Logger:   s.PluginLogger(systems.SysDevice, "kiwi"),
	})
	if err != nil {
		log.Fatal("Failed to create kiwi client", err)
	}

	fanOut := fanout.NewFanOut()
	reg := registry.NewRegistry(&registry.ConstructRegistry{
		Logger: s.PluginLogger(systems.SysGoHome, "registry"),
		FanOut: fanOut,
	})
	met := metrics.NewMetrics(nil)

	brg, err := bridge.NewBridge(&bridge.ConstructBridge{
		Client:   client,
		Registry: reg,
		Cron:     s.Cron(),
		Metrics:  met,
		Logger:   s.PluginLogger(systems.SysGoHome, "bridge"),
		Settings: s.BridgeSettings(),
		Include:  s.KiwiSettings().Include,
		Exclude:  s.KiwiSettings().Exclude,
	})
	if err != nil {
		log.Fatal("Failed to create bridge", err)
	}

	srv := server.NewServer(&server.ConstructServer{
		Settings:   s.APISettings(),
		Logger:     s.PluginLogger(systems.SysAPI, "http"),
		Registry:   reg,
		Controller: brg,
		Security: security.NewSecurityProvider(&security.ConstructSecurityProvider{
			Logger: log,
			Users:  s.APISettings().Users,
		}),
		Metrics: met,
	})

	var pub *mqtt.Publisher
	if s.MQTTSettings() != nil {
		pub = mqtt.NewPublisher(&mqtt.ConstructPublisher{
			Settings:   s.MQTTSettings(),
			Controller: brg,
			Registry:   reg,
			FanOut:     fanOut,
			Logger:     s.PluginLogger(systems.SysBus, "mqtt"),
		})
	}

	start(log, brg, srv, pub)

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	<-c

	log.Info("Received stop command, exiting")
	stop(log, brg, srv, pub)
	s.Cron().Stop()
}

// Starts all systems.
func start(log common.ILoggerProvider, brg *bridge.Bridge, srv providers.IServerProvider, pub *mqtt.Publisher) {
	if err := srv.Start(); err != nil {
		log.Fatal("Failed to start API server", err)
	}

	if pub != nil {
		if err := pub.Start(); err != nil {
			log.Error("Failed to start MQTT publisher", err)
		}
	}

	if err := brg.Start(); err != nil {
		log.Fatal("Failed to start bridge", err)
	}
}

// Stops all systems.
func stop(log common.ILoggerProvider, brg *bridge.Bridge, srv providers.IServerProvider, pub *mqtt.Publisher) {
	brg.Stop()

	if pub != nil {
		pub.Stop()
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Stop(ctx); err != nil {
		log.Error("Failed to stop API server", err)
	}
}
