package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"flowshow/internal/adapters/bridge"
	"flowshow/internal/application/controller"
	"flowshow/internal/bootstrap"
	"flowshow/internal/config"
)

func main() {
	cfgFile := flag.String("config", config.DefaultConfigFile, "config file path")
	document := flag.String("document", "", "document path (overrides document.path)")
	addr := flag.String("addr", "", "listen address (overrides bridge.addr)")
	flag.Parse()

	rt, err := bootstrap.Open(*cfgFile, func(c *config.Config) {
		if *document != "" {
			c.Document.Path = *document
		}
		if *addr != "" {
			c.Bridge.Addr = *addr
		}
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "flowshow-bridge: %v\n", err)
		os.Exit(1)
	}
	defer rt.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	hub := bridge.NewHub(rt.Log)
	loop := controller.NewLoop(controller.New(rt.Doc, hub, rt.ControllerOptions()...), 64)
	go loop.Run(ctx)

	srv := bridge.New(bridge.Config{
		Addr:     rt.Config.Bridge.Addr,
		AllowAll: rt.Config.Bridge.AllowAllOrigins,
	}, loop, hub, rt.Doc, rt.Log)

	errc := make(chan error, 1)
	go func() { errc <- srv.Start() }()

	select {
	case err = <-errc:
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		err = srv.Shutdown(shutdownCtx)
		cancel()
	}
	if err != nil {
		rt.Log.Error().Err(err).Msg("bridge stopped")
		rt.Close()
		os.Exit(1)
	}
}
