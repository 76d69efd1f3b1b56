package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	mcpadapter "flowshow/internal/adapters/mcp"
	"flowshow/internal/application/controller"
	"flowshow/internal/bootstrap"
	"flowshow/internal/config"
)

func main() {
	cfgFile := flag.String("config", config.DefaultConfigFile, "config file path")
	document := flag.String("document", "", "document path (overrides document.path)")
	flag.Parse()

	rt, err := bootstrap.Open(*cfgFile, func(c *config.Config) {
		if *document != "" {
			c.Document.Path = *document
		}
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "flowshow-mcp: %v\n", err)
		os.Exit(1)
	}
	defer rt.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	panel := mcpadapter.NewTranscriptPanel()
	loop := controller.NewLoop(controller.New(rt.Doc, panel, rt.ControllerOptions()...), 16)
	go loop.Run(ctx)
	if err := loop.Launch(ctx); err != nil {
		rt.Log.Error().Err(err).Msg("launch failed")
		rt.Close()
		os.Exit(1)
	}

	sess := mcpadapter.NewSession(loop, rt.Doc, panel)

	mcpServer := server.NewMCPServer(
		"flowshow-mcp",
		"0.1.0",
		server.WithToolCapabilities(true),
	)

	mcpServer.AddTool(
		mcp.NewTool("ping",
			mcp.WithDescription("Health check, returns pong"),
		),
		func(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return mcp.NewToolResultText("pong"), nil
		},
	)

	mcpadapter.RegisterReadTools(mcpServer, sess)
	mcpadapter.RegisterWriteTools(mcpServer, sess)

	rt.Log.Info().Str("document", rt.Doc.Path()).Msg("serving on stdio")
	if err := server.ServeStdio(mcpServer); err != nil {
		rt.Log.Error().Err(err).Msg("stdio server stopped")
		rt.Close()
		os.Exit(1)
	}
}
