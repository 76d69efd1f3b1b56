package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"

	"flowshow/internal/adapters/tui"
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
		// the alternate screen owns the terminal
		if c.Log.File == "" {
			if dir, err := os.UserCacheDir(); err == nil {
				c.Log.File = filepath.Join(dir, "flowshow", "tui.log")
			}
		}
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer rt.Close()

	app := tui.NewApp(context.Background(), rt.Doc, tui.Options{
		Logger:    rt.Log,
		Collapsed: rt.Config.CollapsedSize(),
		Expanded:  rt.Config.ExpandedSize(),
	})

	p := tea.NewProgram(app, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		rt.Close()
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
