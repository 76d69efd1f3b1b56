package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"flowshow/internal/adapters/console"
	"flowshow/internal/application/controller"
	"flowshow/internal/bootstrap"
	"flowshow/internal/config"
	"flowshow/internal/domain"
)

var (
	cfgFile      string
	documentPath string
	jsonOutput   bool
	showPanel    bool
	rt           *bootstrap.Runtime
)

var rootCmd = &cobra.Command{
	Use:   "flowshow-cli",
	Short: "Show and hide connectors by flow",
	Long: `flowshow-cli works on a flowshow document: a page of nodes where
connectors can be tagged with one of 10 flows and then shown or hidden
flow by flow.

Commands that act like the plugin panel (show, hide, tag, untag, rename)
launch the controller first, exactly as opening the plugin would, and then
replay one panel message. Use --panel to see what the controller sends back.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Skip initialization for help commands
		if cmd.Name() == "help" || cmd.Name() == "completion" {
			return nil
		}
		var err error
		rt, err = bootstrap.Open(cfgFile, func(c *config.Config) {
			if documentPath != "" {
				c.Document.Path = documentPath
			}
		})
		return err
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if rt == nil {
			return nil
		}
		err := rt.Close()
		rt = nil
		return err
	},
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", config.DefaultConfigFile, "config file path")
	rootCmd.PersistentFlags().StringVarP(&documentPath, "document", "d", "", "document path (overrides document.path)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "print panel messages as JSON")
	rootCmd.PersistentFlags().BoolVarP(&showPanel, "panel", "p", false, "print the messages the controller sends to the panel")
}

// launch creates a controller over the document, runs its start-up
// sequence, and returns it with the panel it posts to
func launch(ctx context.Context, cmd *cobra.Command) (*controller.Controller, *console.Panel, error) {
	var out io.Writer = io.Discard
	if showPanel {
		out = cmd.OutOrStdout()
	}
	panel := console.NewPanel(out, jsonOutput)
	c := controller.New(rt.Doc, panel, rt.ControllerOptions()...)
	if err := c.Launch(ctx); err != nil {
		return nil, nil, err
	}
	return c, panel, nil
}

// replay launches a controller and hands it intents in order
func replay(cmd *cobra.Command, intents ...domain.Intent) (*controller.Controller, error) {
	ctx := commandContext(cmd)
	c, _, err := launch(ctx, cmd)
	if err != nil {
		return nil, err
	}
	for _, in := range intents {
		if err := c.HandleIntent(ctx, in); err != nil {
			return nil, err
		}
	}
	return c, nil
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
