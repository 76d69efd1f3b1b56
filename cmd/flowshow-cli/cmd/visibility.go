package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"flowshow/internal/domain"
)

var includeLocked bool

var showCmd = &cobra.Command{
	Use:   "show [flow]",
	Short: "Show connectors",
	Long: `Show the connectors of one flow, or every connector when no flow is
given. Locked connectors are left alone unless --include-locked is set.

Examples:
  flowshow-cli show
  flowshow-cli show 3 --include-locked`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return setVisibility(cmd, args, true)
	},
}

var hideCmd = &cobra.Command{
	Use:   "hide [flow]",
	Short: "Hide connectors",
	Long: `Hide the connectors of one flow, or every connector when no flow is
given. Locked connectors are left alone unless --include-locked is set.

Examples:
  flowshow-cli hide
  flowshow-cli hide 2`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return setVisibility(cmd, args, false)
	},
}

func setVisibility(cmd *cobra.Command, args []string, show bool) error {
	var intents []domain.Intent
	if includeLocked {
		intents = append(intents, domain.Intent{Type: domain.IntentIncludeLockedTrue})
	}

	target := "all connectors"
	switch {
	case len(args) == 1:
		intents = append(intents, domain.Intent{Type: domain.IntentShowFlow, Show: show, Tag: args[0]})
		target = "flow " + args[0]
	case show:
		intents = append(intents, domain.Intent{Type: domain.IntentShowAll})
	default:
		intents = append(intents, domain.Intent{Type: domain.IntentHideAll})
	}

	if _, err := replay(cmd, intents...); err != nil {
		return err
	}

	verb := "Hid"
	if show {
		verb = "Showed"
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", verb, target)
	return nil
}

func init() {
	for _, c := range []*cobra.Command{showCmd, hideCmd} {
		c.Flags().BoolVarP(&includeLocked, "include-locked", "l", false, "also change locked connectors")
		rootCmd.AddCommand(c)
	}
}
