package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"flowshow/internal/domain"
)

var tagCmd = &cobra.Command{
	Use:   "tag <flow> [node-id...]",
	Short: "Tag the selected connectors with a flow",
	Long: `Tag the selected connectors with a flow from 1 to 10. When node IDs are
given they replace the selection first and must all be connectors.

Examples:
  flowshow-cli tag 4
  flowshow-cli tag 2 3f2a... 9bc1...`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := selectConnectors(args[1:]); err != nil {
			return err
		}
		c, err := replay(cmd, domain.Intent{Type: domain.IntentTagArrows, Tag: args[0]})
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Tagged %d connectors with flow %s\n", len(c.State().SelectedArrows), args[0])
		return nil
	},
}

var untagCmd = &cobra.Command{
	Use:   "untag [node-id...]",
	Short: "Clear the flow of the selected connectors",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := selectConnectors(args); err != nil {
			return err
		}
		c, err := replay(cmd, domain.Intent{Type: domain.IntentTagArrowsNull})
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Cleared the flow of %d connectors\n", len(c.State().SelectedArrows))
		return nil
	},
}

var flowCmd = &cobra.Command{
	Use:   "flow",
	Short: "Print the flow of the selection",
	Long: `Print the flow the selected connectors share: a tag from 1 to 10, MIXED
when they disagree, or NONE when no connector is selected.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, _, err := launch(commandContext(cmd), cmd)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), c.SelectedFlow())
		return nil
	},
}

func selectConnectors(ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	if err := requireConnectors(ids); err != nil {
		return err
	}
	return rt.Doc.SetSelection(ids)
}

func init() {
	rootCmd.AddCommand(tagCmd)
	rootCmd.AddCommand(untagCmd)
	rootCmd.AddCommand(flowCmd)
}
