package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"flowshow/internal/domain"
)

var namesCmd = &cobra.Command{
	Use:   "names",
	Short: "List the flow names",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		names, err := flowNames()
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		for i, name := range names {
			fmt.Fprintf(out, "%2d  %s\n", i+1, name)
		}
		return nil
	},
}

var renameCmd = &cobra.Command{
	Use:   "rename <flow> <name>",
	Short: "Rename a flow",
	Long: `Rename one flow. The names are stored in the document as a single
comma-joined value, so a name cannot contain a comma. An empty name restores
the default.

Examples:
  flowshow-cli rename 1 "Checkout"
  flowshow-cli rename 1 ""`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		i, err := strconv.Atoi(args[0])
		if err != nil || i < 1 || i > domain.FlowCount {
			return fmt.Errorf("flow must be a number from 1 to %d, got %q", domain.FlowCount, args[0])
		}
		name := strings.TrimSpace(args[1])
		if strings.Contains(name, ",") {
			return fmt.Errorf("flow names cannot contain commas: %q", name)
		}
		if name == "" {
			name = domain.DefaultFlowName(i - 1)
		}

		names, err := flowNames()
		if err != nil {
			return err
		}
		names[i-1] = name

		if _, err := replay(cmd, domain.Intent{Type: domain.IntentSaveFlowNames, NameArray: names}); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Flow %d is now %q\n", i, name)
		return nil
	},
}

func flowNames() ([]string, error) {
	saved, ok, err := rt.Doc.DocumentData(domain.FlowNamesKey)
	if err != nil {
		return nil, err
	}
	return domain.ResolveFlowNames(saved, ok), nil
}

func init() {
	rootCmd.AddCommand(namesCmd)
	rootCmd.AddCommand(renameCmd)
}
