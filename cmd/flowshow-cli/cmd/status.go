package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"flowshow/internal/domain"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Summarise the document",
	Long: `Print the document path, node and connector counts, how many connectors
each flow holds and how many of them are hidden, and the flow of the
current selection.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		nodes, err := rt.Doc.ListNodes()
		if err != nil {
			return err
		}
		names, err := flowNames()
		if err != nil {
			return err
		}
		c, _, err := launch(commandContext(cmd), cmd)
		if err != nil {
			return err
		}

		var total, hidden, locked [domain.FlowCount + 1]int
		connectors := domain.Connectors(nodes)
		for _, a := range connectors {
			tag, err := rt.Doc.NodeData(a.ID, domain.FlowTagKey)
			if err != nil {
				return err
			}
			slot := 0
			if i, err := strconv.Atoi(tag); err == nil && i >= 1 && i <= domain.FlowCount {
				slot = i
			}
			total[slot]++
			if !a.Visible {
				hidden[slot]++
			}
			if a.Locked {
				locked[slot]++
			}
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Document:   %s\n", rt.Doc.Path())
		fmt.Fprintf(out, "Nodes:      %d\n", len(nodes))
		fmt.Fprintf(out, "Connectors: %d (%d untagged)\n", len(connectors), total[0])
		fmt.Fprintf(out, "Selection:  %d connectors, flow %s\n", len(c.State().SelectedArrows), c.SelectedFlow())
		fmt.Fprintln(out)
		for i, name := range names {
			slot := i + 1
			if total[slot] == 0 {
				continue
			}
			fmt.Fprintf(out, "%2d  %-20s %d connectors, %d hidden, %d locked\n",
				slot, name, total[slot], hidden[slot], locked[slot])
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
