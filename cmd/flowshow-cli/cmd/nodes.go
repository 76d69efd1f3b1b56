package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"flowshow/internal/application"
	"flowshow/internal/domain"
)

var (
	nodesKind  string
	nodesMatch string
)

var nodesCmd = &cobra.Command{
	Use:   "nodes",
	Short: "List the nodes of the page",
	Long: `List every node with its ID, kind and name. Connectors also show their
flow tag. Markers: * selected, L locked, H hidden.

Examples:
  flowshow-cli nodes
  flowshow-cli nodes --kind connector
  flowshow-cli nodes --match checkout`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		filter, err := application.NewNodeFilter(nodesKind, nodesMatch)
		if err != nil {
			return err
		}

		nodes, err := rt.Doc.ListNodes()
		if err != nil {
			return err
		}
		selection, err := rt.Doc.Selection()
		if err != nil {
			return err
		}
		selected := make(map[string]bool, len(selection))
		for _, n := range selection {
			selected[n.ID] = true
		}

		out := cmd.OutOrStdout()
		for _, n := range filter.Apply(nodes) {
			tag := ""
			if n.Kind == domain.NodeKindConnector {
				if tag, err = rt.Doc.NodeData(n.ID, domain.FlowTagKey); err != nil {
					return err
				}
				if tag == "" {
					tag = "-"
				}
			}
			fmt.Fprintf(out, "%s %s  %-9s  %-3s %s\n", markers(n, selected[n.ID]), n.ID, n.Kind, tag, n.Name)
		}
		return nil
	},
}

func markers(n domain.Node, selected bool) string {
	m := []byte("   ")
	if selected {
		m[0] = '*'
	}
	if n.Locked {
		m[1] = 'L'
	}
	if !n.Visible {
		m[2] = 'H'
	}
	return string(m)
}

var addCmd = &cobra.Command{
	Use:   "add <kind> [name]",
	Short: "Add a node to the page",
	Long: `Add a connector, shape, text or frame. Prints the new node's ID.

Examples:
  flowshow-cli add connector "login -> home"
  flowshow-cli add shape`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		kind := domain.ParseNodeKind(args[0])
		if kind == domain.NodeKindUnknown {
			return fmt.Errorf("unknown node kind: %s", args[0])
		}
		name := ""
		if len(args) == 2 {
			name = args[1]
		}

		n, err := rt.Doc.AddNode(kind, name)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), n.ID)
		return nil
	},
}

var removeCmd = &cobra.Command{
	Use:   "remove <node-id>...",
	Short: "Remove nodes from the page",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		for _, id := range args {
			if err := rt.Doc.RemoveNode(id); err != nil {
				return err
			}
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Removed %d nodes\n", len(args))
		return nil
	},
}

var selectCmd = &cobra.Command{
	Use:   "select [node-id...]",
	Short: "Replace the selection",
	Long: `Select the given nodes, or clear the selection when none are given.
Prints the flow of the selected connectors: a tag, MIXED or NONE.

Examples:
  flowshow-cli select 3f2a... 9bc1...
  flowshow-cli select`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := rt.Doc.SetSelection(args); err != nil {
			return err
		}
		c, _, err := launch(commandContext(cmd), cmd)
		if err != nil {
			return err
		}
		st := c.State()
		fmt.Fprintf(cmd.OutOrStdout(), "Selected %d nodes, %d connectors, flow %s\n",
			len(args), len(st.SelectedArrows), st.SelectedFlow)
		return nil
	},
}

func lockCommand(use, short string, locked bool) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <node-id>...",
		Short: short,
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, id := range args {
				if err := rt.Doc.SetLocked(id, locked); err != nil {
					return err
				}
			}
			verb := "Locked"
			if !locked {
				verb = "Unlocked"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", verb, strings.Join(args, ", "))
			return nil
		},
	}
}

// requireConnectors fails unless every id names a connector
func requireConnectors(ids []string) error {
	nodes, err := rt.Doc.ListNodes()
	if err != nil {
		return err
	}
	kinds := make(map[string]domain.NodeKind, len(nodes))
	for _, n := range nodes {
		kinds[n.ID] = n.Kind
	}
	for _, id := range ids {
		kind, ok := kinds[id]
		if !ok {
			return fmt.Errorf("node %s: %w", id, application.ErrNotFound)
		}
		if kind != domain.NodeKindConnector {
			return fmt.Errorf("node %s is a %s: %w", id, kind, application.ErrNotConnector)
		}
	}
	return nil
}

func init() {
	nodesCmd.Flags().StringVarP(&nodesKind, "kind", "k", "", "only list nodes of this kind")
	nodesCmd.Flags().StringVarP(&nodesMatch, "match", "m", "", "only list nodes whose name fuzzy-matches")

	rootCmd.AddCommand(nodesCmd)
	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(removeCmd)
	rootCmd.AddCommand(selectCmd)
	rootCmd.AddCommand(lockCommand("lock", "Lock nodes", true))
	rootCmd.AddCommand(lockCommand("unlock", "Unlock nodes", false))
}
