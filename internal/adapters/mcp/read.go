package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"flowshow/internal/application"
	"flowshow/internal/application/commands"
	"flowshow/internal/application/controller"
	"flowshow/internal/domain"
)

// RegisterReadTools adds the read-only flow tools to the MCP server.
func RegisterReadTools(s *server.MCPServer, sess *Session) {
	s.AddTool(listFlowsTool(), listFlowsHandler(sess))
	s.AddTool(listNodesTool(), listNodesHandler(sess))
	s.AddTool(statusTool(), statusHandler(sess))
}

// --- list_flows ---

func listFlowsTool() mcp.Tool {
	return mcp.NewTool("list_flows",
		mcp.WithDescription("List the 10 flows of the document with their tag and name. Tags are the values accepted by show_flow and tag_selection."),
	)
}

func listFlowsHandler(sess *Session) server.ToolHandlerFunc {
	return func(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var names []string
		err := sess.loop.Do(ctx, func(ctx context.Context, _ *controller.Controller) error {
			var err error
			names, err = commands.NewResolveFlowNamesCommand(sess.doc).Execute(ctx)
			return err
		})
		if err != nil {
			return toolError(err)
		}

		var sb strings.Builder
		for i, name := range names {
			fmt.Fprintf(&sb, "%d  %s\n", i+1, name)
		}
		return mcp.NewToolResultText(sb.String()), nil
	}
}

// --- list_nodes ---

func listNodesTool() mcp.Tool {
	return mcp.NewTool("list_nodes",
		mcp.WithDescription("List the nodes of the page: ID, kind, name, flow tag (connectors only), and locked/hidden/selected markers."),
		mcp.WithString("kind",
			mcp.Description("Only list nodes of this kind (connector, shape, text, frame)"),
		),
		mcp.WithString("match",
			mcp.Description("Only list nodes whose name fuzzy-matches this text"),
		),
	)
}

func listNodesHandler(sess *Session) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		filter, err := application.NewNodeFilter(req.GetString("kind", ""), req.GetString("match", ""))
		if err != nil {
			return toolError(err)
		}

		var lines []string
		err = sess.loop.Do(ctx, func(context.Context, *controller.Controller) error {
			nodes, err := sess.doc.ListNodes()
			if err != nil {
				return err
			}
			selection, err := sess.doc.Selection()
			if err != nil {
				return err
			}
			selected := make(map[string]bool, len(selection))
			for _, n := range selection {
				selected[n.ID] = true
			}

			for _, n := range filter.Apply(nodes) {
				tag := ""
				if n.Kind == domain.NodeKindConnector {
					if tag, err = sess.doc.NodeData(n.ID, domain.FlowTagKey); err != nil {
						return err
					}
				}
				lines = append(lines, formatNode(n, tag, selected[n.ID]))
			}
			return nil
		})
		if err != nil {
			return toolError(err)
		}

		if len(lines) == 0 {
			return mcp.NewToolResultText("No nodes."), nil
		}
		return mcp.NewToolResultText(strings.Join(lines, "\n") + "\n"), nil
	}
}

// --- status ---

func statusTool() mcp.Tool {
	return mcp.NewTool("status",
		mcp.WithDescription("Show the controller state: selected connectors, their flow (a tag, MIXED or NONE), whether locked connectors are included, and the panel's last update and size."),
	)
}

func statusHandler(sess *Session) server.ToolHandlerFunc {
	return func(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var sb strings.Builder
		err := sess.loop.Do(ctx, func(_ context.Context, c *controller.Controller) error {
			st := c.State()
			ids := make([]string, len(st.SelectedArrows))
			for i, a := range st.SelectedArrows {
				ids[i] = a.ID
			}
			fmt.Fprintf(&sb, "selected connectors: %d %v\n", len(ids), ids)
			fmt.Fprintf(&sb, "selected flow: %s\n", st.SelectedFlow)
			fmt.Fprintf(&sb, "include locked: %t\n", st.IncludeLocked)
			fmt.Fprintf(&sb, "panel: %s (%dx%d)\n", sess.panel.last.Text, sess.panel.size.Width, sess.panel.size.Height)
			return nil
		})
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(sb.String()), nil
	}
}

// --- helpers ---

func toolError(err error) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultError(err.Error()), nil
}

func formatNode(n domain.Node, tag string, selected bool) string {
	var flags []string
	if selected {
		flags = append(flags, "selected")
	}
	if n.Locked {
		flags = append(flags, "locked")
	}
	if !n.Visible {
		flags = append(flags, "hidden")
	}

	line := fmt.Sprintf("%s  %s  %s", n.ID, n.Kind, n.Name)
	if n.Kind == domain.NodeKindConnector {
		if tag == "" {
			tag = "-"
		}
		line += "  flow=" + tag
	}
	if len(flags) > 0 {
		line += "  [" + strings.Join(flags, ",") + "]"
	}
	return line
}
