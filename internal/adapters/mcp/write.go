package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"flowshow/internal/application"
	"flowshow/internal/application/controller"
	"flowshow/internal/domain"
)

// RegisterWriteTools adds the tools that change the document or the
// controller state to the MCP server.
func RegisterWriteTools(s *server.MCPServer, sess *Session) {
	s.AddTool(selectNodesTool(), selectNodesHandler(sess))
	s.AddTool(showAllTool(), intentHandler(sess, func(mcp.CallToolRequest) (domain.Intent, error) {
		return domain.Intent{Type: domain.IntentShowAll}, nil
	}))
	s.AddTool(hideAllTool(), intentHandler(sess, func(mcp.CallToolRequest) (domain.Intent, error) {
		return domain.Intent{Type: domain.IntentHideAll}, nil
	}))
	s.AddTool(showFlowTool(), intentHandler(sess, showFlowIntent))
	s.AddTool(tagSelectionTool(), intentHandler(sess, tagSelectionIntent))
	s.AddTool(clearSelectionTagTool(), intentHandler(sess, func(mcp.CallToolRequest) (domain.Intent, error) {
		return domain.Intent{Type: domain.IntentTagArrowsNull}, nil
	}))
	s.AddTool(includeLockedTool(), intentHandler(sess, includeLockedIntent))
	s.AddTool(saveFlowNamesTool(), intentHandler(sess, saveFlowNamesIntent))
}

// intentHandler replays one panel intent on the controller and reports
// what the controller posted back
func intentHandler(sess *Session, build func(mcp.CallToolRequest) (domain.Intent, error)) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		intent, err := build(req)
		if err != nil {
			return toolError(err)
		}

		transcript, err := sess.run(ctx, func(ctx context.Context, c *controller.Controller) error {
			return c.HandleIntent(ctx, intent)
		})
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(fmt.Sprintf("%s done\n%s", intent.Type, transcript)), nil
	}
}

// --- select_nodes ---

func selectNodesTool() mcp.Tool {
	return mcp.NewTool("select_nodes",
		mcp.WithDescription("Replace the selection, as a user clicking on the canvas would. The controller then re-reads the selection. Pass an empty list to clear it."),
		mcp.WithArray("ids",
			mcp.Description("Node IDs to select, from list_nodes"),
			mcp.WithStringItems(),
			mcp.Required(),
		),
	)
}

func selectNodesHandler(sess *Session) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		ids := req.GetStringSlice("ids", nil)

		transcript, err := sess.run(ctx, func(ctx context.Context, c *controller.Controller) error {
			if err := sess.doc.SetSelection(ids); err != nil {
				return err
			}
			return c.SelectionChanged(ctx)
		})
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(fmt.Sprintf("Selected %d nodes\n%s", len(ids), transcript)), nil
	}
}

// --- show_all / hide_all ---

func showAllTool() mcp.Tool {
	return mcp.NewTool("show_all",
		mcp.WithDescription("Show every connector. Locked connectors are skipped unless include_locked is on."),
	)
}

func hideAllTool() mcp.Tool {
	return mcp.NewTool("hide_all",
		mcp.WithDescription("Hide every connector. Locked connectors are skipped unless include_locked is on."),
	)
}

// --- show_flow ---

func showFlowTool() mcp.Tool {
	return mcp.NewTool("show_flow",
		mcp.WithDescription("Show or hide the connectors tagged with one flow. An unusable tag is logged and ignored."),
		mcp.WithString("tag",
			mcp.Description("Flow tag, 1 to 10"),
			mcp.Required(),
		),
		mcp.WithBoolean("show",
			mcp.Description("true to show, false to hide"),
			mcp.Required(),
		),
	)
}

func showFlowIntent(req mcp.CallToolRequest) (domain.Intent, error) {
	tag := req.GetString("tag", "")
	if tag == "" {
		return domain.Intent{}, fmt.Errorf("tag is required")
	}
	return domain.Intent{Type: domain.IntentShowFlow, Tag: tag, Show: req.GetBool("show", true)}, nil
}

// --- tag_selection / clear_selection_tag ---

func tagSelectionTool() mcp.Tool {
	return mcp.NewTool("tag_selection",
		mcp.WithDescription("Tag the connectors of the last inspected selection with a flow."),
		mcp.WithString("tag",
			mcp.Description("Flow tag, 1 to 10"),
			mcp.Required(),
		),
	)
}

func tagSelectionIntent(req mcp.CallToolRequest) (domain.Intent, error) {
	tag := req.GetString("tag", "")
	if err := application.ValidateRequired("tag", tag); err != nil {
		return domain.Intent{}, fmt.Errorf("%w (use clear_selection_tag to remove tags)", err)
	}
	return domain.Intent{Type: domain.IntentTagArrows, Tag: tag}, nil
}

func clearSelectionTagTool() mcp.Tool {
	return mcp.NewTool("clear_selection_tag",
		mcp.WithDescription("Remove the flow tag from the connectors of the last inspected selection."),
	)
}

// --- include_locked ---

func includeLockedTool() mcp.Tool {
	return mcp.NewTool("include_locked",
		mcp.WithDescription("Choose whether show/hide also touches locked connectors."),
		mcp.WithBoolean("include",
			mcp.Description("true to include locked connectors"),
			mcp.Required(),
		),
	)
}

func includeLockedIntent(req mcp.CallToolRequest) (domain.Intent, error) {
	if req.GetBool("include", false) {
		return domain.Intent{Type: domain.IntentIncludeLockedTrue}, nil
	}
	return domain.Intent{Type: domain.IntentIncludeLockedFalse}, nil
}

// --- save_flow_names ---

func saveFlowNamesTool() mcp.Tool {
	return mcp.NewTool("save_flow_names",
		mcp.WithDescription("Store the flow names in the document, in flow order. Names must not contain commas."),
		mcp.WithArray("names",
			mcp.Description("Exactly 10 names"),
			mcp.WithStringItems(),
			mcp.Required(),
		),
	)
}

func saveFlowNamesIntent(req mcp.CallToolRequest) (domain.Intent, error) {
	names := req.GetStringSlice("names", nil)
	if len(names) != domain.FlowCount {
		return domain.Intent{}, fmt.Errorf("expected %d names, got %d", domain.FlowCount, len(names))
	}
	for _, n := range names {
		if strings.Contains(n, ",") {
			return domain.Intent{}, fmt.Errorf("flow name %q contains a comma", n)
		}
	}
	return domain.Intent{Type: domain.IntentSaveFlowNames, NameArray: names}, nil
}
