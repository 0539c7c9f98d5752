package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"tableflip.dev/dots/pkg/state"
)

func registerTools(srv *server.MCPServer, svc *Service) {
	registerCountdownTool(srv, svc)
	registerGridTool(srv, svc)
	registerOpenDayTool(srv, svc)
	registerSaveDayTool(srv, svc)
	registerDeleteDayTool(srv, svc)
	registerListAnnotationsTool(srv, svc)
	registerGetFocusTool(srv, svc)
	registerSetFocusTool(srv, svc)
	registerToggleFocusTool(srv, svc)
	registerClearFocusTool(srv, svc)
	registerTodayStyleTool(srv, svc)
	registerGetScratchpadTool(srv, svc)
	registerSetScratchpadTool(srv, svc)
}

func registerCountdownTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"get_countdown",
		mcp.WithDescription("Days remaining in the year, percent complete and the next milestone."),
		mcp.WithString("policy",
			mcp.Description("How a milestone countdown relates to the days remaining line."),
			mcp.Enum("separate", "replace"),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		dto, err := svc.Countdown(ctx, request.GetString("policy", ""))
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(dto)
	})
}

func registerGridTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"get_grid",
		mcp.WithDescription("One slot per day of the current year with status, note and marker."),
		mcp.WithString("status",
			mcp.Description("Only return days with this status."),
			mcp.Enum("past", "today", "future"),
		),
		mcp.WithBoolean("annotated_only",
			mcp.Description("Only return days that carry a note."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		slots, err := svc.Grid(ctx, request.GetString("status", ""), request.GetBool("annotated_only", false))
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(map[string]any{
			"year":  svc.App.Now().Year(),
			"days":  slots,
			"count": len(slots),
		})
	})
}

func registerOpenDayTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"open_day",
		mcp.WithDescription("Load the note for a date, or the suggested type when there is none."),
		mcp.WithString("date",
			mcp.Required(),
			mcp.Description("Date as YYYY-MM-DD."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		date, err := request.RequireString("date")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		dto, err := svc.Day(ctx, date)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(dto)
	})
}

func registerSaveDayTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"save_day",
		mcp.WithDescription("Store a note on a date. An empty note removes it."),
		mcp.WithString("date",
			mcp.Required(),
			mcp.Description("Date as YYYY-MM-DD."),
		),
		mcp.WithString("note",
			mcp.Description("Note text for the day."),
		),
		mcp.WithString("type",
			mcp.Description("Annotation type. Defaults to the stored or suggested type."),
			mcp.Enum("milestone", "journal", "none"),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args struct {
			Date string `json:"date"`
			Note string `json:"note"`
			Type string `json:"type"`
		}
		if err := request.BindArguments(&args); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
		}
		if strings.TrimSpace(args.Date) == "" {
			return mcp.NewToolResultError("date is required"), nil
		}
		dto, err := svc.SaveDay(ctx, args.Date, args.Note, args.Type)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(dto)
	})
}

func registerDeleteDayTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"delete_day",
		mcp.WithDescription("Remove the note on a date. Deleting a day without a note succeeds."),
		mcp.WithString("date",
			mcp.Required(),
			mcp.Description("Date as YYYY-MM-DD."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		date, err := request.RequireString("date")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		if err := svc.DeleteDay(ctx, date); err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return mcp.NewToolResultText(fmt.Sprintf("deleted %s", date)), nil
	})
}

func registerListAnnotationsTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"list_annotations",
		mcp.WithDescription("List day notes in date order, optionally bounded and filtered by type."),
		mcp.WithString("from",
			mcp.Description("Earliest date, inclusive, as YYYY-MM-DD."),
		),
		mcp.WithString("to",
			mcp.Description("Latest date, inclusive, as YYYY-MM-DD."),
		),
		mcp.WithString("type",
			mcp.Description("Only list notes of this type."),
			mcp.Enum("milestone", "journal", "none"),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		from := strings.TrimSpace(request.GetString("from", ""))
		to := strings.TrimSpace(request.GetString("to", ""))
		results, err := svc.Annotations(ctx, from, to, request.GetString("type", ""))
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(map[string]any{
			"from":        from,
			"to":          to,
			"annotations": results,
			"count":       len(results),
		})
	})
}

func registerGetFocusTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"get_focus",
		mcp.WithDescription("Today's focus and whether it is done."),
		mcp.WithBoolean("include_history",
			mcp.Description("Also return focus records from earlier days."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		dto, err := svc.Focus(ctx, request.GetBool("include_history", false))
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(dto)
	})
}

func registerSetFocusTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"set_focus",
		mcp.WithDescription("Set today's focus. It starts out not completed."),
		mcp.WithString("text",
			mcp.Required(),
			mcp.Description("What today is about."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		text, err := request.RequireString("text")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		if err := svc.App.SetFocus(ctx, text); err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		dto, err := svc.Focus(ctx, false)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(dto)
	})
}

func registerToggleFocusTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"toggle_focus",
		mcp.WithDescription("Flip completion of today's focus. Does nothing when no focus is set."),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		f, err := svc.App.ToggleFocus(ctx)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(FocusDTO{Focus: f})
	})
}

func registerClearFocusTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"clear_focus",
		mcp.WithDescription("Remove today's focus."),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		if err := svc.App.ClearFocus(ctx); err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return mcp.NewToolResultText("focus cleared"), nil
	})
}

func registerTodayStyleTool(srv *server.MCPServer, svc *Service) {
	styles := make([]string, 0, len(state.TodayStyles()))
	for _, s := range state.TodayStyles() {
		styles = append(styles, string(s))
	}
	tool := mcp.NewTool(
		"set_today_style",
		mcp.WithDescription("Choose how today's dot is drawn."),
		mcp.WithString("style",
			mcp.Required(),
			mcp.Description("Marker style for today."),
			mcp.Enum(styles...),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		style, err := request.RequireString("style")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		ts := state.TodayStyle(strings.ToLower(strings.TrimSpace(style)))
		if err := svc.App.SetTodayStyle(ctx, ts); err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return mcp.NewToolResultText(fmt.Sprintf("today style set to %s", ts)), nil
	})
}

func registerGetScratchpadTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"get_scratchpad",
		mcp.WithDescription("Read the free-form scratchpad."),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		text, err := svc.App.Scratchpad(ctx)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return mcp.NewToolResultText(text), nil
	})
}

func registerSetScratchpadTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"set_scratchpad",
		mcp.WithDescription("Replace the scratchpad, or append a line to it."),
		mcp.WithString("text",
			mcp.Required(),
			mcp.Description("Scratchpad text."),
		),
		mcp.WithBoolean("append",
			mcp.Description("Append as a new line instead of replacing."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		text, err := request.RequireString("text")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		if request.GetBool("append", false) {
			err = svc.App.AppendScratchpad(ctx, text)
		} else {
			err = svc.App.SetScratchpad(ctx, text)
		}
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		current, err := svc.App.Scratchpad(ctx)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return mcp.NewToolResultText(current), nil
	})
}

func toJSONResult(data any) (*mcp.CallToolResult, error) {
	result, err := mcp.NewToolResultJSON(data)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("marshal error: %v", err)), nil
	}
	return result, nil
}
