package mcp

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/mark3labs/mcp-go/client"
	"github.com/mark3labs/mcp-go/mcp"

	"tableflip.dev/dots/pkg/app"
	"tableflip.dev/dots/pkg/countdown"
	"tableflip.dev/dots/pkg/state"
	"tableflip.dev/dots/pkg/store"
)

var testNow = time.Date(2025, time.May, 1, 10, 0, 0, 0, time.UTC)

func newTestService(t *testing.T) (*Service, *store.Memory) {
	t.Helper()
	seed := state.Default()
	seed.DailyFocus.Date = "Thu May 01 2025"
	mem := store.NewMemory(seed)
	svc := app.New(mem, app.WithClock(func() time.Time { return testNow }))
	if err := svc.Load(context.Background()); err != nil {
		t.Fatalf("load: %v", err)
	}
	return NewService(svc, countdown.PolicySeparate), mem
}

func newTestClient(t *testing.T, svc *Service) *client.Client {
	t.Helper()
	ctx := context.Background()
	c, err := client.NewInProcessClient(NewServer(svc, "dots", "test"))
	if err != nil {
		t.Fatalf("client: %v", err)
	}
	t.Cleanup(func() { _ = c.Close() })
	if err := c.Start(ctx); err != nil {
		t.Fatalf("start: %v", err)
	}
	initReq := mcp.InitializeRequest{}
	initReq.Params.ProtocolVersion = mcp.LATEST_PROTOCOL_VERSION
	initReq.Params.ClientInfo = mcp.Implementation{Name: "dots-test", Version: "test"}
	if _, err := c.Initialize(ctx, initReq); err != nil {
		t.Fatalf("initialize: %v", err)
	}
	return c
}

func callTool(t *testing.T, c *client.Client, name string, args map[string]any) *mcp.CallToolResult {
	t.Helper()
	req := mcp.CallToolRequest{}
	req.Params.Name = name
	req.Params.Arguments = args
	res, err := c.CallTool(context.Background(), req)
	if err != nil {
		t.Fatalf("%s: %v", name, err)
	}
	return res
}

func resultText(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	if len(res.Content) == 0 {
		t.Fatalf("empty tool result")
	}
	text, ok := mcp.AsTextContent(res.Content[0])
	if !ok {
		t.Fatalf("expected text content, got %T", res.Content[0])
	}
	return text.Text
}

func TestServiceSaveDayKeepsSuggestedType(t *testing.T) {
	svc, mem := newTestService(t)
	ctx := context.Background()

	dto, err := svc.SaveDay(ctx, "2025-06-01", " Trip ", "")
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if dto.Draft.Type != state.TypeMilestone || dto.Draft.Note != "Trip" || !dto.Draft.Existing {
		t.Fatalf("unexpected draft %#v", dto.Draft)
	}
	if dto.Slot == nil || dto.Slot.Day != 152 {
		t.Fatalf("expected slot for day 152, got %#v", dto.Slot)
	}

	if _, err := svc.SaveDay(ctx, "2025-06-01", "Trip", "none"); err != nil {
		t.Fatalf("save untyped: %v", err)
	}
	if got := mem.Load(ctx).DotsData["2025-06-01"].Type; got != state.TypeNone {
		t.Fatalf("expected untyped annotation, got %q", got)
	}

	if _, err := svc.SaveDay(ctx, "2025-06-01", "", ""); err != nil {
		t.Fatalf("save empty: %v", err)
	}
	if _, ok := mem.Load(ctx).DotsData["2025-06-01"]; ok {
		t.Fatalf("empty note must delete the day")
	}
}

func TestServiceRejectsBadInput(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	if _, err := svc.Countdown(ctx, "sideways"); err == nil {
		t.Fatalf("expected policy error")
	}
	if _, err := svc.Grid(ctx, "yesterday", false); err == nil {
		t.Fatalf("expected status error")
	}
	if _, err := svc.Annotations(ctx, "June", "", ""); err == nil {
		t.Fatalf("expected date error")
	}
	if _, err := svc.SaveDay(ctx, "2025-06-01", "x", "birthday"); err == nil {
		t.Fatalf("expected type error")
	}
	if _, err := (&Service{}).Focus(ctx, false); err == nil {
		t.Fatalf("expected unconfigured service error")
	}
}

func TestServiceGridFilters(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	if _, err := svc.SaveDay(ctx, "2025-01-02", "new year run", "journal"); err != nil {
		t.Fatalf("save: %v", err)
	}

	today, err := svc.Grid(ctx, "today", false)
	if err != nil {
		t.Fatalf("grid: %v", err)
	}
	if len(today) != 1 || today[0].Day != 121 {
		t.Fatalf("expected only day 121, got %#v", today)
	}

	annotated, err := svc.Grid(ctx, "", true)
	if err != nil {
		t.Fatalf("grid: %v", err)
	}
	if len(annotated) != 1 || annotated[0].Date != "2025-01-02" {
		t.Fatalf("expected one annotated day, got %#v", annotated)
	}
}

func TestToolsRoundTrip(t *testing.T) {
	svc, mem := newTestService(t)
	c := newTestClient(t, svc)
	ctx := context.Background()

	res := callTool(t, c, "save_day", map[string]any{"date": "2025-06-01", "note": "Trip"})
	if res.IsError {
		t.Fatalf("save_day failed: %s", resultText(t, res))
	}

	res = callTool(t, c, "get_countdown", map[string]any{"policy": "replace"})
	if res.IsError {
		t.Fatalf("get_countdown failed: %s", resultText(t, res))
	}
	var cd CountdownDTO
	if err := json.Unmarshal([]byte(resultText(t, res)), &cd); err != nil {
		t.Fatalf("decode countdown: %v", err)
	}
	if cd.Headline != "31 Days until Trip" || cd.Secondary != cd.RemainingLine() {
		t.Fatalf("unexpected countdown lines %q / %q", cd.Headline, cd.Secondary)
	}

	res = callTool(t, c, "list_annotations", map[string]any{"type": "milestone"})
	var listed struct {
		Count int `json:"count"`
	}
	if err := json.Unmarshal([]byte(resultText(t, res)), &listed); err != nil {
		t.Fatalf("decode annotations: %v", err)
	}
	if listed.Count != 1 {
		t.Fatalf("expected one milestone, got %d", listed.Count)
	}

	callTool(t, c, "set_focus", map[string]any{"text": "ship it"})
	res = callTool(t, c, "toggle_focus", nil)
	var focus FocusDTO
	if err := json.Unmarshal([]byte(resultText(t, res)), &focus); err != nil {
		t.Fatalf("decode focus: %v", err)
	}
	if !focus.Focus.Completed || focus.Focus.Text != "ship it" {
		t.Fatalf("unexpected focus %#v", focus.Focus)
	}

	callTool(t, c, "set_scratchpad", map[string]any{"text": "one"})
	res = callTool(t, c, "set_scratchpad", map[string]any{"text": "two", "append": true})
	if got := resultText(t, res); got != "one\ntwo" {
		t.Fatalf("unexpected scratchpad %q", got)
	}

	res = callTool(t, c, "set_today_style", map[string]any{"style": "pulse"})
	if res.IsError {
		t.Fatalf("set_today_style failed: %s", resultText(t, res))
	}

	res = callTool(t, c, "delete_day", map[string]any{"date": "2025-06-01"})
	if res.IsError {
		t.Fatalf("delete_day failed: %s", resultText(t, res))
	}

	doc := mem.Load(ctx)
	if len(doc.DotsData) != 0 || doc.TodayStyle != state.StylePulse || doc.Scratchpad != "one\ntwo" {
		t.Fatalf("unexpected persisted document %#v", doc)
	}
}

func TestToolErrorsAreResults(t *testing.T) {
	svc, _ := newTestService(t)
	c := newTestClient(t, svc)

	res := callTool(t, c, "open_day", map[string]any{"date": "not-a-date"})
	if !res.IsError {
		t.Fatalf("expected tool error for bad date")
	}
	res = callTool(t, c, "set_focus", map[string]any{"text": "   "})
	if !res.IsError {
		t.Fatalf("expected tool error for empty focus")
	}
}

func TestResources(t *testing.T) {
	svc, _ := newTestService(t)
	c := newTestClient(t, svc)
	ctx := context.Background()
	if _, err := svc.SaveDay(ctx, "2025-04-30", "wrote", "journal"); err != nil {
		t.Fatalf("save: %v", err)
	}

	read := func(uri string) string {
		t.Helper()
		req := mcp.ReadResourceRequest{}
		req.Params.URI = uri
		res, err := c.ReadResource(ctx, req)
		if err != nil {
			t.Fatalf("read %s: %v", uri, err)
		}
		if len(res.Contents) != 1 {
			t.Fatalf("expected one content for %s, got %d", uri, len(res.Contents))
		}
		text, ok := mcp.AsTextResourceContents(res.Contents[0])
		if !ok {
			t.Fatalf("expected text contents, got %T", res.Contents[0])
		}
		return text.Text
	}

	var doc state.State
	if err := json.Unmarshal([]byte(read("dots://state")), &doc); err != nil {
		t.Fatalf("decode state: %v", err)
	}
	if doc.DotsData["2025-04-30"].Note != "wrote" {
		t.Fatalf("unexpected state %#v", doc)
	}

	var day DayDTO
	if err := json.Unmarshal([]byte(read("dots://days/2025-04-30")), &day); err != nil {
		t.Fatalf("decode day: %v", err)
	}
	if day.Slot == nil || day.Slot.Status != "past" || day.Draft.Type != state.TypeJournal {
		t.Fatalf("unexpected day %#v", day)
	}
}
