package mcp

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/ftnpaper/curator/internal/config"
	"github.com/ftnpaper/curator/internal/curator"
	"github.com/ftnpaper/curator/internal/edition"
	"github.com/ftnpaper/curator/internal/errors"
	"github.com/ftnpaper/curator/internal/output"
)

// Handlers holds dependencies for MCP tool handlers.
type Handlers struct {
	session *Session
	cfg     *config.Config
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(session *Session, cfg *config.Config) *Handlers {
	return &Handlers{session: session, cfg: cfg}
}

// Request types for each tool

// RefRequest addresses one story by id or by day and display index.
type RefRequest struct {
	ID    string `json:"id,omitempty"`
	Day   int    `json:"day,omitempty"`
	Index int    `json:"index,omitempty"`
}

func (r RefRequest) ref() curator.StoryRef {
	return curator.StoryRef{ID: r.ID, Day: r.Day, Index: r.Index}
}

// ShowRequest represents the arguments for edition_show.
type ShowRequest struct {
	Day           int   `json:"day,omitempty"`
	IncludeUnused *bool `json:"include_unused,omitempty"`
}

// MoveRequest represents the arguments for edition_move.
type MoveRequest struct {
	RefRequest
	ToDay       int    `json:"to_day"`
	OnFull      string `json:"on_full,omitempty"`
	TargetIndex int    `json:"target_index,omitempty"`
}

// RestoreRequest represents the arguments for edition_restore.
type RestoreRequest struct {
	ID    string `json:"id,omitempty"`
	Index int    `json:"index,omitempty"`
	ToDay int    `json:"to_day"`
}

// DayRequest represents the arguments for tools that act on a whole day.
type DayRequest struct {
	Day int `json:"day"`
}

// CombineRequest represents the arguments for edition_combine.
type CombineRequest struct {
	Day     int          `json:"day"`
	Stories []RefRequest `json:"stories"`
}

// ThemeRequest represents the arguments for edition_rename_theme.
type ThemeRequest struct {
	Day  int    `json:"day"`
	Name string `json:"name"`
}

// SaveRequest represents the arguments for edition_save.
type SaveRequest struct {
	Path    string `json:"path,omitempty"`
	Teasers bool   `json:"teasers,omitempty"`
}

// RegroupRequest represents the arguments for edition_regroup.
type RegroupRequest struct {
	Blocklisted []string `json:"blocklisted,omitempty"`
}

// opResult wraps an operation's output with the warnings it raised.
type opResult struct {
	Result   any      `json:"result"`
	Warnings []string `json:"warnings,omitempty"`
}

// HandleShow handles the edition_show tool.
func (h *Handlers) HandleShow(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[ShowRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}
	if input.Day != 0 && !edition.ValidDay(input.Day) {
		return errorResult(errors.NewInvalidDay(input.Day)), nil
	}

	var out output.EditionView
	_, _ = h.session.do(func(c *curator.Curator) error {
		out = output.View(c.Working(), input.Day, input.IncludeUnused == nil || *input.IncludeUnused)
		return nil
	})
	return successResult(out)
}

// HandleMove handles the edition_move tool.
func (h *Handlers) HandleMove(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[MoveRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}
	decision, err := overflowDecision(input)
	if err != nil {
		return errorResult(err), nil
	}

	return h.run(func(c *curator.Curator) (any, error) {
		// The per-call decision answers any overflow prompt for this move only.
		c.SetResolver(curator.StaticResolver(decision))
		defer c.SetResolver(nil)
		return c.MoveStory(ctx, curator.MoveInput{Story: input.ref(), ToDay: input.ToDay})
	})
}

func overflowDecision(input MoveRequest) (curator.Decision, error) {
	switch action := curator.Action(strings.ToLower(strings.TrimSpace(input.OnFull))); action {
	case "", curator.ActionCancel:
		return curator.Decision{Action: curator.ActionCancel}, nil
	case curator.ActionSwap, curator.ActionReplace:
		if input.TargetIndex <= 0 {
			return curator.Decision{}, errors.NewInvalidRequest("target_index is required when on_full is swap or replace")
		}
		return curator.Decision{Action: action, Target: curator.At(input.ToDay, input.TargetIndex)}, nil
	default:
		return curator.Decision{}, errors.NewInvalidRequest("on_full must be swap, replace or cancel")
	}
}

// HandleUnuse handles the edition_unuse tool.
func (h *Handlers) HandleUnuse(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[RefRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}
	return h.run(func(c *curator.Curator) (any, error) {
		return c.MoveToUnused(ctx, curator.UnuseInput{Story: input.ref()})
	})
}

// HandleRestore handles the edition_restore tool.
func (h *Handlers) HandleRestore(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[RestoreRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}
	ref := curator.StoryRef{ID: input.ID, Index: input.Index}
	return h.run(func(c *curator.Curator) (any, error) {
		return c.RestoreFromUnused(ctx, curator.RestoreInput{Story: ref, ToDay: input.ToDay})
	})
}

// HandleSwapMain handles the edition_swap_main tool.
func (h *Handlers) HandleSwapMain(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[RefRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}
	return h.run(func(c *curator.Curator) (any, error) {
		day, ref, err := dayAndRef(c, input)
		if err != nil {
			return nil, err
		}
		return c.SwapMain(ctx, curator.SwapInput{Day: day, Story: ref})
	})
}

// HandlePromote handles the edition_promote tool.
func (h *Handlers) HandlePromote(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[RefRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}
	return h.run(func(c *curator.Curator) (any, error) {
		day, ref, err := dayAndRef(c, input)
		if err != nil {
			return nil, err
		}
		return c.PromoteSecond(ctx, curator.PromoteInput{Day: day, Story: ref})
	})
}

// HandleRewrite handles the edition_rewrite tool.
func (h *Handlers) HandleRewrite(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[RefRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}
	return h.run(func(c *curator.Curator) (any, error) {
		day, ref, err := dayAndRef(c, input)
		if err != nil {
			return nil, err
		}
		return c.RewriteStory(ctx, curator.RewriteInput{Day: day, Story: ref})
	})
}

// dayAndRef splits a ref into the day it lives in and a day-relative ref.
// ID refs are located first; index refs must name their day.
func dayAndRef(c *curator.Curator, r RefRequest) (int, curator.StoryRef, error) {
	if strings.TrimSpace(r.ID) == "" {
		if r.Day == 0 {
			return 0, curator.StoryRef{}, errors.NewInvalidRequest("day is required with index")
		}
		return r.Day, curator.StoryRef{Index: r.Index}, nil
	}
	if r.Index != 0 {
		return 0, curator.StoryRef{}, errors.NewAmbiguousAddressing()
	}
	if r.Day != 0 {
		return r.Day, curator.ByID(r.ID), nil
	}
	loc, err := c.Resolve(curator.ByID(r.ID))
	if err != nil {
		return 0, curator.StoryRef{}, err
	}
	return loc.Day, curator.ByID(r.ID), nil
}

// HandleDemote handles the edition_demote tool.
func (h *Handlers) HandleDemote(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[DayRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}
	return h.run(func(c *curator.Curator) (any, error) {
		return c.DemoteSecond(ctx, curator.DemoteInput{Day: input.Day})
	})
}

// HandleCombine handles the edition_combine tool.
func (h *Handlers) HandleCombine(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[CombineRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}
	refs := make([]curator.StoryRef, len(input.Stories))
	for i, r := range input.Stories {
		refs[i] = r.ref()
	}
	return h.run(func(c *curator.Curator) (any, error) {
		return c.Combine(ctx, curator.CombineInput{Day: input.Day, Stories: refs})
	})
}

// HandleRenameTheme handles the edition_rename_theme tool.
func (h *Handlers) HandleRenameTheme(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[ThemeRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}
	return h.run(func(c *curator.Curator) (any, error) {
		return c.RenameTheme(ctx, curator.ThemeInput{Day: input.Day, Name: input.Name})
	})
}

// HandleThemes handles the edition_themes tool.
func (h *Handlers) HandleThemes(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return h.run(func(c *curator.Curator) (any, error) {
		return map[string]any{"themes": c.Themes()}, nil
	})
}

// HandleValidate handles the edition_validate tool.
func (h *Handlers) HandleValidate(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var report *curator.ValidationReport
	_, _ = h.session.do(func(c *curator.Curator) error {
		report = c.ValidateData()
		return nil
	})
	return successResult(report)
}

// HandleSave handles the edition_save tool.
func (h *Handlers) HandleSave(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[SaveRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}
	return h.run(func(c *curator.Curator) (any, error) {
		return c.Save(ctx, curator.SaveInput{Path: input.Path, Teasers: input.Teasers})
	})
}

// HandleRegroup handles the edition_regroup tool.
func (h *Handlers) HandleRegroup(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[RegroupRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}
	return h.run(func(c *curator.Curator) (any, error) {
		return c.Regroup(ctx, curator.RegroupInput{Blocklisted: input.Blocklisted})
	})
}

// HandleChanges handles the edition_changes tool.
func (h *Handlers) HandleChanges(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return h.run(func(c *curator.Curator) (any, error) {
		changes := c.Changes()
		if changes == nil {
			changes = []curator.Change{}
		}
		return map[string]any{"changes": changes, "count": len(changes)}, nil
	})
}

// HandleDiff handles the edition_diff tool.
func (h *Handlers) HandleDiff(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return h.run(func(c *curator.Curator) (any, error) {
		moved := c.Diff()
		if moved == nil {
			moved = []curator.Placement{}
		}
		return map[string]any{"moved": moved, "count": len(moved)}, nil
	})
}

// run executes fn on the session and wraps its output with any warnings.
func (h *Handlers) run(fn func(c *curator.Curator) (any, error)) (*mcp.CallToolResult, error) {
	var out any
	warnings, err := h.session.do(func(c *curator.Curator) error {
		var err error
		out, err = fn(c)
		return err
	})
	if err != nil {
		return errorResult(err), nil
	}
	return successResult(opResult{Result: out, Warnings: warnings})
}

// errorResult creates an MCP error result from an error.
func errorResult(err error) *mcp.CallToolResult {
	var payload map[string]any

	var cerr *errors.CuratorError
	if stderrors.As(err, &cerr) {
		msg := cerr.Message
		if err != error(cerr) && cerr.Code != errors.ErrInternal {
			// Keep wrapper context such as "stories[2]: ..."
			msg = strings.TrimSuffix(err.Error(), cerr.Error()) + cerr.Message
		}
		errorObj := map[string]any{
			"code":    cerr.Code,
			"message": msg,
			"status":  cerr.Status,
		}
		// Only include details for non-internal errors to avoid leaking
		// sensitive info like file paths or SQL errors
		if cerr.Code != errors.ErrInternal && cerr.Details != nil {
			errorObj["details"] = cerr.Details
		}
		payload = map[string]any{"error": errorObj}
	} else {
		payload = map[string]any{
			"error": map[string]any{
				"code":    "INTERNAL",
				"message": "an internal error occurred",
				"status":  500,
			},
		}
	}

	content, _ := json.Marshal(payload)
	return &mcp.CallToolResult{
		Content: []mcp.Content{mcp.TextContent{Type: "text", Text: string(content)}},
		IsError: true,
	}
}

// successResult creates an MCP success result from any data.
func successResult(data any) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultJSON(data)
}
