package review

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/ftnpaper/curator/internal/curator"
	"github.com/ftnpaper/curator/internal/output"
)

// PromptResolver asks the operator what to do when a move targets a full day.
type PromptResolver struct {
	Prompt  *Prompter
	Printer *output.Printer
}

// ResolveOverflow implements curator.OverflowResolver. It keeps asking until
// it gets a well-formed answer; an invalid target is still rejected by the
// curator.
func (r *PromptResolver) ResolveOverflow(ctx context.Context, req curator.OverflowRequest) (curator.Decision, error) {
	r.Printer.Warning("day %d is full (%d/%d)", req.ToDay, req.Target.Total(), req.Target.Limit())
	r.Printer.Day(req.Target, "")

	for {
		answer, err := r.Prompt.Ask(ctx, fmt.Sprintf("%q: swap <index> | replace <index> | cancel >", req.Story.ShortTitle()))
		if err != nil {
			return curator.Decision{}, err
		}
		d, ok := parseDecision(answer, req.ToDay)
		if ok {
			return d, nil
		}
		r.Printer.Warning("expected 'swap N', 'replace N' or 'cancel'")
	}
}

func parseDecision(answer string, day int) (curator.Decision, bool) {
	fields := strings.Fields(strings.ToLower(answer))
	if len(fields) == 0 {
		return curator.Decision{}, false
	}
	switch curator.Action(fields[0]) {
	case curator.ActionCancel:
		return curator.Decision{Action: curator.ActionCancel}, len(fields) == 1
	case curator.ActionSwap, curator.ActionReplace:
		if len(fields) != 2 {
			return curator.Decision{}, false
		}
		n, err := strconv.Atoi(fields[1])
		if err != nil || n < 1 {
			return curator.Decision{}, false
		}
		return curator.Decision{Action: curator.Action(fields[0]), Target: curator.At(day, n)}, true
	}
	return curator.Decision{}, false
}
