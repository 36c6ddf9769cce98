package cli

import (
	"errors"

	"github.com/deemkeen/crownconsole/util"
)

var errNoJournal = errors.New("action journal is not configured")

// handleHistory lists actions recorded by this console
func (h *Handler) handleHistory(args []string) error {
	limit, rest, err := parseLimit(args, defaultListLimit)
	if err != nil {
		h.output.Error(err)
		return err
	}
	if len(rest) > 0 {
		err := errors.New("usage: history [-n <count>]")
		h.output.Error(err)
		return err
	}
	if h.journal == nil {
		h.output.Error(errNoJournal)
		return errNoJournal
	}

	err, entries := h.journal.ReadRecentActions(h.ctx, limit)
	if err != nil {
		h.output.Error(err)
		return err
	}

	if h.output.IsJSON() {
		items := make([]HistoryItem, 0)
		if entries != nil {
			for _, e := range *entries {
				items = append(items, HistoryItem{
					ID:        e.Id.String(),
					Action:    string(e.Action),
					Admin:     e.AdminName,
					Target:    e.Target,
					Detail:    e.Detail,
					Succeeded: e.Succeeded,
					Outcome:   e.Outcome,
					CreatedAt: e.CreatedAt,
				})
			}
		}
		h.output.JSON(HistoryResponse{Entries: items, Count: len(items)})
		return nil
	}

	if entries == nil || len(*entries) == 0 {
		h.output.Println("No actions recorded yet.")
		return nil
	}
	for _, e := range *entries {
		mark := "ok"
		if !e.Succeeded {
			mark = "failed"
		}
		h.output.Print("%s  %s %s %s %s (%s)\n",
			util.Pad(util.FormatTimeAgo(e.CreatedAt), 16),
			util.Pad(string(e.Action), 8),
			util.Pad(e.AdminName, 12),
			util.Pad(e.Target, 16),
			util.Truncate(e.Detail, 40),
			mark,
		)
	}
	return nil
}
