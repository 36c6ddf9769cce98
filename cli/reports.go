package cli

import (
	"fmt"

	"github.com/deemkeen/crownconsole/api"
	"github.com/deemkeen/crownconsole/domain"
	"github.com/deemkeen/crownconsole/util"
)

// handleReports lists player reports, optionally by status
func (h *Handler) handleReports(args []string) error {
	status := domain.ReportUnknown
	for i := 0; i < len(args); i++ {
		switch {
		case args[i] == "-s" && i+1 < len(args):
			status = domain.ParseReportStatus(args[i+1])
			if status == domain.ReportUnknown {
				err := fmt.Errorf("unknown report status: %s", args[i+1])
				h.output.Error(err)
				return err
			}
			i++
		default:
			err := fmt.Errorf("unexpected argument: %s", args[i])
			h.output.Error(err)
			return err
		}
	}

	res := h.backend.ListReports(h.ctx, status)
	if !res.OK() {
		return h.fail(res.Failure())
	}

	if h.output.IsJSON() {
		items := make([]ReportItem, 0, len(res.Value))
		for _, r := range res.Value {
			items = append(items, ReportItem{
				ID:        r.ID,
				Target:    r.Target(),
				Category:  r.Category,
				Reason:    r.Reason,
				Status:    r.StatusLabel(),
				CreatedAt: r.Timestamp.Time,
			})
		}
		h.output.JSON(ReportsResponse{Reports: items, Count: len(items)})
		return nil
	}

	if len(res.Value) == 0 {
		h.output.Println("No reports found.")
		return nil
	}
	for _, r := range res.Value {
		h.output.Print("%s  %s %s %s %s\n",
			util.Pad(r.ID, 10),
			util.Pad(r.StatusLabel(), 9),
			util.Pad(r.Target(), 16),
			util.Pad(r.Category, 10),
			util.Truncate(r.Reason, 40),
		)
	}
	h.output.Print("\n%d report(s)\n", len(res.Value))
	return nil
}

// handleResolve sets the final status of a report
func (h *Handler) handleResolve(args []string) error {
	if len(args) != 2 {
		err := fmt.Errorf("usage: resolve <id> <RESOLVED|REJECTED>")
		h.output.Error(err)
		return err
	}
	id := args[0]
	status := domain.ParseReportStatus(args[1])
	if !status.Resolution() {
		err := fmt.Errorf("status must be RESOLVED or REJECTED, got %s", args[1])
		h.output.Error(err)
		return err
	}

	res := h.backend.UpdateReportStatus(h.ctx, id, status)
	h.record(domain.JournalEntry{
		Action:    domain.ActionResolve,
		Target:    id,
		Detail:    status.String(),
		Succeeded: res.OK(),
		Outcome:   api.Describe(res.Failure()),
	})
	if !res.OK() {
		return h.fail(res.Failure())
	}

	if h.output.IsJSON() {
		h.output.JSON(ResolveResponse{ID: id, Status: status.String(), Updated: true})
		return nil
	}
	h.output.Print("Report %s marked %s\n", id, status)
	return nil
}
