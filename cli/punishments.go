package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/deemkeen/crownconsole/api"
	"github.com/deemkeen/crownconsole/domain"
	"github.com/deemkeen/crownconsole/util"
)

const defaultListLimit = 20

// handlePunishments lists recent punishments
func (h *Handler) handlePunishments(args []string) error {
	limit, args, err := parseLimit(args, defaultListLimit)
	if err != nil {
		h.output.Error(err)
		return err
	}

	q := api.PunishmentQuery{Limit: limit}
	for i := 0; i < len(args); i++ {
		switch {
		case args[i] == "-t" && i+1 < len(args):
			q.Type = domain.ParsePunishmentType(args[i+1])
			if q.Type == domain.TypeUnknown {
				err := fmt.Errorf("unknown punishment type: %s", args[i+1])
				h.output.Error(err)
				return err
			}
			i++
		case args[i] == "-p" && i+1 < len(args):
			q.Target = args[i+1]
			i++
		case args[i] == "-m" && i+1 < len(args):
			q.Moderator = args[i+1]
			i++
		default:
			err := fmt.Errorf("unexpected argument: %s", args[i])
			h.output.Error(err)
			return err
		}
	}

	res := h.backend.ListPunishments(h.ctx, q)
	if !res.OK() {
		return h.fail(res.Failure())
	}

	if h.output.IsJSON() {
		items := make([]PunishmentItem, 0, len(res.Value))
		for _, p := range res.Value {
			items = append(items, newPunishmentItem(p))
		}
		h.output.JSON(PunishmentsResponse{Punishments: items, Count: len(items)})
		return nil
	}

	if len(res.Value) == 0 {
		h.output.Println("No punishments found.")
		return nil
	}
	for _, p := range res.Value {
		h.output.Print("%s  %s %s %s %s %s\n",
			util.Pad(p.ID, 10),
			util.Pad(p.TypeLabel(), 8),
			util.Pad(p.Target(), 16),
			util.Pad(p.StatusLabel(), 9),
			util.Pad(p.Moderator(), 14),
			util.Truncate(p.Reason, 40),
		)
	}
	h.output.Print("\n%d punishment(s)\n", len(res.Value))
	return nil
}

// handlePunishment shows one punishment with player info
func (h *Handler) handlePunishment(args []string) error {
	if len(args) != 1 {
		err := fmt.Errorf("usage: punishment <id>")
		h.output.Error(err)
		return err
	}

	res := h.backend.GetPunishment(h.ctx, args[0])
	if !res.OK() {
		return h.fail(res.Failure())
	}
	p := res.Value.Punishment
	info := res.Value.PlayerInfo

	if h.output.IsJSON() {
		resp := PunishmentDetailResponse{PunishmentItem: newPunishmentItem(p), ByIP: p.ByIP}
		if info != nil {
			resp.PlayerInfo = &PlayerInfoItem{
				IP:       info.IPLabel(),
				Location: info.LocationLabel(),
				Gamemode: info.GamemodeLabel(),
				Ping:     info.PingLabel(),
			}
		}
		h.output.JSON(resp)
		return nil
	}

	byIP := "No"
	if p.ByIP {
		byIP = "Yes"
	}
	h.output.Print("ID:        %s\n", p.ID)
	h.output.Print("Target:    %s\n", p.Target())
	h.output.Print("Type:      %s\n", p.TypeLabel())
	h.output.Print("Status:    %s\n", p.StatusLabel())
	h.output.Print("Reason:    %s\n", p.Reason)
	h.output.Print("Duration:  %s\n", p.DurationLabel())
	h.output.Print("By IP:     %s\n", byIP)
	h.output.Print("Moderator: %s\n", p.Moderator())
	h.output.Print("Date:      %s\n", p.Timestamp.Format(util.DateTimeFormat()))
	if info != nil {
		h.output.Println("")
		h.output.Print("IP:        %s\n", info.IPLabel())
		h.output.Print("Location:  %s\n", info.LocationLabel())
		h.output.Print("Gamemode:  %s\n", info.GamemodeLabel())
		h.output.Print("Ping:      %s\n", info.PingLabel())
	}
	return nil
}

// parsePunishArgs reads punish <target> <type> [-d <duration>] [--ip] <reason...>
func parsePunishArgs(args []string) (domain.CreateForm, bool, error) {
	var form domain.CreateForm
	if len(args) < 3 {
		return form, false, fmt.Errorf("usage: punish <target> <type> [-d <duration>] [--ip] <reason>")
	}
	form.Target = strings.TrimSpace(args[0])
	form.Type = domain.ParsePunishmentType(args[1])
	if form.Type == domain.TypeUnknown {
		return form, false, fmt.Errorf("unknown punishment type: %s", args[1])
	}

	var reason []string
	fromStdin := false
	rest := args[2:]
	for i := 0; i < len(rest); i++ {
		switch {
		case rest[i] == "-d" && i+1 < len(rest):
			form.Duration = rest[i+1]
			i++
		case rest[i] == "--ip":
			form.ByIP = true
		case rest[i] == "-" && len(reason) == 0:
			fromStdin = true
		default:
			reason = append(reason, rest[i])
		}
	}
	form.Reason = strings.Join(reason, " ")
	return form, fromStdin, nil
}

// handlePunish issues a punishment
func (h *Handler) handlePunish(args []string) error {
	form, fromStdin, err := parsePunishArgs(args)
	if err != nil {
		h.output.Error(err)
		return err
	}
	if fromStdin {
		data, err := io.ReadAll(h.session)
		if err != nil {
			h.output.Error(err)
			return err
		}
		form.Reason = strings.TrimSpace(string(data))
	}
	if form.Target == "" {
		err := fmt.Errorf("target cannot be empty")
		h.output.Error(err)
		return err
	}
	if strings.TrimSpace(form.Reason) == "" {
		err := fmt.Errorf("reason cannot be empty")
		h.output.Error(err)
		return err
	}
	form.Apply()

	res := h.backend.CreatePunishment(h.ctx, form)
	req := form.Request(h.backend.Session().AdminName())
	outcome := api.Describe(res.Failure())
	if res.OK() {
		outcome = fmt.Sprintf("%s on %s", strings.ToUpper(res.Value.Type), res.Value.Target)
	}
	h.record(domain.JournalEntry{
		Action:    domain.ActionPunish,
		Target:    req.Target,
		Detail:    strings.TrimSpace(fmt.Sprintf("%s %s: %s", req.Type, req.Duration, req.Reason)),
		Succeeded: res.OK(),
		Outcome:   outcome,
	})
	if !res.OK() {
		return h.fail(res.Failure())
	}

	if h.output.IsJSON() {
		h.output.JSON(PunishResponse{
			Status:  "created",
			ID:      res.Value.ID,
			Type:    strings.ToUpper(res.Value.Type),
			Target:  res.Value.Target,
			Message: res.Value.Message,
		})
		return nil
	}
	h.output.Print("Punishment executed successfully: %s\n", outcome)
	if res.Value.ID != "" {
		h.output.Print("ID: %s\n", res.Value.ID)
	}
	return nil
}
