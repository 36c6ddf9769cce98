package detail

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/deemkeen/crownconsole/domain"
	"github.com/deemkeen/crownconsole/ui/common"
	"github.com/deemkeen/crownconsole/util"
)

const (
	avatarCols = 12
	avatarRows = 6
)

type avatarRole int

const (
	targetAvatar avatarRole = iota
	moderatorAvatar
)

type avatarLoadedMsg struct {
	role avatarRole
	art  string
	err  error
}

// PunishmentModel is the two-pane punishment detail modal.
type PunishmentModel struct {
	deps    common.Deps
	ctx     context.Context
	Details domain.PunishmentDetails
	avatars [2]string
}

func NewPunishment(ctx context.Context, deps common.Deps, details domain.PunishmentDetails) PunishmentModel {
	return PunishmentModel{deps: deps, ctx: ctx, Details: details}
}

func (m PunishmentModel) Init() tea.Cmd {
	if m.deps.Avatars == nil {
		return nil
	}
	p := m.Details.Punishment
	return tea.Batch(
		fetchAvatar(m.ctx, m.deps.Avatars, targetAvatar, p.PlayerAvatarID()),
		fetchAvatar(m.ctx, m.deps.Avatars, moderatorAvatar, p.PunisherAvatarID()),
	)
}

func fetchAvatar(ctx context.Context, src common.AvatarSource, role avatarRole, id string) tea.Cmd {
	return func() tea.Msg {
		art, err := src.Avatar(ctx, id, avatarCols, avatarRows)
		return avatarLoadedMsg{role: role, art: art, err: err}
	}
}

func (m PunishmentModel) Update(msg tea.Msg) (PunishmentModel, tea.Cmd) {
	switch msg := msg.(type) {
	case avatarLoadedMsg:
		if msg.err != nil {
			util.Logger().Debug("avatar unavailable", "err", msg.err)
			return m, nil
		}
		m.avatars[msg.role] = msg.art
	case tea.KeyMsg:
		switch msg.String() {
		case "esc", "q", "enter":
			return m, func() tea.Msg { return common.CloseModalMsg{} }
		}
	}
	return m, nil
}

func placeholderAvatar(name string) string {
	initial := "?"
	if r := []rune(name); len(r) > 0 {
		initial = strings.ToUpper(string(r[0]))
	}
	return lipgloss.NewStyle().
		Width(avatarCols).
		Height(avatarRows).
		Align(lipgloss.Center, lipgloss.Center).
		Background(lipgloss.Color(common.COLOR_DIM)).
		Foreground(lipgloss.Color(common.COLOR_WHITE)).
		Render(initial)
}

func (m PunishmentModel) avatar(role avatarRole, name string) string {
	if art := m.avatars[role]; art != "" {
		return art
	}
	return placeholderAvatar(name)
}

func field(label, value string) string {
	return common.LabelStyle.Render(label) + " " + value
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}

func (m PunishmentModel) View() string {
	p := m.Details.Punishment
	info := m.Details.PlayerInfo

	left := lipgloss.JoinVertical(lipgloss.Center,
		common.ListBadgeStyle.Render("target"),
		m.avatar(targetAvatar, p.Target()),
		common.ListItemSelectedStyle.Render(p.Target()),
		"",
		common.ListBadgeStyle.Render("moderator"),
		m.avatar(moderatorAvatar, p.Moderator()),
		common.ListItemSelectedStyle.Render(p.Moderator()),
	)

	right := strings.Join([]string{
		field("ID", p.ID),
		field("Type", common.Badge(p.TypeLabel(), domain.TypeTone(p.Type))),
		field("Status", common.Badge(p.StatusLabel(), p.StatusTone())),
		field("Reason", util.Truncate(p.Reason, 48)),
		field("Duration", p.DurationLabel()),
		field("By IP", yesNo(p.ByIP)),
		field("Date", p.Timestamp.Format(util.DateTimeFormat())),
		"",
		common.CaptionStyle.Render("player info"),
		field("IP", info.IPLabel()),
		field("Location", info.LocationLabel()),
		field("Gamemode", info.GamemodeLabel()),
		field("Ping", info.PingLabel()),
	}, "\n")

	body := lipgloss.JoinHorizontal(lipgloss.Top, left, "    ", right)
	title := common.CaptionStyle.Render(fmt.Sprintf("punishment #%s", p.ID))
	help := common.ListBadgeStyle.Render("esc: close")
	return common.ModalStyle.Render(title + "\n\n" + body + "\n\n" + help)
}
