package ui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/deemkeen/crownconsole/api"
	"github.com/deemkeen/crownconsole/ui/common"
	"github.com/deemkeen/crownconsole/ui/create"
	"github.com/deemkeen/crownconsole/ui/dashboard"
	"github.com/deemkeen/crownconsole/ui/detail"
	"github.com/deemkeen/crownconsole/ui/header"
	"github.com/deemkeen/crownconsole/ui/moderators"
	"github.com/deemkeen/crownconsole/ui/punishments"
	"github.com/deemkeen/crownconsole/ui/reports"
	"github.com/deemkeen/crownconsole/util"
)

type toast struct {
	id   int
	kind common.ToastKind
	text string
}

type toastExpiredMsg struct {
	id int
}

// MainModel routes between pages and owns everything that outlives a page:
// generations, the modal, toasts and the unauthorized notice.
type MainModel struct {
	width  int
	height int
	deps   common.Deps
	parent context.Context

	headerModel header.Model
	page        common.Page
	pageGen     uint64
	cancelPage  context.CancelFunc
	initCmd     tea.Cmd

	modal       common.ModalKind
	modalGen    uint64
	cancelModal context.CancelFunc

	dashboardModel   dashboard.Model
	punishmentsModel punishments.Model
	reportsModel     reports.Model
	moderatorsModel  moderators.Model

	punishmentModal detail.PunishmentModel
	reportModal     detail.ReportModel
	createModal     create.Model

	spinner   spinner.Model
	toasts    []toast
	nextToast int
	alert     string
}

func NewModel(ctx context.Context, deps common.Deps, width int, height int) MainModel {
	width = common.DefaultWindowWidth(width)
	height = common.DefaultWindowHeight(height)

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color(common.COLOR_ACCENT))

	m := MainModel{
		width:            width,
		height:           height,
		deps:             deps,
		parent:           ctx,
		headerModel:      header.Model{Width: width, AdminName: deps.Session.AdminName()},
		dashboardModel:   dashboard.InitialModel(deps, width, height),
		punishmentsModel: punishments.InitialModel(deps, width, height),
		reportsModel:     reports.InitialModel(deps, width, height),
		moderatorsModel:  moderators.InitialModel(deps, width, height),
		spinner:          s,
	}
	m, m.initCmd = m.ShowPage(common.DashboardPage)
	return m
}

func (m MainModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.initCmd)
}

// ShowPage switches to p: it bumps the page generation, cancels the previous
// page's requests, puts the page into its loading state and returns its fetch.
func (m MainModel) ShowPage(p common.Page) (MainModel, tea.Cmd) {
	if m.cancelPage != nil {
		m.cancelPage()
	}
	ctx, cancel := context.WithCancel(m.parent)
	m.cancelPage = cancel
	m.pageGen++
	m.page = p
	m.headerModel.Current = p

	var cmd tea.Cmd
	switch p {
	case common.DashboardPage:
		m.dashboardModel, cmd = m.dashboardModel.Load(ctx)
	case common.PunishmentsPage:
		m.punishmentsModel, cmd = m.punishmentsModel.Load(ctx)
	case common.ReportsPage:
		m.reportsModel, cmd = m.reportsModel.Load(ctx)
	case common.ModeratorsPage:
		m.moderatorsModel, cmd = m.moderatorsModel.Load(ctx)
	}
	return m, common.Scoped(common.PageScope, m.pageGen, cmd)
}

func (m MainModel) pageLoading() bool {
	switch m.page {
	case common.DashboardPage:
		return m.dashboardModel.Loading
	case common.PunishmentsPage:
		return m.punishmentsModel.Loading
	case common.ReportsPage:
		return m.reportsModel.Loading
	case common.ModeratorsPage:
		return m.moderatorsModel.Loading
	}
	panic("unreachable page")
}

func (m MainModel) openModal(kind common.ModalKind, init func(ctx context.Context, m *MainModel) tea.Cmd) (MainModel, tea.Cmd) {
	m = m.closeModal()
	ctx, cancel := context.WithCancel(m.parent)
	m.cancelModal = cancel
	m.modal = kind
	cmd := init(ctx, &m)
	return m, common.Scoped(common.ModalScope, m.modalGen, cmd)
}

func (m MainModel) closeModal() MainModel {
	if m.cancelModal != nil {
		m.cancelModal()
		m.cancelModal = nil
	}
	m.modalGen++
	m.modal = common.NoModal
	return m
}

func (m MainModel) addToast(kind common.ToastKind, text string) (MainModel, tea.Cmd) {
	m.nextToast++
	id := m.nextToast
	m.toasts = append(m.toasts, toast{id: id, kind: kind, text: text})
	return m, tea.Tick(common.ToastDuration, func(time.Time) tea.Msg {
		return toastExpiredMsg{id: id}
	})
}

func (m MainModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.headerModel.Width = msg.Width
		m.dashboardModel.Width, m.dashboardModel.Height = msg.Width, msg.Height
		m.punishmentsModel.Width, m.punishmentsModel.Height = msg.Width, msg.Height
		m.reportsModel.Width, m.reportsModel.Height = msg.Width, msg.Height
		m.moderatorsModel.Width, m.moderatorsModel.Height = msg.Width, msg.Height
		return m, nil

	case spinner.TickMsg:
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case toastExpiredMsg:
		kept := m.toasts[:0:0]
		for _, t := range m.toasts {
			if t.id != msg.id {
				kept = append(kept, t)
			}
		}
		m.toasts = kept
		return m, nil

	case common.ScopedMsg:
		return m.routeScoped(msg)

	case common.ToastMsg:
		return m.addToast(msg.Kind, msg.Text)

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	if m.modal != common.NoModal {
		return m.updateModal(msg)
	}
	return m, nil
}

func (m MainModel) routeScoped(msg common.ScopedMsg) (tea.Model, tea.Cmd) {
	switch msg.Scope {
	case common.PageScope:
		if msg.Gen != m.pageGen {
			return m, nil
		}
	case common.ModalScope:
		if m.modal == common.NoModal || msg.Gen != m.modalGen {
			return m, nil
		}
	}

	if f, ok := msg.Msg.(common.Failable); ok && errors.Is(f.Failure(), api.ErrUnauthorized) {
		util.Logger().Warn("backend rejected the session token")
		m.alert = api.Describe(api.ErrUnauthorized)
		if msg.Scope == common.ModalScope {
			// the modal would otherwise wait on a result it never gets
			m = m.closeModal()
		}
		return m, nil
	}

	switch inner := msg.Msg.(type) {
	case common.ToastMsg:
		return m.addToast(inner.Kind, inner.Text)

	case common.CloseModalMsg:
		return m.closeModal(), nil

	case common.OpenCreateMsg:
		return m.openModal(common.CreateModal, func(ctx context.Context, m *MainModel) tea.Cmd {
			m.createModal = create.New(ctx, m.deps)
			return m.createModal.Init()
		})

	case common.PunishmentDetailsMsg:
		if !inner.OK() {
			return m.addToast(common.ToastError, "Could not load punishment: "+api.Describe(inner.Failure()))
		}
		return m.openModal(common.PunishmentModal, func(ctx context.Context, m *MainModel) tea.Cmd {
			m.punishmentModal = detail.NewPunishment(ctx, m.deps, inner.Value)
			return m.punishmentModal.Init()
		})

	case common.ReportDetailsMsg:
		if !inner.OK() {
			return m.addToast(common.ToastError, "Could not load report: "+api.Describe(inner.Failure()))
		}
		return m.openModal(common.ReportModal, func(_ context.Context, m *MainModel) tea.Cmd {
			m.reportModal = detail.NewReport(inner.Value)
			return nil
		})

	case common.PunishmentCreatedMsg:
		var toastCmd, pageCmd tea.Cmd
		m = m.closeModal()
		m, toastCmd = m.addToast(common.ToastSuccess,
			fmt.Sprintf("Punishment executed successfully: %s on %s", inner.Type, inner.Target))
		m, pageCmd = m.ShowPage(common.PunishmentsPage)
		return m, tea.Batch(toastCmd, pageCmd)
	}

	if msg.Scope == common.ModalScope {
		return m.updateModal(msg.Msg)
	}
	return m.updatePage(msg.Msg)
}

func (m MainModel) updatePage(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.page {
	case common.DashboardPage:
		m.dashboardModel, cmd = m.dashboardModel.Update(msg)
	case common.PunishmentsPage:
		m.punishmentsModel, cmd = m.punishmentsModel.Update(msg)
	case common.ReportsPage:
		m.reportsModel, cmd = m.reportsModel.Update(msg)
	case common.ModeratorsPage:
		m.moderatorsModel, cmd = m.moderatorsModel.Update(msg)
	}
	return m, common.Scoped(common.PageScope, m.pageGen, cmd)
}

func (m MainModel) updateModal(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.modal {
	case common.NoModal:
		return m, nil
	case common.PunishmentModal:
		m.punishmentModal, cmd = m.punishmentModal.Update(msg)
	case common.ReportModal:
		m.reportModal, cmd = m.reportModal.Update(msg)
	case common.CreateModal:
		m.createModal, cmd = m.createModal.Update(msg)
	}
	return m, common.Scoped(common.ModalScope, m.modalGen, cmd)
}

func (m MainModel) quit() (tea.Model, tea.Cmd) {
	if m.cancelPage != nil {
		m.cancelPage()
	}
	m = m.closeModal()
	return m, tea.Quit
}

func (m MainModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	if key == "ctrl+c" {
		return m.quit()
	}
	if m.alert != "" {
		m.alert = ""
		return m, nil
	}
	if m.modal != common.NoModal {
		return m.updateModal(msg)
	}

	switch key {
	case "q":
		return m.quit()
	case "tab":
		return m.ShowPage(m.page.Next())
	case "shift+tab":
		return m.ShowPage(m.page.Prev())
	}
	if p, ok := common.PageForKey(key); ok {
		return m.ShowPage(p)
	}
	return m.updatePage(msg)
}

func toastStyle(kind common.ToastKind) lipgloss.Style {
	var color string
	var icon string
	switch kind {
	case common.ToastSuccess:
		color, icon = common.COLOR_SUCCESS, "✔"
	case common.ToastError:
		color, icon = common.COLOR_ERROR, "✖"
	case common.ToastWarning:
		color, icon = common.COLOR_WARNING, "!"
	case common.ToastInfo:
		color, icon = common.COLOR_INFO, "i"
	}
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(color)).
		SetString(icon)
}

func (m MainModel) pageView() string {
	switch m.page {
	case common.DashboardPage:
		return m.dashboardModel.View()
	case common.PunishmentsPage:
		return m.punishmentsModel.View()
	case common.ReportsPage:
		return m.reportsModel.View()
	case common.ModeratorsPage:
		return m.moderatorsModel.View()
	}
	panic("unreachable page")
}

func (m MainModel) pageHelp() string {
	switch m.page {
	case common.DashboardPage:
		return m.dashboardModel.Help()
	case common.PunishmentsPage:
		return m.punishmentsModel.Help()
	case common.ReportsPage:
		return m.reportsModel.Help()
	case common.ModeratorsPage:
		return m.moderatorsModel.Help()
	}
	panic("unreachable page")
}

func (m MainModel) modalView() string {
	switch m.modal {
	case common.PunishmentModal:
		return m.punishmentModal.View()
	case common.ReportModal:
		return m.reportModal.View()
	case common.CreateModal:
		return m.createModal.View()
	case common.NoModal:
		return ""
	}
	panic("unreachable modal")
}

func (m MainModel) View() string {
	if m.width < common.MinWindowWidth || m.height < common.MinWindowHeight {
		message := fmt.Sprintf(
			"Terminal too small!\n\nMinimum required: %dx%d\nCurrent size: %dx%d\n\nPlease resize your terminal.",
			common.MinWindowWidth, common.MinWindowHeight, m.width, m.height,
		)
		return lipgloss.NewStyle().
			Width(m.width).
			Height(m.height).
			Align(lipgloss.Center, lipgloss.Center).
			Foreground(lipgloss.Color(common.COLOR_CRITICAL)).
			Bold(true).
			Render(message)
	}

	var toastLines []string
	for _, t := range m.toasts {
		style := toastStyle(t.kind)
		toastLines = append(toastLines, style.String()+" "+style.UnsetString().Render(util.Truncate(t.text, common.ToastWidth)))
	}

	bodyHeight := m.height - common.HeaderHeight - common.FooterHeight - len(toastLines)
	if bodyHeight < 1 {
		bodyHeight = 1
	}

	var body string
	switch {
	case m.alert != "":
		notice := common.AlertStyle.Render(m.alert + "\n\n" + common.ListBadgeStyle.Render("press any key"))
		body = lipgloss.Place(m.width, bodyHeight, lipgloss.Center, lipgloss.Center, notice)
	case m.modal != common.NoModal:
		body = lipgloss.Place(m.width, bodyHeight, lipgloss.Center, lipgloss.Center, m.modalView())
	case m.pageLoading():
		body = m.spinner.View() + " Loading..."
	default:
		body = m.pageView()
	}
	body = lipgloss.NewStyle().
		MarginLeft(1).
		Height(bodyHeight).
		MaxHeight(bodyHeight).
		Render(body)

	helpText := fmt.Sprintf("%s\t\tkeys > tab: next • shift+tab: prev • 1-4: jump • %s • q: quit",
		strings.ToLower(m.page.String()), m.pageHelp())
	if m.modal != common.NoModal {
		helpText = "esc: close"
	}
	helpStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(common.COLOR_HELP)).
		Width(m.width).
		Align(lipgloss.Center)

	parts := []string{m.headerModel.View(), body}
	if len(toastLines) > 0 {
		parts = append(parts, strings.Join(toastLines, "\n"))
	}
	parts = append(parts, helpStyle.Render(helpText))
	return strings.Join(parts, "\n")
}
