package cli

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/deemkeen/crownconsole/api"
	"github.com/deemkeen/crownconsole/domain"
	"github.com/deemkeen/crownconsole/util"
)

// Session interface represents the minimal session requirements for CLI operations
type Session interface {
	io.Reader
	io.Writer
}

// Backend is the part of the REST API the CLI commands call
type Backend interface {
	Session() domain.Session
	ListPunishments(ctx context.Context, q api.PunishmentQuery) api.Result[[]domain.Punishment]
	GetPunishment(ctx context.Context, id string) api.Result[domain.PunishmentDetails]
	CreatePunishment(ctx context.Context, form domain.CreateForm) api.Result[domain.CreatePunishmentResponse]
	ListReports(ctx context.Context, status domain.ReportStatus) api.Result[[]domain.Report]
	UpdateReportStatus(ctx context.Context, id string, status domain.ReportStatus) api.Result[bool]
}

// Journal stores and lists actions taken through the console
type Journal interface {
	RecordAction(ctx context.Context, entry domain.JournalEntry) error
	ReadRecentActions(ctx context.Context, limit int) (error, *[]domain.JournalEntry)
}

// Handler processes CLI commands
type Handler struct {
	ctx      context.Context
	session  Session
	backend  Backend
	journal  Journal
	output   *Output
	jsonMode bool
}

// NewHandler creates a new CLI handler. journal may be nil.
func NewHandler(ctx context.Context, s Session, backend Backend, journal Journal) *Handler {
	return &Handler{
		ctx:     ctx,
		session: s,
		backend: backend,
		journal: journal,
	}
}

// Execute parses and executes a CLI command
func (h *Handler) Execute(args []string) error {
	args, h.jsonMode = parseGlobalFlags(args)
	h.output = NewOutput(h.session, h.jsonMode)

	if len(args) == 0 {
		return h.showHelp()
	}

	cmd := strings.ToLower(args[0])
	cmdArgs := args[1:]

	switch cmd {
	case "punishments":
		return h.handlePunishments(cmdArgs)
	case "punishment":
		return h.handlePunishment(cmdArgs)
	case "punish":
		return h.handlePunish(cmdArgs)
	case "reports":
		return h.handleReports(cmdArgs)
	case "resolve":
		return h.handleResolve(cmdArgs)
	case "history":
		return h.handleHistory(cmdArgs)
	case "--help", "-h", "help":
		return h.showHelp()
	default:
		err := fmt.Errorf("unknown command: %s", cmd)
		h.output.Error(err)
		return err
	}
}

// parseGlobalFlags extracts global flags like --json from args
func parseGlobalFlags(args []string) ([]string, bool) {
	jsonMode := false
	var filtered []string

	for _, arg := range args {
		switch arg {
		case "--json", "-j":
			jsonMode = true
		default:
			filtered = append(filtered, arg)
		}
	}

	return filtered, jsonMode
}

// parseLimit reads a -n flag, returning the remaining arguments
func parseLimit(args []string, def int) (int, []string, error) {
	limit := def
	var rest []string
	for i := 0; i < len(args); i++ {
		if args[i] != "-n" {
			rest = append(rest, args[i])
			continue
		}
		if i+1 >= len(args) {
			return 0, nil, fmt.Errorf("-n needs a value")
		}
		n, err := strconv.Atoi(args[i+1])
		if err != nil {
			return 0, nil, fmt.Errorf("invalid value for -n: %s", args[i+1])
		}
		if n < 1 {
			return 0, nil, fmt.Errorf("-n must be at least 1")
		}
		limit = n
		i++
	}
	return limit, rest, nil
}

// fail prints a backend failure the same way the console describes it
func (h *Handler) fail(err error) error {
	h.output.Error(fmt.Errorf("%s", api.Describe(err)))
	return err
}

func (h *Handler) record(entry domain.JournalEntry) {
	if h.journal == nil {
		return
	}
	entry.AdminName = h.backend.Session().AdminName()
	if err := h.journal.RecordAction(context.WithoutCancel(h.ctx), entry); err != nil {
		util.Logger().Warn("journal write failed", "err", err)
	}
}

// showHelp displays help information
func (h *Handler) showHelp() error {
	if h.output.IsJSON() {
		help := HelpResponse{
			Version: util.GetVersion(),
			Commands: []HelpCommand{
				{
					Name:        "punishments",
					Description: "List recent punishments",
					Usage:       "punishments [-n <count>] [-t <type>] [-p <player>] [-m <moderator>]",
					Flags: []string{
						"-n <count>: limit number of punishments (default 20)",
						"-t <type>: only show one type",
						"-p <player>: only show punishments of one player",
						"-m <moderator>: only show punishments issued by one moderator",
					},
				},
				{
					Name:        "punishment",
					Description: "Show one punishment with player info",
					Usage:       "punishment <id>",
				},
				{
					Name:        "punish",
					Description: "Issue a punishment",
					Usage:       "punish <target> <type> [-d <duration>] [--ip] <reason>",
					Flags: []string{
						"-d <duration>: e.g. 7d, ignored for kick, warn and freeze",
						"--ip: apply to the player's IP",
						"-: read reason from stdin",
					},
				},
				{
					Name:        "reports",
					Description: "List player reports",
					Usage:       "reports [-s <status>]",
					Flags:       []string{"-s <status>: OPEN, RESOLVED or REJECTED"},
				},
				{
					Name:        "resolve",
					Description: "Mark a report resolved or rejected",
					Usage:       "resolve <id> <RESOLVED|REJECTED>",
				},
				{
					Name:        "history",
					Description: "Show actions taken from this console",
					Usage:       "history [-n <count>]",
					Flags:       []string{"-n <count>: limit number of entries (default 20)"},
				},
				{
					Name:        "help",
					Description: "Show this help message",
					Usage:       "help",
				},
			},
			GlobalFlags: []string{
				"--json, -j: output in JSON format",
			},
		}
		h.output.JSON(help)
	} else {
		h.output.Println("crownconsole CLI - moderation from the terminal")
		h.output.Println("")
		h.output.Println("Usage: ssh -p <port> <server> [token=<token>] <command> [options]")
		h.output.Println("")
		h.output.Println("Commands:")
		h.output.Println("  punishments              List recent punishments")
		h.output.Println("  punishments -n <N>       Limit to N punishments")
		h.output.Println("  punishments -t <type>    Only show BAN, MUTE, ...")
		h.output.Println("  punishments -p <player>  Only show one player's punishments")
		h.output.Println("  punishments -m <mod>     Only show one moderator's punishments")
		h.output.Println("  punishment <id>          Show one punishment")
		h.output.Println("  punish <target> <type> [-d <dur>] [--ip] <reason>")
		h.output.Println("                           Issue a punishment")
		h.output.Println("  reports [-s <status>]    List player reports")
		h.output.Println("  resolve <id> <status>    Mark a report RESOLVED or REJECTED")
		h.output.Println("  history [-n <N>]         Show actions taken from this console")
		h.output.Println("  help                     Show this help message")
		h.output.Println("")
		h.output.Println("Global flags:")
		h.output.Println("  --json, -j               Output in JSON format")
		h.output.Println("")
		h.output.Println("Examples:")
		h.output.Println("  ssh -p 23234 localhost punishments -t ban")
		h.output.Println("  ssh -p 23234 localhost punish Steve ban -d 7d Griefing spawn")
		h.output.Println("  echo \"Spam\" | ssh -p 23234 localhost punish Steve mute -")
	}
	return nil
}
