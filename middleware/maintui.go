package middleware

import (
	"errors"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	bm "github.com/charmbracelet/wish/bubbletea"
	"github.com/deemkeen/crownconsole/cli"
	"github.com/deemkeen/crownconsole/domain"
	"github.com/deemkeen/crownconsole/ui"
	"github.com/deemkeen/crownconsole/util"
	"github.com/muesli/termenv"
)

// sessionFor reads token=, adminUuid= and adminName= from the SSH command
// and returns the validated session plus whatever command is left.
func sessionFor(command []string, fallback domain.LaunchParams) (domain.Session, []string, error) {
	params, rest := domain.ParseLaunchParams(command, fallback)
	sess, err := params.Session()
	if err != nil {
		return domain.Session{}, nil, err
	}
	return sess, rest, nil
}

func sessionError(err error) string {
	if errors.Is(err, domain.ErrMissingToken) {
		return "Error: no API token supplied. Connect with: ssh <server> token=<token> [adminName=<name>] [adminUuid=<uuid>]"
	}
	return "Error: " + err.Error()
}

// MainTui starts the console for interactive sessions and runs CLI commands
// for the rest. fallback fills launch parameters the client omits.
func MainTui(services ui.Services, fallback domain.LaunchParams) wish.Middleware {
	teaHandler := func(s ssh.Session) *tea.Program {
		sess, rest, err := sessionFor(s.Command(), fallback)
		if err != nil {
			wish.Println(s, sessionError(err))
			return nil
		}

		if len(rest) > 0 {
			handleCLI(s, services, sess, rest)
			return nil
		}

		pty, _, active := s.Pty()
		if !active {
			wish.Println(s, "no active terminal, skipping")
			return nil
		}

		util.Logger().Info("Console started", "admin", sess.AdminName(), "user", s.User())

		// Set the global color profile to ANSI256 for Docker compatibility
		lipgloss.SetColorProfile(termenv.ANSI256)

		m := ui.NewModel(s.Context(), services.Deps(sess), pty.Window.Width, pty.Window.Height)
		return tea.NewProgram(m, tea.WithFPS(60), tea.WithInput(s), tea.WithOutput(s), tea.WithAltScreen())
	}
	return bm.MiddlewareWithProgramHandler(teaHandler, termenv.ANSI256)
}

// handleCLI processes CLI commands in non-interactive mode
func handleCLI(s ssh.Session, services ui.Services, sess domain.Session, cmd []string) {
	var journal cli.Journal
	if services.Journal != nil {
		journal = services.Journal
	}
	handler := cli.NewHandler(s.Context(), s, services.Client(sess), journal)
	if err := handler.Execute(cmd); err != nil {
		util.Logger().Debug("CLI command failed", "cmd", cmd[0], "err", err)
	}
}
