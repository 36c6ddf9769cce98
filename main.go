package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"syscall"
	"time"

	"github.com/caarlos0/env/v11"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/x/term"
	"github.com/coreos/go-systemd/v22/daemon"
	"github.com/deemkeen/crownconsole/db"
	"github.com/deemkeen/crownconsole/domain"
	"github.com/deemkeen/crownconsole/middleware"
	"github.com/deemkeen/crownconsole/ui"
	"github.com/deemkeen/crownconsole/util"
	"github.com/deemkeen/crownconsole/web"
)

// launchEnv is the launch fallback read from CROWN_TOKEN, CROWN_ADMIN_UUID
// and CROWN_ADMIN_NAME.
type launchEnv struct {
	Token     string `env:"TOKEN"`
	AdminUUID string `env:"ADMIN_UUID"`
	AdminName string `env:"ADMIN_NAME"`
}

func envLaunchParams() (domain.LaunchParams, error) {
	var e launchEnv
	if err := env.ParseWithOptions(&e, env.Options{Prefix: util.EnvPrefix}); err != nil {
		return domain.LaunchParams{}, err
	}
	return domain.LaunchParams{Token: e.Token, AdminUUID: e.AdminUUID, AdminName: e.AdminName}, nil
}

func main() {
	version := flag.Bool("v", false, "print version and exit")
	serve := flag.Bool("serve", false, "serve the console over SSH and HTTP")
	token := flag.String("token", "", "API token (overrides CROWN_TOKEN)")
	adminUUID := flag.String("admin-uuid", "", "admin UUID recorded on report updates")
	adminName := flag.String("admin-name", "", "admin name recorded on punishments")
	flag.Parse()

	if *version {
		fmt.Printf("%s v%s\n", util.Name, util.GetVersion())
		return
	}

	conf, err := util.ReadConf()
	if err != nil {
		util.Logger().Fatal("Could not read config", "err", err)
	}

	fallback, err := envLaunchParams()
	if err != nil {
		util.Logger().Fatal("Could not read environment", "err", err)
	}
	params := overlay(fallback, domain.LaunchParams{Token: *token, AdminUUID: *adminUUID, AdminName: *adminName})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if *serve {
		util.SetupLogging(conf, os.Stderr)
		if err := runServer(ctx, conf, params); err != nil {
			util.Logger().Fatal("Server failed", "err", err)
		}
		return
	}

	if err := runLocal(ctx, conf, params, flag.Args()); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// overlay keeps every non-empty field of top over base.
func overlay(base, top domain.LaunchParams) domain.LaunchParams {
	if top.Token != "" {
		base.Token = top.Token
	}
	if top.AdminUUID != "" {
		base.AdminUUID = top.AdminUUID
	}
	if top.AdminName != "" {
		base.AdminName = top.AdminName
	}
	return base
}

func openJournal(conf *util.AppConfig) *db.DB {
	journal, err := db.GetDB(conf.Conf.JournalPath)
	if err != nil {
		util.Logger().Warn("Action journal disabled", "err", err)
		return nil
	}
	return journal
}

// runLocal drives the console in this terminal. Positional arguments are
// key=value launch parameters followed by an optional CLI command.
func runLocal(ctx context.Context, conf *util.AppConfig, fallback domain.LaunchParams, args []string) error {
	params, rest := domain.ParseLaunchParams(args, fallback)
	sess, err := params.Session()
	if err != nil {
		return err
	}

	logFile, err := openLogFile()
	if err != nil {
		return err
	}
	defer logFile.Close()
	util.SetupLogging(conf, logFile)

	journal := openJournal(conf)
	if journal != nil {
		defer journal.Close()
	}
	services := ui.NewServices(conf, journal)

	if len(rest) > 0 || !term.IsTerminal(os.Stdout.Fd()) {
		return runLocalCLI(ctx, services, sess, rest)
	}

	width, height, err := term.GetSize(os.Stdout.Fd())
	if err != nil {
		width, height = 0, 0
	}
	m := ui.NewModel(ctx, services.Deps(sess), width, height)
	_, err = tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	if errors.Is(err, tea.ErrProgramKilled) {
		return nil
	}
	return err
}

func openLogFile() (*os.File, error) {
	dir, err := util.GetConfigDir()
	if err != nil {
		return nil, err
	}
	return os.OpenFile(filepath.Join(dir, util.Name+".log"), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
}

func runServer(ctx context.Context, conf *util.AppConfig, fallback domain.LaunchParams) error {
	var keys []ssh.PublicKey
	if conf.Conf.AuthorizedKeys != "" {
		var err error
		keys, err = middleware.LoadAuthorizedKeys(conf.Conf.AuthorizedKeys)
		if err != nil {
			return fmt.Errorf("loading authorized keys: %w", err)
		}
		util.Logger().Info("Loaded authorized keys", "count", len(keys))
	}

	// without an allowlist, anyone could borrow the server's token
	sshFallback := fallback
	if len(keys) == 0 && fallback.Token != "" {
		util.Logger().Warn("No authorized keys configured, clients must bring their own token")
		sshFallback = domain.LaunchParams{}
	}

	journal := openJournal(conf)
	if journal != nil {
		defer journal.Close()
	}
	services := ui.NewServices(conf, journal)

	var feedSource web.PunishmentSource
	if conf.Conf.WithFeed {
		sess, err := fallback.Session()
		if err != nil {
			util.Logger().Warn("Feed disabled, no service token", "err", err)
		} else {
			feedSource = services.Client(sess)
		}
	}

	s, err := wish.NewServer(
		wish.WithAddress(net.JoinHostPort(conf.Conf.Host, strconv.Itoa(conf.Conf.SshPort))),
		wish.WithHostKeyPath(util.ResolveFilePath(util.Name+"_ed25519")),
		wish.WithPublicKeyAuth(middleware.PublicKeyAuth(keys)),
		wish.WithMiddleware(
			middleware.MainTui(services, sshFallback),
			middleware.AuthMiddleware(keys),
		),
	)
	if err != nil {
		return fmt.Errorf("creating SSH server: %w", err)
	}

	errCh := make(chan error, 2)
	go func() {
		util.Logger().Info("Starting SSH server", "addr", s.Addr)
		if err := s.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			errCh <- err
		}
	}()
	go func() {
		if err := web.Serve(ctx, conf, web.NewRouter(conf, feedSource)); err != nil {
			errCh <- err
		}
	}()

	if _, err := daemon.SdNotify(false, daemon.SdNotifyReady); err != nil {
		util.Logger().Warn("sd_notify failed", "err", err)
	}

	select {
	case err = <-errCh:
	case <-ctx.Done():
	}

	util.Logger().Info("Stopping servers")
	daemon.SdNotify(false, daemon.SdNotifyStopping)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if shutdownErr := s.Shutdown(shutdownCtx); shutdownErr != nil && !errors.Is(shutdownErr, ssh.ErrServerClosed) {
		util.Logger().Error("SSH shutdown failed", "err", shutdownErr)
	}
	return err
}
