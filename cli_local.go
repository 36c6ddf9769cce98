package main

import (
	"context"
	"os"

	"github.com/deemkeen/crownconsole/cli"
	"github.com/deemkeen/crownconsole/domain"
	"github.com/deemkeen/crownconsole/ui"
)

type stdio struct{}

func (stdio) Read(p []byte) (int, error)  { return os.Stdin.Read(p) }
func (stdio) Write(p []byte) (int, error) { return os.Stdout.Write(p) }

func runLocalCLI(ctx context.Context, services ui.Services, sess domain.Session, args []string) error {
	var journal cli.Journal
	if services.Journal != nil {
		journal = services.Journal
	}
	return cli.NewHandler(ctx, stdio{}, services.Client(sess), journal).Execute(args)
}
