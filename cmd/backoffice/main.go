package main

import (
	"context"
	"errors"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"

	"go.uber.org/zap"

	"github.com/Lelo88/backoffice-client-golang/internal/config"
	"github.com/Lelo88/backoffice-client-golang/internal/logging"
	"github.com/Lelo88/backoffice-client-golang/internal/prompt"
	"github.com/Lelo88/backoffice-client-golang/internal/session"
)

var (
	loadConfigFn = config.Load
	fatalf       = func(args ...any) { log.Fatal(args...) }
)

// appDeps agrupa lo que el proceso toma del mundo exterior; los tests lo reemplazan.
type appDeps struct {
	loadConfig func() (config.Config, error)
	newLogger  func(level string) (*zap.Logger, error)
	newSession func(path string) session.Session
	httpClient *http.Client
	driver     prompt.Driver
	out        io.Writer
}

func defaultDeps() appDeps {
	return appDeps{
		loadConfig: loadConfigFn,
		newLogger:  logging.New,
		newSession: func(path string) session.Session { return session.NewFile(path) },
		driver:     prompt.NewSurvey(os.Stdout),
		out:        os.Stdout,
	}
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, defaultDeps(), os.Args[1:]); err != nil {
		fatalf(err)
	}
}

// run arma el árbol de comandos y lo ejecuta con args.
func run(ctx context.Context, deps appDeps, args []string) error {
	root := newRootCmd(deps)
	root.SetArgs(args)
	root.SetOut(deps.out)
	root.SetErr(deps.out)

	err := root.ExecuteContext(ctx)
	if errors.Is(err, prompt.ErrAborted) || errors.Is(err, prompt.ErrCancelled) {
		return nil
	}
	return err
}
