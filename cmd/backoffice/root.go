package main

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Lelo88/backoffice-client-golang/internal/apiclient"
	"github.com/Lelo88/backoffice-client-golang/internal/config"
	"github.com/Lelo88/backoffice-client-golang/internal/prompt"
	"github.com/Lelo88/backoffice-client-golang/internal/similarname"
)

// app es el estado compartido por los comandos, armado en PersistentPreRunE.
type app struct {
	cfg       config.Config
	logger    *zap.Logger
	client    *apiclient.Client
	navigator *terminalNavigator
	driver    prompt.Driver
	out       io.Writer
}

func newRootCmd(deps appDeps) *cobra.Command {
	a := &app{driver: deps.driver, out: deps.out, logger: zap.NewNop()}
	var verbose bool

	root := &cobra.Command{
		Use:           "backoffice",
		Short:         "Cliente de terminal del back office",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.init(deps, verbose)
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			_ = a.logger.Sync()
		},
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log de depuración")

	root.AddCommand(
		newTokenCmd(a),
		newClientesCmd(a),
		newListasCmd(a),
		newProductosCmd(a),
		newEstadoCmd(a),
	)
	return root
}

func (a *app) init(deps appDeps, verbose bool) error {
	cfg, err := deps.loadConfig()
	if err != nil {
		return err
	}
	a.cfg = cfg

	level := cfg.LogLevel
	if verbose {
		level = "debug"
	}
	logger, err := deps.newLogger(level)
	if err != nil {
		return err
	}
	a.logger = logger

	a.navigator = newTerminalNavigator(a.out)
	a.client = apiclient.New(cfg.APIBaseURL, deps.newSession(cfg.TokenFile),
		apiclient.WithHTTPClient(deps.httpClient),
		apiclient.WithTimeout(cfg.APITimeout),
		apiclient.WithNavigator(a.navigator),
		apiclient.WithLogger(logger),
	)
	logger.Debug("backoffice ready", zap.String("api_base_url", cfg.APIBaseURL))
	return nil
}

// info escribe un mensaje por el driver.
func (a *app) info(ctx context.Context, message string) error {
	return a.driver.Info(ctx, message)
}

// report convierte un error de operación en alerta. Los errores de prompt
// (abortar, cancelar) se devuelven para cortar el comando.
func (a *app) report(ctx context.Context, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, prompt.ErrAborted) || errors.Is(err, prompt.ErrCancelled) || errors.Is(err, context.Canceled) {
		return err
	}
	if apiclient.IsUnauthorized(err) {
		// El navigator ya avisó que hay que volver a ingresar.
		return nil
	}
	a.logger.Debug("operation failed", zap.Error(err))
	return a.info(ctx, styles.alert.Render(alertMessage(err)))
}

func alertMessage(err error) string {
	var apiErr *apiclient.APIError
	switch {
	case errors.Is(err, similarname.ErrConfirmFailed):
		return "No se pudo crear el registro"
	case errors.As(err, &apiErr):
		return apiErr.Message
	case errors.Is(err, apiclient.ErrTransport):
		return "Error de conexión con la API"
	default:
		return fmt.Sprintf("Error: %v", err)
	}
}
