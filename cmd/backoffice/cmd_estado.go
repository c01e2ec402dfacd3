package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/Lelo88/backoffice-client-golang/internal/health"
)

func newEstadoCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "estado",
		Short: "Consulta si la API está viva y lista",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			report, err := health.New(a.client).Check(ctx)
			if err != nil {
				return a.report(ctx, err)
			}
			if !report.Ready {
				return a.info(ctx, styles.notice.Render(fmt.Sprintf("API viva pero no lista: %s", report.Detail)))
			}
			return a.info(ctx, styles.ok.Render(fmt.Sprintf("API OK (%s)", report.Elapsed.Round(time.Millisecond))))
		},
	}
}
