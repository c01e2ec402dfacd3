package main

import (
	"errors"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Lelo88/backoffice-client-golang/internal/prompt"
)

func newTokenCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Administra el token de sesión",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "set [token]",
		Short: "Guarda el token de acceso",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			token := ""
			if len(args) == 1 {
				token = args[0]
			} else {
				var err error
				token, err = a.driver.Password(cmd.Context(), prompt.InputConfig{
					Message: "Token",
					Validator: func(text string) error {
						if strings.TrimSpace(text) == "" {
							return errors.New("el token es obligatorio")
						}
						return nil
					},
				})
				if err != nil {
					return err
				}
			}
			if err := a.client.SetToken(token); err != nil {
				return err
			}
			return a.info(cmd.Context(), styles.ok.Render("Token guardado"))
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "clear",
		Short: "Borra el token guardado",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.client.Logout(); err != nil {
				return err
			}
			return a.info(cmd.Context(), "Sesión cerrada")
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Muestra el token guardado (enmascarado)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.info(cmd.Context(), a.client.MaskedToken())
		},
	})

	return cmd
}
