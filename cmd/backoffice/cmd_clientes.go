package main

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/Lelo88/backoffice-client-golang/internal/addresses"
	"github.com/Lelo88/backoffice-client-golang/internal/apiclient"
	"github.com/Lelo88/backoffice-client-golang/internal/clients"
	"github.com/Lelo88/backoffice-client-golang/internal/form"
	"github.com/Lelo88/backoffice-client-golang/internal/prompt"
	"github.com/Lelo88/backoffice-client-golang/internal/sublist"
)

func newClientesCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "clientes",
		Aliases: []string{"cliente"},
		Short:   "Alta y edición de clientes",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "crear",
		Short: "Crea un cliente con sus direcciones",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.report(cmd.Context(), a.createCliente(cmd.Context()))
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "ver <id>",
		Short: "Muestra un cliente y sus direcciones",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.report(cmd.Context(), a.showCliente(cmd.Context(), args[0]))
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "direcciones <id>",
		Short: "Edita las direcciones de un cliente",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.report(cmd.Context(), a.editDirecciones(cmd.Context(), args[0]))
		},
	})

	return cmd
}

func (a *app) createCliente(ctx context.Context) error {
	var values map[string]any
	f := form.New(clients.Descriptor(clients.Cliente{}, false), clients.Rules(), func(submitted map[string]any) {
		values = submitted
	})
	if err := prompt.FillForm(ctx, a.driver, f); err != nil {
		return err
	}

	// Sin cliente persistido las direcciones quedan como borrador y viajan en el alta.
	drafts := sublist.New[addresses.Direccion]("", nil, nil,
		sublist.WithNotifier[addresses.Direccion](prompt.Alerter{Ctx: ctx, Driver: a.driver}),
		sublist.WithLogger[addresses.Direccion](a.logger))
	more, err := a.driver.Confirm(ctx, prompt.ConfirmConfig{Message: "¿Agregar direcciones?"})
	if err != nil {
		return err
	}
	if more {
		screen := newDireccionesScreen(a, "Direcciones del cliente nuevo", drafts)
		if err := screen.run(ctx, a); err != nil {
			return err
		}
	}

	service := clients.NewService(a.client, a.logger)
	flow := service.CreateFlow()
	created, ok, err := submitSimilar(ctx, a, flow, clients.Payload(values, drafts.Items()))
	if err != nil {
		return err
	}
	if !ok {
		return a.info(ctx, styles.muted.Render("Alta cancelada"))
	}
	if err := a.info(ctx, styles.ok.Render(fmt.Sprintf("Cliente %s creado (id %s)", created.Nombre, created.ID))); err != nil {
		return err
	}

	// Las direcciones ya viven bajo el cliente creado.
	drafts.SetParentID(string(created.ID))
	if created.Direcciones != nil {
		drafts.Sync(created.Direcciones)
	}
	if len(drafts.Items()) == 0 {
		return nil
	}
	return a.info(ctx, newDireccionesScreen(a, "Direcciones de "+created.Nombre, drafts).render())
}

// notFound avisa que el cliente no existe; cualquier otro error sigue su camino.
func (a *app) notFound(ctx context.Context, id string, err error) error {
	if apiclient.IsNotFound(err) {
		return a.info(ctx, styles.alert.Render(fmt.Sprintf("El cliente %s no existe", id)))
	}
	return err
}

func (a *app) showCliente(ctx context.Context, id string) error {
	cliente, err := clients.NewService(a.client, a.logger).Get(ctx, id)
	if err != nil {
		return a.notFound(ctx, id, err)
	}
	rows := [][]string{
		{"Nombre", cliente.Nombre},
		{"RUT", cliente.RUT},
		{"Giro", cliente.Giro},
		{"Email", cliente.Email},
		{"Teléfono", cliente.Telefono},
		{"Tipo", cliente.TipoCliente},
		{"Días de crédito", strconv.Itoa(cliente.DiasCredito)},
	}
	direcciones := make([][]string, 0, len(cliente.Direcciones))
	for _, direccion := range cliente.Direcciones {
		direcciones = append(direcciones, direccionRow(direccion))
	}
	return a.info(ctx, styles.title.Render("Cliente "+string(cliente.ID))+"\n"+
		renderTable([]string{"Campo", "Valor"}, rows)+"\n"+
		styles.title.Render("Direcciones")+"\n"+
		renderTable(direccionHeaders, direcciones))
}

func (a *app) editDirecciones(ctx context.Context, id string) error {
	service := clients.NewService(a.client, a.logger)
	cliente, err := service.Get(ctx, id)
	if err != nil {
		return a.notFound(ctx, id, err)
	}
	manager := sublist.New(id, cliente.Direcciones, sublist.Remote[addresses.Direccion](service.Addresses()),
		sublist.WithNotifier[addresses.Direccion](prompt.Alerter{Ctx: ctx, Driver: a.driver}),
		sublist.WithLogger[addresses.Direccion](a.logger))
	screen := newDireccionesScreen(a, "Direcciones de "+cliente.Nombre, manager)
	return screen.run(ctx, a)
}
