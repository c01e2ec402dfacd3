package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Lelo88/backoffice-client-golang/internal/catalog"
	"github.com/Lelo88/backoffice-client-golang/internal/form"
	"github.com/Lelo88/backoffice-client-golang/internal/prompt"
	"github.com/Lelo88/backoffice-client-golang/internal/similarname"
)

func newProductosCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "productos",
		Short: "Catálogo de productos base",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "listar",
		Short: "Lista los productos base",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.report(cmd.Context(), a.listBaseProducts(cmd.Context()))
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "crear",
		Short: "Crea un producto base",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.report(cmd.Context(), a.createBaseProduct(cmd.Context()))
		},
	})

	return cmd
}

func (a *app) listBaseProducts(ctx context.Context) error {
	products, err := catalog.NewService(a.client).BaseProducts(ctx)
	if err != nil {
		return err
	}
	rows := make([][]string, 0, len(products))
	for _, product := range products {
		rows = append(rows, []string{string(product.ID), product.Nombre, product.Unidad, fmt.Sprint(product.UnidadesPorCaja)})
	}
	return a.info(ctx, renderTable([]string{"ID", "Nombre", "Unidad", "Unid/caja"}, rows))
}

var baseProductDescriptor = form.FromLabels(
	[]string{"nombre", "unidad", "unidades_por_caja"},
	map[string]any{"nombre": "", "unidad": "", "unidades_por_caja": 1},
	map[string]string{"nombre": "Nombre", "unidad": "Unidad", "unidades_por_caja": "Unidades por caja"},
	map[string][]form.Choice{"unidad": {
		{Value: "unidad", Label: "Unidad"},
		{Value: "kg", Label: "Kilogramo"},
		{Value: "lt", Label: "Litro"},
	}},
	[]string{"unidades_por_caja"},
	nil,
)

var baseProductRules = form.Rules{
	"nombre":            form.Required("Nombre"),
	"unidad":            form.Required("Unidad"),
	"unidades_por_caja": form.PositiveInt("Unidades por caja"),
}

func (a *app) createBaseProduct(ctx context.Context) error {
	var values map[string]any
	f := form.New(baseProductDescriptor, baseProductRules, func(submitted map[string]any) { values = submitted })
	if err := prompt.FillForm(ctx, a.driver, f); err != nil {
		return err
	}

	flow := similarname.New(catalog.NewService(a.client).CreateBaseProduct, similarname.WithLogger(a.logger))
	created, ok, err := submitSimilar(ctx, a, flow, values)
	if err != nil {
		return err
	}
	if !ok {
		return a.info(ctx, styles.muted.Render("Alta cancelada"))
	}
	return a.info(ctx, styles.ok.Render(fmt.Sprintf("Producto %s creado (id %s)", created.Nombre, created.ID)))
}
