package main

import (
	"context"
	"strconv"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/Lelo88/backoffice-client-golang/internal/catalog"
	"github.com/Lelo88/backoffice-client-golang/internal/pricelists"
	"github.com/Lelo88/backoffice-client-golang/internal/prompt"
	"github.com/Lelo88/backoffice-client-golang/internal/sublist"
)

var productoOrder = []string{pricelists.FieldProducto, pricelists.FieldPrecioNeto, pricelists.FieldPrecioVenta}

func newListasCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "listas",
		Short: "Listas de precios",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "productos <id>",
		Short: "Edita los productos de una lista de precios",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.report(cmd.Context(), a.editProductos(cmd.Context(), args[0]))
		},
	})
	return cmd
}

func (a *app) editProductos(ctx context.Context, listID string) error {
	remote := pricelists.NewRemote(a.client)

	var (
		base  []catalog.ProductoBase
		items []pricelists.ProductoLista
	)
	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		var err error
		base, err = catalog.NewService(a.client).BaseProducts(groupCtx)
		return err
	})
	group.Go(func() error {
		var err error
		items, err = remote.List(groupCtx, listID)
		return err
	})
	if err := group.Wait(); err != nil {
		return err
	}

	manager := pricelists.NewManager(listID, items, remote,
		sublist.WithNotifier[pricelists.ProductoLista](prompt.Alerter{Ctx: ctx, Driver: a.driver}),
		sublist.WithLogger[pricelists.ProductoLista](a.logger))
	editor := pricelists.NewEditor(manager, base, nil)

	screen := listScreen[pricelists.ProductoLista]{
		title:   "Lista de precios " + listID,
		manager: manager,
		headers: []string{"Producto", "Unid/caja", "Precio neto", "Precio venta", "Default"},
		row:     productoRow,
		label:   func(producto pricelists.ProductoLista) string { return producto.Nombre },
		add: func(ctx context.Context) error {
			editor.OpenNew()
			return editProducto(ctx, a, editor, false)
		},
		edit: func(ctx context.Context, key sublist.Key) error {
			if err := editor.OpenEdit(key); err != nil {
				return err
			}
			return editProducto(ctx, a, editor, true)
		},
	}
	return screen.run(ctx, a)
}

func productoRow(producto pricelists.ProductoLista) []string {
	def := ""
	if producto.EsDefault {
		def = "sí"
	}
	return []string{
		producto.Nombre,
		strconv.Itoa(producto.UnidadesPorCaja),
		producto.PrecioNeto.StringFixed(2),
		producto.PrecioVenta.StringFixed(2),
		def,
	}
}

func editProducto(ctx context.Context, a *app, editor *pricelists.Editor, editing bool) error {
	for {
		if err := askProducto(ctx, a, editor, editing); err != nil {
			editor.Cancel()
			return err
		}
		_, err := editor.Save(ctx)
		if err == nil {
			return nil
		}
		retry, err := retryValidation(ctx, a, err, productoOrder)
		if err != nil || !retry {
			editor.Cancel()
			return err
		}
	}
}

func askProducto(ctx context.Context, a *app, editor *pricelists.Editor, editing bool) error {
	choose := !editing
	if editing {
		var err error
		choose, err = a.driver.Confirm(ctx, prompt.ConfirmConfig{Message: "¿Cambiar el producto?"})
		if err != nil {
			return err
		}
	}
	if choose {
		if err := chooseBaseProduct(ctx, a, editor); err != nil {
			return err
		}
	}

	draft := editor.Draft()
	prices := []struct {
		label   string
		current string
		set     func(string) error
	}{
		{"Precio neto", priceDefault(draft.PrecioNeto.IsPositive(), draft.PrecioNeto.String()), editor.SetPrecioNeto},
		{"Precio venta", priceDefault(draft.PrecioVenta.IsPositive(), draft.PrecioVenta.String()), editor.SetPrecioVenta},
	}
	for _, price := range prices {
		raw, err := a.driver.Input(ctx, prompt.InputConfig{
			Message: price.label,
			Default: price.current,
			Validator: func(text string) error {
				_, err := pricelists.ParsePrice(text)
				return err
			},
		})
		if err != nil {
			return err
		}
		if err := price.set(raw); err != nil {
			return err
		}
	}

	def, err := a.driver.Confirm(ctx, prompt.ConfirmConfig{Message: "¿Producto por defecto de la lista?", Default: draft.EsDefault})
	if err != nil {
		return err
	}
	return editor.SetDefault(def)
}

// chooseBaseProduct usa el combobox: se escribe un texto y se elige entre las coincidencias.
func chooseBaseProduct(ctx context.Context, a *app, editor *pricelists.Editor) error {
	combo := editor.Combobox()
	for {
		query, err := a.driver.Input(ctx, prompt.InputConfig{Message: "Buscar producto", Default: combo.Query()})
		if err != nil {
			return err
		}
		editor.Search(query)
		if !combo.Visible() {
			if err := a.info(ctx, styles.muted.Render("Sin coincidencias")); err != nil {
				return err
			}
			continue
		}

		filtered := combo.Filtered()
		options := make([]string, 0, len(filtered))
		for _, producto := range filtered {
			options = append(options, producto.Nombre)
		}
		index, err := a.driver.Select(ctx, prompt.SelectConfig{Message: "Producto", Options: options})
		if err != nil {
			combo.ClickOutside()
			return err
		}
		if _, ok := editor.ChooseProduct(index); ok {
			return nil
		}
		combo.ClickOutside()
	}
}

func priceDefault(set bool, value string) string {
	if !set {
		return ""
	}
	return value
}
