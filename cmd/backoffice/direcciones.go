package main

import (
	"context"
	"slices"

	"github.com/Lelo88/backoffice-client-golang/internal/addresses"
	"github.com/Lelo88/backoffice-client-golang/internal/catalog"
	"github.com/Lelo88/backoffice-client-golang/internal/prompt"
	"github.com/Lelo88/backoffice-client-golang/internal/sublist"
)

var direccionOrder = []string{
	addresses.FieldTipoDireccion,
	addresses.FieldNombreSucursal,
	addresses.FieldCalle,
	addresses.FieldNumero,
	addresses.FieldRegion,
	addresses.FieldComuna,
}

var direccionHeaders = []string{"Tipo", "Sucursal", "Dirección", "Comuna", "Región", "Principal"}

func direccionRow(direccion addresses.Direccion) []string {
	principal := ""
	if direccion.EsPrincipal {
		principal = "sí"
	}
	return []string{
		direccion.TipoDireccion,
		direccion.NombreSucursal,
		direccion.Calle + " " + direccion.Numero,
		direccion.Comuna,
		direccion.Region,
		principal,
	}
}

func direccionLabel(direccion addresses.Direccion) string {
	return direccion.NombreSucursal + " (" + direccion.Calle + " " + direccion.Numero + ")"
}

// newDireccionesScreen arma la pantalla de direcciones sobre manager.
func newDireccionesScreen(a *app, title string, manager *sublist.Manager[addresses.Direccion]) listScreen[addresses.Direccion] {
	editor := addresses.NewEditor(manager, nil)
	return listScreen[addresses.Direccion]{
		title:   title,
		manager: manager,
		headers: direccionHeaders,
		row:     direccionRow,
		label:   direccionLabel,
		add: func(ctx context.Context) error {
			editor.OpenNew()
			return editDireccion(ctx, a, editor)
		},
		edit: func(ctx context.Context, key sublist.Key) error {
			if err := editor.OpenEdit(key); err != nil {
				return err
			}
			return editDireccion(ctx, a, editor)
		},
	}
}

// editDireccion pide los campos del editor abierto y guarda, repitiendo mientras
// haya errores de validación y el usuario quiera corregirlos.
func editDireccion(ctx context.Context, a *app, editor *addresses.Editor) error {
	for {
		if err := askDireccion(ctx, a, editor); err != nil {
			editor.Cancel()
			return err
		}
		_, err := editor.Save(ctx)
		if err == nil {
			return nil
		}
		retry, err := retryValidation(ctx, a, err, direccionOrder)
		if err != nil || !retry {
			editor.Cancel()
			return err
		}
	}
}

func askDireccion(ctx context.Context, a *app, editor *addresses.Editor) error {
	draft := editor.Draft()

	tipo, err := a.driver.Select(ctx, prompt.SelectConfig{
		Message:      addresses.Labels[addresses.FieldTipoDireccion],
		Options:      addresses.TiposDireccion,
		DefaultIndex: slices.Index(addresses.TiposDireccion, draft.TipoDireccion),
	})
	if err != nil {
		return err
	}
	if tipo >= 0 && tipo < len(addresses.TiposDireccion) {
		if err := editor.Set(addresses.FieldTipoDireccion, addresses.TiposDireccion[tipo]); err != nil {
			return err
		}
	}

	texts := []struct{ field, current string }{
		{addresses.FieldNombreSucursal, draft.NombreSucursal},
		{addresses.FieldCalle, draft.Calle},
		{addresses.FieldNumero, draft.Numero},
	}
	for _, text := range texts {
		value, err := a.driver.Input(ctx, prompt.InputConfig{Message: addresses.Labels[text.field], Default: text.current})
		if err != nil {
			return err
		}
		if err := editor.Set(text.field, value); err != nil {
			return err
		}
	}

	regiones := catalog.RegionNames()
	region, err := a.driver.Select(ctx, prompt.SelectConfig{
		Message:      addresses.Labels[addresses.FieldRegion],
		Options:      regiones,
		DefaultIndex: slices.Index(regiones, draft.Region),
	})
	if err != nil {
		return err
	}
	if region >= 0 && region < len(regiones) && regiones[region] != draft.Region {
		if err := editor.SelectRegion(regiones[region]); err != nil {
			return err
		}
	}

	if editor.ComunaEnabled() {
		comunas := editor.Comunas()
		comuna, err := a.driver.Select(ctx, prompt.SelectConfig{
			Message:      addresses.Labels[addresses.FieldComuna],
			Options:      comunas,
			DefaultIndex: slices.Index(comunas, editor.Draft().Comuna),
		})
		if err != nil {
			return err
		}
		if comuna >= 0 && comuna < len(comunas) {
			if err := editor.SelectComuna(comunas[comuna]); err != nil {
				return err
			}
		}
	}

	principal, err := a.driver.Confirm(ctx, prompt.ConfirmConfig{Message: "¿Dirección principal?", Default: draft.EsPrincipal})
	if err != nil {
		return err
	}
	if err := editor.SetPrincipal(principal); err != nil {
		return err
	}
	if notice := editor.Notice(); notice != "" {
		return a.info(ctx, styles.notice.Render(notice))
	}
	return nil
}
