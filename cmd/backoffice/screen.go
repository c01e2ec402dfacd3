package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/Lelo88/backoffice-client-golang/internal/apiclient"
	"github.com/Lelo88/backoffice-client-golang/internal/modal"
	"github.com/Lelo88/backoffice-client-golang/internal/prompt"
	"github.com/Lelo88/backoffice-client-golang/internal/similarname"
	"github.com/Lelo88/backoffice-client-golang/internal/sublist"
)

var listActions = []string{"Agregar", "Editar", "Eliminar", "Salir"}

const (
	actionAdd = iota
	actionEdit
	actionDelete
)

// listScreen es la pantalla de una lista de hijos: tabla + menú agregar/editar/eliminar.
type listScreen[T sublist.Record[T]] struct {
	title   string
	manager *sublist.Manager[T]
	headers []string
	row     func(T) []string
	label   func(T) string
	add     func(ctx context.Context) error
	edit    func(ctx context.Context, key sublist.Key) error
}

func (screen listScreen[T]) run(ctx context.Context, a *app) error {
	for {
		if err := a.info(ctx, screen.render()); err != nil {
			return err
		}
		action, err := a.driver.Select(ctx, prompt.SelectConfig{Message: "Acción", Options: listActions})
		if err != nil {
			return err
		}

		var opErr error
		switch action {
		case actionAdd:
			opErr = screen.add(ctx)
		case actionEdit:
			key, ok, err := screen.pick(ctx, a, "Editar")
			if err != nil {
				return err
			}
			if ok {
				opErr = screen.edit(ctx, key)
			}
		case actionDelete:
			opErr = screen.remove(ctx, a)
		default:
			return nil
		}

		if apiclient.IsUnauthorized(opErr) {
			return nil
		}
		if err := reportManaged(ctx, a, opErr); err != nil {
			return err
		}
	}
}

func (screen listScreen[T]) render() string {
	items := screen.manager.Items()
	rows := make([][]string, 0, len(items))
	for _, item := range items {
		rows = append(rows, screen.row(item))
	}
	return styles.title.Render(screen.title) + "\n" + renderTable(screen.headers, rows)
}

func (screen listScreen[T]) pick(ctx context.Context, a *app, message string) (sublist.Key, bool, error) {
	items := screen.manager.Items()
	if len(items) == 0 {
		return sublist.Key{}, false, a.info(ctx, styles.muted.Render("No hay registros"))
	}
	options := make([]string, 0, len(items))
	for _, item := range items {
		options = append(options, screen.label(item))
	}
	index, err := a.driver.Select(ctx, prompt.SelectConfig{Message: message, Options: options})
	if err != nil {
		return sublist.Key{}, false, err
	}
	if index < 0 || index >= len(items) {
		return sublist.Key{}, false, nil
	}
	return items[index].Key(), true, nil
}

func (screen listScreen[T]) remove(ctx context.Context, a *app) error {
	key, ok, err := screen.pick(ctx, a, "Eliminar")
	if err != nil || !ok {
		return err
	}
	confirmed, err := a.driver.Confirm(ctx, prompt.ConfirmConfig{Message: "¿Eliminar el registro?"})
	if err != nil || !confirmed {
		return err
	}
	return screen.manager.Delete(ctx, key)
}

// reportManaged alerta errores de operaciones de lista que el manager no alertó ya.
func reportManaged(ctx context.Context, a *app, err error) error {
	var apiErr *apiclient.APIError
	switch {
	case err == nil:
		return nil
	case errors.Is(err, sublist.ErrDuplicate), errors.As(err, &apiErr), errors.Is(err, apiclient.ErrTransport):
		return nil
	case errors.Is(err, sublist.ErrBusy):
		return a.info(ctx, styles.muted.Render("Hay una operación en curso"))
	}
	return a.report(ctx, err)
}

// showViolations lista los errores de validación en el orden de los campos.
func showViolations(ctx context.Context, a *app, invalid *modal.ValidationError, order []string) error {
	for _, name := range order {
		if message, ok := invalid.Fields[name]; ok {
			if err := a.info(ctx, styles.alert.Render(fmt.Sprintf("  %s", message))); err != nil {
				return err
			}
		}
	}
	return nil
}

// retryValidation devuelve true si hay que volver a pedir los campos.
func retryValidation(ctx context.Context, a *app, err error, order []string) (bool, error) {
	var invalid *modal.ValidationError
	if !errors.As(err, &invalid) {
		return false, err
	}
	if err := showViolations(ctx, a, invalid, order); err != nil {
		return false, err
	}
	return a.driver.Confirm(ctx, prompt.ConfirmConfig{Message: "¿Corregir los campos con error?", Default: true})
}

// submitSimilar envía un alta y, si hay nombres parecidos, pregunta si crear igual.
// ok es false cuando el usuario desiste.
func submitSimilar[T any](ctx context.Context, a *app, flow *similarname.Flow[T], payload map[string]any) (T, bool, error) {
	created, err := flow.Submit(ctx, payload)
	if !errors.Is(err, similarname.ErrPrompted) {
		return created, err == nil, err
	}

	conflict, _ := flow.Conflict()
	confirmed, err := prompt.AskSimilarName(ctx, a.driver, conflict)
	if err != nil || !confirmed {
		flow.Cancel()
		var zero T
		return zero, false, err
	}
	created, err = flow.Confirm(ctx)
	return created, err == nil, err
}
