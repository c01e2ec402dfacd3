package prompt

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/Lelo88/backoffice-client-golang/internal/apiclient"
	"github.com/Lelo88/backoffice-client-golang/internal/form"
)

// ErrCancelled indica que el usuario decidió no seguir con el formulario.
var ErrCancelled = errors.New("prompt: cancelled")

// FillForm pide cada control editable del formulario y lo envía. Si el envío
// queda bloqueado muestra los errores y ofrece corregir sólo esos campos.
func FillForm(ctx context.Context, driver Driver, f *form.Form) error {
	only := map[string]bool(nil)
	for {
		for _, control := range f.Controls() {
			if control.Disabled || (only != nil && !only[control.Name]) {
				continue
			}
			value, err := AskControl(ctx, driver, control)
			if err != nil {
				return err
			}
			if err := f.Change(control.Name, value); err != nil {
				return err
			}
		}

		if f.Submit() {
			return nil
		}

		errs := f.Errors()
		only = make(map[string]bool, len(errs))
		for _, control := range f.Controls() {
			if message, ok := errs[control.Name]; ok {
				only[control.Name] = true
				if err := driver.Info(ctx, "  "+message); err != nil {
					return err
				}
			}
		}
		retry, err := driver.Confirm(ctx, ConfirmConfig{Message: "¿Corregir los campos con error?", Default: true})
		if err != nil {
			return err
		}
		if !retry {
			return ErrCancelled
		}
	}
}

// AskControl pide el valor de un control según su tipo.
func AskControl(ctx context.Context, driver Driver, control form.Control) (any, error) {
	switch control.Kind {
	case form.KindSelect:
		options := make([]string, 0, len(control.Choices))
		current := -1
		for index, choice := range control.Choices {
			options = append(options, choice.Label)
			if fmt.Sprint(control.Value) == choice.Value {
				current = index
			}
		}
		index, err := driver.Select(ctx, SelectConfig{Message: control.Label, Options: options, DefaultIndex: current})
		if err != nil {
			return nil, err
		}
		if index < 0 || index >= len(control.Choices) {
			return "", nil
		}
		return control.Choices[index].Value, nil

	case form.KindNumber:
		raw, err := driver.Input(ctx, InputConfig{
			Message: control.Label,
			Default: defaultText(control.Value),
			Validator: func(text string) error {
				number, err := strconv.Atoi(strings.TrimSpace(text))
				if err != nil || number < control.Min {
					return fmt.Errorf("debe ser un entero mayor o igual a %d", control.Min)
				}
				return nil
			},
		})
		if err != nil {
			return nil, err
		}
		number, err := strconv.Atoi(strings.TrimSpace(raw))
		if err != nil {
			return raw, nil
		}
		return number, nil

	default:
		return driver.Input(ctx, InputConfig{Message: control.Label, Default: defaultText(control.Value)})
	}
}

// AskSimilarName muestra los registros parecidos y pregunta si crear igual.
func AskSimilarName(ctx context.Context, driver Driver, conflict apiclient.SimilarNameConflict) (bool, error) {
	lines := []string{fmt.Sprintf("Ya existen registros con un nombre parecido a %q:", conflict.Input)}
	for _, match := range conflict.Matches {
		line := fmt.Sprintf("  - %s (id %s)", match.Nombre, match.ID)
		if match.Score != nil {
			line += fmt.Sprintf(" %.0f%%", *match.Score*100)
		}
		lines = append(lines, line)
	}
	if err := driver.Info(ctx, strings.Join(lines, "\n")); err != nil {
		return false, err
	}
	return driver.Confirm(ctx, ConfirmConfig{Message: "¿Crear de todas formas?"})
}

// Alerter muestra alertas por el driver. Implementa sublist.Notifier.
type Alerter struct {
	Ctx    context.Context
	Driver Driver
}

func (alerter Alerter) Alert(message string) {
	_ = alerter.Driver.Info(alerter.Ctx, "! "+message)
}

func defaultText(value any) string {
	switch typed := value.(type) {
	case nil:
		return ""
	case string:
		return typed
	case int:
		if typed == 0 {
			return ""
		}
		return strconv.Itoa(typed)
	default:
		return fmt.Sprint(typed)
	}
}
