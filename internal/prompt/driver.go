package prompt

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"
)

// ErrAborted indica que el usuario cortó el prompt (Ctrl+C).
var ErrAborted = errors.New("prompt: aborted")

// InputConfig configura un prompt de texto.
type InputConfig struct {
	Message   string
	Default   string
	Help      string
	Validator func(string) error
}

// ConfirmConfig configura un prompt sí/no.
type ConfirmConfig struct {
	Message string
	Default bool
	Help    string
}

// SelectConfig configura un select de una opción.
type SelectConfig struct {
	Message      string
	Options      []string
	DefaultIndex int
	Help         string
	PageSize     int
}

// Driver abstrae la terminal para poder testear las pantallas sin una.
type Driver interface {
	Input(ctx context.Context, cfg InputConfig) (string, error)
	Password(ctx context.Context, cfg InputConfig) (string, error)
	Confirm(ctx context.Context, cfg ConfirmConfig) (bool, error)
	Select(ctx context.Context, cfg SelectConfig) (int, error)
	Info(ctx context.Context, msg string) error
}

type surveyDriver struct {
	out io.Writer
}

// NewSurvey devuelve el driver interactivo. Los mensajes informativos van a out
// (stdout si es nil).
func NewSurvey(out io.Writer) Driver {
	if out == nil {
		out = os.Stdout
	}
	return &surveyDriver{out: out}
}

func (driver *surveyDriver) Input(ctx context.Context, cfg InputConfig) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	var out string
	question := &survey.Input{Message: cfg.Message, Help: cfg.Help, Default: cfg.Default}
	if err := survey.AskOne(question, &out, validatorOpts(cfg.Validator)...); err != nil {
		return "", translate(err)
	}
	return out, nil
}

func (driver *surveyDriver) Password(ctx context.Context, cfg InputConfig) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	var out string
	question := &survey.Password{Message: cfg.Message, Help: cfg.Help}
	if err := survey.AskOne(question, &out, validatorOpts(cfg.Validator)...); err != nil {
		return "", translate(err)
	}
	return out, nil
}

func (driver *surveyDriver) Confirm(ctx context.Context, cfg ConfirmConfig) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	var out bool
	question := &survey.Confirm{Message: cfg.Message, Help: cfg.Help, Default: cfg.Default}
	if err := survey.AskOne(question, &out); err != nil {
		return false, translate(err)
	}
	return out, nil
}

func (driver *surveyDriver) Select(ctx context.Context, cfg SelectConfig) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	var out int
	question := &survey.Select{Message: cfg.Message, Options: cfg.Options, Help: cfg.Help}
	if cfg.PageSize > 0 {
		question.PageSize = cfg.PageSize
	}
	if cfg.DefaultIndex >= 0 && cfg.DefaultIndex < len(cfg.Options) {
		question.Default = cfg.Options[cfg.DefaultIndex]
	}
	// Con destino int survey guarda el índice elegido.
	if err := survey.AskOne(question, &out); err != nil {
		return 0, translate(err)
	}
	return out, nil
}

func (driver *surveyDriver) Info(ctx context.Context, msg string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	_, err := fmt.Fprintln(driver.out, msg)
	return err
}

func validatorOpts(validator func(string) error) []survey.AskOpt {
	if validator == nil {
		return nil
	}
	return []survey.AskOpt{survey.WithValidator(func(answer interface{}) error {
		text, _ := answer.(string)
		return validator(text)
	})}
}

func translate(err error) error {
	if errors.Is(err, terminal.InterruptErr) {
		return ErrAborted
	}
	return err
}
