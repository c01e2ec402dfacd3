package prompt

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Lelo88/backoffice-client-golang/internal/apiclient"
	"github.com/Lelo88/backoffice-client-golang/internal/form"
)

type stubDriver struct {
	inputs       []string
	selectIdx    []int
	confirm      []bool
	infoMessages []string
	asked        []string

	inputPos   int
	selectPos  int
	confirmPos int
}

func (driver *stubDriver) Input(_ context.Context, cfg InputConfig) (string, error) {
	driver.asked = append(driver.asked, cfg.Message)
	if driver.inputPos >= len(driver.inputs) {
		return "", errors.New("no input scripted")
	}
	value := driver.inputs[driver.inputPos]
	driver.inputPos++
	if cfg.Validator != nil {
		if err := cfg.Validator(value); err != nil {
			return "", err
		}
	}
	return value, nil
}

func (driver *stubDriver) Password(ctx context.Context, cfg InputConfig) (string, error) {
	return driver.Input(ctx, cfg)
}

func (driver *stubDriver) Confirm(_ context.Context, _ ConfirmConfig) (bool, error) {
	if driver.confirmPos >= len(driver.confirm) {
		return false, errors.New("no confirm scripted")
	}
	value := driver.confirm[driver.confirmPos]
	driver.confirmPos++
	return value, nil
}

func (driver *stubDriver) Select(_ context.Context, cfg SelectConfig) (int, error) {
	driver.asked = append(driver.asked, cfg.Message)
	if driver.selectPos >= len(driver.selectIdx) {
		return -1, errors.New("no select scripted")
	}
	value := driver.selectIdx[driver.selectPos]
	driver.selectPos++
	return value, nil
}

func (driver *stubDriver) Info(_ context.Context, msg string) error {
	driver.infoMessages = append(driver.infoMessages, msg)
	return nil
}

func productForm(onSubmit func(map[string]any)) *form.Form {
	descriptor := form.FromLabels(
		[]string{"id", "nombre", "categoria", "stock"},
		map[string]any{"id": 3, "nombre": "", "categoria": "", "stock": 0},
		map[string]string{"nombre": "Nombre", "categoria": "Categoría", "stock": "Stock"},
		map[string][]form.Choice{"categoria": {{Value: "a", Label: "Abarrotes"}, {Value: "b", Label: "Bebidas"}}},
		[]string{"stock"},
		[]string{"id"},
	)
	rules := form.Rules{"nombre": form.Required("Nombre"), "stock": form.PositiveInt("Stock")}
	return form.New(descriptor, rules, onSubmit)
}

func TestFillForm(t *testing.T) {
	ctx := context.Background()

	t.Run("submits once", func(t *testing.T) {
		var submitted []map[string]any
		driver := &stubDriver{inputs: []string{"Jugo", "4"}, selectIdx: []int{1}}

		err := FillForm(ctx, driver, productForm(func(values map[string]any) {
			submitted = append(submitted, values)
		}))

		require.NoError(t, err)
		require.Len(t, submitted, 1)
		require.Equal(t, "Jugo", submitted[0]["nombre"])
		require.Equal(t, "b", submitted[0]["categoria"])
		require.Equal(t, 4, submitted[0]["stock"])
		require.Equal(t, 3, submitted[0]["id"])
		require.Equal(t, []string{"Nombre", "Categoría", "Stock"}, driver.asked)
	})

	t.Run("retries only fields with errors", func(t *testing.T) {
		submitted := 0
		driver := &stubDriver{
			inputs:    []string{"  ", "2", "Jugo"},
			selectIdx: []int{0},
			confirm:   []bool{true},
		}

		err := FillForm(ctx, driver, productForm(func(map[string]any) { submitted++ }))

		require.NoError(t, err)
		require.Equal(t, 1, submitted)
		require.Equal(t, []string{"  Nombre es obligatorio"}, driver.infoMessages)
		require.Equal(t, []string{"Nombre", "Categoría", "Stock", "Nombre"}, driver.asked)
	})

	t.Run("user gives up", func(t *testing.T) {
		submitted := 0
		driver := &stubDriver{inputs: []string{"", "2"}, selectIdx: []int{0}, confirm: []bool{false}}

		err := FillForm(ctx, driver, productForm(func(map[string]any) { submitted++ }))

		require.ErrorIs(t, err, ErrCancelled)
		require.Equal(t, 0, submitted)
	})

	t.Run("number validator", func(t *testing.T) {
		driver := &stubDriver{inputs: []string{"Jugo", "0"}, selectIdx: []int{0}}

		err := FillForm(ctx, driver, productForm(nil))

		require.Error(t, err)
		require.Contains(t, err.Error(), "mayor o igual a 1")
	})
}

func TestAskSimilarName(t *testing.T) {
	score := 0.92
	driver := &stubDriver{confirm: []bool{true}}

	ok, err := AskSimilarName(context.Background(), driver, apiclient.SimilarNameConflict{
		Input:   "Acme",
		Matches: []apiclient.Match{{ID: "1", Nombre: "Acme Ltda", Score: &score}},
	})

	require.NoError(t, err)
	require.True(t, ok)
	require.Len(t, driver.infoMessages, 1)
	require.True(t, strings.Contains(driver.infoMessages[0], "Acme Ltda (id 1) 92%"))
}

func TestAlerter(t *testing.T) {
	driver := &stubDriver{}
	Alerter{Ctx: context.Background(), Driver: driver}.Alert("Error al guardar")
	require.Equal(t, []string{"! Error al guardar"}, driver.infoMessages)
}
