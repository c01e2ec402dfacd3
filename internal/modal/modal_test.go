package modal

import (
	"testing"

	"github.com/stretchr/testify/require"
)

type contacto struct {
	Nombre string
	Email  string
}

func validateContacto(c contacto) map[string]string {
	violations := map[string]string{}
	Required(violations, map[string]string{"nombre": c.Nombre, "email": c.Email}, map[string]string{"nombre": "Nombre"})
	return violations
}

func TestModal_Lifecycle(t *testing.T) {
	var saved []contacto
	var events []string
	modal := New(validateContacto,
		func(c contacto) {
			saved = append(saved, c)
			events = append(events, "save")
		},
		func() { events = append(events, "close") })

	require.Equal(t, StateClosed, modal.State())

	modal.Open(nil, false)
	require.True(t, modal.IsOpen())
	require.False(t, modal.Editing())
	require.Equal(t, contacto{}, modal.Draft())

	require.NoError(t, modal.Update(func(c *contacto) {
		c.Nombre = "Ana"
		c.Email = "ana@example.com"
	}))

	record, err := modal.Confirm()

	require.NoError(t, err)
	require.Equal(t, contacto{Nombre: "Ana", Email: "ana@example.com"}, record)
	require.Equal(t, []contacto{record}, saved)
	require.Equal(t, []string{"save", "close"}, events)
	require.Equal(t, StateClosed, modal.State())
}

func TestModal_CollectsAllViolations(t *testing.T) {
	saves := 0
	modal := New(validateContacto, func(contacto) { saves++ }, nil)
	modal.Open(nil, false)

	_, err := modal.Confirm()

	require.ErrorIs(t, err, ErrInvalid)
	var validation *ValidationError
	require.ErrorAs(t, err, &validation)
	require.Equal(t, map[string]string{
		"nombre": "Nombre es obligatorio",
		"email":  "email es obligatorio",
	}, validation.Fields)
	require.Equal(t, validation.Fields, modal.Errors())
	require.Equal(t, "invalid fields: email, nombre", err.Error())
	require.Zero(t, saves)
	require.True(t, modal.IsOpen())
}

func TestModal_ReopenResetsState(t *testing.T) {
	modal := New(validateContacto, nil, nil)
	modal.Open(nil, false)
	_, err := modal.Confirm()
	require.Error(t, err)
	modal.Cancel()

	initial := contacto{Nombre: "Beto", Email: "beto@example.com"}
	modal.Open(&initial, true)

	require.True(t, modal.Editing())
	require.Equal(t, initial, modal.Draft())
	require.Empty(t, modal.Errors())

	// Editar el borrador no toca el registro inicial.
	require.NoError(t, modal.Update(func(c *contacto) { c.Nombre = "Roberto" }))
	require.Equal(t, "Beto", initial.Nombre)
}

func TestModal_Closed(t *testing.T) {
	closes := 0
	modal := New(validateContacto, nil, func() { closes++ })

	require.ErrorIs(t, modal.Update(func(*contacto) {}), ErrClosed)
	_, err := modal.Confirm()
	require.ErrorIs(t, err, ErrClosed)

	modal.Cancel()
	require.Zero(t, closes)

	modal.Open(nil, false)
	modal.Cancel()
	require.Equal(t, 1, closes)
}
