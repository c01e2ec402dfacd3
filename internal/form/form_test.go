package form

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func userDescriptor() Descriptor {
	return FromLabels(
		[]string{"id", "nombre", "rol", "cantidad"},
		map[string]any{"id": 10, "nombre": "Ana", "rol": "admin", "cantidad": 2},
		map[string]string{"nombre": "Nombre", "rol": "Rol", "cantidad": "Cantidad"},
		map[string][]Choice{"rol": {{Value: "admin", Label: "Administrador"}, {Value: "ventas", Label: "Ventas"}}},
		[]string{"cantidad"},
		[]string{"id"},
	)
}

func userRules() Rules {
	return Rules{
		"nombre":   Required("Nombre"),
		"cantidad": PositiveInt("Cantidad"),
	}
}

func TestForm_Change(t *testing.T) {
	t.Run("validates changed field", func(t *testing.T) {
		form := New(userDescriptor(), userRules(), nil)

		require.NoError(t, form.Change("nombre", "  "))
		require.Equal(t, map[string]string{"nombre": "Nombre es obligatorio"}, form.Errors())

		require.NoError(t, form.Change("nombre", "Beatriz"))
		require.Empty(t, form.Errors())
		require.Equal(t, "Beatriz", form.Values()["nombre"])
	})

	t.Run("select change callback", func(t *testing.T) {
		var events []SelectChange
		form := New(userDescriptor(), userRules(), nil, WithSelectChange(func(change SelectChange) {
			events = append(events, change)
		}))

		require.NoError(t, form.Change("rol", "ventas"))
		require.NoError(t, form.Change("nombre", "Ana María"))

		require.Equal(t, []SelectChange{{Field: "rol", Value: "ventas"}}, events)
	})

	t.Run("read only field", func(t *testing.T) {
		form := New(userDescriptor(), userRules(), nil)

		err := form.Change("id", 99)

		require.ErrorIs(t, err, ErrReadOnly)
		require.Equal(t, 10, form.Values()["id"])
	})

	t.Run("unknown field", func(t *testing.T) {
		form := New(userDescriptor(), userRules(), nil)

		require.ErrorIs(t, form.Change("apellido", "x"), ErrUnknownField)
	})
}

func TestForm_Submit(t *testing.T) {
	t.Run("valid submits once with current values", func(t *testing.T) {
		descriptor := userDescriptor()
		calls := 0
		var got map[string]any
		form := New(descriptor, userRules(), func(values map[string]any) {
			calls++
			got = values
		})
		require.NoError(t, form.Change("nombre", "Beatriz"))

		ok := form.Submit()

		require.True(t, ok)
		require.Equal(t, 1, calls)
		want := map[string]any{"id": 10, "nombre": "Beatriz", "rol": "admin", "cantidad": 2}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Fatalf("submitted values mismatch (-want +got):\n%s", diff)
		}
		// El descriptor original no se toca.
		require.Equal(t, "Ana", descriptor.Data["nombre"])
	})

	t.Run("failing rules block and report every field", func(t *testing.T) {
		calls := 0
		form := New(userDescriptor(), userRules(), func(map[string]any) { calls++ })
		require.NoError(t, form.Change("nombre", ""))
		require.NoError(t, form.Change("cantidad", "0"))

		ok := form.Submit()

		require.False(t, ok)
		require.Zero(t, calls)
		require.Equal(t, map[string]string{
			"nombre":   "Nombre es obligatorio",
			"cantidad": "Cantidad debe ser un entero mayor a 0",
		}, form.Errors())
	})

	t.Run("rule for missing value", func(t *testing.T) {
		descriptor := Descriptor{Fields: []Field{{Name: "codigo", Kind: KindText}}, Data: map[string]any{}}
		form := New(descriptor, Rules{"codigo": Required("Código")}, nil)

		require.False(t, form.Submit())
		require.Contains(t, form.Errors(), "codigo")
	})
}

func TestForm_Controls(t *testing.T) {
	form := New(userDescriptor(), userRules(), nil)
	require.NoError(t, form.Change("nombre", ""))

	controls := form.Controls()

	require.Len(t, controls, 4)
	require.Equal(t, "id", controls[0].Name)
	require.True(t, controls[0].Disabled)
	require.Equal(t, KindText, controls[0].Kind)

	require.Equal(t, KindText, controls[1].Kind)
	require.Equal(t, "Nombre es obligatorio", controls[1].Error)

	require.Equal(t, KindSelect, controls[2].Kind)
	require.Len(t, controls[2].Choices, 2)
	require.False(t, controls[2].Disabled)

	require.Equal(t, KindNumber, controls[3].Kind)
	require.Equal(t, 1, controls[3].Min)
	require.Equal(t, 1, controls[3].Step)
}

func TestForm_Reset(t *testing.T) {
	form := New(userDescriptor(), userRules(), nil)
	require.NoError(t, form.Change("nombre", ""))

	reloaded := userDescriptor()
	reloaded.Data["nombre"] = "Carla"
	form.Reset(reloaded)

	require.Empty(t, form.Errors())
	require.Equal(t, "Carla", form.Values()["nombre"])
}

func TestRules(t *testing.T) {
	require.Equal(t, "", PositiveInt("N")(3))
	require.Equal(t, "", PositiveInt("N")(float64(4)))
	require.NotEqual(t, "", PositiveInt("N")(1.5))
	require.NotEqual(t, "", PositiveInt("N")(nil))
	require.Equal(t, "", Required("N")(0))
	require.NotEqual(t, "", MaxLength("N", 3)("ñandú"))
	require.Equal(t, "N es obligatorio", Chain(Required("N"), MaxLength("N", 3))(""))
	require.Equal(t, "", Chain(Required("N"), MaxLength("N", 3))("abc"))
}
