package catalog

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Lelo88/backoffice-client-golang/internal/apiclient"
)

type stubDoer struct {
	doFn func(ctx context.Context, path string, opts apiclient.Options, out any) error

	called bool
	path   string
	opts   apiclient.Options
}

func (doer *stubDoer) Do(ctx context.Context, path string, opts apiclient.Options, out any) error {
	doer.called = true
	doer.path = path
	doer.opts = opts
	if doer.doFn != nil {
		return doer.doFn(ctx, path, opts, out)
	}
	return nil
}

func TestRegions(t *testing.T) {
	all, err := Regions()
	require.NoError(t, err)
	require.NotEmpty(t, all)

	require.Contains(t, RegionNames(), "Metropolitana")
	require.Contains(t, Comunas("Metropolitana"), "Providencia")
	require.Nil(t, Comunas("Atlántida"))

	// La copia devuelta no afecta al lookup.
	comunas := Comunas("Metropolitana")
	comunas[0] = "X"
	require.NotEqual(t, "X", Comunas("Metropolitana")[0])
}

func TestParseRegions(t *testing.T) {
	t.Run("invalid yaml", func(t *testing.T) {
		_, err := ParseRegions([]byte("regiones: ["))
		require.Error(t, err)
	})

	t.Run("missing name", func(t *testing.T) {
		_, err := ParseRegions([]byte("regiones:\n  - comunas: [A]\n"))
		require.Error(t, err)
	})

	t.Run("duplicated", func(t *testing.T) {
		_, err := ParseRegions([]byte("regiones:\n  - nombre: A\n  - nombre: A\n"))
		require.Error(t, err)
	})
}

func TestService_BaseProducts(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		doer := &stubDoer{doFn: func(ctx context.Context, path string, opts apiclient.Options, out any) error {
			*(out.(*[]ProductoBase)) = []ProductoBase{{ID: "1", Nombre: "Harina"}}
			return nil
		}}

		products, err := NewService(doer).BaseProducts(context.Background())

		require.NoError(t, err)
		require.Equal(t, "/productos-base", doer.path)
		require.Equal(t, "", doer.opts.Method)
		require.Len(t, products, 1)
	})

	t.Run("error", func(t *testing.T) {
		doer := &stubDoer{doFn: func(context.Context, string, apiclient.Options, any) error {
			return errors.New("boom")
		}}

		_, err := NewService(doer).BaseProducts(context.Background())

		require.Error(t, err)
	})
}

func TestService_CreateBaseProduct(t *testing.T) {
	doer := &stubDoer{doFn: func(ctx context.Context, path string, opts apiclient.Options, out any) error {
		*(out.(*ProductoBase)) = ProductoBase{ID: "5", Nombre: "Harina"}
		return nil
	}}

	created, err := NewService(doer).CreateBaseProduct(context.Background(), map[string]any{"nombre": "Harina"})

	require.NoError(t, err)
	require.Equal(t, apiclient.ID("5"), created.ID)
	require.Equal(t, http.MethodPost, doer.opts.Method)
	require.Equal(t, map[string]any{"nombre": "Harina"}, doer.opts.Body)
}
