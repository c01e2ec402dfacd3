package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"slices"
	"strings"
	"sync"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Lelo88/backoffice-client-golang/internal/apiclient"
	"github.com/Lelo88/backoffice-client-golang/internal/catalog"
	"github.com/Lelo88/backoffice-client-golang/internal/config"
	"github.com/Lelo88/backoffice-client-golang/internal/httpx/httpxtest"
	"github.com/Lelo88/backoffice-client-golang/internal/prompt"
	"github.com/Lelo88/backoffice-client-golang/internal/session"
)

type stubDriver struct {
	inputs       []string
	selectIdx    []int
	confirm      []bool
	infoMessages []string

	inputPos   int
	selectPos  int
	confirmPos int
}

func (driver *stubDriver) Input(_ context.Context, cfg prompt.InputConfig) (string, error) {
	if driver.inputPos >= len(driver.inputs) {
		return "", errors.New("no input scripted for " + cfg.Message)
	}
	value := driver.inputs[driver.inputPos]
	driver.inputPos++
	return value, nil
}

func (driver *stubDriver) Password(ctx context.Context, cfg prompt.InputConfig) (string, error) {
	return driver.Input(ctx, cfg)
}

func (driver *stubDriver) Confirm(_ context.Context, cfg prompt.ConfirmConfig) (bool, error) {
	if driver.confirmPos >= len(driver.confirm) {
		return false, errors.New("no confirm scripted for " + cfg.Message)
	}
	value := driver.confirm[driver.confirmPos]
	driver.confirmPos++
	return value, nil
}

func (driver *stubDriver) Select(_ context.Context, cfg prompt.SelectConfig) (int, error) {
	if driver.selectPos >= len(driver.selectIdx) {
		return -1, errors.New("no select scripted for " + cfg.Message)
	}
	value := driver.selectIdx[driver.selectPos]
	driver.selectPos++
	return value, nil
}

func (driver *stubDriver) Info(_ context.Context, msg string) error {
	driver.infoMessages = append(driver.infoMessages, msg)
	return nil
}

func (driver *stubDriver) printed(text string) bool {
	for _, message := range driver.infoMessages {
		if strings.Contains(message, text) {
			return true
		}
	}
	return false
}

// fakeBackoffice es la API falsa con la que corren los comandos.
type fakeBackoffice struct {
	mu     sync.Mutex
	posted map[string][]map[string]any
	auth   []string
	status int
}

func (api *fakeBackoffice) record(r *http.Request) map[string]any {
	var body map[string]any
	_ = json.NewDecoder(r.Body).Decode(&body)
	api.mu.Lock()
	defer api.mu.Unlock()
	api.posted[r.URL.Path] = append(api.posted[r.URL.Path], body)
	return body
}

func newFakeBackoffice(t *testing.T) (*fakeBackoffice, string) {
	t.Helper()

	api := &fakeBackoffice{posted: map[string][]map[string]any{}}
	router := chi.NewRouter()
	router.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if api.status != 0 {
				httpxtest.JSON(w, api.status, map[string]any{"message": "Sesión inválida"})
				return
			}
			next.ServeHTTP(w, r)
		})
	})

	router.Get("/api/health", func(w http.ResponseWriter, r *http.Request) {
		httpxtest.JSON(w, http.StatusOK, map[string]any{"data": map[string]any{"status": "ok"}})
	})
	router.Get("/api/ready", func(w http.ResponseWriter, r *http.Request) {
		httpxtest.JSON(w, http.StatusServiceUnavailable, map[string]any{"message": "database not reachable"})
	})
	router.Post("/api/clientes", func(w http.ResponseWriter, r *http.Request) {
		body := api.record(r)
		if body["forzar"] != true {
			httpxtest.JSON(w, http.StatusConflict, map[string]any{
				"code":    apiclient.CodeSimilarName,
				"input":   body["nombre"],
				"matches": []map[string]any{{"id": 1, "nombre": "Acme Ltda", "score": 0.92}},
			})
			return
		}
		body["id"] = 42
		httpxtest.JSON(w, http.StatusCreated, body)
	})
	router.Get("/api/clientes/{id}", func(w http.ResponseWriter, r *http.Request) {
		api.mu.Lock()
		api.auth = append(api.auth, r.Header.Get("Authorization"))
		api.mu.Unlock()
		if chi.URLParam(r, "id") != "42" {
			httpxtest.JSON(w, http.StatusNotFound, map[string]any{"message": "Cliente no encontrado"})
			return
		}
		httpxtest.JSON(w, http.StatusOK, map[string]any{"id": 42, "nombre": "Acme", "rut": "76.000.000-1"})
	})
	router.Get("/api/clientes/{id}/direcciones", func(w http.ResponseWriter, r *http.Request) {
		httpxtest.JSON(w, http.StatusOK, []map[string]any{})
	})
	router.Get("/api/productos-base", func(w http.ResponseWriter, r *http.Request) {
		httpxtest.JSON(w, http.StatusOK, []map[string]any{
			{"id": 1, "nombre": "Harina 25kg", "unidades_por_caja": 1},
			{"id": 2, "nombre": "Azúcar flor", "unidades_por_caja": 12},
		})
	})
	router.Get("/api/listas-precios/{id}/productos-base", func(w http.ResponseWriter, r *http.Request) {
		httpxtest.JSON(w, http.StatusOK, map[string]any{"data": []map[string]any{
			{"id": 5, "producto_base_id": 1, "nombre": "Harina 25kg", "precio_neto": "100", "precio_venta": "119"},
		}})
	})
	router.Post("/api/listas-precios/{id}/productos-base", func(w http.ResponseWriter, r *http.Request) {
		body := api.record(r)
		body["id"] = 6
		httpxtest.JSON(w, http.StatusCreated, body)
	})

	server := httptest.NewServer(router)
	t.Cleanup(server.Close)
	return api, server.URL + "/api"
}

func testDeps(baseURL string, sess session.Session, driver prompt.Driver, out *bytes.Buffer) appDeps {
	return appDeps{
		loadConfig: func() (config.Config, error) {
			return config.Config{APIBaseURL: baseURL, TokenFile: "unused", LogLevel: "info"}, nil
		},
		newLogger: func(string) (*zap.Logger, error) {
			return zap.NewNop(), nil
		},
		newSession: func(string) session.Session { return sess },
		driver:     driver,
		out:        out,
	}
}

func TestMain_FatalOnError(t *testing.T) {
	originalLoad := loadConfigFn
	originalFatal := fatalf
	originalArgs := os.Args
	defer func() {
		loadConfigFn = originalLoad
		fatalf = originalFatal
		os.Args = originalArgs
	}()

	expectedErr := errors.New("config failed")
	loadConfigFn = func() (config.Config, error) {
		return config.Config{}, expectedErr
	}
	os.Args = []string{"backoffice", "token", "show"}

	fatalCalled := false
	var fatalArg any
	fatalf = func(args ...any) {
		fatalCalled = true
		if len(args) > 0 {
			fatalArg = args[0]
		}
	}

	main()

	require.True(t, fatalCalled)
	require.Equal(t, expectedErr, fatalArg)
}

func TestRun_ConfigError(t *testing.T) {
	deps := testDeps("", nil, &stubDriver{}, &bytes.Buffer{})
	deps.loadConfig = func() (config.Config, error) {
		return config.Config{}, errors.New("load failed")
	}

	err := run(context.Background(), deps, []string{"token", "show"})

	require.Error(t, err)
}

func TestRun_LoggerError(t *testing.T) {
	deps := testDeps("http://localhost", session.NewMemory(""), &stubDriver{}, &bytes.Buffer{})
	deps.newLogger = func(string) (*zap.Logger, error) {
		return nil, errors.New("bad level")
	}

	err := run(context.Background(), deps, []string{"token", "show"})

	require.Error(t, err)
}

func TestRun_Token(t *testing.T) {
	ctx := context.Background()
	api, baseURL := newFakeBackoffice(t)
	sess := session.NewMemory("")
	driver := &stubDriver{inputs: []string{"  prompted-token-1234  "}}
	deps := testDeps(baseURL, sess, driver, &bytes.Buffer{})

	require.NoError(t, run(ctx, deps, []string{"token", "set", "abcd12345678wxyz"}))
	require.Equal(t, "abcd12345678wxyz", sess.Token())

	require.NoError(t, run(ctx, deps, []string{"clientes", "ver", "42"}))
	require.Equal(t, []string{"Bearer abcd12345678wxyz"}, api.auth)

	require.NoError(t, run(ctx, deps, []string{"token", "show"}))
	require.True(t, driver.printed("abcd********wxyz"))

	require.NoError(t, run(ctx, deps, []string{"token", "set"}))
	require.Equal(t, "prompted-token-1234", sess.Token())

	require.NoError(t, run(ctx, deps, []string{"token", "clear"}))
	require.Empty(t, sess.Token())

	require.NoError(t, run(ctx, deps, []string{"token", "show"}))
	require.True(t, driver.printed("(sin token)"))

	require.NoError(t, run(ctx, deps, []string{"clientes", "ver", "42"}))
	require.Equal(t, "", api.auth[len(api.auth)-1])
}

func TestRun_TokenSetRejectsBlank(t *testing.T) {
	sess := session.NewMemory("previo")
	deps := testDeps("http://localhost", sess, &stubDriver{}, &bytes.Buffer{})

	err := run(context.Background(), deps, []string{"token", "set", "   "})

	require.ErrorIs(t, err, apiclient.ErrEmptyToken)
	require.Equal(t, "previo", sess.Token())
}

func TestRun_ClientesCrear(t *testing.T) {
	api, baseURL := newFakeBackoffice(t)
	regionIdx := slices.Index(catalog.RegionNames(), "Metropolitana")
	comunaIdx := slices.Index(catalog.Comunas("Metropolitana"), "Providencia")
	require.GreaterOrEqual(t, regionIdx, 0)
	require.GreaterOrEqual(t, comunaIdx, 0)

	driver := &stubDriver{
		// nombre, rut, giro, email, teléfono, días; sucursal, calle, número
		inputs: []string{"Acme", "76.000.000-1", "", "", "", "30", "Local A", "Av X", "10"},
		// tipo cliente, Agregar, tipo dirección, región, comuna, Salir
		selectIdx: []int{0, 0, 0, regionIdx, comunaIdx, 3},
		// agregar direcciones, principal, crear igual
		confirm: []bool{true, true, true},
	}
	out := &bytes.Buffer{}

	err := run(context.Background(), testDeps(baseURL, session.NewMemory("tok"), driver, out), []string{"clientes", "crear"})

	require.NoError(t, err)
	require.True(t, driver.printed("Acme Ltda (id 1) 92%"))
	require.True(t, driver.printed("Cliente Acme creado (id 42)"))
	require.True(t, driver.printed("Direcciones de Acme"))

	posted := api.posted["/api/clientes"]
	require.Len(t, posted, 2)
	require.NotContains(t, posted[0], "forzar")
	require.Equal(t, true, posted[1]["forzar"])
	require.Equal(t, float64(30), posted[1]["dias_credito"])

	direcciones, ok := posted[1]["direcciones"].([]any)
	require.True(t, ok)
	require.Len(t, direcciones, 1)
	direccion := direcciones[0].(map[string]any)
	require.NotContains(t, direccion, "id")
	require.Equal(t, "Providencia", direccion["comuna"])
	require.Equal(t, true, direccion["es_principal"])
}

func TestRun_ClientesCrear_CancelSimilar(t *testing.T) {
	api, baseURL := newFakeBackoffice(t)
	driver := &stubDriver{
		inputs:    []string{"Acme", "76.000.000-1", "", "", "", "30"},
		selectIdx: []int{0},
		confirm:   []bool{false, false},
	}

	err := run(context.Background(), testDeps(baseURL, session.NewMemory("tok"), driver, &bytes.Buffer{}), []string{"clientes", "crear"})

	require.NoError(t, err)
	require.True(t, driver.printed("Alta cancelada"))
	require.Len(t, api.posted["/api/clientes"], 1)
}

func TestRun_Unauthorized(t *testing.T) {
	api, baseURL := newFakeBackoffice(t)
	api.status = http.StatusUnauthorized
	sess := session.NewMemory("expired")
	out := &bytes.Buffer{}

	err := run(context.Background(), testDeps(baseURL, sess, &stubDriver{}, out), []string{"clientes", "ver", "42"})

	require.NoError(t, err)
	require.Empty(t, sess.Token())
	require.Contains(t, out.String(), loginHint)
}

func TestRun_ClientesVer(t *testing.T) {
	_, baseURL := newFakeBackoffice(t)
	driver := &stubDriver{}

	err := run(context.Background(), testDeps(baseURL, session.NewMemory("tok"), driver, &bytes.Buffer{}), []string{"clientes", "ver", "42"})

	require.NoError(t, err)
	require.True(t, driver.printed("76.000.000-1"))
	require.True(t, driver.printed("(sin registros)"))
}

func TestRun_ClientesNotFound(t *testing.T) {
	_, baseURL := newFakeBackoffice(t)
	driver := &stubDriver{}
	deps := testDeps(baseURL, session.NewMemory("tok"), driver, &bytes.Buffer{})

	require.NoError(t, run(context.Background(), deps, []string{"clientes", "ver", "9"}))
	require.True(t, driver.printed("El cliente 9 no existe"))

	require.NoError(t, run(context.Background(), deps, []string{"clientes", "direcciones", "9"}))
	require.Len(t, driver.infoMessages, 2)
	require.Contains(t, driver.infoMessages[1], "El cliente 9 no existe")
}

func TestRun_ListasProductos(t *testing.T) {
	api, baseURL := newFakeBackoffice(t)
	driver := &stubDriver{
		// búsqueda, precio neto, precio venta
		inputs: []string{"azú", "1000", "1190,5"},
		// Agregar, producto filtrado, Salir
		selectIdx: []int{0, 0, 3},
		// por defecto
		confirm: []bool{false},
	}

	err := run(context.Background(), testDeps(baseURL, session.NewMemory("tok"), driver, &bytes.Buffer{}), []string{"listas", "productos", "3"})

	require.NoError(t, err)
	posted := api.posted["/api/listas-precios/3/productos-base"]
	require.Len(t, posted, 1)
	require.Equal(t, "2", posted[0]["producto_base_id"])
	require.Equal(t, "Azúcar flor", posted[0]["nombre"])
	require.Equal(t, float64(12), posted[0]["unidades_por_caja"])
	require.Equal(t, "1190.5", posted[0]["precio_venta"])
	require.True(t, driver.printed("Azúcar flor"))
}

func TestRun_Estado(t *testing.T) {
	_, baseURL := newFakeBackoffice(t)
	driver := &stubDriver{}

	err := run(context.Background(), testDeps(baseURL, session.NewMemory(""), driver, &bytes.Buffer{}), []string{"estado"})

	require.NoError(t, err)
	require.True(t, driver.printed("API viva pero no lista: database not reachable"))
}

func TestAlertMessage(t *testing.T) {
	require.Equal(t, "Cliente no encontrado", alertMessage(&apiclient.APIError{Status: 404, Message: "Cliente no encontrado"}))
	require.Equal(t, "Error de conexión con la API", alertMessage(apiclient.ErrTransport))
	require.Equal(t, "Error: boom", alertMessage(errors.New("boom")))
}
