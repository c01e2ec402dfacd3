package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/Lelo88/backoffice-client-golang/internal/httpx"
	"github.com/Lelo88/backoffice-client-golang/internal/logging"
	"github.com/Lelo88/backoffice-client-golang/internal/session"
)

// LoginRoute es la ruta a la que se redirige cuando la sesión expira.
const LoginRoute = "/login"

// Navigator representa la navegación "completa" del front-end.
// El adapter es el único que la usa (redirect al login en un 401).
type Navigator interface {
	Current() string
	Navigate(route string)
}

type nopNavigator struct{}

func (nopNavigator) Current() string { return "" }
func (nopNavigator) Navigate(string) {}

// Options describe una llamada. El zero value es un GET autenticado sin body.
type Options struct {
	Method  string
	Body    any
	Auth    *bool
	Headers map[string]string
}

// NoAuth se usa como Options.Auth para llamadas anónimas.
func NoAuth() *bool {
	auth := false
	return &auth
}

// Client es el adapter HTTP hacia la API del back office.
type Client struct {
	baseURL    string
	httpClient *http.Client
	session    session.Session
	navigator  Navigator
	logger     *zap.Logger
}

// Option configura un Client.
type Option func(*Client)

// WithHTTPClient reemplaza el *http.Client (tests, transportes custom).
func WithHTTPClient(httpClient *http.Client) Option {
	return func(client *Client) {
		if httpClient != nil {
			client.httpClient = httpClient
		}
	}
}

// WithTimeout fija un timeout por request; cero deja el default del transporte.
func WithTimeout(timeout time.Duration) Option {
	return func(client *Client) {
		if timeout > 0 {
			copied := *client.httpClient
			copied.Timeout = timeout
			client.httpClient = &copied
		}
	}
}

func WithNavigator(navigator Navigator) Option {
	return func(client *Client) {
		if navigator != nil {
			client.navigator = navigator
		}
	}
}

func WithLogger(logger *zap.Logger) Option {
	return func(client *Client) {
		client.logger = logging.OrNop(logger)
	}
}

// New crea el adapter. sess puede ser nil: equivale a no tener token.
func New(baseURL string, sess session.Session, opts ...Option) *Client {
	if sess == nil {
		sess = session.NewMemory("")
	}
	client := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{},
		session:    sess,
		navigator:  nopNavigator{},
		logger:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(client)
	}
	return client
}

// Call ejecuta la llamada y devuelve el cuerpo JSON de la respuesta.
// Un 204 (o un 2xx sin cuerpo) devuelve nil sin error.
func (client *Client) Call(ctx context.Context, path string, opts Options) (json.RawMessage, error) {
	method := strings.ToUpper(strings.TrimSpace(opts.Method))
	if method == "" {
		method = http.MethodGet
	}

	var body io.Reader
	if opts.Body != nil {
		raw, err := json.Marshal(opts.Body)
		if err != nil {
			return nil, fmt.Errorf("encode %s %s body: %w", method, path, err)
		}
		body = bytes.NewReader(raw)
	}

	request, err := http.NewRequestWithContext(ctx, method, client.url(path), body)
	if err != nil {
		return nil, fmt.Errorf("build %s %s: %w", method, path, err)
	}

	for name, value := range opts.Headers {
		request.Header.Set(name, value)
	}
	if opts.Body != nil && request.Header.Get("Content-Type") == "" {
		request.Header.Set("Content-Type", "application/json")
	}
	request.Header.Set("Accept", "application/json")

	auth := opts.Auth == nil || *opts.Auth
	if auth {
		if token := client.session.Token(); token != "" {
			request.Header.Set("Authorization", "Bearer "+token)
		}
	}

	requestID := httpx.EnsureRequestID(request)
	started := time.Now()

	response, err := client.httpClient.Do(request)
	if err != nil {
		client.logger.Warn("api call failed",
			zap.String("method", method),
			zap.String("path", path),
			zap.String("request_id", requestID),
			zap.Error(err))
		return nil, transportError(method, path, err)
	}
	defer response.Body.Close()

	raw, err := io.ReadAll(response.Body)
	if err != nil {
		return nil, transportError(method, path, err)
	}

	client.logger.Debug("api call",
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", response.StatusCode),
		zap.String("request_id", requestID),
		zap.Duration("elapsed", time.Since(started)))

	if response.StatusCode < 200 || response.StatusCode > 299 {
		return nil, client.fail(response, raw, method, path)
	}

	if response.StatusCode == http.StatusNoContent || len(bytes.TrimSpace(raw)) == 0 {
		return nil, nil
	}
	return json.RawMessage(httpx.UnwrapData(raw)), nil
}

// Do ejecuta la llamada y decodifica la respuesta en out (si out no es nil).
func (client *Client) Do(ctx context.Context, path string, opts Options, out any) error {
	raw, err := client.Call(ctx, path, opts)
	if err != nil {
		return err
	}
	if out == nil || raw == nil {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode %s response: %w", path, err)
	}
	return nil
}

func (client *Client) Get(ctx context.Context, path string, out any) error {
	return client.Do(ctx, path, Options{}, out)
}

func (client *Client) Post(ctx context.Context, path string, body, out any) error {
	return client.Do(ctx, path, Options{Method: http.MethodPost, Body: body}, out)
}

func (client *Client) Put(ctx context.Context, path string, body, out any) error {
	return client.Do(ctx, path, Options{Method: http.MethodPut, Body: body}, out)
}

func (client *Client) Delete(ctx context.Context, path string) error {
	return client.Do(ctx, path, Options{Method: http.MethodDelete}, nil)
}

func (client *Client) fail(response *http.Response, raw []byte, method, path string) error {
	details := httpx.ParseError(response.StatusCode, http.StatusText(response.StatusCode), raw)
	apiErr := &APIError{
		Status:     response.StatusCode,
		StatusText: http.StatusText(response.StatusCode),
		Message:    details.Message,
		Code:       details.Code,
		Data:       details.Data,
	}

	if response.StatusCode == http.StatusUnauthorized && client.navigator.Current() != LoginRoute {
		// Sesión muerta: se limpia el token y se manda al login antes de reportar.
		if err := client.session.Clear(); err != nil {
			client.logger.Error("clear session", zap.Error(err))
		}
		client.navigator.Navigate(LoginRoute)
	}

	client.logger.Warn("api error",
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", apiErr.Status),
		zap.String("code", apiErr.Code),
		zap.String("message", apiErr.Message))
	return apiErr
}

func (client *Client) url(path string) string {
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return path
	}
	return client.baseURL + "/" + strings.TrimLeft(path, "/")
}

// Doer es lo que los servicios de dominio necesitan del adapter.
// Permite testear servicios con stubs sin levantar un servidor.
type Doer interface {
	Do(ctx context.Context, path string, opts Options, out any) error
}

// API es el adapter con los atajos por método que usan los remotes.
type API interface {
	Doer
	Get(ctx context.Context, path string, out any) error
	Post(ctx context.Context, path string, body, out any) error
	Put(ctx context.Context, path string, body, out any) error
	Delete(ctx context.Context, path string) error
}
