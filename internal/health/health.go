package health

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/Lelo88/backoffice-client-golang/internal/apiclient"
)

// Status es lo que reporta la API en /health y /ready.
type Status struct {
	Status string `json:"status"`
	Time   string `json:"time,omitempty"`
}

// Report junta las dos sondas.
type Report struct {
	Alive   bool
	Ready   bool
	Detail  string
	Elapsed time.Duration
}

// Checker consulta los endpoints de health de la API. No manda token.
type Checker struct {
	api apiclient.Doer
}

// New crea un checker sobre el adapter de la API.
func New(api apiclient.Doer) *Checker {
	return &Checker{api: api}
}

// Health indica si el proceso de la API está vivo.
func (checker *Checker) Health(ctx context.Context) (Status, error) {
	return checker.probe(ctx, "/health")
}

// Ready indica si la API puede atender (base de datos incluida).
func (checker *Checker) Ready(ctx context.Context) (Status, error) {
	return checker.probe(ctx, "/ready")
}

func (checker *Checker) probe(ctx context.Context, path string) (Status, error) {
	var status Status
	err := checker.api.Do(ctx, path, apiclient.Options{Method: http.MethodGet, Auth: apiclient.NoAuth()}, &status)
	return status, err
}

// Check corre ambas sondas. Un /ready caído no es error: queda en Detail.
func (checker *Checker) Check(ctx context.Context) (Report, error) {
	started := time.Now()
	report := Report{}

	if _, err := checker.Health(ctx); err != nil {
		return report, err
	}
	report.Alive = true

	_, err := checker.Ready(ctx)
	var apiErr *apiclient.APIError
	switch {
	case err == nil:
		report.Ready = true
	case errors.As(err, &apiErr):
		report.Detail = apiErr.Message
	default:
		return report, err
	}
	report.Elapsed = time.Since(started)
	return report, nil
}
