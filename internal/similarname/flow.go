package similarname

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/Lelo88/backoffice-client-golang/internal/apiclient"
	"github.com/Lelo88/backoffice-client-golang/internal/logging"
)

// DefaultOverrideField es el flag que la API acepta para crear igual pese al conflicto.
const DefaultOverrideField = "forzar"

var (
	// ErrPrompted indica que el servidor reportó nombres similares y se espera decisión del usuario.
	ErrPrompted = errors.New("similar name confirmation required")
	// ErrConfirmFailed envuelve la falla del reintento confirmado.
	ErrConfirmFailed = errors.New("confirmed create failed")
	ErrNotPrompted   = errors.New("no similar name conflict pending")
)

// State del flujo de confirmación.
type State string

const (
	StateIdle     State = "idle"
	StatePrompted State = "prompted"
)

// CreateFunc es la llamada de alta que puede devolver un conflicto SIMILAR_NAME.
type CreateFunc[T any] func(ctx context.Context, payload map[string]any) (T, error)

// Flow maneja el diálogo "ya existe algo parecido, ¿crear igual?".
type Flow[T any] struct {
	mu            sync.Mutex
	state         State
	conflict      apiclient.SimilarNameConflict
	payload       map[string]any
	create        CreateFunc[T]
	overrideField string
	logger        *zap.Logger
}

// Option configura un Flow.
type Option func(*settings)

type settings struct {
	overrideField string
	logger        *zap.Logger
}

func WithOverrideField(field string) Option {
	return func(s *settings) {
		if field != "" {
			s.overrideField = field
		}
	}
}

func WithLogger(logger *zap.Logger) Option {
	return func(s *settings) {
		s.logger = logging.OrNop(logger)
	}
}

// New crea el flujo alrededor de create.
func New[T any](create func(ctx context.Context, payload map[string]any) (T, error), opts ...Option) *Flow[T] {
	s := settings{overrideField: DefaultOverrideField, logger: zap.NewNop()}
	for _, opt := range opts {
		opt(&s)
	}
	return &Flow[T]{
		state:         StateIdle,
		create:        create,
		overrideField: s.overrideField,
		logger:        s.logger,
	}
}

func (flow *Flow[T]) State() State {
	flow.mu.Lock()
	defer flow.mu.Unlock()
	return flow.state
}

// Conflict devuelve el conflicto pendiente (sólo válido en StatePrompted).
func (flow *Flow[T]) Conflict() (apiclient.SimilarNameConflict, bool) {
	flow.mu.Lock()
	defer flow.mu.Unlock()
	return flow.conflict, flow.state == StatePrompted
}

// Submit intenta el alta. Ante un 409 SIMILAR_NAME guarda el payload, pasa a
// prompted y devuelve ErrPrompted; cualquier otro error se devuelve tal cual.
func (flow *Flow[T]) Submit(ctx context.Context, payload map[string]any) (T, error) {
	var zero T
	result, err := flow.create(ctx, payload)
	if err == nil {
		flow.reset()
		return result, nil
	}

	conflict, ok := apiclient.AsSimilarName(err)
	if !ok {
		flow.reset()
		return zero, err
	}

	flow.mu.Lock()
	flow.state = StatePrompted
	flow.conflict = conflict
	flow.payload = copyPayload(payload)
	flow.mu.Unlock()

	flow.logger.Info("similar name conflict",
		zap.String("input", conflict.Input),
		zap.Int("matches", len(conflict.Matches)))
	return zero, ErrPrompted
}

// Confirm reintenta el alta con el flag de override. Sea cual sea el
// resultado el flujo vuelve a idle.
func (flow *Flow[T]) Confirm(ctx context.Context) (T, error) {
	var zero T
	flow.mu.Lock()
	if flow.state != StatePrompted {
		flow.mu.Unlock()
		return zero, ErrNotPrompted
	}
	payload := copyPayload(flow.payload)
	payload[flow.overrideField] = true
	flow.mu.Unlock()

	result, err := flow.create(ctx, payload)
	flow.reset()
	if err != nil {
		flow.logger.Warn("confirmed create failed", zap.Error(err))
		return zero, fmt.Errorf("%w: %w", ErrConfirmFailed, err)
	}
	return result, nil
}

// Cancel descarta el payload guardado sin tocar la red.
func (flow *Flow[T]) Cancel() {
	flow.reset()
}

func (flow *Flow[T]) reset() {
	flow.mu.Lock()
	defer flow.mu.Unlock()
	flow.state = StateIdle
	flow.conflict = apiclient.SimilarNameConflict{}
	flow.payload = nil
}

func copyPayload(payload map[string]any) map[string]any {
	out := make(map[string]any, len(payload)+1)
	for key, value := range payload {
		out[key] = value
	}
	return out
}
