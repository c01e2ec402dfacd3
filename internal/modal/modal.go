package modal

import (
	"errors"
	"sort"
	"strings"
	"sync"
)

var (
	ErrClosed  = errors.New("modal is closed")
	ErrInvalid = errors.New("invalid record")
)

// State es el estado del ciclo de vida del modal.
type State string

const (
	StateClosed     State = "closed"
	StateOpen       State = "open"
	StateValidating State = "validating"
	StateSubmitted  State = "submitted"
)

// ValidationError lleva todas las violaciones encontradas al confirmar.
type ValidationError struct {
	Fields map[string]string
}

func (err *ValidationError) Error() string {
	names := make([]string, 0, len(err.Fields))
	for name := range err.Fields {
		names = append(names, name)
	}
	sort.Strings(names)
	return "invalid fields: " + strings.Join(names, ", ")
}

func (err *ValidationError) Unwrap() error { return ErrInvalid }

// Modal es un diálogo de formulario acotado. Valida y reporta el registro
// confirmado; nunca habla con la red.
type Modal[T any] struct {
	mu       sync.Mutex
	state    State
	editing  bool
	draft    T
	errors   map[string]string
	validate func(T) map[string]string
	onSave   func(T)
	onClose  func()
}

// New crea un modal cerrado.
func New[T any](validate func(T) map[string]string, onSave func(T), onClose func()) *Modal[T] {
	return &Modal[T]{
		state:    StateClosed,
		errors:   map[string]string{},
		validate: validate,
		onSave:   onSave,
		onClose:  onClose,
	}
}

// Open abre el modal. El estado se rehace desde initial, o en blanco si es nil.
func (modal *Modal[T]) Open(initial *T, editing bool) {
	modal.mu.Lock()
	defer modal.mu.Unlock()

	var draft T
	if initial != nil {
		draft = *initial
	}
	modal.draft = draft
	modal.editing = editing
	modal.errors = map[string]string{}
	modal.state = StateOpen
}

func (modal *Modal[T]) State() State {
	modal.mu.Lock()
	defer modal.mu.Unlock()
	return modal.state
}

func (modal *Modal[T]) IsOpen() bool {
	return modal.State() == StateOpen
}

func (modal *Modal[T]) Editing() bool {
	modal.mu.Lock()
	defer modal.mu.Unlock()
	return modal.editing
}

// Draft devuelve una copia del registro en edición.
func (modal *Modal[T]) Draft() T {
	modal.mu.Lock()
	defer modal.mu.Unlock()
	return modal.draft
}

// Update modifica el registro en edición.
func (modal *Modal[T]) Update(mutate func(*T)) error {
	modal.mu.Lock()
	defer modal.mu.Unlock()
	if modal.state != StateOpen {
		return ErrClosed
	}
	mutate(&modal.draft)
	return nil
}

// Errors devuelve las violaciones del último intento de confirmación.
func (modal *Modal[T]) Errors() map[string]string {
	modal.mu.Lock()
	defer modal.mu.Unlock()
	out := make(map[string]string, len(modal.errors))
	for name, message := range modal.errors {
		out[name] = message
	}
	return out
}

// Confirm valida juntando todas las violaciones. Si no hay, llama a onSave y
// después a onClose, y el modal queda cerrado.
func (modal *Modal[T]) Confirm() (T, error) {
	var zero T
	modal.mu.Lock()
	if modal.state != StateOpen {
		modal.mu.Unlock()
		return zero, ErrClosed
	}
	modal.state = StateValidating
	record := modal.draft

	var violations map[string]string
	if modal.validate != nil {
		violations = modal.validate(record)
	}
	if len(violations) > 0 {
		modal.errors = violations
		modal.state = StateOpen
		modal.mu.Unlock()
		return zero, &ValidationError{Fields: violations}
	}
	modal.errors = map[string]string{}
	modal.state = StateSubmitted
	onSave := modal.onSave
	modal.mu.Unlock()

	if onSave != nil {
		onSave(record)
	}
	modal.close()
	return record, nil
}

// Cancel cierra sin guardar.
func (modal *Modal[T]) Cancel() {
	modal.mu.Lock()
	if modal.state == StateClosed {
		modal.mu.Unlock()
		return
	}
	modal.mu.Unlock()
	modal.close()
}

func (modal *Modal[T]) close() {
	modal.mu.Lock()
	modal.state = StateClosed
	onClose := modal.onClose
	modal.mu.Unlock()

	if onClose != nil {
		onClose()
	}
}

// Required agrega un mensaje por cada campo en blanco. Es el chequeo común
// de los validadores de cada variante.
func Required(violations map[string]string, values map[string]string, labels map[string]string) {
	for name, value := range values {
		if strings.TrimSpace(value) == "" {
			label := labels[name]
			if label == "" {
				label = name
			}
			violations[name] = label + " es obligatorio"
		}
	}
}
