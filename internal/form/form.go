package form

import (
	"errors"
	"fmt"
	"sync"
)

var (
	ErrUnknownField = errors.New("unknown field")
	ErrReadOnly     = errors.New("read-only field")
)

// SelectChange es el evento que recibe el callback de cambio de select.
type SelectChange struct {
	Field string
	Value any
}

// Control es un campo listo para renderizar.
type Control struct {
	Name     string
	Label    string
	Kind     Kind
	Value    any
	Choices  []Choice
	Min      int
	Step     int
	Disabled bool
	Error    string
}

// Form es un formulario dinámico: copia de trabajo de los valores + mapa de errores.
// No hace I/O; quien lo usa decide qué hacer en onSubmit.
type Form struct {
	mu             sync.Mutex
	descriptor     Descriptor
	rules          Rules
	values         map[string]any
	errors         map[string]string
	onSubmit       func(map[string]any)
	onSelectChange func(SelectChange)
}

// Option configura un Form.
type Option func(*Form)

// WithSelectChange registra un callback para cambios en campos select
// (por ejemplo para recargar datos dependientes).
func WithSelectChange(callback func(SelectChange)) Option {
	return func(form *Form) {
		form.onSelectChange = callback
	}
}

// New crea un formulario a partir del descriptor.
func New(descriptor Descriptor, rules Rules, onSubmit func(map[string]any), opts ...Option) *Form {
	form := &Form{rules: rules, onSubmit: onSubmit}
	for _, opt := range opts {
		opt(form)
	}
	form.reset(descriptor)
	return form
}

// Reset reemplaza el descriptor (registro recargado) y limpia errores.
func (form *Form) Reset(descriptor Descriptor) {
	form.mu.Lock()
	defer form.mu.Unlock()
	form.reset(descriptor)
}

func (form *Form) reset(descriptor Descriptor) {
	form.descriptor = descriptor
	form.values = copyValues(descriptor.Data)
	form.errors = map[string]string{}
}

// Change actualiza un campo y revalida sólo ese campo.
func (form *Form) Change(name string, value any) error {
	form.mu.Lock()
	field, ok := form.descriptor.Field(name)
	if !ok {
		form.mu.Unlock()
		return fmt.Errorf("%w: %s", ErrUnknownField, name)
	}
	if field.ReadOnly {
		form.mu.Unlock()
		return fmt.Errorf("%w: %s", ErrReadOnly, name)
	}

	if rule, ok := form.rules[name]; ok {
		if message := rule(value); message != "" {
			form.errors[name] = message
		} else {
			delete(form.errors, name)
		}
	}
	form.values[name] = value
	callback := form.onSelectChange
	form.mu.Unlock()

	if field.Kind == KindSelect && callback != nil {
		callback(SelectChange{Field: name, Value: value})
	}
	return nil
}

// Submit revalida todo. Si alguna regla falla bloquea el envío y deja todos
// los errores en el mapa; si no, llama a onSubmit una vez con los valores actuales.
func (form *Form) Submit() bool {
	form.mu.Lock()
	errs := map[string]string{}
	for name, rule := range form.rules {
		if message := rule(form.values[name]); message != "" {
			errs[name] = message
		}
	}
	form.errors = errs
	if len(errs) > 0 {
		form.mu.Unlock()
		return false
	}
	values := copyValues(form.values)
	callback := form.onSubmit
	form.mu.Unlock()

	if callback != nil {
		callback(values)
	}
	return true
}

// Errors devuelve una copia del mapa de errores; vacío significa enviable.
func (form *Form) Errors() map[string]string {
	form.mu.Lock()
	defer form.mu.Unlock()
	out := make(map[string]string, len(form.errors))
	for name, message := range form.errors {
		out[name] = message
	}
	return out
}

// Values devuelve una copia de los valores de trabajo.
func (form *Form) Values() map[string]any {
	form.mu.Lock()
	defer form.mu.Unlock()
	return copyValues(form.values)
}

// Controls aplica la política de render: select cerrado si el campo tiene
// opciones, numérico (mínimo 1, paso 1) si es number, texto en otro caso.
// Los campos de sólo lectura salen deshabilitados sin importar el tipo.
func (form *Form) Controls() []Control {
	form.mu.Lock()
	defer form.mu.Unlock()

	controls := make([]Control, 0, len(form.descriptor.Fields))
	for _, field := range form.descriptor.Fields {
		control := Control{
			Name:     field.Name,
			Label:    field.Label,
			Kind:     field.Kind,
			Value:    form.values[field.Name],
			Disabled: field.ReadOnly,
			Error:    form.errors[field.Name],
		}
		switch field.Kind {
		case KindSelect:
			control.Choices = append([]Choice(nil), field.Choices...)
		case KindNumber:
			control.Min = 1
			control.Step = 1
		default:
			control.Kind = KindText
		}
		controls = append(controls, control)
	}
	return controls
}

func copyValues(values map[string]any) map[string]any {
	out := make(map[string]any, len(values))
	for name, value := range values {
		out[name] = value
	}
	return out
}
