package combobox

import (
	"strings"
	"sync"
)

// Rect es la posición en pantalla de un elemento (celdas o píxeles, da igual la unidad).
type Rect struct {
	X, Y, Width, Height int
}

// Combobox filtra una lista de opciones a medida que se escribe y muestra
// los resultados en una capa debajo del input.
type Combobox[T any] struct {
	mu       sync.Mutex
	options  []T
	display  func(T) string
	query    string
	filtered []T
	open     bool
	anchor   Rect
	onSelect func(T)
}

// New crea un combobox sobre options; display da el texto contra el que se filtra.
func New[T any](options []T, display func(T) string, onSelect func(T)) *Combobox[T] {
	combo := &Combobox[T]{
		options:  append([]T(nil), options...),
		display:  display,
		onSelect: onSelect,
	}
	combo.filtered = combo.filterLocked("")
	return combo
}

// SetQuery actualiza el texto escrito, refiltra y abre la capa.
func (combo *Combobox[T]) SetQuery(query string) {
	combo.mu.Lock()
	defer combo.mu.Unlock()
	combo.query = query
	combo.filtered = combo.filterLocked(query)
	combo.open = true
}

func (combo *Combobox[T]) Query() string {
	combo.mu.Lock()
	defer combo.mu.Unlock()
	return combo.query
}

// Filtered devuelve las opciones que contienen el texto (sin distinguir mayúsculas).
func (combo *Combobox[T]) Filtered() []T {
	combo.mu.Lock()
	defer combo.mu.Unlock()
	return append([]T(nil), combo.filtered...)
}

// Visible indica si la capa se dibuja: abierta y con al menos una opción.
func (combo *Combobox[T]) Visible() bool {
	combo.mu.Lock()
	defer combo.mu.Unlock()
	return combo.open && len(combo.filtered) > 0
}

// Focus abre la capa sin cambiar el texto.
func (combo *Combobox[T]) Focus(anchor Rect) {
	combo.mu.Lock()
	defer combo.mu.Unlock()
	combo.anchor = anchor
	combo.open = true
}

// Reposition recalcula la capa con la posición actual del input (scroll/resize).
func (combo *Combobox[T]) Reposition(anchor Rect) {
	combo.mu.Lock()
	defer combo.mu.Unlock()
	combo.anchor = anchor
}

// Layer es la posición de la capa: justo debajo del input y con su mismo ancho.
func (combo *Combobox[T]) Layer() Rect {
	combo.mu.Lock()
	defer combo.mu.Unlock()
	return Rect{
		X:      combo.anchor.X,
		Y:      combo.anchor.Y + combo.anchor.Height,
		Width:  combo.anchor.Width,
		Height: len(combo.filtered),
	}
}

// Select elige la opción index de la lista filtrada, completa el texto y cierra.
func (combo *Combobox[T]) Select(index int) (T, bool) {
	var zero T
	combo.mu.Lock()
	if !combo.open || index < 0 || index >= len(combo.filtered) {
		combo.mu.Unlock()
		return zero, false
	}
	item := combo.filtered[index]
	combo.query = combo.display(item)
	combo.filtered = combo.filterLocked(combo.query)
	combo.open = false
	onSelect := combo.onSelect
	combo.mu.Unlock()

	if onSelect != nil {
		onSelect(item)
	}
	return item, true
}

// ClickOutside cierra la capa sin seleccionar.
func (combo *Combobox[T]) ClickOutside() {
	combo.mu.Lock()
	defer combo.mu.Unlock()
	combo.open = false
}

func (combo *Combobox[T]) filterLocked(query string) []T {
	needle := strings.ToLower(strings.TrimSpace(query))
	if needle == "" {
		return append([]T(nil), combo.options...)
	}
	var out []T
	for _, option := range combo.options {
		if strings.Contains(strings.ToLower(combo.display(option)), needle) {
			out = append(out, option)
		}
	}
	return out
}
