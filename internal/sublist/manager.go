package sublist

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/Lelo88/backoffice-client-golang/internal/apiclient"
	"github.com/Lelo88/backoffice-client-golang/internal/logging"
)

// Errores del manager (no HTTP). La pantalla los traduce a mensajes.
var (
	ErrBusy      = errors.New("operation already in progress")
	ErrDuplicate = errors.New("duplicate sibling")
	ErrReadOnly  = errors.New("list is read-only")
	ErrNotFound  = errors.New("record not found in list")
)

// Mensajes de alerta genéricos para fallas sin detalle utilizable.
const (
	MessageSaveFailed   = "Error al guardar"
	MessageDeleteFailed = "Error al eliminar"
)

// Op identifica una operación para el flag de "cargando".
type Op string

const (
	OpAdd    Op = "add"
	OpEdit   Op = "edit"
	OpDelete Op = "delete"
)

// Record es lo que un tipo hijo tiene que saber hacer para vivir en una lista.
// Los métodos With* devuelven copias: el manager nunca muta el valor recibido.
type Record[T any] interface {
	Key() Key
	WithKey(key Key) T
	Exclusive() bool
	WithExclusive(exclusive bool) T
}

// Remote persiste registros hijos bajo un padre.
type Remote[T any] interface {
	Create(ctx context.Context, parentID string, record T) (T, error)
	Update(ctx context.Context, parentID, id string, record T) (T, error)
	Delete(ctx context.Context, parentID, id string) error
}

// Notifier muestra alertas al usuario.
type Notifier interface {
	Alert(message string)
}

// NotifierFunc adapta una función a Notifier.
type NotifierFunc func(message string)

func (fn NotifierFunc) Alert(message string) { fn(message) }

type nopNotifier struct{}

func (nopNotifier) Alert(string) {}

// Manager mantiene el espejo local de una lista de hermanos de un padre
// (persistido o borrador) y sincroniza altas, ediciones y bajas.
type Manager[T Record[T]] struct {
	mu       sync.Mutex
	parentID string
	items    []T
	busy     map[Op]bool

	remote       Remote[T]
	onChange     func([]T)
	notifier     Notifier
	guardRef     func(T) string
	guardMessage string
	editable     bool
	newDraftKey  func() Key
	logger       *zap.Logger
}

// Option configura un Manager.
type Option[T Record[T]] func(*Manager[T])

// WithOnChange registra el callback que recibe el espejo tras cada mutación.
func WithOnChange[T Record[T]](callback func([]T)) Option[T] {
	return func(manager *Manager[T]) {
		manager.onChange = callback
	}
}

func WithNotifier[T Record[T]](notifier Notifier) Option[T] {
	return func(manager *Manager[T]) {
		if notifier != nil {
			manager.notifier = notifier
		}
	}
}

// WithDuplicateGuard bloquea altas/ediciones cuyo ref ya exista en otro hermano.
// Un ref vacío no se compara.
func WithDuplicateGuard[T Record[T]](ref func(T) string, message string) Option[T] {
	return func(manager *Manager[T]) {
		manager.guardRef = ref
		manager.guardMessage = message
	}
}

func WithEditable[T Record[T]](editable bool) Option[T] {
	return func(manager *Manager[T]) {
		manager.editable = editable
	}
}

func WithLogger[T Record[T]](logger *zap.Logger) Option[T] {
	return func(manager *Manager[T]) {
		manager.logger = logging.OrNop(logger)
	}
}

func withDraftKeys[T Record[T]](generator func() Key) Option[T] {
	return func(manager *Manager[T]) {
		manager.newDraftKey = generator
	}
}

// New crea un manager. parentID vacío significa padre todavía no persistido.
// Con remote nil la lista es sólo local: nada se guarda en el servidor.
func New[T Record[T]](parentID string, items []T, remote Remote[T], opts ...Option[T]) *Manager[T] {
	manager := &Manager[T]{
		parentID:    parentID,
		items:       append([]T(nil), items...),
		busy:        map[Op]bool{},
		remote:      remote,
		notifier:    nopNotifier{},
		editable:    true,
		newDraftKey: NewDraftKey,
		logger:      zap.NewNop(),
	}
	for _, opt := range opts {
		opt(manager)
	}
	return manager
}

// Items devuelve una copia del espejo.
func (manager *Manager[T]) Items() []T {
	manager.mu.Lock()
	defer manager.mu.Unlock()
	return manager.snapshotLocked()
}

// Sync reemplaza el espejo (el padre se recargó).
func (manager *Manager[T]) Sync(items []T) {
	manager.mu.Lock()
	defer manager.mu.Unlock()
	manager.items = append([]T(nil), items...)
}

func (manager *Manager[T]) ParentID() string {
	manager.mu.Lock()
	defer manager.mu.Unlock()
	return manager.parentID
}

// SetParentID se usa cuando el padre borrador acaba de persistirse.
func (manager *Manager[T]) SetParentID(parentID string) {
	manager.mu.Lock()
	defer manager.mu.Unlock()
	manager.parentID = parentID
}

// Busy indica si hay una operación del tipo dado en curso (para deshabilitar el control).
func (manager *Manager[T]) Busy(op Op) bool {
	manager.mu.Lock()
	defer manager.mu.Unlock()
	return manager.busy[op]
}

// Add agrega un registro. Con padre persistido lo crea en el servidor; sin padre
// le asigna una clave de borrador y lo agrega sólo localmente.
func (manager *Manager[T]) Add(ctx context.Context, record T) (T, error) {
	var zero T
	if err := manager.begin(OpAdd); err != nil {
		return zero, err
	}
	defer manager.end(OpAdd)

	if err := manager.checkDuplicate(record, Key{}); err != nil {
		return zero, err
	}

	parentID := manager.ParentID()
	changed := false
	if record.Exclusive() {
		cleared, err := manager.clearOthers(ctx, parentID, Key{})
		changed = cleared
		if err != nil {
			manager.emitIf(changed)
			return zero, err
		}
	}

	var saved T
	if parentID == "" || manager.remote == nil {
		saved = record.WithKey(manager.newDraftKey())
	} else {
		created, err := manager.remote.Create(ctx, parentID, record)
		if err != nil {
			manager.alert(MessageSaveFailed, err)
			manager.emitIf(changed)
			return zero, err
		}
		saved = created
	}

	manager.mu.Lock()
	manager.items = append(manager.items, saved)
	snapshot := manager.snapshotLocked()
	manager.mu.Unlock()

	manager.logger.Debug("sublist add",
		zap.String("parent_id", parentID),
		zap.String("key", saved.Key().String()))
	manager.emit(snapshot)
	return saved, nil
}

// Edit reemplaza el registro con la clave dada. Los borradores y las listas
// sin padre se editan sólo localmente.
func (manager *Manager[T]) Edit(ctx context.Context, key Key, record T) (T, error) {
	var zero T
	if err := manager.begin(OpEdit); err != nil {
		return zero, err
	}
	defer manager.end(OpEdit)

	if _, ok := manager.indexOf(key); !ok {
		return zero, fmt.Errorf("%w: %s", ErrNotFound, key)
	}
	if err := manager.checkDuplicate(record, key); err != nil {
		return zero, err
	}

	record = record.WithKey(key)
	parentID := manager.ParentID()
	changed := false
	if record.Exclusive() {
		cleared, err := manager.clearOthers(ctx, parentID, key)
		changed = cleared
		if err != nil {
			manager.emitIf(changed)
			return zero, err
		}
	}

	saved := record
	if parentID != "" && manager.persisted(key) {
		updated, err := manager.remote.Update(ctx, parentID, key.ID(), record)
		if err != nil {
			manager.alert(MessageSaveFailed, err)
			manager.emitIf(changed)
			return zero, err
		}
		saved = updated
	}

	manager.mu.Lock()
	if index, ok := manager.indexOfLocked(key); ok {
		manager.items[index] = saved
	}
	snapshot := manager.snapshotLocked()
	manager.mu.Unlock()

	manager.logger.Debug("sublist edit",
		zap.String("parent_id", parentID),
		zap.String("key", key.String()))
	manager.emit(snapshot)
	return saved, nil
}

// Delete elimina un registro. Un borrador nunca genera llamada de red.
func (manager *Manager[T]) Delete(ctx context.Context, key Key) error {
	if err := manager.begin(OpDelete); err != nil {
		return err
	}
	defer manager.end(OpDelete)

	if _, ok := manager.indexOf(key); !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, key)
	}

	parentID := manager.ParentID()
	if manager.persisted(key) {
		if err := manager.remote.Delete(ctx, parentID, key.ID()); err != nil {
			manager.alert(MessageDeleteFailed, err)
			return err
		}
	}

	manager.mu.Lock()
	if index, ok := manager.indexOfLocked(key); ok {
		manager.items = append(manager.items[:index], manager.items[index+1:]...)
	}
	snapshot := manager.snapshotLocked()
	manager.mu.Unlock()

	manager.logger.Debug("sublist delete",
		zap.String("parent_id", parentID),
		zap.String("key", key.String()))
	manager.emit(snapshot)
	return nil
}

// clearOthers apaga el flag exclusivo en todos los hermanos salvo except, en orden
// y de a uno. Cada limpieza exitosa se refleja en el espejo apenas termina, así el
// espejo nunca muestra dos exclusivos; si una falla se corta ahí.
func (manager *Manager[T]) clearOthers(ctx context.Context, parentID string, except Key) (bool, error) {
	manager.mu.Lock()
	var targets []T
	for _, item := range manager.items {
		if item.Exclusive() && item.Key() != except {
			targets = append(targets, item)
		}
	}
	manager.mu.Unlock()

	changed := false
	for _, sibling := range targets {
		cleared := sibling.WithExclusive(false)
		key := sibling.Key()
		if manager.persisted(key) {
			updated, err := manager.remote.Update(ctx, parentID, key.ID(), cleared)
			if err != nil {
				manager.alert(MessageSaveFailed, err)
				return changed, err
			}
			cleared = updated.WithExclusive(false)
		}

		manager.mu.Lock()
		if index, ok := manager.indexOfLocked(key); ok {
			manager.items[index] = cleared
			changed = true
		}
		manager.mu.Unlock()
	}
	return changed, nil
}

// persisted indica si los cambios sobre key se guardan en el servidor.
func (manager *Manager[T]) persisted(key Key) bool {
	return manager.remote != nil && !key.IsDraft()
}

func (manager *Manager[T]) checkDuplicate(record T, except Key) error {
	if manager.guardRef == nil {
		return nil
	}
	ref := manager.guardRef(record)
	if ref == "" {
		return nil
	}

	manager.mu.Lock()
	duplicate := false
	for _, item := range manager.items {
		if item.Key() == except && !except.IsZero() {
			continue
		}
		if manager.guardRef(item) == ref {
			duplicate = true
			break
		}
	}
	manager.mu.Unlock()

	if !duplicate {
		return nil
	}
	message := manager.guardMessage
	if message == "" {
		message = "El registro ya está en la lista"
	}
	manager.notifier.Alert(message)
	return fmt.Errorf("%w: %s", ErrDuplicate, ref)
}

func (manager *Manager[T]) begin(op Op) error {
	manager.mu.Lock()
	defer manager.mu.Unlock()
	if !manager.editable {
		return ErrReadOnly
	}
	if manager.busy[op] {
		return fmt.Errorf("%w: %s", ErrBusy, op)
	}
	manager.busy[op] = true
	return nil
}

func (manager *Manager[T]) end(op Op) {
	manager.mu.Lock()
	defer manager.mu.Unlock()
	delete(manager.busy, op)
}

func (manager *Manager[T]) indexOf(key Key) (int, bool) {
	manager.mu.Lock()
	defer manager.mu.Unlock()
	return manager.indexOfLocked(key)
}

func (manager *Manager[T]) indexOfLocked(key Key) (int, bool) {
	for index, item := range manager.items {
		if item.Key() == key {
			return index, true
		}
	}
	return 0, false
}

func (manager *Manager[T]) snapshotLocked() []T {
	return append([]T(nil), manager.items...)
}

func (manager *Manager[T]) emit(snapshot []T) {
	if manager.onChange != nil {
		manager.onChange(snapshot)
	}
}

func (manager *Manager[T]) emitIf(changed bool) {
	if changed {
		manager.emit(manager.Items())
	}
}

// alert muestra el mensaje de la API tal cual; las fallas de transporte u otras
// sin detalle se muestran con el mensaje genérico.
func (manager *Manager[T]) alert(generic string, err error) {
	message := generic
	var apiErr *apiclient.APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		message = generic + ": " + apiErr.Message
	}
	manager.logger.Warn("sublist remote call failed", zap.Error(err))
	manager.notifier.Alert(message)
}
