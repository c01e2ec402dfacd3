package sublist

import (
	"bytes"
	"crypto/rand"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

// DraftPrefix marca los identificadores de registros que todavía no existen en el servidor.
const DraftPrefix = "temp-"

// Key identifica un registro hijo: o ya persistido (id del servidor) o borrador
// (clave local). La distinción es de tipo, no una convención sobre el string.
type Key struct {
	value string
	draft bool
}

// Persisted crea la clave de un registro que existe en el servidor.
func Persisted(id string) Key {
	return Key{value: id}
}

// Draft crea la clave de un registro sólo local.
func Draft(local string) Key {
	return Key{value: local, draft: true}
}

// ParseKey interpreta un id recibido como texto; el prefijo temp- indica borrador.
func ParseKey(raw string) Key {
	raw = strings.TrimSpace(raw)
	if local, ok := strings.CutPrefix(raw, DraftPrefix); ok {
		return Draft(local)
	}
	return Persisted(raw)
}

func (key Key) IsDraft() bool { return key.draft }

func (key Key) IsZero() bool { return key.value == "" }

// ID devuelve el id del servidor; "" para borradores.
func (key Key) ID() string {
	if key.draft {
		return ""
	}
	return key.value
}

func (key Key) String() string {
	if key.draft {
		return DraftPrefix + key.value
	}
	return key.value
}

// MarshalJSON: los ids enteros en forma canónica salen como número, el resto como string.
func (key Key) MarshalJSON() ([]byte, error) {
	if key.IsZero() {
		return []byte("null"), nil
	}
	if !key.draft {
		if number, err := strconv.ParseInt(key.value, 10, 64); err == nil && strconv.FormatInt(number, 10) == key.value {
			return []byte(key.value), nil
		}
	}
	return json.Marshal(key.String())
}

func (key *Key) UnmarshalJSON(raw []byte) error {
	raw = bytes.TrimSpace(raw)
	switch {
	case bytes.Equal(raw, []byte("null")):
		*key = Key{}
		return nil
	case len(raw) > 0 && raw[0] == '"':
		var text string
		if err := json.Unmarshal(raw, &text); err != nil {
			return err
		}
		*key = ParseKey(text)
		return nil
	default:
		var number json.Number
		if err := json.Unmarshal(raw, &number); err != nil {
			return fmt.Errorf("invalid key %s: %w", raw, err)
		}
		*key = Persisted(number.String())
		return nil
	}
}

// draftKeys genera claves de borrador únicas y monótonas durante todo el proceso.
var draftKeys = struct {
	mu      sync.Mutex
	entropy *ulid.MonotonicEntropy
}{entropy: ulid.Monotonic(rand.Reader, 0)}

// NewDraftKey devuelve una clave de borrador nueva.
func NewDraftKey() Key {
	draftKeys.mu.Lock()
	defer draftKeys.mu.Unlock()
	id := ulid.MustNew(ulid.Timestamp(time.Now()), draftKeys.entropy)
	return Draft(strings.ToLower(id.String()))
}
