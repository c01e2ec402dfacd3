package apiclient

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// CodeSimilarName es el código que la API usa para rechazar nombres casi duplicados.
const CodeSimilarName = "SIMILAR_NAME"

// ErrTransport envuelve fallas donde no hubo respuesta HTTP (DNS, conexión, timeout).
var ErrTransport = errors.New("transport error")

// APIError es la respuesta no-2xx de la API.
type APIError struct {
	Status     int
	StatusText string
	Message    string
	Code       string
	// Data es el cuerpo de error parseado; hace falta para detectar conflictos.
	Data map[string]any
}

func (err *APIError) Error() string {
	return err.Message
}

// IsUnauthorized indica si err es un 401 de la API.
func IsUnauthorized(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == http.StatusUnauthorized
}

// IsNotFound indica si err es un 404 de la API.
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == http.StatusNotFound
}

// ID es un identificador de la API: puede llegar como número o como string.
type ID string

func (id *ID) UnmarshalJSON(raw []byte) error {
	raw = bytes.TrimSpace(raw)
	if bytes.Equal(raw, []byte("null")) {
		*id = ""
		return nil
	}
	if len(raw) > 0 && raw[0] == '"' {
		var text string
		if err := json.Unmarshal(raw, &text); err != nil {
			return err
		}
		*id = ID(text)
		return nil
	}
	var number json.Number
	if err := json.Unmarshal(raw, &number); err != nil {
		return fmt.Errorf("invalid id %s: %w", raw, err)
	}
	*id = ID(number.String())
	return nil
}

// Match es un registro existente con nombre parecido.
type Match struct {
	ID     ID       `json:"id"`
	Nombre string   `json:"nombre"`
	Score  *float64 `json:"score,omitempty"`
}

// SimilarNameConflict es el detalle de un 409 SIMILAR_NAME.
type SimilarNameConflict struct {
	Input   string  `json:"input"`
	Matches []Match `json:"matches"`
}

// AsSimilarName reconoce un 409 con code SIMILAR_NAME y devuelve su detalle.
func AsSimilarName(err error) (SimilarNameConflict, bool) {
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		return SimilarNameConflict{}, false
	}
	if apiErr.Status != http.StatusConflict || apiErr.Code != CodeSimilarName {
		return SimilarNameConflict{}, false
	}

	// Re-encode del mapa para reutilizar los tags de SimilarNameConflict.
	raw, err := json.Marshal(apiErr.Data)
	if err != nil {
		return SimilarNameConflict{}, false
	}
	decoder := json.NewDecoder(bytes.NewReader(raw))
	var conflict SimilarNameConflict
	if err := decoder.Decode(&conflict); err != nil {
		return SimilarNameConflict{}, false
	}
	if conflict.Matches == nil {
		conflict.Matches = []Match{}
	}
	return conflict, true
}

func transportError(method, path string, err error) error {
	return fmt.Errorf("%w: %s %s: %v", ErrTransport, method, path, err)
}
