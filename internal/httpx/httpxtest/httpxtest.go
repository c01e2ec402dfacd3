// Package httpxtest reúne ayudas para levantar APIs falsas en los tests.
package httpxtest

import (
	"encoding/json"
	"net/http"
)

// JSON escribe una respuesta JSON con headers correctos.
func JSON(w http.ResponseWriter, status int, value any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)

	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(true)

	if err := enc.Encode(value); err != nil {
		http.Error(w, `{"error":"internal server error"}`, http.StatusInternalServerError)
	}
}
