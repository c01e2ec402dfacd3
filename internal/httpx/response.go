package httpx

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
)

// Envelope es el sobre estándar {data, error, meta} que algunas rutas de la API
// todavía devuelven. Las rutas nuevas responden el recurso "pelado".
type Envelope struct {
	Data  json.RawMessage `json:"data,omitempty"`
	Error *ErrorBody      `json:"error,omitempty"`
	Meta  json.RawMessage `json:"meta,omitempty"`
}

// ErrorBody describe un error dentro del sobre.
type ErrorBody struct {
	Code    string `json:"code,omitempty"`
	Message string `json:"message,omitempty"`
}

// ErrorDetails es lo que se pudo rescatar de un cuerpo de error.
type ErrorDetails struct {
	Message string
	Code    string
	// Data es el cuerpo completo parseado; nil si no era un objeto JSON.
	Data map[string]any
}

// messageKeys en orden de prioridad.
var messageKeys = []string{"detalles", "message", "error"}

// ParseError extrae un mensaje legible de un cuerpo de error.
// Si no hay nada utilizable cae a "<status> <statusText>".
func ParseError(status int, statusText string, body []byte) ErrorDetails {
	details := ErrorDetails{Message: fallbackMessage(status, statusText)}

	var data map[string]any
	if err := json.Unmarshal(body, &data); err != nil || data == nil {
		return details
	}
	details.Data = data

	if code, ok := data["code"].(string); ok {
		details.Code = code
	}

	for _, key := range messageKeys {
		if text, ok := data[key].(string); ok && strings.TrimSpace(text) != "" {
			details.Message = text
			return details
		}
	}

	// Formato sobre: {"error":{"code":"...","message":"..."}}
	if nested, ok := data["error"].(map[string]any); ok {
		if details.Code == "" {
			if code, ok := nested["code"].(string); ok {
				details.Code = code
			}
		}
		if text, ok := nested["message"].(string); ok && strings.TrimSpace(text) != "" {
			details.Message = text
		}
	}

	return details
}

func fallbackMessage(status int, statusText string) string {
	statusText = strings.TrimSpace(statusText)
	if statusText == "" {
		statusText = http.StatusText(status)
	}
	return strings.TrimSpace(fmt.Sprintf("%d %s", status, statusText))
}

// UnwrapData devuelve el campo "data" si el cuerpo es un sobre estándar;
// en cualquier otro caso devuelve el cuerpo tal cual.
func UnwrapData(body []byte) []byte {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return body
	}

	var keys map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &keys); err != nil {
		return body
	}
	data, ok := keys["data"]
	if !ok {
		return body
	}
	for key := range keys {
		if key != "data" && key != "meta" && key != "error" {
			return body
		}
	}
	return data
}
