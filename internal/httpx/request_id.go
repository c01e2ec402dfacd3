package httpx

import (
	"net/http"

	"github.com/google/uuid"
)

// RequestIDHeader es el header con el que la API correlaciona requests y logs.
const RequestIDHeader = "X-Request-Id"

// RequestIDFrom lee el request id de un request (saliente o recibido).
func RequestIDFrom(request *http.Request) string {
	if request == nil {
		return ""
	}
	return request.Header.Get(RequestIDHeader)
}

// EnsureRequestID asigna un UUID v4 al request si el llamador no puso uno
// y devuelve el id efectivo.
func EnsureRequestID(request *http.Request) string {
	if request == nil {
		return ""
	}
	if id := RequestIDFrom(request); id != "" {
		return id
	}
	id := uuid.NewString()
	request.Header.Set(RequestIDHeader, id)
	return id
}
