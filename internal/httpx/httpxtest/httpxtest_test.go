package httpxtest

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestJSON(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		rec := httptest.NewRecorder()

		JSON(rec, http.StatusCreated, map[string]any{"id": "1"})

		require.Equal(t, http.StatusCreated, rec.Code)
		require.Equal(t, "application/json; charset=utf-8", rec.Header().Get("Content-Type"))
		require.JSONEq(t, `{"id":"1"}`, rec.Body.String())
	})

	t.Run("encode error", func(t *testing.T) {
		rec := httptest.NewRecorder()

		JSON(rec, http.StatusTeapot, func() {})

		require.Equal(t, http.StatusTeapot, rec.Code)
		require.Contains(t, rec.Body.String(), "internal server error")
	})
}
