package apiclient

import (
	"errors"
	"strings"
)

// ErrEmptyToken indica que se intentó guardar un token vacío.
var ErrEmptyToken = errors.New("empty token")

// SetToken guarda el token de acceso que usarán las llamadas siguientes.
func (client *Client) SetToken(token string) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return ErrEmptyToken
	}
	return client.session.SetToken(token)
}

// Logout borra el token guardado.
func (client *Client) Logout() error {
	return client.session.Clear()
}

func (client *Client) HasToken() bool {
	return client.session.Token() != ""
}

// MaskedToken devuelve el token con el centro tapado, para mostrarlo.
func (client *Client) MaskedToken() string {
	token := client.session.Token()
	switch {
	case token == "":
		return "(sin token)"
	case len(token) <= 8:
		return strings.Repeat("*", len(token))
	default:
		return token[:4] + strings.Repeat("*", len(token)-8) + token[len(token)-4:]
	}
}
