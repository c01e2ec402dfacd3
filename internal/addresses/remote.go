package addresses

import (
	"context"
	"errors"
	"fmt"
	"net/url"

	"github.com/Lelo88/backoffice-client-golang/internal/apiclient"
	"github.com/Lelo88/backoffice-client-golang/internal/sublist"
)

// ErrMissingID indica que el servidor respondió un alta sin id.
var ErrMissingID = errors.New("created direccion without id")

// Remote persiste direcciones contra la API.
type Remote struct {
	api apiclient.API
}

func NewRemote(api apiclient.API) *Remote {
	return &Remote{api: api}
}

// List trae las direcciones de un cliente.
func (remote *Remote) List(ctx context.Context, clientID string) ([]Direccion, error) {
	var direcciones []Direccion
	path := "/clientes/" + url.PathEscape(clientID) + "/direcciones"
	if err := remote.api.Get(ctx, path, &direcciones); err != nil {
		return nil, err
	}
	return direcciones, nil
}

func (remote *Remote) Create(ctx context.Context, clientID string, direccion Direccion) (Direccion, error) {
	var created Direccion
	path := "/clientes/" + url.PathEscape(clientID) + "/direcciones"
	if err := remote.api.Post(ctx, path, direccion.Payload(), &created); err != nil {
		return Direccion{}, err
	}
	if created.ID.IsZero() {
		return Direccion{}, fmt.Errorf("%w: cliente %s", ErrMissingID, clientID)
	}
	return created, nil
}

// Update reemplaza la dirección. Si la API no devuelve el registro se asume el enviado.
func (remote *Remote) Update(ctx context.Context, _ string, id string, direccion Direccion) (Direccion, error) {
	var updated Direccion
	if err := remote.api.Put(ctx, "/direcciones/"+url.PathEscape(id), direccion.Payload(), &updated); err != nil {
		return Direccion{}, err
	}
	if updated.ID.IsZero() {
		return direccion.WithKey(sublist.Persisted(id)), nil
	}
	return updated, nil
}

func (remote *Remote) Delete(ctx context.Context, _ string, id string) error {
	return remote.api.Delete(ctx, "/direcciones/"+url.PathEscape(id))
}
