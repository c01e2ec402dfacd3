package pricelists

import (
	"context"
	"fmt"
	"net/url"

	"github.com/Lelo88/backoffice-client-golang/internal/apiclient"
	"github.com/Lelo88/backoffice-client-golang/internal/sublist"
)

// DuplicateMessage es la alerta del guard de duplicados.
const DuplicateMessage = "El producto ya está en la lista de precios"

// Remote persiste los productos de una lista de precios.
type Remote struct {
	api apiclient.API
}

func NewRemote(api apiclient.API) *Remote {
	return &Remote{api: api}
}

func itemsPath(listID string) string {
	return "/listas-precios/" + url.PathEscape(listID) + "/productos-base"
}

func itemPath(listID, itemID string) string {
	return itemsPath(listID) + "/" + url.PathEscape(itemID)
}

// List trae los productos de la lista.
func (remote *Remote) List(ctx context.Context, listID string) ([]ProductoLista, error) {
	var productos []ProductoLista
	if err := remote.api.Get(ctx, itemsPath(listID), &productos); err != nil {
		return nil, err
	}
	return productos, nil
}

func (remote *Remote) Create(ctx context.Context, listID string, producto ProductoLista) (ProductoLista, error) {
	var created ProductoLista
	if err := remote.api.Post(ctx, itemsPath(listID), producto.WithKey(sublist.Key{}), &created); err != nil {
		return ProductoLista{}, err
	}
	if created.ID.IsZero() {
		return ProductoLista{}, fmt.Errorf("created producto in lista %s without id", listID)
	}
	return created, nil
}

func (remote *Remote) Update(ctx context.Context, listID, id string, producto ProductoLista) (ProductoLista, error) {
	var updated ProductoLista
	if err := remote.api.Put(ctx, itemPath(listID, id), producto.WithKey(sublist.Key{}), &updated); err != nil {
		return ProductoLista{}, err
	}
	if updated.ID.IsZero() {
		return producto.WithKey(sublist.Persisted(id)), nil
	}
	return updated, nil
}

func (remote *Remote) Delete(ctx context.Context, listID, id string) error {
	return remote.api.Delete(ctx, itemPath(listID, id))
}

// NewManager arma el manager de una lista con el guard de producto repetido.
func NewManager(listID string, items []ProductoLista, remote sublist.Remote[ProductoLista], opts ...sublist.Option[ProductoLista]) *sublist.Manager[ProductoLista] {
	opts = append([]sublist.Option[ProductoLista]{
		sublist.WithDuplicateGuard(BaseRef, DuplicateMessage),
	}, opts...)
	return sublist.New(listID, items, remote, opts...)
}
