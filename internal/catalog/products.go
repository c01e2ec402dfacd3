package catalog

import (
	"context"
	"net/http"

	"github.com/Lelo88/backoffice-client-golang/internal/apiclient"
)

// ProductoBase es un producto del catálogo que puede agregarse a listas de precio.
type ProductoBase struct {
	ID              apiclient.ID `json:"id"`
	Nombre          string       `json:"nombre"`
	Unidad          string       `json:"unidad,omitempty"`
	UnidadesPorCaja int          `json:"unidades_por_caja,omitempty"`
}

// Service expone los lookups de solo lectura usados para poblar selects y comboboxes,
// más el alta de productos base (sujeta a conflicto de nombre similar).
type Service struct {
	api apiclient.Doer
}

func NewService(api apiclient.Doer) *Service {
	return &Service{api: api}
}

// BaseProducts lista los productos base.
func (service *Service) BaseProducts(ctx context.Context) ([]ProductoBase, error) {
	var products []ProductoBase
	if err := service.api.Do(ctx, "/productos-base", apiclient.Options{}, &products); err != nil {
		return nil, err
	}
	return products, nil
}

// CreateBaseProduct da de alta un producto base. El payload va tal cual para que
// el flujo de nombre similar pueda reenviarlo con el flag de override.
func (service *Service) CreateBaseProduct(ctx context.Context, payload map[string]any) (ProductoBase, error) {
	var created ProductoBase
	err := service.api.Do(ctx, "/productos-base", apiclient.Options{Method: http.MethodPost, Body: payload}, &created)
	if err != nil {
		return ProductoBase{}, err
	}
	return created, nil
}
