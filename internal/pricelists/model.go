package pricelists

import (
	"github.com/shopspring/decimal"

	"github.com/Lelo88/backoffice-client-golang/internal/apiclient"
	"github.com/Lelo88/backoffice-client-golang/internal/sublist"
)

// ProductoLista es un producto base dentro de una lista de precios.
// es_default marca el producto sugerido por defecto de la lista.
type ProductoLista struct {
	ID              sublist.Key     `json:"id,omitzero"`
	ProductoBaseID  apiclient.ID    `json:"producto_base_id"`
	Nombre          string          `json:"nombre"`
	UnidadesPorCaja int             `json:"unidades_por_caja"`
	PrecioNeto      decimal.Decimal `json:"precio_neto"`
	PrecioVenta     decimal.Decimal `json:"precio_venta"`
	EsDefault       bool            `json:"es_default"`
}

func (producto ProductoLista) Key() sublist.Key { return producto.ID }

func (producto ProductoLista) WithKey(key sublist.Key) ProductoLista {
	producto.ID = key
	return producto
}

func (producto ProductoLista) Exclusive() bool { return producto.EsDefault }

func (producto ProductoLista) WithExclusive(exclusive bool) ProductoLista {
	producto.EsDefault = exclusive
	return producto
}

// BaseRef es la referencia usada por el guard de duplicados.
func BaseRef(producto ProductoLista) string {
	return string(producto.ProductoBaseID)
}
