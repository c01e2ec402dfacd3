package addresses

import "github.com/Lelo88/backoffice-client-golang/internal/sublist"

// Tipos de dirección ofrecidos en el select del editor.
var TiposDireccion = []string{"Despacho", "Facturación", "Casa matriz"}

// Direccion es una dirección de un cliente. es_principal es el flag exclusivo
// de la lista: a lo sumo una por cliente.
type Direccion struct {
	ID             sublist.Key `json:"id,omitzero"`
	TipoDireccion  string      `json:"tipo_direccion"`
	NombreSucursal string      `json:"nombre_sucursal"`
	Calle          string      `json:"calle"`
	Numero         string      `json:"numero"`
	Comuna         string      `json:"comuna"`
	Region         string      `json:"region"`
	EsPrincipal    bool        `json:"es_principal"`
}

func (direccion Direccion) Key() sublist.Key {
	return direccion.ID
}

func (direccion Direccion) WithKey(key sublist.Key) Direccion {
	direccion.ID = key
	return direccion
}

func (direccion Direccion) Exclusive() bool {
	return direccion.EsPrincipal
}

func (direccion Direccion) WithExclusive(exclusive bool) Direccion {
	direccion.EsPrincipal = exclusive
	return direccion
}

// Payload devuelve la dirección sin clave, como se envía en altas y ediciones.
func (direccion Direccion) Payload() Direccion {
	return direccion.WithKey(sublist.Key{})
}
