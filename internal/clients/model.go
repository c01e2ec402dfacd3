package clients

import (
	"github.com/Lelo88/backoffice-client-golang/internal/addresses"
	"github.com/Lelo88/backoffice-client-golang/internal/apiclient"
	"github.com/Lelo88/backoffice-client-golang/internal/form"
)

// Campos del formulario de cliente.
const (
	FieldNombre      = "nombre"
	FieldRUT         = "rut"
	FieldGiro        = "giro"
	FieldEmail       = "email"
	FieldTelefono    = "telefono"
	FieldTipoCliente = "tipo_cliente"
	FieldDiasCredito = "dias_credito"
	FieldDirecciones = "direcciones"
)

// Cliente es el cliente tal como lo devuelve la API.
type Cliente struct {
	ID          apiclient.ID          `json:"id"`
	Nombre      string                `json:"nombre"`
	RUT         string                `json:"rut"`
	Giro        string                `json:"giro,omitempty"`
	Email       string                `json:"email,omitempty"`
	Telefono    string                `json:"telefono,omitempty"`
	TipoCliente string                `json:"tipo_cliente,omitempty"`
	DiasCredito int                   `json:"dias_credito,omitempty"`
	Direcciones []addresses.Direccion `json:"direcciones,omitempty"`
}

var order = []string{FieldNombre, FieldRUT, FieldGiro, FieldEmail, FieldTelefono, FieldTipoCliente, FieldDiasCredito}

var labels = map[string]string{
	FieldNombre:      "Nombre",
	FieldRUT:         "RUT",
	FieldGiro:        "Giro",
	FieldEmail:       "Email",
	FieldTelefono:    "Teléfono",
	FieldTipoCliente: "Tipo de cliente",
	FieldDiasCredito: "Días de crédito",
}

// TiposCliente son las opciones del select tipo_cliente.
var TiposCliente = []form.Choice{
	{Value: "empresa", Label: "Empresa"},
	{Value: "persona", Label: "Persona natural"},
}

// Data devuelve los valores del cliente para el formulario.
func (cliente Cliente) Data() map[string]any {
	return map[string]any{
		FieldNombre:      cliente.Nombre,
		FieldRUT:         cliente.RUT,
		FieldGiro:        cliente.Giro,
		FieldEmail:       cliente.Email,
		FieldTelefono:    cliente.Telefono,
		FieldTipoCliente: cliente.TipoCliente,
		FieldDiasCredito: cliente.DiasCredito,
	}
}

// Descriptor arma el formulario de cliente. Con readOnlyRUT el RUT queda
// deshabilitado (cliente ya persistido).
func Descriptor(cliente Cliente, readOnlyRUT bool) form.Descriptor {
	var readOnly []string
	if readOnlyRUT {
		readOnly = []string{FieldRUT}
	}
	return form.FromLabels(order, cliente.Data(), labels,
		map[string][]form.Choice{FieldTipoCliente: TiposCliente},
		[]string{FieldDiasCredito},
		readOnly)
}

// Rules son las validaciones del formulario de cliente.
func Rules() form.Rules {
	return form.Rules{
		FieldNombre:      form.Chain(form.Required(labels[FieldNombre]), form.MaxLength(labels[FieldNombre], 120)),
		FieldRUT:         form.Required(labels[FieldRUT]),
		FieldTipoCliente: form.Required(labels[FieldTipoCliente]),
		FieldDiasCredito: form.PositiveInt(labels[FieldDiasCredito]),
	}
}
