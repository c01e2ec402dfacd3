package addresses

import (
	"context"
	"errors"
	"fmt"

	"github.com/Lelo88/backoffice-client-golang/internal/catalog"
	"github.com/Lelo88/backoffice-client-golang/internal/modal"
	"github.com/Lelo88/backoffice-client-golang/internal/sublist"
)

// Nombres de campo del editor (coinciden con el JSON de la API).
const (
	FieldTipoDireccion  = "tipo_direccion"
	FieldNombreSucursal = "nombre_sucursal"
	FieldCalle          = "calle"
	FieldNumero         = "numero"
	FieldComuna         = "comuna"
	FieldRegion         = "region"
)

// PrincipalNotice se muestra al marcar como principal cuando otra dirección ya lo es.
const PrincipalNotice = "Al guardar, esta dirección pasará a ser la principal y las demás dejarán de serlo"

var (
	ErrUnknownField   = errors.New("unknown direccion field")
	ErrComunaDisabled = errors.New("select a region first")
	ErrUnknownRegion  = errors.New("unknown region")
)

// Labels son las etiquetas visibles de cada campo.
var Labels = map[string]string{
	FieldTipoDireccion:  "Tipo de dirección",
	FieldNombreSucursal: "Nombre sucursal",
	FieldCalle:          "Calle",
	FieldNumero:         "Número",
	FieldComuna:         "Comuna",
	FieldRegion:         "Región",
}

// Validate devuelve todas las violaciones de una dirección.
func Validate(direccion Direccion) map[string]string {
	violations := map[string]string{}
	modal.Required(violations, map[string]string{
		FieldTipoDireccion:  direccion.TipoDireccion,
		FieldNombreSucursal: direccion.NombreSucursal,
		FieldCalle:          direccion.Calle,
		FieldNumero:         direccion.Numero,
		FieldComuna:         direccion.Comuna,
		FieldRegion:         direccion.Region,
	}, Labels)
	return violations
}

// Editor es el modal de direcciones conectado al manager de la lista.
type Editor struct {
	modal   *modal.Modal[Direccion]
	manager *sublist.Manager[Direccion]
}

func NewEditor(manager *sublist.Manager[Direccion], onClose func()) *Editor {
	return &Editor{
		modal:   modal.New(Validate, nil, onClose),
		manager: manager,
	}
}

// OpenNew abre el editor en blanco.
func (editor *Editor) OpenNew() {
	editor.modal.Open(nil, false)
}

// OpenEdit abre el editor con la dirección de la clave dada.
func (editor *Editor) OpenEdit(key sublist.Key) error {
	for _, item := range editor.manager.Items() {
		if item.Key() == key {
			editor.modal.Open(&item, true)
			return nil
		}
	}
	return fmt.Errorf("%w: %s", sublist.ErrNotFound, key)
}

func (editor *Editor) IsOpen() bool {
	return editor.modal.IsOpen()
}

func (editor *Editor) Draft() Direccion {
	return editor.modal.Draft()
}

func (editor *Editor) Errors() map[string]string {
	return editor.modal.Errors()
}

// Set cambia un campo de texto. Región y comuna pasan por SelectRegion / SelectComuna.
func (editor *Editor) Set(field, value string) error {
	switch field {
	case FieldRegion:
		return editor.SelectRegion(value)
	case FieldComuna:
		return editor.SelectComuna(value)
	}
	var apply func(*Direccion)
	switch field {
	case FieldTipoDireccion:
		apply = func(direccion *Direccion) { direccion.TipoDireccion = value }
	case FieldNombreSucursal:
		apply = func(direccion *Direccion) { direccion.NombreSucursal = value }
	case FieldCalle:
		apply = func(direccion *Direccion) { direccion.Calle = value }
	case FieldNumero:
		apply = func(direccion *Direccion) { direccion.Numero = value }
	default:
		return fmt.Errorf("%w: %s", ErrUnknownField, field)
	}
	return editor.modal.Update(apply)
}

// SelectRegion cambia la región y limpia la comuna elegida.
func (editor *Editor) SelectRegion(region string) error {
	if region != "" && catalog.Comunas(region) == nil {
		return fmt.Errorf("%w: %s", ErrUnknownRegion, region)
	}
	return editor.modal.Update(func(direccion *Direccion) {
		direccion.Region = region
		direccion.Comuna = ""
	})
}

func (editor *Editor) SelectComuna(comuna string) error {
	if !editor.ComunaEnabled() {
		return ErrComunaDisabled
	}
	return editor.modal.Update(func(direccion *Direccion) {
		direccion.Comuna = comuna
	})
}

// Comunas devuelve las opciones de comuna de la región elegida.
func (editor *Editor) Comunas() []string {
	return catalog.Comunas(editor.modal.Draft().Region)
}

func (editor *Editor) ComunaEnabled() bool {
	return editor.modal.Draft().Region != ""
}

func (editor *Editor) SetPrincipal(principal bool) error {
	return editor.modal.Update(func(direccion *Direccion) {
		direccion.EsPrincipal = principal
	})
}

// Notice devuelve el aviso de exclusividad, o "" si no corresponde.
// El editor sólo avisa: la limpieza de las demás la hace el manager al guardar.
func (editor *Editor) Notice() string {
	draft := editor.modal.Draft()
	if !draft.EsPrincipal {
		return ""
	}
	for _, sibling := range editor.manager.Items() {
		if sibling.EsPrincipal && sibling.Key() != draft.Key() {
			return PrincipalNotice
		}
	}
	return ""
}

// Save valida y, si no hay violaciones, agrega o edita la dirección en la lista.
func (editor *Editor) Save(ctx context.Context) (Direccion, error) {
	editing := editor.modal.Editing()
	record, err := editor.modal.Confirm()
	if err != nil {
		return Direccion{}, err
	}
	if editing {
		return editor.manager.Edit(ctx, record.Key(), record)
	}
	return editor.manager.Add(ctx, record)
}

func (editor *Editor) Cancel() {
	editor.modal.Cancel()
}
