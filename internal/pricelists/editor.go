package pricelists

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/Lelo88/backoffice-client-golang/internal/catalog"
	"github.com/Lelo88/backoffice-client-golang/internal/combobox"
	"github.com/Lelo88/backoffice-client-golang/internal/modal"
	"github.com/Lelo88/backoffice-client-golang/internal/sublist"
)

const (
	FieldProducto    = "producto_base_id"
	FieldPrecioNeto  = "precio_neto"
	FieldPrecioVenta = "precio_venta"
)

var ErrInvalidPrice = errors.New("invalid price")

// Validate exige producto y ambos precios mayores a cero.
func Validate(producto ProductoLista) map[string]string {
	violations := map[string]string{}
	if strings.TrimSpace(string(producto.ProductoBaseID)) == "" {
		violations[FieldProducto] = "Producto es obligatorio"
	}
	if !producto.PrecioNeto.IsPositive() {
		violations[FieldPrecioNeto] = "Precio neto debe ser mayor a 0"
	}
	if !producto.PrecioVenta.IsPositive() {
		violations[FieldPrecioVenta] = "Precio venta debe ser mayor a 0"
	}
	return violations
}

// Editor es el modal de productos de una lista, con un combobox sobre el catálogo.
type Editor struct {
	modal   *modal.Modal[ProductoLista]
	combo   *combobox.Combobox[catalog.ProductoBase]
	manager *sublist.Manager[ProductoLista]
}

func NewEditor(manager *sublist.Manager[ProductoLista], base []catalog.ProductoBase, onClose func()) *Editor {
	editor := &Editor{
		modal:   modal.New(Validate, nil, onClose),
		manager: manager,
	}
	editor.combo = combobox.New(base, displayName, editor.choose)
	return editor
}

func displayName(producto catalog.ProductoBase) string {
	return producto.Nombre
}

// choose copia del producto base los datos derivados.
func (editor *Editor) choose(base catalog.ProductoBase) {
	_ = editor.modal.Update(func(producto *ProductoLista) {
		producto.ProductoBaseID = base.ID
		producto.Nombre = base.Nombre
		producto.UnidadesPorCaja = base.UnidadesPorCaja
	})
}

func (editor *Editor) OpenNew() {
	editor.modal.Open(nil, false)
	editor.combo.SetQuery("")
	editor.combo.ClickOutside()
}

func (editor *Editor) OpenEdit(key sublist.Key) error {
	for _, item := range editor.manager.Items() {
		if item.Key() == key {
			editor.modal.Open(&item, true)
			editor.combo.SetQuery(item.Nombre)
			editor.combo.ClickOutside()
			return nil
		}
	}
	return fmt.Errorf("%w: %s", sublist.ErrNotFound, key)
}

func (editor *Editor) IsOpen() bool { return editor.modal.IsOpen() }

func (editor *Editor) Draft() ProductoLista { return editor.modal.Draft() }

func (editor *Editor) Errors() map[string]string { return editor.modal.Errors() }

// Combobox expone el combobox para que la pantalla lo dibuje.
func (editor *Editor) Combobox() *combobox.Combobox[catalog.ProductoBase] {
	return editor.combo
}

// Search escribe en el combobox.
func (editor *Editor) Search(query string) {
	editor.combo.SetQuery(query)
}

// ChooseProduct elige la opción index de las filtradas.
func (editor *Editor) ChooseProduct(index int) (catalog.ProductoBase, bool) {
	return editor.combo.Select(index)
}

// SetPrecioNeto acepta el texto tal como se escribió ("1200", "1200.50").
func (editor *Editor) SetPrecioNeto(raw string) error {
	price, err := ParsePrice(raw)
	if err != nil {
		return err
	}
	return editor.modal.Update(func(producto *ProductoLista) { producto.PrecioNeto = price })
}

func (editor *Editor) SetPrecioVenta(raw string) error {
	price, err := ParsePrice(raw)
	if err != nil {
		return err
	}
	return editor.modal.Update(func(producto *ProductoLista) { producto.PrecioVenta = price })
}

func (editor *Editor) SetDefault(value bool) error {
	return editor.modal.Update(func(producto *ProductoLista) { producto.EsDefault = value })
}

func (editor *Editor) Save(ctx context.Context) (ProductoLista, error) {
	editing := editor.modal.Editing()
	record, err := editor.modal.Confirm()
	if err != nil {
		return ProductoLista{}, err
	}
	if editing {
		return editor.manager.Edit(ctx, record.Key(), record)
	}
	return editor.manager.Add(ctx, record)
}

func (editor *Editor) Cancel() {
	editor.combo.ClickOutside()
	editor.modal.Cancel()
}

// thousands reconoce un entero agrupado con punto de miles: 1.200, 12.500.000.
var thousands = regexp.MustCompile(`^-?\d{1,3}(\.\d{3})+$`)

var plainInteger = regexp.MustCompile(`^-?\d+$`)

// ParsePrice interpreta un precio escrito a mano en formato chileno: punto de
// miles y coma decimal ("1.200,50"). Sin coma, un punto seguido de grupos de
// tres dígitos es de miles ("1.200"); cualquier otro punto es decimal ("7.25").
// Vacío vale cero.
func ParsePrice(raw string) (decimal.Decimal, error) {
	text := strings.TrimSpace(raw)
	if text == "" {
		return decimal.Zero, nil
	}

	normalized := text
	if whole, fraction, ok := strings.Cut(text, ","); ok {
		if fraction == "" || (!plainInteger.MatchString(whole) && !thousands.MatchString(whole)) {
			return decimal.Zero, fmt.Errorf("%w: %q", ErrInvalidPrice, raw)
		}
		normalized = strings.ReplaceAll(whole, ".", "") + "." + fraction
	} else if thousands.MatchString(text) {
		normalized = strings.ReplaceAll(text, ".", "")
	}

	price, err := decimal.NewFromString(normalized)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %q", ErrInvalidPrice, raw)
	}
	return price, nil
}
