package form

// Kind es el tipo de control de un campo. Es explícito en el descriptor:
// ningún comportamiento depende del nombre del campo.
type Kind string

const (
	KindText   Kind = "text"
	KindNumber Kind = "number"
	KindSelect Kind = "select"
)

// Choice es una opción de un campo select.
type Choice struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// Field describe un campo editable.
type Field struct {
	Name     string
	Label    string
	Kind     Kind
	Choices  []Choice
	ReadOnly bool
}

// Descriptor describe la entidad a editar: campos en orden de render y valores iniciales.
// Se trata como inmutable; cuando el registro se recarga se reemplaza entero.
type Descriptor struct {
	Fields []Field
	Data   map[string]any
}

// Field busca un campo por nombre.
func (descriptor Descriptor) Field(name string) (Field, bool) {
	for _, field := range descriptor.Fields {
		if field.Name == name {
			return field, true
		}
	}
	return Field{}, false
}

// FromLabels arma un descriptor al estilo "data + labels + selectOptions + readOnly".
// Los campos con opciones son select; los listados en numeric son number; el resto texto.
// El orden sigue a order; los campos de labels que no estén en order se ignoran.
func FromLabels(order []string, data map[string]any, labels map[string]string, selectOptions map[string][]Choice, numeric, readOnly []string) Descriptor {
	numericSet := toSet(numeric)
	readOnlySet := toSet(readOnly)

	fields := make([]Field, 0, len(order))
	for _, name := range order {
		field := Field{Name: name, Label: labels[name], Kind: KindText, ReadOnly: readOnlySet[name]}
		if field.Label == "" {
			field.Label = name
		}
		if choices, ok := selectOptions[name]; ok {
			field.Kind = KindSelect
			field.Choices = choices
		} else if numericSet[name] {
			field.Kind = KindNumber
		}
		fields = append(fields, field)
	}
	return Descriptor{Fields: fields, Data: data}
}

func toSet(values []string) map[string]bool {
	set := make(map[string]bool, len(values))
	for _, value := range values {
		set[value] = true
	}
	return set
}
