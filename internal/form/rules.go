package form

import (
	"fmt"
	"strconv"
	"strings"
)

// Rule valida un valor y devuelve el mensaje de error; "" significa válido.
type Rule func(value any) string

// Rules asocia reglas a nombres de campo.
type Rules map[string]Rule

// Required falla si el valor está vacío (nil, string en blanco).
func Required(label string) Rule {
	return func(value any) string {
		if isBlank(value) {
			return fmt.Sprintf("%s es obligatorio", label)
		}
		return ""
	}
}

// PositiveInt exige un entero >= 1. Acepta ints o strings numéricos.
func PositiveInt(label string) Rule {
	return func(value any) string {
		number, ok := asInt(value)
		if !ok || number < 1 {
			return fmt.Sprintf("%s debe ser un entero mayor a 0", label)
		}
		return ""
	}
}

// MaxLength limita el largo de un texto.
func MaxLength(label string, max int) Rule {
	return func(value any) string {
		text, _ := value.(string)
		if len([]rune(text)) > max {
			return fmt.Sprintf("%s no puede superar %d caracteres", label, max)
		}
		return ""
	}
}

// Chain ejecuta reglas en orden y devuelve el primer mensaje.
func Chain(rules ...Rule) Rule {
	return func(value any) string {
		for _, rule := range rules {
			if message := rule(value); message != "" {
				return message
			}
		}
		return ""
	}
}

func isBlank(value any) bool {
	switch typed := value.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(typed) == ""
	default:
		return false
	}
}

func asInt(value any) (int, bool) {
	switch typed := value.(type) {
	case int:
		return typed, true
	case int64:
		return int(typed), true
	case float64:
		if typed != float64(int(typed)) {
			return 0, false
		}
		return int(typed), true
	case string:
		number, err := strconv.Atoi(strings.TrimSpace(typed))
		return number, err == nil
	default:
		return 0, false
	}
}
