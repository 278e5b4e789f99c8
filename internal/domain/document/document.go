// Package document define el modelo de documentos del almacén (colección → id → cuerpo)
// y el códec que etiqueta los timestamps para que sobrevivan un viaje por JSON.
package document

import (
	"encoding/json"
	"math"
	"time"
)

// Document es el cuerpo de un documento: árbol clave-valor con hojas escalares,
// time.Time, []any y map[string]any anidados. Encode acepta también slices y mapas
// tipados, pero Decode siempre devuelve []any y map[string]any.
type Document = map[string]any

// Snapshot es un documento leído junto con su ID.
type Snapshot struct {
	ID   string
	Data Document
}

// String devuelve el valor string del campo o "" si no existe o tiene otro tipo.
func String(doc Document, key string) string {
	s, _ := doc[key].(string)
	return s
}

// StringPtr devuelve nil cuando el campo falta, es null o está vacío.
func StringPtr(doc Document, key string) *string {
	s, ok := doc[key].(string)
	if !ok || s == "" {
		return nil
	}
	return &s
}

// Bool devuelve el valor booleano del campo.
func Bool(doc Document, key string) bool {
	b, _ := doc[key].(bool)
	return b
}

// Float devuelve el campo numérico como float64, aceptando cualquier representación numérica.
func Float(doc Document, key string) float64 {
	f, _ := AsFloat(doc[key])
	return f
}

// Int devuelve el campo numérico como int64.
func Int(doc Document, key string) int64 {
	n, _ := AsInt(doc[key])
	return n
}

// Time devuelve el campo timestamp o el tiempo cero.
func Time(doc Document, key string) time.Time {
	t, _ := doc[key].(time.Time)
	return t
}

// TimePtr devuelve nil si el campo no es un timestamp.
func TimePtr(doc Document, key string) *time.Time {
	t, ok := doc[key].(time.Time)
	if !ok {
		return nil
	}
	return &t
}

// Slice devuelve el campo como []any.
func Slice(doc Document, key string) []any {
	s, _ := doc[key].([]any)
	return s
}

// AsFloat convierte un valor numérico de documento a float64.
func AsFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	}
	return 0, false
}

// AsInt convierte un valor numérico de documento a int64. Los float sin parte decimal se aceptan.
func AsInt(v any) (int64, bool) {
	switch n := v.(type) {
	case int64:
		return n, true
	case int:
		return int64(n), true
	case int32:
		return int64(n), true
	case float64:
		if n != math.Trunc(n) {
			return 0, false
		}
		return int64(n), true
	case json.Number:
		if i, err := n.Int64(); err == nil {
			return i, true
		}
		f, err := n.Float64()
		if err != nil || f != math.Trunc(f) {
			return 0, false
		}
		return int64(f), true
	}
	return 0, false
}

// Clone copia en profundidad un documento para que el llamador no comparta mapas ni slices.
func Clone(doc Document) Document {
	if doc == nil {
		return nil
	}
	return cloneValue(doc).(map[string]any)
}

func cloneValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			out[k] = cloneValue(val)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, val := range t {
			out[i] = cloneValue(val)
		}
		return out
	default:
		return v
	}
}
