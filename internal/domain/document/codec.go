package document

import (
	"encoding/json"
	"fmt"
	"reflect"
	"time"
)

const (
	// DatatypeKey es el discriminador de los valores etiquetados en el formato de backup.
	DatatypeKey       = "__datatype__"
	DatatypeTimestamp = "timestamp"

	// isoLayout reproduce Date.toISOString(): UTC, milisegundos siempre con tres dígitos.
	isoLayout = "2006-01-02T15:04:05.000Z07:00"
)

// TaggedTimestamp es la forma serializada de un timestamp:
// {"__datatype__": "timestamp", "value": "<ISO-8601>"}.
type TaggedTimestamp struct {
	Datatype string `json:"__datatype__"`
	Value    string `json:"value"`
}

// NewTaggedTimestamp etiqueta t con precisión de milisegundos en UTC.
func NewTaggedTimestamp(t time.Time) TaggedTimestamp {
	return TaggedTimestamp{Datatype: DatatypeTimestamp, Value: FormatTimestamp(t)}
}

// FormatTimestamp formatea t como ISO-8601 UTC con milisegundos.
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(isoLayout)
}

// ParseTimestamp interpreta un ISO-8601 y lo devuelve en UTC.
func ParseTimestamp(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("timestamp inválido %q: %w", s, err)
	}
	return t.UTC(), nil
}

// Encode recorre el árbol de valores y reemplaza cada time.Time por su forma etiquetada.
// Arrays y objetos se recorren recursivamente, también los de tipo concreto (que salen
// como []any y map[string]any); el resto de escalares pasa sin cambios.
// Nunca modifica v.
func Encode(v any) any {
	switch t := v.(type) {
	case nil:
		return nil
	case time.Time:
		return NewTaggedTimestamp(t)
	case *time.Time:
		if t == nil {
			return nil
		}
		return NewTaggedTimestamp(*t)
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			out[k] = Encode(val)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, val := range t {
			out[i] = Encode(val)
		}
		return out
	case []map[string]any:
		out := make([]any, len(t))
		for i, val := range t {
			out[i] = Encode(val)
		}
		return out
	case []string:
		out := make([]any, len(t))
		for i, val := range t {
			out[i] = val
		}
		return out
	case []byte, json.Number:
		return v
	default:
		return encodeReflect(v)
	}
}

// encodeReflect normaliza contenedores tipados ([]time.Time, []int64, map[string]string…)
// a []any y map[string]any para que sus timestamps también queden etiquetados.
func encodeReflect(v any) any {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		if rv.Kind() == reflect.Slice && rv.IsNil() {
			return nil
		}
		out := make([]any, rv.Len())
		for i := range out {
			out[i] = Encode(rv.Index(i).Interface())
		}
		return out
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			return v
		}
		if rv.IsNil() {
			return nil
		}
		out := make(map[string]any, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			out[iter.Key().String()] = Encode(iter.Value().Interface())
		}
		return out
	default:
		return v
	}
}

// EncodeDocument es Encode tipado para el cuerpo completo de un documento.
func EncodeDocument(doc Document) Document {
	if doc == nil {
		return nil
	}
	return Encode(doc).(map[string]any)
}

// DecodeOptions controla la deserialización.
type DecodeOptions struct {
	// DropFields se eliminan de todos los objetos, a cualquier nivel (campos legados).
	DropFields []string
}

// Decode revierte Encode: los valores etiquetados vuelven a time.Time, los campos de
// DropFields se descartan y los json.Number se normalizan (enteros → int64, resto → float64).
func Decode(v any, opts DecodeOptions) (any, error) {
	drop := make(map[string]struct{}, len(opts.DropFields))
	for _, f := range opts.DropFields {
		drop[f] = struct{}{}
	}
	return decodeValue(v, drop)
}

// DecodeDocument es Decode tipado para el cuerpo completo de un documento.
func DecodeDocument(doc Document, opts DecodeOptions) (Document, error) {
	if doc == nil {
		return nil, nil
	}
	out, err := Decode(doc, opts)
	if err != nil {
		return nil, err
	}
	m, ok := out.(map[string]any)
	if !ok {
		// un objeto etiquetado en la raíz no es un documento
		return nil, fmt.Errorf("el cuerpo del documento no es un objeto")
	}
	return m, nil
}

func decodeValue(v any, drop map[string]struct{}) (any, error) {
	switch t := v.(type) {
	case nil:
		return nil, nil
	case TaggedTimestamp:
		return ParseTimestamp(t.Value)
	case json.Number:
		return normalizeNumber(t), nil
	case []any:
		out := make([]any, len(t))
		for i, val := range t {
			d, err := decodeValue(val, drop)
			if err != nil {
				return nil, err
			}
			out[i] = d
		}
		return out, nil
	case map[string]any:
		if dt, ok := t[DatatypeKey]; ok && dt == DatatypeTimestamp {
			s, ok := t["value"].(string)
			if !ok {
				return nil, fmt.Errorf("timestamp etiquetado sin value string")
			}
			return ParseTimestamp(s)
		}
		out := make(map[string]any, len(t))
		for k, val := range t {
			if _, skip := drop[k]; skip {
				continue
			}
			d, err := decodeValue(val, drop)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", k, err)
			}
			out[k] = d
		}
		return out, nil
	default:
		return v, nil
	}
}

func normalizeNumber(n json.Number) any {
	if i, err := n.Int64(); err == nil {
		return i
	}
	if f, err := n.Float64(); err == nil {
		return f
	}
	return n.String()
}
