package document

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sort"

	"github.com/jhoicas/Taller-api/internal/domain"
)

// Collection mapea ID de documento → cuerpo.
type Collection map[string]Document

// Bundle es el backup completo: nombre de colección → documentos.
// Los cuerpos exportados ya tienen los timestamps etiquetados.
type Bundle map[string]Collection

// Names devuelve los nombres de colección ordenados.
func (b Bundle) Names() []string {
	names := make([]string, 0, len(b))
	for name := range b {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Counts devuelve la cantidad de documentos por colección.
func (b Bundle) Counts() map[string]int {
	out := make(map[string]int, len(b))
	for name, docs := range b {
		out[name] = len(docs)
	}
	return out
}

// ParseBundle lee un archivo de backup. Una colección cuyo valor es null o no es un objeto
// queda con Collection nil (se ignora al importar, igual que una colección vacía). Un
// documento cuyo cuerpo no es un objeto JSON invalida el archivo entero.
// Los números se leen como json.Number; Decode los normaliza después.
func ParseBundle(r io.Reader) (Bundle, error) {
	var raw map[string]json.RawMessage
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidBackupFormat, err)
	}
	if raw == nil {
		return nil, domain.ErrInvalidBackupFormat
	}
	b := make(Bundle, len(raw))
	for name, msg := range raw {
		var bodies map[string]json.RawMessage
		if err := json.Unmarshal(msg, &bodies); err != nil || bodies == nil {
			b[name] = nil
			continue
		}
		docs := make(Collection, len(bodies))
		for id, body := range bodies {
			doc, err := parseDocument(body)
			if err != nil {
				return nil, fmt.Errorf("%w: %s/%s: %v", domain.ErrInvalidBackupFormat, name, id, err)
			}
			docs[id] = doc
		}
		b[name] = docs
	}
	return b, nil
}

func parseDocument(body json.RawMessage) (Document, error) {
	var doc Document
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("el cuerpo no es un objeto: %v", err)
	}
	if doc == nil {
		return nil, errors.New("cuerpo null")
	}
	return doc, nil
}

// WriteBundle escribe el backup como JSON indentado con dos espacios.
func WriteBundle(w io.Writer, b Bundle) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(b); err != nil {
		return fmt.Errorf("escribir backup: %w", err)
	}
	return nil
}
