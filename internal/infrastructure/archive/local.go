// Package archive implementa ports.BackupArchive en disco local y en S3.
package archive

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/jhoicas/Taller-api/internal/application/ports"
)

var _ ports.BackupArchive = (*LocalArchive)(nil)

// LocalArchive guarda los backups en un directorio.
type LocalArchive struct {
	dir string
}

// NewLocalArchive construye el archivo local; el directorio se crea al primer Store.
func NewLocalArchive(dir string) *LocalArchive {
	return &LocalArchive{dir: dir}
}

// Store escribe el archivo de forma atómica (temporal + rename) y devuelve su ruta.
func (a *LocalArchive) Store(ctx context.Context, name string, data []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if name == "" || strings.ContainsAny(name, `/\`) {
		return "", fmt.Errorf("archive: nombre inválido %q", name)
	}
	if err := os.MkdirAll(a.dir, 0o750); err != nil {
		return "", fmt.Errorf("archive: crear directorio: %w", err)
	}
	tmp, err := os.CreateTemp(a.dir, "."+name+".*")
	if err != nil {
		return "", fmt.Errorf("archive: crear temporal: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return "", fmt.Errorf("archive: escribir: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("archive: cerrar: %w", err)
	}
	final := filepath.Join(a.dir, name)
	if err := os.Rename(tmp.Name(), final); err != nil {
		return "", fmt.Errorf("archive: renombrar: %w", err)
	}
	return final, nil
}
