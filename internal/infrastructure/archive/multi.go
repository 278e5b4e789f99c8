package archive

import (
	"context"
	"errors"

	"github.com/jhoicas/Taller-api/internal/application/ports"
)

var _ ports.BackupArchive = Multi(nil)

// Multi guarda en todos los destinos. Devuelve las ubicaciones logradas separadas
// por coma y el conjunto de errores.
type Multi []ports.BackupArchive

// Store intenta cada destino aunque alguno falle.
func (m Multi) Store(ctx context.Context, name string, data []byte) (string, error) {
	var (
		locations string
		errs      []error
	)
	for _, a := range m {
		loc, err := a.Store(ctx, name, data)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if locations != "" {
			locations += ","
		}
		locations += loc
	}
	return locations, errors.Join(errs...)
}
