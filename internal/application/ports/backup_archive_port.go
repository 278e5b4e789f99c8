package ports

import "context"

// BackupArchive guarda archivos de backup fuera del proceso (directorio local, S3).
type BackupArchive interface {
	// Store guarda data bajo name y devuelve la ubicación final (ruta o URI).
	Store(ctx context.Context, name string, data []byte) (string, error)
}
