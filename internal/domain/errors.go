package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrConflict           = errors.New("conflicto con el estado actual")

	// Núcleo: contador secuencial y backup/restore.
	ErrSequenceUnavailable = errors.New("no fue posible generar el número secuencial")
	ErrBackupFailed        = errors.New("falla al generar el backup")
	ErrInvalidBackupFormat = errors.New("el archivo de backup está vacío o tiene un formato inválido")
	ErrRestoreFailed       = errors.New("falla al restaurar el backup")
)

// Fases del restore reportadas en RestoreError.
const (
	RestorePhaseDelete = "delete"
	RestorePhaseWrite  = "write"
)

// SequenceError indica que la transacción del contador no pudo confirmarse.
// errors.Is(err, ErrSequenceUnavailable) es true.
type SequenceError struct {
	Sequence string
	Err      error
}

func (e *SequenceError) Error() string {
	return fmt.Sprintf("secuencia %q: %v: %v", e.Sequence, ErrSequenceUnavailable, e.Err)
}

func (e *SequenceError) Unwrap() []error { return []error{ErrSequenceUnavailable, e.Err} }

// BackupError indica la colección cuya lectura falló durante el export.
type BackupError struct {
	Collection string
	Err        error
}

func (e *BackupError) Error() string {
	return fmt.Sprintf("backup de la colección %s: %v: %v", e.Collection, ErrBackupFailed, e.Err)
}

func (e *BackupError) Unwrap() []error { return []error{ErrBackupFailed, e.Err} }

// RestoreError indica la colección y la fase (delete|write) en que se abortó el restore.
// Los batches ya confirmados no se revierten.
type RestoreError struct {
	Collection string
	Phase      string
	Err        error
}

func (e *RestoreError) Error() string {
	return fmt.Sprintf("restore de la colección %s (fase %s): %v: %v", e.Collection, e.Phase, ErrRestoreFailed, e.Err)
}

func (e *RestoreError) Unwrap() []error { return []error{ErrRestoreFailed, e.Err} }
