package ports

import "time"

// Metrics es el puerto de instrumentación de los casos de uso.
// El adaptador Prometheus vive en infrastructure/metrics; NopMetrics sirve para tests.
type Metrics interface {
	// SequenceIssued cuenta números emitidos (ok) o fallidos por secuencia.
	SequenceIssued(sequence string, ok bool)
	// BackupExported registra un export con su duración y total de documentos.
	BackupExported(ok bool, documents int, elapsed time.Duration)
	// RestoreState registra cada transición de la máquina de estados del restore.
	RestoreState(state, collection string)
}

// NopMetrics descarta todas las mediciones.
type NopMetrics struct{}

func (NopMetrics) SequenceIssued(string, bool)            {}
func (NopMetrics) BackupExported(bool, int, time.Duration) {}
func (NopMetrics) RestoreState(string, string)             {}
