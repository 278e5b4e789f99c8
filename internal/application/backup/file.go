package backup

import (
	"bytes"
	"time"

	"github.com/jhoicas/Taller-api/internal/domain/document"
)

// FileName arma el nombre del archivo de backup con la fecha local.
func FileName(t time.Time) string {
	return "backup-taller-" + t.Format("2006-01-02_15-04-05") + ".json"
}

// Marshal serializa el bundle en el formato del archivo de backup.
func Marshal(b document.Bundle) ([]byte, error) {
	var buf bytes.Buffer
	if err := document.WriteBundle(&buf, b); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
