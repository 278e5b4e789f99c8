package ports

import "context"

// ReportTable es un reporte tabular listo para renderizar.
type ReportTable struct {
	Title    string
	Subtitle string
	Headers  []string
	Rows     [][]string
	// Summary pares etiqueta/valor impresos al pie (totales).
	Summary [][2]string
}

// ReportRenderer genera el PDF de un reporte tabular.
type ReportRenderer interface {
	RenderPDF(ctx context.Context, table ReportTable) ([]byte, error)
}
