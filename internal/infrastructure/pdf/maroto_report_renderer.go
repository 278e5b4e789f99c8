// Package pdf implementa ports.ReportRenderer con Maroto v2.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Título del reporte  │  Fecha de emisión            │
//	│  Subtítulo (establecimiento + período)                       │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: encabezados + una fila por registro                  │
//	│  ─────────────────────────────────────────────────────────  │
//	│  RESUMEN: pares etiqueta / valor                             │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/orientation"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/jhoicas/Taller-api/internal/application/ports"
)

// Verificar en tiempo de compilación que MarotoReportRenderer implementa ReportRenderer.
var _ ports.ReportRenderer = (*MarotoReportRenderer)(nil)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorStripe  = &props.Color{Red: 240, Green: 244, Blue: 248}
)

// gridColumns columnas de la grilla de Maroto.
const gridColumns = 12

// MarotoReportRenderer genera reportes tabulares en PDF.
type MarotoReportRenderer struct {
	now func() time.Time
}

// NewMarotoReportRenderer construye el renderer.
func NewMarotoReportRenderer() *MarotoReportRenderer {
	return &MarotoReportRenderer{now: time.Now}
}

// RenderPDF genera el PDF y devuelve sus bytes. Tablas de más de 6 columnas van en horizontal.
func (g *MarotoReportRenderer) RenderPDF(_ context.Context, table ports.ReportTable) ([]byte, error) {
	if len(table.Headers) == 0 {
		return nil, fmt.Errorf("pdf: reporte sin columnas")
	}
	if len(table.Headers) > gridColumns {
		return nil, fmt.Errorf("pdf: máximo %d columnas, recibidas %d", gridColumns, len(table.Headers))
	}

	orient := orientation.Vertical
	if len(table.Headers) > 6 {
		orient = orientation.Horizontal
	}
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithOrientation(orient).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(table.Title, true).
		Build()

	m := maroto.New(cfg)
	widths := columnWidths(len(table.Headers))

	m.AddRows(headerRow(table, g.now()))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(tableHeaderRow(table.Headers, widths))
	if len(table.Rows) == 0 {
		m.AddRows(row.New(8).Add(col.New(gridColumns).Add(
			text.New("Nenhum registro encontrado para os filtros selecionados.", props.Text{
				Size: 8, Align: align.Center, Top: 2, Color: colorGray,
			}),
		)))
	}
	m.AddRows(tableDetailRows(table.Rows, widths)...)
	if len(table.Summary) > 0 {
		m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
		m.AddRows(summaryRows(table.Summary)...)
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: título y subtítulo (izq) y fecha de emisión (der).
func headerRow(table ports.ReportTable, now time.Time) core.Row {
	return row.New(16).Add(
		col.New(8).Add(
			text.New(table.Title, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New(table.Subtitle, props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(4).Add(
			text.New("Emitido em "+now.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 2, Color: colorGray,
			}),
		),
	)
}

// tableHeaderRow: cabecera de la tabla.
func tableHeaderRow(headers []string, widths []int) core.Row {
	cols := make([]core.Col, 0, len(headers))
	for i, h := range headers {
		cols = append(cols, col.New(widths[i]).Add(text.New(h, props.Text{
			Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		})))
	}
	return row.New(8).Add(cols...)
}

// tableDetailRows: una fila por registro, con fondo alternado.
func tableDetailRows(rows [][]string, widths []int) []core.Row {
	result := make([]core.Row, 0, len(rows))
	for i, cells := range rows {
		cols := make([]core.Col, 0, len(widths))
		for j, w := range widths {
			value := ""
			if j < len(cells) {
				value = cells[j]
			}
			cols = append(cols, col.New(w).Add(text.New(value, props.Text{
				Size: 8, Top: 1, Left: 1, Right: 1,
			})))
		}
		r := row.New(6).Add(cols...)
		if i%2 == 1 {
			r.WithStyle(&props.Cell{BackgroundColor: colorStripe})
		}
		result = append(result, r)
	}
	return result
}

// summaryRows: bloque de totales alineado a la derecha.
func summaryRows(summary [][2]string) []core.Row {
	rows := make([]core.Row, 0, len(summary))
	for _, kv := range summary {
		rows = append(rows, row.New(6).Add(
			col.New(4),
			col.New(5).Add(text.New(kv[0]+":", props.Text{
				Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2, Top: 1,
			})),
			col.New(3).Add(text.New(kv[1], props.Text{
				Size: 9, Align: align.Right, Right: 1, Top: 1,
			})),
		))
	}
	return rows
}

// ── helpers ───────────────────────────────────────────────────────────────────

// columnWidths reparte las 12 columnas de la grilla; las primeras reciben el resto.
func columnWidths(n int) []int {
	base, rem := gridColumns/n, gridColumns%n
	out := make([]int, n)
	for i := range out {
		out[i] = base
		if i < rem {
			out[i]++
		}
	}
	return out
}
