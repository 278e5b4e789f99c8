package pdf

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Taller-api/internal/application/ports"
)

func TestColumnWidths_SumanDoce(t *testing.T) {
	for n := 1; n <= gridColumns; n++ {
		sum := 0
		for _, w := range columnWidths(n) {
			assert.GreaterOrEqual(t, w, 1)
			sum += w
		}
		assert.Equal(t, gridColumns, sum, "n=%d", n)
	}
	assert.Equal(t, []int{3, 3, 2, 2, 2}, columnWidths(5))
}

func TestRenderPDF_GeneraDocumento(t *testing.T) {
	r := NewMarotoReportRenderer()
	out, err := r.RenderPDF(context.Background(), ports.ReportTable{
		Title:    "Relatório de Vendas",
		Subtitle: "Cell Fix · 01/06/2024 a 30/06/2024",
		Headers:  []string{"Nº Venda", "Data", "Cliente", "Pagamento", "Status", "Valor"},
		Rows: [][]string{
			{"#150", "2024-06-03", "Ana", "Pix", "Concluída", "100.00"},
			{"#151", "2024-06-04", "", "Dinheiro", "Concluída", "50.00"},
		},
		Summary: [][2]string{{"Total de vendas", "150.00"}},
	})
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}

func TestRenderPDF_SinColumnas(t *testing.T) {
	_, err := NewMarotoReportRenderer().RenderPDF(context.Background(), ports.ReportTable{Title: "x"})
	assert.Error(t, err)
}
