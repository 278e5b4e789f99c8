package ports

import (
	"context"
	"errors"

	"github.com/jhoicas/Taller-api/internal/application/dto"
)

// LLMService define el puerto de salida hacia el proveedor de IA.
// Cualquier adaptador (Anthropic, Gemini, mock) debe implementar esta interfaz.
type LLMService interface {
	// SuggestRepairSolutions analiza el modelo del aparato y el problema relatado y
	// devuelve soluciones posibles, piezas necesarias y tiempo estimado.
	// El contexto debe llevar un timeout para evitar bloqueos en llamadas externas.
	SuggestRepairSolutions(
		ctx context.Context,
		phoneModel string,
		problemDescription string,
	) (*dto.RepairDiagnosticsResponse, error)
}

// ErrLLMNotConfigured indica que el proveedor de IA no tiene credenciales.
var ErrLLMNotConfigured = errors.New("proveedor de IA no configurado")
