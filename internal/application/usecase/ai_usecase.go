package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/Taller-api/internal/application/dto"
	"github.com/jhoicas/Taller-api/internal/application/ports"
	"github.com/jhoicas/Taller-api/internal/domain"
)

// DefaultAITimeout límite de cada llamada al LLM.
const DefaultAITimeout = 20 * time.Second

// AIUseCase orquesta el diagnóstico de reparaciones asistido por IA.
type AIUseCase struct {
	llm     ports.LLMService
	timeout time.Duration
}

// NewAIUseCase construye el caso de uso; timeout <= 0 usa DefaultAITimeout.
func NewAIUseCase(llm ports.LLMService, timeout time.Duration) *AIUseCase {
	if timeout <= 0 {
		timeout = DefaultAITimeout
	}
	return &AIUseCase{llm: llm, timeout: timeout}
}

// SuggestRepairSolutions valida la entrada y delega al servicio de LLM con timeout.
func (uc *AIUseCase) SuggestRepairSolutions(
	ctx context.Context,
	req dto.RepairDiagnosticsRequest,
) (*dto.RepairDiagnosticsResponse, error) {
	model := strings.TrimSpace(req.PhoneModel)
	problem := strings.TrimSpace(req.ProblemDescription)
	if model == "" || problem == "" {
		return nil, fmt.Errorf("%w: phone_model y problem_description son obligatorios", domain.ErrInvalidInput)
	}

	ctx, cancel := context.WithTimeout(ctx, uc.timeout)
	defer cancel()

	result, err := uc.llm.SuggestRepairSolutions(ctx, model, problem)
	if err != nil {
		return nil, fmt.Errorf("diagnóstico IA: %w", err)
	}
	if result.SuggestedSolutions == nil {
		result.SuggestedSolutions = []string{}
	}
	if result.PartsNeeded == nil {
		result.PartsNeeded = []string{}
	}
	return result, nil
}
