// Package ai implementa ports.LLMService sobre las APIs de Anthropic y Gemini.
package ai

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/hashicorp/go-retryablehttp"

	"github.com/jhoicas/Taller-api/internal/application/dto"
	"github.com/jhoicas/Taller-api/internal/application/ports"
	"github.com/jhoicas/Taller-api/pkg/config"
	"github.com/jhoicas/Taller-api/pkg/logger"
)

// Proveedores soportados en AI_PROVIDER.
const (
	ProviderAnthropic = "anthropic"
	ProviderGemini    = "gemini"
)

// repairSystemPrompt define el rol del modelo y el formato de salida.
const repairSystemPrompt = `Você é um técnico sênior de assistência técnica de celulares, notebooks e tablets.
Dado o modelo do aparelho e o problema relatado pelo cliente, devolva SOMENTE um objeto JSON
(sem markdown, sem texto adicional) com esta estrutura exata:
{
  "suggested_solutions": ["<passo de diagnóstico ou reparo>", "..."],
  "parts_needed": ["<peça provável>", "..."],
  "estimated_repair_time": "<tempo estimado, ex.: 1 a 2 horas>"
}

Regras:
- suggested_solutions: de 2 a 6 itens, do mais provável ao menos provável.
- parts_needed: lista vazia se nenhuma peça for necessária.
- Responda em português do Brasil.`

// maxResponseBytes límite de lectura del cuerpo de respuesta.
const maxResponseBytes = 64 * 1024

// New construye el adaptador indicado en la configuración.
func New(cfg config.AIConfig, log *logger.Logger) (ports.LLMService, error) {
	switch cfg.Provider {
	case ProviderAnthropic, "":
		return NewAnthropicService(cfg.AnthropicAPIKey, cfg.AnthropicModel, log), nil
	case ProviderGemini:
		return NewGeminiService(cfg.GeminiAPIKey, cfg.GeminiModel, log), nil
	default:
		return nil, fmt.Errorf("AI: proveedor desconocido %q", cfg.Provider)
	}
}

// newHTTPClient cliente con reintentos (429 y 5xx) y backoff exponencial.
// Al agotar los reintentos devuelve la última respuesta para poder leer el error de la API.
func newHTTPClient(log *logger.Logger) *retryablehttp.Client {
	c := retryablehttp.NewClient()
	c.RetryMax = 2
	c.RetryWaitMin = 500 * time.Millisecond
	c.RetryWaitMax = 4 * time.Second
	// Timeout de red de 25 s; el use case impone además un context.WithTimeout.
	c.HTTPClient.Timeout = 25 * time.Second
	c.ErrorHandler = func(resp *http.Response, err error, _ int) (*http.Response, error) {
		if resp != nil {
			return resp, nil
		}
		return nil, err
	}
	if log == nil {
		c.Logger = nil
	} else {
		c.Logger = leveledLogger{log: log.Component("ai-http")}
	}
	return c
}

// leveledLogger adapta pkg/logger a retryablehttp.LeveledLogger.
type leveledLogger struct {
	log *logger.Logger
}

func (l leveledLogger) Error(msg string, kv ...interface{}) { l.log.Error().Fields(kv).Msg(msg) }
func (l leveledLogger) Info(msg string, kv ...interface{})  { l.log.Debug().Fields(kv).Msg(msg) }
func (l leveledLogger) Debug(msg string, kv ...interface{}) { l.log.Trace().Fields(kv).Msg(msg) }
func (l leveledLogger) Warn(msg string, kv ...interface{})  { l.log.Warn().Fields(kv).Msg(msg) }

// readBody lee la respuesta con límite.
func readBody(resp *http.Response) ([]byte, error) {
	defer resp.Body.Close()
	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("AI: leer respuesta: %w", err)
	}
	return raw, nil
}

// repairPayload es el JSON que esperamos recibir del modelo.
type repairPayload struct {
	SuggestedSolutions  []string `json:"suggested_solutions"`
	PartsNeeded         []string `json:"parts_needed"`
	EstimatedRepairTime string   `json:"estimated_repair_time"`
}

// parseRepairPayload extrae y valida el JSON del texto devuelto por el modelo.
func parseRepairPayload(rawText string) (*dto.RepairDiagnosticsResponse, error) {
	cleanJSON := extractJSON(rawText)
	if cleanJSON == "" {
		return nil, fmt.Errorf("AI: no se encontró JSON válido en la respuesta del modelo (respuesta: %s)", rawText)
	}
	var p repairPayload
	if err := json.Unmarshal([]byte(cleanJSON), &p); err != nil {
		return nil, fmt.Errorf("AI: parsear JSON de diagnóstico: %w (JSON extraído: %s)", err, cleanJSON)
	}
	if len(p.SuggestedSolutions) == 0 {
		return nil, fmt.Errorf("AI: el modelo no sugirió soluciones")
	}
	return &dto.RepairDiagnosticsResponse{
		SuggestedSolutions:  trimAll(p.SuggestedSolutions),
		PartsNeeded:         trimAll(p.PartsNeeded),
		EstimatedRepairTime: strings.TrimSpace(p.EstimatedRepairTime),
	}, nil
}

func trimAll(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// jsonBlockRe extrae el primer objeto JSON del texto aunque venga envuelto en markdown.
var jsonBlockRe = regexp.MustCompile(`(?s)\{.*\}`)

// extractJSON extrae el primer objeto JSON de un texto libre.
//  1. Elimina bloques de código markdown (```json … ``` o ``` … ```).
//  2. Usa regex para capturar el primer bloque { … }.
func extractJSON(text string) string {
	text = strings.TrimSpace(text)
	if idx := strings.Index(text, "```"); idx != -1 {
		after := text[idx+3:]
		if nl := strings.Index(after, "\n"); nl != -1 {
			after = after[nl+1:]
		}
		if end := strings.LastIndex(after, "```"); end != -1 {
			after = after[:end]
		}
		text = strings.TrimSpace(after)
	}
	if strings.HasPrefix(text, "{") {
		return text
	}
	return strings.TrimSpace(jsonBlockRe.FindString(text))
}
