package ai

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Taller-api/pkg/config"
)

const modelAnswer = "```json\n{\"suggested_solutions\":[\" Trocar conector \",\"Limpar contatos\"],\"parts_needed\":[\"Conector USB-C\"],\"estimated_repair_time\":\"1 hora\"}\n```"

func TestExtractJSON(t *testing.T) {
	assert.Equal(t, `{"a":1}`, extractJSON("```json\n{\"a\":1}\n```"))
	assert.Equal(t, `{"a":1}`, extractJSON(`Claro! {"a":1} espero ter ajudado`))
	assert.Equal(t, "", extractJSON("sem json"))
}

func TestParseRepairPayload_SinSoluciones(t *testing.T) {
	_, err := parseRepairPayload(`{"suggested_solutions":[],"parts_needed":[]}`)
	assert.Error(t, err)
}

// ──────────────────────────────────────────────────────────────────────────────
// Anthropic
// ──────────────────────────────────────────────────────────────────────────────

func TestAnthropic_SuggestRepairSolutions(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "key-123", r.Header.Get("x-api-key"))
		assert.Equal(t, anthropicVersion, r.Header.Get("anthropic-version"))

		var req anthropicRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "claude-test", req.Model)
		if assert.Len(t, req.Messages, 1) {
			assert.Contains(t, req.Messages[0].Content, "Galaxy S21")
		}

		_ = json.NewEncoder(w).Encode(map[string]any{
			"content": []map[string]string{{"type": "text", "text": modelAnswer}},
		})
	}))
	defer srv.Close()

	s := NewAnthropicService("key-123", "claude-test", nil)
	s.url = srv.URL
	res, err := s.SuggestRepairSolutions(context.Background(), "Galaxy S21", "não carrega")
	require.NoError(t, err)
	assert.Equal(t, []string{"Trocar conector", "Limpar contatos"}, res.SuggestedSolutions)
	assert.Equal(t, []string{"Conector USB-C"}, res.PartsNeeded)
	assert.Equal(t, "1 hora", res.EstimatedRepairTime)
}

func TestAnthropic_ReintentaYReportaErrorDeLaAPI(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = io.WriteString(w, `{"error":{"type":"overloaded_error","message":"Overloaded"}}`)
	}))
	defer srv.Close()

	s := NewAnthropicService("k", "m", nil)
	s.url = srv.URL
	s.httpClient.RetryWaitMin = 0
	s.httpClient.RetryWaitMax = 0
	_, err := s.SuggestRepairSolutions(context.Background(), "iPhone", "tela")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "overloaded_error")
	assert.Equal(t, int32(3), calls.Load())
}

func TestAnthropic_SinAPIKey(t *testing.T) {
	_, err := NewAnthropicService("", "m", nil).SuggestRepairSolutions(context.Background(), "x", "y")
	assert.ErrorContains(t, err, "ANTHROPIC_API_KEY")
}

// ──────────────────────────────────────────────────────────────────────────────
// Gemini
// ──────────────────────────────────────────────────────────────────────────────

func TestGemini_SuggestRepairSolutions(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.True(t, strings.HasSuffix(r.URL.Path, "/gemini-test:generateContent"), r.URL.Path)
		assert.Equal(t, "g-key", r.URL.Query().Get("key"))
		_ = json.NewEncoder(w).Encode(map[string]any{
			"candidates": []map[string]any{{
				"content": map[string]any{"parts": []map[string]string{{"text": modelAnswer}}},
			}},
		})
	}))
	defer srv.Close()

	s := NewGeminiService("g-key", "gemini-test", nil)
	s.baseURL = srv.URL
	res, err := s.SuggestRepairSolutions(context.Background(), "Moto G8", "não liga")
	require.NoError(t, err)
	assert.Len(t, res.SuggestedSolutions, 2)
}

func TestNew_SeleccionaProveedor(t *testing.T) {
	svc, err := New(config.AIConfig{Provider: ProviderGemini}, nil)
	require.NoError(t, err)
	assert.IsType(t, &GeminiService{}, svc)

	svc, err = New(config.AIConfig{}, nil)
	require.NoError(t, err)
	assert.IsType(t, &AnthropicService{}, svc)

	_, err = New(config.AIConfig{Provider: "openai"}, nil)
	assert.Error(t, err)
}
