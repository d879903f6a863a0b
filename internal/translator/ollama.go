package translator

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/valpere/listran/internal/placeholder"
	"github.com/valpere/listran/internal/postprocess"
)

const (
	ollamaDefaultURL   = "http://localhost:11434"
	ollamaDefaultModel = "llama3.2"
)

// OllamaService translates through a self-hosted Ollama instance. Unlike
// the API backends it honors Request.Context, feeding the tail of the
// already-translated list group into the prompt so item wording stays
// consistent.
type OllamaService struct {
	client *http.Client
}

func NewOllamaService() *OllamaService {
	return &OllamaService{
		client: &http.Client{Timeout: 120 * time.Second},
	}
}

func (s *OllamaService) Name() string {
	return "ollama"
}

func (s *OllamaService) Translate(ctx context.Context, cfg ServiceConfig, req Request) (*Result, error) {
	start := time.Now()

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = ollamaDefaultURL
	}
	model := cfg.Model
	if model == "" {
		model = ollamaDefaultModel
	}

	payload := map[string]any{
		"model":  model,
		"prompt": buildPrompt(req),
		"stream": false,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to encode request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost,
		baseURL+"/api/generate", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("ollama returned status %d", resp.StatusCode)
	}

	var ollamaResp struct {
		Response string `json:"response"`
		Done     bool   `json:"done"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&ollamaResp); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	text := postprocess.Clean(ollamaResp.Response)
	if text == "" {
		return nil, fmt.Errorf("empty translation from model %s", model)
	}

	return &Result{
		ServiceName:    s.Name(),
		TranslatedText: text,
		Confidence:     0.8,
		Latency:        time.Since(start),
	}, nil
}

func buildPrompt(req Request) string {
	var b bytes.Buffer
	fmt.Fprintf(&b, "Translate the following text from %s to %s.\n",
		langOrAuto(req.SourceLang), req.TargetLang)
	b.WriteString("Output only the translation, with no explanations or quotes. ")
	b.WriteString(placeholder.InstructionHint())
	b.WriteString("\n")
	if req.Context != "" {
		fmt.Fprintf(&b, "\nPreceding items of the same list, already translated:\n%s\n", req.Context)
	}
	fmt.Fprintf(&b, "\nText:\n%s", req.Text)
	return b.String()
}

func langOrAuto(lang string) string {
	if lang == "" || lang == "auto" {
		return "the source language"
	}
	return lang
}
