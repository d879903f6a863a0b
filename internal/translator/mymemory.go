package translator

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/valpere/listran/internal/chunker"
)

// MyMemoryMaxChars is the longest request text MyMemory accepts per
// call. Longer segments are split at sentence boundaries and the
// translated pieces rejoined.
const MyMemoryMaxChars = 500

const myMemoryDefaultURL = "https://api.mymemory.translated.net"

// MyMemoryService translates through the free MyMemory REST API. An
// email address raises the daily quota.
type MyMemoryService struct {
	baseURL string
	client  *http.Client
}

func NewMyMemoryService() *MyMemoryService {
	return &MyMemoryService{
		baseURL: myMemoryDefaultURL,
		client:  &http.Client{Timeout: 30 * time.Second},
	}
}

func (s *MyMemoryService) Name() string {
	return "mymemory"
}

func (s *MyMemoryService) Translate(ctx context.Context, cfg ServiceConfig, req Request) (*Result, error) {
	start := time.Now()

	baseURL := s.baseURL
	if cfg.BaseURL != "" {
		baseURL = cfg.BaseURL
	}

	sourceLang := req.SourceLang
	if sourceLang == "" || sourceLang == "auto" {
		sourceLang = "en"
	}
	langPair := fmt.Sprintf("%s|%s", sourceLang, req.TargetLang)

	var parts []string
	minConfidence := 1.0
	for _, piece := range chunker.Split(req.Text, MyMemoryMaxChars) {
		text, confidence, err := s.translateOne(ctx, baseURL, piece, langPair, cfg.Email)
		if err != nil {
			return nil, err
		}
		parts = append(parts, text)
		if confidence < minConfidence {
			minConfidence = confidence
		}
	}

	return &Result{
		ServiceName:    s.Name(),
		TranslatedText: strings.Join(parts, " "),
		Confidence:     minConfidence,
		Latency:        time.Since(start),
	}, nil
}

func (s *MyMemoryService) translateOne(ctx context.Context, baseURL, text, langPair, email string) (string, float64, error) {
	apiURL := fmt.Sprintf("%s/get?q=%s&langpair=%s",
		baseURL, url.QueryEscape(text), url.QueryEscape(langPair))
	if email != "" {
		apiURL += "&de=" + url.QueryEscape(email)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, apiURL, nil)
	if err != nil {
		return "", 0, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := s.client.Do(httpReq)
	if err != nil {
		return "", 0, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	var body struct {
		ResponseData struct {
			TranslatedText string  `json:"translatedText"`
			Match          float64 `json:"match"`
		} `json:"responseData"`
		ResponseStatus  int    `json:"responseStatus"`
		ResponseDetails string `json:"responseDetails"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", 0, fmt.Errorf("failed to decode response: %w", err)
	}
	if body.ResponseStatus != 200 {
		return "", 0, fmt.Errorf("API error: %s (%d)", body.ResponseDetails, body.ResponseStatus)
	}

	confidence := body.ResponseData.Match
	if confidence < 0 {
		confidence = 0
	}
	if confidence > 1 {
		confidence = 1
	}
	return body.ResponseData.TranslatedText, confidence, nil
}
