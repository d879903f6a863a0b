package translator

import (
	"context"
	"time"
)

// ServiceConfig carries backend credentials and tuning shared by all
// services; each backend reads only the fields it needs.
type ServiceConfig struct {
	Credentials string        `mapstructure:"credentials" json:"credentials"`
	BaseURL     string        `mapstructure:"base_url" json:"base_url"`
	Model       string        `mapstructure:"model" json:"model"`
	Email       string        `mapstructure:"email" json:"email"`
	Timeout     time.Duration `mapstructure:"timeout" json:"timeout"`
}

// Request is one segment of document text to translate. Context carries
// the tail of previously translated text from the same list group so LLM
// backends can keep terminology consistent across items; API backends
// ignore it.
type Request struct {
	Text       string `json:"text"`
	SourceLang string `json:"source_lang"`
	TargetLang string `json:"target_lang"`
	Context    string `json:"context,omitempty"`
}

// Result is a completed translation of one segment.
type Result struct {
	ServiceName    string        `json:"service_name"`
	TranslatedText string        `json:"translated_text"`
	Confidence     float64       `json:"confidence"`
	Latency        time.Duration `json:"latency"`
}

// Service translates one segment at a time. Implementations are
// stateless across requests and safe for concurrent use.
type Service interface {
	Name() string
	Translate(ctx context.Context, cfg ServiceConfig, req Request) (*Result, error)
}
