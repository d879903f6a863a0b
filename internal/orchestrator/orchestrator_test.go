package orchestrator_test

import (
	"context"
	"fmt"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/valpere/listran/internal/orchestrator"
	"github.com/valpere/listran/internal/translator"
)

// stubService translates by prefixing the text, optionally failing the
// first failN calls.
type stubService struct {
	name  string
	failN int32
	calls int32
}

func (s *stubService) Name() string { return s.name }

func (s *stubService) Translate(ctx context.Context, cfg translator.ServiceConfig, req translator.Request) (*translator.Result, error) {
	n := atomic.AddInt32(&s.calls, 1)
	if n <= atomic.LoadInt32(&s.failN) {
		return nil, fmt.Errorf("simulated failure %d", n)
	}
	return &translator.Result{
		ServiceName:    s.name,
		TranslatedText: s.name + ":" + req.Text,
		Confidence:     1,
	}, nil
}

func requests(texts ...string) []translator.Request {
	reqs := make([]translator.Request, len(texts))
	for i, t := range texts {
		reqs[i] = translator.Request{Text: t, SourceLang: "en", TargetLang: "de"}
	}
	return reqs
}

func TestTranslateAll_PreservesOrder(t *testing.T) {
	svc := &stubService{name: "stub"}
	o := orchestrator.New([]translator.Service{svc}, orchestrator.Config{Workers: 3})

	reqs := requests("a", "b", "c", "d", "e")
	results := o.TranslateAll(context.Background(), translator.ServiceConfig{}, reqs)

	if len(results) != len(reqs) {
		t.Fatalf("got %d results, want %d", len(results), len(reqs))
	}
	for i, r := range results {
		if r.Err != nil {
			t.Fatalf("segment %d failed: %v", i, r.Err)
		}
		want := "stub:" + reqs[i].Text
		if r.Result.TranslatedText != want {
			t.Errorf("segment %d = %q, want %q", i, r.Result.TranslatedText, want)
		}
	}
}

func TestTranslateOne_RetriesSameService(t *testing.T) {
	svc := &stubService{name: "flaky", failN: 2}
	o := orchestrator.New([]translator.Service{svc}, orchestrator.Config{MaxAttempts: 3})

	res, err := o.TranslateOne(context.Background(), translator.ServiceConfig{}, requests("x")[0])
	if err != nil {
		t.Fatalf("expected success after retries: %v", err)
	}
	if !strings.HasPrefix(res.TranslatedText, "flaky:") {
		t.Errorf("unexpected result %q", res.TranslatedText)
	}
	if got := atomic.LoadInt32(&svc.calls); got != 3 {
		t.Errorf("service called %d times, want 3", got)
	}
}

func TestTranslateOne_FallsBackAcrossServices(t *testing.T) {
	broken := &stubService{name: "broken", failN: 1 << 20}
	backup := &stubService{name: "backup"}
	o := orchestrator.New([]translator.Service{broken, backup}, orchestrator.Config{MaxAttempts: 2})

	res, err := o.TranslateOne(context.Background(), translator.ServiceConfig{}, requests("x")[0])
	if err != nil {
		t.Fatalf("expected fallback success: %v", err)
	}
	if res.ServiceName != "backup" {
		t.Errorf("served by %q, want backup", res.ServiceName)
	}
	if got := atomic.LoadInt32(&broken.calls); got != 2 {
		t.Errorf("broken service tried %d times, want 2", got)
	}
}

func TestTranslateOne_AllServicesFail(t *testing.T) {
	broken := &stubService{name: "broken", failN: 1 << 20}
	o := orchestrator.New([]translator.Service{broken}, orchestrator.Config{MaxAttempts: 2})

	_, err := o.TranslateOne(context.Background(), translator.ServiceConfig{}, requests("x")[0])
	if err == nil {
		t.Fatal("expected error when every attempt fails")
	}
	if !strings.Contains(err.Error(), "broken") {
		t.Errorf("error should name the failing service: %v", err)
	}
}

func TestTranslateAll_NoServices(t *testing.T) {
	o := orchestrator.New(nil, orchestrator.Config{})
	results := o.TranslateAll(context.Background(), translator.ServiceConfig{}, requests("x"))
	if results[0].Err == nil {
		t.Error("expected error with no services configured")
	}
}

func TestTranslateAll_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	svc := &stubService{name: "stub"}
	o := orchestrator.New([]translator.Service{svc}, orchestrator.Config{Workers: 1, Timeout: time.Second})

	results := o.TranslateAll(ctx, translator.ServiceConfig{}, requests("a", "b", "c"))
	for i, r := range results {
		if r.Err == nil {
			t.Errorf("segment %d should carry a cancellation error", i)
		}
	}
}
