// Package orchestrator runs segment translations concurrently over a
// bounded worker pool. A document yields one request per line; workers
// translate independent segments in parallel, each with a per-attempt
// timeout, retries, and fallback across the configured services, and
// results come back in input order.
package orchestrator

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/valpere/listran/internal/translator"
)

type Config struct {
	// Timeout bounds a single translation attempt.
	Timeout time.Duration
	// Workers is the number of segments translated concurrently.
	Workers int
	// MaxAttempts is the total tries per service including the first
	// (1 = no retries).
	MaxAttempts int
}

// SegmentResult pairs one request with its outcome. Err is non-nil only
// when every service exhausted its attempts.
type SegmentResult struct {
	Request translator.Request
	Result  *translator.Result
	Err     error
}

type Orchestrator struct {
	services []translator.Service
	cfg      Config
}

func New(services []translator.Service, cfg Config) *Orchestrator {
	if cfg.Workers < 1 {
		cfg.Workers = 4
	}
	if cfg.MaxAttempts < 1 {
		cfg.MaxAttempts = 1
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	return &Orchestrator{services: services, cfg: cfg}
}

// TranslateAll translates every request and returns results in request
// order. Individual failures do not abort the batch; callers inspect
// SegmentResult.Err per segment. Cancelling ctx stops workers from
// picking up further segments.
func (o *Orchestrator) TranslateAll(ctx context.Context, svcCfg translator.ServiceConfig, reqs []translator.Request) []SegmentResult {
	results := make([]SegmentResult, len(reqs))
	indexes := make(chan int)

	var wg sync.WaitGroup
	for w := 0; w < o.cfg.Workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range indexes {
				res, err := o.translateOne(ctx, svcCfg, reqs[i])
				results[i] = SegmentResult{Request: reqs[i], Result: res, Err: err}
			}
		}()
	}

	for i := range reqs {
		select {
		case indexes <- i:
		case <-ctx.Done():
			for j := i; j < len(reqs); j++ {
				results[j] = SegmentResult{Request: reqs[j], Err: ctx.Err()}
			}
			close(indexes)
			wg.Wait()
			return results
		}
	}
	close(indexes)
	wg.Wait()

	return results
}

// TranslateOne is the single-segment path used for sequential passes
// (list groups that carry context between items translate in order).
func (o *Orchestrator) TranslateOne(ctx context.Context, svcCfg translator.ServiceConfig, req translator.Request) (*translator.Result, error) {
	return o.translateOne(ctx, svcCfg, req)
}

func (o *Orchestrator) translateOne(ctx context.Context, svcCfg translator.ServiceConfig, req translator.Request) (*translator.Result, error) {
	var lastErr error
	for _, svc := range o.services {
		for attempt := 1; attempt <= o.cfg.MaxAttempts; attempt++ {
			if err := ctx.Err(); err != nil {
				return nil, err
			}

			attemptCtx, cancel := context.WithTimeout(ctx, o.cfg.Timeout)
			res, err := svc.Translate(attemptCtx, svcCfg, req)
			cancel()

			if err == nil {
				return res, nil
			}
			lastErr = fmt.Errorf("%s attempt %d: %w", svc.Name(), attempt, err)
		}
	}
	if lastErr == nil {
		lastErr = fmt.Errorf("no translation services configured")
	}
	return nil, lastErr
}
