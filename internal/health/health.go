package health

import (
	"context"
	"sync"
	"time"
)

type CheckResult struct {
	Name       string `json:"name"`
	Status     string `json:"status"`
	Error      string `json:"error,omitempty"`
	DurationMS int64  `json:"duration_ms"`
}

// Checker probes one dependency.
type Checker interface {
	Name() string
	Check(ctx context.Context) error
}

// ProbeRunner runs all registered checkers with a per-probe timeout and
// caches the combined verdict briefly so probe storms don't hammer the
// dependencies.
type ProbeRunner struct {
	timeout  time.Duration
	cacheTTL time.Duration

	mu       sync.Mutex
	checkers []Checker
	cachedAt time.Time
	ready    bool
	results  []CheckResult
}

func NewProbeRunner(timeout, cacheTTL time.Duration) *ProbeRunner {
	if timeout <= 0 {
		timeout = time.Second
	}
	return &ProbeRunner{timeout: timeout, cacheTTL: cacheTTL}
}

func (p *ProbeRunner) Register(c Checker) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.checkers = append(p.checkers, c)
}

func (p *ProbeRunner) Ready(ctx context.Context) (bool, []CheckResult) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.results != nil && time.Since(p.cachedAt) < p.cacheTTL {
		return p.ready, p.results
	}

	ready := true
	results := make([]CheckResult, 0, len(p.checkers))
	for _, checker := range p.checkers {
		start := time.Now()
		checkCtx, cancel := context.WithTimeout(ctx, p.timeout)
		err := checker.Check(checkCtx)
		cancel()
		result := CheckResult{
			Name:       checker.Name(),
			Status:     "ok",
			DurationMS: time.Since(start).Milliseconds(),
		}
		if err != nil {
			result.Status = "failed"
			result.Error = err.Error()
			ready = false
		}
		results = append(results, result)
	}

	p.cachedAt = time.Now()
	p.ready = ready
	p.results = results
	return ready, results
}
