package health

import (
	"context"
	"errors"
	"testing"
	"time"
)

type fakeChecker struct {
	name  string
	err   error
	calls int
}

func (f *fakeChecker) Name() string { return f.name }

func (f *fakeChecker) Check(context.Context) error {
	f.calls++
	return f.err
}

func TestProbeRunnerAggregatesResults(t *testing.T) {
	runner := NewProbeRunner(time.Second, 0)
	runner.Register(&fakeChecker{name: "database"})
	runner.Register(&fakeChecker{name: "redis", err: errors.New("connection refused")})

	ready, results := runner.Ready(context.Background())
	if ready {
		t.Fatal("a failing checker must make the runner unready")
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	if results[0].Status != "ok" || results[1].Status != "failed" {
		t.Fatalf("unexpected statuses: %+v", results)
	}
	if results[1].Error == "" {
		t.Fatal("failed result must carry the error")
	}
}

func TestProbeRunnerCachesVerdict(t *testing.T) {
	checker := &fakeChecker{name: "database"}
	runner := NewProbeRunner(time.Second, time.Minute)
	runner.Register(checker)

	runner.Ready(context.Background())
	runner.Ready(context.Background())
	if checker.calls != 1 {
		t.Fatalf("expected cached verdict, checker ran %d times", checker.calls)
	}
}

func TestProbeRunnerEmptyIsReady(t *testing.T) {
	runner := NewProbeRunner(time.Second, 0)
	ready, results := runner.Ready(context.Background())
	if !ready || len(results) != 0 {
		t.Fatalf("no checkers should mean ready, got %v %v", ready, results)
	}
}
