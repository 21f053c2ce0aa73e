package compare

import (
	"context"
	"runtime"
	"sync"

	"github.com/polisim/polisim/internal/domain"
	"github.com/polisim/polisim/internal/strategy"
)

// Logger receives progress and diagnostic output from the engine.
// Implementations must be safe for concurrent use.
type Logger interface {
	Debugf(format string, args ...interface{})
	Infof(format string, args ...interface{})
	Warnf(format string, args ...interface{})
	Errorf(format string, args ...interface{})
}

type noopLogger struct{}

func (noopLogger) Debugf(string, ...interface{}) {}
func (noopLogger) Infof(string, ...interface{})  {}
func (noopLogger) Warnf(string, ...interface{})  {}
func (noopLogger) Errorf(string, ...interface{}) {}

// Engine drains a strategy catalog through a worker pool and ranks the
// results. Each evaluation is independent, so the pool needs no shared
// mutable state beyond the channels.
type Engine struct {
	evaluator *Evaluator
	logger    Logger
	workers   int
}

// NewEngine creates an engine with a no-op logger and one worker per
// CPU.
func NewEngine(evaluator *Evaluator) *Engine {
	return &Engine{
		evaluator: evaluator,
		logger:    noopLogger{},
		workers:   runtime.NumCPU(),
	}
}

// SetLogger replaces the engine's logger. A nil logger restores the
// no-op default.
func (e *Engine) SetLogger(l Logger) {
	if l == nil {
		l = noopLogger{}
	}
	e.logger = l
}

// SetWorkers overrides the worker count. Values below one are ignored.
func (e *Engine) SetWorkers(n int) {
	if n >= 1 {
		e.workers = n
	}
}

type evaluation struct {
	result domain.StrategyResult
	err    error
}

// Run evaluates every strategy the catalog yields and returns the
// ranked table. Cancelling the context stops the feed; strategies
// already in flight still complete, and Run returns the context error.
func (e *Engine) Run(ctx context.Context, catalog *strategy.Catalog) (*domain.RankingTable, error) {
	jobs := make(chan domain.Strategy)
	evals := make(chan evaluation)

	var wg sync.WaitGroup
	for i := 0; i < e.workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for s := range jobs {
				result, err := e.evaluator.Evaluate(s)
				evals <- evaluation{result: result, err: err}
			}
		}()
	}

	// Feed descriptors until the catalog is exhausted or the context is
	// cancelled.
	go func() {
		defer close(jobs)
		for {
			s, ok := catalog.Next()
			if !ok {
				return
			}
			select {
			case jobs <- s:
			case <-ctx.Done():
				return
			}
		}
	}()

	go func() {
		wg.Wait()
		close(evals)
	}()

	var results []domain.StrategyResult
	var firstErr error
	for ev := range evals {
		if ev.err != nil {
			e.logger.Errorf("strategy evaluation failed: %v", ev.err)
			if firstErr == nil {
				firstErr = ev.err
			}
			continue
		}
		e.logger.Debugf("evaluated %s: net benefit %s",
			ev.result.Label, ev.result.NetBenefit.StringFixed(0))
		results = append(results, ev.result)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if firstErr != nil {
		return nil, firstErr
	}

	e.logger.Infof("evaluated %d strategies", len(results))
	return Rank(results), nil
}
