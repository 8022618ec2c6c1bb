package workers

import (
	"context"
	"sync"
	"time"

	"github.com/MKhiriev/go-feedback/internal/logger"
)

type Workers struct {
	workers []Worker
	wg      sync.WaitGroup
}

func NewWorkers(workers ...Worker) *Workers {
	return &Workers{workers: workers}
}

// Run starts all workers and returns immediately.
func (w *Workers) Run(ctx context.Context) {
	for _, worker := range w.workers {
		w.wg.Go(func() {
			worker.Run(ctx)
		})
	}
}

// Wait blocks until every started worker has returned.
func (w *Workers) Wait() {
	w.wg.Wait()
}

// PruneWorker calls Prune on its target every interval.
type PruneWorker struct {
	name     string
	target   Pruner
	interval time.Duration
	logger   *logger.Logger
}

func NewPruneWorker(name string, target Pruner, interval time.Duration, log *logger.Logger) *PruneWorker {
	return &PruneWorker{
		name:     name,
		target:   target,
		interval: interval,
		logger:   log,
	}
}

func (p *PruneWorker) Run(ctx context.Context) {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	p.logger.Info().Str("func", "*PruneWorker.Run").Str("worker", p.name).
		Dur("interval", p.interval).Msg("prune worker started")

	for {
		select {
		case <-ctx.Done():
			p.logger.Info().Str("func", "*PruneWorker.Run").Str("worker", p.name).Msg("prune worker stopped")
			return
		case <-ticker.C:
			if n := p.target.Prune(ctx); n > 0 {
				p.logger.Debug().Str("func", "*PruneWorker.Run").Str("worker", p.name).
					Int("removed", n).Msg("pruned expired entries")
			}
		}
	}
}
