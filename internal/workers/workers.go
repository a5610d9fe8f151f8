package workers

import (
	"github.com/mkarchin/go-bank-ledger/internal/config"
	"github.com/mkarchin/go-bank-ledger/internal/logger"
	"github.com/mkarchin/go-bank-ledger/internal/service"
)

// Workers is an aggregate of background workers that can be run together.
type Workers struct {
	workers []Worker
}

// NewWorkers constructs the application's background workers from the
// given configuration and services.
func NewWorkers(cfg config.Workers, services *service.Services, log *logger.Logger) *Workers {
	return &Workers{
		workers: []Worker{
			newSessionSweeper(services.SessionService, cfg.SessionSweepInterval, log),
		},
	}
}

// Run starts all registered workers one after another.
// Each worker's Run is called in order; workers that need to keep
// working are expected to spawn their own goroutines.
func (w *Workers) Run() {
	for _, worker := range w.workers {
		worker.Run()
	}
}

// Stop signals every worker that supports stopping to finish. Called after
// the server has shut down so background goroutines do not outlive the
// request path.
func (w *Workers) Stop() {
	for _, worker := range w.workers {
		if stoppable, ok := worker.(interface{ Stop() }); ok {
			stoppable.Stop()
		}
	}
}
