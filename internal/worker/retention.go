package worker

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// BoardFacade exposes the subset of application functionality required by the sweeper.
type BoardFacade interface {
	PruneMessages(ctx context.Context, cutoff time.Time, limit int) (int64, error)
}

// RetentionSweeper periodically deletes board messages older than the
// configured retention window. A zero or negative window disables it.
type RetentionSweeper struct {
	facade    BoardFacade
	retention time.Duration
	interval  time.Duration
	batch     int
	logger    *slog.Logger

	wg     sync.WaitGroup
	cancel context.CancelFunc
	mu     sync.Mutex
}

// NewRetentionSweeper constructs the sweeper.
func NewRetentionSweeper(facade BoardFacade, retention, interval time.Duration, batch int, logger *slog.Logger) *RetentionSweeper {
	if batch <= 0 {
		batch = 1
	}
	if interval <= 0 {
		interval = time.Hour
	}
	return &RetentionSweeper{
		facade:    facade,
		retention: retention,
		interval:  interval,
		batch:     batch,
		logger:    logger,
	}
}

// Start launches the background sweep loop.
func (s *RetentionSweeper) Start(ctx context.Context) {
	if s.retention <= 0 {
		s.logger.Info("message retention disabled")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	runCtx, cancel := context.WithCancel(ctx)
	s.cancel = cancel

	s.wg.Add(1)
	go s.loop(runCtx)
}

// Stop waits for the sweep loop to finish.
func (s *RetentionSweeper) Stop() {
	s.mu.Lock()
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	s.mu.Unlock()

	s.wg.Wait()
}

func (s *RetentionSweeper) loop(ctx context.Context) {
	defer s.wg.Done()
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.sweep(ctx)
		}
	}
}

// sweep deletes in batches until a batch comes back short, so a single
// tick drains the backlog without holding one long-running statement.
func (s *RetentionSweeper) sweep(ctx context.Context) {
	cutoff := time.Now().Add(-s.retention)
	var total int64
	for {
		if ctx.Err() != nil {
			return
		}
		n, err := s.facade.PruneMessages(ctx, cutoff, s.batch)
		if err != nil {
			s.logger.Error("message sweep failed", slog.String("error", err.Error()))
			return
		}
		total += n
		if n < int64(s.batch) {
			break
		}
	}
	if total > 0 {
		s.logger.Info("swept expired messages", slog.Int64("deleted", total))
	}
}
