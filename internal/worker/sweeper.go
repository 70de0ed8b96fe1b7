package worker

import (
	"context"
	"log/slog"
	"time"

	"artisan-quotes/internal/pkg/config"
	"artisan-quotes/internal/usecase/commands"
)

// Sweeper periodically expires overdue quotes. The sweep statement itself is
// idempotent, so overlapping runs from multiple instances are safe.
type Sweeper struct {
	quotes   commands.QuoteCommands
	interval time.Duration

	cancel context.CancelFunc
	done   chan struct{}
}

func NewSweeper(quotes commands.QuoteCommands, cfg config.SweeperConfig) *Sweeper {
	return &Sweeper{
		quotes:   quotes,
		interval: cfg.Interval,
	}
}

func (s *Sweeper) Start() {
	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	s.done = make(chan struct{})

	go s.run(ctx)
}

func (s *Sweeper) Stop() {
	if s.cancel == nil {
		return
	}
	s.cancel()
	<-s.done
}

func (s *Sweeper) run(ctx context.Context) {
	defer close(s.done)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	// One pass at startup catches quotes that went overdue while the
	// process was down.
	s.sweep(ctx)

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.sweep(ctx)
		}
	}
}

func (s *Sweeper) sweep(ctx context.Context) {
	count, err := s.quotes.SweepExpiredQuotes(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return
		}
		slog.Error("expiration sweep failed", "error", err.Error())
		return
	}
	if count > 0 {
		slog.Info("expired overdue quotes", "count", count)
	}
}
