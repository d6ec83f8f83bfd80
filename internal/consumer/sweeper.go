package consumer

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
)

type ledgerSweeper interface {
	SweepAll(ctx context.Context)
}

// Sweeper periodically reclaims expired records for idle users. Liveness is
// re-checked on every read anyway, so this loop can be delayed or skipped
// without affecting what users see.
type Sweeper struct {
	ledger   ledgerSweeper
	interval time.Duration
}

func NewSweeper(ledger ledgerSweeper, interval time.Duration) *Sweeper {
	return &Sweeper{
		ledger:   ledger,
		interval: interval,
	}
}

func (s *Sweeper) Consume(ctx context.Context) {
	logrus.Info("sweeper consumer started")

	t := time.NewTicker(s.interval)
	defer t.Stop()

	for {
		select {
		case <-ctx.Done():
			logrus.Infof("sweeper consumer stopped: %v", ctx.Err())
			return
		case <-t.C:
			started := time.Now()
			s.ledger.SweepAll(ctx)
			logrus.Debugf("sweeper finished pass in %v", time.Since(started))
		}
	}
}
