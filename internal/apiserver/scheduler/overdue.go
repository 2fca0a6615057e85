package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/bllokusync/bllokusync/internal/apiserver/database"
	"github.com/bllokusync/bllokusync/internal/common/cnst"
	"go.uber.org/zap"
)

// OverdueScheduler periodically marks pending payment records of past
// months as overdue. A record for month M becomes overdue once the
// current month is later than M; paid records are never touched.
type OverdueScheduler struct {
	logger   *zap.Logger
	db       database.Database
	interval time.Duration
	onSweep  func(marked int)

	ctx          context.Context
	cancel       context.CancelFunc
	running      bool
	runningMutex sync.Mutex
}

// OverdueSchedulerConfig holds configuration for the overdue scheduler
type OverdueSchedulerConfig struct {
	DB       database.Database
	Logger   *zap.Logger
	Interval time.Duration
	// OnSweep is called after every sweep with the number of records
	// changed, used for metrics and statistics cache invalidation.
	OnSweep func(marked int)
}

// NewOverdueScheduler creates a new overdue scheduler
func NewOverdueScheduler(cfg OverdueSchedulerConfig) *OverdueScheduler {
	if cfg.Interval == 0 {
		cfg.Interval = time.Hour
	}
	return &OverdueScheduler{
		logger:   cfg.Logger.Named("scheduler.overdue"),
		db:       cfg.DB,
		interval: cfg.Interval,
		onSweep:  cfg.OnSweep,
	}
}

// Start begins the background sweep loop. A stopped scheduler can be
// started again; each run gets a fresh context.
func (s *OverdueScheduler) Start() error {
	s.runningMutex.Lock()
	defer s.runningMutex.Unlock()

	if s.running {
		return fmt.Errorf("overdue scheduler is already running")
	}
	s.ctx, s.cancel = context.WithCancel(context.Background())
	s.running = true
	s.logger.Info("starting overdue scheduler", zap.Duration("interval", s.interval))

	go s.loop(s.ctx)
	return nil
}

// Stop stops the background sweep loop
func (s *OverdueScheduler) Stop() error {
	s.runningMutex.Lock()
	defer s.runningMutex.Unlock()

	if !s.running {
		return nil
	}
	s.logger.Info("stopping overdue scheduler")
	s.cancel()
	s.running = false
	return nil
}

func (s *OverdueScheduler) loop(loopCtx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	// Run one sweep at startup so a restart never leaves stale records
	// waiting a full interval.
	s.runSweep(loopCtx)

	for {
		select {
		case <-loopCtx.Done():
			s.logger.Info("overdue scheduler loop stopped")
			return
		case <-ticker.C:
			s.runSweep(loopCtx)
		}
	}
}

func (s *OverdueScheduler) runSweep(loopCtx context.Context) {
	ctx, cancel := context.WithTimeout(loopCtx, time.Minute)
	defer cancel()

	changed, err := s.Sweep(ctx, time.Now())
	if err != nil {
		s.logger.Error("overdue sweep failed", zap.Error(err))
		return
	}
	if s.onSweep != nil {
		s.onSweep(changed)
	}
}

// Sweep marks every pending record with a month before now's month as
// overdue and returns the number of records changed. Exported so a
// sweep can be triggered directly.
func (s *OverdueScheduler) Sweep(ctx context.Context, now time.Time) (int, error) {
	cutoff := fmt.Sprintf("%04d-%02d-01", now.Year(), int(now.Month()))

	pending, err := s.db.ListPayments(ctx, database.PaymentFilter{Status: string(cnst.PaymentPending)})
	if err != nil {
		return 0, fmt.Errorf("failed to list pending payments: %w", err)
	}

	changed := 0
	for _, record := range pending {
		if record.PaymentMonth >= cutoff {
			continue
		}
		record.Status = string(cnst.PaymentOverdue)
		if err := s.db.UpdatePayment(ctx, record); err != nil {
			s.logger.Error("failed to mark payment overdue",
				zap.Uint("payment_id", record.ID),
				zap.Error(err))
			continue
		}
		changed++
	}

	if changed > 0 {
		s.logger.Info("overdue sweep completed",
			zap.String("cutoff", cutoff),
			zap.Int("marked", changed))
	}
	return changed, nil
}
