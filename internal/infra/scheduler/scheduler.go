package scheduler

import (
	"context"
	"time"

	"cams/internal/domain/assignment"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// ReconciliationScheduler periodically logs the live-assignment count. The
// count is a pure diagnostic: a sudden jump is the earliest visible symptom
// of the create path double-writing, so the sweep gives operators a nightly
// baseline to compare against.
type ReconciliationScheduler struct {
	cronEngine *cron.Cron
	repo       assignment.Repository
	logger     *logrus.Entry
	cronSpec   string
}

func NewReconciliationScheduler(repo assignment.Repository, logger *logrus.Entry, cronSpec string) *ReconciliationScheduler {
	return &ReconciliationScheduler{
		cronEngine: cron.New(cron.WithLocation(time.Local)),
		repo:       repo,
		logger:     logger,
		cronSpec:   cronSpec,
	}
}

func (s *ReconciliationScheduler) Start() error {
	_, err := s.cronEngine.AddFunc(s.cronSpec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 1*time.Minute)
		defer cancel()

		count, err := s.repo.CountLive(ctx)
		if err != nil {
			s.logger.WithError(err).Error("Assignment reconciliation sweep failed")
			return
		}
		s.logger.WithField("live_assignments", count).Info("Assignment reconciliation sweep complete")
	})
	if err != nil {
		return err
	}
	s.cronEngine.Start()
	s.logger.WithField("cron_spec", s.cronSpec).Info("Reconciliation scheduler started")
	return nil
}

func (s *ReconciliationScheduler) Stop() {
	ctx := s.cronEngine.Stop()
	<-ctx.Done()
	s.logger.Info("Reconciliation scheduler stopped")
}
