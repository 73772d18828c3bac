package jobs

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"atelier/api/internal/repository"
)

// Scheduler runs the background maintenance work. Today that is a
// single hourly sweep dropping reset tokens past their expiry.
type Scheduler struct {
	cron  *cron.Cron
	users *repository.UserRepository
	log   zerolog.Logger
}

func NewScheduler(users *repository.UserRepository, log zerolog.Logger) *Scheduler {
	return &Scheduler{
		cron:  cron.New(cron.WithSeconds()),
		users: users,
		log:   log,
	}
}

func (s *Scheduler) Start() error {
	if _, err := s.cron.AddFunc("0 0 */1 * * *", s.purgeExpiredResetTokens); err != nil {
		return err
	}

	s.cron.Start()
	return nil
}

// Stop halts scheduling and waits for any in-flight run to finish,
// bounded by a short grace period.
func (s *Scheduler) Stop() {
	done := make(chan struct{})
	go func() {
		<-s.cron.Stop().Done()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		s.log.Warn().Msg("scheduler stop timed out")
	}
}

func (s *Scheduler) purgeExpiredResetTokens() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	cleared, err := s.users.ClearExpiredResetTokens(ctx, time.Now())
	if err != nil {
		s.log.Error().Err(err).Msg("reset token purge failed")
		return
	}
	if cleared > 0 {
		s.log.Info().Int64("cleared", cleared).Msg("expired reset tokens purged")
	}
}
