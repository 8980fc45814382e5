package services

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"

	"socialhub/internal/domain"
	"socialhub/pkg/logger"
)

// Sweeper retires content whose lifetime has passed: auctions past their
// end time and expired stories. Listing queries already filter by time,
// so the sweep only reconciles the persisted flags.
type Sweeper struct {
	cron     *cron.Cron
	auctions domain.AuctionRepository
	stories  domain.StoryRepository
	log      logger.Logger
}

func NewSweeper(auctions domain.AuctionRepository, stories domain.StoryRepository, log logger.Logger) *Sweeper {
	return &Sweeper{
		cron:     cron.New(),
		auctions: auctions,
		stories:  stories,
		log:      log,
	}
}

func (s *Sweeper) Start(ctx context.Context) error {
	s.log.Info("Starting lifecycle sweeper")

	_, err := s.cron.AddFunc("@every 1m", func() {
		s.sweep(ctx)
	})
	if err != nil {
		return err
	}

	s.cron.Start()
	return nil
}

func (s *Sweeper) Stop() error {
	s.log.Info("Stopping lifecycle sweeper")
	s.cron.Stop()
	return nil
}

func (s *Sweeper) sweep(ctx context.Context) {
	now := time.Now()

	ended, err := s.auctions.DeactivateEnded(ctx, now)
	if err != nil {
		s.log.Error("Failed to deactivate ended auctions", "error", err)
	} else if ended > 0 {
		s.log.Info("Deactivated ended auctions", "count", ended)
	}

	expired, err := s.stories.DeleteExpired(ctx, now)
	if err != nil {
		s.log.Error("Failed to delete expired stories", "error", err)
	} else if expired > 0 {
		s.log.Info("Deleted expired stories", "count", expired)
	}
}
