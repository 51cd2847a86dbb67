package scheduler

import (
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sweetcrumb/cakeshop-backend/internal/app/service"
	"github.com/sweetcrumb/cakeshop-backend/pkg/logger"
)

// CartScheduler purges abandoned cart lines on a nightly cron.
type CartScheduler struct {
	cron        *cron.Cron
	cartService service.CartService
	staleAfter  time.Duration
}

func NewCartScheduler(cartService service.CartService, staleAfter time.Duration) *CartScheduler {
	return &CartScheduler{
		cron:        cron.New(),
		cartService: cartService,
		staleAfter:  staleAfter,
	}
}

// Start schedules the purge at 03:00 every day.
func (s *CartScheduler) Start() error {
	_, err := s.cron.AddFunc("0 3 * * *", func() {
		logger.Info("Starting scheduled stale cart purge", map[string]interface{}{
			"stale_after": s.staleAfter.String(),
		})

		count, err := s.cartService.PurgeStaleItems(time.Now().Add(-s.staleAfter))
		if err != nil {
			logger.Error("Scheduled cart purge failed", err)
			return
		}

		logger.Info("Scheduled cart purge finished", map[string]interface{}{
			"purged": count,
		})
	})
	if err != nil {
		logger.Error("Failed to register cart purge cron job", err)
		return err
	}

	s.cron.Start()
	logger.Info("Cart scheduler started (daily at 3:00 AM)", nil)
	return nil
}

// Stop halts the cron loop.
func (s *CartScheduler) Stop() {
	logger.Info("Stopping cart scheduler...", nil)
	s.cron.Stop()
	logger.Info("Cart scheduler stopped", nil)
}
