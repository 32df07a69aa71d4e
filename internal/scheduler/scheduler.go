package scheduler

import (
	"context"
	"time"

	"tableserve/internal/repositories/interfaces"
	"tableserve/pkg/logger"

	"github.com/go-co-op/gocron/v2"
)

// Scheduler runs the daily coupon-expiry sweep shortly after local midnight,
// flipping active coupons past their validity window to expired. Redemption
// still checks validUntil itself; the sweep only keeps wallet views honest.
type Scheduler struct {
	scheduler gocron.Scheduler
	coupons   interfaces.CouponRepository
	logger    *logger.Logger
}

func New(location *time.Location, coupons interfaces.CouponRepository, log *logger.Logger) (*Scheduler, error) {
	s, err := gocron.NewScheduler(
		gocron.WithLocation(location),
	)
	if err != nil {
		return nil, err
	}

	sched := &Scheduler{
		scheduler: s,
		coupons:   coupons,
		logger:    log,
	}

	_, err = s.NewJob(
		gocron.DailyJob(
			1,
			gocron.NewAtTimes(
				gocron.NewAtTime(0, 5, 0),
			),
		),
		gocron.NewTask(sched.expireStaleCoupons),
	)
	if err != nil {
		return nil, err
	}

	return sched, nil
}

func (s *Scheduler) Start() {
	s.scheduler.Start()
	s.logger.Info("Coupon expiry scheduler started")
}

func (s *Scheduler) Stop() error {
	return s.scheduler.Shutdown()
}

func (s *Scheduler) expireStaleCoupons() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	count, err := s.coupons.ExpireStale(ctx, time.Now())
	if err != nil {
		s.logger.WithError(err).Error("Coupon expiry sweep failed")
		return
	}

	if count > 0 {
		s.logger.Infof("Expired %d stale coupons", count)
	}
}
