package processor

import (
	"context"
	"log"

	"github.com/robfig/cron/v3"

	"github.com/imnotmomo/dokku/background-worker-service/internal/app/background-worker/service"
)

type CronScheduler struct {
	cron         *cron.Cron
	reconcileSvc service.ReconcileServiceInterface
}

func NewCronScheduler(reconcileSvc service.ReconcileServiceInterface) *CronScheduler {
	c := cron.New(cron.WithLogger(cron.VerbosePrintfLogger(log.Default())))

	return &CronScheduler{
		cron:         c,
		reconcileSvc: reconcileSvc,
	}
}

func (s *CronScheduler) Start(ctx context.Context, schedule string) error {
	log.Printf("Starting cron scheduler with schedule: %s", schedule)

	_, err := s.cron.AddFunc(schedule, func() {
		log.Println("Cron job triggered: reconciling avg ratings")

		if err := s.reconcileSvc.ReconcileAll(ctx); err != nil {
			log.Printf("ERROR: Failed to reconcile avg ratings: %v", err)
		} else {
			log.Println("Cron job completed: avg ratings reconciled successfully")
		}
	})

	if err != nil {
		return err
	}

	s.cron.Start()
	log.Println("Cron scheduler started")

	log.Println("Performing initial avg rating reconcile...")
	if err := s.reconcileSvc.ReconcileAll(ctx); err != nil {
		log.Printf("WARNING: Failed initial avg rating reconcile: %v", err)
	} else {
		log.Println("Initial avg rating reconcile completed")
	}

	return nil
}

func (s *CronScheduler) Stop() {
	log.Println("Stopping cron scheduler...")
	ctx := s.cron.Stop()
	<-ctx.Done()
	log.Println("Cron scheduler stopped")
}

func (s *CronScheduler) GetEntries() []cron.Entry {
	return s.cron.Entries()
}
