package processor

import (
	"context"

	"newsdesk/notification-service/internal/app/notifications/service"
	"newsdesk/pkg/logger"

	"github.com/robfig/cron/v3"
)

// CronScheduler периодически дошлёт неотправленные уведомления
type CronScheduler struct {
	cron            *cron.Cron
	notificationSvc service.NotificationServiceInterface
}

// NewCronScheduler создает новый планировщик ретраев
func NewCronScheduler(notificationSvc service.NotificationServiceInterface) *CronScheduler {
	return &CronScheduler{
		cron:            cron.New(),
		notificationSvc: notificationSvc,
	}
}

// Start регистрирует джобу по расписанию и запускает планировщик
func (s *CronScheduler) Start(ctx context.Context, schedule string) error {
	logger.Info().Str("schedule", schedule).Msg("Starting notification retry scheduler")

	_, err := s.cron.AddFunc(schedule, func() {
		sent, err := s.notificationSvc.ResendPending(ctx)
		if err != nil {
			logger.Error().Err(err).Msg("Notification retry pass failed")
			return
		}
		if sent > 0 {
			logger.Info().Int("sent", sent).Msg("Notification retry pass completed")
		}
	})

	if err != nil {
		return err
	}

	s.cron.Start()
	logger.Info().Msg("Notification retry scheduler started")

	return nil
}

// Stop останавливает планировщик, дожидаясь завершения текущей джобы
func (s *CronScheduler) Stop() {
	logger.Info().Msg("Stopping notification retry scheduler...")
	ctx := s.cron.Stop()
	<-ctx.Done()
	logger.Info().Msg("Notification retry scheduler stopped")
}

// GetEntries возвращает зарегистрированные джобы
func (s *CronScheduler) GetEntries() []cron.Entry {
	return s.cron.Entries()
}
