package services

import (
	"context"
	"fmt"
	"time"

	"attendance-system/internal/entities"
	"attendance-system/pkg/config"
	"attendance-system/pkg/sms"

	"go.uber.org/zap"
)

type NotificationServiceInterface interface {
	NotifyTimeIn(ctx context.Context, student *entities.StudentProfile, at time.Time)
	NotifyTimeOut(ctx context.Context, student *entities.StudentProfile, at time.Time, durationHours *float64)
}

// NotificationService sends SMS to a student's parent after a successful
// scan. Delivery failures are logged and never surface to the scanner.
type NotificationService struct {
	smsClient sms.ServiceInterface
	logger    *zap.Logger
	cfg       *config.SmsConfig
}

func NewNotificationService(smsClient sms.ServiceInterface, logger *zap.Logger, cfg *config.SmsConfig) NotificationServiceInterface {
	return &NotificationService{smsClient: smsClient, logger: logger, cfg: cfg}
}

func (s *NotificationService) NotifyTimeIn(ctx context.Context, student *entities.StudentProfile, at time.Time) {
	message := fmt.Sprintf("%s has arrived at school at %s.", student.FullName(), at.Format("3:04 PM"))
	s.send(ctx, student, message)
}

func (s *NotificationService) NotifyTimeOut(ctx context.Context, student *entities.StudentProfile, at time.Time, durationHours *float64) {
	message := fmt.Sprintf("%s has left school at %s.", student.FullName(), at.Format("3:04 PM"))
	if durationHours != nil {
		message = fmt.Sprintf("%s Time in school: %.1f hours.", message, *durationHours)
	}
	s.send(ctx, student, message)
}

func (s *NotificationService) send(ctx context.Context, student *entities.StudentProfile, message string) {
	number := student.ParentContactNumber()
	if number == "" {
		s.logger.Info("no parent contact number on file, skipping SMS",
			zap.String("studentID", student.ID.String()))
		return
	}

	result, err := s.smsClient.SendSMS(ctx, number, message, s.cfg.SenderName)
	if err != nil {
		s.logger.Warn("failed to send attendance SMS",
			zap.String("studentID", student.ID.String()),
			zap.Error(err))
		return
	}
	s.logger.Info("attendance SMS queued",
		zap.String("studentID", student.ID.String()),
		zap.String("messageID", result.MessageID))
}
