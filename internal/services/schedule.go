package services

import (
	"context"
	"time"

	"attendance-system/internal/dto"
	"attendance-system/internal/entities"
	"attendance-system/internal/repositories"
	apperrors "attendance-system/pkg/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ScheduleServiceInterface interface {
	GetSchedules(ctx context.Context) ([]dto.ScheduleDTO, error)
	CreateSchedule(ctx context.Context, payload dto.CreateScheduleDTO) (*dto.ScheduleDTO, error)
	UpdateSchedule(ctx context.Context, id uuid.UUID, payload dto.UpdateScheduleDTO) (*dto.ScheduleDTO, error)
	DeleteSchedule(ctx context.Context, id uuid.UUID) error
}

type ScheduleService struct {
	scheduleRepo repositories.ScheduleRepositoryInterface
	logger       *zap.Logger
}

func NewScheduleService(scheduleRepo repositories.ScheduleRepositoryInterface, logger *zap.Logger) ScheduleServiceInterface {
	return &ScheduleService{scheduleRepo: scheduleRepo, logger: logger}
}

func scheduleToDTO(s *entities.ScanSchedule) *dto.ScheduleDTO {
	return &dto.ScheduleDTO{
		ID:        s.ID.String(),
		Name:      s.Name,
		TimeIn:    s.TimeIn,
		TimeOut:   s.TimeOut,
		CreatedAt: s.CreatedAt,
	}
}

// normalizeClockTime canonicalizes HH:mm or HH:mm:ss input to zero-padded
// HH:mm:ss so the stored values compare lexically and the overlap trigger
// sees one format.
func normalizeClockTime(v string) (string, bool) {
	if t, err := time.Parse("15:04:05", v); err == nil {
		return t.Format("15:04:05"), true
	}
	if t, err := time.Parse("15:04", v); err == nil {
		return t.Format("15:04:05"), true
	}
	return "", false
}

func checkScanWindow(timeIn, timeOut string) error {
	// canonical HH:mm:ss strings order lexically
	if timeOut <= timeIn {
		return apperrors.NewBadRequestError("Time out must be after time in")
	}
	return nil
}

func (s *ScheduleService) GetSchedules(ctx context.Context) ([]dto.ScheduleDTO, error) {
	schedules, err := s.scheduleRepo.GetSchedules(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ScheduleDTO, 0, len(schedules))
	for i := range schedules {
		out = append(out, *scheduleToDTO(&schedules[i]))
	}
	return out, nil
}

func (s *ScheduleService) CreateSchedule(ctx context.Context, payload dto.CreateScheduleDTO) (*dto.ScheduleDTO, error) {
	timeIn, okIn := normalizeClockTime(payload.TimeIn)
	timeOut, okOut := normalizeClockTime(payload.TimeOut)
	if !okIn || !okOut {
		return nil, apperrors.NewBadRequestError("Times must be in HH:mm or HH:mm:ss format")
	}
	if err := checkScanWindow(timeIn, timeOut); err != nil {
		return nil, err
	}

	schedule := &entities.ScanSchedule{
		Name:    payload.Name,
		TimeIn:  timeIn,
		TimeOut: timeOut,
	}
	newID, err := s.scheduleRepo.CreateSchedule(ctx, schedule)
	if err != nil {
		return nil, err
	}
	created, err := s.scheduleRepo.FindByID(ctx, newID)
	if err != nil {
		return nil, err
	}
	return scheduleToDTO(created), nil
}

func (s *ScheduleService) UpdateSchedule(ctx context.Context, id uuid.UUID, payload dto.UpdateScheduleDTO) (*dto.ScheduleDTO, error) {
	existing, err := s.scheduleRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	// the window check runs against the effective values after the update
	timeIn, timeOut := existing.TimeIn, existing.TimeOut
	if payload.TimeIn != nil {
		normalized, ok := normalizeClockTime(*payload.TimeIn)
		if !ok {
			return nil, apperrors.NewBadRequestError("Times must be in HH:mm or HH:mm:ss format")
		}
		timeIn = normalized
		payload.TimeIn = &normalized
	}
	if payload.TimeOut != nil {
		normalized, ok := normalizeClockTime(*payload.TimeOut)
		if !ok {
			return nil, apperrors.NewBadRequestError("Times must be in HH:mm or HH:mm:ss format")
		}
		timeOut = normalized
		payload.TimeOut = &normalized
	}
	if err := checkScanWindow(timeIn, timeOut); err != nil {
		return nil, err
	}

	if err := s.scheduleRepo.UpdateSchedule(ctx, id, payload.Name, payload.TimeIn, payload.TimeOut); err != nil {
		return nil, err
	}
	updated, err := s.scheduleRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return scheduleToDTO(updated), nil
}

func (s *ScheduleService) DeleteSchedule(ctx context.Context, id uuid.UUID) error {
	return s.scheduleRepo.DeleteSchedule(ctx, id)
}
