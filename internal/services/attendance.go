package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"attendance-system/internal/dto"
	"attendance-system/internal/entities"
	"attendance-system/internal/repositories"
	apperrors "attendance-system/pkg/errors"
	"attendance-system/pkg/session"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

type AttendanceServiceInterface interface {
	GetAttendance(ctx context.Context, actor *session.Claims, filter repositories.AttendanceListFilter) ([]dto.AttendanceDTO, uint64, error)
	RecordScan(ctx context.Context, payload dto.ScanRequestDTO) (*dto.ScanResultDTO, error)
	ExportAttendance(ctx context.Context, actor *session.Claims, filter repositories.AttendanceListFilter) ([]byte, string, error)
	GetDashboardStats(ctx context.Context, actor *session.Claims) (*dto.DashboardStatsDTO, error)
}

type AttendanceService struct {
	attendanceRepo repositories.AttendanceRepositoryInterface
	studentRepo    repositories.StudentRepositoryInterface
	notifier       NotificationServiceInterface
	logger         *zap.Logger
}

func NewAttendanceService(
	attendanceRepo repositories.AttendanceRepositoryInterface,
	studentRepo repositories.StudentRepositoryInterface,
	notifier NotificationServiceInterface,
	logger *zap.Logger,
) AttendanceServiceInterface {
	return &AttendanceService{
		attendanceRepo: attendanceRepo,
		studentRepo:    studentRepo,
		notifier:       notifier,
		logger:         logger,
	}
}

func attendanceToDTO(a *entities.Attendance) dto.AttendanceDTO {
	out := dto.AttendanceDTO{
		ID:                     a.ID.String(),
		LearnerReferenceNumber: a.LearnerReferenceNumber,
		SessionNumber:          a.SessionNumber,
		TimeIn:                 a.TimeIn,
		TimeOut:                a.TimeOut,
		GradeLevel:             a.GradeLevel,
		RfidTag:                a.RfidTag,
		CreatedAt:              a.CreatedAt,
	}
	if a.Student != nil {
		out.Student = studentToDTO(a.Student)
	}
	return out
}

func (s *AttendanceService) GetAttendance(ctx context.Context, actor *session.Claims, filter repositories.AttendanceListFilter) ([]dto.AttendanceDTO, uint64, error) {
	records, total, err := s.attendanceRepo.GetAttendance(ctx, actorScope(actor), filter)
	if err != nil {
		return nil, 0, err
	}
	out := make([]dto.AttendanceDTO, 0, len(records))
	for i := range records {
		out = append(out, attendanceToDTO(&records[i]))
	}
	return out, total, nil
}

// RecordScan resolves the tag, runs the matching database procedure and,
// when the scan lands, hands the parent notification to the notifier.
// A failed outcome is still a 200; the scanner displays the message.
func (s *AttendanceService) RecordScan(ctx context.Context, payload dto.ScanRequestDTO) (*dto.ScanResultDTO, error) {
	student, err := s.studentRepo.FindByRfid(ctx, payload.RfidTag)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return &dto.ScanResultDTO{
				Success: false,
				Message: "RFID tag is not registered to any student",
			}, nil
		}
		return nil, err
	}

	var outcome *entities.ScanOutcome
	switch payload.Mode {
	case dto.ScanModeTimeIn:
		outcome, err = s.attendanceRepo.RecordTimeIn(ctx, payload.RfidTag)
	case dto.ScanModeTimeOut:
		outcome, err = s.attendanceRepo.RecordTimeOut(ctx, payload.RfidTag)
	default:
		return nil, apperrors.NewBadRequestError("Scan mode must be time_in or time_out")
	}
	if err != nil {
		return nil, err
	}

	result := &dto.ScanResultDTO{
		Success:       outcome.Success,
		Message:       outcome.Message,
		DurationHours: outcome.DurationHours,
		Student:       studentToDTO(student),
	}

	if outcome.Success {
		now := time.Now()
		if payload.Mode == dto.ScanModeTimeIn {
			s.notifier.NotifyTimeIn(ctx, student, now)
		} else {
			s.notifier.NotifyTimeOut(ctx, student, now, outcome.DurationHours)
		}
	}
	return result, nil
}

func (s *AttendanceService) ExportAttendance(ctx context.Context, actor *session.Claims, filter repositories.AttendanceListFilter) ([]byte, string, error) {
	// export ignores pagination
	filter.Page = 0
	filter.PageSize = 0
	records, _, err := s.attendanceRepo.GetAttendance(ctx, actorScope(actor), filter)
	if err != nil {
		return nil, "", err
	}

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Attendance"
	f.SetSheetName("Sheet1", sheet)

	headers := []string{"LRN", "Last Name", "First Name", "Grade Level", "Session", "Time In", "Time Out", "Date"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return nil, "", fmt.Errorf("writing export header: %w", err)
		}
	}

	formatTime := func(t *time.Time) string {
		if t == nil {
			return ""
		}
		return t.Format("3:04 PM")
	}
	derefStr := func(p *string) string {
		if p == nil {
			return ""
		}
		return *p
	}

	for row, rec := range records {
		values := []interface{}{
			derefStr(rec.LearnerReferenceNumber),
			"", "",
			derefStr(rec.GradeLevel),
			nil,
			formatTime(rec.TimeIn),
			formatTime(rec.TimeOut),
			"",
		}
		if rec.Student != nil {
			values[1] = derefStr(rec.Student.LastName)
			values[2] = derefStr(rec.Student.FirstName)
		}
		if rec.SessionNumber != nil {
			values[4] = *rec.SessionNumber
		}
		if rec.CreatedAt != nil {
			values[7] = rec.CreatedAt.Format("2006-01-02")
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return nil, "", fmt.Errorf("writing export row: %w", err)
			}
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, "", fmt.Errorf("serializing export workbook: %w", err)
	}

	filename := fmt.Sprintf("attendance-%s.xlsx", time.Now().Format("2006-01-02"))
	return buf.Bytes(), filename, nil
}

func (s *AttendanceService) GetDashboardStats(ctx context.Context, actor *session.Claims) (*dto.DashboardStatsDTO, error) {
	scope := actorScope(actor)

	todayCount, err := s.attendanceRepo.CountToday(ctx, scope)
	if err != nil {
		return nil, err
	}
	enrolled, err := s.attendanceRepo.CountStudentsWithRfid(ctx, scope)
	if err != nil {
		return nil, err
	}
	daily, err := s.attendanceRepo.WeeklyCounts(ctx, scope)
	if err != nil {
		return nil, err
	}

	stats := &dto.DashboardStatsDTO{
		TodayCount:    todayCount,
		WeeklySummary: make([]dto.WeeklySummary, 0, len(daily)),
	}
	if enrolled > 0 {
		stats.AttendanceRate = float64(todayCount) / float64(enrolled) * 100
	}
	for _, d := range daily {
		stats.WeeklySummary = append(stats.WeeklySummary, dto.WeeklySummary{
			Day:   d.Day.Format("Mon"),
			Count: d.Count,
		})
	}
	return stats, nil
}
