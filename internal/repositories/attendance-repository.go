package repositories

import (
	"context"
	"fmt"
	"time"

	"attendance-system/internal/entities"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type AttendanceListFilter struct {
	DateFrom   *time.Time
	DateTo     *time.Time
	GradeLevel string
	Search     string
	Page       int
	PageSize   int
}

type AttendanceRepositoryInterface interface {
	GetAttendance(ctx context.Context, schoolID *int64, filter AttendanceListFilter) ([]entities.Attendance, uint64, error)
	RecordTimeIn(ctx context.Context, rfidTag string) (*entities.ScanOutcome, error)
	RecordTimeOut(ctx context.Context, rfidTag string) (*entities.ScanOutcome, error)
	CountToday(ctx context.Context, schoolID *int64) (int64, error)
	CountStudentsWithRfid(ctx context.Context, schoolID *int64) (int64, error)
	WeeklyCounts(ctx context.Context, schoolID *int64) ([]entities.DailyCount, error)
}

type AttendanceRepository struct {
	storage *pgxpool.Pool
}

func NewAttendanceRepository(storage *pgxpool.Pool) AttendanceRepositoryInterface {
	return &AttendanceRepository{storage: storage}
}

// scopeBySchool confines a query to the viewer's school. A viewer without a
// school sees only rows without one; there is no unscoped view.
func scopeBySchool(builder sq.SelectBuilder, column string, schoolID *int64) sq.SelectBuilder {
	if schoolID != nil {
		return builder.Where(sq.Eq{column: *schoolID})
	}
	return builder.Where(sq.Eq{column: nil})
}

var attendanceJoinColumns = []string{
	"a.id", "a.learner_reference_number", "a.session_number", "a.time_in", "a.time_out",
	"a.grade_level", "a.rfid_tag", "a.created_at",
	"s.id", "s.learner_reference_number", "s.last_name", "s.first_name", "s.middle_name",
	"s.extension_name", "s.sex", "s.school_year", "s.grade_level", "s.school_id", "s.rfid_tag",
}

func (r *AttendanceRepository) attendanceBuilder(base sq.SelectBuilder, schoolID *int64, filter AttendanceListFilter) sq.SelectBuilder {
	builder := base.From("attendance a").
		LeftJoin("student_profile s ON s.learner_reference_number = a.learner_reference_number").
		PlaceholderFormat(sq.Dollar)
	builder = scopeBySchool(builder, "s.school_id", schoolID)
	if filter.DateFrom != nil {
		builder = builder.Where(sq.GtOrEq{"a.created_at": *filter.DateFrom})
	}
	if filter.DateTo != nil {
		builder = builder.Where(sq.Lt{"a.created_at": *filter.DateTo})
	}
	if filter.GradeLevel != "" {
		builder = builder.Where(sq.Eq{"a.grade_level": filter.GradeLevel})
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		builder = builder.Where(sq.Or{
			sq.ILike{"s.last_name": pattern},
			sq.ILike{"s.first_name": pattern},
			sq.ILike{"a.learner_reference_number": pattern},
		})
	}
	return builder
}

func (r *AttendanceRepository) GetAttendance(ctx context.Context, schoolID *int64, filter AttendanceListFilter) ([]entities.Attendance, uint64, error) {
	countQuery, countArgs, err := r.attendanceBuilder(sq.Select("COUNT(*)"), schoolID, filter).ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("building attendance count query: %w", err)
	}
	var total uint64
	if err := r.storage.QueryRow(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("counting attendance: %w", err)
	}

	builder := r.attendanceBuilder(sq.Select(attendanceJoinColumns...), schoolID, filter).
		OrderBy("a.created_at DESC")
	if filter.PageSize > 0 {
		builder = builder.Limit(uint64(filter.PageSize))
		if filter.Page > 1 {
			builder = builder.Offset(uint64((filter.Page - 1) * filter.PageSize))
		}
	}
	query, args, err := builder.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("building attendance list query: %w", err)
	}

	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("listing attendance: %w", err)
	}
	defer rows.Close()

	records := make([]entities.Attendance, 0)
	for rows.Next() {
		var a entities.Attendance
		s := &entities.StudentProfile{}
		var studentID *string
		err := rows.Scan(&a.ID, &a.LearnerReferenceNumber, &a.SessionNumber, &a.TimeIn, &a.TimeOut,
			&a.GradeLevel, &a.RfidTag, &a.CreatedAt,
			&studentID, &s.LearnerReferenceNumber, &s.LastName, &s.FirstName, &s.MiddleName,
			&s.ExtensionName, &s.Sex, &s.SchoolYear, &s.GradeLevel, &s.SchoolID, &s.RfidTag)
		if err != nil {
			return nil, 0, fmt.Errorf("scanning attendance row: %w", err)
		}
		if studentID != nil {
			if parsed, err := uuid.Parse(*studentID); err == nil {
				s.ID = parsed
				a.Student = s
			}
		}
		records = append(records, a)
	}
	return records, total, rows.Err()
}

func (r *AttendanceRepository) RecordTimeIn(ctx context.Context, rfidTag string) (*entities.ScanOutcome, error) {
	return r.callScanProc(ctx, "SELECT success, message, duration_hours FROM record_time_in($1)", rfidTag)
}

func (r *AttendanceRepository) RecordTimeOut(ctx context.Context, rfidTag string) (*entities.ScanOutcome, error) {
	return r.callScanProc(ctx, "SELECT success, message, duration_hours FROM record_time_out($1)", rfidTag)
}

func (r *AttendanceRepository) callScanProc(ctx context.Context, query, rfidTag string) (*entities.ScanOutcome, error) {
	outcome := &entities.ScanOutcome{}
	err := r.storage.QueryRow(ctx, query, rfidTag).Scan(&outcome.Success, &outcome.Message, &outcome.DurationHours)
	if err != nil {
		return nil, fmt.Errorf("recording scan: %w", err)
	}
	return outcome, nil
}

func (r *AttendanceRepository) CountToday(ctx context.Context, schoolID *int64) (int64, error) {
	builder := sq.Select("COUNT(DISTINCT a.learner_reference_number)").
		From("attendance a").
		LeftJoin("student_profile s ON s.learner_reference_number = a.learner_reference_number").
		Where(sq.Expr("a.created_at >= date_trunc('day', NOW())")).
		PlaceholderFormat(sq.Dollar)
	builder = scopeBySchool(builder, "s.school_id", schoolID)
	query, args, err := builder.ToSql()
	if err != nil {
		return 0, fmt.Errorf("building today count query: %w", err)
	}
	var count int64
	if err := r.storage.QueryRow(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("counting today's attendance: %w", err)
	}
	return count, nil
}

func (r *AttendanceRepository) CountStudentsWithRfid(ctx context.Context, schoolID *int64) (int64, error) {
	builder := sq.Select("COUNT(*)").From("student_profile").
		Where(sq.NotEq{"rfid_tag": nil}).
		PlaceholderFormat(sq.Dollar)
	builder = scopeBySchool(builder, "school_id", schoolID)
	query, args, err := builder.ToSql()
	if err != nil {
		return 0, fmt.Errorf("building enrolled count query: %w", err)
	}
	var count int64
	if err := r.storage.QueryRow(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("counting enrolled students: %w", err)
	}
	return count, nil
}

func (r *AttendanceRepository) WeeklyCounts(ctx context.Context, schoolID *int64) ([]entities.DailyCount, error) {
	builder := sq.Select(
		"date_trunc('day', a.created_at) AS day",
		"COUNT(DISTINCT a.learner_reference_number)").
		From("attendance a").
		LeftJoin("student_profile s ON s.learner_reference_number = a.learner_reference_number").
		Where(sq.Expr("a.created_at >= date_trunc('day', NOW()) - INTERVAL '6 days'")).
		GroupBy("day").OrderBy("day").
		PlaceholderFormat(sq.Dollar)
	builder = scopeBySchool(builder, "s.school_id", schoolID)
	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("building weekly summary query: %w", err)
	}
	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("loading weekly summary: %w", err)
	}
	defer rows.Close()

	counts := make([]entities.DailyCount, 0)
	for rows.Next() {
		var dc entities.DailyCount
		if err := rows.Scan(&dc.Day, &dc.Count); err != nil {
			return nil, fmt.Errorf("scanning weekly summary row: %w", err)
		}
		counts = append(counts, dc)
	}
	return counts, rows.Err()
}
