package repositories

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"attendance-system/internal/entities"
	apperrors "attendance-system/pkg/errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ScheduleRepositoryInterface interface {
	GetSchedules(ctx context.Context) ([]entities.ScanSchedule, error)
	FindByID(ctx context.Context, id uuid.UUID) (*entities.ScanSchedule, error)
	CreateSchedule(ctx context.Context, schedule *entities.ScanSchedule) (uuid.UUID, error)
	UpdateSchedule(ctx context.Context, id uuid.UUID, name, timeIn, timeOut *string) error
	DeleteSchedule(ctx context.Context, id uuid.UUID) error
}

type ScheduleRepository struct {
	storage *pgxpool.Pool
}

func NewScheduleRepository(storage *pgxpool.Pool) ScheduleRepositoryInterface {
	return &ScheduleRepository{storage: storage}
}

func (r *ScheduleRepository) GetSchedules(ctx context.Context) ([]entities.ScanSchedule, error) {
	query := `SELECT id, name, time_in, time_out, created_at FROM scan_schedule ORDER BY time_in`
	rows, err := r.storage.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing schedules: %w", err)
	}
	defer rows.Close()

	schedules := make([]entities.ScanSchedule, 0)
	for rows.Next() {
		var s entities.ScanSchedule
		if err := rows.Scan(&s.ID, &s.Name, &s.TimeIn, &s.TimeOut, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning schedule row: %w", err)
		}
		schedules = append(schedules, s)
	}
	return schedules, rows.Err()
}

func (r *ScheduleRepository) FindByID(ctx context.Context, id uuid.UUID) (*entities.ScanSchedule, error) {
	s := &entities.ScanSchedule{}
	query := `SELECT id, name, time_in, time_out, created_at FROM scan_schedule WHERE id = $1`
	err := r.storage.QueryRow(ctx, query, id).Scan(&s.ID, &s.Name, &s.TimeIn, &s.TimeOut, &s.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("finding schedule: %w", err)
	}
	return s, nil
}

func (r *ScheduleRepository) CreateSchedule(ctx context.Context, schedule *entities.ScanSchedule) (uuid.UUID, error) {
	newID := uuid.New()
	query := `INSERT INTO scan_schedule (id, name, time_in, time_out) VALUES ($1, $2, $3, $4)`
	_, err := r.storage.Exec(ctx, query, newID, schedule.Name, schedule.TimeIn, schedule.TimeOut)
	if err != nil {
		return uuid.Nil, mapScheduleError(err, "creating schedule")
	}
	return newID, nil
}

func (r *ScheduleRepository) UpdateSchedule(ctx context.Context, id uuid.UUID, name, timeIn, timeOut *string) error {
	args := pgx.NamedArgs{"id": id}
	sets := make([]string, 0, 3)
	if name != nil {
		sets = append(sets, "name = @name")
		args["name"] = *name
	}
	if timeIn != nil {
		sets = append(sets, "time_in = @time_in")
		args["time_in"] = *timeIn
	}
	if timeOut != nil {
		sets = append(sets, "time_out = @time_out")
		args["time_out"] = *timeOut
	}
	if len(sets) == 0 {
		return nil
	}
	query := "UPDATE scan_schedule SET " + strings.Join(sets, ", ") + " WHERE id = @id"

	result, err := r.storage.Exec(ctx, query, args)
	if err != nil {
		return mapScheduleError(err, "updating schedule")
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *ScheduleRepository) DeleteSchedule(ctx context.Context, id uuid.UUID) error {
	result, err := r.storage.Exec(ctx, `DELETE FROM scan_schedule WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting schedule: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// The scan_schedule table carries a trigger that raises P0001 when a new
// window overlaps an existing one.
func mapScheduleError(err error, op string) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "P0001" {
		return apperrors.NewConflictError("Schedule overlaps with an existing session window")
	}
	return fmt.Errorf("%s: %w", op, err)
}
