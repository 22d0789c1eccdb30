package repositories

import (
	"context"
	"errors"
	"fmt"

	"attendance-system/internal/entities"
	apperrors "attendance-system/pkg/errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type SchoolRepositoryInterface interface {
	GetSchools(ctx context.Context) ([]entities.School, error)
	FindByID(ctx context.Context, id int64) (*entities.School, error)
}

type SchoolRepository struct {
	storage *pgxpool.Pool
}

func NewSchoolRepository(storage *pgxpool.Pool) SchoolRepositoryInterface {
	return &SchoolRepository{storage: storage}
}

func (r *SchoolRepository) GetSchools(ctx context.Context) ([]entities.School, error) {
	query := `SELECT school_id, school_name, head, position, address, created_at FROM school ORDER BY school_name`
	rows, err := r.storage.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing schools: %w", err)
	}
	defer rows.Close()

	schools := make([]entities.School, 0)
	for rows.Next() {
		var s entities.School
		if err := rows.Scan(&s.SchoolID, &s.SchoolName, &s.Head, &s.Position, &s.Address, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning school row: %w", err)
		}
		schools = append(schools, s)
	}
	return schools, rows.Err()
}

func (r *SchoolRepository) FindByID(ctx context.Context, id int64) (*entities.School, error) {
	s := &entities.School{}
	query := `SELECT school_id, school_name, head, position, address, created_at FROM school WHERE school_id = $1`
	err := r.storage.QueryRow(ctx, query, id).Scan(&s.SchoolID, &s.SchoolName, &s.Head, &s.Position, &s.Address, &s.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("finding school: %w", err)
	}
	return s, nil
}
