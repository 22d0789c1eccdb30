package repositories

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"attendance-system/internal/entities"
	apperrors "attendance-system/pkg/errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const userColumns = `user_id, username, password_hash, fullname, role, school_id, email_address, contact_no, created_at, updated_at`

type UserRepositoryInterface interface {
	GetUsers(ctx context.Context, schoolID *int64) ([]entities.User, error)
	FindByID(ctx context.Context, id int64) (*entities.User, error)
	FindByUsername(ctx context.Context, schoolID int64, username string) (*entities.User, error)
	CreateUser(ctx context.Context, user *entities.User) (int64, error)
	UpdateUser(ctx context.Context, user *entities.User) error
	DeleteUser(ctx context.Context, id int64) error
	CountByRoleName(ctx context.Context, roleName string) (int64, error)
}

type UserRepository struct {
	storage *pgxpool.Pool
}

func NewUserRepository(storage *pgxpool.Pool) UserRepositoryInterface {
	return &UserRepository{storage: storage}
}

func scanUser(row pgx.Row) (*entities.User, error) {
	u := &entities.User{}
	err := row.Scan(&u.UserID, &u.Username, &u.PasswordHash, &u.Fullname, &u.Role,
		&u.SchoolID, &u.EmailAddress, &u.ContactNo, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("scanning user row: %w", err)
	}
	return u, nil
}

func (r *UserRepository) GetUsers(ctx context.Context, schoolID *int64) ([]entities.User, error) {
	query := fmt.Sprintf(`SELECT %s FROM users`, userColumns)
	args := []interface{}{}
	if schoolID != nil {
		query += ` WHERE school_id = $1`
		args = append(args, *schoolID)
	}
	query += ` ORDER BY user_id`

	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing users: %w", err)
	}
	defer rows.Close()

	users := make([]entities.User, 0)
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, *u)
	}
	return users, rows.Err()
}

func (r *UserRepository) FindByID(ctx context.Context, id int64) (*entities.User, error) {
	query := fmt.Sprintf(`SELECT %s FROM users WHERE user_id = $1`, userColumns)
	return scanUser(r.storage.QueryRow(ctx, query, id))
}

func (r *UserRepository) FindByUsername(ctx context.Context, schoolID int64, username string) (*entities.User, error) {
	query := fmt.Sprintf(`SELECT %s FROM users WHERE school_id = $1 AND username = $2`, userColumns)
	return scanUser(r.storage.QueryRow(ctx, query, schoolID, username))
}

func (r *UserRepository) CreateUser(ctx context.Context, user *entities.User) (int64, error) {
	var newID int64
	query := `INSERT INTO users (username, password_hash, fullname, role, school_id, email_address, contact_no)
		VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING user_id`
	err := r.storage.QueryRow(ctx, query,
		user.Username, user.PasswordHash, user.Fullname, user.Role,
		user.SchoolID, user.EmailAddress, user.ContactNo).Scan(&newID)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, apperrors.NewConflictError("Username already exists")
		}
		return 0, fmt.Errorf("creating user: %w", err)
	}
	return newID, nil
}

func (r *UserRepository) UpdateUser(ctx context.Context, user *entities.User) error {
	var queryBuilder strings.Builder
	args := pgx.NamedArgs{"id": user.UserID}
	queryBuilder.WriteString("UPDATE users SET updated_at = NOW()")

	if user.PasswordHash != "" {
		queryBuilder.WriteString(", password_hash = @password_hash")
		args["password_hash"] = user.PasswordHash
	}
	if user.Fullname != "" {
		queryBuilder.WriteString(", fullname = @fullname")
		args["fullname"] = user.Fullname
	}
	if user.Role != "" {
		queryBuilder.WriteString(", role = @role")
		args["role"] = user.Role
	}
	queryBuilder.WriteString(", school_id = @school_id")
	args["school_id"] = user.SchoolID
	queryBuilder.WriteString(", email_address = @email_address")
	args["email_address"] = user.EmailAddress
	queryBuilder.WriteString(", contact_no = @contact_no")
	args["contact_no"] = user.ContactNo
	queryBuilder.WriteString(" WHERE user_id = @id")

	result, err := r.storage.Exec(ctx, queryBuilder.String(), args)
	if err != nil {
		return fmt.Errorf("updating user: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *UserRepository) DeleteUser(ctx context.Context, id int64) error {
	result, err := r.storage.Exec(ctx, "DELETE FROM users WHERE user_id = $1", id)
	if err != nil {
		return fmt.Errorf("deleting user: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *UserRepository) CountByRoleName(ctx context.Context, roleName string) (int64, error) {
	var count int64
	err := r.storage.QueryRow(ctx, "SELECT COUNT(*) FROM users WHERE role = $1", roleName).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("counting users by role: %w", err)
	}
	return count, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
