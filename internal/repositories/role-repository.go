package repositories

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"attendance-system/internal/entities"
	apperrors "attendance-system/pkg/errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type RoleRepositoryInterface interface {
	GetRoles(ctx context.Context) ([]entities.Role, error)
	FindByID(ctx context.Context, id int64) (*entities.Role, error)
	FindByName(ctx context.Context, name string) (*entities.Role, error)
	GetPageKeysByRoleName(ctx context.Context, roleName string) ([]string, error)
	CreateRoleInTx(ctx context.Context, tx pgx.Tx, name string, description *string) (int64, error)
	UpdateRoleInTx(ctx context.Context, tx pgx.Tx, id int64, name *string, description *string) error
	LinkPagesToRoleInTx(ctx context.Context, tx pgx.Tx, roleID int64, pageKeys []string) error
	UnlinkAllPagesFromRoleInTx(ctx context.Context, tx pgx.Tx, roleID int64) error
	DeleteRole(ctx context.Context, id int64) error
	BeginTx(ctx context.Context) (pgx.Tx, error)
}

type RoleRepository struct {
	storage *pgxpool.Pool
}

func NewRoleRepository(storage *pgxpool.Pool) RoleRepositoryInterface {
	return &RoleRepository{storage: storage}
}

func (r *RoleRepository) BeginTx(ctx context.Context) (pgx.Tx, error) {
	return r.storage.Begin(ctx)
}

func (r *RoleRepository) GetRoles(ctx context.Context) ([]entities.Role, error) {
	query := `SELECT role_id, name, description, created_at, updated_at FROM role ORDER BY role_id`
	rows, err := r.storage.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing roles: %w", err)
	}
	defer rows.Close()

	roles := make([]entities.Role, 0)
	for rows.Next() {
		var role entities.Role
		if err := rows.Scan(&role.RoleID, &role.Name, &role.Description, &role.CreatedAt, &role.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scanning role row: %w", err)
		}
		roles = append(roles, role)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	for i := range roles {
		pages, err := r.pageKeysForRole(ctx, roles[i].RoleID)
		if err != nil {
			return nil, err
		}
		roles[i].PageKeys = pages
	}
	return roles, nil
}

func (r *RoleRepository) FindByID(ctx context.Context, id int64) (*entities.Role, error) {
	role := &entities.Role{}
	query := `SELECT role_id, name, description, created_at, updated_at FROM role WHERE role_id = $1`
	err := r.storage.QueryRow(ctx, query, id).Scan(&role.RoleID, &role.Name, &role.Description, &role.CreatedAt, &role.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("finding role: %w", err)
	}

	pages, err := r.pageKeysForRole(ctx, role.RoleID)
	if err != nil {
		return nil, err
	}
	role.PageKeys = pages
	return role, nil
}

func (r *RoleRepository) FindByName(ctx context.Context, name string) (*entities.Role, error) {
	role := &entities.Role{}
	query := `SELECT role_id, name, description, created_at, updated_at FROM role WHERE name = $1`
	err := r.storage.QueryRow(ctx, query, name).Scan(&role.RoleID, &role.Name, &role.Description, &role.CreatedAt, &role.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("finding role by name: %w", err)
	}

	pages, err := r.pageKeysForRole(ctx, role.RoleID)
	if err != nil {
		return nil, err
	}
	role.PageKeys = pages
	return role, nil
}

func (r *RoleRepository) GetPageKeysByRoleName(ctx context.Context, roleName string) ([]string, error) {
	query := `SELECT rp.page_key FROM role_page rp
		INNER JOIN role r ON r.role_id = rp.role_id
		WHERE r.name = $1 ORDER BY rp.page_key`
	rows, err := r.storage.Query(ctx, query, roleName)
	if err != nil {
		return nil, fmt.Errorf("loading page keys for role: %w", err)
	}
	defer rows.Close()

	pages := make([]string, 0)
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			return nil, fmt.Errorf("scanning page key: %w", err)
		}
		pages = append(pages, key)
	}
	return pages, rows.Err()
}

func (r *RoleRepository) pageKeysForRole(ctx context.Context, roleID int64) ([]string, error) {
	rows, err := r.storage.Query(ctx, `SELECT page_key FROM role_page WHERE role_id = $1 ORDER BY page_key`, roleID)
	if err != nil {
		return nil, fmt.Errorf("loading page keys: %w", err)
	}
	defer rows.Close()

	pages := make([]string, 0)
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			return nil, fmt.Errorf("scanning page key: %w", err)
		}
		pages = append(pages, key)
	}
	return pages, rows.Err()
}

func (r *RoleRepository) CreateRoleInTx(ctx context.Context, tx pgx.Tx, name string, description *string) (int64, error) {
	var newID int64
	query := `INSERT INTO role (name, description) VALUES ($1, $2) RETURNING role_id`
	err := tx.QueryRow(ctx, query, name, description).Scan(&newID)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, apperrors.NewConflictError("Role name already exists")
		}
		return 0, fmt.Errorf("creating role: %w", err)
	}
	return newID, nil
}

func (r *RoleRepository) UpdateRoleInTx(ctx context.Context, tx pgx.Tx, id int64, name *string, description *string) error {
	var queryBuilder strings.Builder
	args := pgx.NamedArgs{"id": id}
	queryBuilder.WriteString("UPDATE role SET updated_at = NOW()")

	if name != nil {
		queryBuilder.WriteString(", name = @name")
		args["name"] = *name
	}
	if description != nil {
		queryBuilder.WriteString(", description = @description")
		args["description"] = *description
	}
	queryBuilder.WriteString(" WHERE role_id = @id")

	result, err := tx.Exec(ctx, queryBuilder.String(), args)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.NewConflictError("Role name already exists")
		}
		return fmt.Errorf("updating role: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *RoleRepository) LinkPagesToRoleInTx(ctx context.Context, tx pgx.Tx, roleID int64, pageKeys []string) error {
	if len(pageKeys) == 0 {
		return nil
	}
	rows := make([][]interface{}, len(pageKeys))
	for i, key := range pageKeys {
		rows[i] = []interface{}{roleID, key}
	}
	_, err := tx.CopyFrom(ctx, pgx.Identifier{"public", "role_page"}, []string{"role_id", "page_key"}, pgx.CopyFromRows(rows))
	return err
}

func (r *RoleRepository) UnlinkAllPagesFromRoleInTx(ctx context.Context, tx pgx.Tx, roleID int64) error {
	_, err := tx.Exec(ctx, "DELETE FROM role_page WHERE role_id = $1", roleID)
	return err
}

func (r *RoleRepository) DeleteRole(ctx context.Context, id int64) error {
	result, err := r.storage.Exec(ctx, "DELETE FROM role WHERE role_id = $1", id)
	if err != nil {
		return fmt.Errorf("deleting role: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
