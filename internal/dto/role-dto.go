package dto

import "time"

type CreateRoleDTO struct {
	Name        string   `json:"name" validate:"required,max=50"`
	Description *string  `json:"description" validate:"omitempty,max=200"`
	PageKeys    []string `json:"page_keys"`
}

type UpdateRoleDTO struct {
	Name        *string   `json:"name" validate:"omitempty,max=50"`
	Description *string   `json:"description" validate:"omitempty,max=200"`
	PageKeys    *[]string `json:"page_keys"`
}

type RoleDTO struct {
	RoleID      int64      `json:"role_id"`
	Name        string     `json:"name"`
	Description *string    `json:"description"`
	PageKeys    []string   `json:"page_keys"`
	CreatedAt   *time.Time `json:"created_at"`
	UpdatedAt   *time.Time `json:"updated_at"`
}
