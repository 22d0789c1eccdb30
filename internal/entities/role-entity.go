package entities

import "time"

type Role struct {
	RoleID      int64
	Name        string
	Description *string
	PageKeys    []string
	CreatedAt   *time.Time
	UpdatedAt   *time.Time
}
