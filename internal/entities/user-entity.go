package entities

import "time"

// User is a staff account from public.users (custom auth table). SchoolID is
// nil for global accounts that are not scoped to one school.
type User struct {
	UserID       int64
	Username     string
	PasswordHash string
	Fullname     string
	Role         string
	SchoolID     *int64
	EmailAddress *string
	ContactNo    *string
	CreatedAt    *time.Time
	UpdatedAt    *time.Time
}
