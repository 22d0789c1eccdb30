package dto

import "time"

type CreateUserDTO struct {
	Username     string  `json:"username" validate:"required,max=100"`
	Password     string  `json:"password" validate:"required,min=6"`
	Fullname     string  `json:"fullname" validate:"required,max=200"`
	Role         string  `json:"role" validate:"omitempty,max=50"`
	SchoolID     *int64  `json:"school_id"`
	EmailAddress *string `json:"email_address" validate:"omitempty,email"`
	ContactNo    *string `json:"contact_no"`
}

type UpdateUserDTO struct {
	Password     *string `json:"password" validate:"omitempty,min=6"`
	Fullname     *string `json:"fullname" validate:"omitempty,max=200"`
	Role         *string `json:"role" validate:"omitempty,max=50"`
	SchoolID     *int64  `json:"school_id"`
	EmailAddress *string `json:"email_address" validate:"omitempty,email"`
	ContactNo    *string `json:"contact_no"`
}

type UserDTO struct {
	UserID       int64      `json:"user_id"`
	Username     string     `json:"username"`
	Fullname     string     `json:"fullname"`
	Role         string     `json:"role"`
	SchoolID     *int64     `json:"school_id"`
	EmailAddress *string    `json:"email_address"`
	ContactNo    *string    `json:"contact_no"`
	CreatedAt    *time.Time `json:"created_at"`
	UpdatedAt    *time.Time `json:"updated_at"`
}
