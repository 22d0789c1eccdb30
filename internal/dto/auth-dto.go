package dto

type LoginDTO struct {
	SchoolID int64  `json:"school_id" validate:"required"`
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type SessionUserDTO struct {
	UserID       int64   `json:"user_id"`
	Username     string  `json:"username"`
	Fullname     string  `json:"fullname"`
	Role         string  `json:"role"`
	SchoolID     *int64  `json:"school_id"`
	EmailAddress *string `json:"email_address"`
	ContactNo    *string `json:"contact_no"`
}

type LoginResponseDTO struct {
	User         SessionUserDTO `json:"user"`
	AllowedPages []string       `json:"allowedPages"`
	SchoolID     *int64         `json:"schoolId"`
	SchoolName   *string        `json:"schoolName"`
}
