package dto

import "time"

type CreateStudentDTO struct {
	LearnerReferenceNumber *string `json:"learner_reference_number" validate:"omitempty,max=50"`
	LastName               string  `json:"last_name" validate:"required,max=100"`
	FirstName              string  `json:"first_name" validate:"required,max=100"`
	MiddleName             *string `json:"middle_name"`
	ExtensionName          *string `json:"extension_name"`
	Sex                    *string `json:"sex" validate:"omitempty,oneof=M F Male Female"`
	SchoolYear             *string `json:"school_year"`
	GradeLevel             *string `json:"grade_level"`
	EmailAddress           *string `json:"email_address" validate:"omitempty,email"`
	PhoneNumber            *string `json:"phone_number"`
	ParentEmail            *string `json:"parent_email" validate:"omitempty,email"`
	FatherLastName         *string `json:"father_last_name"`
	FatherFirstName        *string `json:"father_first_name"`
	FatherContactNumber    *string `json:"father_contact_number"`
	MotherLastName         *string `json:"mother_last_name"`
	MotherFirstName        *string `json:"mother_first_name"`
	MotherContactNumber    *string `json:"mother_contact_number"`
	GuardianLastName       *string `json:"guardian_last_name"`
	GuardianFirstName      *string `json:"guardian_first_name"`
	GuardianContactNumber  *string `json:"guardian_contact_number"`
}

type UpdateStudentDTO struct {
	LearnerReferenceNumber *string `json:"learner_reference_number"`
	LastName               *string `json:"last_name" validate:"omitempty,max=100"`
	FirstName              *string `json:"first_name" validate:"omitempty,max=100"`
	MiddleName             *string `json:"middle_name"`
	ExtensionName          *string `json:"extension_name"`
	Sex                    *string `json:"sex" validate:"omitempty,oneof=M F Male Female"`
	SchoolYear             *string `json:"school_year"`
	GradeLevel             *string `json:"grade_level"`
	EmailAddress           *string `json:"email_address" validate:"omitempty,email"`
	PhoneNumber            *string `json:"phone_number"`
	ParentEmail            *string `json:"parent_email" validate:"omitempty,email"`
	FatherLastName         *string `json:"father_last_name"`
	FatherFirstName        *string `json:"father_first_name"`
	FatherContactNumber    *string `json:"father_contact_number"`
	MotherLastName         *string `json:"mother_last_name"`
	MotherFirstName        *string `json:"mother_first_name"`
	MotherContactNumber    *string `json:"mother_contact_number"`
	GuardianLastName       *string `json:"guardian_last_name"`
	GuardianFirstName      *string `json:"guardian_first_name"`
	GuardianContactNumber  *string `json:"guardian_contact_number"`
}

type AssignRfidDTO struct {
	RfidTag *string `json:"rfid_tag"`
}

type StudentDTO struct {
	ID                     string     `json:"id"`
	LearnerReferenceNumber *string    `json:"learner_reference_number"`
	LastName               *string    `json:"last_name"`
	FirstName              *string    `json:"first_name"`
	MiddleName             *string    `json:"middle_name"`
	ExtensionName          *string    `json:"extension_name"`
	Sex                    *string    `json:"sex"`
	SchoolYear             *string    `json:"school_year"`
	GradeLevel             *string    `json:"grade_level"`
	SchoolID               *int64     `json:"school_id"`
	RfidTag                *string    `json:"rfid_tag"`
	CreatedAt              *time.Time `json:"created_at,omitempty"`
}

type StudentListFilter struct {
	SchoolYear string
	GradeLevel string
	Search     string
	Page       int
	PageSize   int
}

type StudentFilterValuesDTO struct {
	SchoolYears []string `json:"school_years"`
	GradeLevels []string `json:"grade_levels"`
}
