package entities

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

type StudentProfile struct {
	ID                     uuid.UUID
	LearnerReferenceNumber *string
	LastName               *string
	FirstName              *string
	MiddleName             *string
	ExtensionName          *string
	Sex                    *string
	SchoolYear             *string
	GradeLevel             *string
	SchoolID               *int64
	RfidTag                *string
	StudentImageURL        *string
	EmailAddress           *string
	PhoneNumber            *string
	ParentEmail            *string
	FatherLastName         *string
	FatherFirstName        *string
	FatherContactNumber    *string
	MotherLastName         *string
	MotherFirstName        *string
	MotherContactNumber    *string
	GuardianLastName       *string
	GuardianFirstName      *string
	GuardianContactNumber  *string
	CreatedAt              *time.Time
}

// FullName joins first and last name for display and notifications.
func (s *StudentProfile) FullName() string {
	parts := make([]string, 0, 2)
	if s.FirstName != nil && *s.FirstName != "" {
		parts = append(parts, *s.FirstName)
	}
	if s.LastName != nil && *s.LastName != "" {
		parts = append(parts, *s.LastName)
	}
	return strings.Join(parts, " ")
}

// ParentContactNumber picks the first contact on record: guardian, then
// mother, then father.
func (s *StudentProfile) ParentContactNumber() string {
	for _, n := range []*string{s.GuardianContactNumber, s.MotherContactNumber, s.FatherContactNumber} {
		if n != nil && *n != "" {
			return *n
		}
	}
	return ""
}
