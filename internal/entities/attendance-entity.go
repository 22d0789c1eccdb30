package entities

import (
	"time"

	"github.com/google/uuid"
)

type Attendance struct {
	ID                     uuid.UUID
	LearnerReferenceNumber *string
	SessionNumber          *int
	TimeIn                 *time.Time
	TimeOut                *time.Time
	GradeLevel             *string
	RfidTag                *string
	CreatedAt              *time.Time

	Student *StudentProfile
}

// ScanOutcome is what the record_time_in / record_time_out database
// procedures report back. DurationHours is set only by time-out.
type ScanOutcome struct {
	Success       bool
	Message       string
	DurationHours *float64
}

type DailyCount struct {
	Day   time.Time
	Count int64
}
