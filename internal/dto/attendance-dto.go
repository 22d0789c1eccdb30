package dto

import "time"

const (
	ScanModeTimeIn  = "time_in"
	ScanModeTimeOut = "time_out"
)

type ScanRequestDTO struct {
	RfidTag string `json:"rfid_tag" validate:"required"`
	Mode    string `json:"mode" validate:"required,oneof=time_in time_out"`
}

type ScanResultDTO struct {
	Success       bool        `json:"success"`
	Message       string      `json:"message"`
	DurationHours *float64    `json:"duration_hours,omitempty"`
	Student       *StudentDTO `json:"student,omitempty"`
}

type AttendanceDTO struct {
	ID                     string      `json:"id"`
	LearnerReferenceNumber *string     `json:"learner_reference_number"`
	SessionNumber          *int        `json:"session_number"`
	TimeIn                 *time.Time  `json:"time_in"`
	TimeOut                *time.Time  `json:"time_out"`
	GradeLevel             *string     `json:"grade_level"`
	RfidTag                *string     `json:"rfid_tag"`
	CreatedAt              *time.Time  `json:"created_at"`
	Student                *StudentDTO `json:"student_profile"`
}

type DashboardStatsDTO struct {
	TodayCount     int64           `json:"today_count"`
	AttendanceRate float64         `json:"attendance_rate"`
	WeeklySummary  []WeeklySummary `json:"weekly_summary"`
}

type WeeklySummary struct {
	Day   string `json:"day"`
	Count int64  `json:"count"`
}
