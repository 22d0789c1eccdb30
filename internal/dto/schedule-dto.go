package dto

import "time"

type CreateScheduleDTO struct {
	Name    string `json:"name" validate:"required,max=100"`
	TimeIn  string `json:"time_in" validate:"required"`
	TimeOut string `json:"time_out" validate:"required"`
}

type UpdateScheduleDTO struct {
	Name    *string `json:"name" validate:"omitempty,max=100"`
	TimeIn  *string `json:"time_in"`
	TimeOut *string `json:"time_out"`
}

type ScheduleDTO struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	TimeIn    string     `json:"time_in"`
	TimeOut   string     `json:"time_out"`
	CreatedAt *time.Time `json:"created_at"`
}
