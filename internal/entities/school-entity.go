package entities

import "time"

type School struct {
	SchoolID   int64
	SchoolName *string
	Head       *string
	Position   *string
	Address    *string
	CreatedAt  *time.Time
}
