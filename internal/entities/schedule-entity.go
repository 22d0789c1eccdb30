package entities

import (
	"time"

	"github.com/google/uuid"
)

// ScanSchedule is one scanning window. TimeIn/TimeOut are normalized
// HH:mm:ss strings; non-overlap across sessions is enforced by a database
// trigger, not here.
type ScanSchedule struct {
	ID        uuid.UUID
	Name      string
	TimeIn    string
	TimeOut   string
	CreatedAt *time.Time
}
