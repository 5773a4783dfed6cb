package employee

import "time"

type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
)

type Employee struct {
	ID         string
	UserID     string
	Code       string
	Name       string
	Email      string
	Mobile     *string
	Position   *string
	Department *string
	Status     Status
	JoinDate   *time.Time
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
