package domain

import "time"

// Job is a position posted by a manager. Jobs are never edited in place.
type Job struct {
	ID           int64     `json:"id"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	Requirements string    `json:"requirements"`
	ManagerID    int64     `json:"managerId"`
	CreatedAt    time.Time `json:"createdAt"`
}
