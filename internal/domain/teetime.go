package domain

import (
	"context"
	"time"
)

// Date and clock layouts used on the wire and in storage
const (
	DateLayout  = "2006-01-02"
	ClockLayout = "15:04"
)

// TeeTime is a bookable starting slot on a course
type TeeTime struct {
	ID           int64     `json:"id"`
	CourseID     int64     `json:"course_id"`
	CourseName   string    `json:"course_name,omitempty"`
	Date         string    `json:"date"`
	Time         string    `json:"time"`
	MaxPlayers   int       `json:"max_players"`
	Available    bool      `json:"available"`
	SpecialNotes string    `json:"special_notes"`
	CreatedAt    time.Time `json:"created_at"`
}

// TeeTimeFilter narrows a tee time listing; zero values match everything
type TeeTimeFilter struct {
	CourseID int64
	Date     string
}

// BulkTeeTimeRequest describes a day of slots to generate for a course
type BulkTeeTimeRequest struct {
	CourseID     int64  `json:"course_id" validate:"required,min=1"`
	Date         string `json:"date" validate:"required,datetime=2006-01-02"`
	StartTime    string `json:"start_time" validate:"required,datetime=15:04"`
	EndTime      string `json:"end_time" validate:"required,datetime=15:04"`
	Interval     int    `json:"interval" validate:"required,min=5,max=60"`
	MaxPlayers   int    `json:"max_players" validate:"required,min=1,max=4"`
	SpecialNotes string `json:"special_notes" validate:"max=500"`
}

// TeeTimeSlot is a single slot to insert
type TeeTimeSlot struct {
	CourseID     int64
	Date         string
	Time         string
	MaxPlayers   int
	SpecialNotes string
}

// TeeTimeRepository defines the interface for tee time storage
type TeeTimeRepository interface {
	List(ctx context.Context, filter TeeTimeFilter) ([]TeeTime, error)
	// CreateSlots inserts slots, skipping ones that already exist, and returns how many were inserted
	CreateSlots(ctx context.Context, slots []TeeTimeSlot) (int, error)
	Delete(ctx context.Context, id int64) error
	DeleteAll(ctx context.Context) (int64, error)
}
