package domain

import (
	"context"
	"errors"
	"strings"
	"time"
)

// ErrNotFound is returned by repositories when a row does not exist
var ErrNotFound = errors.New("not found")

// Difficulty levels
const (
	DifficultyBeginner     = "beginner"
	DifficultyIntermediate = "intermediate"
	DifficultyAdvanced     = "advanced"
)

// Course represents a golf course that offers tee times
type Course struct {
	ID                  int64     `json:"id"`
	Name                string    `json:"name"`
	Description         string    `json:"description"`
	Holes               int       `json:"holes"`
	Location            string    `json:"location"`
	Facilities          []string  `json:"facilities"`
	DifficultyLevel     string    `json:"difficulty_level"`
	CaddieRequired      bool      `json:"caddie_required"`
	GolfCartAvailable   bool      `json:"golf_cart_available"`
	ClubRentalAvailable bool      `json:"club_rental_available"`
	CreatedAt           time.Time `json:"created_at"`
	UpdatedAt           time.Time `json:"updated_at"`
}

// CourseInput is the payload for creating or replacing a course
type CourseInput struct {
	Name                string   `json:"name" validate:"required,max=100"`
	Description         string   `json:"description" validate:"max=2000"`
	Holes               int      `json:"holes" validate:"required,oneof=9 18"`
	Location            string   `json:"location" validate:"max=255"`
	Facilities          []string `json:"facilities" validate:"dive,max=100"`
	DifficultyLevel     string   `json:"difficulty_level" validate:"required,oneof=beginner intermediate advanced"`
	CaddieRequired      bool     `json:"caddie_required"`
	GolfCartAvailable   bool     `json:"golf_cart_available"`
	ClubRentalAvailable bool     `json:"club_rental_available"`
}

// CourseRepository defines the interface for course storage
type CourseRepository interface {
	List(ctx context.Context) ([]Course, error)
	GetByID(ctx context.Context, id int64) (*Course, error)
	Create(ctx context.Context, input *CourseInput) (*Course, error)
	Update(ctx context.Context, id int64, input *CourseInput) (*Course, error)
	Delete(ctx context.Context, id int64) error
}

// JoinFacilities encodes a facility list for storage
func JoinFacilities(facilities []string) string {
	cleaned := make([]string, 0, len(facilities))
	for _, f := range facilities {
		if f = strings.TrimSpace(f); f != "" {
			cleaned = append(cleaned, f)
		}
	}
	return strings.Join(cleaned, ",")
}

// SplitFacilities decodes a stored comma-separated facility list
func SplitFacilities(raw string) []string {
	facilities := []string{}
	for _, f := range strings.Split(raw, ",") {
		if f = strings.TrimSpace(f); f != "" {
			facilities = append(facilities, f)
		}
	}
	return facilities
}
