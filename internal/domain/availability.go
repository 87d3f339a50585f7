package domain

import (
	"context"

	"github.com/samber/lo"
)

// CourseAvailability is one course's booking outlook for today and tomorrow
type CourseAvailability struct {
	CourseID            int64
	Name                string
	Location            string
	Holes               int
	DifficultyLevel     string
	Facilities          []string
	CaddieRequired      bool
	GolfCartAvailable   bool
	ClubRentalAvailable bool
	AvailableToday      int
	AvailableTomorrow   int
	// TomorrowTimes holds tomorrow's open slots as HH:MM in ascending order
	TomorrowTimes []string
}

// AvailabilityRepository reads the aggregate availability used as conversation context
type AvailabilityRepository interface {
	CourseAvailability(ctx context.Context, today, tomorrow string) ([]CourseAvailability, error)
	// DataVersion grows on every write to courses or tee times, whichever client makes it
	DataVersion(ctx context.Context) (int64, error)
}

// CourseSlot is an open slot time for a course
type CourseSlot struct {
	CourseID int64
	Time     string
}

// AttachTomorrowTimes fills TomorrowTimes from slots, keeping slot order
func AttachTomorrowTimes(rows []CourseAvailability, slots []CourseSlot) {
	byCourse := lo.GroupBy(slots, func(s CourseSlot) int64 { return s.CourseID })
	for i := range rows {
		rows[i].TomorrowTimes = lo.Map(byCourse[rows[i].CourseID], func(s CourseSlot, _ int) string { return s.Time })
	}
}
