package availability

import (
	"fmt"
	"strings"
	"time"

	"github.com/samber/lo"

	"github.com/Rrens/teetime/internal/domain"
)

const (
	noTimes           = "No times available"
	basicFacilities   = "Basic facilities available"
	courseSeparator   = "\n-------------------------\n"
	displayClock      = "03:04 PM"
	noCoursesSnapshot = "No golf courses are currently listed. Let the player know availability will be published soon."
)

const bookingInformation = `BOOKING INFORMATION:
- Players per booking: 1-4 players
- Booking statuses: Confirmed, Cancelled, Completed
- Required information: number of players, preferred time, service requests
- Optional services: caddie service, golf cart, equipment rental

BOOKING GUIDELINES:
1. Match the course to the player's skill level, preferred number of holes, required services and location.
2. Check available tee times, group size (1-4 players) and any special requests before suggesting a slot.`

// Render turns availability rows into the text block given to the assistant
func Render(rows []domain.CourseAvailability) string {
	var sb strings.Builder

	sb.WriteString("CURRENT GOLF COURSE STATUS:\n")
	if len(rows) == 0 {
		sb.WriteString(noCoursesSnapshot)
		sb.WriteString("\n")
	} else {
		sb.WriteString(strings.Join(lo.Map(rows, func(row domain.CourseAvailability, _ int) string {
			return renderCourse(row)
		}), courseSeparator))
	}

	sb.WriteString("\n")
	sb.WriteString(bookingInformation)
	sb.WriteString("\n")
	return sb.String()
}

func renderCourse(row domain.CourseAvailability) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "\nCOURSE: %s\n", row.Name)
	fmt.Fprintf(&sb, "- Location: %s\n", lo.Ternary(row.Location == "", "Not listed", row.Location))
	fmt.Fprintf(&sb, "- Course Type: %d-hole course\n", row.Holes)
	fmt.Fprintf(&sb, "- Difficulty Level: %s\n", row.DifficultyLevel)
	fmt.Fprintf(&sb, "- Caddie: %s\n", lo.Ternary(row.CaddieRequired, "Required", "Optional"))
	fmt.Fprintf(&sb, "- Golf Cart: %s\n", lo.Ternary(row.GolfCartAvailable, "Available", "Not available"))
	fmt.Fprintf(&sb, "- Club Rental: %s\n", lo.Ternary(row.ClubRentalAvailable, "Available", "Not available"))

	sb.WriteString("\nAvailable Tee Times:\n")
	fmt.Fprintf(&sb, "- Today: %d slots\n", row.AvailableToday)
	fmt.Fprintf(&sb, "- Tomorrow: %d slots\n", row.AvailableTomorrow)

	sb.WriteString("\nTomorrow's Available Times:\n")
	sb.WriteString(renderTimes(row.TomorrowTimes))
	sb.WriteString("\n")

	sb.WriteString("\nCourse Features:\n")
	facilities := row.Facilities
	if len(facilities) == 0 {
		facilities = []string{basicFacilities}
	}
	for _, f := range facilities {
		fmt.Fprintf(&sb, "- %s\n", f)
	}

	return sb.String()
}

func renderTimes(times []string) string {
	if len(times) == 0 {
		return noTimes
	}
	return strings.Join(lo.Map(times, func(t string, _ int) string {
		return displayTime(t)
	}), ", ")
}

// displayTime converts HH:MM or HH:MM:SS to a 12-hour clock, leaving unknown formats as is
func displayTime(clock string) string {
	for _, layout := range []string{domain.ClockLayout, "15:04:05"} {
		if t, err := time.Parse(layout, clock); err == nil {
			return t.Format(displayClock)
		}
	}
	return clock
}
