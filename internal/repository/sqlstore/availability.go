package sqlstore

import (
	"context"
	"fmt"

	"github.com/Rrens/teetime/internal/domain"
)

// AvailabilityRepository aggregates open tee times per course
type AvailabilityRepository struct {
	db *DB
}

// NewAvailabilityRepository creates a new availability repository
func NewAvailabilityRepository(db *DB) *AvailabilityRepository {
	return &AvailabilityRepository{db: db}
}

// CourseAvailability returns every course with open slot counts for today and tomorrow
func (r *AvailabilityRepository) CourseAvailability(ctx context.Context, today, tomorrow string) ([]domain.CourseAvailability, error) {
	query := `
		SELECT c.id, c.name, c.location, c.holes, c.difficulty_level, c.facilities,
			c.caddie_required, c.golf_cart_available, c.club_rental_available,
			COALESCE(SUM(CASE WHEN t.tee_date = ? AND t.available = TRUE THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN t.tee_date = ? AND t.available = TRUE THEN 1 ELSE 0 END), 0)
		FROM courses c
		LEFT JOIN tee_times t ON t.course_id = c.id AND t.tee_date IN (?, ?)
		GROUP BY c.id
		ORDER BY c.name, c.id`

	rows, err := r.db.SQL.QueryContext(ctx, query, today, tomorrow, today, tomorrow)
	if err != nil {
		return nil, fmt.Errorf("failed to query course availability: %w", err)
	}
	defer rows.Close()

	result := []domain.CourseAvailability{}
	for rows.Next() {
		var a domain.CourseAvailability
		var facilities string

		if err := rows.Scan(
			&a.CourseID,
			&a.Name,
			&a.Location,
			&a.Holes,
			&a.DifficultyLevel,
			&facilities,
			&a.CaddieRequired,
			&a.GolfCartAvailable,
			&a.ClubRentalAvailable,
			&a.AvailableToday,
			&a.AvailableTomorrow,
		); err != nil {
			return nil, fmt.Errorf("failed to scan course availability: %w", err)
		}

		a.Facilities = domain.SplitFacilities(facilities)
		result = append(result, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	slots, err := r.openSlots(ctx, tomorrow)
	if err != nil {
		return nil, err
	}
	domain.AttachTomorrowTimes(result, slots)

	return result, nil
}

// DataVersion reads the counter that triggers bump on every course or tee time write
func (r *AvailabilityRepository) DataVersion(ctx context.Context) (int64, error) {
	var version int64
	if err := r.db.SQL.QueryRowContext(ctx, `SELECT version FROM data_version WHERE id = 1`).Scan(&version); err != nil {
		return 0, fmt.Errorf("failed to read data version: %w", err)
	}
	return version, nil
}

func (r *AvailabilityRepository) openSlots(ctx context.Context, date string) ([]domain.CourseSlot, error) {
	query := fmt.Sprintf(`
		SELECT course_id, %s
		FROM tee_times
		WHERE tee_date = ? AND available = TRUE
		ORDER BY course_id, tee_time`, r.db.dialect.ClockColumn("tee_time"))

	rows, err := r.db.SQL.QueryContext(ctx, query, date)
	if err != nil {
		return nil, fmt.Errorf("failed to query open slots: %w", err)
	}
	defer rows.Close()

	var slots []domain.CourseSlot
	for rows.Next() {
		var s domain.CourseSlot
		if err := rows.Scan(&s.CourseID, &s.Time); err != nil {
			return nil, fmt.Errorf("failed to scan open slot: %w", err)
		}
		slots = append(slots, s)
	}
	return slots, rows.Err()
}
