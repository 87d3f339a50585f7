package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Rrens/teetime/internal/domain"
)

const courseColumns = `id, name, description, holes, location, facilities, difficulty_level,
	caddie_required, golf_cart_available, club_rental_available, created_at, updated_at`

// CourseRepository handles course data access
type CourseRepository struct {
	db *DB
}

// NewCourseRepository creates a new course repository
func NewCourseRepository(db *DB) *CourseRepository {
	return &CourseRepository{db: db}
}

// List returns every course ordered by name
func (r *CourseRepository) List(ctx context.Context) ([]domain.Course, error) {
	rows, err := r.db.SQL.QueryContext(ctx, `SELECT `+courseColumns+` FROM courses ORDER BY name, id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list courses: %w", err)
	}
	defer rows.Close()

	courses := []domain.Course{}
	for rows.Next() {
		course, err := scanCourse(rows)
		if err != nil {
			return nil, err
		}
		courses = append(courses, *course)
	}

	return courses, rows.Err()
}

// GetByID retrieves a course by ID
func (r *CourseRepository) GetByID(ctx context.Context, id int64) (*domain.Course, error) {
	row := r.db.SQL.QueryRowContext(ctx, `SELECT `+courseColumns+` FROM courses WHERE id = ?`, id)

	course, err := scanCourse(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return course, nil
}

// Create inserts a new course
func (r *CourseRepository) Create(ctx context.Context, input *domain.CourseInput) (*domain.Course, error) {
	query := `
		INSERT INTO courses (name, description, holes, location, facilities, difficulty_level,
			caddie_required, golf_cart_available, club_rental_available)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`

	res, err := r.db.SQL.ExecContext(ctx, query,
		input.Name,
		input.Description,
		input.Holes,
		input.Location,
		domain.JoinFacilities(input.Facilities),
		input.DifficultyLevel,
		input.CaddieRequired,
		input.GolfCartAvailable,
		input.ClubRentalAvailable,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create course: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to read course id: %w", err)
	}
	return r.GetByID(ctx, id)
}

// Update replaces a course's attributes
func (r *CourseRepository) Update(ctx context.Context, id int64, input *domain.CourseInput) (*domain.Course, error) {
	query := `
		UPDATE courses SET
			name = ?, description = ?, holes = ?, location = ?, facilities = ?,
			difficulty_level = ?, caddie_required = ?, golf_cart_available = ?,
			club_rental_available = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?`

	// MySQL reports zero affected rows for a no-op update, so existence is checked by the read below
	if _, err := r.db.SQL.ExecContext(ctx, query,
		input.Name,
		input.Description,
		input.Holes,
		input.Location,
		domain.JoinFacilities(input.Facilities),
		input.DifficultyLevel,
		input.CaddieRequired,
		input.GolfCartAvailable,
		input.ClubRentalAvailable,
		id,
	); err != nil {
		return nil, fmt.Errorf("failed to update course: %w", err)
	}

	return r.GetByID(ctx, id)
}

// Delete removes a course and, by cascade, its tee times
func (r *CourseRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.SQL.ExecContext(ctx, `DELETE FROM courses WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete course: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanCourse(row scanner) (*domain.Course, error) {
	var course domain.Course
	var facilities string

	err := row.Scan(
		&course.ID,
		&course.Name,
		&course.Description,
		&course.Holes,
		&course.Location,
		&facilities,
		&course.DifficultyLevel,
		&course.CaddieRequired,
		&course.GolfCartAvailable,
		&course.ClubRentalAvailable,
		&course.CreatedAt,
		&course.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan course: %w", err)
	}

	course.Facilities = domain.SplitFacilities(facilities)
	return &course, nil
}
