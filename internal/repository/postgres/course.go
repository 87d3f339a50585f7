package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

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
	rows, err := r.db.Pool.Query(ctx, `SELECT `+courseColumns+` FROM courses ORDER BY name, id`)
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
	row := r.db.Pool.QueryRow(ctx, `SELECT `+courseColumns+` FROM courses WHERE id = $1`, id)

	course, err := scanCourse(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
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
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING ` + courseColumns

	row := r.db.Pool.QueryRow(ctx, query,
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

	course, err := scanCourse(row)
	if err != nil {
		return nil, fmt.Errorf("failed to create course: %w", err)
	}
	return course, nil
}

// Update replaces a course's attributes
func (r *CourseRepository) Update(ctx context.Context, id int64, input *domain.CourseInput) (*domain.Course, error) {
	query := `
		UPDATE courses SET
			name = $1, description = $2, holes = $3, location = $4, facilities = $5,
			difficulty_level = $6, caddie_required = $7, golf_cart_available = $8,
			club_rental_available = $9, updated_at = NOW()
		WHERE id = $10
		RETURNING ` + courseColumns

	row := r.db.Pool.QueryRow(ctx, query,
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
	)

	course, err := scanCourse(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("failed to update course: %w", err)
	}
	return course, nil
}

// Delete removes a course and, by cascade, its tee times
func (r *CourseRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Pool.Exec(ctx, `DELETE FROM courses WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete course: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanCourse(row pgx.Row) (*domain.Course, error) {
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
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan course: %w", err)
	}

	course.Facilities = domain.SplitFacilities(facilities)
	return &course, nil
}
