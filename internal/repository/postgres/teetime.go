package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/Rrens/teetime/internal/domain"
)

// TeeTimeRepository handles tee time data access
type TeeTimeRepository struct {
	db *DB
}

// NewTeeTimeRepository creates a new tee time repository
func NewTeeTimeRepository(db *DB) *TeeTimeRepository {
	return &TeeTimeRepository{db: db}
}

// List returns tee times matching filter ordered by date, time and course
func (r *TeeTimeRepository) List(ctx context.Context, filter domain.TeeTimeFilter) ([]domain.TeeTime, error) {
	var conditions []string
	var args []any

	if filter.CourseID > 0 {
		args = append(args, filter.CourseID)
		conditions = append(conditions, fmt.Sprintf("t.course_id = $%d", len(args)))
	}
	if filter.Date != "" {
		args = append(args, filter.Date)
		conditions = append(conditions, fmt.Sprintf("t.tee_date = $%d", len(args)))
	}

	query := `
		SELECT t.id, t.course_id, c.name, to_char(t.tee_date, 'YYYY-MM-DD'), to_char(t.tee_time, 'HH24:MI'),
			t.max_players, t.available, t.special_notes, t.created_at
		FROM tee_times t
		INNER JOIN courses c ON c.id = t.course_id`
	if len(conditions) > 0 {
		query += "\n\t\tWHERE " + strings.Join(conditions, " AND ")
	}
	query += "\n\t\tORDER BY t.tee_date, t.tee_time, c.name"

	rows, err := r.db.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list tee times: %w", err)
	}
	defer rows.Close()

	teeTimes := []domain.TeeTime{}
	for rows.Next() {
		var tt domain.TeeTime
		if err := rows.Scan(
			&tt.ID,
			&tt.CourseID,
			&tt.CourseName,
			&tt.Date,
			&tt.Time,
			&tt.MaxPlayers,
			&tt.Available,
			&tt.SpecialNotes,
			&tt.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan tee time: %w", err)
		}
		teeTimes = append(teeTimes, tt)
	}

	return teeTimes, rows.Err()
}

// CreateSlots inserts slots in one transaction, skipping existing ones
func (r *TeeTimeRepository) CreateSlots(ctx context.Context, slots []domain.TeeTimeSlot) (int, error) {
	if len(slots) == 0 {
		return 0, nil
	}

	query := `
		INSERT INTO tee_times (course_id, tee_date, tee_time, max_players, available, special_notes)
		VALUES ($1, $2, $3, $4, TRUE, $5)
		ON CONFLICT (course_id, tee_date, tee_time) DO NOTHING`

	batch := &pgx.Batch{}
	for _, s := range slots {
		batch.Queue(query, s.CourseID, s.Date, s.Time, s.MaxPlayers, s.SpecialNotes)
	}

	created := 0
	err := r.db.InTx(ctx, func(tx pgx.Tx) error {
		results := tx.SendBatch(ctx, batch)
		defer results.Close()

		for range slots {
			tag, err := results.Exec()
			if err != nil {
				return fmt.Errorf("failed to insert tee time: %w", err)
			}
			created += int(tag.RowsAffected())
		}
		return results.Close()
	})
	if err != nil {
		return 0, err
	}
	return created, nil
}

// Delete removes one tee time
func (r *TeeTimeRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Pool.Exec(ctx, `DELETE FROM tee_times WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete tee time: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// DeleteAll removes every tee time and returns how many were deleted
func (r *TeeTimeRepository) DeleteAll(ctx context.Context) (int64, error) {
	tag, err := r.db.Pool.Exec(ctx, `DELETE FROM tee_times`)
	if err != nil {
		return 0, fmt.Errorf("failed to delete tee times: %w", err)
	}
	return tag.RowsAffected(), nil
}
