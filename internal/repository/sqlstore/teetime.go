package sqlstore

import (
	"context"
	"fmt"
	"strings"

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
	d := r.db.dialect

	var conditions []string
	var args []any
	if filter.CourseID > 0 {
		conditions = append(conditions, "t.course_id = ?")
		args = append(args, filter.CourseID)
	}
	if filter.Date != "" {
		conditions = append(conditions, "t.tee_date = ?")
		args = append(args, filter.Date)
	}

	query := fmt.Sprintf(`
		SELECT t.id, t.course_id, c.name, %s, %s,
			t.max_players, t.available, t.special_notes, t.created_at
		FROM tee_times t
		INNER JOIN courses c ON c.id = t.course_id`, d.DateColumn("t.tee_date"), d.ClockColumn("t.tee_time"))
	if len(conditions) > 0 {
		query += "\n\t\tWHERE " + strings.Join(conditions, " AND ")
	}
	query += "\n\t\tORDER BY t.tee_date, t.tee_time, c.name"

	rows, err := r.db.SQL.QueryContext(ctx, query, args...)
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

	tx, err := r.db.SQL.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, r.db.dialect.InsertIgnore+` tee_times
		(course_id, tee_date, tee_time, max_players, available, special_notes)
		VALUES (?, ?, ?, ?, TRUE, ?)`)
	if err != nil {
		return 0, fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	created := 0
	for _, s := range slots {
		res, err := stmt.ExecContext(ctx, s.CourseID, s.Date, s.Time, s.MaxPlayers, s.SpecialNotes)
		if err != nil {
			return 0, fmt.Errorf("failed to insert tee time: %w", err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return 0, fmt.Errorf("failed to read affected rows: %w", err)
		}
		created += int(n)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit tee times: %w", err)
	}
	return created, nil
}

// Delete removes one tee time
func (r *TeeTimeRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.SQL.ExecContext(ctx, `DELETE FROM tee_times WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete tee time: %w", err)
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

// DeleteAll removes every tee time and returns how many were deleted
func (r *TeeTimeRepository) DeleteAll(ctx context.Context) (int64, error) {
	res, err := r.db.SQL.ExecContext(ctx, `DELETE FROM tee_times`)
	if err != nil {
		return 0, fmt.Errorf("failed to delete tee times: %w", err)
	}
	return res.RowsAffected()
}
