package postgres_test

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Rrens/teetime/internal/domain"
	"github.com/Rrens/teetime/internal/repository/postgres"
	"github.com/Rrens/teetime/migrations"
)

// TEETIME_TEST_POSTGRES_DSN points at a disposable database; its tables are truncated
const dsnEnv = "TEETIME_TEST_POSTGRES_DSN"

func openTestDB(t *testing.T) *postgres.DB {
	t.Helper()

	dsn := os.Getenv(dsnEnv)
	if dsn == "" {
		t.Skipf("Requires a PostgreSQL database - set %s to run", dsnEnv)
	}

	src, err := iofs.New(migrations.FS, "postgres")
	require.NoError(t, err)
	m, err := migrate.NewWithSourceInstance("iofs", src, dsn)
	require.NoError(t, err)
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		t.Fatalf("failed to migrate: %v", err)
	}
	m.Close()

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, dsn)
	require.NoError(t, err)
	db := &postgres.DB{Pool: pool}
	t.Cleanup(func() { db.Close() })

	_, err = pool.Exec(ctx, `TRUNCATE tee_times, courses RESTART IDENTITY CASCADE`)
	require.NoError(t, err)

	return db
}

func sampleCourse(name string) *domain.CourseInput {
	return &domain.CourseInput{
		Name:              name,
		Description:       "Championship layout",
		Holes:             18,
		Location:          "Chiang Mai",
		Facilities:        []string{"Driving range", "Pro shop"},
		DifficultyLevel:   domain.DifficultyIntermediate,
		GolfCartAvailable: true,
	}
}

func TestCourseRepository_CRUD(t *testing.T) {
	db := openTestDB(t)
	repo := postgres.NewCourseRepository(db)
	ctx := context.Background()

	created, err := repo.Create(ctx, sampleCourse("Royal Links"))
	require.NoError(t, err)
	assert.NotZero(t, created.ID)
	assert.Equal(t, []string{"Driving range", "Pro shop"}, created.Facilities)

	input := sampleCourse("Royal Links East")
	input.Holes = 9
	input.Facilities = nil
	updated, err := repo.Update(ctx, created.ID, input)
	require.NoError(t, err)
	assert.Equal(t, "Royal Links East", updated.Name)
	assert.Equal(t, 9, updated.Holes)
	assert.Empty(t, updated.Facilities)

	_, err = repo.Update(ctx, created.ID+100, input)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	require.NoError(t, repo.Delete(ctx, created.ID))
	_, err = repo.GetByID(ctx, created.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, created.ID), domain.ErrNotFound)
}

func TestTeeTimeRepository_CreateSlotsSkipsDuplicates(t *testing.T) {
	db := openTestDB(t)
	courses := postgres.NewCourseRepository(db)
	teeTimes := postgres.NewTeeTimeRepository(db)
	ctx := context.Background()

	course, err := courses.Create(ctx, sampleCourse("Royal Links"))
	require.NoError(t, err)

	slots := []domain.TeeTimeSlot{
		{CourseID: course.ID, Date: "2026-10-20", Time: "07:00", MaxPlayers: 4},
		{CourseID: course.ID, Date: "2026-10-20", Time: "07:30", MaxPlayers: 4},
		{CourseID: course.ID, Date: "2026-10-20", Time: "08:00", MaxPlayers: 4, SpecialNotes: "Shotgun start"},
	}

	n, err := teeTimes.CreateSlots(ctx, slots)
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	n, err = teeTimes.CreateSlots(ctx, slots)
	require.NoError(t, err)
	assert.Equal(t, 0, n)

	list, err := teeTimes.List(ctx, domain.TeeTimeFilter{CourseID: course.ID})
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "07:00", list[0].Time)
	assert.Equal(t, "2026-10-20", list[0].Date)
	assert.Equal(t, "Royal Links", list[0].CourseName)
	assert.Equal(t, "Shotgun start", list[2].SpecialNotes)
}

func TestTeeTimeRepository_CreateSlotsRollsBackOnError(t *testing.T) {
	db := openTestDB(t)
	courses := postgres.NewCourseRepository(db)
	teeTimes := postgres.NewTeeTimeRepository(db)
	ctx := context.Background()

	course, err := courses.Create(ctx, sampleCourse("Royal Links"))
	require.NoError(t, err)

	// the second slot breaks the max_players check
	_, err = teeTimes.CreateSlots(ctx, []domain.TeeTimeSlot{
		{CourseID: course.ID, Date: "2026-10-20", Time: "07:00", MaxPlayers: 4},
		{CourseID: course.ID, Date: "2026-10-20", Time: "07:30", MaxPlayers: 9},
	})
	require.Error(t, err)

	list, err := teeTimes.List(ctx, domain.TeeTimeFilter{CourseID: course.ID})
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestTeeTimeRepository_ListFilterAndDelete(t *testing.T) {
	db := openTestDB(t)
	courses := postgres.NewCourseRepository(db)
	teeTimes := postgres.NewTeeTimeRepository(db)
	ctx := context.Background()

	a, err := courses.Create(ctx, sampleCourse("Alpha"))
	require.NoError(t, err)
	b, err := courses.Create(ctx, sampleCourse("Bravo"))
	require.NoError(t, err)

	_, err = teeTimes.CreateSlots(ctx, []domain.TeeTimeSlot{
		{CourseID: a.ID, Date: "2026-10-20", Time: "07:00", MaxPlayers: 4},
		{CourseID: b.ID, Date: "2026-10-20", Time: "07:00", MaxPlayers: 2},
		{CourseID: b.ID, Date: "2026-10-21", Time: "09:10", MaxPlayers: 2},
	})
	require.NoError(t, err)

	byDate, err := teeTimes.List(ctx, domain.TeeTimeFilter{Date: "2026-10-20"})
	require.NoError(t, err)
	require.Len(t, byDate, 2)
	assert.Equal(t, "Alpha", byDate[0].CourseName)

	both, err := teeTimes.List(ctx, domain.TeeTimeFilter{CourseID: b.ID, Date: "2026-10-21"})
	require.NoError(t, err)
	require.Len(t, both, 1)
	assert.Equal(t, "09:10", both[0].Time)

	require.NoError(t, teeTimes.Delete(ctx, both[0].ID))
	assert.ErrorIs(t, teeTimes.Delete(ctx, both[0].ID), domain.ErrNotFound)

	require.NoError(t, courses.Delete(ctx, a.ID))

	deleted, err := teeTimes.DeleteAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)
}

func TestAvailabilityRepository_CourseAvailability(t *testing.T) {
	db := openTestDB(t)
	courses := postgres.NewCourseRepository(db)
	teeTimes := postgres.NewTeeTimeRepository(db)
	availability := postgres.NewAvailabilityRepository(db)
	ctx := context.Background()

	busy, err := courses.Create(ctx, sampleCourse("Alpha"))
	require.NoError(t, err)
	_, err = courses.Create(ctx, sampleCourse("Bravo"))
	require.NoError(t, err)

	_, err = teeTimes.CreateSlots(ctx, []domain.TeeTimeSlot{
		{CourseID: busy.ID, Date: "2026-10-19", Time: "15:00", MaxPlayers: 4},
		{CourseID: busy.ID, Date: "2026-10-20", Time: "08:30", MaxPlayers: 4},
		{CourseID: busy.ID, Date: "2026-10-20", Time: "07:00", MaxPlayers: 4},
		{CourseID: busy.ID, Date: "2026-10-22", Time: "07:00", MaxPlayers: 4},
	})
	require.NoError(t, err)

	rows, err := availability.CourseAvailability(ctx, "2026-10-19", "2026-10-20")
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, "Alpha", rows[0].Name)
	assert.Equal(t, 1, rows[0].AvailableToday)
	assert.Equal(t, 2, rows[0].AvailableTomorrow)
	assert.Equal(t, []string{"07:00", "08:30"}, rows[0].TomorrowTimes)

	assert.Equal(t, "Bravo", rows[1].Name)
	assert.Zero(t, rows[1].AvailableTomorrow)
	assert.Empty(t, rows[1].TomorrowTimes)
}

func TestAvailabilityRepository_DataVersionTracksWrites(t *testing.T) {
	db := openTestDB(t)
	courses := postgres.NewCourseRepository(db)
	availability := postgres.NewAvailabilityRepository(db)
	ctx := context.Background()

	before, err := availability.DataVersion(ctx)
	require.NoError(t, err)

	course, err := courses.Create(ctx, sampleCourse("Alpha"))
	require.NoError(t, err)

	// a booking written by another client
	_, err = db.Pool.Exec(ctx,
		`INSERT INTO tee_times (course_id, tee_date, tee_time, available) VALUES ($1, '2026-10-20', '07:00', FALSE)`,
		course.ID)
	require.NoError(t, err)

	after, err := availability.DataVersion(ctx)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, after, before+2)
}

func TestDB_InTxRollsBack(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	err := db.InTx(ctx, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `INSERT INTO courses (name) VALUES ('Ghost')`); err != nil {
			return err
		}
		return errors.New("abort")
	})
	assert.EqualError(t, err, "abort")

	var count int
	require.NoError(t, db.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM courses`).Scan(&count))
	assert.Zero(t, count)
}
