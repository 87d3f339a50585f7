package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Rrens/teetime/internal/domain"
)

func bulkRequest() domain.BulkTeeTimeRequest {
	return domain.BulkTeeTimeRequest{
		CourseID:   3,
		Date:       "2026-10-20",
		StartTime:  "07:00",
		EndTime:    "08:00",
		Interval:   30,
		MaxPlayers: 4,
	}
}

func TestGenerateSlots(t *testing.T) {
	slots, err := GenerateSlots(bulkRequest())
	require.NoError(t, err)

	times := make([]string, 0, len(slots))
	for _, s := range slots {
		times = append(times, s.Time)
		assert.Equal(t, int64(3), s.CourseID)
		assert.Equal(t, "2026-10-20", s.Date)
		assert.Equal(t, 4, s.MaxPlayers)
	}
	assert.Equal(t, []string{"07:00", "07:30", "08:00"}, times)
}

func TestGenerateSlots_EndNotOnInterval(t *testing.T) {
	req := bulkRequest()
	req.EndTime = "07:50"
	req.Interval = 20

	slots, err := GenerateSlots(req)
	require.NoError(t, err)
	require.Len(t, slots, 3)
	assert.Equal(t, "07:40", slots[2].Time)
}

func TestGenerateSlots_Invalid(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*domain.BulkTeeTimeRequest)
		field  string
	}{
		{"end before start", func(r *domain.BulkTeeTimeRequest) { r.EndTime = "06:00" }, "EndTime"},
		{"interval too short", func(r *domain.BulkTeeTimeRequest) { r.Interval = 2 }, "Interval"},
		{"too many players", func(r *domain.BulkTeeTimeRequest) { r.MaxPlayers = 5 }, "MaxPlayers"},
		{"bad date", func(r *domain.BulkTeeTimeRequest) { r.Date = "20/10/2026" }, "Date"},
		{"bad start", func(r *domain.BulkTeeTimeRequest) { r.StartTime = "7am" }, "StartTime"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := bulkRequest()
			tt.modify(&req)

			_, err := GenerateSlots(req)

			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Contains(t, verr.Fields, tt.field)
		})
	}
}

func TestTeeTimeService_BulkCreate(t *testing.T) {
	ctx := context.Background()

	t.Run("creates slots for an existing course", func(t *testing.T) {
		repo := new(MockTeeTimeRepository)
		courses := new(MockCourseRepository)
		inv := new(MockInvalidator)
		svc := NewTeeTimeService(repo, courses, inv)

		courses.On("GetByID", ctx, int64(3)).Return(&domain.Course{ID: 3}, nil)
		repo.On("CreateSlots", ctx, mock.MatchedBy(func(slots []domain.TeeTimeSlot) bool {
			return len(slots) == 3
		})).Return(3, nil)
		inv.On("Invalidate", ctx).Return(nil)

		created, err := svc.BulkCreate(ctx, bulkRequest())
		require.NoError(t, err)
		assert.Equal(t, 3, created)

		repo.AssertExpectations(t)
		inv.AssertExpectations(t)
	})

	t.Run("rerun creates nothing and keeps the cache", func(t *testing.T) {
		repo := new(MockTeeTimeRepository)
		courses := new(MockCourseRepository)
		inv := new(MockInvalidator)
		svc := NewTeeTimeService(repo, courses, inv)

		courses.On("GetByID", ctx, int64(3)).Return(&domain.Course{ID: 3}, nil)
		repo.On("CreateSlots", ctx, mock.Anything).Return(0, nil)

		created, err := svc.BulkCreate(ctx, bulkRequest())
		require.NoError(t, err)
		assert.Zero(t, created)
		inv.AssertNotCalled(t, "Invalidate", mock.Anything)
	})

	t.Run("unknown course", func(t *testing.T) {
		repo := new(MockTeeTimeRepository)
		courses := new(MockCourseRepository)
		svc := NewTeeTimeService(repo, courses, nil)

		courses.On("GetByID", ctx, int64(3)).Return(nil, domain.ErrNotFound)

		_, err := svc.BulkCreate(ctx, bulkRequest())
		assert.ErrorIs(t, err, domain.ErrNotFound)
		repo.AssertNotCalled(t, "CreateSlots", mock.Anything, mock.Anything)
	})
}

func TestTeeTimeService_ListRejectsBadDate(t *testing.T) {
	repo := new(MockTeeTimeRepository)
	svc := NewTeeTimeService(repo, new(MockCourseRepository), nil)

	_, err := svc.List(context.Background(), domain.TeeTimeFilter{Date: "tomorrow"})

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	repo.AssertNotCalled(t, "List", mock.Anything, mock.Anything)
}

func TestTeeTimeService_DeleteAll(t *testing.T) {
	ctx := context.Background()
	repo := new(MockTeeTimeRepository)
	inv := new(MockInvalidator)
	svc := NewTeeTimeService(repo, new(MockCourseRepository), inv)

	repo.On("DeleteAll", ctx).Return(int64(12), nil)
	inv.On("Invalidate", ctx).Return(nil)

	deleted, err := svc.DeleteAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(12), deleted)
	inv.AssertExpectations(t)
}
