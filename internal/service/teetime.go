package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/samber/lo"

	"github.com/Rrens/teetime/internal/domain"
)

// TeeTimeService handles tee time administration
type TeeTimeService struct {
	repo        domain.TeeTimeRepository
	courses     domain.CourseRepository
	invalidator ContextInvalidator
}

// NewTeeTimeService creates a new tee time service
func NewTeeTimeService(repo domain.TeeTimeRepository, courses domain.CourseRepository, invalidator ContextInvalidator) *TeeTimeService {
	return &TeeTimeService{
		repo:        repo,
		courses:     courses,
		invalidator: invalidator,
	}
}

// List returns tee times filtered by course and/or date
func (s *TeeTimeService) List(ctx context.Context, filter domain.TeeTimeFilter) ([]domain.TeeTime, error) {
	if filter.Date != "" {
		if _, err := time.Parse(domain.DateLayout, filter.Date); err != nil {
			return nil, fieldError("date", "must match layout "+domain.DateLayout)
		}
	}

	teeTimes, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list tee times: %w", err)
	}
	return teeTimes, nil
}

// BulkCreate generates a day of slots for a course and returns how many were new
func (s *TeeTimeService) BulkCreate(ctx context.Context, req domain.BulkTeeTimeRequest) (int, error) {
	slots, err := GenerateSlots(req)
	if err != nil {
		return 0, err
	}

	if _, err := s.courses.GetByID(ctx, req.CourseID); err != nil {
		return 0, fmt.Errorf("failed to get course: %w", err)
	}

	created, err := s.repo.CreateSlots(ctx, slots)
	if err != nil {
		return 0, fmt.Errorf("failed to create tee times: %w", err)
	}

	if created > 0 {
		invalidate(ctx, s.invalidator)
	}

	log.Info().
		Int64("course_id", req.CourseID).
		Str("date", req.Date).
		Int("requested", len(slots)).
		Int("created", created).
		Msg("Tee times generated")

	return created, nil
}

// Delete removes one tee time
func (s *TeeTimeService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete tee time: %w", err)
	}

	invalidate(ctx, s.invalidator)
	return nil
}

// DeleteAll removes every tee time
func (s *TeeTimeService) DeleteAll(ctx context.Context) (int64, error) {
	deleted, err := s.repo.DeleteAll(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to delete tee times: %w", err)
	}

	invalidate(ctx, s.invalidator)
	log.Warn().Int64("deleted", deleted).Msg("All tee times deleted")
	return deleted, nil
}

// GenerateSlots expands a bulk request into slots from start to end inclusive
func GenerateSlots(req domain.BulkTeeTimeRequest) ([]domain.TeeTimeSlot, error) {
	if err := validateStruct(req); err != nil {
		return nil, err
	}

	start, err := time.Parse(domain.ClockLayout, req.StartTime)
	if err != nil {
		return nil, fieldError("StartTime", "must match layout "+domain.ClockLayout)
	}
	end, err := time.Parse(domain.ClockLayout, req.EndTime)
	if err != nil {
		return nil, fieldError("EndTime", "must match layout "+domain.ClockLayout)
	}
	if end.Before(start) {
		return nil, fieldError("EndTime", "must not be before start_time")
	}

	step := time.Duration(req.Interval) * time.Minute
	count := int(end.Sub(start)/step) + 1

	return lo.Times(count, func(i int) domain.TeeTimeSlot {
		return domain.TeeTimeSlot{
			CourseID:     req.CourseID,
			Date:         req.Date,
			Time:         start.Add(time.Duration(i) * step).Format(domain.ClockLayout),
			MaxPlayers:   req.MaxPlayers,
			SpecialNotes: req.SpecialNotes,
		}
	}), nil
}
