// Package service holds the course and tee time administration logic.
package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/Rrens/teetime/internal/domain"
)

// ContextInvalidator drops cached availability context after a write
type ContextInvalidator interface {
	Invalidate(ctx context.Context) error
}

// CourseService handles course operations
type CourseService struct {
	repo        domain.CourseRepository
	invalidator ContextInvalidator
}

// NewCourseService creates a new course service
func NewCourseService(repo domain.CourseRepository, invalidator ContextInvalidator) *CourseService {
	return &CourseService{repo: repo, invalidator: invalidator}
}

// List returns every course
func (s *CourseService) List(ctx context.Context) ([]domain.Course, error) {
	courses, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list courses: %w", err)
	}
	return courses, nil
}

// Get returns one course
func (s *CourseService) Get(ctx context.Context, id int64) (*domain.Course, error) {
	course, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get course: %w", err)
	}
	return course, nil
}

// Create validates and stores a new course
func (s *CourseService) Create(ctx context.Context, input domain.CourseInput) (*domain.Course, error) {
	if err := validateStruct(input); err != nil {
		return nil, err
	}

	course, err := s.repo.Create(ctx, &input)
	if err != nil {
		return nil, fmt.Errorf("failed to create course: %w", err)
	}

	invalidate(ctx, s.invalidator)
	log.Info().Int64("course_id", course.ID).Str("name", course.Name).Msg("Course created")
	return course, nil
}

// Update replaces a course's attributes
func (s *CourseService) Update(ctx context.Context, id int64, input domain.CourseInput) (*domain.Course, error) {
	if err := validateStruct(input); err != nil {
		return nil, err
	}

	course, err := s.repo.Update(ctx, id, &input)
	if err != nil {
		return nil, fmt.Errorf("failed to update course: %w", err)
	}

	invalidate(ctx, s.invalidator)
	return course, nil
}

// Delete removes a course with its tee times
func (s *CourseService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete course: %w", err)
	}

	invalidate(ctx, s.invalidator)
	log.Info().Int64("course_id", id).Msg("Course deleted")
	return nil
}

// invalidate never fails the write; a stale entry expires with its TTL
func invalidate(ctx context.Context, inv ContextInvalidator) {
	if inv == nil {
		return
	}
	if err := inv.Invalidate(ctx); err != nil {
		log.Warn().Err(err).Msg("Failed to invalidate availability context")
	}
}
