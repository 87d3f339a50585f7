package service

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/Rrens/teetime/internal/domain"
)

// MockCourseRepository mocks the CourseRepository interface
type MockCourseRepository struct {
	mock.Mock
}

func (m *MockCourseRepository) List(ctx context.Context) ([]domain.Course, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Course), args.Error(1)
}

func (m *MockCourseRepository) GetByID(ctx context.Context, id int64) (*domain.Course, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Course), args.Error(1)
}

func (m *MockCourseRepository) Create(ctx context.Context, input *domain.CourseInput) (*domain.Course, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Course), args.Error(1)
}

func (m *MockCourseRepository) Update(ctx context.Context, id int64, input *domain.CourseInput) (*domain.Course, error) {
	args := m.Called(ctx, id, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Course), args.Error(1)
}

func (m *MockCourseRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockTeeTimeRepository mocks the TeeTimeRepository interface
type MockTeeTimeRepository struct {
	mock.Mock
}

func (m *MockTeeTimeRepository) List(ctx context.Context, filter domain.TeeTimeFilter) ([]domain.TeeTime, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]domain.TeeTime), args.Error(1)
}

func (m *MockTeeTimeRepository) CreateSlots(ctx context.Context, slots []domain.TeeTimeSlot) (int, error) {
	args := m.Called(ctx, slots)
	return args.Int(0), args.Error(1)
}

func (m *MockTeeTimeRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockTeeTimeRepository) DeleteAll(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

// MockInvalidator mocks the ContextInvalidator interface
type MockInvalidator struct {
	mock.Mock
}

func (m *MockInvalidator) Invalidate(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
