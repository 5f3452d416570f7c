package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	apperrors "studentrecords/internal/errors"
	"studentrecords/internal/model"
	"studentrecords/internal/repository"
)

const (
	defaultPage  = 1
	defaultLimit = 10
)

// StudentInput carries the mutable fields of a student as submitted by the
// client. Phone, course and enrolment date are stored as given, without
// format validation.
type StudentInput struct {
	Name          string
	Email         string
	Phone         string
	Course        string
	EnrolmentDate string
}

// Pagination describes one page of a list result.
type Pagination struct {
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalPages int64 `json:"totalPages"`
}

// StudentService exposes the student record operations.
type StudentService interface {
	List(ctx context.Context, search string, page, limit int) ([]model.Student, *Pagination, error)
	Get(ctx context.Context, id uint) (*model.Student, error)
	Create(ctx context.Context, input StudentInput) (*model.Student, error)
	Update(ctx context.Context, id uint, input StudentInput) error
	Delete(ctx context.Context, id uint) error
}

type studentService struct {
	repo repository.StudentRepository
}

// NewStudentService builds a StudentService.
func NewStudentService(repo repository.StudentRepository) StudentService {
	return &studentService{repo: repo}
}

// List returns one page of active students plus pagination metadata. The page
// query and the count query are independent statements; under concurrent
// writes the total may be fractionally stale relative to the page.
func (s *studentService) List(ctx context.Context, search string, page, limit int) ([]model.Student, *Pagination, error) {
	if page < 1 {
		page = defaultPage
	}
	if limit < 1 {
		limit = defaultLimit
	}
	offset := (page - 1) * limit

	students, err := s.repo.List(ctx, search, limit, offset)
	if err != nil {
		return nil, nil, fmt.Errorf("list students: %w", err)
	}

	total, err := s.repo.Count(ctx, search)
	if err != nil {
		return nil, nil, fmt.Errorf("count students: %w", err)
	}

	return students, &Pagination{
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: (total + int64(limit) - 1) / int64(limit),
	}, nil
}

// Get returns an active student by id.
func (s *studentService) Get(ctx context.Context, id uint) (*model.Student, error) {
	student, err := s.repo.FindActiveByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrStudentNotFound
		}
		return nil, fmt.Errorf("get student: %w", err)
	}
	return student, nil
}

// Create validates the input and inserts a new active student. The returned
// record carries the store-assigned id plus the submitted fields verbatim; it
// is not a fresh read of the stored row.
func (s *studentService) Create(ctx context.Context, input StudentInput) (*model.Student, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}

	student := &model.Student{
		Name:          input.Name,
		Email:         input.Email,
		Phone:         input.Phone,
		Course:        input.Course,
		EnrolmentDate: input.EnrolmentDate,
		IsActive:      true,
	}
	if err := s.repo.Create(ctx, student); err != nil {
		return nil, fmt.Errorf("create student: %w", err)
	}

	return student, nil
}

// Update overwrites all mutable fields of an existing student in one
// statement. Already-inactive rows are still updatable.
func (s *studentService) Update(ctx context.Context, id uint, input StudentInput) error {
	if err := validateInput(input); err != nil {
		return err
	}

	matched, err := s.repo.Update(ctx, id, &model.Student{
		Name:          input.Name,
		Email:         input.Email,
		Phone:         input.Phone,
		Course:        input.Course,
		EnrolmentDate: input.EnrolmentDate,
	})
	if err != nil {
		return fmt.Errorf("update student: %w", err)
	}
	if matched == 0 {
		return apperrors.ErrStudentNotFound
	}
	return nil
}

// Delete soft-deletes a student. Deleting an already-inactive row still
// matches and succeeds; the row persists in the store either way.
func (s *studentService) Delete(ctx context.Context, id uint) error {
	matched, err := s.repo.Deactivate(ctx, id)
	if err != nil {
		return fmt.Errorf("delete student: %w", err)
	}
	if matched == 0 {
		return apperrors.ErrStudentNotFound
	}
	return nil
}

// validateInput rejects blank name or email; whitespace-only counts as blank.
func validateInput(input StudentInput) error {
	if strings.TrimSpace(input.Name) == "" {
		return apperrors.ErrNameRequired
	}
	if strings.TrimSpace(input.Email) == "" {
		return apperrors.ErrEmailRequired
	}
	return nil
}
