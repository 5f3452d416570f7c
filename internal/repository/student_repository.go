package repository

import (
	"context"

	"gorm.io/gorm"

	"studentrecords/internal/model"
)

// StudentRepository defines student persistence operations. Each method is a
// single round trip; List and Count are deliberately separate statements, not
// a shared transaction.
type StudentRepository interface {
	List(ctx context.Context, search string, limit, offset int) ([]model.Student, error)
	Count(ctx context.Context, search string) (int64, error)
	FindActiveByID(ctx context.Context, id uint) (*model.Student, error)
	Create(ctx context.Context, student *model.Student) error
	Update(ctx context.Context, id uint, student *model.Student) (int64, error)
	Deactivate(ctx context.Context, id uint) (int64, error)
}

type studentRepository struct {
	db *gorm.DB
}

// NewStudentRepository creates a new student repository.
func NewStudentRepository(db *gorm.DB) StudentRepository {
	return &studentRepository{db: db}
}

// List returns one page of active students matching the search substring,
// newest first.
func (r *studentRepository) List(ctx context.Context, search string, limit, offset int) ([]model.Student, error) {
	var students []model.Student
	err := r.db.WithContext(ctx).
		Where("name ILIKE ? AND is_active = ?", "%"+search+"%", true).
		Order("id DESC").
		Limit(limit).
		Offset(offset).
		Find(&students).Error
	if err != nil {
		return nil, err
	}
	return students, nil
}

// Count returns the total number of active students matching the search
// substring.
func (r *studentRepository) Count(ctx context.Context, search string) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&model.Student{}).
		Where("name ILIKE ? AND is_active = ?", "%"+search+"%", true).
		Count(&total).Error
	if err != nil {
		return 0, err
	}
	return total, nil
}

// FindActiveByID returns the student only if it is still active; an inactive
// row behaves as not found.
func (r *studentRepository) FindActiveByID(ctx context.Context, id uint) (*model.Student, error) {
	var student model.Student
	err := r.db.WithContext(ctx).
		Where("id = ? AND is_active = ?", id, true).
		First(&student).Error
	if err != nil {
		return nil, err
	}
	return &student, nil
}

// Create inserts a new student and fills in the store-assigned id.
func (r *studentRepository) Create(ctx context.Context, student *model.Student) error {
	return r.db.WithContext(ctx).Create(student).Error
}

// Update overwrites all five mutable fields in one statement and returns the
// number of matched rows. It does not filter on is_active, so inactive rows
// remain updatable.
func (r *studentRepository) Update(ctx context.Context, id uint, student *model.Student) (int64, error) {
	res := r.db.WithContext(ctx).Model(&model.Student{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"name":           student.Name,
			"email":          student.Email,
			"phone":          student.Phone,
			"course":         student.Course,
			"enrolment_date": student.EnrolmentDate,
		})
	if res.Error != nil {
		return 0, res.Error
	}
	return res.RowsAffected, nil
}

// Deactivate flips is_active to false for the given id and returns the number
// of matched rows. The filter is by id only, so deactivating an already
// inactive row still matches.
func (r *studentRepository) Deactivate(ctx context.Context, id uint) (int64, error) {
	res := r.db.WithContext(ctx).Model(&model.Student{}).
		Where("id = ?", id).
		Update("is_active", false)
	if res.Error != nil {
		return 0, res.Error
	}
	return res.RowsAffected, nil
}
