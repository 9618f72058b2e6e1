package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"edupath/internal/models/db_models"
)

type CollegeRepository interface {
	List(ctx context.Context, q CollegeQuery) ([]db_models.College, int64, error)
	FindByID(ctx context.Context, id uuid.UUID) (*db_models.College, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]db_models.College, error)
	Create(ctx context.Context, college *db_models.College) error
	Update(ctx context.Context, college *db_models.College) error
	UpdatePhoto(ctx context.Context, id uuid.UUID, photo string) error
	Delete(ctx context.Context, id uuid.UUID) error
	WithinBounds(ctx context.Context, minLat, maxLat, minLng, maxLng float64) ([]db_models.College, error)

	ListCourses(ctx context.Context, collegeID uuid.UUID) ([]db_models.CollegeCourse, error)
	FindCourse(ctx context.Context, collegeID, courseID uuid.UUID) (*db_models.CollegeCourse, error)
	CreateCourse(ctx context.Context, course *db_models.CollegeCourse) error
	UpdateCourse(ctx context.Context, course *db_models.CollegeCourse) error
	DeleteCourse(ctx context.Context, collegeID, courseID uuid.UUID) error
}

type collegeRepository struct {
	db *gorm.DB
}

func NewCollegeRepository(db *gorm.DB) CollegeRepository {
	return &collegeRepository{db: db}
}

func (r *collegeRepository) List(ctx context.Context, q CollegeQuery) ([]db_models.College, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).
		Model(&db_models.College{}).
		Scopes(q.filterScope).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var colleges []db_models.College
	if err := r.db.WithContext(ctx).
		Model(&db_models.College{}).
		Scopes(q.filterScope, q.pageScope).
		Find(&colleges).Error; err != nil {
		return nil, 0, err
	}
	return colleges, total, nil
}

func (r *collegeRepository) FindByID(ctx context.Context, id uuid.UUID) (*db_models.College, error) {
	var college db_models.College
	err := r.db.WithContext(ctx).
		Preload("Courses", func(tx *gorm.DB) *gorm.DB {
			return tx.Order("created_at ASC").Order("id ASC")
		}).
		First(&college, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &college, nil
}

func (r *collegeRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]db_models.College, error) {
	if len(ids) == 0 {
		return []db_models.College{}, nil
	}
	var colleges []db_models.College
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&colleges).Error; err != nil {
		return nil, err
	}
	return colleges, nil
}

// Create inserts the college together with any courses attached to it.
func (r *collegeRepository) Create(ctx context.Context, college *db_models.College) error {
	return r.db.WithContext(ctx).Create(college).Error
}

// Update writes every column of the college row; courses are managed
// through the course methods.
func (r *collegeRepository) Update(ctx context.Context, college *db_models.College) error {
	result := r.db.WithContext(ctx).Omit(clause.Associations).Save(college)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *collegeRepository) UpdatePhoto(ctx context.Context, id uuid.UUID, photo string) error {
	return r.db.WithContext(ctx).
		Model(&db_models.College{}).
		Where("id = ?", id).
		Update("photo", photo).Error
}

func (r *collegeRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("college_id = ?", id).Delete(&db_models.CollegeCourse{}).Error; err != nil {
			return err
		}
		return tx.Delete(&db_models.College{}, "id = ?", id).Error
	})
}

func (r *collegeRepository) WithinBounds(ctx context.Context, minLat, maxLat, minLng, maxLng float64) ([]db_models.College, error) {
	var colleges []db_models.College
	err := r.db.WithContext(ctx).
		Where("latitude IS NOT NULL AND longitude IS NOT NULL").
		Where("latitude BETWEEN ? AND ?", minLat, maxLat).
		Where("longitude BETWEEN ? AND ?", minLng, maxLng).
		Find(&colleges).Error
	if err != nil {
		return nil, err
	}
	return colleges, nil
}

func (r *collegeRepository) ListCourses(ctx context.Context, collegeID uuid.UUID) ([]db_models.CollegeCourse, error) {
	var courses []db_models.CollegeCourse
	err := r.db.WithContext(ctx).
		Where("college_id = ?", collegeID).
		Order("created_at ASC").
		Order("id ASC").
		Find(&courses).Error
	if err != nil {
		return nil, err
	}
	return courses, nil
}

func (r *collegeRepository) FindCourse(ctx context.Context, collegeID, courseID uuid.UUID) (*db_models.CollegeCourse, error) {
	var course db_models.CollegeCourse
	err := r.db.WithContext(ctx).
		Where("id = ? AND college_id = ?", courseID, collegeID).
		First(&course).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &course, nil
}

func (r *collegeRepository) CreateCourse(ctx context.Context, course *db_models.CollegeCourse) error {
	return r.db.WithContext(ctx).Create(course).Error
}

func (r *collegeRepository) UpdateCourse(ctx context.Context, course *db_models.CollegeCourse) error {
	return r.db.WithContext(ctx).Save(course).Error
}

func (r *collegeRepository) DeleteCourse(ctx context.Context, collegeID, courseID uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Where("id = ? AND college_id = ?", courseID, collegeID).
		Delete(&db_models.CollegeCourse{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
