package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/adarsh-priydarshi-5646/My-Campus-Hub/internal/domain"
	"github.com/adarsh-priydarshi-5646/My-Campus-Hub/internal/observability"
)

var (
	ErrTeacherNotFound  = errors.New("teacher not found")
	ErrSemesterNotFound = errors.New("semester not found")
)

type AcademicsRepository interface {
	ListSemesters() ([]domain.Semester, error)
	FindSemesterByID(id uint) (*domain.Semester, error)
	ListSubjectsBySemester(semesterID uint) ([]domain.Subject, error)
	ListTeachers() ([]domain.Teacher, error)
	FindTeacherByID(id uint) (*domain.Teacher, error)
}

type GormAcademicsRepository struct{ db *gorm.DB }

func NewAcademicsRepository(db *gorm.DB) AcademicsRepository {
	return &GormAcademicsRepository{db: db}
}

func (r *GormAcademicsRepository) ListSemesters() ([]domain.Semester, error) {
	var semesters []domain.Semester
	err := r.db.Order("id").Find(&semesters).Error
	if err != nil {
		observability.RecordRepositoryOperation(context.Background(), "semester", "list", "error")
		return nil, err
	}
	observability.RecordRepositoryOperation(context.Background(), "semester", "list", "success")
	return semesters, nil
}

func (r *GormAcademicsRepository) FindSemesterByID(id uint) (*domain.Semester, error) {
	var sem domain.Semester
	err := r.db.First(&sem, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			observability.RecordRepositoryOperation(context.Background(), "semester", "find_by_id", "not_found")
			return nil, ErrSemesterNotFound
		}
		observability.RecordRepositoryOperation(context.Background(), "semester", "find_by_id", "error")
		return nil, err
	}
	observability.RecordRepositoryOperation(context.Background(), "semester", "find_by_id", "success")
	return &sem, nil
}

func (r *GormAcademicsRepository) ListSubjectsBySemester(semesterID uint) ([]domain.Subject, error) {
	var subjects []domain.Subject
	err := r.db.Preload("Teacher").Preload("LabTeacher").
		Where("semester_id = ?", semesterID).
		Order("id").
		Find(&subjects).Error
	if err != nil {
		observability.RecordRepositoryOperation(context.Background(), "subject", "list_by_semester", "error")
		return nil, err
	}
	observability.RecordRepositoryOperation(context.Background(), "subject", "list_by_semester", "success")
	return subjects, nil
}

func (r *GormAcademicsRepository) ListTeachers() ([]domain.Teacher, error) {
	var teachers []domain.Teacher
	err := r.db.Order("id").Find(&teachers).Error
	if err != nil {
		observability.RecordRepositoryOperation(context.Background(), "teacher", "list", "error")
		return nil, err
	}
	observability.RecordRepositoryOperation(context.Background(), "teacher", "list", "success")
	return teachers, nil
}

func (r *GormAcademicsRepository) FindTeacherByID(id uint) (*domain.Teacher, error) {
	var t domain.Teacher
	err := r.db.First(&t, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			observability.RecordRepositoryOperation(context.Background(), "teacher", "find_by_id", "not_found")
			return nil, ErrTeacherNotFound
		}
		observability.RecordRepositoryOperation(context.Background(), "teacher", "find_by_id", "error")
		return nil, err
	}
	observability.RecordRepositoryOperation(context.Background(), "teacher", "find_by_id", "success")
	return &t, nil
}
