package service

import (
	"context"
	"encoding/json"
	"log/slog"
	"strconv"
	"time"

	"github.com/adarsh-priydarshi-5646/My-Campus-Hub/internal/domain"
	"github.com/adarsh-priydarshi-5646/My-Campus-Hub/internal/observability"
	"github.com/adarsh-priydarshi-5646/My-Campus-Hub/internal/repository"
)

// SubjectView flattens a subject with trimmed teacher projections instead
// of full staff records.
type SubjectView struct {
	ID            uint               `json:"id"`
	Name          string             `json:"name"`
	Code          string             `json:"code"`
	Credits       int                `json:"credits"`
	Prerequisites string             `json:"prerequisites"`
	Syllabus      string             `json:"syllabus"`
	Topics        string             `json:"topics"`
	Teacher       *domain.TeacherRef `json:"teacher,omitempty"`
	LabTeacher    *domain.TeacherRef `json:"labTeacher,omitempty"`
}

type SemesterDetail struct {
	domain.Semester
	Subjects []SubjectView `json:"subjects"`
}

// AcademicsService serves the academic read model through a TTL cache.
// Cache failures degrade to direct repository reads, never to errors.
type AcademicsService struct {
	repo  repository.AcademicsRepository
	cache ContentCacheStore
	ttl   time.Duration
}

func NewAcademicsService(repo repository.AcademicsRepository, cache ContentCacheStore, ttl time.Duration) *AcademicsService {
	return &AcademicsService{repo: repo, cache: cache, ttl: ttl}
}

func (s *AcademicsService) Semesters(ctx context.Context) ([]domain.Semester, error) {
	var cached []domain.Semester
	if cacheRead(ctx, s.cache, "academics.semesters", "all", &cached) {
		return cached, nil
	}
	semesters, err := s.repo.ListSemesters()
	if err != nil {
		return nil, err
	}
	cacheWrite(ctx, s.cache, "academics.semesters", "all", semesters, s.ttl)
	return semesters, nil
}

func (s *AcademicsService) Semester(ctx context.Context, id uint) (*SemesterDetail, error) {
	key := strconv.FormatUint(uint64(id), 10)
	var cached SemesterDetail
	if cacheRead(ctx, s.cache, "academics.semester", key, &cached) {
		return &cached, nil
	}
	sem, err := s.repo.FindSemesterByID(id)
	if err != nil {
		return nil, err
	}
	subjects, err := s.SemesterSubjects(ctx, id)
	if err != nil {
		return nil, err
	}
	detail := &SemesterDetail{Semester: *sem, Subjects: subjects}
	cacheWrite(ctx, s.cache, "academics.semester", key, detail, s.ttl)
	return detail, nil
}

func (s *AcademicsService) SemesterSubjects(ctx context.Context, semesterID uint) ([]SubjectView, error) {
	key := strconv.FormatUint(uint64(semesterID), 10)
	var cached []SubjectView
	if cacheRead(ctx, s.cache, "academics.subjects", key, &cached) {
		return cached, nil
	}
	subjects, err := s.repo.ListSubjectsBySemester(semesterID)
	if err != nil {
		return nil, err
	}
	views := make([]SubjectView, 0, len(subjects))
	for i := range subjects {
		views = append(views, subjectView(&subjects[i]))
	}
	cacheWrite(ctx, s.cache, "academics.subjects", key, views, s.ttl)
	return views, nil
}

func (s *AcademicsService) Teachers(ctx context.Context) ([]domain.Teacher, error) {
	var cached []domain.Teacher
	if cacheRead(ctx, s.cache, "academics.teachers", "all", &cached) {
		return cached, nil
	}
	teachers, err := s.repo.ListTeachers()
	if err != nil {
		return nil, err
	}
	cacheWrite(ctx, s.cache, "academics.teachers", "all", teachers, s.ttl)
	return teachers, nil
}

func (s *AcademicsService) Teacher(ctx context.Context, id uint) (*domain.Teacher, error) {
	key := strconv.FormatUint(uint64(id), 10)
	var cached domain.Teacher
	if cacheRead(ctx, s.cache, "academics.teacher", key, &cached) {
		return &cached, nil
	}
	teacher, err := s.repo.FindTeacherByID(id)
	if err != nil {
		return nil, err
	}
	cacheWrite(ctx, s.cache, "academics.teacher", key, teacher, s.ttl)
	return teacher, nil
}

func subjectView(subj *domain.Subject) SubjectView {
	view := SubjectView{
		ID:            subj.ID,
		Name:          subj.Name,
		Code:          subj.Code,
		Credits:       subj.Credits,
		Prerequisites: subj.Prerequisites,
		Syllabus:      subj.Syllabus,
		Topics:        subj.Topics,
	}
	if subj.Teacher != nil {
		ref := subj.Teacher.Ref()
		view.Teacher = &ref
	}
	if subj.LabTeacher != nil {
		ref := subj.LabTeacher.Ref()
		view.LabTeacher = &ref
	}
	return view
}

// cacheRead decodes a cached payload into out, reporting whether it hit.
func cacheRead(ctx context.Context, cache ContentCacheStore, namespace, key string, out any) bool {
	payload, hit, err := cache.Get(ctx, namespace, key)
	if err != nil {
		slog.Warn("content cache get", "namespace", namespace, "error", err)
		observability.RecordContentCacheLookup(ctx, namespace, "error")
		return false
	}
	if !hit {
		observability.RecordContentCacheLookup(ctx, namespace, "miss")
		return false
	}
	if err := json.Unmarshal(payload, out); err != nil {
		slog.Warn("content cache decode", "namespace", namespace, "error", err)
		observability.RecordContentCacheLookup(ctx, namespace, "error")
		return false
	}
	observability.RecordContentCacheLookup(ctx, namespace, "hit")
	return true
}

func cacheWrite(ctx context.Context, cache ContentCacheStore, namespace, key string, value any, ttl time.Duration) {
	payload, err := json.Marshal(value)
	if err != nil {
		slog.Warn("content cache encode", "namespace", namespace, "error", err)
		return
	}
	if err := cache.Set(ctx, namespace, key, payload, ttl); err != nil {
		slog.Warn("content cache set", "namespace", namespace, "error", err)
	}
}
