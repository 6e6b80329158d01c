package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/adarsh-priydarshi-5646/My-Campus-Hub/internal/domain"
	"github.com/adarsh-priydarshi-5646/My-Campus-Hub/internal/repository"
)

func TestAcademicsServiceServesFromCacheOnRepeat(t *testing.T) {
	ctx := context.Background()
	db := newServiceTestDB(t)
	svc := NewAcademicsService(repository.NewAcademicsRepository(db), NewInMemoryContentCacheStore(), time.Minute)

	if err := db.Create(&domain.Semester{Name: "Semester 1", Credits: 24}).Error; err != nil {
		t.Fatalf("seed semester: %v", err)
	}

	first, err := svc.Semesters(ctx)
	if err != nil {
		t.Fatalf("first read: %v", err)
	}
	if len(first) != 1 || first[0].Name != "Semester 1" {
		t.Fatalf("unexpected first read: %+v", first)
	}

	// Drop the backing rows; a warm cache must still answer.
	if err := db.Unscoped().Where("1 = 1").Delete(&domain.Semester{}).Error; err != nil {
		t.Fatalf("clear semesters: %v", err)
	}
	second, err := svc.Semesters(ctx)
	if err != nil {
		t.Fatalf("second read: %v", err)
	}
	if len(second) != 1 {
		t.Fatalf("expected cached result, got %+v", second)
	}
}

func TestSemesterSubjectsProjectsTeacherRefs(t *testing.T) {
	ctx := context.Background()
	db := newServiceTestDB(t)
	svc := NewAcademicsService(repository.NewAcademicsRepository(db), NewNoopContentCacheStore(), time.Minute)

	sem := &domain.Semester{Name: "Semester 3"}
	if err := db.Create(sem).Error; err != nil {
		t.Fatalf("seed semester: %v", err)
	}
	teacher := &domain.Teacher{
		Name:        "Dr. Rao",
		Email:       "rao@campus.edu",
		Department:  "CSE",
		Designation: "Professor",
		Phone:       "555-0100",
	}
	if err := db.Create(teacher).Error; err != nil {
		t.Fatalf("seed teacher: %v", err)
	}
	subject := &domain.Subject{
		Name:       "Operating Systems",
		Code:       "CS301",
		SemesterID: sem.ID,
		TeacherID:  &teacher.ID,
		Credits:    4,
	}
	if err := db.Create(subject).Error; err != nil {
		t.Fatalf("seed subject: %v", err)
	}

	views, err := svc.SemesterSubjects(ctx, sem.ID)
	if err != nil {
		t.Fatalf("semester subjects: %v", err)
	}
	if len(views) != 1 {
		t.Fatalf("expected 1 subject, got %d", len(views))
	}
	got := views[0]
	if got.Code != "CS301" || got.Teacher == nil {
		t.Fatalf("unexpected view: %+v", got)
	}
	// Listings carry the trimmed projection, never the full staff record.
	if got.Teacher.Name != "Dr. Rao" || got.Teacher.Department != "CSE" {
		t.Fatalf("unexpected teacher ref: %+v", got.Teacher)
	}
	if got.LabTeacher != nil {
		t.Fatalf("no lab teacher was assigned: %+v", got.LabTeacher)
	}
}

func TestSemesterNotFoundPassesThrough(t *testing.T) {
	ctx := context.Background()
	db := newServiceTestDB(t)
	svc := NewAcademicsService(repository.NewAcademicsRepository(db), NewNoopContentCacheStore(), time.Minute)

	if _, err := svc.Semester(ctx, 42); !errors.Is(err, repository.ErrSemesterNotFound) {
		t.Fatalf("expected ErrSemesterNotFound, got %v", err)
	}
}

func TestCollegeViewDecodesStatsAndFacilities(t *testing.T) {
	ctx := context.Background()
	db := newServiceTestDB(t)
	svc := NewCampusService(repository.NewCampusRepository(db), NewNoopContentCacheStore(), time.Minute)

	college := &domain.College{
		Name:       "My Campus Institute",
		Tagline:    "Learn. Build. Ship.",
		Stats:      `[{"label":"Students","value":"4200"}]`,
		Facilities: `["Library","Innovation Lab"]`,
	}
	if err := db.Create(college).Error; err != nil {
		t.Fatalf("seed college: %v", err)
	}

	view, err := svc.College(ctx)
	if err != nil {
		t.Fatalf("college: %v", err)
	}
	if len(view.Stats) != 1 || view.Stats[0].Label != "Students" {
		t.Fatalf("stats not decoded: %+v", view.Stats)
	}
	if len(view.Facilities) != 2 || view.Facilities[1] != "Innovation Lab" {
		t.Fatalf("facilities not decoded: %+v", view.Facilities)
	}
}

func TestCollegeMissingIsNotFound(t *testing.T) {
	ctx := context.Background()
	db := newServiceTestDB(t)
	svc := NewCampusService(repository.NewCampusRepository(db), NewNoopContentCacheStore(), time.Minute)

	if _, err := svc.College(ctx); !errors.Is(err, repository.ErrCollegeNotFound) {
		t.Fatalf("expected ErrCollegeNotFound, got %v", err)
	}
}
