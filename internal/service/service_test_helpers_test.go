package service

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/adarsh-priydarshi-5646/My-Campus-Hub/internal/domain"
	"github.com/adarsh-priydarshi-5646/My-Campus-Hub/internal/repository"
	"github.com/adarsh-priydarshi-5646/My-Campus-Hub/internal/security"
)

func newServiceTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(
		&domain.User{}, &domain.Session{},
		&domain.Semester{}, &domain.Subject{}, &domain.Teacher{},
		&domain.Event{}, &domain.MessMenu{}, &domain.Hostel{}, &domain.College{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func newAuthServiceForTest(t *testing.T) (*AuthService, *gorm.DB) {
	t.Helper()
	db := newServiceTestDB(t)
	svc := NewAuthService(
		repository.NewUserRepository(db),
		repository.NewSessionRepository(db),
		security.NewJWTManager("my-campus-hub", "test-secret-test-secret-test-secret"),
		bcrypt.MinCost,
		7*24*time.Hour,
		time.Hour,
	)
	return svc, db
}

func registerTestUser(t *testing.T, svc *AuthService, email string) *AuthResult {
	t.Helper()
	res, err := svc.Register(RegisterInput{
		Name:     "Test Student",
		Email:    email,
		Password: "correct horse battery",
	})
	if err != nil {
		t.Fatalf("register %s: %v", email, err)
	}
	return res
}
