package integration

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/adarsh-priydarshi-5646/My-Campus-Hub/internal/domain"
	"github.com/adarsh-priydarshi-5646/My-Campus-Hub/internal/http/handler"
	"github.com/adarsh-priydarshi-5646/My-Campus-Hub/internal/http/router"
	"github.com/adarsh-priydarshi-5646/My-Campus-Hub/internal/repository"
	"github.com/adarsh-priydarshi-5646/My-Campus-Hub/internal/security"
	"github.com/adarsh-priydarshi-5646/My-Campus-Hub/internal/service"
)

// newAuthTestServer boots the full HTTP stack in process: real router,
// middleware, services and repositories over an in-memory database.
func newAuthTestServer(t *testing.T) (string, *gorm.DB, func()) {
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

	cache := service.NewInMemoryContentCacheStore()
	authSvc := service.NewAuthService(
		repository.NewUserRepository(db),
		repository.NewSessionRepository(db),
		security.NewJWTManager("my-campus-hub", "integration-secret-integration-secret"),
		bcrypt.MinCost,
		7*24*time.Hour,
		time.Hour,
	)
	academicsSvc := service.NewAcademicsService(repository.NewAcademicsRepository(db), cache, time.Minute)
	campusSvc := service.NewCampusService(repository.NewCampusRepository(db), cache, time.Minute)

	h := router.NewRouter(router.Dependencies{
		AuthHandler:        handler.NewAuthHandler(authSvc, true),
		AcademicsHandler:   handler.NewAcademicsHandler(academicsSvc),
		CampusHandler:      handler.NewCampusHandler(campusSvc),
		Authenticator:      authSvc,
		CORSOrigins:        []string{"*"},
		APIRateLimitRPM:    10000,
		AuthRateLimitRPM:   10000,
		ForgotRateLimitRPM: 10000,
	})

	server := httptest.NewServer(h)
	return server.URL, db, server.Close
}

func doJSON(t *testing.T, method, url, token string, body any) (int, map[string]any) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(payload)
	}
	req, err := http.NewRequest(method, url, reader)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, url, err)
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	decoded := map[string]any{}
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &decoded); err != nil {
			t.Fatalf("decode %q: %v", raw, err)
		}
	}
	return resp.StatusCode, decoded
}

func register(t *testing.T, baseURL, email string) (string, map[string]any) {
	t.Helper()
	status, body := doJSON(t, http.MethodPost, baseURL+"/api/v1/auth/register", "", map[string]string{
		"name": "Integration User", "email": email, "password": "pw123456",
	})
	if status != http.StatusCreated {
		t.Fatalf("register %s: status=%d body=%v", email, status, body)
	}
	token, _ := body["token"].(string)
	if token == "" {
		t.Fatalf("register %s: no token in %v", email, body)
	}
	return token, body
}
