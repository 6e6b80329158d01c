package integration

import (
	"net/http"
	"testing"

	"github.com/adarsh-priydarshi-5646/My-Campus-Hub/internal/domain"
)

func TestContentRoutesAreGatedAndServeData(t *testing.T) {
	baseURL, db, closeFn := newAuthTestServer(t)
	defer closeFn()

	sem := &domain.Semester{Name: "Semester 1", Credits: 22}
	if err := db.Create(sem).Error; err != nil {
		t.Fatalf("seed semester: %v", err)
	}
	if err := db.Create(&domain.MessMenu{Day: "Monday", Breakfast: "Poha", Timing: "7:30-9:00"}).Error; err != nil {
		t.Fatalf("seed mess menu: %v", err)
	}

	// Without a token every content route is rejected.
	if status, _ := doJSON(t, http.MethodGet, baseURL+"/api/v1/academics/semesters", "", nil); status != http.StatusUnauthorized {
		t.Fatalf("unauthenticated semesters: status=%d", status)
	}

	token, _ := register(t, baseURL, "reader@x.com")

	status, body := doJSON(t, http.MethodGet, baseURL+"/api/v1/academics/semesters", token, nil)
	if status != http.StatusOK {
		t.Fatalf("semesters: status=%d body=%v", status, body)
	}
	semesters, _ := body["semesters"].([]any)
	if len(semesters) != 1 {
		t.Fatalf("expected 1 semester, got %v", body)
	}

	status, body = doJSON(t, http.MethodGet, baseURL+"/api/v1/campus/mess", token, nil)
	if status != http.StatusOK {
		t.Fatalf("mess: status=%d body=%v", status, body)
	}
	menus, _ := body["messMenu"].([]any)
	if len(menus) != 1 {
		t.Fatalf("expected 1 menu row, got %v", body)
	}

	status, _ = doJSON(t, http.MethodGet, baseURL+"/api/v1/academics/teachers/999", token, nil)
	if status != http.StatusNotFound {
		t.Fatalf("unknown teacher: status=%d", status)
	}
}
