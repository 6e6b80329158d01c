package repository

import (
	"testing"
	"time"
)

func TestUserRepositoryFindByEmail(t *testing.T) {
	db := newTestDB(t)
	repo := NewUserRepository(db)
	seedUser(t, db, "alice@x.com")

	u, err := repo.FindByEmail("alice@x.com")
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if u.Email != "alice@x.com" {
		t.Fatalf("unexpected user %+v", u)
	}

	if _, err := repo.FindByEmail("nobody@x.com"); err != ErrUserNotFound {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestUserRepositoryEmailTakenByOther(t *testing.T) {
	db := newTestDB(t)
	repo := NewUserRepository(db)
	alice := seedUser(t, db, "alice@x.com")
	seedUser(t, db, "bob@x.com")

	taken, err := repo.EmailTakenByOther("bob@x.com", alice.ID)
	if err != nil {
		t.Fatalf("check bob: %v", err)
	}
	if !taken {
		t.Fatal("expected bob's email to count as taken for alice")
	}

	taken, err = repo.EmailTakenByOther("alice@x.com", alice.ID)
	if err != nil {
		t.Fatalf("check own email: %v", err)
	}
	if taken {
		t.Fatal("a user's own email must not count as taken")
	}

	taken, err = repo.EmailTakenByOther("free@x.com", alice.ID)
	if err != nil {
		t.Fatalf("check free email: %v", err)
	}
	if taken {
		t.Fatal("unused email reported as taken")
	}
}

func TestUserRepositoryResetTokenLifecycle(t *testing.T) {
	db := newTestDB(t)
	repo := NewUserRepository(db)
	alice := seedUser(t, db, "alice@x.com")

	expiry := time.Now().Add(time.Hour)
	if err := repo.SetResetToken(alice.ID, "token-1", expiry); err != nil {
		t.Fatalf("set token: %v", err)
	}

	// A second request overwrites the first; only one challenge is live.
	if err := repo.SetResetToken(alice.ID, "token-2", expiry); err != nil {
		t.Fatalf("overwrite token: %v", err)
	}
	if _, err := repo.FindByValidResetToken("token-1", time.Now()); err != ErrUserNotFound {
		t.Fatalf("expected overwritten token to be dead, got %v", err)
	}
	u, err := repo.FindByValidResetToken("token-2", time.Now())
	if err != nil {
		t.Fatalf("find by live token: %v", err)
	}
	if u.ID != alice.ID {
		t.Fatalf("token resolved to wrong user %d", u.ID)
	}

	if err := repo.ResetPassword(alice.ID, "new-hash"); err != nil {
		t.Fatalf("reset password: %v", err)
	}
	if _, err := repo.FindByValidResetToken("token-2", time.Now()); err != ErrUserNotFound {
		t.Fatalf("expected consumed token to be dead, got %v", err)
	}
	u, err = repo.FindByID(alice.ID)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if u.PasswordHash != "new-hash" {
		t.Fatalf("password hash not updated: %q", u.PasswordHash)
	}
	if u.ResetToken != nil || u.ResetTokenExpiry != nil {
		t.Fatal("reset fields not cleared")
	}
}

func TestUserRepositoryExpiredResetTokenIsInvalid(t *testing.T) {
	db := newTestDB(t)
	repo := NewUserRepository(db)
	alice := seedUser(t, db, "alice@x.com")

	if err := repo.SetResetToken(alice.ID, "stale", time.Now().Add(-time.Minute)); err != nil {
		t.Fatalf("set token: %v", err)
	}
	if _, err := repo.FindByValidResetToken("stale", time.Now()); err != ErrUserNotFound {
		t.Fatalf("expected expired token rejected, got %v", err)
	}
}

func TestUserRepositoryUpdateFields(t *testing.T) {
	db := newTestDB(t)
	repo := NewUserRepository(db)
	alice := seedUser(t, db, "alice@x.com")

	if err := repo.UpdateFields(alice.ID, map[string]any{"name": "Alice A.", "branch": "CSE"}); err != nil {
		t.Fatalf("update: %v", err)
	}
	u, err := repo.FindByID(alice.ID)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if u.Name != "Alice A." || u.Branch != "CSE" {
		t.Fatalf("fields not applied: %+v", u)
	}
	if u.Email != "alice@x.com" {
		t.Fatalf("untouched field changed: %q", u.Email)
	}

	// Empty patch is a no-op, not an error.
	if err := repo.UpdateFields(alice.ID, nil); err != nil {
		t.Fatalf("empty update: %v", err)
	}
}
