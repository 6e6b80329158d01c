package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/adarsh-priydarshi-5646/My-Campus-Hub/internal/domain"
	"github.com/adarsh-priydarshi-5646/My-Campus-Hub/internal/observability"
)

var ErrSessionNotFound = errors.New("session not found")

type SessionRepository interface {
	Create(s *domain.Session) error
	FindByToken(token string) (*domain.Session, error)
	ListActiveByUserID(userID uint) ([]domain.Session, error)
	Deactivate(token string) (int64, error)
	DeactivateByUserID(userID uint) (int64, error)
	MarkInactive(id uint) error
	TouchLastUsed(id uint, at time.Time) error
	DeactivateExpired(now time.Time) (int64, error)
	PurgeExpiredBefore(cutoff time.Time) (int64, error)
}

type GormSessionRepository struct{ db *gorm.DB }

func NewSessionRepository(db *gorm.DB) SessionRepository { return &GormSessionRepository{db: db} }

func (r *GormSessionRepository) Create(s *domain.Session) error {
	err := r.db.Create(s).Error
	if err != nil {
		observability.RecordRepositoryOperation(context.Background(), "session", "create", "error")
		return err
	}
	observability.RecordRepositoryOperation(context.Background(), "session", "create", "success")
	return nil
}

func (r *GormSessionRepository) FindByToken(token string) (*domain.Session, error) {
	var s domain.Session
	err := r.db.Preload("User").Where("token = ?", token).First(&s).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			observability.RecordRepositoryOperation(context.Background(), "session", "find_by_token", "not_found")
			return nil, ErrSessionNotFound
		}
		observability.RecordRepositoryOperation(context.Background(), "session", "find_by_token", "error")
		return nil, err
	}
	observability.RecordRepositoryOperation(context.Background(), "session", "find_by_token", "success")
	return &s, nil
}

func (r *GormSessionRepository) ListActiveByUserID(userID uint) ([]domain.Session, error) {
	var sessions []domain.Session
	err := r.db.Where("user_id = ? AND is_active = ? AND expires_at > ?", userID, true, time.Now()).
		Order("created_at DESC").
		Find(&sessions).Error
	if err != nil {
		observability.RecordRepositoryOperation(context.Background(), "session", "list_active_by_user_id", "error")
		return sessions, err
	}
	observability.RecordRepositoryOperation(context.Background(), "session", "list_active_by_user_id", "success")
	return sessions, nil
}

// Deactivate flips the active session matching the exact token. Zero rows
// affected is not an error; logout is idempotent.
func (r *GormSessionRepository) Deactivate(token string) (int64, error) {
	res := r.db.Model(&domain.Session{}).
		Where("token = ? AND is_active = ?", token, true).
		Update("is_active", false)
	if res.Error != nil {
		observability.RecordRepositoryOperation(context.Background(), "session", "deactivate", "error")
		return res.RowsAffected, res.Error
	}
	observability.RecordRepositoryOperation(context.Background(), "session", "deactivate", "success")
	return res.RowsAffected, nil
}

func (r *GormSessionRepository) DeactivateByUserID(userID uint) (int64, error) {
	res := r.db.Model(&domain.Session{}).
		Where("user_id = ? AND is_active = ?", userID, true).
		Update("is_active", false)
	if res.Error != nil {
		observability.RecordRepositoryOperation(context.Background(), "session", "deactivate_by_user_id", "error")
		return res.RowsAffected, res.Error
	}
	observability.RecordRepositoryOperation(context.Background(), "session", "deactivate_by_user_id", "success")
	return res.RowsAffected, nil
}

func (r *GormSessionRepository) MarkInactive(id uint) error {
	err := r.db.Model(&domain.Session{}).Where("id = ?", id).Update("is_active", false).Error
	if err != nil {
		observability.RecordRepositoryOperation(context.Background(), "session", "mark_inactive", "error")
		return err
	}
	observability.RecordRepositoryOperation(context.Background(), "session", "mark_inactive", "success")
	return nil
}

func (r *GormSessionRepository) TouchLastUsed(id uint, at time.Time) error {
	err := r.db.Model(&domain.Session{}).Where("id = ?", id).Update("last_used", at).Error
	if err != nil {
		observability.RecordRepositoryOperation(context.Background(), "session", "touch_last_used", "error")
		return err
	}
	observability.RecordRepositoryOperation(context.Background(), "session", "touch_last_used", "success")
	return nil
}

// DeactivateExpired applies the same terminal transition that validation-time
// expiry does, for sessions whose owner never came back.
func (r *GormSessionRepository) DeactivateExpired(now time.Time) (int64, error) {
	res := r.db.Model(&domain.Session{}).
		Where("is_active = ? AND expires_at <= ?", true, now).
		Update("is_active", false)
	if res.Error != nil {
		observability.RecordRepositoryOperation(context.Background(), "session", "deactivate_expired", "error")
		return res.RowsAffected, res.Error
	}
	observability.RecordRepositoryOperation(context.Background(), "session", "deactivate_expired", "success")
	return res.RowsAffected, nil
}

// PurgeExpiredBefore is retention maintenance only; normal flows never
// delete session rows.
func (r *GormSessionRepository) PurgeExpiredBefore(cutoff time.Time) (int64, error) {
	res := r.db.Where("expires_at <= ?", cutoff).Delete(&domain.Session{})
	if res.Error != nil {
		observability.RecordRepositoryOperation(context.Background(), "session", "purge_expired", "error")
		return res.RowsAffected, res.Error
	}
	observability.RecordRepositoryOperation(context.Background(), "session", "purge_expired", "success")
	return res.RowsAffected, nil
}
