package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/adarsh-priydarshi-5646/My-Campus-Hub/internal/domain"
	"github.com/adarsh-priydarshi-5646/My-Campus-Hub/internal/observability"
)

var ErrUserNotFound = errors.New("user not found")

type UserRepository interface {
	FindByID(id uint) (*domain.User, error)
	FindByEmail(email string) (*domain.User, error)
	Create(user *domain.User) error
	UpdateFields(id uint, fields map[string]any) error
	EmailTakenByOther(email string, excludeID uint) (bool, error)
	SetResetToken(id uint, token string, expiry time.Time) error
	FindByValidResetToken(token string, now time.Time) (*domain.User, error)
	ResetPassword(id uint, passwordHash string) error
	ClearExpiredResetTokens(now time.Time) (int64, error)
}

type GormUserRepository struct{ db *gorm.DB }

func NewUserRepository(db *gorm.DB) UserRepository { return &GormUserRepository{db: db} }

func (r *GormUserRepository) FindByID(id uint) (*domain.User, error) {
	var u domain.User
	err := r.db.First(&u, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			observability.RecordRepositoryOperation(context.Background(), "user", "find_by_id", "not_found")
			return nil, ErrUserNotFound
		}
		observability.RecordRepositoryOperation(context.Background(), "user", "find_by_id", "error")
		return nil, err
	}
	observability.RecordRepositoryOperation(context.Background(), "user", "find_by_id", "success")
	return &u, nil
}

func (r *GormUserRepository) FindByEmail(email string) (*domain.User, error) {
	var u domain.User
	err := r.db.Where("email = ?", email).First(&u).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			observability.RecordRepositoryOperation(context.Background(), "user", "find_by_email", "not_found")
			return nil, ErrUserNotFound
		}
		observability.RecordRepositoryOperation(context.Background(), "user", "find_by_email", "error")
		return nil, err
	}
	observability.RecordRepositoryOperation(context.Background(), "user", "find_by_email", "success")
	return &u, nil
}

func (r *GormUserRepository) Create(user *domain.User) error {
	err := r.db.Create(user).Error
	if err != nil {
		observability.RecordRepositoryOperation(context.Background(), "user", "create", "error")
		return err
	}
	observability.RecordRepositoryOperation(context.Background(), "user", "create", "success")
	return nil
}

func (r *GormUserRepository) UpdateFields(id uint, fields map[string]any) error {
	if len(fields) == 0 {
		return nil
	}
	err := r.db.Model(&domain.User{}).Where("id = ?", id).Updates(fields).Error
	if err != nil {
		observability.RecordRepositoryOperation(context.Background(), "user", "update_fields", "error")
		return err
	}
	observability.RecordRepositoryOperation(context.Background(), "user", "update_fields", "success")
	return nil
}

func (r *GormUserRepository) EmailTakenByOther(email string, excludeID uint) (bool, error) {
	var count int64
	err := r.db.Model(&domain.User{}).
		Where("email = ? AND id <> ?", email, excludeID).
		Count(&count).Error
	if err != nil {
		observability.RecordRepositoryOperation(context.Background(), "user", "email_taken_by_other", "error")
		return false, err
	}
	observability.RecordRepositoryOperation(context.Background(), "user", "email_taken_by_other", "success")
	return count > 0, nil
}

// SetResetToken stores a fresh reset challenge, overwriting any outstanding
// one. At most one reset token per user exists at any time.
func (r *GormUserRepository) SetResetToken(id uint, token string, expiry time.Time) error {
	err := r.db.Model(&domain.User{}).Where("id = ?", id).
		Updates(map[string]any{"reset_token": token, "reset_token_expiry": expiry}).Error
	if err != nil {
		observability.RecordRepositoryOperation(context.Background(), "user", "set_reset_token", "error")
		return err
	}
	observability.RecordRepositoryOperation(context.Background(), "user", "set_reset_token", "success")
	return nil
}

func (r *GormUserRepository) FindByValidResetToken(token string, now time.Time) (*domain.User, error) {
	var u domain.User
	err := r.db.Where("reset_token = ? AND reset_token_expiry >= ?", token, now).First(&u).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			observability.RecordRepositoryOperation(context.Background(), "user", "find_by_reset_token", "not_found")
			return nil, ErrUserNotFound
		}
		observability.RecordRepositoryOperation(context.Background(), "user", "find_by_reset_token", "error")
		return nil, err
	}
	observability.RecordRepositoryOperation(context.Background(), "user", "find_by_reset_token", "success")
	return &u, nil
}

// ResetPassword stores the new hash and unconditionally clears the reset
// challenge in the same update, making the token single-use.
func (r *GormUserRepository) ResetPassword(id uint, passwordHash string) error {
	err := r.db.Model(&domain.User{}).Where("id = ?", id).
		Updates(map[string]any{
			"password_hash":      passwordHash,
			"reset_token":        nil,
			"reset_token_expiry": nil,
		}).Error
	if err != nil {
		observability.RecordRepositoryOperation(context.Background(), "user", "reset_password", "error")
		return err
	}
	observability.RecordRepositoryOperation(context.Background(), "user", "reset_password", "success")
	return nil
}

func (r *GormUserRepository) ClearExpiredResetTokens(now time.Time) (int64, error) {
	res := r.db.Model(&domain.User{}).
		Where("reset_token IS NOT NULL AND reset_token_expiry < ?", now).
		Updates(map[string]any{
			"reset_token":        nil,
			"reset_token_expiry": nil,
		})
	if res.Error != nil {
		observability.RecordRepositoryOperation(context.Background(), "user", "clear_expired_reset_tokens", "error")
		return 0, res.Error
	}
	observability.RecordRepositoryOperation(context.Background(), "user", "clear_expired_reset_tokens", "success")
	return res.RowsAffected, nil
}
