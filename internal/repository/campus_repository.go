package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/adarsh-priydarshi-5646/My-Campus-Hub/internal/domain"
	"github.com/adarsh-priydarshi-5646/My-Campus-Hub/internal/observability"
)

var ErrCollegeNotFound = errors.New("college not found")

type CampusRepository interface {
	ListEvents() ([]domain.Event, error)
	ListMessMenus() ([]domain.MessMenu, error)
	ListHostels() ([]domain.Hostel, error)
	GetCollege() (*domain.College, error)
}

type GormCampusRepository struct{ db *gorm.DB }

func NewCampusRepository(db *gorm.DB) CampusRepository { return &GormCampusRepository{db: db} }

func (r *GormCampusRepository) ListEvents() ([]domain.Event, error) {
	var events []domain.Event
	err := r.db.Order("date").Find(&events).Error
	if err != nil {
		observability.RecordRepositoryOperation(context.Background(), "event", "list", "error")
		return nil, err
	}
	observability.RecordRepositoryOperation(context.Background(), "event", "list", "success")
	return events, nil
}

func (r *GormCampusRepository) ListMessMenus() ([]domain.MessMenu, error) {
	var menus []domain.MessMenu
	err := r.db.Order("id").Find(&menus).Error
	if err != nil {
		observability.RecordRepositoryOperation(context.Background(), "mess_menu", "list", "error")
		return nil, err
	}
	observability.RecordRepositoryOperation(context.Background(), "mess_menu", "list", "success")
	return menus, nil
}

func (r *GormCampusRepository) ListHostels() ([]domain.Hostel, error) {
	var hostels []domain.Hostel
	err := r.db.Order("id").Find(&hostels).Error
	if err != nil {
		observability.RecordRepositoryOperation(context.Background(), "hostel", "list", "error")
		return nil, err
	}
	observability.RecordRepositoryOperation(context.Background(), "hostel", "list", "success")
	return hostels, nil
}

// GetCollege returns the single institution profile row.
func (r *GormCampusRepository) GetCollege() (*domain.College, error) {
	var c domain.College
	err := r.db.First(&c).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			observability.RecordRepositoryOperation(context.Background(), "college", "get", "not_found")
			return nil, ErrCollegeNotFound
		}
		observability.RecordRepositoryOperation(context.Background(), "college", "get", "error")
		return nil, err
	}
	observability.RecordRepositoryOperation(context.Background(), "college", "get", "success")
	return &c, nil
}
