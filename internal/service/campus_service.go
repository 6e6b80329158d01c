package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/adarsh-priydarshi-5646/My-Campus-Hub/internal/domain"
	"github.com/adarsh-priydarshi-5646/My-Campus-Hub/internal/repository"
)

// CollegeStat is one figure from the institution profile, e.g. student
// headcount or placement rate.
type CollegeStat struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

type CollegeView struct {
	ID         uint          `json:"id"`
	Name       string        `json:"name"`
	Tagline    string        `json:"tagline"`
	Location   string        `json:"location"`
	About      string        `json:"about"`
	Stats      []CollegeStat `json:"stats"`
	Facilities []string      `json:"facilities"`
}

// CampusService serves campus-life reads (events, mess, hostels, college
// profile) through the same cache discipline as the academics side.
type CampusService struct {
	repo  repository.CampusRepository
	cache ContentCacheStore
	ttl   time.Duration
}

func NewCampusService(repo repository.CampusRepository, cache ContentCacheStore, ttl time.Duration) *CampusService {
	return &CampusService{repo: repo, cache: cache, ttl: ttl}
}

func (s *CampusService) Events(ctx context.Context) ([]domain.Event, error) {
	var cached []domain.Event
	if cacheRead(ctx, s.cache, "campus.events", "all", &cached) {
		return cached, nil
	}
	events, err := s.repo.ListEvents()
	if err != nil {
		return nil, err
	}
	cacheWrite(ctx, s.cache, "campus.events", "all", events, s.ttl)
	return events, nil
}

func (s *CampusService) MessMenu(ctx context.Context) ([]domain.MessMenu, error) {
	var cached []domain.MessMenu
	if cacheRead(ctx, s.cache, "campus.mess", "all", &cached) {
		return cached, nil
	}
	menus, err := s.repo.ListMessMenus()
	if err != nil {
		return nil, err
	}
	cacheWrite(ctx, s.cache, "campus.mess", "all", menus, s.ttl)
	return menus, nil
}

func (s *CampusService) Hostels(ctx context.Context) ([]domain.Hostel, error) {
	var cached []domain.Hostel
	if cacheRead(ctx, s.cache, "campus.hostels", "all", &cached) {
		return cached, nil
	}
	hostels, err := s.repo.ListHostels()
	if err != nil {
		return nil, err
	}
	cacheWrite(ctx, s.cache, "campus.hostels", "all", hostels, s.ttl)
	return hostels, nil
}

func (s *CampusService) College(ctx context.Context) (*CollegeView, error) {
	var cached CollegeView
	if cacheRead(ctx, s.cache, "campus.college", "profile", &cached) {
		return &cached, nil
	}
	college, err := s.repo.GetCollege()
	if err != nil {
		return nil, err
	}
	view := collegeView(college)
	cacheWrite(ctx, s.cache, "campus.college", "profile", view, s.ttl)
	return view, nil
}

func collegeView(c *domain.College) *CollegeView {
	view := &CollegeView{
		ID:         c.ID,
		Name:       c.Name,
		Tagline:    c.Tagline,
		Location:   c.Location,
		About:      c.About,
		Stats:      []CollegeStat{},
		Facilities: []string{},
	}
	if c.Stats != "" {
		var stats []CollegeStat
		if err := json.Unmarshal([]byte(c.Stats), &stats); err == nil {
			view.Stats = stats
		}
	}
	if c.Facilities != "" {
		var facilities []string
		if err := json.Unmarshal([]byte(c.Facilities), &facilities); err == nil {
			view.Facilities = facilities
		}
	}
	return view
}
