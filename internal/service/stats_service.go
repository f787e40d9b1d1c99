package service

import (
	"fmt"

	"truongphat/internal/models"
	"truongphat/internal/repository"
)

// DashboardStats is the back-office overview payload.
type DashboardStats struct {
	Staffs          int64            `json:"staffs"`
	Blogs           int64            `json:"blogs"`
	BlogTypes       int64            `json:"blogTypes"`
	Categories      int64            `json:"categories"`
	Projects        int64            `json:"projects"`
	Contacts        int64            `json:"contacts"`
	ContactsByState map[string]int64 `json:"contactsByStatus"`
	RecentContacts  []models.Contact `json:"recentContacts"`
}

// StatsService aggregates dashboard numbers.
type StatsService struct {
	statsRepo   *repository.StatsRepository
	contactRepo *repository.ContactRepository
}

// NewStatsService creates a new stats service.
func NewStatsService(statsRepo *repository.StatsRepository, contactRepo *repository.ContactRepository) *StatsService {
	return &StatsService{statsRepo: statsRepo, contactRepo: contactRepo}
}

// GetDashboardStats collects entity counts and the latest submissions.
func (s *StatsService) GetDashboardStats() (*DashboardStats, error) {
	stats := &DashboardStats{}

	counts := []struct {
		table string
		dest  *int64
	}{
		{"staffs", &stats.Staffs},
		{"blogs", &stats.Blogs},
		{"blog_types", &stats.BlogTypes},
		{"categories", &stats.Categories},
		{"projects", &stats.Projects},
		{"contacts", &stats.Contacts},
	}
	for _, c := range counts {
		count, err := s.statsRepo.CountRows(c.table)
		if err != nil {
			return nil, fmt.Errorf("failed to collect stats: %w", err)
		}
		*c.dest = count
	}

	byStatus, err := s.contactRepo.CountContactsByStatus()
	if err != nil {
		return nil, fmt.Errorf("failed to collect stats: %w", err)
	}
	stats.ContactsByState = byStatus

	recent, _, err := s.contactRepo.ListContacts("", models.Page{Number: 1, Size: 5})
	if err != nil {
		return nil, fmt.Errorf("failed to collect stats: %w", err)
	}
	stats.RecentContacts = recent

	return stats, nil
}
