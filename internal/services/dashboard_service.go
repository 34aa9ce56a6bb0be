package services

import (
	"time"

	"gorm.io/gorm"

	"itemvault/internal/dashboard"
	apperrors "itemvault/internal/errors"
	"itemvault/internal/models"
)

// dashboardService computes dashboard aggregates from the stored collections.
type dashboardService struct {
	db  *gorm.DB
	now func() time.Time
}

// NewDashboardService creates a new DashboardServicer.
func NewDashboardService(db *gorm.DB) DashboardServicer {
	return &dashboardService{db: db, now: time.Now}
}

// GetOverview loads every live item and category and aggregates them as of now.
func (s *dashboardService) GetOverview() (*dashboard.Aggregates, error) {
	var items []models.Item
	if err := s.db.Order("created_at DESC").Find(&items).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var categories []models.Category
	if err := s.db.Order("name ASC").Find(&categories).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	agg := dashboard.Compute(items, categories, s.now())
	return &agg, nil
}
