package dashboard

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/skous2/nails-by-brooke/internal/model"
	"github.com/skous2/nails-by-brooke/internal/repository"
	apperrors "github.com/skous2/nails-by-brooke/pkg/errors"
)

const (
	DefaultRecentLimit = 5
	MaxRecentLimit     = 50

	activityMonths = 6
)

type Service struct {
	repo repository.DashboardRepository
	now  func() time.Time
}

func NewService(repo repository.DashboardRepository) *Service {
	return &Service{repo: repo, now: time.Now}
}

// Stats returns the headline figures plus appointment activity for the last
// six months, newest month first.
func (s *Service) Stats(ctx context.Context, userID uuid.UUID, dates model.DateRange) (*model.DashboardStats, error) {
	if dates.Start != nil && dates.End != nil && dates.End.Before(dates.Start.Time) {
		return nil, apperrors.Validation("End date must not be before start date")
	}

	stats, err := s.repo.Stats(ctx, userID, dates)
	if err != nil {
		return nil, fmt.Errorf("failed to get stats: %w", err)
	}

	now := s.now().UTC().AddDate(0, -activityMonths, 0)
	since := model.NewDate(now.Year(), now.Month(), now.Day())

	activity, err := s.repo.MonthlyActivity(ctx, userID, since)
	if err != nil {
		return nil, fmt.Errorf("failed to get monthly activity: %w", err)
	}
	if activity == nil {
		activity = []model.MonthlyActivity{}
	}
	stats.AppointmentsByMonth = activity
	return stats, nil
}

// Recent returns the newest appointments. limit must be within 1..MaxRecentLimit.
func (s *Service) Recent(ctx context.Context, userID uuid.UUID, limit int) ([]model.RecentAppointment, error) {
	if limit < 1 || limit > MaxRecentLimit {
		return nil, apperrors.Validation(fmt.Sprintf("Limit must be between 1 and %d", MaxRecentLimit))
	}

	recent, err := s.repo.Recent(ctx, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get recent appointments: %w", err)
	}
	if recent == nil {
		recent = []model.RecentAppointment{}
	}
	return recent, nil
}
