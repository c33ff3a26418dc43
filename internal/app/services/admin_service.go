package services

import (
	"context"

	"github.com/kisinia/yosa/internal/app/models/dto"
	"github.com/kisinia/yosa/internal/app/repositories"
)

const (
	adminRecentRegistrations = 10
	adminUpcomingEvents      = 5
	adminRecentFeedback      = 10
)

// IAdminService defines the interface for administrative statistics
type IAdminService interface {
	GetDashboard(ctx context.Context) (*dto.AdminDashboardResponse, error)
}

// AdminService aggregates read-only statistics for staff
type AdminService struct {
	userRepo         repositories.IUserRepository
	eventRepo        repositories.IEventRepository
	registrationRepo repositories.IRegistrationRepository
	messageRepo      repositories.IMessageRepository
}

// NewAdminService creates a new AdminService
func NewAdminService(
	userRepo repositories.IUserRepository,
	eventRepo repositories.IEventRepository,
	registrationRepo repositories.IRegistrationRepository,
	messageRepo repositories.IMessageRepository,
) *AdminService {
	return &AdminService{
		userRepo:         userRepo,
		eventRepo:        eventRepo,
		registrationRepo: registrationRepo,
		messageRepo:      messageRepo,
	}
}

// GetDashboard retrieves platform totals plus recent activity
func (s *AdminService) GetDashboard(ctx context.Context) (*dto.AdminDashboardResponse, error) {
	totalUsers, err := s.userRepo.CountAll(ctx)
	if err != nil {
		return nil, err
	}

	totalEvents, err := s.eventRepo.CountAll(ctx)
	if err != nil {
		return nil, err
	}

	activeEvents, err := s.eventRepo.CountActive(ctx)
	if err != nil {
		return nil, err
	}

	totalRegistrations, err := s.registrationRepo.CountAll(ctx)
	if err != nil {
		return nil, err
	}

	recentRegistrations, err := s.registrationRepo.GetRecent(ctx, adminRecentRegistrations)
	if err != nil {
		return nil, err
	}

	upcomingEvents, err := s.eventRepo.GetNextUpcoming(ctx, adminUpcomingEvents)
	if err != nil {
		return nil, err
	}

	recentFeedback, err := s.messageRepo.GetRecentFeedback(ctx, adminRecentFeedback)
	if err != nil {
		return nil, err
	}

	return &dto.AdminDashboardResponse{
		TotalUsers:          totalUsers,
		TotalEvents:         totalEvents,
		ActiveEvents:        activeEvents,
		TotalRegistrations:  totalRegistrations,
		RecentRegistrations: dto.NewRegistrationResponseList(recentRegistrations),
		UpcomingEvents:      dto.NewEventResponseList(upcomingEvents),
		RecentFeedback:      dto.NewMessageResponseList(recentFeedback),
	}, nil
}
