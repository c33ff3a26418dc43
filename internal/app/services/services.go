// Package services contains the business logic between controllers and
// repositories.
package services

import (
	"github.com/kisinia/yosa/internal/app/repositories"
	"github.com/kisinia/yosa/internal/config"
	"github.com/kisinia/yosa/internal/pkg/auth"
	"github.com/kisinia/yosa/internal/pkg/filestorage"
)

// Services holds every service used by the controllers
type Services struct {
	Auth          IAuthService
	Users         IUserService
	Events        IEventService
	Registrations IRegistrationService
	Messages      IMessageService
	Admin         IAdminService
}

// NewServices wires all services with their repositories
func NewServices(
	repos *repositories.Repositories,
	jwtService *auth.JWTService,
	fileStorage filestorage.FileStorage,
	cfg *config.Config,
) *Services {
	return &Services{
		Auth:          NewAuthService(repos.Users, repos.Tokens, jwtService),
		Users:         NewUserService(repos.Users, repos.Registrations, fileStorage),
		Events:        NewEventService(repos.Events, repos.Registrations, repos.Trending, repos.Messages, fileStorage),
		Registrations: NewRegistrationService(repos.Events, repos.Registrations),
		Messages:      NewMessageService(repos.Messages, repos.Users, cfg.Features.FeedbackVisibility),
		Admin:         NewAdminService(repos.Users, repos.Events, repos.Registrations, repos.Messages),
	}
}
