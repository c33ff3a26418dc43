package repositories

import (
	"github.com/kisinia/yosa/internal/db"
)

// Repositories holds every repository used by the service layer
type Repositories struct {
	Users         IUserRepository
	Events        IEventRepository
	Registrations IRegistrationRepository
	Trending      ITrendingRepository
	Messages      IMessageRepository
	Tokens        ITokenRepository
}

// NewRepositories creates all repositories backed by the given database
func NewRepositories(database *db.PostgresDB) *Repositories {
	return &Repositories{
		Users:         NewUserRepository(database.Pool),
		Events:        NewEventRepository(database.Pool),
		Registrations: NewRegistrationRepository(database),
		Trending:      NewTrendingRepository(database.Pool),
		Messages:      NewMessageRepository(database.Pool),
		Tokens:        NewTokenRepository(database.Pool),
	}
}
