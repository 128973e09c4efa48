package repository

import (
	"github.com/jmoiron/sqlx"
)

type Repositories struct {
	User     UserRepository
	Disaster DisasterRepository
	History  HistoryRepository
	Resource ResourceRepository
	Session  SessionRepository
}

func NewRepositories(db *sqlx.DB) *Repositories {
	return &Repositories{
		User:     NewUserRepository(db),
		Disaster: NewDisasterRepository(db),
		History:  NewHistoryRepository(db),
		Resource: NewResourceRepository(db),
		Session:  NewSessionRepository(db),
	}
}
