package repository

import "github.com/jmoiron/sqlx"

// Storage groups the repositories the handlers depend on. It is built once at
// startup and passed down explicitly.
type Storage struct {
	Users      UserRepository
	Goals      GoalRepository
	DailyFocus DailyFocusRepository
	Resources  ResourceRepository
}

func NewStorage(db *sqlx.DB) *Storage {
	return &Storage{
		Users:      NewUserRepository(db),
		Goals:      NewGoalRepository(db),
		DailyFocus: NewDailyFocusRepository(db),
		Resources:  NewResourceRepository(db),
	}
}
