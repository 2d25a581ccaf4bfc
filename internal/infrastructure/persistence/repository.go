package persistence

import (
	"github.com/sekai-soft/yurikamome/internal/domain/app"
	"github.com/sekai-soft/yurikamome/internal/domain/session"
	"github.com/sekai-soft/yurikamome/internal/infrastructure/persistence/postgres"
)

// Repositories holds all repository implementations.
type Repositories struct {
	App     app.Repository
	Session session.Repository
}

// NewRepositories creates all repository implementations.
func NewRepositories(db *postgres.DB) *Repositories {
	return &Repositories{
		App:     postgres.NewAppRepository(db),
		Session: postgres.NewSessionRepository(db),
	}
}
