package repository

import (
	"context"

	"gorm.io/gorm"

	"projecthub/internal/model"
)

// SessionRepository defines session persistence operations.
type SessionRepository interface {
	Create(ctx context.Context, session *model.Session) error
	DeleteByCode(ctx context.Context, code string) (int64, error)
}

type sessionRepository struct {
	db *gorm.DB
}

// NewSessionRepository builds a GORM-backed repository.
func NewSessionRepository(db *gorm.DB) SessionRepository {
	return &sessionRepository{db: db}
}

func (r *sessionRepository) Create(ctx context.Context, session *model.Session) error {
	return r.db.WithContext(ctx).Create(session).Error
}

// DeleteByCode consumes a session; zero rows means the code was never valid.
func (r *sessionRepository) DeleteByCode(ctx context.Context, code string) (int64, error) {
	res := r.db.WithContext(ctx).Where("code = ?", code).Delete(&model.Session{})
	return res.RowsAffected, res.Error
}
