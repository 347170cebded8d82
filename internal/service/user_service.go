package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"projecthub/internal/cache"
	apperrors "projecthub/internal/errors"
	"projecthub/internal/model"
	"projecthub/internal/permit"
	"projecthub/internal/repository"
)

const (
	bcryptCost   = 10
	userCacheTTL = 5 * time.Minute
)

// CreateUserInput carries the fields of a registration.
type CreateUserInput struct {
	Email     string
	FirstName string
	LastName  string
	Password  string
	Role      string
}

// UserService exposes user domain operations.
type UserService interface {
	List(ctx context.Context) ([]model.User, error)
	GetByID(ctx context.Context, id string) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	GetBySessionCode(ctx context.Context, code string) (*model.User, error)
	Create(ctx context.Context, in CreateUserInput) (*model.User, error)
	Remove(ctx context.Context, id string) error
}

type userService struct {
	repo   repository.UserRepository
	permit permit.Authorizer
	cache  *cache.Client
	log    *logrus.Logger
}

// NewUserService builds a UserService with repository, oracle and cache.
func NewUserService(repo repository.UserRepository, p permit.Authorizer, cache *cache.Client, log *logrus.Logger) UserService {
	return &userService{repo: repo, permit: p, cache: cache, log: log}
}

func (s *userService) cacheKey(id string) string {
	return "user:" + id
}

func (s *userService) List(ctx context.Context) ([]model.User, error) {
	return s.repo.List(ctx)
}

func (s *userService) GetByID(ctx context.Context, id string) (*model.User, error) {
	if data, _ := s.cache.Get(ctx, s.cacheKey(id)); data != nil {
		var cached model.User
		if err := json.Unmarshal(data, &cached); err == nil {
			return &cached, nil
		}
	}

	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}

	if payload, err := json.Marshal(user); err == nil {
		_ = s.cache.Set(ctx, s.cacheKey(user.ID), payload, userCacheTTL)
	}
	return user, nil
}

func (s *userService) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	user, err := s.repo.FindByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user by email: %w", err)
	}
	return user, nil
}

// GetBySessionCode resolves the MCP credential to its user.
func (s *userService) GetBySessionCode(ctx context.Context, code string) (*model.User, error) {
	user, err := s.repo.FindBySessionCode(ctx, code)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrInvalidSession
		}
		return nil, fmt.Errorf("find user by session code: %w", err)
	}
	return user, nil
}

// Create registers a user, rejecting emails that differ from an existing one
// only by letter case, then mirrors the identity and its role into the
// oracle.
func (s *userService) Create(ctx context.Context, in CreateUserInput) (*model.User, error) {
	email := normalizeEmail(in.Email)

	count, err := s.repo.CountByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("check email: %w", err)
	}
	if count > 0 {
		return nil, apperrors.ErrEmailTaken
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{
		ID:           newID(),
		Email:        email,
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		PasswordHash: string(hashed),
		Role:         in.Role,
		CreatedAt:    time.Now(),
	}
	if err := s.repo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	logSyncFailure(s.log, s.permit.SyncUser(ctx, permit.UserFacts{
		Key:       user.ID,
		Email:     user.Email,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Role:      user.Role,
	}), permit.ResourceUser, user.ID, "sync")

	return user, nil
}

// Remove hard-deletes the user and retracts the identity from the oracle.
// Rows authored by the user are left in place.
func (s *userService) Remove(ctx context.Context, id string) error {
	rows, err := s.repo.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	if rows == 0 {
		return apperrors.ErrUserNotFound
	}

	_ = s.cache.Delete(ctx, s.cacheKey(id))
	logSyncFailure(s.log, s.permit.DeleteUser(ctx, id), permit.ResourceUser, id, "delete")
	return nil
}
