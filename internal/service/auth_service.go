package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"projecthub/internal/auth"
	apperrors "projecthub/internal/errors"
	"projecthub/internal/model"
	"projecthub/internal/notify"
	"projecthub/internal/repository"
)

// AuthService handles both identity mechanisms: bearer tokens for the REST
// surface and numeric session codes for the MCP surface.
type AuthService interface {
	LoginWithPassword(ctx context.Context, email, password string) (token string, user *model.User, err error)
	LoginWithSessionCode(ctx context.Context, email string) (bool, error)
	LogoutSessionCode(ctx context.Context, code string) (bool, error)
}

type authService struct {
	users    repository.UserRepository
	sessions repository.SessionRepository
	jwt      *auth.JWTService
	notifier notify.Notifier
	log      *logrus.Logger
}

// NewAuthService creates a new authentication service.
func NewAuthService(
	users repository.UserRepository,
	sessions repository.SessionRepository,
	jwt *auth.JWTService,
	notifier notify.Notifier,
	log *logrus.Logger,
) AuthService {
	return &authService{
		users:    users,
		sessions: sessions,
		jwt:      jwt,
		notifier: notifier,
		log:      log,
	}
}

// LoginWithPassword verifies the credentials and issues a one-hour access
// token. Unknown email and wrong password produce the same error so callers
// cannot enumerate accounts.
func (s *authService) LoginWithPassword(ctx context.Context, email, password string) (string, *model.User, error) {
	user, err := s.users.FindByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return "", nil, apperrors.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", nil, apperrors.ErrInvalidCredentials
	}

	token, err := s.jwt.GenerateAccessToken(user.ID, user.Role)
	if err != nil {
		return "", nil, fmt.Errorf("generate access token: %w", err)
	}

	return token, user, nil
}

// LoginWithSessionCode issues a 6-digit code for the user behind the email,
// persists it as a session and dispatches it through the notification
// webhook. An unknown email yields false with no session row created.
func (s *authService) LoginWithSessionCode(ctx context.Context, email string) (bool, error) {
	user, err := s.users.FindByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("find user: %w", err)
	}

	code, err := auth.NewSessionCode()
	if err != nil {
		return false, err
	}

	session := &model.Session{
		ID:        newID(),
		Code:      code,
		UserID:    user.ID,
		CreatedAt: time.Now(),
	}
	if err := s.sessions.Create(ctx, session); err != nil {
		return false, fmt.Errorf("create session: %w", err)
	}

	// fire and forget: a lost notification only delays the user
	if err := s.notifier.SendSessionCode(ctx, user.ID, user.Email, code); err != nil {
		s.log.WithError(err).WithField("user", user.ID).Warn("session code notification failed")
	}

	return true, nil
}

// LogoutSessionCode consumes the session row; the code fails resolution from
// then on. Returns false when the code was not a live session.
func (s *authService) LogoutSessionCode(ctx context.Context, code string) (bool, error) {
	rows, err := s.sessions.DeleteByCode(ctx, code)
	if err != nil {
		return false, fmt.Errorf("delete session: %w", err)
	}
	return rows > 0, nil
}
