package service

import (
	"context"
	"errors"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"projecthub/internal/auth"
	apperrors "projecthub/internal/errors"
	"projecthub/internal/model"
)

func newTestLogger() *logrus.Logger {
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	return log
}

func TestAuthService_LoginWithPassword(t *testing.T) {
	hashed, _ := bcrypt.GenerateFromPassword([]byte("password123"), 10)

	tests := []struct {
		name          string
		email         string
		password      string
		setupMock     func(*MockUserRepository)
		expectedError error
	}{
		{
			name:     "successful login",
			email:    "test@example.com",
			password: "password123",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByEmail", mock.Anything, "TEST@EXAMPLE.COM").Return(&model.User{
					ID:           "01HUSERAAAAAAAAAAAAAAAAAAA",
					Email:        "TEST@EXAMPLE.COM",
					PasswordHash: string(hashed),
					Role:         model.RoleManager,
				}, nil)
			},
			expectedError: nil,
		},
		{
			name:     "unknown email",
			email:    "notfound@example.com",
			password: "password123",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByEmail", mock.Anything, "NOTFOUND@EXAMPLE.COM").Return(nil, gorm.ErrRecordNotFound)
			},
			expectedError: apperrors.ErrInvalidCredentials,
		},
		{
			name:     "wrong password",
			email:    "test@example.com",
			password: "letmein",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByEmail", mock.Anything, "TEST@EXAMPLE.COM").Return(&model.User{
					ID:           "01HUSERAAAAAAAAAAAAAAAAAAA",
					Email:        "TEST@EXAMPLE.COM",
					PasswordHash: string(hashed),
					Role:         model.RoleManager,
				}, nil)
			},
			expectedError: apperrors.ErrInvalidCredentials,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockUsers := new(MockUserRepository)
			tt.setupMock(mockUsers)

			svc := NewAuthService(mockUsers, new(MockSessionRepository), auth.NewJWTService("test-secret"), new(MockNotifier), newTestLogger())
			token, user, err := svc.LoginWithPassword(context.Background(), tt.email, tt.password)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Empty(t, token)
				assert.Nil(t, user)
			} else {
				assert.NoError(t, err)
				assert.NotEmpty(t, token)
				assert.Equal(t, "TEST@EXAMPLE.COM", user.Email)

				claims, err := auth.NewJWTService("test-secret").ValidateToken(token)
				assert.NoError(t, err)
				assert.Equal(t, user.ID, claims.Subject)
				assert.Equal(t, user.Role, claims.Role)
			}

			mockUsers.AssertExpectations(t)
		})
	}
}

func TestAuthService_LoginWithSessionCode(t *testing.T) {
	t.Run("known email creates session and notifies", func(t *testing.T) {
		mockUsers := new(MockUserRepository)
		mockSessions := new(MockSessionRepository)
		mockNotifier := new(MockNotifier)

		user := &model.User{ID: "01HUSERAAAAAAAAAAAAAAAAAAA", Email: "TEST@EXAMPLE.COM"}
		mockUsers.On("FindByEmail", mock.Anything, "TEST@EXAMPLE.COM").Return(user, nil)

		var issuedCode string
		mockSessions.On("Create", mock.Anything, mock.AnythingOfType("*model.Session")).Run(func(args mock.Arguments) {
			session := args.Get(1).(*model.Session)
			issuedCode = session.Code
			assert.Equal(t, user.ID, session.UserID)
		}).Return(nil)
		mockNotifier.On("SendSessionCode", mock.Anything, user.ID, user.Email, mock.AnythingOfType("string")).Return(nil)

		svc := NewAuthService(mockUsers, mockSessions, auth.NewJWTService("test-secret"), mockNotifier, newTestLogger())
		sent, err := svc.LoginWithSessionCode(context.Background(), "test@example.com")

		assert.NoError(t, err)
		assert.True(t, sent)
		assert.Regexp(t, `^[1-9]\d{5}$`, issuedCode)

		mockUsers.AssertExpectations(t)
		mockSessions.AssertExpectations(t)
		mockNotifier.AssertExpectations(t)
	})

	t.Run("unknown email creates nothing", func(t *testing.T) {
		mockUsers := new(MockUserRepository)
		mockSessions := new(MockSessionRepository)

		mockUsers.On("FindByEmail", mock.Anything, "NOBODY@EXAMPLE.COM").Return(nil, gorm.ErrRecordNotFound)

		svc := NewAuthService(mockUsers, mockSessions, auth.NewJWTService("test-secret"), new(MockNotifier), newTestLogger())
		sent, err := svc.LoginWithSessionCode(context.Background(), "nobody@example.com")

		assert.NoError(t, err)
		assert.False(t, sent)
		mockSessions.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("notification failure does not fail the login", func(t *testing.T) {
		mockUsers := new(MockUserRepository)
		mockSessions := new(MockSessionRepository)
		mockNotifier := new(MockNotifier)

		user := &model.User{ID: "01HUSERAAAAAAAAAAAAAAAAAAA", Email: "TEST@EXAMPLE.COM"}
		mockUsers.On("FindByEmail", mock.Anything, "TEST@EXAMPLE.COM").Return(user, nil)
		mockSessions.On("Create", mock.Anything, mock.AnythingOfType("*model.Session")).Return(nil)
		mockNotifier.On("SendSessionCode", mock.Anything, user.ID, user.Email, mock.AnythingOfType("string")).
			Return(errors.New("webhook unavailable"))

		svc := NewAuthService(mockUsers, mockSessions, auth.NewJWTService("test-secret"), mockNotifier, newTestLogger())
		sent, err := svc.LoginWithSessionCode(context.Background(), "test@example.com")

		assert.NoError(t, err)
		assert.True(t, sent)
	})
}

func TestAuthService_LogoutSessionCode(t *testing.T) {
	tests := []struct {
		name     string
		rows     int64
		expected bool
	}{
		{name: "live session revoked", rows: 1, expected: true},
		{name: "unknown code", rows: 0, expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockSessions := new(MockSessionRepository)
			mockSessions.On("DeleteByCode", mock.Anything, "123456").Return(tt.rows, nil)

			svc := NewAuthService(new(MockUserRepository), mockSessions, auth.NewJWTService("test-secret"), new(MockNotifier), newTestLogger())
			revoked, err := svc.LogoutSessionCode(context.Background(), "123456")

			assert.NoError(t, err)
			assert.Equal(t, tt.expected, revoked)
			mockSessions.AssertExpectations(t)
		})
	}
}
