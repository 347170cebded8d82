package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	apperrors "projecthub/internal/errors"
	"projecthub/internal/model"
	"projecthub/internal/permit"
)

func TestUserService_Create(t *testing.T) {
	tests := []struct {
		name          string
		input         CreateUserInput
		setupMock     func(*MockUserRepository, *MockAuthorizer)
		expectedError error
	}{
		{
			name: "successful creation syncs the oracle",
			input: CreateUserInput{
				Email:     "jane.doe@example.com",
				FirstName: "Jane",
				LastName:  "Doe",
				Password:  "password123",
				Role:      model.RoleDeveloper,
			},
			setupMock: func(mRepo *MockUserRepository, mAuth *MockAuthorizer) {
				mRepo.On("CountByEmail", mock.Anything, "JANE.DOE@EXAMPLE.COM").Return(int64(0), nil)
				mRepo.On("Create", mock.Anything, mock.AnythingOfType("*model.User")).Return(nil)
				mAuth.On("SyncUser", mock.Anything, mock.MatchedBy(func(f permit.UserFacts) bool {
					return f.Email == "JANE.DOE@EXAMPLE.COM" && f.Role == model.RoleDeveloper
				})).Return(nil)
			},
			expectedError: nil,
		},
		{
			name: "email conflict is case-insensitive",
			input: CreateUserInput{
				Email:     "Jane.Doe@Example.com",
				FirstName: "Jane",
				LastName:  "Doe",
				Password:  "password123",
				Role:      model.RoleDeveloper,
			},
			setupMock: func(mRepo *MockUserRepository, mAuth *MockAuthorizer) {
				mRepo.On("CountByEmail", mock.Anything, "JANE.DOE@EXAMPLE.COM").Return(int64(1), nil)
			},
			expectedError: apperrors.ErrEmailTaken,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockUserRepository)
			mockAuth := new(MockAuthorizer)
			tt.setupMock(mockRepo, mockAuth)

			svc := NewUserService(mockRepo, mockAuth, nil, newTestLogger())
			user, err := svc.Create(context.Background(), tt.input)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Nil(t, user)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, "JANE.DOE@EXAMPLE.COM", user.Email)
				assert.NotEmpty(t, user.ID)
				assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("password123")))
			}

			mockRepo.AssertExpectations(t)
			mockAuth.AssertExpectations(t)
		})
	}
}

func TestUserService_Create_OracleFailureIsNonFatal(t *testing.T) {
	mockRepo := new(MockUserRepository)
	mockAuth := new(MockAuthorizer)

	mockRepo.On("CountByEmail", mock.Anything, "JANE.DOE@EXAMPLE.COM").Return(int64(0), nil)
	mockRepo.On("Create", mock.Anything, mock.AnythingOfType("*model.User")).Return(nil)
	mockAuth.On("SyncUser", mock.Anything, mock.Anything).Return(assert.AnError)

	svc := NewUserService(mockRepo, mockAuth, nil, newTestLogger())
	user, err := svc.Create(context.Background(), CreateUserInput{
		Email:     "jane.doe@example.com",
		FirstName: "Jane",
		LastName:  "Doe",
		Password:  "password123",
		Role:      model.RoleDeveloper,
	})

	assert.NoError(t, err)
	assert.NotNil(t, user)
}

func TestUserService_GetBySessionCode(t *testing.T) {
	t.Run("resolves the session owner", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		mockRepo.On("FindBySessionCode", mock.Anything, "123456").Return(&model.User{
			ID:   "01HUSERAAAAAAAAAAAAAAAAAAA",
			Role: model.RoleManager,
		}, nil)

		svc := NewUserService(mockRepo, new(MockAuthorizer), nil, newTestLogger())
		user, err := svc.GetBySessionCode(context.Background(), "123456")

		assert.NoError(t, err)
		assert.Equal(t, "01HUSERAAAAAAAAAAAAAAAAAAA", user.ID)
	})

	t.Run("unknown code is an invalid session", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		mockRepo.On("FindBySessionCode", mock.Anything, "000000").Return(nil, gorm.ErrRecordNotFound)

		svc := NewUserService(mockRepo, new(MockAuthorizer), nil, newTestLogger())
		user, err := svc.GetBySessionCode(context.Background(), "000000")

		assert.ErrorIs(t, err, apperrors.ErrInvalidSession)
		assert.Nil(t, user)
	})
}

func TestUserService_Remove(t *testing.T) {
	t.Run("deletes and retracts the oracle identity", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		mockAuth := new(MockAuthorizer)

		mockRepo.On("Delete", mock.Anything, "01HUSERAAAAAAAAAAAAAAAAAAA").Return(int64(1), nil)
		mockAuth.On("DeleteUser", mock.Anything, "01HUSERAAAAAAAAAAAAAAAAAAA").Return(nil)

		svc := NewUserService(mockRepo, mockAuth, nil, newTestLogger())
		err := svc.Remove(context.Background(), "01HUSERAAAAAAAAAAAAAAAAAAA")

		assert.NoError(t, err)
		mockAuth.AssertExpectations(t)
	})

	t.Run("missing row", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		mockRepo.On("Delete", mock.Anything, "01HUSERAAAAAAAAAAAAAAAAAAA").Return(int64(0), nil)

		svc := NewUserService(mockRepo, new(MockAuthorizer), nil, newTestLogger())
		err := svc.Remove(context.Background(), "01HUSERAAAAAAAAAAAAAAAAAAA")

		assert.ErrorIs(t, err, apperrors.ErrUserNotFound)
	})
}
