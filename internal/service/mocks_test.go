package service

import (
	"context"

	"github.com/stretchr/testify/mock"

	"projecthub/internal/model"
	"projecthub/internal/permit"
)

// Shared testify mocks for the repository and oracle interfaces the services
// depend on.

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id string) (*model.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) FindBySessionCode(ctx context.Context, code string) (*model.User, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) List(ctx context.Context) ([]model.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.User), args.Error(1)
}

func (m *MockUserRepository) CountByEmail(ctx context.Context, email string) (int64, error) {
	args := m.Called(ctx, email)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockUserRepository) Delete(ctx context.Context, id string) (int64, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(int64), args.Error(1)
}

type MockSessionRepository struct {
	mock.Mock
}

func (m *MockSessionRepository) Create(ctx context.Context, session *model.Session) error {
	args := m.Called(ctx, session)
	return args.Error(0)
}

func (m *MockSessionRepository) DeleteByCode(ctx context.Context, code string) (int64, error) {
	args := m.Called(ctx, code)
	return args.Get(0).(int64), args.Error(1)
}

type MockEpicRepository struct {
	mock.Mock
}

func (m *MockEpicRepository) Create(ctx context.Context, epic *model.Epic) error {
	args := m.Called(ctx, epic)
	return args.Error(0)
}

func (m *MockEpicRepository) FindByID(ctx context.Context, id string) (*model.Epic, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Epic), args.Error(1)
}

func (m *MockEpicRepository) List(ctx context.Context) ([]model.Epic, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Epic), args.Error(1)
}

func (m *MockEpicRepository) ListForUser(ctx context.Context, userID string) ([]model.Epic, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Epic), args.Error(1)
}

func (m *MockEpicRepository) Exists(ctx context.Context, id string) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockEpicRepository) UpdateTitle(ctx context.Context, id, title string) error {
	args := m.Called(ctx, id, title)
	return args.Error(0)
}

func (m *MockEpicRepository) Delete(ctx context.Context, id string) (int64, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockEpicRepository) TaskCount(ctx context.Context, id string) (int64, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockEpicRepository) AssigneeCount(ctx context.Context, id string) (int64, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockEpicRepository) Statistics(ctx context.Context, scopeUserID string) ([]model.EpicStatistics, error) {
	args := m.Called(ctx, scopeUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.EpicStatistics), args.Error(1)
}

type MockTaskRepository struct {
	mock.Mock
}

func (m *MockTaskRepository) Create(ctx context.Context, task *model.Task) error {
	args := m.Called(ctx, task)
	return args.Error(0)
}

func (m *MockTaskRepository) FindByID(ctx context.Context, id string) (*model.Task, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Task), args.Error(1)
}

func (m *MockTaskRepository) List(ctx context.Context, epicID, createdBy string) ([]model.Task, error) {
	args := m.Called(ctx, epicID, createdBy)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Task), args.Error(1)
}

func (m *MockTaskRepository) Exists(ctx context.Context, id string) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockTaskRepository) UpdateDetails(ctx context.Context, id, title, description string) error {
	args := m.Called(ctx, id, title, description)
	return args.Error(0)
}

func (m *MockTaskRepository) SetAssignee(ctx context.Context, id string, userID *string) error {
	args := m.Called(ctx, id, userID)
	return args.Error(0)
}

func (m *MockTaskRepository) LogWork(ctx context.Context, id, status string, incrementMinutes int64) error {
	args := m.Called(ctx, id, status, incrementMinutes)
	return args.Error(0)
}

func (m *MockTaskRepository) Delete(ctx context.Context, id string) (int64, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockTaskRepository) CommentCount(ctx context.Context, id string) (int64, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockTaskRepository) StatsByAssignee(ctx context.Context) ([]model.UserTaskCount, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.UserTaskCount), args.Error(1)
}

func (m *MockTaskRepository) StatsByComments(ctx context.Context) ([]model.TaskCommentCount, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.TaskCommentCount), args.Error(1)
}

type MockCommentRepository struct {
	mock.Mock
}

func (m *MockCommentRepository) Create(ctx context.Context, comment *model.Comment) error {
	args := m.Called(ctx, comment)
	return args.Error(0)
}

func (m *MockCommentRepository) FindByID(ctx context.Context, id string) (*model.Comment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Comment), args.Error(1)
}

func (m *MockCommentRepository) List(ctx context.Context, taskID string) ([]model.Comment, error) {
	args := m.Called(ctx, taskID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Comment), args.Error(1)
}

func (m *MockCommentRepository) Exists(ctx context.Context, id string) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockCommentRepository) UpdateContent(ctx context.Context, id, content string) error {
	args := m.Called(ctx, id, content)
	return args.Error(0)
}

func (m *MockCommentRepository) Delete(ctx context.Context, id string) (int64, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(int64), args.Error(1)
}

type MockAuthorizer struct {
	mock.Mock
}

func (m *MockAuthorizer) Check(ctx context.Context, userKey, action string, res permit.Resource) (bool, error) {
	args := m.Called(ctx, userKey, action, res)
	return args.Bool(0), args.Error(1)
}

func (m *MockAuthorizer) SyncUser(ctx context.Context, u permit.UserFacts) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

func (m *MockAuthorizer) DeleteUser(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func (m *MockAuthorizer) CreateInstance(ctx context.Context, inst permit.InstanceFacts) error {
	args := m.Called(ctx, inst)
	return args.Error(0)
}

func (m *MockAuthorizer) UpdateInstance(ctx context.Context, res permit.Resource, attributes map[string]any) error {
	args := m.Called(ctx, res, attributes)
	return args.Error(0)
}

func (m *MockAuthorizer) DeleteInstance(ctx context.Context, res permit.Resource) error {
	args := m.Called(ctx, res)
	return args.Error(0)
}

func (m *MockAuthorizer) AssignRole(ctx context.Context, a permit.RoleAssignment) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}

func (m *MockAuthorizer) UnassignRole(ctx context.Context, a permit.RoleAssignment) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}

func (m *MockAuthorizer) CreateRelationship(ctx context.Context, t permit.RelationshipTuple) error {
	args := m.Called(ctx, t)
	return args.Error(0)
}

type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) SendSessionCode(ctx context.Context, userID, email, code string) error {
	args := m.Called(ctx, userID, email, code)
	return args.Error(0)
}
