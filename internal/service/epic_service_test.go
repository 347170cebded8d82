package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	apperrors "projecthub/internal/errors"
	"projecthub/internal/model"
	"projecthub/internal/permit"
)

func TestEpicService_List_ScopesDevelopers(t *testing.T) {
	t.Run("developer sees own epics only", func(t *testing.T) {
		mockRepo := new(MockEpicRepository)
		mockRepo.On("ListForUser", mock.Anything, "01HDEVAAAAAAAAAAAAAAAAAAAA").Return([]model.Epic{}, nil)

		svc := NewEpicService(mockRepo, new(MockAuthorizer), newTestLogger())
		_, err := svc.List(context.Background(), "01HDEVAAAAAAAAAAAAAAAAAAAA", model.RoleDeveloper)

		assert.NoError(t, err)
		mockRepo.AssertExpectations(t)
	})

	t.Run("manager sees everything", func(t *testing.T) {
		mockRepo := new(MockEpicRepository)
		mockRepo.On("List", mock.Anything).Return([]model.Epic{}, nil)

		svc := NewEpicService(mockRepo, new(MockAuthorizer), newTestLogger())
		_, err := svc.List(context.Background(), "01HMGRAAAAAAAAAAAAAAAAAAAA", model.RoleManager)

		assert.NoError(t, err)
		mockRepo.AssertExpectations(t)
	})
}

func TestEpicService_Statistics(t *testing.T) {
	mockRepo := new(MockEpicRepository)
	mockRepo.On("Statistics", mock.Anything, "").Return([]model.EpicStatistics{
		{EpicID: "01HEPICAAAAAAAAAAAAAAAAAAA", TaskCount: 4, CompletedTaskCount: 1},
		{EpicID: "01HEPICBBBBBBBBBBBBBBBBBBB", TaskCount: 3, CompletedTaskCount: 2},
		{EpicID: "01HEPICCCCCCCCCCCCCCCCCCCC", TaskCount: 2, CompletedTaskCount: 2},
	}, nil)

	svc := NewEpicService(mockRepo, new(MockAuthorizer), newTestLogger())
	stats, err := svc.Statistics(context.Background(), "01HMGRAAAAAAAAAAAAAAAAAAAA", model.RoleManager)

	assert.NoError(t, err)
	assert.Equal(t, 25, stats[0].CompletionPercentage)
	assert.Equal(t, 67, stats[1].CompletionPercentage)
	assert.Equal(t, 100, stats[2].CompletionPercentage)
}

func TestEpicService_Statistics_DeveloperScope(t *testing.T) {
	mockRepo := new(MockEpicRepository)
	mockRepo.On("Statistics", mock.Anything, "01HDEVAAAAAAAAAAAAAAAAAAAA").Return([]model.EpicStatistics{}, nil)

	svc := NewEpicService(mockRepo, new(MockAuthorizer), newTestLogger())
	_, err := svc.Statistics(context.Background(), "01HDEVAAAAAAAAAAAAAAAAAAAA", model.RoleDeveloper)

	assert.NoError(t, err)
	mockRepo.AssertExpectations(t)
}

func TestEpicService_Create(t *testing.T) {
	t.Run("manager gets an instance role grant", func(t *testing.T) {
		mockRepo := new(MockEpicRepository)
		mockAuth := new(MockAuthorizer)

		mockRepo.On("Create", mock.Anything, mock.AnythingOfType("*model.Epic")).Return(nil)
		mockAuth.On("CreateInstance", mock.Anything, mock.MatchedBy(func(f permit.InstanceFacts) bool {
			return f.Resource == permit.ResourceEpic && f.Key != ""
		})).Return(nil)
		mockAuth.On("AssignRole", mock.Anything, mock.MatchedBy(func(a permit.RoleAssignment) bool {
			return a.User == "01HMGRAAAAAAAAAAAAAAAAAAAA" && a.Role == model.RoleManager
		})).Return(nil)

		svc := NewEpicService(mockRepo, mockAuth, newTestLogger())
		epic, err := svc.Create(context.Background(), "Checkout revamp", "01HMGRAAAAAAAAAAAAAAAAAAAA", model.RoleManager)

		assert.NoError(t, err)
		assert.Equal(t, "Checkout revamp", epic.Title)
		assert.Equal(t, "01HMGRAAAAAAAAAAAAAAAAAAAA", epic.CreatedBy)
		mockAuth.AssertExpectations(t)
	})

	t.Run("admin gets no instance role grant", func(t *testing.T) {
		mockRepo := new(MockEpicRepository)
		mockAuth := new(MockAuthorizer)

		mockRepo.On("Create", mock.Anything, mock.AnythingOfType("*model.Epic")).Return(nil)
		mockAuth.On("CreateInstance", mock.Anything, mock.Anything).Return(nil)

		svc := NewEpicService(mockRepo, mockAuth, newTestLogger())
		_, err := svc.Create(context.Background(), "Checkout revamp", "01HADMAAAAAAAAAAAAAAAAAAAA", model.RoleAdmin)

		assert.NoError(t, err)
		mockAuth.AssertNotCalled(t, "AssignRole", mock.Anything, mock.Anything)
	})
}

func TestEpicService_Remove(t *testing.T) {
	t.Run("deletes and retracts the instance", func(t *testing.T) {
		mockRepo := new(MockEpicRepository)
		mockAuth := new(MockAuthorizer)

		mockRepo.On("Delete", mock.Anything, "01HEPICAAAAAAAAAAAAAAAAAAA").Return(int64(1), nil)
		mockAuth.On("DeleteInstance", mock.Anything, permit.Instance(permit.ResourceEpic, "01HEPICAAAAAAAAAAAAAAAAAAA")).Return(nil)

		svc := NewEpicService(mockRepo, mockAuth, newTestLogger())
		assert.NoError(t, svc.Remove(context.Background(), "01HEPICAAAAAAAAAAAAAAAAAAA"))
		mockAuth.AssertExpectations(t)
	})

	t.Run("missing row", func(t *testing.T) {
		mockRepo := new(MockEpicRepository)
		mockRepo.On("Delete", mock.Anything, "01HEPICAAAAAAAAAAAAAAAAAAA").Return(int64(0), nil)

		svc := NewEpicService(mockRepo, new(MockAuthorizer), newTestLogger())
		err := svc.Remove(context.Background(), "01HEPICAAAAAAAAAAAAAAAAAAA")

		assert.ErrorIs(t, err, apperrors.ErrEpicNotFound)
	})
}

func TestEpicService_Get(t *testing.T) {
	mockRepo := new(MockEpicRepository)
	mockRepo.On("FindByID", mock.Anything, "01HEPICAAAAAAAAAAAAAAAAAAA").Return(&model.Epic{
		ID:    "01HEPICAAAAAAAAAAAAAAAAAAA",
		Title: "Checkout revamp",
	}, nil)
	mockRepo.On("TaskCount", mock.Anything, "01HEPICAAAAAAAAAAAAAAAAAAA").Return(int64(7), nil)
	mockRepo.On("AssigneeCount", mock.Anything, "01HEPICAAAAAAAAAAAAAAAAAAA").Return(int64(3), nil)

	svc := NewEpicService(mockRepo, new(MockAuthorizer), newTestLogger())
	detail, err := svc.Get(context.Background(), "01HEPICAAAAAAAAAAAAAAAAAAA")

	assert.NoError(t, err)
	assert.Equal(t, int64(7), detail.TaskCount)
	assert.Equal(t, int64(3), detail.AssigneeCount)
}
