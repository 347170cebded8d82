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

const (
	testTaskID = "01HTASKAAAAAAAAAAAAAAAAAAA"
	testEpicID = "01HEPICAAAAAAAAAAAAAAAAAAA"
	testDevA   = "01HDEVAAAAAAAAAAAAAAAAAAAA"
	testDevB   = "01HDEVBBBBBBBBBBBBBBBBBBBB"
)

func TestTaskService_Create(t *testing.T) {
	t.Run("links the task to its parent epic", func(t *testing.T) {
		mockTasks := new(MockTaskRepository)
		mockEpics := new(MockEpicRepository)
		mockAuth := new(MockAuthorizer)

		mockEpics.On("Exists", mock.Anything, testEpicID).Return(true, nil)
		mockTasks.On("Create", mock.Anything, mock.AnythingOfType("*model.Task")).Return(nil)
		mockAuth.On("CreateInstance", mock.Anything, mock.MatchedBy(func(f permit.InstanceFacts) bool {
			return f.Resource == permit.ResourceTask &&
				f.Attributes["status"] == model.StatusTodo &&
				f.Attributes["time_spent"] == int64(0)
		})).Return(nil)
		mockAuth.On("CreateRelationship", mock.Anything, mock.MatchedBy(func(tuple permit.RelationshipTuple) bool {
			return tuple.Subject == permit.Instance(permit.ResourceEpic, testEpicID).String() &&
				tuple.Relation == permit.RelationParent
		})).Return(nil)
		mockAuth.On("AssignRole", mock.Anything, mock.Anything).Return(nil)

		svc := NewTaskService(mockTasks, mockEpics, mockAuth, newTestLogger())
		task, err := svc.Create(context.Background(), CreateTaskInput{
			EpicID:      testEpicID,
			Title:       "Wire up the webhook",
			Description: "Deliver session codes over HTTP.",
			UserID:      "01HMGRAAAAAAAAAAAAAAAAAAAA",
			Role:        model.RoleManager,
		})

		assert.NoError(t, err)
		assert.Equal(t, model.StatusTodo, task.Status)
		assert.Equal(t, int64(0), task.TimeSpent)
		mockAuth.AssertExpectations(t)
	})

	t.Run("unknown epic", func(t *testing.T) {
		mockEpics := new(MockEpicRepository)
		mockEpics.On("Exists", mock.Anything, testEpicID).Return(false, nil)

		svc := NewTaskService(new(MockTaskRepository), mockEpics, new(MockAuthorizer), newTestLogger())
		task, err := svc.Create(context.Background(), CreateTaskInput{
			EpicID: testEpicID,
			Title:  "Wire up the webhook",
			UserID: "01HMGRAAAAAAAAAAAAAAAAAAAA",
			Role:   model.RoleManager,
		})

		assert.ErrorIs(t, err, apperrors.ErrEpicNotFound)
		assert.Nil(t, task)
	})
}

func TestTaskService_Assign_SwapsAssignee(t *testing.T) {
	mockTasks := new(MockTaskRepository)
	mockAuth := new(MockAuthorizer)

	previous := testDevA
	mockTasks.On("FindByID", mock.Anything, testTaskID).Return(&model.Task{
		ID:         testTaskID,
		AssignedTo: &previous,
	}, nil)
	mockAuth.On("UnassignRole", mock.Anything, permit.RoleAssignment{
		User:             testDevA,
		Role:             model.RoleDeveloper,
		ResourceInstance: permit.Instance(permit.ResourceTask, testTaskID).String(),
	}).Return(nil)
	mockTasks.On("SetAssignee", mock.Anything, testTaskID, mock.MatchedBy(func(id *string) bool {
		return id != nil && *id == testDevB
	})).Return(nil)
	mockAuth.On("AssignRole", mock.Anything, permit.RoleAssignment{
		User:             testDevB,
		Role:             model.RoleDeveloper,
		ResourceInstance: permit.Instance(permit.ResourceTask, testTaskID).String(),
	}).Return(nil)

	svc := NewTaskService(mockTasks, new(MockEpicRepository), mockAuth, newTestLogger())
	task, err := svc.Assign(context.Background(), testTaskID, testDevB)

	assert.NoError(t, err)
	assert.NotNil(t, task.AssignedTo)
	assert.Equal(t, testDevB, *task.AssignedTo)
	mockAuth.AssertExpectations(t)
}

func TestTaskService_Assign_RetractionFailureIsNonFatal(t *testing.T) {
	mockTasks := new(MockTaskRepository)
	mockAuth := new(MockAuthorizer)

	previous := testDevA
	mockTasks.On("FindByID", mock.Anything, testTaskID).Return(&model.Task{
		ID:         testTaskID,
		AssignedTo: &previous,
	}, nil)
	mockAuth.On("UnassignRole", mock.Anything, mock.Anything).Return(assert.AnError)
	mockTasks.On("SetAssignee", mock.Anything, testTaskID, mock.Anything).Return(nil)
	mockAuth.On("AssignRole", mock.Anything, mock.Anything).Return(nil)

	svc := NewTaskService(mockTasks, new(MockEpicRepository), mockAuth, newTestLogger())
	_, err := svc.Assign(context.Background(), testTaskID, testDevB)

	assert.NoError(t, err)
}

func TestTaskService_Unassign(t *testing.T) {
	mockTasks := new(MockTaskRepository)
	mockAuth := new(MockAuthorizer)

	previous := testDevA
	mockTasks.On("FindByID", mock.Anything, testTaskID).Return(&model.Task{
		ID:         testTaskID,
		AssignedTo: &previous,
	}, nil)
	mockAuth.On("UnassignRole", mock.Anything, mock.Anything).Return(nil)
	mockTasks.On("SetAssignee", mock.Anything, testTaskID, (*string)(nil)).Return(nil)

	svc := NewTaskService(mockTasks, new(MockEpicRepository), mockAuth, newTestLogger())
	task, err := svc.Unassign(context.Background(), testTaskID)

	assert.NoError(t, err)
	assert.Nil(t, task.AssignedTo)
	mockAuth.AssertExpectations(t)
}

func TestTaskService_LogWork(t *testing.T) {
	t.Run("increments time and pushes attributes", func(t *testing.T) {
		mockTasks := new(MockTaskRepository)
		mockAuth := new(MockAuthorizer)

		mockTasks.On("Exists", mock.Anything, testTaskID).Return(true, nil)
		mockTasks.On("LogWork", mock.Anything, testTaskID, model.StatusInProgress, int64(5)).Return(nil)
		mockTasks.On("FindByID", mock.Anything, testTaskID).Return(&model.Task{
			ID:        testTaskID,
			Status:    model.StatusInProgress,
			TimeSpent: 10,
		}, nil)
		mockAuth.On("UpdateInstance", mock.Anything,
			permit.Instance(permit.ResourceTask, testTaskID),
			map[string]any{"time_spent": int64(10), "status": model.StatusInProgress},
		).Return(nil)

		svc := NewTaskService(mockTasks, new(MockEpicRepository), mockAuth, newTestLogger())
		task, err := svc.LogWork(context.Background(), testTaskID, model.StatusInProgress, 5)

		assert.NoError(t, err)
		assert.Equal(t, int64(10), task.TimeSpent)
		mockAuth.AssertExpectations(t)
	})

	t.Run("unknown task", func(t *testing.T) {
		mockTasks := new(MockTaskRepository)
		mockTasks.On("Exists", mock.Anything, testTaskID).Return(false, nil)

		svc := NewTaskService(mockTasks, new(MockEpicRepository), new(MockAuthorizer), newTestLogger())
		_, err := svc.LogWork(context.Background(), testTaskID, model.StatusDone, 5)

		assert.ErrorIs(t, err, apperrors.ErrTaskNotFound)
	})
}

func TestTaskService_List_ScopesDevelopers(t *testing.T) {
	mockTasks := new(MockTaskRepository)
	mockTasks.On("List", mock.Anything, testEpicID, testDevA).Return([]model.Task{}, nil)

	svc := NewTaskService(mockTasks, new(MockEpicRepository), new(MockAuthorizer), newTestLogger())
	_, err := svc.List(context.Background(), testEpicID, testDevA, model.RoleDeveloper)

	assert.NoError(t, err)
	mockTasks.AssertExpectations(t)
}

func TestTaskService_Remove(t *testing.T) {
	mockTasks := new(MockTaskRepository)
	mockAuth := new(MockAuthorizer)

	mockTasks.On("Delete", mock.Anything, testTaskID).Return(int64(1), nil)
	mockAuth.On("DeleteInstance", mock.Anything, permit.Instance(permit.ResourceTask, testTaskID)).Return(nil)

	svc := NewTaskService(mockTasks, new(MockEpicRepository), mockAuth, newTestLogger())
	assert.NoError(t, svc.Remove(context.Background(), testTaskID))
	mockAuth.AssertExpectations(t)
}
