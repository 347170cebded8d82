package mcp

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"projecthub/internal/model"
	"projecthub/internal/permit"
	"projecthub/internal/service"
)

func (s *Server) registerTaskTools(srv *server.MCPServer) {
	srv.AddTool(mcp.NewTool("list-tasks",
		mcp.WithDescription("List available tasks."),
		mcp.WithString("sessionCode", mcp.Required(), mcp.Description("Session code obtained from the login tool")),
		mcp.WithString("epicId", mcp.Description("Optional epic ID to filter by")),
	), func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		user, denied := s.authorize(ctx, req, permit.ResourceTask, permit.ActionRead)
		if denied != nil {
			return denied, nil
		}

		tasks, err := s.tasks.List(ctx, req.GetString("epicId", ""), user.ID, user.Role)
		if err != nil {
			return nil, err
		}
		return jsonResult(tasks)
	})

	srv.AddTool(mcp.NewTool("task-statistics-by-user",
		mcp.WithDescription("Count the number of tasks per user."),
		mcp.WithString("sessionCode", mcp.Required(), mcp.Description("Session code obtained from the login tool")),
	), func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		_, denied := s.authorize(ctx, req, permit.ResourceTask, permit.ActionRead)
		if denied != nil {
			return denied, nil
		}

		stats, err := s.tasks.StatisticsByUser(ctx)
		if err != nil {
			return nil, err
		}
		return jsonResult(stats)
	})

	srv.AddTool(mcp.NewTool("task-statistics-by-task",
		mcp.WithDescription("Count the number of comments per task."),
		mcp.WithString("sessionCode", mcp.Required(), mcp.Description("Session code obtained from the login tool")),
	), func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		_, denied := s.authorize(ctx, req, permit.ResourceTask, permit.ActionRead)
		if denied != nil {
			return denied, nil
		}

		stats, err := s.tasks.StatisticsByTask(ctx)
		if err != nil {
			return nil, err
		}
		return jsonResult(stats)
	})

	srv.AddTool(mcp.NewTool("task-detail",
		mcp.WithDescription("Get a detailed info of a specific task."),
		mcp.WithString("sessionCode", mcp.Required(), mcp.Description("Session code obtained from the login tool")),
		mcp.WithString("taskId", mcp.Required(), mcp.Description("ID of the task")),
	), func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		_, denied := s.authorize(ctx, req, permit.ResourceTask, permit.ActionRead)
		if denied != nil {
			return denied, nil
		}

		taskID, err := req.RequireString("taskId")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		detail, err := s.tasks.Get(ctx, taskID)
		if err != nil {
			return mcp.NewToolResultText(msgTaskNotFound), nil
		}
		return jsonResult(detail)
	})

	srv.AddTool(mcp.NewTool("create-task",
		mcp.WithDescription("Create new task for a specific epic."),
		mcp.WithString("sessionCode", mcp.Required(), mcp.Description("Session code obtained from the login tool")),
		mcp.WithString("epicId", mcp.Required(), mcp.Description("ID of the parent epic")),
		mcp.WithString("title", mcp.Required(), mcp.Description("Title of the new task")),
		mcp.WithString("description", mcp.Required(), mcp.Description("Description of the new task")),
	), func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		user, denied := s.authorize(ctx, req, permit.ResourceTask, permit.ActionCreate)
		if denied != nil {
			return denied, nil
		}

		epicID, err := req.RequireString("epicId")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		title, err := req.RequireString("title")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		description, err := req.RequireString("description")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		task, err := s.tasks.Create(ctx, service.CreateTaskInput{
			EpicID:      epicID,
			Title:       title,
			Description: description,
			UserID:      user.ID,
			Role:        user.Role,
		})
		if err != nil {
			return mcp.NewToolResultText(msgEpicNotFound), nil
		}
		return jsonResult(task)
	})

	srv.AddTool(mcp.NewTool("update-task",
		mcp.WithDescription("Updates task title and content."),
		mcp.WithString("sessionCode", mcp.Required(), mcp.Description("Session code obtained from the login tool")),
		mcp.WithString("taskId", mcp.Required(), mcp.Description("ID of the task to update")),
		mcp.WithString("title", mcp.Required(), mcp.Description("New title")),
		mcp.WithString("description", mcp.Required(), mcp.Description("New description")),
	), func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		_, denied := s.authorize(ctx, req, permit.ResourceTask, permit.ActionUpdate)
		if denied != nil {
			return denied, nil
		}

		taskID, err := req.RequireString("taskId")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		title, err := req.RequireString("title")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		description, err := req.RequireString("description")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		task, err := s.tasks.UpdateDetails(ctx, taskID, title, description)
		if err != nil {
			return mcp.NewToolResultText(msgTaskNotFound), nil
		}
		return jsonResult(task)
	})

	srv.AddTool(mcp.NewTool("delete-task",
		mcp.WithDescription("Delete the specified task."),
		mcp.WithString("sessionCode", mcp.Required(), mcp.Description("Session code obtained from the login tool")),
		mcp.WithString("taskId", mcp.Required(), mcp.Description("ID of the task to delete")),
	), func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		_, denied := s.authorize(ctx, req, permit.ResourceTask, permit.ActionDelete)
		if denied != nil {
			return denied, nil
		}

		taskID, err := req.RequireString("taskId")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		exists, err := s.tasks.Exists(ctx, taskID)
		if err != nil {
			return nil, err
		}
		if !exists {
			return mcp.NewToolResultText(msgTaskNotFound), nil
		}

		return mcp.NewToolResultText(deleteMessage("task", s.tasks.Remove(ctx, taskID))), nil
	})

	srv.AddTool(mcp.NewTool("assign-task",
		mcp.WithDescription("Assign task to a user. Only manager and admin can assign task to users."),
		mcp.WithString("sessionCode", mcp.Required(), mcp.Description("Session code obtained from the login tool")),
		mcp.WithString("taskId", mcp.Required(), mcp.Description("ID of the task to assign")),
		mcp.WithString("userId", mcp.Required(), mcp.Description("ID of the user to assign the task to")),
	), func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		_, denied := s.authorize(ctx, req, permit.ResourceTask, permit.ActionAssign)
		if denied != nil {
			return denied, nil
		}

		taskID, err := req.RequireString("taskId")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		userID, err := req.RequireString("userId")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		task, err := s.tasks.Assign(ctx, taskID, userID)
		if err != nil {
			return mcp.NewToolResultText(msgTaskNotFound), nil
		}
		return jsonResult(task)
	})

	srv.AddTool(mcp.NewTool("unassign-task",
		mcp.WithDescription("Unassign user from a specific task. Only manager and admin can unassign task to users."),
		mcp.WithString("sessionCode", mcp.Required(), mcp.Description("Session code obtained from the login tool")),
		mcp.WithString("taskId", mcp.Required(), mcp.Description("ID of the task to unassign")),
	), func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		_, denied := s.authorize(ctx, req, permit.ResourceTask, permit.ActionUnassign)
		if denied != nil {
			return denied, nil
		}

		taskID, err := req.RequireString("taskId")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		task, err := s.tasks.Unassign(ctx, taskID)
		if err != nil {
			return mcp.NewToolResultText(msgTaskNotFound), nil
		}
		return jsonResult(task)
	})

	srv.AddTool(mcp.NewTool("log-work",
		mcp.WithDescription("Update task status and optionally increase the time spent for a specified task."),
		mcp.WithString("sessionCode", mcp.Required(), mcp.Description("Session code obtained from the login tool")),
		mcp.WithString("taskId", mcp.Required(), mcp.Description("ID of the task")),
		mcp.WithString("status", mcp.Required(),
			mcp.Description("New task status"),
			mcp.Enum(model.StatusTodo, model.StatusInProgress, model.StatusDone),
		),
		mcp.WithNumber("incrementTimeSpentInMinutes",
			mcp.Description("Minutes to add to the task's time spent"),
		),
	), func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		_, denied := s.authorize(ctx, req, permit.ResourceTask, permit.ActionLogWork)
		if denied != nil {
			return denied, nil
		}

		taskID, err := req.RequireString("taskId")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		status, err := req.RequireString("status")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		increment := req.GetFloat("incrementTimeSpentInMinutes", 0)
		if increment < 0 {
			return mcp.NewToolResultError("incrementTimeSpentInMinutes must not be negative"), nil
		}

		task, err := s.tasks.LogWork(ctx, taskID, status, int64(increment))
		if err != nil {
			return mcp.NewToolResultText(msgTaskNotFound), nil
		}
		return jsonResult(task)
	})
}
