package mcp

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"projecthub/internal/permit"
	"projecthub/internal/service"
)

func (s *Server) registerCommentTools(srv *server.MCPServer) {
	srv.AddTool(mcp.NewTool("list-comments",
		mcp.WithDescription("List comments for a specific task."),
		mcp.WithString("sessionCode", mcp.Required(), mcp.Description("Session code obtained from the login tool")),
		mcp.WithString("taskId", mcp.Description("Optional task ID to filter by")),
	), func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		_, denied := s.authorize(ctx, req, permit.ResourceComment, permit.ActionRead)
		if denied != nil {
			return denied, nil
		}

		comments, err := s.comments.List(ctx, req.GetString("taskId", ""))
		if err != nil {
			return nil, err
		}
		return jsonResult(comments)
	})

	srv.AddTool(mcp.NewTool("comment-on-task",
		mcp.WithDescription("Create new comment for specific task."),
		mcp.WithString("sessionCode", mcp.Required(), mcp.Description("Session code obtained from the login tool")),
		mcp.WithString("taskId", mcp.Required(), mcp.Description("ID of the task to comment on")),
		mcp.WithString("content", mcp.Required(), mcp.Description("Comment content")),
	), func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		user, denied := s.authorize(ctx, req, permit.ResourceComment, permit.ActionCreate)
		if denied != nil {
			return denied, nil
		}

		taskID, err := req.RequireString("taskId")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		content, err := req.RequireString("content")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		comment, err := s.comments.Create(ctx, service.CreateCommentInput{
			TaskID:  taskID,
			Content: content,
			UserID:  user.ID,
			Role:    user.Role,
		})
		if err != nil {
			return mcp.NewToolResultText(msgTaskNotFound), nil
		}
		return jsonResult(comment)
	})

	srv.AddTool(mcp.NewTool("update-comment",
		mcp.WithDescription("Update existing comment content."),
		mcp.WithString("sessionCode", mcp.Required(), mcp.Description("Session code obtained from the login tool")),
		mcp.WithString("commentId", mcp.Required(), mcp.Description("ID of the comment to update")),
		mcp.WithString("content", mcp.Required(), mcp.Description("New comment content")),
	), func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		_, denied := s.authorize(ctx, req, permit.ResourceComment, permit.ActionUpdate)
		if denied != nil {
			return denied, nil
		}

		commentID, err := req.RequireString("commentId")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		content, err := req.RequireString("content")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		exists, err := s.comments.Exists(ctx, commentID)
		if err != nil {
			return nil, err
		}
		if !exists {
			return mcp.NewToolResultText(msgCommentNotFound), nil
		}

		comment, err := s.comments.UpdateContent(ctx, commentID, content)
		if err != nil {
			return nil, err
		}
		return jsonResult(comment)
	})

	srv.AddTool(mcp.NewTool("delete-comment",
		mcp.WithDescription("Delete comment from a task."),
		mcp.WithString("sessionCode", mcp.Required(), mcp.Description("Session code obtained from the login tool")),
		mcp.WithString("commentId", mcp.Required(), mcp.Description("ID of the comment to delete")),
	), func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		_, denied := s.authorize(ctx, req, permit.ResourceComment, permit.ActionDelete)
		if denied != nil {
			return denied, nil
		}

		commentID, err := req.RequireString("commentId")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		exists, err := s.comments.Exists(ctx, commentID)
		if err != nil {
			return nil, err
		}
		if !exists {
			return mcp.NewToolResultText(msgCommentNotFound), nil
		}

		return mcp.NewToolResultText(deleteMessage("comment", s.comments.Remove(ctx, commentID))), nil
	})
}
