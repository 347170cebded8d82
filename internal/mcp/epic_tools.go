package mcp

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"projecthub/internal/permit"
)

func (s *Server) registerEpicTools(srv *server.MCPServer) {
	srv.AddTool(mcp.NewTool("list-epics",
		mcp.WithDescription("List all epics in the system."),
		mcp.WithString("sessionCode", mcp.Required(), mcp.Description("Session code obtained from the login tool")),
	), func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		user, denied := s.authorize(ctx, req, permit.ResourceEpic, permit.ActionRead)
		if denied != nil {
			return denied, nil
		}

		epics, err := s.epics.List(ctx, user.ID, user.Role)
		if err != nil {
			return nil, err
		}
		return jsonResult(epics)
	})

	srv.AddTool(mcp.NewTool("epic-detail",
		mcp.WithDescription("Get a detailed epic information, contains the epic title, creator, and creation date."),
		mcp.WithString("sessionCode", mcp.Required(), mcp.Description("Session code obtained from the login tool")),
		mcp.WithString("epicId", mcp.Required(), mcp.Description("ID of the epic")),
	), func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		_, denied := s.authorize(ctx, req, permit.ResourceEpic, permit.ActionRead)
		if denied != nil {
			return denied, nil
		}

		epicID, err := req.RequireString("epicId")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		detail, err := s.epics.Get(ctx, epicID)
		if err != nil {
			return mcp.NewToolResultText(msgEpicNotFound), nil
		}
		return jsonResult(detail)
	})

	srv.AddTool(mcp.NewTool("epic-statistics",
		mcp.WithDescription("List all epics along with its task progression statistics."),
		mcp.WithString("sessionCode", mcp.Required(), mcp.Description("Session code obtained from the login tool")),
	), func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		user, denied := s.authorize(ctx, req, permit.ResourceEpic, permit.ActionRead)
		if denied != nil {
			return denied, nil
		}

		stats, err := s.epics.Statistics(ctx, user.ID, user.Role)
		if err != nil {
			return nil, err
		}
		return jsonResult(stats)
	})

	srv.AddTool(mcp.NewTool("create-epic",
		mcp.WithDescription("Create new epic."),
		mcp.WithString("sessionCode", mcp.Required(), mcp.Description("Session code obtained from the login tool")),
		mcp.WithString("title", mcp.Required(), mcp.Description("Title of the new epic")),
	), func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		user, denied := s.authorize(ctx, req, permit.ResourceEpic, permit.ActionCreate)
		if denied != nil {
			return denied, nil
		}

		title, err := req.RequireString("title")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		epic, err := s.epics.Create(ctx, title, user.ID, user.Role)
		if err != nil {
			return nil, err
		}
		return jsonResult(epic)
	})

	srv.AddTool(mcp.NewTool("rename-epic",
		mcp.WithDescription("Rename existing epic title."),
		mcp.WithString("sessionCode", mcp.Required(), mcp.Description("Session code obtained from the login tool")),
		mcp.WithString("epicId", mcp.Required(), mcp.Description("ID of the epic to rename")),
		mcp.WithString("title", mcp.Required(), mcp.Description("New title")),
	), func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		_, denied := s.authorize(ctx, req, permit.ResourceEpic, permit.ActionUpdate)
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

		exists, err := s.epics.Exists(ctx, epicID)
		if err != nil {
			return nil, err
		}
		if !exists {
			return mcp.NewToolResultText(msgEpicNotFound), nil
		}

		epic, err := s.epics.Rename(ctx, epicID, title)
		if err != nil {
			return nil, err
		}
		return jsonResult(epic)
	})

	srv.AddTool(mcp.NewTool("delete-epic",
		mcp.WithDescription("Delete existing epic based on its ID."),
		mcp.WithString("sessionCode", mcp.Required(), mcp.Description("Session code obtained from the login tool")),
		mcp.WithString("epicId", mcp.Required(), mcp.Description("ID of the epic to delete")),
	), func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		_, denied := s.authorize(ctx, req, permit.ResourceEpic, permit.ActionDelete)
		if denied != nil {
			return denied, nil
		}

		epicID, err := req.RequireString("epicId")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		exists, err := s.epics.Exists(ctx, epicID)
		if err != nil {
			return nil, err
		}
		if !exists {
			return mcp.NewToolResultText(msgEpicNotFound), nil
		}

		return mcp.NewToolResultText(deleteMessage("epic", s.epics.Remove(ctx, epicID))), nil
	})
}
