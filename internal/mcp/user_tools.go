package mcp

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"projecthub/internal/permit"
)

func (s *Server) registerUserTools(srv *server.MCPServer) {
	srv.AddTool(mcp.NewTool("list-users",
		mcp.WithDescription("List all registered users in the system, returning the user profile information."),
		mcp.WithString("sessionCode", mcp.Required(), mcp.Description("Session code obtained from the login tool")),
	), func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		_, denied := s.authorize(ctx, req, permit.ResourceUser, permit.ActionRead)
		if denied != nil {
			return denied, nil
		}

		users, err := s.users.List(ctx)
		if err != nil {
			return nil, err
		}
		return jsonResult(users)
	})

	srv.AddTool(mcp.NewTool("my-profile",
		mcp.WithDescription("Get a detailed profile of the user based on its session code, the data includes the user's email, name, and role."),
		mcp.WithString("sessionCode", mcp.Required(), mcp.Description("Session code obtained from the login tool")),
	), func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		user, denied := s.authorize(ctx, req, permit.ResourceUser, permit.ActionRead)
		if denied != nil {
			return denied, nil
		}

		profile, err := s.users.GetByID(ctx, user.ID)
		if err != nil {
			return mcp.NewToolResultText(msgInvalidSession), nil
		}
		return jsonResult(profile)
	})

	srv.AddTool(mcp.NewTool("user-profile",
		mcp.WithDescription("Get a detailed profile of the user based on the provided email."),
		mcp.WithString("sessionCode", mcp.Required(), mcp.Description("Session code obtained from the login tool")),
		mcp.WithString("email", mcp.Required(), mcp.Description("Email address of the user to look up")),
	), func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		_, denied := s.authorize(ctx, req, permit.ResourceUser, permit.ActionRead)
		if denied != nil {
			return denied, nil
		}

		email, err := req.RequireString("email")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		profile, err := s.users.GetByEmail(ctx, email)
		if err != nil {
			return mcp.NewToolResultText(fmt.Sprintf(msgUserNotFound, email)), nil
		}
		return jsonResult(profile)
	})
}
