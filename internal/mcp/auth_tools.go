package mcp

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

func (s *Server) registerAuthTools(srv *server.MCPServer) {
	srv.AddTool(mcp.NewTool("login",
		mcp.WithDescription("Authenticate a user by providing an email address. The email will contain a unique session code which will be used for subsequent MCP calls."),
		mcp.WithString("email", mcp.Required(), mcp.Description("Email address of the user to authenticate")),
	), func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		email, err := req.RequireString("email")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		sent, err := s.auth.LoginWithSessionCode(ctx, email)
		if err != nil {
			return nil, err
		}
		if !sent {
			return mcp.NewToolResultText(msgInvalidUser), nil
		}
		return mcp.NewToolResultText(msgSessionCodeSent), nil
	})

	srv.AddTool(mcp.NewTool("logout",
		mcp.WithDescription("Invalidate the provided session code so it will be unusable for subsequent MCP calls, effectively revoking the user access and requiring the user to login again."),
		mcp.WithString("sessionCode", mcp.Required(), mcp.Description("Session code to revoke")),
	), func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		code, err := req.RequireString("sessionCode")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		revoked, err := s.auth.LogoutSessionCode(ctx, code)
		if err != nil {
			return nil, err
		}
		if !revoked {
			return mcp.NewToolResultText(msgInvalidSession), nil
		}
		return mcp.NewToolResultText(msgSessionRevoked), nil
	})
}
