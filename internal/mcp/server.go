// Package mcp exposes the project-management operations as MCP tools and
// resources over stdio. Every tool takes a session code as its first argument;
// the code is resolved to a user through the sessions join and the call is
// checked against the authorization oracle before the handler runs.
package mcp

import (
	"context"
	"encoding/json"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/sirupsen/logrus"

	"projecthub/internal/model"
	"projecthub/internal/permit"
	"projecthub/internal/service"
)

const (
	ServerName    = "projecthub"
	ServerVersion = "1.0.0"
)

const (
	msgForbidden       = "You are not permitted to access this resource"
	msgInvalidSession  = "Session is invalid, check your session code again or login again"
	msgInvalidUser     = "User with the specified email and or password is not found"
	msgSessionCodeSent = "We have sent you the 6 digit code via email"
	msgSessionRevoked  = "User has been logged out and session is now invalid"

	msgUserNotFound    = "User with email %s not found"
	msgEpicNotFound    = "Epic not found"
	msgTaskNotFound    = "Task not found"
	msgCommentNotFound = "Comment not found"
)

// Server holds the services the tools and resources delegate to.
type Server struct {
	auth     service.AuthService
	users    service.UserService
	epics    service.EpicService
	tasks    service.TaskService
	comments service.CommentService
	permit   permit.Authorizer
	log      *logrus.Logger
}

// NewServer registers all tools and resource templates on a stdio-ready MCP
// server.
func NewServer(
	auth service.AuthService,
	users service.UserService,
	epics service.EpicService,
	tasks service.TaskService,
	comments service.CommentService,
	authorizer permit.Authorizer,
	log *logrus.Logger,
) *server.MCPServer {
	s := &Server{
		auth:     auth,
		users:    users,
		epics:    epics,
		tasks:    tasks,
		comments: comments,
		permit:   authorizer,
		log:      log,
	}

	srv := server.NewMCPServer(ServerName, ServerVersion,
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, true),
	)

	s.registerAuthTools(srv)
	s.registerUserTools(srv)
	s.registerEpicTools(srv)
	s.registerTaskTools(srv)
	s.registerCommentTools(srv)
	s.registerResources(srv)

	return srv
}

// authorize resolves the sessionCode argument to a user and asks the oracle
// for a type-level decision. A non-nil result short-circuits the tool call;
// an unreachable oracle denies.
func (s *Server) authorize(ctx context.Context, req mcp.CallToolRequest, resource, action string) (*model.User, *mcp.CallToolResult) {
	code, err := req.RequireString("sessionCode")
	if err != nil {
		return nil, mcp.NewToolResultError(err.Error())
	}

	user, err := s.users.GetBySessionCode(ctx, code)
	if err != nil {
		return nil, mcp.NewToolResultText(msgForbidden)
	}

	allowed, err := s.permit.Check(ctx, user.ID, action, permit.Resource{Type: resource})
	if err != nil {
		s.log.WithError(err).WithFields(logrus.Fields{
			"userId":   user.ID,
			"action":   action,
			"resource": resource,
		}).Error("authorization check failed")
		allowed = false
	}
	if !allowed {
		return nil, mcp.NewToolResultText(msgForbidden)
	}

	return user, nil
}

// jsonResult renders v as a single JSON text content block.
func jsonResult(v any) (*mcp.CallToolResult, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return mcp.NewToolResultText(string(b)), nil
}

func deleteMessage(resource string, err error) string {
	if err != nil {
		return "Failed to delete " + resource + ", it is not exists or already deleted"
	}
	return resource + " deleted successfully"
}
