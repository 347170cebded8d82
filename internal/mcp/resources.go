package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"net/url"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"projecthub/internal/model"
	"projecthub/internal/permit"
)

const mimeTypeJSON = "application/json"

// resourceRef is a parsed resource URI of the form
// scheme://{sessionCode}/rest. The session code occupies the authority
// segment so clients can template it uniformly across all resources.
type resourceRef struct {
	SessionCode string
	Rest        string
}

func parseResourceURI(raw string) (resourceRef, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return resourceRef{}, err
	}
	if u.Host == "" {
		return resourceRef{}, errors.New("resource URI is missing the session code")
	}
	return resourceRef{
		SessionCode: u.Host,
		Rest:        strings.TrimPrefix(u.Path, "/"),
	}, nil
}

func (s *Server) registerResources(srv *server.MCPServer) {
	srv.AddResourceTemplate(mcp.NewResourceTemplate(
		"users://{sessionCode}/profile",
		"My profile",
		mcp.WithTemplateDescription("Profile of the user owning the session code."),
		mcp.WithTemplateMIMEType(mimeTypeJSON),
	), func(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		user, err := s.authorizeResource(ctx, req.Params.URI, permit.ResourceUser, permit.ActionRead)
		if err != nil {
			return nil, err
		}
		return s.jsonContents(req.Params.URI, user)
	})

	srv.AddResourceTemplate(mcp.NewResourceTemplate(
		"epics://{sessionCode}/list",
		"Epic list",
		mcp.WithTemplateDescription("Epics visible to the user owning the session code."),
		mcp.WithTemplateMIMEType(mimeTypeJSON),
	), func(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		user, err := s.authorizeResource(ctx, req.Params.URI, permit.ResourceEpic, permit.ActionRead)
		if err != nil {
			return nil, err
		}
		epics, err := s.epics.List(ctx, user.ID, user.Role)
		if err != nil {
			return nil, err
		}
		return s.jsonContents(req.Params.URI, epics)
	})

	srv.AddResourceTemplate(mcp.NewResourceTemplate(
		"tasks://{sessionCode}/list",
		"Task list",
		mcp.WithTemplateDescription("Tasks visible to the user owning the session code."),
		mcp.WithTemplateMIMEType(mimeTypeJSON),
	), func(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		user, err := s.authorizeResource(ctx, req.Params.URI, permit.ResourceTask, permit.ActionRead)
		if err != nil {
			return nil, err
		}
		tasks, err := s.tasks.List(ctx, "", user.ID, user.Role)
		if err != nil {
			return nil, err
		}
		return s.jsonContents(req.Params.URI, tasks)
	})

	srv.AddResourceTemplate(mcp.NewResourceTemplate(
		"comments://{sessionCode}/{taskId}",
		"Task comments",
		mcp.WithTemplateDescription("Comments on the given task."),
		mcp.WithTemplateMIMEType(mimeTypeJSON),
	), func(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		ref, err := parseResourceURI(req.Params.URI)
		if err != nil {
			return nil, err
		}
		if _, err := s.authorizeResource(ctx, req.Params.URI, permit.ResourceComment, permit.ActionRead); err != nil {
			return nil, err
		}
		comments, err := s.comments.List(ctx, ref.Rest)
		if err != nil {
			return nil, err
		}
		return s.jsonContents(req.Params.URI, comments)
	})
}

// authorizeResource is the resource-side twin of authorize: denial surfaces
// as an error because resource reads have no text-content escape hatch.
func (s *Server) authorizeResource(ctx context.Context, uri, resource, action string) (*model.User, error) {
	ref, err := parseResourceURI(uri)
	if err != nil {
		return nil, err
	}

	user, err := s.users.GetBySessionCode(ctx, ref.SessionCode)
	if err != nil {
		return nil, errors.New(msgInvalidSession)
	}

	allowed, err := s.permit.Check(ctx, user.ID, action, permit.Resource{Type: resource})
	if err != nil {
		s.log.WithError(err).Error("authorization check failed")
		allowed = false
	}
	if !allowed {
		return nil, errors.New(msgForbidden)
	}

	return user, nil
}

func (s *Server) jsonContents(uri string, v any) ([]mcp.ResourceContents, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      uri,
			MIMEType: mimeTypeJSON,
			Text:     string(b),
		},
	}, nil
}
