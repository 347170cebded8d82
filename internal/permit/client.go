package permit

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

const clientTimeout = 10 * time.Second

// Client talks to the policy decision point over HTTP. Check answers
// allow/deny; the remaining methods write facts. Callers decide whether a
// failure propagates: authorization checks fail closed, post-commit fact
// syncs are logged by the services and dropped.
type Client struct {
	baseURL string
	token   string
	tenant  string
	http    *http.Client
}

var _ Authorizer = (*Client)(nil)

// NewClient creates a PDP client for the given base URL, API token and tenant.
func NewClient(baseURL, token, tenant string) *Client {
	return &Client{
		baseURL: baseURL,
		token:   token,
		tenant:  tenant,
		http:    &http.Client{Timeout: clientTimeout},
	}
}

type checkRequest struct {
	User     checkUser     `json:"user"`
	Action   string        `json:"action"`
	Resource checkResource `json:"resource"`
}

type checkUser struct {
	Key string `json:"key"`
}

type checkResource struct {
	Type   string `json:"type"`
	Key    string `json:"key,omitempty"`
	Tenant string `json:"tenant"`
}

type checkResponse struct {
	Allow bool `json:"allow"`
}

// Check asks the PDP whether userKey may perform action on res.
func (c *Client) Check(ctx context.Context, userKey, action string, res Resource) (bool, error) {
	body := checkRequest{
		User:   checkUser{Key: userKey},
		Action: action,
		Resource: checkResource{
			Type:   res.Type,
			Key:    res.Key,
			Tenant: c.tenant,
		},
	}

	var resp checkResponse
	if err := c.do(ctx, http.MethodPost, "/allowed", body, &resp); err != nil {
		return false, fmt.Errorf("pdp check: %w", err)
	}
	return resp.Allow, nil
}

// SyncUser mirrors a user and its tenant-wide role assignment into the PDP.
func (c *Client) SyncUser(ctx context.Context, u UserFacts) error {
	body := map[string]any{
		"key":        u.Key,
		"email":      u.Email,
		"first_name": u.FirstName,
		"last_name":  u.LastName,
		"attributes": map[string]any{},
		"role_assignments": []map[string]string{
			{"role": u.Role, "tenant": c.tenant},
		},
	}
	return c.do(ctx, http.MethodPut, "/facts/users", body, nil)
}

// DeleteUser retracts a user identity from the PDP.
func (c *Client) DeleteUser(ctx context.Context, key string) error {
	return c.do(ctx, http.MethodDelete, "/facts/users/"+url.PathEscape(key), nil, nil)
}

// CreateInstance registers a resource instance.
func (c *Client) CreateInstance(ctx context.Context, inst InstanceFacts) error {
	body := map[string]any{
		"key":      inst.Key,
		"resource": inst.Resource,
		"tenant":   c.tenant,
	}
	if inst.Attributes != nil {
		body["attributes"] = inst.Attributes
	}
	return c.do(ctx, http.MethodPost, "/facts/resource_instances", body, nil)
}

// UpdateInstance replaces the attributes of an existing resource instance.
func (c *Client) UpdateInstance(ctx context.Context, res Resource, attributes map[string]any) error {
	path := "/facts/resource_instances/" + url.PathEscape(res.String())
	return c.do(ctx, http.MethodPatch, path, map[string]any{"attributes": attributes}, nil)
}

// DeleteInstance retracts a resource instance.
func (c *Client) DeleteInstance(ctx context.Context, res Resource) error {
	return c.do(ctx, http.MethodDelete, "/facts/resource_instances/"+url.PathEscape(res.String()), nil, nil)
}

// AssignRole grants a role, instance-scoped when a.ResourceInstance is set.
func (c *Client) AssignRole(ctx context.Context, a RoleAssignment) error {
	return c.do(ctx, http.MethodPost, "/facts/role_assignments", c.assignmentBody(a), nil)
}

// UnassignRole revokes a previously granted role.
func (c *Client) UnassignRole(ctx context.Context, a RoleAssignment) error {
	return c.do(ctx, http.MethodDelete, "/facts/role_assignments", c.assignmentBody(a), nil)
}

// CreateRelationship records a relationship tuple between two instances.
func (c *Client) CreateRelationship(ctx context.Context, t RelationshipTuple) error {
	body := map[string]string{
		"subject":  t.Subject,
		"relation": t.Relation,
		"object":   t.Object,
		"tenant":   c.tenant,
	}
	return c.do(ctx, http.MethodPost, "/facts/relationship_tuples", body, nil)
}

func (c *Client) assignmentBody(a RoleAssignment) map[string]string {
	body := map[string]string{
		"user":   a.User,
		"role":   a.Role,
		"tenant": c.tenant,
	}
	if a.ResourceInstance != "" {
		body["resource_instance"] = a.ResourceInstance
	}
	return body
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var payload io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		payload = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, payload)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("%s %s: status %d: %s", method, path, resp.StatusCode, msg)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}
