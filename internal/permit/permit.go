// Package permit adapts the external policy decision point. Every protected
// call funnels through Check, and every local mutation mirrors its facts into
// the PDP through the sync methods so policy rules can reference them.
package permit

import "context"

// Resource names registered in the policy service.
const (
	ResourceUser    = "User"
	ResourceEpic    = "Epic"
	ResourceTask    = "Task"
	ResourceComment = "Comment"
)

// Actions the policy service knows about.
const (
	ActionCreate   = "create"
	ActionRead     = "read"
	ActionUpdate   = "update"
	ActionDelete   = "delete"
	ActionAssign   = "assign"
	ActionUnassign = "unassigned"
	ActionLogWork  = "log-work"
)

// RelationParent links a child instance to its containing instance.
const RelationParent = "parent"

// Resource identifies a resource type, optionally narrowed to one instance.
type Resource struct {
	Type string
	Key  string
}

// Instance returns the resource narrowed to a single instance key.
func Instance(resourceType, key string) Resource {
	return Resource{Type: resourceType, Key: key}
}

// String renders the "Type" or "Type:key" form the PDP expects.
func (r Resource) String() string {
	if r.Key == "" {
		return r.Type
	}
	return r.Type + ":" + r.Key
}

// UserFacts mirrors a local user into the policy service's fact store.
type UserFacts struct {
	Key       string `json:"key"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Role      string `json:"-"`
}

// InstanceFacts registers a resource instance, optionally with attributes
// usable in attribute-based policy rules.
type InstanceFacts struct {
	Key        string         `json:"key"`
	Resource   string         `json:"resource"`
	Attributes map[string]any `json:"attributes,omitempty"`
}

// RoleAssignment grants or revokes a role, either tenant-wide (empty
// ResourceInstance) or on one specific instance.
type RoleAssignment struct {
	User             string `json:"user"`
	Role             string `json:"role"`
	ResourceInstance string `json:"resource_instance,omitempty"`
}

// RelationshipTuple records a subject-relation-object fact between instances.
type RelationshipTuple struct {
	Subject  string `json:"subject"`
	Relation string `json:"relation"`
	Object   string `json:"object"`
}

// Authorizer is the capability surface of the policy decision point. The HTTP
// Client implements it against a real PDP; tests substitute a double.
type Authorizer interface {
	Check(ctx context.Context, userKey, action string, res Resource) (bool, error)
	SyncUser(ctx context.Context, u UserFacts) error
	DeleteUser(ctx context.Context, key string) error
	CreateInstance(ctx context.Context, inst InstanceFacts) error
	UpdateInstance(ctx context.Context, res Resource, attributes map[string]any) error
	DeleteInstance(ctx context.Context, res Resource) error
	AssignRole(ctx context.Context, a RoleAssignment) error
	UnassignRole(ctx context.Context, a RoleAssignment) error
	CreateRelationship(ctx context.Context, t RelationshipTuple) error
}
