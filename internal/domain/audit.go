package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// AuditAction is the closed vocabulary of privileged mutations.
type AuditAction string

const (
	AuditActionUpdateStatus  AuditAction = "update_status"
	AuditActionDeleteOrder   AuditAction = "delete_order"
	AuditActionDeleteProduct AuditAction = "delete_product"
	AuditActionAssignRole    AuditAction = "assign_role"
	AuditActionUpdateRole    AuditAction = "update_role"
	AuditActionRemoveRole    AuditAction = "remove_role"
)

// AuditEntityType names the kind of record a privileged mutation touched.
type AuditEntityType string

const (
	AuditEntityOrder    AuditEntityType = "order"
	AuditEntityProduct  AuditEntityType = "product"
	AuditEntityUserRole AuditEntityType = "user_role"
)

// AuditEntry is an immutable record of one privileged mutation. Entries are
// append-only: the repository exposes no update or delete, and CreatedAt is
// assigned server-side at record time so callers cannot backdate.
type AuditEntry struct {
	ID         uuid.UUID       `json:"id"`
	ActorID    uuid.UUID       `json:"actor_id"` // weak reference; actor deletion is not blocked
	Action     AuditAction     `json:"action"`
	EntityType AuditEntityType `json:"entity_type"`
	EntityID   *uuid.UUID      `json:"entity_id,omitempty"` // nil for bulk or no-target actions
	OldValue   map[string]any  `json:"old_value,omitempty"` // nil on pure-creation actions
	NewValue   map[string]any  `json:"new_value,omitempty"` // nil on pure-deletion actions
	Detail     string          `json:"detail,omitempty"`
	CreatedAt  time.Time       `json:"created_at"`
}

// AuditFilter narrows audit listing. Zero values mean "no filter". Search
// matches action, entity type, detail, and the resolved actor name.
type AuditFilter struct {
	EntityType AuditEntityType
	Search     string
}

type AuditRepository interface {
	Record(ctx context.Context, e *AuditEntry) error
	// List returns entries newest-first. Pagination is restartable: the log is
	// append-only, so concurrent inserts only appear above the current page.
	List(ctx context.Context, f AuditFilter, limit, offset int) ([]*AuditEntry, error)
}
