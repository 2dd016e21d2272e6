package v1

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/google/uuid"

	"github.com/agrisetu/agrisetu/internal/audit"
	"github.com/agrisetu/agrisetu/internal/domain"
)

type ListAuditInput struct {
	EntityType string `query:"entity_type" doc:"Filter by entity type (order/product/user_role)"`
	Search     string `query:"search" maxLength:"255" doc:"Search in action, entity type, detail and actor name"`
	Limit      int    `query:"limit" minimum:"0" maximum:"200" doc:"Page size (default 50)"`
	Offset     int    `query:"offset" minimum:"0" doc:"Page offset"`
}

// AuditEntryView is an audit entry with the actor's display name resolved
// for rendering.
type AuditEntryView struct {
	ID         uuid.UUID              `json:"id"`
	ActorID    uuid.UUID              `json:"actor_id"`
	ActorName  string                 `json:"actor_name,omitempty"`
	Action     domain.AuditAction     `json:"action"`
	EntityType domain.AuditEntityType `json:"entity_type"`
	EntityID   *uuid.UUID             `json:"entity_id,omitempty"`
	OldValue   map[string]any         `json:"old_value,omitempty"`
	NewValue   map[string]any         `json:"new_value,omitempty"`
	Detail     string                 `json:"detail,omitempty"`
	CreatedAt  time.Time              `json:"created_at"`
}

type ListAuditOutput struct {
	Body []*AuditEntryView
}

// RegisterAuditRoutes mounts the audit log read surface, gated on the
// view_audit_log capability. There is no write surface: entries are only
// produced by the privileged mutation handlers, inside their transactions.
func RegisterAuditRoutes(api huma.API, store DataStore) {
	huma.Register(api, huma.Operation{
		OperationID: "admin-list-audit",
		Method:      http.MethodGet,
		Path:        "/admin/audit",
		Summary:     "List audit log entries, newest first",
		Tags:        []string{"Admin"},
	}, func(ctx context.Context, input *ListAuditInput) (*ListAuditOutput, error) {
		filter := domain.AuditFilter{
			EntityType: domain.AuditEntityType(input.EntityType),
			Search:     input.Search,
		}

		entries, err := audit.NewRecorder(store.Audit()).List(ctx, filter, input.Limit, input.Offset)
		if err != nil {
			return nil, huma.Error500InternalServerError("failed to list audit log", err)
		}

		// Batch-resolve actor names for rendering.
		ids := make([]uuid.UUID, 0, len(entries))
		seen := make(map[uuid.UUID]struct{}, len(entries))
		for _, e := range entries {
			if _, ok := seen[e.ActorID]; !ok {
				seen[e.ActorID] = struct{}{}
				ids = append(ids, e.ActorID)
			}
		}
		names := map[uuid.UUID]string{}
		if len(ids) > 0 {
			names, err = store.Users().NamesByIDs(ctx, ids)
			if err != nil {
				return nil, huma.Error500InternalServerError("failed to resolve actor names", err)
			}
		}

		views := make([]*AuditEntryView, 0, len(entries))
		for _, e := range entries {
			views = append(views, &AuditEntryView{
				ID:         e.ID,
				ActorID:    e.ActorID,
				ActorName:  names[e.ActorID],
				Action:     e.Action,
				EntityType: e.EntityType,
				EntityID:   e.EntityID,
				OldValue:   e.OldValue,
				NewValue:   e.NewValue,
				Detail:     e.Detail,
				CreatedAt:  e.CreatedAt,
			})
		}
		return &ListAuditOutput{Body: views}, nil
	})
}
