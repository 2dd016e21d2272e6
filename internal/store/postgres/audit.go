package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/agrisetu/agrisetu/internal/domain"
)

// AuditRepo persists the append-only audit log. It deliberately exposes no
// update or delete: immutability is enforced at the interface, not by
// convention.
type AuditRepo struct {
	db DB
}

func NewAuditRepo(db DB) *AuditRepo {
	return &AuditRepo{db: db}
}

func (r *AuditRepo) Record(ctx context.Context, entry *domain.AuditEntry) error {
	oldVal, newVal, err := marshalSnapshots(entry)
	if err != nil {
		return fmt.Errorf("auditRepo.Record: %w", err)
	}

	_, err = r.db.Exec(ctx,
		`INSERT INTO audit_logs (id, actor_id, action, entity_type, entity_id, old_value, new_value, detail, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		entry.ID, entry.ActorID, string(entry.Action), string(entry.EntityType),
		entry.EntityID, oldVal, newVal, nilIfEmpty(entry.Detail), entry.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("auditRepo.Record: %w", err)
	}

	return nil
}

// List returns entries newest-first. The search term matches the action,
// entity type, detail text, and the acting user's profile name.
func (r *AuditRepo) List(ctx context.Context, f domain.AuditFilter, limit, offset int) ([]*domain.AuditEntry, error) {
	rows, err := r.db.Query(ctx,
		`SELECT a.id, a.actor_id, a.action, a.entity_type, a.entity_id, a.old_value, a.new_value, a.detail, a.created_at
		 FROM audit_logs a
		 LEFT JOIN profiles p ON p.user_id = a.actor_id
		 WHERE ($1 = '' OR a.entity_type = $1)
		   AND ($2 = ''
		        OR a.action ILIKE '%' || $2 || '%'
		        OR a.entity_type ILIKE '%' || $2 || '%'
		        OR a.detail ILIKE '%' || $2 || '%'
		        OR p.full_name ILIKE '%' || $2 || '%')
		 ORDER BY a.created_at DESC, a.id
		 LIMIT $3 OFFSET $4`,
		string(f.EntityType), f.Search, limit, offset,
	)
	if err != nil {
		return nil, fmt.Errorf("auditRepo.List: %w", err)
	}
	defer rows.Close()

	return scanAuditEntries(rows, "auditRepo.List")
}

func marshalSnapshots(entry *domain.AuditEntry) (oldVal, newVal []byte, err error) {
	if entry.OldValue != nil {
		oldVal, err = json.Marshal(entry.OldValue)
		if err != nil {
			return nil, nil, fmt.Errorf("marshal old value: %w", err)
		}
	}
	if entry.NewValue != nil {
		newVal, err = json.Marshal(entry.NewValue)
		if err != nil {
			return nil, nil, fmt.Errorf("marshal new value: %w", err)
		}
	}
	return oldVal, newVal, nil
}

func scanAuditEntries(rows pgx.Rows, caller string) ([]*domain.AuditEntry, error) {
	var entries []*domain.AuditEntry
	for rows.Next() {
		var e domain.AuditEntry
		var action, entityType string
		var detail *string
		var oldVal, newVal []byte

		if err := rows.Scan(
			&e.ID, &e.ActorID, &action, &entityType, &e.EntityID,
			&oldVal, &newVal, &detail, &e.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("%s: scan: %w", caller, err)
		}

		e.Action = domain.AuditAction(action)
		e.EntityType = domain.AuditEntityType(entityType)
		e.Detail = derefStr(detail)

		if len(oldVal) > 0 {
			if err := json.Unmarshal(oldVal, &e.OldValue); err != nil {
				return nil, fmt.Errorf("%s: unmarshal old value: %w", caller, err)
			}
		}
		if len(newVal) > 0 {
			if err := json.Unmarshal(newVal, &e.NewValue); err != nil {
				return nil, fmt.Errorf("%s: unmarshal new value: %w", caller, err)
			}
		}

		entries = append(entries, &e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: rows: %w", caller, err)
	}

	return entries, nil
}
