// Package audit constructs and persists the append-only trail of privileged
// mutations performed through the back office.
package audit

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/agrisetu/agrisetu/internal/domain"
)

const (
	defaultListLimit = 50
	maxListLimit     = 200
)

// Recorder builds audit entries and writes them through the repository.
// The timestamp comes from the recorder's clock, never from the caller,
// so entries cannot be backdated.
type Recorder struct {
	repo domain.AuditRepository
	now  func() time.Time
}

func NewRecorder(repo domain.AuditRepository) *Recorder {
	return &Recorder{repo: repo, now: time.Now}
}

// WithClock overrides the timestamp source. Intended for tests.
func (r *Recorder) WithClock(now func() time.Time) *Recorder {
	r.now = now
	return r
}

// Record persists one entry for a privileged mutation. ErrUnauthenticated is
// returned when no actor is present; the mutation must not proceed without
// one. A repository failure propagates to the caller: when Record runs inside
// the same transaction as the mutation, that rolls the mutation back.
func (r *Recorder) Record(
	ctx context.Context,
	actorID uuid.UUID,
	action domain.AuditAction,
	entityType domain.AuditEntityType,
	entityID *uuid.UUID,
	oldValue, newValue map[string]any,
	detail string,
) (*domain.AuditEntry, error) {
	if actorID == uuid.Nil {
		return nil, fmt.Errorf("audit.Record: %w", domain.ErrUnauthenticated)
	}

	entry := &domain.AuditEntry{
		ID:         uuid.New(),
		ActorID:    actorID,
		Action:     action,
		EntityType: entityType,
		EntityID:   entityID,
		OldValue:   oldValue,
		NewValue:   newValue,
		Detail:     detail,
		CreatedAt:  r.now(),
	}

	if err := r.repo.Record(ctx, entry); err != nil {
		return nil, fmt.Errorf("audit.Record: %w", err)
	}

	return entry, nil
}

// List returns entries newest-first. Limits outside (0, maxListLimit] are
// clamped; a negative offset is treated as zero.
func (r *Recorder) List(ctx context.Context, f domain.AuditFilter, limit, offset int) ([]*domain.AuditEntry, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}
	if offset < 0 {
		offset = 0
	}

	entries, err := r.repo.List(ctx, f, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("audit.List: %w", err)
	}

	return entries, nil
}
