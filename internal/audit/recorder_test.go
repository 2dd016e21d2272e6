package audit_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agrisetu/agrisetu/internal/audit"
	"github.com/agrisetu/agrisetu/internal/domain"
)

type mockAuditRepo struct {
	recordFunc func(ctx context.Context, e *domain.AuditEntry) error
	listFunc   func(ctx context.Context, f domain.AuditFilter, limit, offset int) ([]*domain.AuditEntry, error)
}

func (m *mockAuditRepo) Record(ctx context.Context, e *domain.AuditEntry) error {
	return m.recordFunc(ctx, e)
}

func (m *mockAuditRepo) List(ctx context.Context, f domain.AuditFilter, limit, offset int) ([]*domain.AuditEntry, error) {
	return m.listFunc(ctx, f, limit, offset)
}

func TestRecord(t *testing.T) {
	t.Parallel()

	actor := uuid.New()
	target := uuid.New()
	fixed := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	t.Run("builds_entry_with_server_clock", func(t *testing.T) {
		t.Parallel()

		var got *domain.AuditEntry
		repo := &mockAuditRepo{
			recordFunc: func(_ context.Context, e *domain.AuditEntry) error {
				got = e
				return nil
			},
		}
		rec := audit.NewRecorder(repo).WithClock(func() time.Time { return fixed })

		entry, err := rec.Record(context.Background(), actor,
			domain.AuditActionAssignRole, domain.AuditEntityUserRole, &target,
			nil, map[string]any{"role": "field_officer"}, "Assigned field_officer role")
		require.NoError(t, err)

		require.NotNil(t, got)
		assert.Equal(t, entry, got)
		assert.NotEqual(t, uuid.Nil, got.ID)
		assert.Equal(t, actor, got.ActorID)
		assert.Equal(t, domain.AuditActionAssignRole, got.Action)
		assert.Equal(t, domain.AuditEntityUserRole, got.EntityType)
		assert.Equal(t, &target, got.EntityID)
		assert.Nil(t, got.OldValue, "assignment has no prior value")
		assert.Equal(t, map[string]any{"role": "field_officer"}, got.NewValue)
		assert.Equal(t, fixed, got.CreatedAt, "timestamp must come from the recorder clock")
	})

	t.Run("nil_actor_rejected", func(t *testing.T) {
		t.Parallel()

		repo := &mockAuditRepo{
			recordFunc: func(_ context.Context, _ *domain.AuditEntry) error {
				t.Fatal("repository must not be reached without an actor")
				return nil
			},
		}
		rec := audit.NewRecorder(repo)

		_, err := rec.Record(context.Background(), uuid.Nil,
			domain.AuditActionDeleteOrder, domain.AuditEntityOrder, nil, nil, nil, "")
		require.ErrorIs(t, err, domain.ErrUnauthenticated)
	})

	t.Run("repo_failure_propagates", func(t *testing.T) {
		t.Parallel()

		repo := &mockAuditRepo{
			recordFunc: func(_ context.Context, _ *domain.AuditEntry) error {
				return errors.New("pg: connection refused")
			},
		}
		rec := audit.NewRecorder(repo)

		_, err := rec.Record(context.Background(), actor,
			domain.AuditActionUpdateStatus, domain.AuditEntityProduct, &target,
			map[string]any{"status": "active"}, map[string]any{"status": "inactive"}, "")
		require.Error(t, err)
	})
}

func TestList_ClampsPagination(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		limit      int
		offset     int
		wantLimit  int
		wantOffset int
	}{
		{name: "zero_limit_defaults", limit: 0, offset: 0, wantLimit: 50, wantOffset: 0},
		{name: "negative_offset_clamped", limit: 10, offset: -5, wantLimit: 10, wantOffset: 0},
		{name: "oversized_limit_capped", limit: 10000, offset: 20, wantLimit: 200, wantOffset: 20},
		{name: "passthrough", limit: 25, offset: 75, wantLimit: 25, wantOffset: 75},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			repo := &mockAuditRepo{
				listFunc: func(_ context.Context, _ domain.AuditFilter, limit, offset int) ([]*domain.AuditEntry, error) {
					assert.Equal(t, tt.wantLimit, limit)
					assert.Equal(t, tt.wantOffset, offset)
					return nil, nil
				},
			}
			rec := audit.NewRecorder(repo)

			_, err := rec.List(context.Background(), domain.AuditFilter{}, tt.limit, tt.offset)
			require.NoError(t, err)
		})
	}
}
