package v1_test

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	v1 "github.com/agrisetu/agrisetu/internal/api/v1"
	"github.com/agrisetu/agrisetu/internal/authz"
	"github.com/agrisetu/agrisetu/internal/domain"
)

func TestListAudit(t *testing.T) {
	t.Parallel()

	adminID := uuid.New()
	actorA := uuid.New()
	actorB := uuid.New()

	entries := []*domain.AuditEntry{
		{
			ID:         uuid.New(),
			ActorID:    actorA,
			Action:     domain.AuditActionAssignRole,
			EntityType: domain.AuditEntityUserRole,
			CreatedAt:  time.Now(),
		},
		{
			ID:         uuid.New(),
			ActorID:    actorB,
			Action:     domain.AuditActionDeleteProduct,
			EntityType: domain.AuditEntityProduct,
			CreatedAt:  time.Now().Add(-time.Minute),
		},
		{
			ID:         uuid.New(),
			ActorID:    actorA,
			Action:     domain.AuditActionRemoveRole,
			EntityType: domain.AuditEntityUserRole,
			CreatedAt:  time.Now().Add(-time.Hour),
		},
	}

	t.Run("resolves_actor_names_once_per_actor", func(t *testing.T) {
		t.Parallel()

		store := &mockDataStore{
			audit: &mockAuditRepo{
				listFunc: func(_ context.Context, f domain.AuditFilter, limit, offset int) ([]*domain.AuditEntry, error) {
					assert.Equal(t, 50, limit, "default page size applies when the query omits it")
					return entries, nil
				},
			},
			users: &mockUserRepo{
				namesByIDsFunc: func(_ context.Context, ids []uuid.UUID) (map[uuid.UUID]string, error) {
					assert.Len(t, ids, 2, "duplicate actors are resolved once")
					return map[uuid.UUID]string{
						actorA: "Meera Joshi",
						actorB: "Ramesh Kale",
					}, nil
				},
			},
		}

		_, api := humatest.New(t)
		v1.RegisterAuditRoutes(api, store)

		resp := api.GetCtx(roleCtx(adminID, authz.RoleAdmin), "/admin/audit")
		require.Equal(t, http.StatusOK, resp.Code)

		var views []*v1.AuditEntryView
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&views))
		require.Len(t, views, 3)
		assert.Equal(t, "Meera Joshi", views[0].ActorName)
		assert.Equal(t, "Ramesh Kale", views[1].ActorName)
		assert.Equal(t, "Meera Joshi", views[2].ActorName)
	})

	t.Run("filter_passes_through", func(t *testing.T) {
		t.Parallel()

		store := &mockDataStore{
			audit: &mockAuditRepo{
				listFunc: func(_ context.Context, f domain.AuditFilter, limit, offset int) ([]*domain.AuditEntry, error) {
					assert.Equal(t, domain.AuditEntityUserRole, f.EntityType)
					assert.Equal(t, "meera", f.Search)
					assert.Equal(t, 10, limit)
					assert.Equal(t, 20, offset)
					return nil, nil
				},
			},
			users: &mockUserRepo{},
		}

		_, api := humatest.New(t)
		v1.RegisterAuditRoutes(api, store)

		resp := api.GetCtx(roleCtx(adminID, authz.RoleAdmin), "/admin/audit?entity_type=user_role&search=meera&limit=10&offset=20")
		assert.Equal(t, http.StatusOK, resp.Code)
	})

	t.Run("empty_log_skips_name_resolution", func(t *testing.T) {
		t.Parallel()

		store := &mockDataStore{
			audit: &mockAuditRepo{
				listFunc: func(_ context.Context, _ domain.AuditFilter, _, _ int) ([]*domain.AuditEntry, error) {
					return nil, nil
				},
			},
			// namesByIDsFunc stays nil: calling it would panic.
			users: &mockUserRepo{},
		}

		_, api := humatest.New(t)
		v1.RegisterAuditRoutes(api, store)

		resp := api.GetCtx(roleCtx(adminID, authz.RoleAdmin), "/admin/audit")
		assert.Equal(t, http.StatusOK, resp.Code)
	})
}
