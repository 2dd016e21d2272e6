package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/google/uuid"

	"github.com/agrisetu/agrisetu/internal/audit"
	"github.com/agrisetu/agrisetu/internal/authz"
	"github.com/agrisetu/agrisetu/internal/domain"
)

type AdminUser struct {
	Profile *domain.Profile `json:"profile"`
	Role    authz.Role      `json:"role"` // empty means the implicit default
}

type ListUsersInput struct {
	Limit  int `query:"limit" minimum:"0" maximum:"100" doc:"Page size (default 50)"`
	Offset int `query:"offset" minimum:"0" doc:"Page offset"`
}

type ListUsersOutput struct {
	Body []*AdminUser
}

type SetUserRoleInput struct {
	UserID uuid.UUID `path:"userID" doc:"User ID"`
	Body   struct {
		Role string `json:"role" minLength:"1" doc:"Role to assign"`
	}
}

type SetUserRoleOutput struct {
	Body struct {
		UserID uuid.UUID  `json:"user_id"`
		Role   authz.Role `json:"role"`
	}
}

type RemoveUserRoleInput struct {
	UserID uuid.UUID `path:"userID" doc:"User ID"`
}

// RegisterAdminUserRoutes mounts the user directory, gated on the
// view_all_users capability in the router.
func RegisterAdminUserRoutes(api huma.API, store DataStore) {
	huma.Register(api, huma.Operation{
		OperationID: "admin-list-users",
		Method:      http.MethodGet,
		Path:        "/admin/users",
		Summary:     "List users with their role assignments",
		Tags:        []string{"Admin"},
	}, func(ctx context.Context, input *ListUsersInput) (*ListUsersOutput, error) {
		limit := input.Limit
		if limit == 0 {
			limit = 50
		}

		profiles, err := store.Users().ListProfiles(ctx, limit, input.Offset)
		if err != nil {
			return nil, huma.Error500InternalServerError("failed to list users", err)
		}

		roles, err := store.Roles().List(ctx)
		if err != nil {
			return nil, huma.Error500InternalServerError("failed to list roles", err)
		}

		users := make([]*AdminUser, 0, len(profiles))
		for _, p := range profiles {
			users = append(users, &AdminUser{Profile: p, Role: roles[p.UserID]})
		}
		return &ListUsersOutput{Body: users}, nil
	})
}

// RegisterAdminRoleRoutes mounts role assignment, gated on the assign_roles
// capability in the router. Role changes invalidate the lookup cache so the
// new role takes effect before the TTL expires.
func RegisterAdminRoleRoutes(api huma.API, store DataStore, invalidator RoleInvalidator) {
	huma.Register(api, huma.Operation{
		OperationID: "admin-set-user-role",
		Method:      http.MethodPut,
		Path:        "/admin/users/{userID}/role",
		Summary:     "Assign or change a user's role",
		Tags:        []string{"Admin"},
	}, func(ctx context.Context, input *SetUserRoleInput) (*SetUserRoleOutput, error) {
		actor, err := actorID(ctx)
		if err != nil {
			return nil, err
		}

		role, err := authz.ParseRole(input.Body.Role)
		if err != nil || role == authz.RoleNone {
			return nil, huma.Error400BadRequest("unknown role: " + input.Body.Role)
		}

		txErr := store.InTx(ctx, func(tx DataStore) error {
			oldRole, err := tx.Roles().Get(ctx, input.UserID)
			if err != nil {
				return err
			}

			// Set is last-write-wins, so repeating an assignment leaves one
			// role row. The audit log is not idempotent: every accepted call
			// records an entry, including re-assignments of the same role.
			if err := tx.Roles().Set(ctx, input.UserID, role); err != nil {
				return err
			}

			// The audit entry shares the transaction: if it cannot be
			// written, the role change does not land either.
			action := domain.AuditActionUpdateRole
			var oldValue map[string]any
			detail := fmt.Sprintf("changed role of user %s from %s to %s", input.UserID, oldRole, role)
			if oldRole == authz.RoleNone {
				action = domain.AuditActionAssignRole
				detail = fmt.Sprintf("assigned role %s to user %s", role, input.UserID)
			} else {
				oldValue = map[string]any{"role": string(oldRole)}
			}

			entityID := input.UserID
			_, err = audit.NewRecorder(tx.Audit()).Record(ctx, actor,
				action, domain.AuditEntityUserRole, &entityID,
				oldValue, map[string]any{"role": string(role)}, detail)
			return err
		})
		if txErr != nil {
			if errors.Is(txErr, domain.ErrNotFound) {
				return nil, huma.Error404NotFound("user not found")
			}
			return nil, huma.Error500InternalServerError("failed to set role", txErr)
		}

		invalidator.Invalidate(ctx, input.UserID)

		out := &SetUserRoleOutput{}
		out.Body.UserID = input.UserID
		out.Body.Role = role
		return out, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "admin-remove-user-role",
		Method:      http.MethodDelete,
		Path:        "/admin/users/{userID}/role",
		Summary:     "Remove a user's role, reverting them to the default",
		Tags:        []string{"Admin"},
	}, func(ctx context.Context, input *RemoveUserRoleInput) (*struct{}, error) {
		actor, err := actorID(ctx)
		if err != nil {
			return nil, err
		}

		txErr := store.InTx(ctx, func(tx DataStore) error {
			oldRole, err := tx.Roles().Get(ctx, input.UserID)
			if err != nil {
				return err
			}
			if oldRole == authz.RoleNone {
				// Nothing to remove; surfaced as a conflict below.
				return domain.ErrConflict
			}

			if err := tx.Roles().Remove(ctx, input.UserID); err != nil {
				return err
			}

			entityID := input.UserID
			_, err = audit.NewRecorder(tx.Audit()).Record(ctx, actor,
				domain.AuditActionRemoveRole, domain.AuditEntityUserRole, &entityID,
				map[string]any{"role": string(oldRole)}, nil,
				fmt.Sprintf("removed role %s from user %s", oldRole, input.UserID))
			return err
		})
		if txErr != nil {
			switch {
			case errors.Is(txErr, domain.ErrNotFound):
				return nil, huma.Error404NotFound("user not found")
			case errors.Is(txErr, domain.ErrConflict):
				return nil, huma.Error409Conflict("user has no role assignment")
			default:
				return nil, huma.Error500InternalServerError("failed to remove role", txErr)
			}
		}

		invalidator.Invalidate(ctx, input.UserID)
		return nil, nil
	})
}
