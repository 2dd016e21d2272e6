package server

import (
	"context"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"

	v1 "github.com/agrisetu/agrisetu/internal/api/v1"
	"github.com/agrisetu/agrisetu/internal/authz"
	"github.com/agrisetu/agrisetu/internal/server/middleware"
)

func newAPI(r chi.Router, title string) huma.API {
	cfg := huma.DefaultConfig(title, "1.0.0")
	cfg.Servers = []*huma.Server{{URL: "/api/v1"}}
	return humachi.New(r, cfg)
}

// mountRoutes wires /api/v1 in three layers: public routes, authenticated
// routes, and admin routes where each group carries exactly one capability
// gate. The gate re-reads the caller's role per request; the role claim in
// the token is never trusted for admin access.
func (s *Server) mountRoutes(ctx context.Context, advisor v1.Advisor, roles middleware.RoleSource, invalidator v1.RoleInvalidator) {
	store := storeAdapter{s.store}

	s.router.Route("/api/v1", func(r chi.Router) {
		// Public: account endpoints are rate limited per IP since they
		// run before any identity exists.
		r.Group(func(r chi.Router) {
			r.Use(middleware.RateLimitByIP(ctx, 5, 10))
			v1.RegisterAuthRoutes(newAPI(r, "AgriSetu Auth API"), s.auth)
		})

		// Public: marketplace browsing.
		r.Group(func(r chi.Router) {
			api := newAPI(r, "AgriSetu Public API")
			v1.RegisterCategoryRoutes(api, store)
			v1.RegisterProductBrowseRoutes(api, store)
		})

		// Authenticated user surface.
		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(s.cfg.JWT.Secret))
			r.Use(middleware.RateLimitByUser(ctx, 20, 40))

			api := newAPI(r, "AgriSetu API")
			v1.RegisterProductSellerRoutes(api, store)
			v1.RegisterCartRoutes(api, store)
			v1.RegisterOrderRoutes(api, store)
			v1.RegisterProfileRoutes(api, store)
			v1.RegisterAdvisorRoutes(api, store, advisor, s.cfg.Gateway.Model)
			v1.RegisterReportRoutes(api, store)
		})

		// Admin surface: one group per capability.
		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(s.cfg.JWT.Secret))

			admin := func(capability authz.Capability, register func(api huma.API)) {
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireCapability(roles, capability))
					register(newAPI(r, "AgriSetu Admin API"))
				})
			}

			admin(authz.CapViewAllUsers, func(api huma.API) {
				v1.RegisterAdminUserRoutes(api, store)
			})
			admin(authz.CapAssignRoles, func(api huma.API) {
				v1.RegisterAdminRoleRoutes(api, store, invalidator)
			})
			admin(authz.CapViewAllProducts, func(api huma.API) {
				v1.RegisterAdminProductRoutes(api, store)
			})
			admin(authz.CapModerateProducts, func(api huma.API) {
				v1.RegisterProductModerationRoutes(api, store)
			})
			admin(authz.CapDeleteProducts, func(api huma.API) {
				v1.RegisterProductDeletionRoutes(api, store)
			})
			admin(authz.CapViewAllOrders, func(api huma.API) {
				v1.RegisterAdminOrderRoutes(api, store)
			})
			admin(authz.CapMutateOrderStatus, func(api huma.API) {
				v1.RegisterOrderManagementRoutes(api, store)
			})
			admin(authz.CapViewAuditLog, func(api huma.API) {
				v1.RegisterAuditRoutes(api, store)
			})
		})
	})
}
