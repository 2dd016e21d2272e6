package v1

import (
	"context"

	"github.com/google/uuid"

	"github.com/agrisetu/agrisetu/internal/advisor"
	"github.com/agrisetu/agrisetu/internal/domain"
)

// DataStore abstracts the repository accessor pattern for handler testing.
// The server wraps *postgres.Store to satisfy this interface.
type DataStore interface {
	Users() domain.UserRepository
	Roles() domain.UserRoleRepository
	Categories() domain.CategoryRepository
	Products() domain.ProductRepository
	Cart() domain.CartRepository
	Orders() domain.OrderRepository
	Audit() domain.AuditRepository
	Reports() domain.ReportRepository

	// InTx runs fn with a DataStore whose repositories share one
	// transaction. Privileged mutations and their audit entries commit
	// or roll back together through this.
	InTx(ctx context.Context, fn func(tx DataStore) error) error
}

// AuthService abstracts authentication operations for handler testing.
// *auth.Service satisfies this interface.
type AuthService interface {
	Register(ctx context.Context, email, password string, profile *domain.Profile) (*domain.User, error)
	Login(ctx context.Context, email, password string) (accessToken, refreshToken string, err error)
	RefreshToken(ctx context.Context, refreshToken string) (string, error)
}

// Advisor abstracts the LLM gateway for handler testing.
// *advisor.Client satisfies this interface.
type Advisor interface {
	DiagnoseCrop(ctx context.Context, imageBase64, cropType string) (*advisor.DiseaseDiagnosis, error)
	AnalyzeSoil(ctx context.Context, sample advisor.SoilSample) (*advisor.SoilAnalysis, error)
	PredictYield(ctx context.Context, in advisor.YieldInput) (*advisor.YieldPrediction, error)
}

// RoleInvalidator drops a user's cached role after an assignment change.
// *redis.RoleCache satisfies this interface; a nil-safe no-op is used when
// caching is disabled.
type RoleInvalidator interface {
	Invalidate(ctx context.Context, userID uuid.UUID)
}
