package v1_test

import (
	"context"

	"github.com/google/uuid"

	"github.com/agrisetu/agrisetu/internal/advisor"
	v1 "github.com/agrisetu/agrisetu/internal/api/v1"
	"github.com/agrisetu/agrisetu/internal/authz"
	"github.com/agrisetu/agrisetu/internal/domain"
	"github.com/agrisetu/agrisetu/internal/server/middleware"
)

// ---------------------------------------------------------------------------
// Context helpers — inject user/role into context for DoCtx
// ---------------------------------------------------------------------------

func userCtx(userID uuid.UUID) context.Context {
	ctx := context.Background()
	ctx = context.WithValue(ctx, middleware.ContextKeyUserID, userID)
	return ctx
}

func roleCtx(userID uuid.UUID, role authz.Role) context.Context {
	ctx := userCtx(userID)
	ctx = context.WithValue(ctx, middleware.ContextKeyUserRole, role)
	return ctx
}

// ---------------------------------------------------------------------------
// Mock DataStore
// ---------------------------------------------------------------------------

type mockDataStore struct {
	users      domain.UserRepository
	roles      domain.UserRoleRepository
	categories domain.CategoryRepository
	products   domain.ProductRepository
	cart       domain.CartRepository
	orders     domain.OrderRepository
	audit      domain.AuditRepository
	reports    domain.ReportRepository

	inTxFunc func(ctx context.Context, fn func(tx v1.DataStore) error) error
}

func (m *mockDataStore) Users() domain.UserRepository          { return m.users }
func (m *mockDataStore) Roles() domain.UserRoleRepository      { return m.roles }
func (m *mockDataStore) Categories() domain.CategoryRepository { return m.categories }
func (m *mockDataStore) Products() domain.ProductRepository    { return m.products }
func (m *mockDataStore) Cart() domain.CartRepository           { return m.cart }
func (m *mockDataStore) Orders() domain.OrderRepository        { return m.orders }
func (m *mockDataStore) Audit() domain.AuditRepository         { return m.audit }
func (m *mockDataStore) Reports() domain.ReportRepository      { return m.reports }

func (m *mockDataStore) InTx(ctx context.Context, fn func(tx v1.DataStore) error) error {
	if m.inTxFunc != nil {
		return m.inTxFunc(ctx, fn)
	}
	return fn(m)
}

// ---------------------------------------------------------------------------
// Mock UserRepository
// ---------------------------------------------------------------------------

type mockUserRepo struct {
	createFunc        func(ctx context.Context, u *domain.User, p *domain.Profile) error
	getByIDFunc       func(ctx context.Context, id uuid.UUID) (*domain.User, error)
	getByEmailFunc    func(ctx context.Context, email string) (*domain.User, error)
	getProfileFunc    func(ctx context.Context, userID uuid.UUID) (*domain.Profile, error)
	updateProfileFunc func(ctx context.Context, p *domain.Profile) error
	listProfilesFunc  func(ctx context.Context, limit, offset int) ([]*domain.Profile, error)
	namesByIDsFunc    func(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]string, error)
}

func (m *mockUserRepo) Create(ctx context.Context, u *domain.User, p *domain.Profile) error {
	return m.createFunc(ctx, u, p)
}

func (m *mockUserRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	return m.getByIDFunc(ctx, id)
}

func (m *mockUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return m.getByEmailFunc(ctx, email)
}

func (m *mockUserRepo) GetProfile(ctx context.Context, userID uuid.UUID) (*domain.Profile, error) {
	return m.getProfileFunc(ctx, userID)
}

func (m *mockUserRepo) UpdateProfile(ctx context.Context, p *domain.Profile) error {
	return m.updateProfileFunc(ctx, p)
}

func (m *mockUserRepo) ListProfiles(ctx context.Context, limit, offset int) ([]*domain.Profile, error) {
	return m.listProfilesFunc(ctx, limit, offset)
}

func (m *mockUserRepo) NamesByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]string, error) {
	return m.namesByIDsFunc(ctx, ids)
}

// ---------------------------------------------------------------------------
// Mock UserRoleRepository
// ---------------------------------------------------------------------------

type mockRoleRepo struct {
	getFunc    func(ctx context.Context, userID uuid.UUID) (authz.Role, error)
	setFunc    func(ctx context.Context, userID uuid.UUID, role authz.Role) error
	removeFunc func(ctx context.Context, userID uuid.UUID) error
	listFunc   func(ctx context.Context) (map[uuid.UUID]authz.Role, error)
}

func (m *mockRoleRepo) Get(ctx context.Context, userID uuid.UUID) (authz.Role, error) {
	return m.getFunc(ctx, userID)
}

func (m *mockRoleRepo) Set(ctx context.Context, userID uuid.UUID, role authz.Role) error {
	return m.setFunc(ctx, userID, role)
}

func (m *mockRoleRepo) Remove(ctx context.Context, userID uuid.UUID) error {
	return m.removeFunc(ctx, userID)
}

func (m *mockRoleRepo) List(ctx context.Context) (map[uuid.UUID]authz.Role, error) {
	return m.listFunc(ctx)
}

// ---------------------------------------------------------------------------
// Mock CategoryRepository
// ---------------------------------------------------------------------------

type mockCategoryRepo struct {
	listFunc    func(ctx context.Context) ([]*domain.Category, error)
	getByIDFunc func(ctx context.Context, id uuid.UUID) (*domain.Category, error)
}

func (m *mockCategoryRepo) List(ctx context.Context) ([]*domain.Category, error) {
	return m.listFunc(ctx)
}

func (m *mockCategoryRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Category, error) {
	return m.getByIDFunc(ctx, id)
}

// ---------------------------------------------------------------------------
// Mock ProductRepository
// ---------------------------------------------------------------------------

type mockProductRepo struct {
	createFunc         func(ctx context.Context, p *domain.Product) error
	getByIDFunc        func(ctx context.Context, id uuid.UUID) (*domain.Product, error)
	listFunc           func(ctx context.Context, f domain.ProductFilter, limit, offset int) ([]*domain.Product, error)
	listBySellerFunc   func(ctx context.Context, sellerID uuid.UUID) ([]*domain.Product, error)
	updateFunc         func(ctx context.Context, p *domain.Product) error
	updateStatusFunc   func(ctx context.Context, id uuid.UUID, status domain.ProductStatus) error
	adjustQuantityFunc func(ctx context.Context, id uuid.UUID, delta float64) error
	deleteFunc         func(ctx context.Context, id uuid.UUID) error
}

func (m *mockProductRepo) Create(ctx context.Context, p *domain.Product) error {
	return m.createFunc(ctx, p)
}

func (m *mockProductRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	return m.getByIDFunc(ctx, id)
}

func (m *mockProductRepo) List(ctx context.Context, f domain.ProductFilter, limit, offset int) ([]*domain.Product, error) {
	return m.listFunc(ctx, f, limit, offset)
}

func (m *mockProductRepo) ListBySeller(ctx context.Context, sellerID uuid.UUID) ([]*domain.Product, error) {
	return m.listBySellerFunc(ctx, sellerID)
}

func (m *mockProductRepo) Update(ctx context.Context, p *domain.Product) error {
	return m.updateFunc(ctx, p)
}

func (m *mockProductRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.ProductStatus) error {
	return m.updateStatusFunc(ctx, id, status)
}

func (m *mockProductRepo) AdjustQuantity(ctx context.Context, id uuid.UUID, delta float64) error {
	return m.adjustQuantityFunc(ctx, id, delta)
}

func (m *mockProductRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return m.deleteFunc(ctx, id)
}

// ---------------------------------------------------------------------------
// Mock CartRepository
// ---------------------------------------------------------------------------

type mockCartRepo struct {
	upsertFunc     func(ctx context.Context, item *domain.CartItem) error
	listByUserFunc func(ctx context.Context, userID uuid.UUID) ([]*domain.CartItem, error)
	removeFunc     func(ctx context.Context, userID, productID uuid.UUID) error
	clearFunc      func(ctx context.Context, userID uuid.UUID) error
}

func (m *mockCartRepo) Upsert(ctx context.Context, item *domain.CartItem) error {
	return m.upsertFunc(ctx, item)
}

func (m *mockCartRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.CartItem, error) {
	return m.listByUserFunc(ctx, userID)
}

func (m *mockCartRepo) Remove(ctx context.Context, userID, productID uuid.UUID) error {
	return m.removeFunc(ctx, userID, productID)
}

func (m *mockCartRepo) Clear(ctx context.Context, userID uuid.UUID) error {
	return m.clearFunc(ctx, userID)
}

// ---------------------------------------------------------------------------
// Mock OrderRepository
// ---------------------------------------------------------------------------

type mockOrderRepo struct {
	createFunc       func(ctx context.Context, o *domain.Order) error
	getByIDFunc      func(ctx context.Context, id uuid.UUID) (*domain.Order, error)
	listByUserFunc   func(ctx context.Context, userID uuid.UUID) ([]*domain.Order, error)
	listFunc         func(ctx context.Context, status domain.OrderStatus, limit, offset int) ([]*domain.Order, error)
	updateStatusFunc func(ctx context.Context, id uuid.UUID, status domain.OrderStatus) error
	deleteFunc       func(ctx context.Context, id uuid.UUID) error
}

func (m *mockOrderRepo) Create(ctx context.Context, o *domain.Order) error {
	return m.createFunc(ctx, o)
}

func (m *mockOrderRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Order, error) {
	return m.getByIDFunc(ctx, id)
}

func (m *mockOrderRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Order, error) {
	return m.listByUserFunc(ctx, userID)
}

func (m *mockOrderRepo) List(ctx context.Context, status domain.OrderStatus, limit, offset int) ([]*domain.Order, error) {
	return m.listFunc(ctx, status, limit, offset)
}

func (m *mockOrderRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.OrderStatus) error {
	return m.updateStatusFunc(ctx, id, status)
}

func (m *mockOrderRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return m.deleteFunc(ctx, id)
}

// ---------------------------------------------------------------------------
// Mock AuditRepository
// ---------------------------------------------------------------------------

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

// ---------------------------------------------------------------------------
// Mock ReportRepository
// ---------------------------------------------------------------------------

type mockReportRepo struct {
	createFunc     func(ctx context.Context, r *domain.Report) error
	getByIDFunc    func(ctx context.Context, userID, id uuid.UUID) (*domain.Report, error)
	listByUserFunc func(ctx context.Context, userID uuid.UUID, kind domain.ReportKind, limit, offset int) ([]*domain.Report, error)
	deleteFunc     func(ctx context.Context, userID, id uuid.UUID) error
}

func (m *mockReportRepo) Create(ctx context.Context, r *domain.Report) error {
	return m.createFunc(ctx, r)
}

func (m *mockReportRepo) GetByID(ctx context.Context, userID, id uuid.UUID) (*domain.Report, error) {
	return m.getByIDFunc(ctx, userID, id)
}

func (m *mockReportRepo) ListByUser(ctx context.Context, userID uuid.UUID, kind domain.ReportKind, limit, offset int) ([]*domain.Report, error) {
	return m.listByUserFunc(ctx, userID, kind, limit, offset)
}

func (m *mockReportRepo) Delete(ctx context.Context, userID, id uuid.UUID) error {
	return m.deleteFunc(ctx, userID, id)
}

// ---------------------------------------------------------------------------
// Mock AuthService
// ---------------------------------------------------------------------------

type mockAuthService struct {
	registerFunc     func(ctx context.Context, email, password string, profile *domain.Profile) (*domain.User, error)
	loginFunc        func(ctx context.Context, email, password string) (string, string, error)
	refreshTokenFunc func(ctx context.Context, refreshToken string) (string, error)
}

func (m *mockAuthService) Register(ctx context.Context, email, password string, profile *domain.Profile) (*domain.User, error) {
	return m.registerFunc(ctx, email, password, profile)
}

func (m *mockAuthService) Login(ctx context.Context, email, password string) (accessToken, refreshToken string, err error) {
	return m.loginFunc(ctx, email, password)
}

func (m *mockAuthService) RefreshToken(ctx context.Context, refreshToken string) (string, error) {
	return m.refreshTokenFunc(ctx, refreshToken)
}

// ---------------------------------------------------------------------------
// Mock Advisor
// ---------------------------------------------------------------------------

type mockAdvisor struct {
	diagnoseCropFunc func(ctx context.Context, imageBase64, cropType string) (*advisor.DiseaseDiagnosis, error)
	analyzeSoilFunc  func(ctx context.Context, sample advisor.SoilSample) (*advisor.SoilAnalysis, error)
	predictYieldFunc func(ctx context.Context, in advisor.YieldInput) (*advisor.YieldPrediction, error)
}

func (m *mockAdvisor) DiagnoseCrop(ctx context.Context, imageBase64, cropType string) (*advisor.DiseaseDiagnosis, error) {
	return m.diagnoseCropFunc(ctx, imageBase64, cropType)
}

func (m *mockAdvisor) AnalyzeSoil(ctx context.Context, sample advisor.SoilSample) (*advisor.SoilAnalysis, error) {
	return m.analyzeSoilFunc(ctx, sample)
}

func (m *mockAdvisor) PredictYield(ctx context.Context, in advisor.YieldInput) (*advisor.YieldPrediction, error) {
	return m.predictYieldFunc(ctx, in)
}

// ---------------------------------------------------------------------------
// Mock RoleInvalidator
// ---------------------------------------------------------------------------

type mockInvalidator struct {
	invalidated []uuid.UUID
}

func (m *mockInvalidator) Invalidate(_ context.Context, userID uuid.UUID) {
	m.invalidated = append(m.invalidated, userID)
}
