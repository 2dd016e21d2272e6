package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/agrisetu/agrisetu/internal/domain"
)

// DB is the pgx query surface shared by *pgxpool.Pool and pgx.Tx. Repos run
// against it so the same repo code works on the pool and inside a transaction.
type DB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type Store struct {
	pool       *pgxpool.Pool
	users      *UserRepo
	roles      *UserRoleRepo
	categories *CategoryRepo
	products   *ProductRepo
	cart       *CartRepo
	orders     *OrderRepo
	audit      *AuditRepo
	reports    *ReportRepo
}

func New(ctx context.Context, dsn string, maxConns int32) (*Store, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("postgres.New: parse config: %w", err)
	}

	cfg.MaxConns = maxConns

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("postgres.New: connect: %w", err)
	}

	err = pool.Ping(ctx)
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("postgres.New: ping: %w", err)
	}

	return newStore(pool, pool), nil
}

// newStore binds every repo to db, which is either the pool or one transaction.
func newStore(pool *pgxpool.Pool, db DB) *Store {
	return &Store{
		pool:       pool,
		users:      NewUserRepo(db),
		roles:      NewUserRoleRepo(db),
		categories: NewCategoryRepo(db),
		products:   NewProductRepo(db),
		cart:       NewCartRepo(db),
		orders:     NewOrderRepo(db),
		audit:      NewAuditRepo(db),
		reports:    NewReportRepo(db),
	}
}

func (s *Store) Close() {
	s.pool.Close()
}

// InTx runs fn with a Store bound to a single transaction and commits when fn
// returns nil. Privileged mutations use this so the mutation and its audit
// entry land atomically: if the audit insert fails, the mutation rolls back.
func (s *Store) InTx(ctx context.Context, fn func(tx *Store) error) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("postgres.InTx: begin: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(newStore(s.pool, tx)); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("postgres.InTx: commit: %w", err)
	}

	return nil
}

func (s *Store) Users() domain.UserRepository          { return s.users }
func (s *Store) Roles() domain.UserRoleRepository      { return s.roles }
func (s *Store) Categories() domain.CategoryRepository { return s.categories }
func (s *Store) Products() domain.ProductRepository    { return s.products }
func (s *Store) Cart() domain.CartRepository           { return s.cart }
func (s *Store) Orders() domain.OrderRepository        { return s.orders }
func (s *Store) Audit() domain.AuditRepository         { return s.audit }
func (s *Store) Reports() domain.ReportRepository      { return s.reports }

// isUniqueViolation reports a PostgreSQL unique constraint failure (23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

// isFKViolation reports a PostgreSQL foreign key failure (23503).
func isFKViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23503"
}

func nilIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func derefStr(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
