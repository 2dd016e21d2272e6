package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/agrisetu/agrisetu/internal/domain"
)

type CategoryRepo struct {
	db DB
}

func NewCategoryRepo(db DB) *CategoryRepo {
	return &CategoryRepo{db: db}
}

func (r *CategoryRepo) List(ctx context.Context) ([]*domain.Category, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, name, name_local, icon, created_at FROM categories ORDER BY name`,
	)
	if err != nil {
		return nil, fmt.Errorf("categoryRepo.List: %w", err)
	}
	defer rows.Close()

	var categories []*domain.Category
	for rows.Next() {
		var c domain.Category
		var nameLocal, icon *string
		if err := rows.Scan(&c.ID, &c.Name, &nameLocal, &icon, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("categoryRepo.List: scan: %w", err)
		}
		c.NameLocal = derefStr(nameLocal)
		c.Icon = derefStr(icon)
		categories = append(categories, &c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("categoryRepo.List: rows: %w", err)
	}

	return categories, nil
}

func (r *CategoryRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Category, error) {
	var c domain.Category
	var nameLocal, icon *string

	err := r.db.QueryRow(ctx,
		`SELECT id, name, name_local, icon, created_at FROM categories WHERE id = $1`,
		id,
	).Scan(&c.ID, &c.Name, &nameLocal, &icon, &c.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("categoryRepo.GetByID: %w", domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("categoryRepo.GetByID: %w", err)
	}

	c.NameLocal = derefStr(nameLocal)
	c.Icon = derefStr(icon)

	return &c, nil
}

type ProductRepo struct {
	db DB
}

func NewProductRepo(db DB) *ProductRepo {
	return &ProductRepo{db: db}
}

const productColumns = `id, seller_id, category_id, title, description, price, unit,
	quantity_available, location, images, status, created_at, updated_at`

func (r *ProductRepo) Create(ctx context.Context, p *domain.Product) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO products (id, seller_id, category_id, title, description, price, unit,
		 quantity_available, location, images, status, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`,
		p.ID, p.SellerID, p.CategoryID, p.Title, p.Description, p.Price, p.Unit,
		p.QuantityAvailable, nilIfEmpty(p.Location), p.Images, string(p.Status),
		p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		if isFKViolation(err) {
			return fmt.Errorf("productRepo.Create: %w", domain.ErrNotFound)
		}
		return fmt.Errorf("productRepo.Create: %w", err)
	}

	return nil
}

func (r *ProductRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	p, err := scanProduct(r.db.QueryRow(ctx,
		`SELECT `+productColumns+` FROM products WHERE id = $1`, id,
	))
	if err != nil {
		return nil, fmt.Errorf("productRepo.GetByID: %w", err)
	}

	return p, nil
}

func (r *ProductRepo) List(ctx context.Context, f domain.ProductFilter, limit, offset int) ([]*domain.Product, error) {
	// Filters compose via "zero value disables" predicates so one statement
	// covers every browse combination.
	rows, err := r.db.Query(ctx,
		`SELECT `+productColumns+` FROM products
		 WHERE ($1 = '' OR status = $1)
		   AND ($2::uuid IS NULL OR category_id = $2)
		   AND ($3 = '' OR title ILIKE '%' || $3 || '%' OR description ILIKE '%' || $3 || '%')
		   AND ($4::numeric = 0 OR price <= $4)
		 ORDER BY created_at DESC, id
		 LIMIT $5 OFFSET $6`,
		string(f.Status), nilIfNilUUID(f.CategoryID), f.Search, f.MaxPrice, limit, offset,
	)
	if err != nil {
		return nil, fmt.Errorf("productRepo.List: %w", err)
	}
	defer rows.Close()

	return collectProducts(rows, "productRepo.List")
}

func (r *ProductRepo) ListBySeller(ctx context.Context, sellerID uuid.UUID) ([]*domain.Product, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+productColumns+` FROM products
		 WHERE seller_id = $1 ORDER BY created_at DESC, id`,
		sellerID,
	)
	if err != nil {
		return nil, fmt.Errorf("productRepo.ListBySeller: %w", err)
	}
	defer rows.Close()

	return collectProducts(rows, "productRepo.ListBySeller")
}

func (r *ProductRepo) Update(ctx context.Context, p *domain.Product) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE products SET category_id = $1, title = $2, description = $3, price = $4,
		 unit = $5, quantity_available = $6, location = $7, images = $8, status = $9, updated_at = now()
		 WHERE id = $10`,
		p.CategoryID, p.Title, p.Description, p.Price, p.Unit,
		p.QuantityAvailable, nilIfEmpty(p.Location), p.Images, string(p.Status), p.ID,
	)
	if err != nil {
		return fmt.Errorf("productRepo.Update: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("productRepo.Update: %w", domain.ErrNotFound)
	}

	return nil
}

func (r *ProductRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.ProductStatus) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE products SET status = $1, updated_at = now() WHERE id = $2`,
		string(status), id,
	)
	if err != nil {
		return fmt.Errorf("productRepo.UpdateStatus: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("productRepo.UpdateStatus: %w", domain.ErrNotFound)
	}

	return nil
}

// AdjustQuantity atomically decrements availability and flips the listing to
// sold when it reaches zero. The guard in the WHERE clause makes oversells a
// no-op reported as ErrConflict.
func (r *ProductRepo) AdjustQuantity(ctx context.Context, id uuid.UUID, delta float64) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE products
		 SET quantity_available = quantity_available - $1,
		     status = CASE WHEN quantity_available - $1 <= 0 THEN 'sold' ELSE status END,
		     updated_at = now()
		 WHERE id = $2 AND quantity_available >= $1`,
		delta, id,
	)
	if err != nil {
		return fmt.Errorf("productRepo.AdjustQuantity: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("productRepo.AdjustQuantity: %w", domain.ErrConflict)
	}

	return nil
}

func (r *ProductRepo) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("productRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("productRepo.Delete: %w", domain.ErrNotFound)
	}

	return nil
}

func scanProduct(row pgx.Row) (*domain.Product, error) {
	var p domain.Product
	var location *string
	var status string

	err := row.Scan(
		&p.ID, &p.SellerID, &p.CategoryID, &p.Title, &p.Description, &p.Price, &p.Unit,
		&p.QuantityAvailable, &location, &p.Images, &status, &p.CreatedAt, &p.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	p.Location = derefStr(location)
	p.Status = domain.ProductStatus(status)

	return &p, nil
}

func collectProducts(rows pgx.Rows, caller string) ([]*domain.Product, error) {
	var products []*domain.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: scan: %w", caller, err)
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: rows: %w", caller, err)
	}

	return products, nil
}

func nilIfNilUUID(id uuid.UUID) *uuid.UUID {
	if id == uuid.Nil {
		return nil
	}
	return &id
}
