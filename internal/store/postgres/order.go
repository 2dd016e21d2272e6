package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/agrisetu/agrisetu/internal/domain"
)

type OrderRepo struct {
	db DB
}

func NewOrderRepo(db DB) *OrderRepo {
	return &OrderRepo{db: db}
}

const orderColumns = `id, buyer_id, seller_id, product_id, product_title, quantity,
	unit_price, total_price, delivery_address, notes, status, created_at, updated_at`

func (r *OrderRepo) Create(ctx context.Context, o *domain.Order) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO orders (id, buyer_id, seller_id, product_id, product_title, quantity,
		 unit_price, total_price, delivery_address, notes, status, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`,
		o.ID, o.BuyerID, o.SellerID, o.ProductID, o.ProductTitle, o.Quantity,
		o.UnitPrice, o.TotalPrice, o.DeliveryAddress, nilIfEmpty(o.Notes),
		string(o.Status), o.CreatedAt, o.UpdatedAt,
	)
	if err != nil {
		if isFKViolation(err) {
			return fmt.Errorf("orderRepo.Create: %w", domain.ErrNotFound)
		}
		return fmt.Errorf("orderRepo.Create: %w", err)
	}

	return nil
}

func (r *OrderRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Order, error) {
	o, err := scanOrder(r.db.QueryRow(ctx,
		`SELECT `+orderColumns+` FROM orders WHERE id = $1`, id,
	))
	if err != nil {
		return nil, fmt.Errorf("orderRepo.GetByID: %w", err)
	}

	return o, nil
}

func (r *OrderRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Order, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+orderColumns+` FROM orders
		 WHERE buyer_id = $1 OR seller_id = $1
		 ORDER BY created_at DESC, id`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("orderRepo.ListByUser: %w", err)
	}
	defer rows.Close()

	return collectOrders(rows, "orderRepo.ListByUser")
}

func (r *OrderRepo) List(ctx context.Context, status domain.OrderStatus, limit, offset int) ([]*domain.Order, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+orderColumns+` FROM orders
		 WHERE ($1 = '' OR status = $1)
		 ORDER BY created_at DESC, id
		 LIMIT $2 OFFSET $3`,
		string(status), limit, offset,
	)
	if err != nil {
		return nil, fmt.Errorf("orderRepo.List: %w", err)
	}
	defer rows.Close()

	return collectOrders(rows, "orderRepo.List")
}

func (r *OrderRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.OrderStatus) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE orders SET status = $1, updated_at = now() WHERE id = $2`,
		string(status), id,
	)
	if err != nil {
		return fmt.Errorf("orderRepo.UpdateStatus: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("orderRepo.UpdateStatus: %w", domain.ErrNotFound)
	}

	return nil
}

func (r *OrderRepo) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM orders WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("orderRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("orderRepo.Delete: %w", domain.ErrNotFound)
	}

	return nil
}

func scanOrder(row pgx.Row) (*domain.Order, error) {
	var o domain.Order
	var notes *string
	var status string

	err := row.Scan(
		&o.ID, &o.BuyerID, &o.SellerID, &o.ProductID, &o.ProductTitle, &o.Quantity,
		&o.UnitPrice, &o.TotalPrice, &o.DeliveryAddress, &notes, &status,
		&o.CreatedAt, &o.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	o.Notes = derefStr(notes)
	o.Status = domain.OrderStatus(status)

	return &o, nil
}

func collectOrders(rows pgx.Rows, caller string) ([]*domain.Order, error) {
	var orders []*domain.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: scan: %w", caller, err)
		}
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: rows: %w", caller, err)
	}

	return orders, nil
}
