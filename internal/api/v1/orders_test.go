package v1_test

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	v1 "github.com/agrisetu/agrisetu/internal/api/v1"
	"github.com/agrisetu/agrisetu/internal/domain"
)

func TestCheckout(t *testing.T) {
	t.Parallel()

	buyerID := uuid.New()
	sellerID := uuid.New()
	productID := uuid.New()

	product := func() *domain.Product {
		return &domain.Product{
			ID:                productID,
			SellerID:          sellerID,
			Title:             "Fresh Tomatoes",
			Price:             25,
			Unit:              "kg",
			QuantityAvailable: 100,
			Status:            domain.ProductStatusActive,
		}
	}

	t.Run("happy_path", func(t *testing.T) {
		t.Parallel()

		var adjusted, created, cartCleared bool
		_, api := humatest.New(t)
		store := &mockDataStore{
			products: &mockProductRepo{
				getByIDFunc: func(_ context.Context, _ uuid.UUID) (*domain.Product, error) {
					return product(), nil
				},
				adjustQuantityFunc: func(_ context.Context, id uuid.UUID, delta float64) error {
					adjusted = true
					assert.Equal(t, productID, id)
					assert.InDelta(t, 10.0, delta, 0.001)
					return nil
				},
			},
			orders: &mockOrderRepo{
				createFunc: func(_ context.Context, o *domain.Order) error {
					created = true
					assert.Equal(t, buyerID, o.BuyerID)
					assert.Equal(t, sellerID, o.SellerID)
					assert.Equal(t, "Fresh Tomatoes", o.ProductTitle)
					assert.InDelta(t, 250.0, o.TotalPrice, 0.001)
					assert.Equal(t, domain.OrderStatusPending, o.Status)
					return nil
				},
			},
			cart: &mockCartRepo{
				removeFunc: func(_ context.Context, userID, pid uuid.UUID) error {
					cartCleared = true
					assert.Equal(t, buyerID, userID)
					assert.Equal(t, productID, pid)
					return nil
				},
			},
		}
		v1.RegisterOrderRoutes(api, store)

		resp := api.PostCtx(userCtx(buyerID), "/orders", map[string]any{
			"product_id":       productID.String(),
			"quantity":         10.0,
			"delivery_address": "12 Market Road, Nashik",
		})

		require.Equal(t, http.StatusOK, resp.Code)
		assert.True(t, adjusted, "stock must be decremented")
		assert.True(t, created, "order must be created")
		assert.True(t, cartCleared, "purchased product must leave the cart")

		var body domain.Order
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.InDelta(t, 25.0, body.UnitPrice, 0.001)
	})

	t.Run("insufficient_stock", func(t *testing.T) {
		t.Parallel()

		_, api := humatest.New(t)
		store := &mockDataStore{
			products: &mockProductRepo{
				getByIDFunc: func(_ context.Context, _ uuid.UUID) (*domain.Product, error) {
					return product(), nil
				},
				adjustQuantityFunc: func(_ context.Context, _ uuid.UUID, _ float64) error {
					return domain.ErrConflict
				},
			},
			orders: &mockOrderRepo{},
			cart:   &mockCartRepo{},
		}
		v1.RegisterOrderRoutes(api, store)

		resp := api.PostCtx(userCtx(buyerID), "/orders", map[string]any{
			"product_id":       productID.String(),
			"quantity":         500.0,
			"delivery_address": "12 Market Road, Nashik",
		})

		assert.Equal(t, http.StatusConflict, resp.Code)
	})

	t.Run("own_listing_rejected", func(t *testing.T) {
		t.Parallel()

		_, api := humatest.New(t)
		store := &mockDataStore{
			products: &mockProductRepo{
				getByIDFunc: func(_ context.Context, _ uuid.UUID) (*domain.Product, error) {
					return product(), nil
				},
			},
			orders: &mockOrderRepo{},
			cart:   &mockCartRepo{},
		}
		v1.RegisterOrderRoutes(api, store)

		resp := api.PostCtx(userCtx(sellerID), "/orders", map[string]any{
			"product_id":       productID.String(),
			"quantity":         1.0,
			"delivery_address": "12 Market Road, Nashik",
		})

		assert.Equal(t, http.StatusBadRequest, resp.Code)
	})

	t.Run("inactive_product", func(t *testing.T) {
		t.Parallel()

		_, api := humatest.New(t)
		store := &mockDataStore{
			products: &mockProductRepo{
				getByIDFunc: func(_ context.Context, _ uuid.UUID) (*domain.Product, error) {
					p := product()
					p.Status = domain.ProductStatusSold
					return p, nil
				},
			},
			orders: &mockOrderRepo{},
			cart:   &mockCartRepo{},
		}
		v1.RegisterOrderRoutes(api, store)

		resp := api.PostCtx(userCtx(buyerID), "/orders", map[string]any{
			"product_id":       productID.String(),
			"quantity":         1.0,
			"delivery_address": "12 Market Road, Nashik",
		})

		assert.Equal(t, http.StatusConflict, resp.Code)
	})
}

func TestGetOrder_ParticipantsOnly(t *testing.T) {
	t.Parallel()

	buyerID := uuid.New()
	sellerID := uuid.New()
	orderID := uuid.New()

	store := &mockDataStore{
		orders: &mockOrderRepo{
			getByIDFunc: func(_ context.Context, id uuid.UUID) (*domain.Order, error) {
				return &domain.Order{ID: id, BuyerID: buyerID, SellerID: sellerID}, nil
			},
		},
	}

	_, api := humatest.New(t)
	v1.RegisterOrderRoutes(api, store)

	resp := api.GetCtx(userCtx(buyerID), "/orders/"+orderID.String())
	assert.Equal(t, http.StatusOK, resp.Code)

	resp = api.GetCtx(userCtx(uuid.New()), "/orders/"+orderID.String())
	assert.Equal(t, http.StatusNotFound, resp.Code, "strangers must not learn the order exists")
}

func TestTransitionOrderStatus(t *testing.T) {
	t.Parallel()

	buyerID := uuid.New()
	sellerID := uuid.New()
	orderID := uuid.New()

	newStore := func(status domain.OrderStatus, updateCalled *bool) *mockDataStore {
		return &mockDataStore{
			orders: &mockOrderRepo{
				getByIDFunc: func(_ context.Context, id uuid.UUID) (*domain.Order, error) {
					return &domain.Order{ID: id, BuyerID: buyerID, SellerID: sellerID, Status: status}, nil
				},
				updateStatusFunc: func(_ context.Context, _ uuid.UUID, _ domain.OrderStatus) error {
					if updateCalled != nil {
						*updateCalled = true
					}
					return nil
				},
			},
		}
	}

	t.Run("seller_confirms_pending", func(t *testing.T) {
		t.Parallel()

		var updated bool
		_, api := humatest.New(t)
		v1.RegisterOrderRoutes(api, newStore(domain.OrderStatusPending, &updated))

		resp := api.PatchCtx(userCtx(sellerID), "/orders/"+orderID.String()+"/status", map[string]any{
			"status": "confirmed",
		})
		require.Equal(t, http.StatusOK, resp.Code)
		assert.True(t, updated)
	})

	t.Run("seller_cannot_skip_states", func(t *testing.T) {
		t.Parallel()

		_, api := humatest.New(t)
		v1.RegisterOrderRoutes(api, newStore(domain.OrderStatusPending, nil))

		resp := api.PatchCtx(userCtx(sellerID), "/orders/"+orderID.String()+"/status", map[string]any{
			"status": "delivered",
		})
		assert.Equal(t, http.StatusBadRequest, resp.Code)
		assert.Contains(t, resp.Body.String(), "invalid status transition from pending to delivered")
		assert.Contains(t, resp.Body.String(), domain.ErrInvalidTransition.Error())
	})

	t.Run("buyer_cancels_pending", func(t *testing.T) {
		t.Parallel()

		var updated bool
		_, api := humatest.New(t)
		v1.RegisterOrderRoutes(api, newStore(domain.OrderStatusPending, &updated))

		resp := api.PatchCtx(userCtx(buyerID), "/orders/"+orderID.String()+"/status", map[string]any{
			"status": "cancelled",
		})
		require.Equal(t, http.StatusOK, resp.Code)
		assert.True(t, updated)
	})

	t.Run("buyer_cannot_cancel_confirmed", func(t *testing.T) {
		t.Parallel()

		_, api := humatest.New(t)
		v1.RegisterOrderRoutes(api, newStore(domain.OrderStatusConfirmed, nil))

		resp := api.PatchCtx(userCtx(buyerID), "/orders/"+orderID.String()+"/status", map[string]any{
			"status": "cancelled",
		})
		assert.Equal(t, http.StatusForbidden, resp.Code)
	})

	t.Run("stranger_sees_not_found", func(t *testing.T) {
		t.Parallel()

		_, api := humatest.New(t)
		v1.RegisterOrderRoutes(api, newStore(domain.OrderStatusPending, nil))

		resp := api.PatchCtx(userCtx(uuid.New()), "/orders/"+orderID.String()+"/status", map[string]any{
			"status": "confirmed",
		})
		assert.Equal(t, http.StatusNotFound, resp.Code)
	})
}
