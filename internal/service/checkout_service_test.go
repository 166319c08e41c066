package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/toykart/storefront/internal/model"
	"github.com/toykart/storefront/pkg/database"
	"github.com/toykart/storefront/pkg/events"
)

// mockCartRepository is a mock implementation of CartRepositoryInterface.
type mockCartRepository struct {
	listByUserFn     func(ctx context.Context, userID string) ([]model.CartLine, error)
	upsertFn         func(ctx context.Context, item *model.CartItem) error
	updateQuantityFn func(ctx context.Context, userID, itemID string, quantity int) (bool, error)
	deleteFn         func(ctx context.Context, userID, itemID string) (bool, error)
	clearFn          func(ctx context.Context, q database.TxQuerier, userID string) error
}

func (m *mockCartRepository) ListByUser(ctx context.Context, userID string) ([]model.CartLine, error) {
	if m.listByUserFn != nil {
		return m.listByUserFn(ctx, userID)
	}
	return []model.CartLine{}, nil
}

func (m *mockCartRepository) Upsert(ctx context.Context, item *model.CartItem) error {
	if m.upsertFn != nil {
		return m.upsertFn(ctx, item)
	}
	return nil
}

func (m *mockCartRepository) UpdateQuantity(ctx context.Context, userID, itemID string, quantity int) (bool, error) {
	if m.updateQuantityFn != nil {
		return m.updateQuantityFn(ctx, userID, itemID, quantity)
	}
	return true, nil
}

func (m *mockCartRepository) Delete(ctx context.Context, userID, itemID string) (bool, error) {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, userID, itemID)
	}
	return true, nil
}

func (m *mockCartRepository) Clear(ctx context.Context, q database.TxQuerier, userID string) error {
	if m.clearFn != nil {
		return m.clearFn(ctx, q, userID)
	}
	return nil
}

// mockProductRepository is a mock implementation of ProductRepositoryInterface.
type mockProductRepository struct {
	listFn              func(ctx context.Context, filter model.ProductFilter) ([]model.Product, error)
	getByIDFn           func(ctx context.Context, id string) (*model.Product, error)
	getImagesFn         func(ctx context.Context, productID string) ([]model.ProductImage, error)
	insertFn            func(ctx context.Context, p *model.Product) error
	updateFn            func(ctx context.Context, p *model.Product) error
	deleteFn            func(ctx context.Context, id string) error
	getStockForUpdateFn func(ctx context.Context, tx database.TxQuerier, id string) (string, int, error)
	decrementStockFn    func(ctx context.Context, tx database.TxQuerier, id string, qty int) (bool, error)
}

func (m *mockProductRepository) List(ctx context.Context, filter model.ProductFilter) ([]model.Product, error) {
	if m.listFn != nil {
		return m.listFn(ctx, filter)
	}
	return []model.Product{}, nil
}

func (m *mockProductRepository) GetByID(ctx context.Context, id string) (*model.Product, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, nil
}

func (m *mockProductRepository) GetImages(ctx context.Context, productID string) ([]model.ProductImage, error) {
	if m.getImagesFn != nil {
		return m.getImagesFn(ctx, productID)
	}
	return []model.ProductImage{}, nil
}

func (m *mockProductRepository) Insert(ctx context.Context, p *model.Product) error {
	if m.insertFn != nil {
		return m.insertFn(ctx, p)
	}
	return nil
}

func (m *mockProductRepository) Update(ctx context.Context, p *model.Product) error {
	if m.updateFn != nil {
		return m.updateFn(ctx, p)
	}
	return nil
}

func (m *mockProductRepository) Delete(ctx context.Context, id string) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return nil
}

func (m *mockProductRepository) GetStockForUpdate(ctx context.Context, tx database.TxQuerier, id string) (string, int, error) {
	if m.getStockForUpdateFn != nil {
		return m.getStockForUpdateFn(ctx, tx, id)
	}
	return "", 0, ErrProductNotFound
}

func (m *mockProductRepository) DecrementStock(ctx context.Context, tx database.TxQuerier, id string, qty int) (bool, error) {
	if m.decrementStockFn != nil {
		return m.decrementStockFn(ctx, tx, id, qty)
	}
	return true, nil
}

// mockOrderRepository is a mock implementation of OrderRepositoryInterface.
type mockOrderRepository struct {
	insertFn       func(ctx context.Context, tx database.TxQuerier, o *model.Order) error
	insertItemsFn  func(ctx context.Context, tx database.TxQuerier, items []model.OrderItem) error
	listByUserFn   func(ctx context.Context, userID string) ([]model.Order, error)
	listAllFn      func(ctx context.Context, status string) ([]model.Order, error)
	getByIDFn      func(ctx context.Context, id string) (*model.Order, error)
	updateStatusFn func(ctx context.Context, id, status string) error
}

func (m *mockOrderRepository) Insert(ctx context.Context, tx database.TxQuerier, o *model.Order) error {
	if m.insertFn != nil {
		return m.insertFn(ctx, tx, o)
	}
	return nil
}

func (m *mockOrderRepository) InsertItems(ctx context.Context, tx database.TxQuerier, items []model.OrderItem) error {
	if m.insertItemsFn != nil {
		return m.insertItemsFn(ctx, tx, items)
	}
	return nil
}

func (m *mockOrderRepository) ListByUser(ctx context.Context, userID string) ([]model.Order, error) {
	if m.listByUserFn != nil {
		return m.listByUserFn(ctx, userID)
	}
	return []model.Order{}, nil
}

func (m *mockOrderRepository) ListAll(ctx context.Context, status string) ([]model.Order, error) {
	if m.listAllFn != nil {
		return m.listAllFn(ctx, status)
	}
	return []model.Order{}, nil
}

func (m *mockOrderRepository) GetByID(ctx context.Context, id string) (*model.Order, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, nil
}

func (m *mockOrderRepository) UpdateStatus(ctx context.Context, id, status string) error {
	if m.updateStatusFn != nil {
		return m.updateStatusFn(ctx, id, status)
	}
	return nil
}

// mockEventPublisher is a mock implementation of EventPublisher.
type mockEventPublisher struct {
	publishFn func(ctx context.Context, routingKey string, event events.OrderEvent) error
}

func (m *mockEventPublisher) Publish(ctx context.Context, routingKey string, event events.OrderEvent) error {
	if m.publishFn != nil {
		return m.publishFn(ctx, routingKey, event)
	}
	return nil
}

// mockTx is a mock implementation of pgx.Tx for testing transactions.
type mockTx struct {
	commitFn   func(ctx context.Context) error
	rollbackFn func(ctx context.Context) error
}

func (m *mockTx) Begin(ctx context.Context) (pgx.Tx, error) {
	return nil, errors.New("nested transactions not supported")
}

func (m *mockTx) Commit(ctx context.Context) error {
	if m.commitFn != nil {
		return m.commitFn(ctx)
	}
	return nil
}

func (m *mockTx) Rollback(ctx context.Context) error {
	if m.rollbackFn != nil {
		return m.rollbackFn(ctx)
	}
	return nil
}

func (m *mockTx) CopyFrom(ctx context.Context, tableName pgx.Identifier, columnNames []string, rowSrc pgx.CopyFromSource) (int64, error) {
	return 0, nil
}

func (m *mockTx) SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults {
	return nil
}

func (m *mockTx) LargeObjects() pgx.LargeObjects {
	return pgx.LargeObjects{}
}

func (m *mockTx) Prepare(ctx context.Context, name, sql string) (*pgconn.StatementDescription, error) {
	return nil, nil
}

func (m *mockTx) Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error) {
	return pgconn.CommandTag{}, nil
}

func (m *mockTx) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	return nil, nil
}

func (m *mockTx) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	return nil
}

func (m *mockTx) Conn() *pgx.Conn {
	return nil
}

// mockTxBeginner is a mock implementation of database.TxBeginner.
type mockTxBeginner struct {
	beginFn func(ctx context.Context) (pgx.Tx, error)
}

func (m *mockTxBeginner) Begin(ctx context.Context) (pgx.Tx, error) {
	if m.beginFn != nil {
		return m.beginFn(ctx)
	}
	return &mockTx{}, nil
}

var testPricing = Pricing{ShippingFee: 50, FreeShippingThreshold: 500}

// teddyBearCart is two units of a toy with MRP 500 discounted to 400.
func teddyBearCart() []model.CartLine {
	return []model.CartLine{
		{
			CartItem: model.CartItem{
				ID:        "line-1",
				UserID:    "user-1",
				ProductID: "prod-1",
				Quantity:  2,
			},
			Product: model.Product{
				ID:            "prod-1",
				Name:          "Teddy Bear",
				MRP:           500,
				DiscountPrice: floatPtr(400),
				StockQuantity: 10,
			},
		},
	}
}

func checkoutRequest(couponCode string) *model.CheckoutRequest {
	return &model.CheckoutRequest{
		FullName:   "Asha Verma",
		Email:      "asha@example.com",
		Phone:      "9876543210",
		Address:    "14 MG Road, Apartment 2B",
		City:       "Bengaluru",
		State:      "Karnataka",
		Pincode:    "560001",
		CouponCode: couponCode,
	}
}

func TestQuote_EmptyCart(t *testing.T) {
	carts := &mockCartRepository{
		listByUserFn: func(ctx context.Context, userID string) ([]model.CartLine, error) {
			return []model.CartLine{}, nil
		},
	}
	svc := NewCheckoutService(&mockTxBeginner{}, carts, &mockProductRepository{}, &mockCouponRepository{}, &mockOrderRepository{}, testPricing, nil)

	_, err := svc.Quote(context.Background(), "user-1", "")

	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrCartEmpty), "error should be ErrCartEmpty")
}

func TestQuote_ShippingCharged(t *testing.T) {
	lines := []model.CartLine{
		{
			CartItem: model.CartItem{ID: "line-1", UserID: "user-1", ProductID: "prod-2", Quantity: 2},
			Product:  model.Product{ID: "prod-2", Name: "Rattle", MRP: 200, StockQuantity: 5},
		},
	}
	carts := &mockCartRepository{
		listByUserFn: func(ctx context.Context, userID string) ([]model.CartLine, error) {
			return lines, nil
		},
	}
	svc := NewCheckoutService(&mockTxBeginner{}, carts, &mockProductRepository{}, &mockCouponRepository{}, &mockOrderRepository{}, testPricing, nil)

	quote, err := svc.Quote(context.Background(), "user-1", "")

	require.NoError(t, err)
	assert.Equal(t, float64(400), quote.Subtotal)
	assert.Equal(t, float64(50), quote.Shipping, "subtotal at or below threshold pays shipping")
	assert.Equal(t, float64(450), quote.Total)
}

func TestQuote_FreeShipping(t *testing.T) {
	carts := &mockCartRepository{
		listByUserFn: func(ctx context.Context, userID string) ([]model.CartLine, error) {
			return teddyBearCart(), nil
		},
	}
	svc := NewCheckoutService(&mockTxBeginner{}, carts, &mockProductRepository{}, &mockCouponRepository{}, &mockOrderRepository{}, testPricing, nil)

	quote, err := svc.Quote(context.Background(), "user-1", "")

	require.NoError(t, err)
	assert.Equal(t, float64(800), quote.Subtotal, "subtotal uses the effective price, not MRP")
	assert.Equal(t, float64(0), quote.Shipping)
	assert.Equal(t, float64(800), quote.Total)
}

func TestQuote_WithCoupon(t *testing.T) {
	carts := &mockCartRepository{
		listByUserFn: func(ctx context.Context, userID string) ([]model.CartLine, error) {
			return teddyBearCart(), nil
		},
	}
	coupons := &mockCouponRepository{
		getActiveByCodeFn: func(ctx context.Context, code string) (*model.Coupon, error) {
			return validCoupon(), nil
		},
	}
	svc := NewCheckoutService(&mockTxBeginner{}, carts, &mockProductRepository{}, coupons, &mockOrderRepository{}, testPricing, nil)

	quote, err := svc.Quote(context.Background(), "user-1", "save10")

	require.NoError(t, err)
	assert.Equal(t, float64(800), quote.Subtotal)
	assert.Equal(t, float64(0), quote.Shipping)
	assert.Equal(t, float64(80), quote.Discount)
	assert.Equal(t, float64(720), quote.Total)
	assert.Equal(t, "SAVE10", quote.CouponCode)
}

func TestQuote_RemovingCouponRestoresTotal(t *testing.T) {
	carts := &mockCartRepository{
		listByUserFn: func(ctx context.Context, userID string) ([]model.CartLine, error) {
			return teddyBearCart(), nil
		},
	}
	coupons := &mockCouponRepository{
		getActiveByCodeFn: func(ctx context.Context, code string) (*model.Coupon, error) {
			return validCoupon(), nil
		},
	}
	svc := NewCheckoutService(&mockTxBeginner{}, carts, &mockProductRepository{}, coupons, &mockOrderRepository{}, testPricing, nil)

	with, err := svc.Quote(context.Background(), "user-1", "SAVE10")
	require.NoError(t, err)
	without, err := svc.Quote(context.Background(), "user-1", "")
	require.NoError(t, err)

	assert.Equal(t, without.Total, with.Total+with.Discount)
}

func TestQuote_UnknownCoupon(t *testing.T) {
	carts := &mockCartRepository{
		listByUserFn: func(ctx context.Context, userID string) ([]model.CartLine, error) {
			return teddyBearCart(), nil
		},
	}
	coupons := &mockCouponRepository{
		getActiveByCodeFn: func(ctx context.Context, code string) (*model.Coupon, error) {
			return nil, nil
		},
	}
	svc := NewCheckoutService(&mockTxBeginner{}, carts, &mockProductRepository{}, coupons, &mockOrderRepository{}, testPricing, nil)

	_, err := svc.Quote(context.Background(), "user-1", "NOPE")

	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrCouponNotFound), "error should be ErrCouponNotFound")
}

func TestPlaceOrder_Success(t *testing.T) {
	var (
		committed      bool
		insertedOrder  *model.Order
		insertedItems  []model.OrderItem
		usageIncs      int
		usageRecorded  *model.CouponUsage
		cartCleared    bool
		publishedKey   string
		publishedEvent events.OrderEvent
	)

	tx := &mockTx{
		commitFn: func(ctx context.Context) error {
			committed = true
			return nil
		},
	}
	pool := &mockTxBeginner{
		beginFn: func(ctx context.Context) (pgx.Tx, error) { return tx, nil },
	}
	carts := &mockCartRepository{
		listByUserFn: func(ctx context.Context, userID string) ([]model.CartLine, error) {
			return teddyBearCart(), nil
		},
		clearFn: func(ctx context.Context, q database.TxQuerier, userID string) error {
			cartCleared = true
			return nil
		},
	}
	products := &mockProductRepository{
		getStockForUpdateFn: func(ctx context.Context, tx database.TxQuerier, id string) (string, int, error) {
			return "Teddy Bear", 10, nil
		},
		decrementStockFn: func(ctx context.Context, tx database.TxQuerier, id string, qty int) (bool, error) {
			return true, nil
		},
	}
	coupons := &mockCouponRepository{
		getActiveByCodeForUpdateFn: func(ctx context.Context, tx database.TxQuerier, code string) (*model.Coupon, error) {
			require.Equal(t, "SAVE10", code)
			return validCoupon(), nil
		},
		incrementUsageFn: func(ctx context.Context, tx database.TxQuerier, couponID string) error {
			usageIncs++
			return nil
		},
		insertUsageFn: func(ctx context.Context, tx database.TxQuerier, usage *model.CouponUsage) error {
			usageRecorded = usage
			return nil
		},
	}
	orders := &mockOrderRepository{
		insertFn: func(ctx context.Context, tx database.TxQuerier, o *model.Order) error {
			insertedOrder = o
			return nil
		},
		insertItemsFn: func(ctx context.Context, tx database.TxQuerier, items []model.OrderItem) error {
			insertedItems = items
			return nil
		},
	}
	publisher := &mockEventPublisher{
		publishFn: func(ctx context.Context, routingKey string, event events.OrderEvent) error {
			publishedKey = routingKey
			publishedEvent = event
			return nil
		},
	}

	svc := NewCheckoutService(pool, carts, products, coupons, orders, testPricing, publisher)
	order, err := svc.PlaceOrder(context.Background(), "user-1", checkoutRequest("save10"))

	require.NoError(t, err)
	require.NotNil(t, order)
	assert.True(t, committed, "transaction should commit")
	assert.True(t, cartCleared, "cart should be cleared inside the transaction")

	assert.Equal(t, model.OrderPending, order.Status)
	assert.Equal(t, float64(800), order.Subtotal)
	assert.Equal(t, float64(0), order.ShippingFee)
	assert.Equal(t, float64(80), order.DiscountAmount)
	assert.Equal(t, float64(720), order.TotalAmount)
	assert.True(t, strings.HasPrefix(order.OrderNumber, "ORD-"))
	require.NotNil(t, order.CouponID)
	assert.Equal(t, "coupon-1", *order.CouponID)

	require.NotNil(t, insertedOrder)
	require.Len(t, insertedItems, 1)
	assert.Equal(t, "Teddy Bear", insertedItems[0].ProductName)
	assert.Equal(t, 2, insertedItems[0].Quantity)
	assert.Equal(t, float64(400), insertedItems[0].Price, "item price is the effective price at purchase time")

	assert.Equal(t, 1, usageIncs)
	require.NotNil(t, usageRecorded)
	assert.Equal(t, float64(80), usageRecorded.DiscountAmount)
	assert.Equal(t, insertedOrder.ID, usageRecorded.OrderID)

	assert.Equal(t, events.OrderCreated, publishedKey)
	assert.Equal(t, order.OrderNumber, publishedEvent.OrderNumber)
	assert.Equal(t, float64(720), publishedEvent.TotalAmount)
}

func TestPlaceOrder_EmptyCart(t *testing.T) {
	var began bool
	pool := &mockTxBeginner{
		beginFn: func(ctx context.Context) (pgx.Tx, error) {
			began = true
			return &mockTx{}, nil
		},
	}
	carts := &mockCartRepository{
		listByUserFn: func(ctx context.Context, userID string) ([]model.CartLine, error) {
			return []model.CartLine{}, nil
		},
	}

	svc := NewCheckoutService(pool, carts, &mockProductRepository{}, &mockCouponRepository{}, &mockOrderRepository{}, testPricing, nil)
	_, err := svc.PlaceOrder(context.Background(), "user-1", checkoutRequest(""))

	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrCartEmpty), "error should be ErrCartEmpty")
	assert.False(t, began, "no transaction should start for an empty cart")
}

func TestPlaceOrder_InsufficientStock(t *testing.T) {
	var (
		committed   bool
		rolledBack  bool
		cartCleared bool
	)
	tx := &mockTx{
		commitFn: func(ctx context.Context) error {
			committed = true
			return nil
		},
		rollbackFn: func(ctx context.Context) error {
			rolledBack = true
			return nil
		},
	}
	pool := &mockTxBeginner{
		beginFn: func(ctx context.Context) (pgx.Tx, error) { return tx, nil },
	}
	carts := &mockCartRepository{
		listByUserFn: func(ctx context.Context, userID string) ([]model.CartLine, error) {
			return teddyBearCart(), nil
		},
		clearFn: func(ctx context.Context, q database.TxQuerier, userID string) error {
			cartCleared = true
			return nil
		},
	}
	products := &mockProductRepository{
		getStockForUpdateFn: func(ctx context.Context, tx database.TxQuerier, id string) (string, int, error) {
			return "Teddy Bear", 1, nil
		},
	}

	svc := NewCheckoutService(pool, carts, products, &mockCouponRepository{}, &mockOrderRepository{}, testPricing, nil)
	_, err := svc.PlaceOrder(context.Background(), "user-1", checkoutRequest(""))

	require.Error(t, err)
	var stockErr *InsufficientStockError
	require.True(t, errors.As(err, &stockErr), "error should be *InsufficientStockError")
	assert.Equal(t, "Teddy Bear", stockErr.ProductName)
	assert.Equal(t, 1, stockErr.Available)
	assert.Equal(t, 2, stockErr.Requested)

	assert.False(t, committed, "transaction must not commit")
	assert.True(t, rolledBack, "transaction should roll back")
	assert.False(t, cartCleared, "cart must stay intact after a failed checkout")
}

func TestPlaceOrder_DecrementLosesRace(t *testing.T) {
	var committed bool
	tx := &mockTx{
		commitFn: func(ctx context.Context) error {
			committed = true
			return nil
		},
	}
	pool := &mockTxBeginner{
		beginFn: func(ctx context.Context) (pgx.Tx, error) { return tx, nil },
	}
	carts := &mockCartRepository{
		listByUserFn: func(ctx context.Context, userID string) ([]model.CartLine, error) {
			return teddyBearCart(), nil
		},
	}
	products := &mockProductRepository{
		getStockForUpdateFn: func(ctx context.Context, tx database.TxQuerier, id string) (string, int, error) {
			return "Teddy Bear", 10, nil
		},
		decrementStockFn: func(ctx context.Context, tx database.TxQuerier, id string, qty int) (bool, error) {
			return false, nil
		},
	}

	svc := NewCheckoutService(pool, carts, products, &mockCouponRepository{}, &mockOrderRepository{}, testPricing, nil)
	_, err := svc.PlaceOrder(context.Background(), "user-1", checkoutRequest(""))

	require.Error(t, err)
	var stockErr *InsufficientStockError
	require.True(t, errors.As(err, &stockErr), "error should be *InsufficientStockError")
	assert.False(t, committed, "transaction must not commit")
}

func TestPlaceOrder_CouponCapHitAtSubmit(t *testing.T) {
	var orderInserted bool
	pool := &mockTxBeginner{}
	carts := &mockCartRepository{
		listByUserFn: func(ctx context.Context, userID string) ([]model.CartLine, error) {
			return teddyBearCart(), nil
		},
	}
	coupons := &mockCouponRepository{
		getActiveByCodeForUpdateFn: func(ctx context.Context, tx database.TxQuerier, code string) (*model.Coupon, error) {
			c := validCoupon()
			c.MaxUses = intPtr(1)
			c.CurrentUses = 1
			return c, nil
		},
	}
	orders := &mockOrderRepository{
		insertFn: func(ctx context.Context, tx database.TxQuerier, o *model.Order) error {
			orderInserted = true
			return nil
		},
	}

	svc := NewCheckoutService(pool, carts, &mockProductRepository{}, coupons, orders, testPricing, nil)
	_, err := svc.PlaceOrder(context.Background(), "user-1", checkoutRequest("SAVE10"))

	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrCouponUsageLimit), "error should be ErrCouponUsageLimit")
	assert.False(t, orderInserted, "no order should be written when the coupon is rejected")
}

func TestPlaceOrder_PublishFailureDoesNotFailCheckout(t *testing.T) {
	carts := &mockCartRepository{
		listByUserFn: func(ctx context.Context, userID string) ([]model.CartLine, error) {
			return teddyBearCart(), nil
		},
	}
	products := &mockProductRepository{
		getStockForUpdateFn: func(ctx context.Context, tx database.TxQuerier, id string) (string, int, error) {
			return "Teddy Bear", 10, nil
		},
	}
	publisher := &mockEventPublisher{
		publishFn: func(ctx context.Context, routingKey string, event events.OrderEvent) error {
			return errors.New("broker unavailable")
		},
	}

	svc := NewCheckoutService(&mockTxBeginner{}, carts, products, &mockCouponRepository{}, &mockOrderRepository{}, testPricing, publisher)
	order, err := svc.PlaceOrder(context.Background(), "user-1", checkoutRequest(""))

	require.NoError(t, err, "a broker outage must not fail a committed order")
	require.NotNil(t, order)
	assert.Equal(t, float64(800), order.TotalAmount)
}

func TestNewOrderNumber_Format(t *testing.T) {
	n := newOrderNumber()
	assert.True(t, strings.HasPrefix(n, "ORD-"))
	assert.Equal(t, strings.ToUpper(n), n, "order numbers are uppercase")

	parts := strings.Split(n, "-")
	require.Len(t, parts, 3)
	assert.Len(t, parts[2], 9)
}
