package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/Nishantvidhuri/storebackend/internal/models"
)

// fakeStore is an in-memory stand-in for the Postgres store. It backs the
// OrderStore, PaymentStore and CartStore interfaces in tests.
type fakeStore struct {
	carts     map[int64]*models.Cart // keyed by user ID
	cartItems map[int64][]models.CartItem
	products  map[int64]*models.Product
	orders    map[int64]*models.Order
	nextID    int64

	placeOrderErr error
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		carts:     make(map[int64]*models.Cart),
		cartItems: make(map[int64][]models.CartItem),
		products:  make(map[int64]*models.Product),
		orders:    make(map[int64]*models.Order),
		nextID:    1,
	}
}

func (f *fakeStore) seedProduct(p models.Product) {
	f.products[p.ID] = &p
}

func (f *fakeStore) seedCart(userID int64, items ...models.CartItem) *models.Cart {
	cart := &models.Cart{ID: f.nextID, UserID: userID}
	f.nextID++
	f.carts[userID] = cart
	for i := range items {
		items[i].CartID = cart.ID
	}
	f.cartItems[cart.ID] = items
	return cart
}

func (f *fakeStore) GetCartByUserID(ctx context.Context, userID int64) (*models.Cart, error) {
	return f.carts[userID], nil
}

func (f *fakeStore) GetOrCreateCart(ctx context.Context, userID int64) (*models.Cart, error) {
	if cart, ok := f.carts[userID]; ok {
		return cart, nil
	}
	return f.seedCart(userID), nil
}

func (f *fakeStore) GetCartItems(ctx context.Context, cartID int64) ([]models.CartItem, error) {
	return f.cartItems[cartID], nil
}

func (f *fakeStore) GetCartItemViews(ctx context.Context, cartID int64) ([]models.CartItemView, error) {
	var views []models.CartItemView
	for _, item := range f.cartItems[cartID] {
		product, ok := f.products[item.ProductID]
		if !ok {
			continue // join drops dangling lines
		}
		views = append(views, models.CartItemView{
			ID:        item.ID,
			ProductID: item.ProductID,
			Name:      product.Name,
			Price:     product.Price,
			Image:     product.Image,
			Quantity:  item.Quantity,
		})
	}
	return views, nil
}

func (f *fakeStore) GetProductByID(ctx context.Context, id int64) (*models.Product, error) {
	p, ok := f.products[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return p, nil
}

func (f *fakeStore) GetProductsByIDs(ctx context.Context, ids []int64) ([]models.Product, error) {
	var out []models.Product
	for _, id := range ids {
		if p, ok := f.products[id]; ok {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (f *fakeStore) UpsertCartItem(ctx context.Context, cartID, productID int64, quantity int) error {
	items := f.cartItems[cartID]
	for i := range items {
		if items[i].ProductID == productID {
			items[i].Quantity += quantity
			return nil
		}
	}
	f.cartItems[cartID] = append(items, models.CartItem{
		ID:        f.nextID,
		CartID:    cartID,
		ProductID: productID,
		Quantity:  quantity,
	})
	f.nextID++
	return nil
}

func (f *fakeStore) SetCartItemQuantity(ctx context.Context, cartID, itemID int64, quantity int) error {
	for i, item := range f.cartItems[cartID] {
		if item.ID == itemID {
			f.cartItems[cartID][i].Quantity = quantity
			return nil
		}
	}
	return sql.ErrNoRows
}

func (f *fakeStore) DeleteCartItem(ctx context.Context, cartID, itemID int64) error {
	items := f.cartItems[cartID]
	for i, item := range items {
		if item.ID == itemID {
			f.cartItems[cartID] = append(items[:i], items[i+1:]...)
			return nil
		}
	}
	return sql.ErrNoRows
}

func (f *fakeStore) DeleteCartByUserID(ctx context.Context, userID int64) error {
	if cart, ok := f.carts[userID]; ok {
		delete(f.cartItems, cart.ID)
		delete(f.carts, userID)
	}
	return nil
}

func (f *fakeStore) PlaceOrderTx(ctx context.Context, order *models.Order, cartID int64) error {
	if f.placeOrderErr != nil {
		return f.placeOrderErr
	}
	order.ID = f.nextID
	f.nextID++
	order.CreatedAt = time.Now()
	order.UpdatedAt = order.CreatedAt
	stored := *order
	f.orders[order.ID] = &stored
	f.cartItems[cartID] = nil
	return nil
}

func (f *fakeStore) GetOrderByID(ctx context.Context, id int64) (*models.Order, error) {
	order, ok := f.orders[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	copied := *order
	copied.Hydrate()
	return &copied, nil
}

func (f *fakeStore) GetOrdersByUserID(ctx context.Context, userID int64) ([]models.Order, error) {
	var out []models.Order
	for _, o := range f.orders {
		if o.UserID == userID {
			out = append(out, *o)
		}
	}
	return out, nil
}

func (f *fakeStore) GetAllOrders(ctx context.Context) ([]models.Order, error) {
	var out []models.Order
	for _, o := range f.orders {
		out = append(out, *o)
	}
	return out, nil
}

func (f *fakeStore) MarkOrderPaid(ctx context.Context, orderID int64, paidAt time.Time, result models.PaymentResult) error {
	order, ok := f.orders[orderID]
	if !ok {
		return sql.ErrNoRows
	}
	order.IsPaid = true
	order.PaidAt = sql.NullTime{Time: paidAt, Valid: true}
	order.PaymentID = result.PaymentID
	order.PaymentStatus = result.Status
	order.PaymentUpdateTime = sql.NullTime{Time: result.UpdateTime, Valid: true}
	order.PayerEmail = result.PayerEmail
	return nil
}

func (f *fakeStore) UpdateOrderFields(ctx context.Context, orderID int64, isPaid *bool, paidAt *time.Time, status *string) error {
	order, ok := f.orders[orderID]
	if !ok {
		return sql.ErrNoRows
	}
	if isPaid != nil {
		order.IsPaid = *isPaid
	}
	if paidAt != nil {
		order.PaidAt = sql.NullTime{Time: *paidAt, Valid: true}
	}
	if status != nil {
		order.Status = *status
	}
	return nil
}

// fakeSink records SMS sends and can be told to fail
type fakeSink struct {
	sent []sentSMS
	err  error
}

type sentSMS struct {
	to   string
	body string
}

func (f *fakeSink) SendSMS(ctx context.Context, to, body string) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, sentSMS{to: to, body: body})
	return nil
}

// fakePublisher records published events
type fakePublisher struct {
	placed []*models.OrderPlacedEvent
	paid   []*models.OrderPaidEvent
	err    error
}

func (f *fakePublisher) PublishOrderPlaced(ctx context.Context, event *models.OrderPlacedEvent) error {
	if f.err != nil {
		return f.err
	}
	f.placed = append(f.placed, event)
	return nil
}

func (f *fakePublisher) PublishOrderPaid(ctx context.Context, event *models.OrderPaidEvent) error {
	if f.err != nil {
		return f.err
	}
	f.paid = append(f.paid, event)
	return nil
}

// fakeGateway verifies against a fixed expected signature
type fakeGateway struct {
	expectedSignature string
	intent            json.RawMessage
	intentErr         error
	lastReceipt       string
}

func (f *fakeGateway) CreateIntent(ctx context.Context, amount int64, currency, receipt string) (json.RawMessage, error) {
	f.lastReceipt = receipt
	if f.intentErr != nil {
		return nil, f.intentErr
	}
	return f.intent, nil
}

func (f *fakeGateway) VerifySignature(gatewayOrderID, gatewayPaymentID, signature string) bool {
	return signature == f.expectedSignature
}

var errBoom = errors.New("boom")
