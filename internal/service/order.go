package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"gorm.io/gorm"

	"github.com/softstep/shop/internal/events"
	"github.com/softstep/shop/internal/logging"
	"github.com/softstep/shop/internal/models"
	"github.com/softstep/shop/internal/notify"
	"github.com/softstep/shop/internal/repo"
	"github.com/softstep/shop/internal/transport"
)

type OrderService struct {
	Repo     *repo.GormRepo
	Notifier notify.Notifier
	Producer *events.Producer
}

// NewOrderID derives an order id from the wall clock: "ORD-" plus the last
// six digits of unix milliseconds. Coarse collision avoidance only.
func NewOrderID(now time.Time) string {
	ms := strconv.FormatInt(now.UnixMilli(), 10)
	return "ORD-" + ms[len(ms)-6:]
}

func (s *OrderService) Create(ctx context.Context, items []transport.CreateOrderItem) (*models.Order, error) {
	if len(items) == 0 {
		return nil, fmt.Errorf("%w: cart is empty", ErrValidation)
	}

	lineItems := make([]models.OrderItem, 0, len(items))
	for _, it := range items {
		if it.ID == "" {
			return nil, fmt.Errorf("%w: line item product id is required", ErrValidation)
		}
		if it.Quantity <= 0 {
			return nil, fmt.Errorf("%w: line item quantity must be > 0", ErrValidation)
		}
		lineItems = append(lineItems, models.OrderItem{
			ProductID: it.ID,
			Quantity:  it.Quantity,
			Price:     it.Price,
		})
	}

	now := time.Now().UTC()
	order := &models.Order{
		OrderID:   NewOrderID(now),
		OrderDate: now.Format(time.RFC3339),
		Status:    models.OrderStatusPending,
		Items:     lineItems,
	}

	if err := s.Repo.CreateOrder(ctx, order); err != nil {
		return nil, err
	}

	s.broadcastPendingCount(ctx)
	s.publish(ctx, order.OrderID, map[string]interface{}{
		"type":    "order_created",
		"orderID": order.OrderID,
		"items":   len(order.Items),
	})

	return order, nil
}

func (s *OrderService) List(ctx context.Context) ([]models.Order, error) {
	return s.Repo.ListOrders(ctx)
}

func (s *OrderService) PendingCount(ctx context.Context) (int64, error) {
	return s.Repo.PendingOrderCount(ctx)
}

// Confirm flips a pending order to Confirmed, decrementing each referenced
// product's stock first. An already-confirmed order is indistinguishable from
// an absent one to the caller.
//
// Decrements are issued one statement per line item with no enclosing
// transaction: a failure partway leaves the earlier decrements applied and
// the order Pending, and a retry reprocesses every item. Each decrement is a
// single relative update, so concurrent confirmations touching the same
// product cannot lose arithmetic.
func (s *OrderService) Confirm(ctx context.Context, orderID string) error {
	order, err := s.Repo.GetOrder(ctx, orderID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%w: order not found or already confirmed", ErrNotFound)
	}
	if err != nil {
		return err
	}
	if order.Status == models.OrderStatusConfirmed {
		return fmt.Errorf("%w: order not found or already confirmed", ErrNotFound)
	}

	for _, item := range order.Items {
		if err := s.Repo.DecrementStock(ctx, item.ProductID, item.Quantity); err != nil {
			return fmt.Errorf("%w: stock update for product %s: %v", ErrUpdateFailed, item.ProductID, err)
		}
	}

	if err := s.Repo.SetOrderStatus(ctx, orderID, models.OrderStatusConfirmed); err != nil {
		return fmt.Errorf("%w: status update for order %s: %v", ErrUpdateFailed, orderID, err)
	}

	s.broadcastPendingCount(ctx)
	s.publish(ctx, orderID, map[string]interface{}{
		"type":    "order_confirmed",
		"orderID": orderID,
	})

	return nil
}

// broadcastPendingCount pushes the current pending count to the notification
// channel. Best-effort: a failed count read is logged, never surfaced.
func (s *OrderService) broadcastPendingCount(ctx context.Context) {
	count, err := s.Repo.PendingOrderCount(ctx)
	if err != nil {
		logging.FromContext(ctx).Warn("pending count read failed", "error", err)
		return
	}
	if s.Notifier != nil {
		s.Notifier.BroadcastPendingCount(count)
	}
}

func (s *OrderService) publish(ctx context.Context, key string, event map[string]interface{}) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := s.Producer.Publish(ctx, events.TopicOrderEvents, key, event); err != nil {
		logging.FromContext(ctx).Warn("event publish failed", "topic", events.TopicOrderEvents, "error", err)
	}
}
