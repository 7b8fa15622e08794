package repo

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/softstep/shop/internal/models"
)

func (r *GormRepo) CreateOrder(ctx context.Context, order *models.Order) error {
	data, err := json.Marshal(order.Items)
	if err != nil {
		return fmt.Errorf("serialize items: %w", err)
	}
	order.ItemsJSON = string(data)

	return r.DB.WithContext(ctx).Create(order).Error
}

func (r *GormRepo) GetOrder(ctx context.Context, orderID string) (*models.Order, error) {
	order := models.Order{}
	if err := r.DB.WithContext(ctx).Where("order_id = ?", orderID).First(&order).Error; err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(order.ItemsJSON), &order.Items); err != nil {
		return nil, fmt.Errorf("deserialize items of %s: %w", order.OrderID, err)
	}
	return &order, nil
}

func (r *GormRepo) ListOrders(ctx context.Context) ([]models.Order, error) {
	orders := []models.Order{}
	if err := r.DB.WithContext(ctx).Model(&models.Order{}).Order("order_date DESC").Find(&orders).Error; err != nil {
		return nil, err
	}
	for i := range orders {
		if err := json.Unmarshal([]byte(orders[i].ItemsJSON), &orders[i].Items); err != nil {
			return nil, fmt.Errorf("deserialize items of %s: %w", orders[i].OrderID, err)
		}
	}
	return orders, nil
}

func (r *GormRepo) PendingOrderCount(ctx context.Context) (int64, error) {
	var count int64
	err := r.DB.WithContext(ctx).Model(&models.Order{}).
		Where("status = ?", models.OrderStatusPending).
		Count(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}

func (r *GormRepo) SetOrderStatus(ctx context.Context, orderID, status string) error {
	return r.DB.WithContext(ctx).Model(&models.Order{}).
		Where("order_id = ?", orderID).
		Update("status", status).Error
}
