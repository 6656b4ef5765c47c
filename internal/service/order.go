package service

import (
	"context"
	"fmt"

	"github.com/Skotchmaster/shop_schema/internal/domain"
	"github.com/Skotchmaster/shop_schema/internal/models"
	"github.com/Skotchmaster/shop_schema/internal/transport"
)

func (s *ShopService) CreateOrder(ctx context.Context, req transport.CreateOrderRequest) (*models.Order, error) {
	if req.Status != "" && !req.Status.Valid() {
		return nil, fmt.Errorf("%w: unknown status %q", ErrValidation, req.Status)
	}
	if req.UserID != nil {
		if _, err := s.Repo.GetUser(ctx, *req.UserID); err != nil {
			return nil, mapRepoError(err)
		}
	}

	order := &models.Order{UserID: req.UserID, Status: req.Status, Items: []models.OrderItem{}}
	for _, it := range req.Items {
		if err := domain.ValidateQuantity(it.Quantity); err != nil {
			return nil, validation(err)
		}
		if it.ProductID == 0 {
			return nil, fmt.Errorf("%w: product_id required", ErrValidation)
		}
		order.Items = append(order.Items, models.OrderItem{
			ItemFields: models.ItemFields{Quantity: it.Quantity},
			ProductID:  it.ProductID,
		})
	}

	if err := s.Repo.CreateOrder(ctx, order); err != nil {
		return nil, mapRepoError(err)
	}

	s.publish(ctx, TopicOrder, order.ID, "order_created", map[string]any{
		"orderID": order.ID, "userID": order.UserID, "status": order.Status,
	})
	return order, nil
}

func (s *ShopService) Checkout(ctx context.Context, cartID uint) (*models.Order, error) {
	order, err := s.Repo.CreateOrderFromCart(ctx, cartID)
	if err != nil {
		return nil, mapRepoError(err)
	}

	s.publish(ctx, TopicOrder, order.ID, "order_created", map[string]any{
		"orderID": order.ID, "userID": order.UserID, "status": order.Status, "cartID": cartID,
	})
	return order, nil
}

func (s *ShopService) GetOrder(ctx context.Context, id uint) (*models.Order, error) {
	order, err := s.Repo.GetOrder(ctx, id)
	return order, mapRepoError(err)
}

func (s *ShopService) ListOrders(ctx context.Context, userID uint, offset, limit int) (int64, []models.Order, error) {
	if _, err := s.Repo.GetUser(ctx, userID); err != nil {
		return 0, nil, mapRepoError(err)
	}
	total, orders, err := s.Repo.ListOrders(ctx, userID, offset, limit)
	return total, orders, mapRepoError(err)
}

// SetOrderStatus accepts any of the three statuses from any current status.
func (s *ShopService) SetOrderStatus(ctx context.Context, id uint, status models.OrderStatus) (*models.Order, error) {
	if !status.Valid() {
		return nil, fmt.Errorf("%w: unknown status %q", ErrValidation, status)
	}
	order, err := s.Repo.SetOrderStatus(ctx, id, status)
	if err != nil {
		return nil, mapRepoError(err)
	}

	s.publish(ctx, TopicOrder, order.ID, "order_status_changed", map[string]any{"orderID": order.ID, "status": order.Status})
	return order, nil
}
