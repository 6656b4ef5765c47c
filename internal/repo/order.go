package repo

import (
	"context"

	"gorm.io/gorm"

	"github.com/Skotchmaster/shop_schema/internal/models"
)

func (r *GormRepo) CreateOrder(ctx context.Context, order *models.Order) error {
	return r.DB.WithContext(ctx).Create(order).Error
}

func (r *GormRepo) GetOrder(ctx context.Context, id uint) (*models.Order, error) {
	var order models.Order
	if err := r.DB.WithContext(ctx).
		Preload("Items", preloadItems).
		Preload("Items.Product").
		First(&order, id).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *GormRepo) ListOrders(ctx context.Context, userID uint, offset, limit int) (int64, []models.Order, error) {
	q := r.DB.WithContext(ctx).Model(&models.Order{}).Where("user_id = ?", userID)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return 0, nil, err
	}

	var orders []models.Order
	if err := r.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		Preload("Items", preloadItems).
		Order("created DESC").Order("id DESC").
		Offset(offset).Limit(limit).
		Find(&orders).Error; err != nil {
		return 0, nil, err
	}
	return total, orders, nil
}

// SetOrderStatus stores any status; no transition rules apply.
func (r *GormRepo) SetOrderStatus(ctx context.Context, id uint, status models.OrderStatus) (*models.Order, error) {
	res := r.DB.WithContext(ctx).Model(&models.Order{}).Where("id = ?", id).Update("status", status)
	if err := notFoundIfNone(res); err != nil {
		return nil, err
	}
	return r.GetOrder(ctx, id)
}

// CreateOrderFromCart copies the cart lines into a new order owned by the
// cart's user and empties the cart.
func (r *GormRepo) CreateOrderFromCart(ctx context.Context, cartID uint) (*models.Order, error) {
	var order models.Order
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var cart models.Cart
		if err := tx.Preload("Items", preloadItems).First(&cart, cartID).Error; err != nil {
			return err
		}
		if len(cart.Items) == 0 {
			return ErrEmptyCart
		}

		order = models.Order{UserID: cart.UserID, Status: models.OrderStatusNew}
		for _, it := range cart.Items {
			order.Items = append(order.Items, models.OrderItem{
				ItemFields: models.ItemFields{Quantity: it.Quantity},
				ProductID:  it.ProductID,
			})
		}
		if err := tx.Create(&order).Error; err != nil {
			return err
		}

		return tx.Where("cart_id = ?", cartID).Delete(&models.CartItem{}).Error
	})
	if err != nil {
		return nil, err
	}
	return &order, nil
}
