package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/Skotchmaster/shop_schema/internal/domain"
	"github.com/Skotchmaster/shop_schema/internal/models"
	"github.com/Skotchmaster/shop_schema/internal/transport"
)

func (s *ShopService) CreateCart(ctx context.Context, req transport.CreateCartRequest) (*models.Cart, error) {
	if req.UserID != nil {
		if _, err := s.Repo.GetUser(ctx, *req.UserID); err != nil {
			return nil, mapRepoError(err)
		}
	}

	cart := &models.Cart{UserID: req.UserID, Items: []models.CartItem{}}
	if err := s.Repo.CreateCart(ctx, cart); err != nil {
		return nil, mapRepoError(err)
	}

	s.publish(ctx, TopicCart, cart.ID, "cart_created", map[string]any{"cartID": cart.ID, "userID": cart.UserID})
	return cart, nil
}

// UserCart returns the user's cart, creating an empty one on first use.
func (s *ShopService) UserCart(ctx context.Context, userID uint) (*models.Cart, error) {
	cart, err := s.Repo.GetCartByUser(ctx, userID)
	if err == nil {
		return cart, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, mapRepoError(err)
	}
	return s.CreateCart(ctx, transport.CreateCartRequest{UserID: &userID})
}

func (s *ShopService) GetCart(ctx context.Context, id uint) (*models.Cart, error) {
	cart, err := s.Repo.GetCart(ctx, id)
	return cart, mapRepoError(err)
}

func (s *ShopService) AddCartItem(ctx context.Context, cartID uint, req transport.AddCartItemRequest) (*models.CartItem, error) {
	if err := domain.ValidateQuantity(req.Quantity); err != nil {
		return nil, validation(err)
	}
	if req.ProductID == 0 {
		return nil, fmt.Errorf("%w: product_id required", ErrValidation)
	}
	if _, err := s.Repo.GetProduct(ctx, req.ProductID); err != nil {
		return nil, mapRepoError(err)
	}

	item := &models.CartItem{
		ItemFields: models.ItemFields{Quantity: req.Quantity},
		CartID:     cartID,
		ProductID:  req.ProductID,
	}
	if err := s.Repo.AddCartItem(ctx, item); err != nil {
		return nil, mapRepoError(err)
	}

	s.publish(ctx, TopicCart, cartID, "cart_item_added", map[string]any{
		"cartID": cartID, "productID": item.ProductID, "quantity": item.Quantity,
	})
	return item, nil
}

func (s *ShopService) RemoveCartItem(ctx context.Context, cartID, itemID uint) error {
	if err := s.Repo.RemoveCartItem(ctx, cartID, itemID); err != nil {
		return mapRepoError(err)
	}
	s.publish(ctx, TopicCart, cartID, "cart_item_removed", map[string]any{"cartID": cartID, "itemID": itemID})
	return nil
}

func (s *ShopService) ClearCart(ctx context.Context, cartID uint) error {
	if _, err := s.Repo.GetCart(ctx, cartID); err != nil {
		return mapRepoError(err)
	}
	if err := s.Repo.ClearCart(ctx, cartID); err != nil {
		return mapRepoError(err)
	}
	s.publish(ctx, TopicCart, cartID, "cart_cleared", map[string]any{"cartID": cartID})
	return nil
}

func (s *ShopService) GetUserCart(ctx context.Context, userID uint) (*models.Cart, error) {
	cart, err := s.Repo.GetCartByUser(ctx, userID)
	return cart, mapRepoError(err)
}
