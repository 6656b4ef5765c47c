package transport

import (
	"github.com/shopspring/decimal"

	"github.com/Skotchmaster/shop_schema/internal/models"
)

type CreateUserRequest struct {
	Username string `json:"username" validate:"required"`
	Email    string `json:"email"    validate:"required,max=50"`
}

type PatchUserRequest struct {
	Username *string `json:"username"`
	Email    *string `json:"email"    validate:"omitempty,max=50"`
}

type CreateCartRequest struct {
	UserID *uint `json:"user_id"`
}

type AddCartItemRequest struct {
	ProductID uint `json:"product_id" validate:"required"`
	Quantity  int  `json:"quantity"`
}

type CreateOrderItem struct {
	ProductID uint `json:"product_id" validate:"required"`
	Quantity  int  `json:"quantity"`
}

type CreateOrderRequest struct {
	UserID *uint              `json:"user_id"`
	Status models.OrderStatus `json:"status" validate:"omitempty,oneof=NEW DONE CANCELLED"`
	Items  []CreateOrderItem  `json:"items"  validate:"dive"`
}

type SetOrderStatusRequest struct {
	Status models.OrderStatus `json:"status" validate:"required,oneof=NEW DONE CANCELLED"`
}

type CreateCategoryRequest struct {
	Name string `json:"name" validate:"required,max=20"`
}

type CreateProductRequest struct {
	Name        string          `json:"name"        validate:"required,max=20"`
	Description string          `json:"description" validate:"required"`
	Price       decimal.Decimal `json:"price"`
	Quantity    int             `json:"quantity"    validate:"gte=0"`
	CategoryID  uint            `json:"category_id" validate:"required"`
}

type PatchProductRequest struct {
	Name        *string          `json:"name"        validate:"omitempty,min=1,max=20"`
	Description *string          `json:"description" validate:"omitempty,min=1"`
	Price       *decimal.Decimal `json:"price"`
	Quantity    *int             `json:"quantity"    validate:"omitempty,gte=0"`
	CategoryID  *uint            `json:"category_id" validate:"omitempty,gt=0"`
}

type Page[T any] struct {
	Data []T      `json:"data"`
	Meta PageMeta `json:"meta"`
}

type PageMeta struct {
	Page       int   `json:"page"`
	Size       int   `json:"size"`
	Total      int64 `json:"total"`
	TotalPages int64 `json:"total_pages"`
	HasPrev    bool  `json:"has_prev"`
	HasNext    bool  `json:"has_next"`
}

func NewPage[T any](items []T, page, offset, limit int, total int64) Page[T] {
	if items == nil {
		items = []T{}
	}
	return Page[T]{
		Data: items,
		Meta: PageMeta{
			Page:       page,
			Size:       limit,
			Total:      total,
			TotalPages: (total + int64(limit) - 1) / int64(limit),
			HasPrev:    page > 1,
			HasNext:    int64(offset+limit) < total,
		},
	}
}
