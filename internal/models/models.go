package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/Skotchmaster/shop_schema/internal/domain"
)

type OrderStatus string

const (
	OrderStatusNew       OrderStatus = "NEW"
	OrderStatusDone      OrderStatus = "DONE"
	OrderStatusCancelled OrderStatus = "CANCELLED"
)

func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusNew, OrderStatusDone, OrderStatusCancelled:
		return true
	}
	return false
}

type User struct {
	ID       uint    `gorm:"primaryKey;autoIncrement"                       json:"id"`
	Username string  `gorm:"size:20;uniqueIndex;not null"                   json:"username"`
	Email    string  `gorm:"size:50;uniqueIndex;not null"                   json:"email"`
	Cart     *Cart   `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"  json:"cart,omitempty"`
	Orders   []Order `gorm:"foreignKey:UserID;constraint:OnDelete:SET NULL" json:"orders,omitempty"`
}

type Cart struct {
	ID     uint       `gorm:"primaryKey;autoIncrement"                       json:"id"`
	UserID *uint      `gorm:"uniqueIndex"                                    json:"user_id"`
	Items  []CartItem `gorm:"foreignKey:CartID;constraint:OnDelete:CASCADE"  json:"items"`
}

type Order struct {
	ID      uint        `gorm:"primaryKey;autoIncrement"                 json:"id"`
	UserID  *uint       `gorm:"index"                                    json:"user_id"`
	Created time.Time   `gorm:"column:created;<-:create;autoCreateTime"  json:"created"`
	Status  OrderStatus `gorm:"type:varchar(10);not null;default:NEW"    json:"status"`
	Items   []OrderItem `gorm:"foreignKey:OrderID"                       json:"items"`
}

// ItemFields is the id+quantity shape shared by cart and order lines.
type ItemFields struct {
	ID       uint `gorm:"primaryKey;autoIncrement"   json:"id"`
	Quantity int  `gorm:"not null;check:quantity > 0" json:"quantity"`
}

type CartItem struct {
	ItemFields
	CartID    uint     `gorm:"not null;uniqueIndex:idx_cart_product"  json:"cart_id"`
	ProductID uint     `gorm:"not null;uniqueIndex:idx_cart_product"  json:"product_id"`
	Product   *Product `json:"product,omitempty"`
}

type OrderItem struct {
	ItemFields
	OrderID   uint     `gorm:"not null;index"  json:"order_id"`
	ProductID uint     `gorm:"not null;index"  json:"product_id"`
	Product   *Product `json:"product,omitempty"`
}

type Category struct {
	ID       uint      `gorm:"primaryKey;autoIncrement"  json:"id"`
	Name     string    `gorm:"size:20;uniqueIndex;not null" json:"name"`
	Products []Product `gorm:"foreignKey:CategoryID"     json:"products,omitempty"`
}

type Product struct {
	ID          uint            `gorm:"primaryKey;autoIncrement"     json:"id"`
	Name        string          `gorm:"size:20;uniqueIndex;not null" json:"name"`
	Price       decimal.Decimal `gorm:"type:decimal(20,2);not null"  json:"price"`
	Quantity    int             `gorm:"not null"                     json:"quantity"`
	Description string          `gorm:"type:text;not null"           json:"description"`
	CategoryID  uint            `gorm:"not null;index"               json:"category_id"`
}

// All lists every table in dependency order.
func All() []any {
	return []any{
		&User{},
		&Category{},
		&Product{},
		&Cart{},
		&CartItem{},
		&Order{},
		&OrderItem{},
	}
}

// NewUser builds a user, running both field validators.
func NewUser(username, email string) (*User, error) {
	u := &User{}
	if err := u.SetUsername(username); err != nil {
		return nil, err
	}
	if err := u.SetEmail(email); err != nil {
		return nil, err
	}
	return u, nil
}

func (u *User) SetUsername(username string) error {
	v, err := domain.ValidateUsername(username)
	if err != nil {
		return err
	}
	u.Username = v
	return nil
}

func (u *User) SetEmail(email string) error {
	v, err := domain.ValidateEmail(email)
	if err != nil {
		return err
	}
	u.Email = v
	return nil
}

// BeforeSave rejects users whose fields were assigned around the setters.
func (u *User) BeforeSave(tx *gorm.DB) error {
	if _, err := domain.ValidateUsername(u.Username); err != nil {
		return err
	}
	if _, err := domain.ValidateEmail(u.Email); err != nil {
		return err
	}
	return nil
}

func (o *Order) BeforeCreate(tx *gorm.DB) error {
	if o.Status == "" {
		o.Status = OrderStatusNew
	}
	return nil
}

func (i *ItemFields) validate() error {
	return domain.ValidateQuantity(i.Quantity)
}

func (c *CartItem) BeforeSave(tx *gorm.DB) error {
	return c.validate()
}

func (o *OrderItem) BeforeSave(tx *gorm.DB) error {
	return o.validate()
}
