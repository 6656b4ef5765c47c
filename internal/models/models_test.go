package models

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/Skotchmaster/shop_schema/internal/domain"
)

func initTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:?_pragma=foreign_keys(1)"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(All()...))
	return db
}

func TestNewUser(t *testing.T) {
	u, err := NewUser("alice", "alice@example.com")
	require.NoError(t, err)
	assert.Equal(t, "alice", u.Username)
	assert.Equal(t, "alice@example.com", u.Email)

	_, err = NewUser("bob", "bob@example.com")
	require.ErrorIs(t, err, domain.ErrInvalidUsername)

	_, err = NewUser("bobby", "bobby.example.com")
	require.ErrorIs(t, err, domain.ErrInvalidEmail)
}

func TestUserSetters_KeepOldValueOnError(t *testing.T) {
	u, err := NewUser("alice", "alice@example.com")
	require.NoError(t, err)

	require.ErrorIs(t, u.SetUsername("al"), domain.ErrInvalidUsername)
	assert.Equal(t, "alice", u.Username)

	require.ErrorIs(t, u.SetEmail("nope"), domain.ErrInvalidEmail)
	assert.Equal(t, "alice@example.com", u.Email)

	require.NoError(t, u.SetEmail("a@b.c"))
	assert.Equal(t, "a@b.c", u.Email)
}

func TestUserBeforeSave_RejectsHandBuiltUser(t *testing.T) {
	db := initTestDB(t)

	err := db.Create(&User{Username: "abc", Email: "abc@example.com"}).Error
	require.ErrorIs(t, err, domain.ErrInvalidUsername)

	u := &User{Username: "valid_user", Email: "valid@example.com"}
	require.NoError(t, db.Create(u).Error)

	u.Email = "broken"
	require.ErrorIs(t, db.Save(u).Error, domain.ErrInvalidEmail)
}

func TestOrder_DefaultStatusAndCreated(t *testing.T) {
	db := initTestDB(t)

	o := &Order{}
	require.NoError(t, db.Create(o).Error)
	assert.Equal(t, OrderStatusNew, o.Status)
	assert.False(t, o.Created.IsZero())

	var stored Order
	require.NoError(t, db.First(&stored, o.ID).Error)
	assert.Equal(t, OrderStatusNew, stored.Status)
}

func TestItemQuantity_MustBePositive(t *testing.T) {
	db := initTestDB(t)

	cat := Category{Name: "tools"}
	require.NoError(t, db.Create(&cat).Error)
	prod := Product{Name: "hammer", Price: decimal.RequireFromString("12.50"), Quantity: 4, Description: "steel", CategoryID: cat.ID}
	require.NoError(t, db.Create(&prod).Error)
	cart := Cart{}
	require.NoError(t, db.Create(&cart).Error)

	err := db.Create(&CartItem{ItemFields: ItemFields{Quantity: 0}, CartID: cart.ID, ProductID: prod.ID}).Error
	require.ErrorIs(t, err, domain.ErrInvalidQuantity)

	err = db.Create(&OrderItem{ItemFields: ItemFields{Quantity: -1}, ProductID: prod.ID}).Error
	require.ErrorIs(t, err, domain.ErrInvalidQuantity)
}

func TestOrderStatus_Valid(t *testing.T) {
	for _, s := range []OrderStatus{OrderStatusNew, OrderStatusDone, OrderStatusCancelled} {
		assert.True(t, s.Valid(), s)
	}
	assert.False(t, OrderStatus("SHIPPED").Valid())
	assert.False(t, OrderStatus("").Valid())
}
