package service

import (
	"github.com/Skotchmaster/shop_schema/internal/repo"
)

// ShopService is the application layer over the repository. Events and
// Search are optional.
type ShopService struct {
	Repo   *repo.GormRepo
	Events EventPublisher
	Search ProductIndex
}
