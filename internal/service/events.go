package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/Skotchmaster/shop_schema/internal/models"
	"github.com/Skotchmaster/shop_schema/pkg/logging"
)

const (
	TopicUser    = "user_events"
	TopicCart    = "cart_events"
	TopicOrder   = "order_events"
	TopicProduct = "product_events"
)

// Topics lists every topic the service writes to.
var Topics = []string{TopicUser, TopicCart, TopicOrder, TopicProduct}

type EventPublisher interface {
	PublishEvent(ctx context.Context, topic, key string, event any) error
}

type ProductIndex interface {
	IndexProduct(ctx context.Context, p *models.Product) error
	DeleteProduct(ctx context.Context, id uint) error
	Search(ctx context.Context, query string, from, size int) (int64, []uint, error)
}

func newEvent(typ string, fields map[string]any) map[string]any {
	event := map[string]any{
		"id":   uuid.NewString(),
		"type": typ,
		"at":   time.Now().UTC().Format(time.RFC3339Nano),
	}
	for k, v := range fields {
		event[k] = v
	}
	return event
}

// publish never fails the caller; delivery problems are logged.
func (s *ShopService) publish(ctx context.Context, topic string, key uint, typ string, fields map[string]any) {
	if s.Events == nil {
		return
	}
	pubCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
	defer cancel()
	if err := s.Events.PublishEvent(pubCtx, topic, fmt.Sprint(key), newEvent(typ, fields)); err != nil {
		logging.FromContext(ctx).Warn("publish_event_failed", "topic", topic, "type", typ, "error", err)
	}
}

func (s *ShopService) reindex(ctx context.Context, p *models.Product) {
	if s.Search == nil {
		return
	}
	if err := s.Search.IndexProduct(ctx, p); err != nil {
		logging.FromContext(ctx).Warn("index_product_failed", "product_id", p.ID, "error", err)
	}
}

func (s *ShopService) unindex(ctx context.Context, id uint) {
	if s.Search == nil {
		return
	}
	if err := s.Search.DeleteProduct(ctx, id); err != nil {
		logging.FromContext(ctx).Warn("unindex_product_failed", "product_id", id, "error", err)
	}
}
