package redisnotify

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/gfsilva/setup-rastreio/internal/application/dto"
	"github.com/gfsilva/setup-rastreio/internal/application/tracking"
	"github.com/gfsilva/setup-rastreio/pkg/config"
)

var _ tracking.LowStockNotifier = (*Notifier)(nil)

// Notifier publica eventos de estoque baixo num canal pub/sub do Redis.
// Os clientes (frontend via gateway de websocket, bots de aviso) assinam o
// canal para receber os alertas em tempo real.
type Notifier struct {
	client  *redis.Client
	channel string
}

// NewNotifier cria o cliente Redis e verifica a conexão.
func NewNotifier(ctx context.Context, cfg config.RedisConfig) (*Notifier, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return &Notifier{client: client, channel: cfg.Channel}, nil
}

// Publish serializa o evento em JSON e publica no canal configurado.
func (n *Notifier) Publish(ctx context.Context, ev dto.LowStockEvent) error {
	payload, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("marshal evento: %w", err)
	}
	if err := n.client.Publish(ctx, n.channel, payload).Err(); err != nil {
		return fmt.Errorf("publish evento: %w", err)
	}
	return nil
}

// Close fecha a conexão com o Redis.
func (n *Notifier) Close() error {
	return n.client.Close()
}
