package redis

import (
	"context"

	"github.com/redis/go-redis/v9"
)

// HealthChecker implements ports.HealthChecker for Redis.
type HealthChecker struct {
	client *redis.Client
}

// NewHealthChecker creates a new redis HealthChecker.
func NewHealthChecker(client *redis.Client) *HealthChecker {
	return &HealthChecker{client: client}
}

func (h *HealthChecker) Ping(ctx context.Context) error {
	return h.client.Ping(ctx).Err()
}

func (h *HealthChecker) Name() string {
	return "redis"
}
