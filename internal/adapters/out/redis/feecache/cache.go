// Package feecache keeps fee configs in Redis, one key per parcel type.
package feecache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"parcelhub/internal/core/domain/model/fee"
	"parcelhub/internal/core/domain/model/kernel"
	"parcelhub/internal/core/ports"

	"github.com/redis/go-redis/v9"
)

const (
	keyPrefix  = "parcelhub:fee-config:"
	DefaultTTL = 10 * time.Minute
)

var _ ports.FeeConfigCache = (*RedisFeeConfigCache)(nil)

type entry struct {
	ID         string   `json:"id"`
	ParcelType string   `json:"parcelType"`
	FeeType    string   `json:"feeType"`
	BaseFee    float64  `json:"baseFee"`
	WeightRate *float64 `json:"weightRate,omitempty"`
}

type RedisFeeConfigCache struct {
	client redis.Cmdable
	ttl    time.Duration
}

// NewRedisFeeConfigCache uses DefaultTTL when ttl is not positive.
func NewRedisFeeConfigCache(client redis.Cmdable, ttl time.Duration) *RedisFeeConfigCache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &RedisFeeConfigCache{client: client, ttl: ttl}
}

func (c *RedisFeeConfigCache) Get(ctx context.Context, parcelType fee.ParcelType) (*fee.FeeConfig, bool, error) {
	raw, err := c.client.Get(ctx, key(parcelType)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	var e entry
	if err = json.Unmarshal(raw, &e); err != nil {
		return nil, false, fmt.Errorf("decode cached fee config %s: %w", parcelType, err)
	}

	id, err := kernel.UUIDFromString(e.ID)
	if err != nil {
		return nil, false, err
	}

	cfg, err := fee.NewFeeConfig(id, fee.ParcelType(e.ParcelType), fee.Type(e.FeeType), e.BaseFee, e.WeightRate)
	if err != nil {
		return nil, false, err
	}

	return cfg, true, nil
}

func (c *RedisFeeConfigCache) Set(ctx context.Context, config *fee.FeeConfig) error {
	if err := config.Validate(); err != nil {
		return err
	}

	raw, err := json.Marshal(entry{
		ID:         config.ID().String(),
		ParcelType: config.ParcelType().String(),
		FeeType:    config.FeeType().String(),
		BaseFee:    config.BaseFee(),
		WeightRate: config.WeightRate(),
	})
	if err != nil {
		return err
	}

	return c.client.Set(ctx, key(config.ParcelType()), raw, c.ttl).Err()
}

func (c *RedisFeeConfigCache) Invalidate(ctx context.Context, parcelType fee.ParcelType) error {
	return c.client.Del(ctx, key(parcelType)).Err()
}

func key(parcelType fee.ParcelType) string {
	return keyPrefix + parcelType.String()
}
