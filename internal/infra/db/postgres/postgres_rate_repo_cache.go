package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/Abdelmagid1892/translation-office-app/internal/domain/model"
	"github.com/Abdelmagid1892/translation-office-app/internal/domain/ports/repository"
	"github.com/Abdelmagid1892/translation-office-app/internal/infra/metrics"
	red "github.com/Abdelmagid1892/translation-office-app/internal/infra/redis"
)

var _ repository.RateRepository = (*rateRepoCacheDecorator)(nil)

// rateRepoCacheDecorator caches rate lookups; every quote computation hits
// FindByPair, while the table itself changes rarely.
type rateRepoCacheDecorator struct {
	inner repository.RateRepository
	cache red.RedisClient
	ttl   time.Duration
}

func NewRateRepoCacheDecorator(inner repository.RateRepository, cache red.RedisClient) repository.RateRepository {
	return &rateRepoCacheDecorator{
		inner: inner,
		cache: cache,
		ttl:   1 * time.Hour,
	}
}

func rateKey(src, dst string) string {
	return fmt.Sprintf("rate:%s", model.LanguagePair(src, dst))
}

func (d *rateRepoCacheDecorator) FindByPair(ctx context.Context, tx repository.Tx, src, dst string) (*model.Rate, error) {
	key := rateKey(src, dst)
	val, err := d.cache.Get(ctx, key)
	if err == nil {
		metrics.IncCacheRequest("rate", "hit")
		var rate model.Rate
		if json.Unmarshal([]byte(val), &rate) == nil {
			return &rate, nil
		}
	} else if err != redis.Nil {
		metrics.IncCacheRequest("rate", "error")
	}

	metrics.IncCacheRequest("rate", "miss")
	rate, err := d.inner.FindByPair(ctx, tx, src, dst)
	if err != nil {
		return nil, err
	}
	if rate != nil {
		bytes, _ := json.Marshal(rate)
		_ = d.cache.Set(ctx, key, bytes, d.ttl)
	}
	return rate, nil
}

func (d *rateRepoCacheDecorator) Save(ctx context.Context, tx repository.Tx, rate *model.Rate) error {
	if err := d.inner.Save(ctx, tx, rate); err != nil {
		return err
	}
	_ = d.cache.Del(ctx, rateKey(rate.SourceLanguage, rate.TargetLanguage))
	return nil
}

func (d *rateRepoCacheDecorator) ListAll(ctx context.Context, tx repository.Tx) ([]*model.Rate, error) {
	return d.inner.ListAll(ctx, tx)
}

func (d *rateRepoCacheDecorator) Delete(ctx context.Context, tx repository.Tx, id string) error {
	// Resolve the pair before the row disappears so its key can be dropped.
	rates, err := d.inner.ListAll(ctx, tx)
	if err == nil {
		for _, rate := range rates {
			if rate.ID == id {
				_ = d.cache.Del(ctx, rateKey(rate.SourceLanguage, rate.TargetLanguage))
				break
			}
		}
	}
	return d.inner.Delete(ctx, tx, id)
}
