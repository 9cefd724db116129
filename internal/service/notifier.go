package service

import (
	"context"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"github.com/DaviCMachado/my-price-tracker/internal/feed"
	"github.com/DaviCMachado/my-price-tracker/internal/worker"
)

// ChangeNotifier fans out a successful write: feed subscribers reload their
// snapshot and async consumers recompute cached views. Implementations are
// fire-and-forget — the write itself has already been committed.
type ChangeNotifier interface {
	NotifyChange(ctx context.Context)
}

type redisNotifier struct {
	rdb        *redis.Client
	dispatcher *worker.Dispatcher
}

func NewRedisNotifier(rdb *redis.Client, dispatcher *worker.Dispatcher) ChangeNotifier {
	return &redisNotifier{rdb: rdb, dispatcher: dispatcher}
}

func (n *redisNotifier) NotifyChange(ctx context.Context) {
	feed.Publish(ctx, n.rdb)
	if err := n.dispatcher.EnqueueStatsRecompute(ctx); err != nil {
		log.Warn().Err(err).Msg("enqueue stats recompute")
	}
}
