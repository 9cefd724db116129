// Package feed implements the reactive snapshot subscription: writers publish
// a change notification to a Redis channel, and each subscriber receives the
// full, freshly-loaded snapshot (all price records + all stores). There is no
// incremental diff — consumers recompute their derived views from scratch on
// every delivery.
package feed

import (
	"context"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"github.com/DaviCMachado/my-price-tracker/internal/model"
	"github.com/DaviCMachado/my-price-tracker/internal/repository"
)

// Channel carries change notifications. The message body is irrelevant; any
// message means "reload".
const Channel = "precos:changed"

// Snapshot is the current state of both collections at notification time.
type Snapshot struct {
	Records []model.PriceRecord
	Stores  []model.Store
}

// Feed loads snapshots on demand and fans them out to subscribers.
type Feed struct {
	rdb     *redis.Client
	records repository.PriceRecordRepository
	stores  repository.StoreRepository
}

func New(rdb *redis.Client, records repository.PriceRecordRepository, stores repository.StoreRepository) *Feed {
	return &Feed{rdb: rdb, records: records, stores: stores}
}

// Publish signals that a collection changed. Best effort — writers do not wait
// on subscriber delivery.
func Publish(ctx context.Context, rdb *redis.Client) {
	if err := rdb.Publish(ctx, Channel, "changed").Err(); err != nil {
		log.Warn().Err(err).Msg("feed: publish change notification")
	}
}

// Load fetches the current snapshot.
func (f *Feed) Load(ctx context.Context) (Snapshot, error) {
	records, err := f.records.ListAll(ctx)
	if err != nil {
		return Snapshot{}, err
	}
	stores, err := f.stores.List(ctx)
	if err != nil {
		return Snapshot{}, err
	}
	return Snapshot{Records: records, Stores: stores}, nil
}

// Subscribe delivers the current snapshot immediately, then again after every
// change notification, until cancel is called or ctx is done. onSnapshot runs
// on the subscription goroutine; it must not block indefinitely.
func (f *Feed) Subscribe(ctx context.Context, onSnapshot func(Snapshot)) (cancel func(), err error) {
	subCtx, stop := context.WithCancel(ctx)

	snap, err := f.Load(subCtx)
	if err != nil {
		stop()
		return nil, err
	}
	pubsub := f.rdb.Subscribe(subCtx, Channel)

	go func() {
		defer pubsub.Close()
		onSnapshot(snap)
		ch := pubsub.Channel()
		for {
			select {
			case <-subCtx.Done():
				return
			case _, ok := <-ch:
				if !ok {
					return
				}
				next, loadErr := f.Load(subCtx)
				if loadErr != nil {
					// Leave the subscriber on its last good snapshot.
					log.Error().Err(loadErr).Msg("feed: reload snapshot")
					continue
				}
				onSnapshot(next)
			}
		}
	}()

	return stop, nil
}
