package queue

import (
	"context"
	"hash/fnv"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/ineludible/trazos-api/internal/api/metrics"
	"github.com/ineludible/trazos-api/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 64
)

// Dispatcher is the resync retry queue. When a post-write resync fails, the
// owning user's id is enqueued here and retried off the request path.
// Jobs are sharded to a fixed worker by user id, so retries for the same
// user never interleave; each retry re-reads a fresh snapshot, making the
// resync self-correcting regardless of ordering across users.
type Dispatcher struct {
	workers []chan int64
	stats   ports.StatsService
	log     zerolog.Logger
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, stats ports.StatsService, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers: make([]chan int64, numWorkers),
		stats:   stats,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan int64, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		go d.runWorker(ctx, i, ch)
	}
}

// Enqueue schedules a resync retry for userID. Blocks only when the worker's
// buffer is full.
func (d *Dispatcher) Enqueue(userID int64) {
	d.workers[d.shardIndex(userID)] <- userID
}

// shardIndex maps a user id deterministically to a worker index.
func (d *Dispatcher) shardIndex(userID int64) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(strconv.FormatInt(userID, 10)))
	return int(h.Sum32()) % len(d.workers)
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan int64) {
	for {
		select {
		case <-ctx.Done():
			return
		case userID, ok := <-ch:
			if !ok {
				return
			}
			if err := d.stats.Resync(ctx, userID); err != nil {
				// Drift stays visible in the logs until the next
				// successful resync repairs it.
				metrics.ResyncFailuresTotal.Inc()
				d.log.Error().Err(err).
					Int64("user_id", userID).
					Int("worker_id", id).
					Msg("queued stats resync failed")
				continue
			}
			metrics.ResyncsTotal.WithLabelValues("retry_queue").Inc()
		}
	}
}
