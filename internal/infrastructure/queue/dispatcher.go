package queue

import (
	"context"
	"hash/fnv"

	"github.com/rs/zerolog"

	"github.com/driftbox/driftbox/internal/api/metrics"
	"github.com/driftbox/driftbox/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 128
)

// Dispatcher runs compensating deletes of orphaned storage objects: blobs
// whose metadata record failed after a successful write. References are
// sharded over a fixed worker set so the same object is never deleted twice
// concurrently.
type Dispatcher struct {
	workers []chan string
	store   ports.ObjectStore
	log     zerolog.Logger
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, store ports.ObjectStore, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers: make([]chan string, numWorkers),
		store:   store,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan string, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		go d.runWorker(ctx, i, ch)
	}
}

// Enqueue schedules the removal of an orphaned object. Non-blocking up to
// channelBuffer capacity.
func (d *Dispatcher) Enqueue(ref string) {
	metrics.CleanupEnqueuedTotal.Inc()
	d.workers[d.shardIndex(ref)] <- ref
}

// shardIndex maps an object reference deterministically to a worker index.
func (d *Dispatcher) shardIndex(ref string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(ref))
	return int(h.Sum32()) % len(d.workers)
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan string) {
	for {
		select {
		case <-ctx.Done():
			return
		case ref, ok := <-ch:
			if !ok {
				return
			}
			if err := d.store.Remove(ctx, ref); err != nil {
				d.log.Error().Err(err).
					Str("storage_ref", ref).
					Int("worker_id", id).
					Msg("orphan cleanup failed")
			}
		}
	}
}
