package coordinator

import (
	"sort"
	"time"

	"github.com/srand/fastbuild/pkg/log"
	"github.com/srand/fastbuild/pkg/protocol"
	"github.com/srand/fastbuild/pkg/utils"
)

// Event describes a change in worker availability.
type Event struct {
	Address   string
	Available bool
	Time      time.Time
}

// Registry is the authoritative record of available workers, keyed by
// packed IPv4 address. Workers come and go through SetStatus; clients
// snapshot the current set through Workers.
type Registry struct {
	mu      utils.RWMutex
	workers map[uint32]time.Time
	events  *utils.Broadcast[Event]
}

func NewRegistry() *Registry {
	return &Registry{
		mu:      utils.NewRWMutex(),
		workers: map[uint32]time.Time{},
		events:  utils.NewBroadcast[Event](),
	}
}

// SetStatus records an availability announcement from a worker.
func (r *Registry) SetStatus(address uint32, available bool) {
	r.mu.Lock()
	_, known := r.workers[address]
	if available {
		r.workers[address] = time.Now()
	} else {
		delete(r.workers, address)
	}
	r.mu.Unlock()

	if available == known {
		return
	}

	name := protocol.UnpackAddress(address)
	if available {
		log.Info("Worker available:", name)
	} else {
		log.Info("Worker unavailable:", name)
	}

	r.events.Send(Event{
		Address:   name,
		Available: available,
		Time:      time.Now(),
	})
}

// Workers returns the packed addresses of all available workers in
// ascending order.
func (r *Registry) Workers() []uint32 {
	r.mu.RLock()
	defer r.mu.RUnlock()

	workers := make([]uint32, 0, len(r.workers))
	for address := range r.workers {
		workers = append(workers, address)
	}

	sort.Slice(workers, func(i, j int) bool {
		return workers[i] < workers[j]
	})

	return workers
}

func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.workers)
}

// Subscribe returns a consumer of availability events. The caller
// must Close it.
func (r *Registry) Subscribe() *utils.BroadcastConsumer[Event] {
	return r.events.NewConsumer()
}
