package brokerage

import (
	"strings"
	"sync"
	"time"

	"github.com/srand/fastbuild/pkg/log"
	"github.com/srand/fastbuild/pkg/protocol"
	"github.com/srand/fastbuild/pkg/utils"
)

const (
	// Minimum time between availability re-announcements.
	updateInterval = 10000 * time.Millisecond

	// Bound on the wait for a worker list reply once connected.
	// A coordinator that accepts the connection but never replies
	// must not hang the calling build.
	responseTimeout = 2 * protocol.ConnectTimeout
)

const loopbackAddress = "127.0.0.1"

// Brokerage is the worker discovery and availability surface of the
// build farm. Clients call FindWorkers to learn which workers are
// reachable; workers call SetAvailability to advertise themselves.
//
// Exactly one backend is active: a shared filesystem rendezvous, a
// coordinator service, or none at all. Errors are absorbed here;
// a build degrades to no workers rather than failing.
type Brokerage struct {
	config   *Config
	fs       utils.Fs
	hostname string

	// Sentinel file advertising availability. Empty unless the
	// filesystem backend is selected.
	sentinelPath string

	available  bool
	lastUpdate time.Time
	now        func() time.Time

	// Guards the pending list update delivered by the wire thread.
	mu             sync.Mutex
	pendingWorkers []uint32
	pendingReady   bool
	readyCh        chan struct{}

	// Overridable in tests.
	responseTimeout time.Duration
}

func New(fs utils.Fs, config *Config) *Brokerage {
	b := &Brokerage{
		config:          config,
		fs:              fs,
		hostname:        HostIdentity(),
		now:             time.Now,
		responseTimeout: responseTimeout,
	}

	switch config.Mode() {
	case ModeFilesystem:
		log.Debug("Using brokerage folder:", config.Root())
		b.sentinelPath = config.Root() + b.hostname
	case ModeCoordinator:
		log.Debug("Using coordinator:", config.Address())
	}

	b.lastUpdate = b.now()

	return b
}

// Root returns the effective rendezvous directory, or an empty string
// when the filesystem backend is not selected.
func (b *Brokerage) Root() string {
	return b.config.Root()
}

// FindWorkers returns the addresses of all reachable workers, never
// including the local host or the loopback address. The list is empty
// when no backend is configured or the backend cannot be reached.
//
// The coordinator and filesystem backends are exclusive: an
// unreachable coordinator does not fall through to the filesystem.
func (b *Brokerage) FindWorkers() []string {
	switch b.config.Mode() {
	case ModeCoordinator:
		workers, err := b.requestWorkerList()
		if err != nil {
			log.Warn("No workers received from coordinator:", err)
			return nil
		}

		if len(workers) == 0 {
			log.Warn("No workers received from coordinator")
			return nil
		}

		names := make([]string, 0, len(workers))
		for _, worker := range workers {
			names = append(names, protocol.UnpackAddress(worker))
		}
		return b.filterWorkers(names)

	case ModeFilesystem:
		names, err := b.enumerateWorkers()
		if err != nil || len(names) == 0 {
			log.Warnf("No workers found in '%s'", b.config.Root())
			return nil
		}
		return b.filterWorkers(names)

	default:
		log.Warn("No brokerage root and no coordinator configured; set FASTBUILD_BROKERAGE_PATH or FASTBUILD_COORDINATOR")
		return nil
	}
}

// UpdateWorkerList publishes a worker list received from the wire
// layer and wakes the FindWorkers call awaiting it. Takes ownership of
// the slice. Safe to call from the connection read loop while the
// control thread blocks in FindWorkers.
func (b *Brokerage) UpdateWorkerList(workers []uint32) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.pendingWorkers = workers
	b.pendingReady = true

	if b.readyCh != nil {
		close(b.readyCh)
		b.readyCh = nil
	}
}

// SetAvailability advertises or revokes the local worker. Repeated
// announcements are throttled to one per updateInterval; revocations
// act only when the state changes.
func (b *Brokerage) SetAvailability(available bool) {
	if b.config.Mode() == ModeNone {
		b.available = available
		return
	}

	if available {
		if !b.available {
			b.announce()
			b.lastUpdate = b.now()
		} else if b.now().Sub(b.lastUpdate) >= updateInterval {
			b.reannounce()
		}
	} else if b.available {
		b.revoke()
		b.lastUpdate = b.now()
	}

	b.available = available
}

// Close removes the sentinel file when availability is still
// advertised through the filesystem backend, so it does not outlive
// the worker process. In coordinator mode Close sends nothing.
func (b *Brokerage) Close() {
	if b.available && b.config.Mode() == ModeFilesystem {
		b.removeSentinel()
	}
}

func (b *Brokerage) announce() {
	switch b.config.Mode() {
	case ModeCoordinator:
		b.sendWorkerStatus(true)
	case ModeFilesystem:
		b.createSentinel()
	}
}

// A re-announcement repairs external cleanup of the rendezvous
// directory. The timer is only restarted when something was actually
// sent or written; an intact sentinel leaves the timer running so a
// later cleanup is repaired on the next tick.
func (b *Brokerage) reannounce() {
	switch b.config.Mode() {
	case ModeCoordinator:
		if b.sendWorkerStatus(true) {
			b.lastUpdate = b.now()
		}

	case ModeFilesystem:
		if !b.sentinelExists() {
			b.createSentinel()
			b.lastUpdate = b.now()
		}
	}
}

func (b *Brokerage) revoke() {
	switch b.config.Mode() {
	case ModeCoordinator:
		b.sendWorkerStatus(false)
	case ModeFilesystem:
		b.removeSentinel()
	}
}

// filterWorkers drops the local host identity and the loopback
// address, preserving the order of the remaining entries. The
// hostname comparison is case-insensitive; the loopback comparison
// is literal.
func (b *Brokerage) filterWorkers(names []string) []string {
	workers := make([]string, 0, len(names))
	for _, name := range names {
		if strings.EqualFold(name, b.hostname) || name == loopbackAddress {
			log.Debug("Skipping worker", name)
			continue
		}
		workers = append(workers, name)
	}
	return workers
}
